package types

import "errors"

var (
	ErrMissingBucket      = errors.New("no report bucket configured. Set REPORT_BUCKET or bucket in the config file")
	ErrMissingChannel     = errors.New("a Slack bot token requires a channel. Set SLACK_CHANNEL")
	ErrMissingNotifier    = errors.New("no Slack destination configured. Set SLACK_BOT_TOKEN or SLACK_WEBHOOK_URL")
	ErrMalformedCostGroup = errors.New("malformed cost group in billing response")
)
