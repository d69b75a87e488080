package notify

import (
	"context"
	"net/http"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/diillson/aws-daily-cost-report/internal/domain/entity"
)

// BotNotifier posts through the Slack Web API (chat.postMessage) with a bot
// token. It is the only notifier that can thread replies.
type BotNotifier struct {
	client *slack.Client
	logger *zap.Logger
}

// NewBotNotifier creates a notifier authenticated with token. apiURL overrides
// the Slack API base URL and is meant for tests; pass "" in production.
func NewBotNotifier(token, apiURL string, logger *zap.Logger) *BotNotifier {
	opts := []slack.Option{}
	if apiURL != "" {
		opts = append(opts, slack.OptionAPIURL(apiURL))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BotNotifier{
		client: slack.New(token, opts...),
		logger: logger,
	}
}

// Post sends msg and returns the message timestamp on success. A response
// with ok=false (channel_not_found, not_in_channel, invalid_auth...) and
// transport errors both come back as a failed Delivery.
func (n *BotNotifier) Post(ctx context.Context, msg entity.Message) entity.Delivery {
	options := []slack.MsgOption{slack.MsgOptionText(msg.Text, false)}
	if msg.ThreadTS != "" {
		options = append(options, slack.MsgOptionTS(msg.ThreadTS))
	}

	channel, ts, err := n.client.PostMessageContext(ctx, msg.Channel, options...)
	if err != nil {
		n.logger.Warn("slack chat.postMessage failed",
			zap.String("channel", msg.Channel),
			zap.Bool("threaded", msg.ThreadTS != ""),
			zap.Error(err))
		return entity.Failed(err.Error())
	}

	n.logger.Debug("slack message posted", zap.String("channel", channel), zap.String("ts", ts))
	return entity.Sent(ts)
}

// WebhookNotifier posts to a legacy incoming webhook. Webhooks accept only a
// text payload and return no timestamp, so nothing can be threaded under
// their messages.
type WebhookNotifier struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewWebhookNotifier creates a notifier for the incoming webhook url.
func NewWebhookNotifier(url string, httpClient *http.Client, logger *zap.Logger) *WebhookNotifier {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookNotifier{url: url, httpClient: httpClient, logger: logger}
}

// Post sends msg.Text to the webhook. Channel and ThreadTS are fixed by the
// webhook itself and are ignored.
func (n *WebhookNotifier) Post(ctx context.Context, msg entity.Message) entity.Delivery {
	if msg.ThreadTS != "" {
		n.logger.Debug("webhook cannot thread, posting as a new message")
	}

	err := slack.PostWebhookCustomHTTPContext(ctx, n.url, n.httpClient, &slack.WebhookMessage{Text: msg.Text})
	if err != nil {
		n.logger.Warn("slack webhook post failed", zap.Error(err))
		return entity.Failed(err.Error())
	}
	return entity.Sent("")
}

// DisabledNotifier is used when no Slack destination is configured, which is
// only valid for dry runs. Every post fails.
type DisabledNotifier struct{}

func (DisabledNotifier) Post(context.Context, entity.Message) entity.Delivery {
	return entity.Failed("no slack destination configured")
}
