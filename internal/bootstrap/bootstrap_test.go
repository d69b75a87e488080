package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/diillson/aws-daily-cost-report/internal/adapter/driven/config"
	"github.com/diillson/aws-daily-cost-report/internal/adapter/driven/notify"
	"github.com/diillson/aws-daily-cost-report/internal/shared/types"
)

func clearReportEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SLACK_BOT_TOKEN", "SLACK_CHANNEL", "SLACK_WEBHOOK_URL",
		"REPORT_BUCKET", "REPORT_KEY_PREFIX", "REPORT_TIMEZONE", "REPORT_TOP_SUMMARY",
		"REPORT_TOP_THREAD", "REPORT_INCLUDE_BUDGETS", "REPORT_SKIP_IF_EXISTS", "REPORT_SCHEDULE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Layering(t *testing.T) {
	clearReportEnv(t)
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bucket: file-bucket\nslack_channel: C-file\ntop_thread: 10\n"), 0o600))

	t.Setenv("SLACK_BOT_TOKEN", "xoxb-env")
	t.Setenv("SLACK_CHANNEL", "C-env")

	repo := config.NewConfigRepositoryWithEnvFile("")
	cfg, err := LoadConfig(repo, nil, path, &types.Config{Bucket: "flag-bucket"}, false)
	require.NoError(t, err)

	assert.Equal(t, "flag-bucket", cfg.Bucket)
	assert.Equal(t, "C-env", cfg.SlackChannel)
	assert.Equal(t, "xoxb-env", cfg.SlackToken)
	assert.Equal(t, 10, cfg.TopThread)
	assert.Equal(t, types.DefaultTopSummary, cfg.TopSummary)
}

func TestLoadConfig_Invalid(t *testing.T) {
	clearReportEnv(t)
	repo := config.NewConfigRepositoryWithEnvFile("")

	_, err := LoadConfig(repo, nil, "", nil, false)
	assert.ErrorIs(t, err, types.ErrMissingBucket)

	// dry runs need neither storage nor chat
	_, err = LoadConfig(repo, nil, "", nil, true)
	assert.NoError(t, err)

	_, err = LoadConfig(repo, nil, filepath.Join(t.TempDir(), "nope.toml"), nil, true)
	assert.Error(t, err)
}

func TestNewNotifier(t *testing.T) {
	logger := zaptest.NewLogger(t)

	assert.IsType(t, &notify.BotNotifier{}, NewNotifier(&types.Config{SlackToken: "xoxb", SlackWebhookURL: "https://hooks"}, logger))
	assert.IsType(t, &notify.WebhookNotifier{}, NewNotifier(&types.Config{SlackWebhookURL: "https://hooks"}, logger))
	assert.IsType(t, notify.DisabledNotifier{}, NewNotifier(&types.Config{}, logger))
}

func TestReportOptions(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.Bucket = "day-by-day"
	cfg.SlackChannel = "C0123456"
	cfg.Timezone = "Asia/Seoul"
	cfg.SkipIfExists = true

	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	opts, err := ReportOptions(cfg, true, &day)
	require.NoError(t, err)

	assert.Equal(t, "day-by-day", opts.Bucket)
	assert.Equal(t, "C0123456", opts.Channel)
	assert.Equal(t, "Asia/Seoul", opts.Location.String())
	assert.Equal(t, types.DefaultTopSummary, opts.TopSummary)
	assert.Equal(t, types.DefaultTopThread, opts.TopThread)
	assert.True(t, opts.SkipIfExists)
	assert.True(t, opts.DryRun)
	assert.Equal(t, &day, opts.Date)

	cfg.Timezone = "Mars/Olympus"
	_, err = ReportOptions(cfg, false, nil)
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("", time.UTC)
	require.NoError(t, err)
	assert.Nil(t, got)

	loc, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)
	got, err = ParseDate("2025-02-28", loc)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 2, 28, 0, 0, 0, 0, loc)))
	assert.Equal(t, loc, got.Location())

	_, err = ParseDate("28/02/2025", loc)
	assert.ErrorContains(t, err, "YYYY-MM-DD")
}
