package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/aws-daily-cost-report/internal/shared/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	want := &types.Config{
		Profile:        "billing",
		Bucket:         "day-by-day",
		SlackChannel:   "C0123456",
		Timezone:       "Asia/Seoul",
		TopSummary:     5,
		IncludeBudgets: true,
	}

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "report.toml",
			content: `profile = "billing"
bucket = "day-by-day"
slack_channel = "C0123456"
timezone = "Asia/Seoul"
top_summary = 5
include_budgets = true
`,
		},
		{
			name: "yaml",
			file: "report.yml",
			content: `profile: billing
bucket: day-by-day
slack_channel: C0123456
timezone: Asia/Seoul
top_summary: 5
include_budgets: true
`,
		},
		{
			name:    "json",
			file:    "report.json",
			content: `{"profile":"billing","bucket":"day-by-day","slack_channel":"C0123456","timezone":"Asia/Seoul","top_summary":5,"include_budgets":true}`,
		},
	}

	r := NewConfigRepository()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.LoadConfigFile(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestLoadConfigFile_Errors(t *testing.T) {
	r := NewConfigRepository()

	_, err := r.LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "error accessing config file")

	_, err = r.LoadConfigFile(t.TempDir())
	assert.ErrorContains(t, err, "is a directory")

	_, err = r.LoadConfigFile(writeFile(t, "report.ini", "bucket=x"))
	assert.ErrorContains(t, err, "unsupported config file format")

	_, err = r.LoadConfigFile(writeFile(t, "report.json", "{"))
	assert.ErrorContains(t, err, "error parsing JSON file")
}

func TestLoadEnv(t *testing.T) {
	envFile := writeFile(t, ".env", "SLACK_BOT_TOKEN=xoxb-from-file\nREPORT_BUCKET=file-bucket\nREPORT_TOP_THREAD=10\n")
	t.Setenv("REPORT_BUCKET", "env-bucket")
	t.Setenv("SLACK_CHANNEL", "C0123456")
	t.Setenv("REPORT_INCLUDE_BUDGETS", "true")
	t.Setenv("REPORT_TOP_SUMMARY", "")

	cfg := types.DefaultConfig()
	require.NoError(t, NewConfigRepositoryWithEnvFile(envFile).LoadEnv(cfg))

	assert.Equal(t, "env-bucket", cfg.Bucket)
	assert.Equal(t, "xoxb-from-file", cfg.SlackToken)
	assert.Equal(t, "C0123456", cfg.SlackChannel)
	assert.Equal(t, 10, cfg.TopThread)
	assert.Equal(t, types.DefaultTopSummary, cfg.TopSummary)
	assert.True(t, cfg.IncludeBudgets)
	assert.Equal(t, types.DefaultTimezone, cfg.Timezone)
}

func TestLoadEnv_MissingDotenvIsIgnored(t *testing.T) {
	t.Setenv("REPORT_TIMEZONE", "Europe/Lisbon")

	cfg := types.DefaultConfig()
	require.NoError(t, NewConfigRepositoryWithEnvFile(filepath.Join(t.TempDir(), ".env")).LoadEnv(cfg))
	assert.Equal(t, "Europe/Lisbon", cfg.Timezone)
}

func TestLoadEnv_InvalidValues(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		t.Setenv("REPORT_TOP_SUMMARY", "three")
		err := NewConfigRepositoryWithEnvFile("").LoadEnv(types.DefaultConfig())
		assert.ErrorContains(t, err, "REPORT_TOP_SUMMARY")
	})
	t.Run("bool", func(t *testing.T) {
		t.Setenv("REPORT_SKIP_IF_EXISTS", "maybe")
		err := NewConfigRepositoryWithEnvFile("").LoadEnv(types.DefaultConfig())
		assert.ErrorContains(t, err, "REPORT_SKIP_IF_EXISTS")
	})
}
