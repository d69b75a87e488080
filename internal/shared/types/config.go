package types

import (
	"fmt"
	"time"
)

const (
	DefaultTopSummary = 3
	DefaultTopThread  = 30
	DefaultTimezone   = "UTC"
	DefaultSchedule   = "0 1 * * *"
)

// Config represents the report configuration. It can be loaded from a file and
// is then overlaid with the process environment and CLI flags.
type Config struct {
	Profile string `json:"profile" yaml:"profile" toml:"profile"`
	Region  string `json:"region" yaml:"region" toml:"region"`

	Bucket    string `json:"bucket" yaml:"bucket" toml:"bucket"`
	KeyPrefix string `json:"key_prefix" yaml:"key_prefix" toml:"key_prefix"`

	SlackToken      string `json:"slack_token" yaml:"slack_token" toml:"slack_token"`
	SlackChannel    string `json:"slack_channel" yaml:"slack_channel" toml:"slack_channel"`
	SlackWebhookURL string `json:"slack_webhook_url" yaml:"slack_webhook_url" toml:"slack_webhook_url"`

	Timezone       string `json:"timezone" yaml:"timezone" toml:"timezone"`
	TopSummary     int    `json:"top_summary" yaml:"top_summary" toml:"top_summary"`
	TopThread      int    `json:"top_thread" yaml:"top_thread" toml:"top_thread"`
	IncludeBudgets bool   `json:"include_budgets" yaml:"include_budgets" toml:"include_budgets"`
	SkipIfExists   bool   `json:"skip_if_exists" yaml:"skip_if_exists" toml:"skip_if_exists"`
	Schedule       string `json:"schedule" yaml:"schedule" toml:"schedule"`

	LogLevel  string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format"`

	OTELExporterType     string `json:"otel_exporter_type" yaml:"otel_exporter_type" toml:"otel_exporter_type"`
	OTELExporterEndpoint string `json:"otel_exporter_endpoint" yaml:"otel_exporter_endpoint" toml:"otel_exporter_endpoint"`
}

// DefaultConfig returns the configuration used when nothing else is set.
func DefaultConfig() *Config {
	return &Config{
		Timezone:             DefaultTimezone,
		TopSummary:           DefaultTopSummary,
		TopThread:            DefaultTopThread,
		Schedule:             DefaultSchedule,
		LogLevel:             "info",
		LogFormat:            "console",
		OTELExporterType:     "none",
		OTELExporterEndpoint: "localhost:4317",
	}
}

// Merge copies every non-zero field of other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	mergeString := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	mergeString(&c.Profile, other.Profile)
	mergeString(&c.Region, other.Region)
	mergeString(&c.Bucket, other.Bucket)
	mergeString(&c.KeyPrefix, other.KeyPrefix)
	mergeString(&c.SlackToken, other.SlackToken)
	mergeString(&c.SlackChannel, other.SlackChannel)
	mergeString(&c.SlackWebhookURL, other.SlackWebhookURL)
	mergeString(&c.Timezone, other.Timezone)
	mergeString(&c.Schedule, other.Schedule)
	mergeString(&c.LogLevel, other.LogLevel)
	mergeString(&c.LogFormat, other.LogFormat)
	mergeString(&c.OTELExporterType, other.OTELExporterType)
	mergeString(&c.OTELExporterEndpoint, other.OTELExporterEndpoint)
	if other.TopSummary > 0 {
		c.TopSummary = other.TopSummary
	}
	if other.TopThread > 0 {
		c.TopThread = other.TopThread
	}
	c.IncludeBudgets = c.IncludeBudgets || other.IncludeBudgets
	c.SkipIfExists = c.SkipIfExists || other.SkipIfExists
}

// Location loads the configured report timezone.
func (c *Config) Location() (*time.Location, error) {
	name := c.Timezone
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

// UseWebhook reports whether notifications go through the legacy incoming
// webhook instead of the bot API.
func (c *Config) UseWebhook() bool {
	return c.SlackToken == "" && c.SlackWebhookURL != ""
}

// Validate checks the settings a report run needs. Dry runs don't touch
// storage or chat, so those checks are skipped.
func (c *Config) Validate(dryRun bool) error {
	if c.TopSummary <= 0 || c.TopThread <= 0 {
		return fmt.Errorf("top sizes must be positive (summary=%d, thread=%d)", c.TopSummary, c.TopThread)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if dryRun {
		return nil
	}
	if c.Bucket == "" {
		return ErrMissingBucket
	}
	if c.SlackToken != "" && c.SlackChannel == "" {
		return ErrMissingChannel
	}
	if c.SlackToken == "" && c.SlackWebhookURL == "" {
		return ErrMissingNotifier
	}
	return nil
}
