// Package bootstrap wires configuration, adapters and the report use case.
// The CLI, the daemon and the Lambda handler all start from here.
package bootstrap

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/diillson/aws-daily-cost-report/internal/adapter/driven/aws"
	"github.com/diillson/aws-daily-cost-report/internal/adapter/driven/export"
	"github.com/diillson/aws-daily-cost-report/internal/adapter/driven/notify"
	"github.com/diillson/aws-daily-cost-report/internal/application/usecase"
	"github.com/diillson/aws-daily-cost-report/internal/domain/repository"
	"github.com/diillson/aws-daily-cost-report/internal/logging"
	"github.com/diillson/aws-daily-cost-report/internal/shared/types"
	"github.com/diillson/aws-daily-cost-report/internal/telemetry"
	"github.com/diillson/aws-daily-cost-report/pkg/version"
)

const dateLayout = "2006-01-02"

// LoadConfig layers base, the optional config file, the environment and
// overrides (in that order) and validates the result.
func LoadConfig(repo repository.ConfigRepository, base *types.Config, configFile string, overrides *types.Config, dryRun bool) (*types.Config, error) {
	cfg := base
	if cfg == nil {
		cfg = types.DefaultConfig()
	}

	if configFile != "" {
		fileCfg, err := repo.LoadConfigFile(configFile)
		if err != nil {
			return nil, err
		}
		cfg.Merge(fileCfg)
	}

	if err := repo.LoadEnv(cfg); err != nil {
		return nil, err
	}
	cfg.Merge(overrides)

	if err := cfg.Validate(dryRun); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// NewNotifier picks the Slack destination: bot token first, then the legacy
// webhook, and a disabled notifier when neither is set.
func NewNotifier(cfg *types.Config, logger *zap.Logger) repository.NotifierRepository {
	switch {
	case cfg.SlackToken != "":
		return notify.NewBotNotifier(cfg.SlackToken, "", logger)
	case cfg.UseWebhook():
		return notify.NewWebhookNotifier(cfg.SlackWebhookURL, nil, logger)
	default:
		return notify.DisabledNotifier{}
	}
}

// App holds everything a report run needs.
type App struct {
	Config  *types.Config
	Logger  *zap.Logger
	UseCase *usecase.ReportUseCase

	shutdownTracer func()
}

// New builds the logger, the tracer and the use case for cfg.
func New(cfg *types.Config, serviceName string) (*App, error) {
	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.Format = cfg.LogFormat

	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, err
	}

	shutdown, err := telemetry.InitTracer(serviceName, version.Version, cfg.OTELExporterType, cfg.OTELExporterEndpoint)
	if err != nil {
		return nil, err
	}

	awsRepo := aws.NewAWSRepository(cfg.Profile, cfg.Region)
	uc := usecase.NewReportUseCase(
		awsRepo,
		awsRepo,
		NewNotifier(cfg, logger),
		export.NewExportRepository(),
		nil,
		logger,
	)

	logger.Debug("report components ready",
		zap.String("profile", cfg.Profile),
		zap.String("bucket", cfg.Bucket),
		zap.Bool("webhook", cfg.UseWebhook()))

	return &App{Config: cfg, Logger: logger, UseCase: uc, shutdownTracer: shutdown}, nil
}

// ReportOptions translates the configuration into options for one run.
func (a *App) ReportOptions(dryRun bool, date *time.Time) (usecase.ReportOptions, error) {
	return ReportOptions(a.Config, dryRun, date)
}

// Close flushes traces and logs.
func (a *App) Close() {
	if a.shutdownTracer != nil {
		a.shutdownTracer()
	}
	_ = a.Logger.Sync()
}

// ReportOptions translates cfg into options for one run.
func ReportOptions(cfg *types.Config, dryRun bool, date *time.Time) (usecase.ReportOptions, error) {
	loc, err := cfg.Location()
	if err != nil {
		return usecase.ReportOptions{}, err
	}
	return usecase.ReportOptions{
		Bucket:         cfg.Bucket,
		KeyPrefix:      cfg.KeyPrefix,
		Channel:        cfg.SlackChannel,
		Location:       loc,
		TopSummary:     cfg.TopSummary,
		TopThread:      cfg.TopThread,
		IncludeBudgets: cfg.IncludeBudgets,
		SkipIfExists:   cfg.SkipIfExists,
		DryRun:         dryRun,
		Date:           date,
	}, nil
}

// ParseDate parses a YYYY-MM-DD day in loc. An empty string yields nil.
func ParseDate(s string, loc *time.Location) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	d, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return &d, nil
}
