package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/coder/quartz"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/diillson/aws-daily-cost-report/internal/domain/entity"
	"github.com/diillson/aws-daily-cost-report/internal/domain/repository"
)

const (
	tracerName     = "github.com/diillson/aws-daily-cost-report/usecase"
	csvContentType = "text/csv; charset=utf-8"
)

// ReportOptions controls a single report run.
type ReportOptions struct {
	Bucket    string
	KeyPrefix string
	Channel   string
	Location  *time.Location

	TopSummary int
	TopThread  int

	IncludeBudgets bool
	SkipIfExists   bool
	DryRun         bool

	// Date, when set, replaces "yesterday" with the calendar day of Date.
	Date *time.Time
}

// ReportResult describes what a run did.
type ReportResult struct {
	Run       entity.ReportRun
	ObjectKey string

	// Skipped is set when SkipIfExists found an existing artifact.
	Skipped bool

	Root   *entity.Delivery
	Thread *entity.Delivery
}

// ReportUseCase handles the daily cost report.
type ReportUseCase struct {
	billing  repository.BillingRepository
	storage  repository.StorageRepository
	notifier repository.NotifierRepository
	exporter repository.ExportRepository
	clock    quartz.Clock
	logger   *zap.Logger
	tracer   trace.Tracer
}

// NewReportUseCase creates a new report use case.
func NewReportUseCase(
	billing repository.BillingRepository,
	storage repository.StorageRepository,
	notifier repository.NotifierRepository,
	exporter repository.ExportRepository,
	clock quartz.Clock,
	logger *zap.Logger,
) *ReportUseCase {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportUseCase{
		billing:  billing,
		storage:  storage,
		notifier: notifier,
		exporter: exporter,
		clock:    clock,
		logger:   logger,
		tracer:   otel.Tracer(tracerName),
	}
}

// ResolveWindow returns the window a run with opts would report on.
func (uc *ReportUseCase) ResolveWindow(opts ReportOptions) entity.Window {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	if opts.Date != nil {
		d := opts.Date.In(loc)
		return entity.WindowForDate(time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc))
	}
	return entity.ResolveWindow(uc.clock.Now("report", "window"), loc)
}

// RunDailyReport executa o relatório: busca os custos do dia, grava o CSV
// ordenado no bucket e publica o resumo com a resposta em thread.
func (uc *ReportUseCase) RunDailyReport(ctx context.Context, opts ReportOptions) (*ReportResult, error) {
	window := uc.ResolveWindow(opts)
	log := uc.logger.With(
		zap.String("window_start", window.StartDate()),
		zap.String("window_end", window.EndDate()),
		zap.Bool("dry_run", opts.DryRun),
	)

	ctx, span := uc.tracer.Start(ctx, "report.run", trace.WithAttributes(
		attribute.String("report.window_start", window.StartDate()),
		attribute.Bool("report.dry_run", opts.DryRun),
	))
	defer span.End()

	result := &ReportResult{
		Run:       entity.ReportRun{Window: window},
		ObjectKey: StorageKey(opts.KeyPrefix, window),
	}

	if opts.SkipIfExists && !opts.DryRun {
		exists, err := uc.storage.ObjectExists(ctx, opts.Bucket, result.ObjectKey)
		if err != nil {
			return nil, uc.fail(span, fmt.Errorf("checking s3://%s/%s: %w", opts.Bucket, result.ObjectKey, err))
		}
		if exists {
			log.Info("report already stored, skipping run", zap.String("key", result.ObjectKey))
			result.Skipped = true
			return result, nil
		}
	}

	records, err := uc.fetchRecords(ctx, window)
	if err != nil {
		return nil, uc.fail(span, err)
	}
	log.Info("fetched cost records", zap.Int("records", len(records)))

	if len(records) == 0 {
		log.Warn("no cost data for window")
		if !opts.DryRun {
			delivery := uc.notify(ctx, entity.Message{Channel: opts.Channel, Text: FormatEmptyMessage(window)})
			result.Root = &delivery
		}
		return result, nil
	}

	result.Run.Records = RankCosts(records)
	result.Run.TotalCost = TotalCost(result.Run.Records)
	uc.enrich(ctx, &result.Run, opts.IncludeBudgets, log)
	span.SetAttributes(
		attribute.Int("report.records", len(result.Run.Records)),
		attribute.String("report.total_cost", result.Run.TotalCost.StringFixed(2)),
	)

	if opts.DryRun {
		return result, nil
	}

	if err := uc.persist(ctx, opts.Bucket, result.ObjectKey, result.Run.Records); err != nil {
		return nil, uc.fail(span, err)
	}
	log.Info("stored sorted costs", zap.String("bucket", opts.Bucket), zap.String("key", result.ObjectKey))

	root := uc.notify(ctx, entity.Message{
		Channel: opts.Channel,
		Text:    FormatSummaryMessage(result.Run, TopN(result.Run.Records, opts.TopSummary)),
	})
	result.Root = &root
	if !root.Threadable() {
		log.Warn("summary message not threadable, skipping breakdown",
			zap.String("status", string(root.Status)), zap.String("reason", root.Reason))
		return result, nil
	}

	thread := uc.notify(ctx, entity.Message{
		Channel:  opts.Channel,
		Text:     FormatThreadMessage(result.Run, TopN(result.Run.Records, opts.TopThread)),
		ThreadTS: root.Timestamp,
	})
	result.Thread = &thread
	if thread.Status != entity.DeliverySent {
		log.Warn("failed to post breakdown reply", zap.String("reason", thread.Reason))
	}

	return result, nil
}

func (uc *ReportUseCase) fetchRecords(ctx context.Context, window entity.Window) ([]entity.CostRecord, error) {
	ctx, span := uc.tracer.Start(ctx, "report.fetch")
	defer span.End()

	results, err := uc.billing.GetDailyCosts(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch costs for %s: %w", window.StartDate(), err)
	}
	records, err := FlattenCostResults(results)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// enrich adiciona conta e orçamentos ao relatório. Falhas aqui não são fatais.
func (uc *ReportUseCase) enrich(ctx context.Context, run *entity.ReportRun, includeBudgets bool, log *zap.Logger) {
	accountID, err := uc.billing.GetAccountID(ctx)
	if err != nil {
		log.Warn("could not resolve account ID", zap.Error(err))
		return
	}
	run.AccountID = accountID

	if !includeBudgets {
		return
	}
	budgets, err := uc.billing.GetBudgets(ctx, accountID)
	if err != nil {
		log.Warn("could not load budgets", zap.Error(err))
		return
	}
	run.Budgets = budgets
}

func (uc *ReportUseCase) persist(ctx context.Context, bucket, key string, records []entity.CostRecord) error {
	ctx, span := uc.tracer.Start(ctx, "report.persist", trace.WithAttributes(
		attribute.String("s3.bucket", bucket),
		attribute.String("s3.key", key),
	))
	defer span.End()

	body, err := uc.exporter.MarshalCSV(records)
	if err != nil {
		return fmt.Errorf("error encoding CSV: %w", err)
	}
	if err := uc.storage.PutObject(ctx, bucket, key, body, csvContentType); err != nil {
		return fmt.Errorf("failed to store s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

func (uc *ReportUseCase) notify(ctx context.Context, msg entity.Message) entity.Delivery {
	ctx, span := uc.tracer.Start(ctx, "report.notify", trace.WithAttributes(
		attribute.Bool("slack.threaded", msg.ThreadTS != ""),
	))
	defer span.End()

	delivery := uc.notifier.Post(ctx, msg)
	if delivery.Status != entity.DeliverySent {
		span.SetStatus(codes.Error, delivery.Reason)
	}
	return delivery
}

func (uc *ReportUseCase) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// ExportReport grava cópias locais do relatório nos formatos solicitados.
func (uc *ReportUseCase) ExportReport(run entity.ReportRun, reportTypes []string, name, dir string) ([]string, error) {
	if name == "" {
		name = "aws-cost-report-" + run.Window.StartDate()
	}

	var paths []string
	for _, reportType := range reportTypes {
		var (
			path string
			err  error
		)
		switch reportType {
		case "csv":
			path, err = uc.exporter.ExportToCSV(run, name, dir)
		case "json":
			path, err = uc.exporter.ExportToJSON(run, name, dir)
		case "pdf":
			path, err = uc.exporter.ExportToPDF(run, name, dir)
		default:
			return paths, fmt.Errorf("unsupported report type: %s", reportType)
		}
		if err != nil {
			return paths, fmt.Errorf("failed to export %s report: %w", reportType, err)
		}
		uc.logger.Info("exported report", zap.String("type", reportType), zap.String("path", path))
		paths = append(paths, path)
	}
	return paths, nil
}
