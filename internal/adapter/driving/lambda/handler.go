// Package lambda exposes the daily report as an AWS Lambda handler, usually
// triggered by an EventBridge schedule.
package lambda

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"go.uber.org/zap"

	"github.com/diillson/aws-daily-cost-report/internal/application/usecase"
	"github.com/diillson/aws-daily-cost-report/internal/bootstrap"
	"github.com/diillson/aws-daily-cost-report/internal/shared/types"
)

// Event is the optional payload. Scheduled events carry none of these fields
// and run the report for yesterday.
type Event struct {
	// Date (YYYY-MM-DD) replaces yesterday, for backfills.
	Date   string `json:"date,omitempty"`
	DryRun bool   `json:"dry_run,omitempty"`
}

// Response summarizes a run for the invocation result.
type Response struct {
	Date      string `json:"date"`
	Records   int    `json:"records"`
	TotalCost string `json:"total_cost"`
	ObjectKey string `json:"object_key,omitempty"`
	Skipped   bool   `json:"skipped,omitempty"`
	Root      string `json:"root,omitempty"`
	Thread    string `json:"thread,omitempty"`
}

type reportRunner interface {
	RunDailyReport(ctx context.Context, opts usecase.ReportOptions) (*usecase.ReportResult, error)
}

// Handler runs one report per invocation.
type Handler struct {
	runner reportRunner
	cfg    *types.Config
	logger *zap.Logger
}

// NewHandler creates a handler over an already wired report use case.
func NewHandler(runner reportRunner, cfg *types.Config, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{runner: runner, cfg: cfg, logger: logger}
}

// Handle decodes the payload, runs the report and returns its summary.
// Any error fails the invocation.
func (h *Handler) Handle(ctx context.Context, payload json.RawMessage) (*Response, error) {
	var event Event
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, fmt.Errorf("invalid event payload: %w", err)
		}
	}

	log := h.logger
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		log = log.With(zap.String("aws_request_id", lc.AwsRequestID))
	}

	loc, err := h.cfg.Location()
	if err != nil {
		return nil, err
	}
	date, err := bootstrap.ParseDate(event.Date, loc)
	if err != nil {
		return nil, err
	}
	opts, err := bootstrap.ReportOptions(h.cfg, event.DryRun, date)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := h.runner.RunDailyReport(ctx, opts)
	if err != nil {
		log.Error("daily cost report failed", zap.Error(err))
		return nil, err
	}

	resp := &Response{
		Date:      result.Run.Window.StartDate(),
		Records:   len(result.Run.Records),
		TotalCost: result.Run.TotalCost.StringFixed(2),
		Skipped:   result.Skipped,
	}
	if !event.DryRun {
		resp.ObjectKey = result.ObjectKey
	}
	if result.Root != nil {
		resp.Root = string(result.Root.Status)
	}
	if result.Thread != nil {
		resp.Thread = string(result.Thread.Status)
	}

	log.Info("daily cost report finished",
		zap.String("date", resp.Date),
		zap.Int("records", resp.Records),
		zap.String("total_cost", resp.TotalCost),
		zap.Duration("took", time.Since(start)))
	return resp, nil
}
