package repository

import (
	"context"

	"github.com/diillson/aws-daily-cost-report/internal/domain/entity"
)

// BillingRepository defines the interface for the cloud billing API.
type BillingRepository interface {
	// GetDailyCosts returns the unblended cost of the window grouped by
	// service and operation, one entry per day.
	GetDailyCosts(ctx context.Context, window entity.Window) ([]entity.DailyCostResult, error)

	// Account Operations
	GetAccountID(ctx context.Context) (string, error)
	GetBudgets(ctx context.Context, accountID string) ([]entity.BudgetInfo, error)
}
