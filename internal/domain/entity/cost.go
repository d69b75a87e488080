package entity

import (
	"github.com/shopspring/decimal"
)

// CostGroup is a single Cost Explorer group as returned by the billing API:
// the group-by keys in request order and the unblended cost as a decimal string.
type CostGroup struct {
	Keys   []string `json:"keys"`
	Amount string   `json:"amount"`
}

// DailyCostResult is one ResultsByTime entry of the billing response.
type DailyCostResult struct {
	Start  string      `json:"start"`
	End    string      `json:"end"`
	Groups []CostGroup `json:"groups"`
}

// CostRecord represents the cost of one (date, service, operation) triple.
type CostRecord struct {
	Date      string          `json:"date"`
	Service   string          `json:"service"`
	Operation string          `json:"operation"`
	Cost      decimal.Decimal `json:"cost"`
}

// ReportRun holds everything produced by one invocation of the daily report.
// Records are sorted by cost, highest first.
type ReportRun struct {
	Window    Window          `json:"window"`
	AccountID string          `json:"account_id,omitempty"`
	Records   []CostRecord    `json:"records"`
	TotalCost decimal.Decimal `json:"total_cost"`
	Budgets   []BudgetInfo    `json:"budgets,omitempty"`
}

// Empty reports whether the billing API returned no usage for the window.
func (r ReportRun) Empty() bool {
	return len(r.Records) == 0
}
