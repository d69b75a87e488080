package usecase

import (
	"fmt"
	"strings"

	"github.com/diillson/aws-daily-cost-report/internal/domain/entity"
)

// FormatCostLine renders one record as a report line.
func FormatCostLine(r entity.CostRecord) string {
	return fmt.Sprintf("Service: %s, Operation: %s, Cost: $%s", r.Service, r.Operation, r.Cost.StringFixed(2))
}

// FormatSummaryMessage builds the root report message with the top cost drivers.
func FormatSummaryMessage(run entity.ReportRun, top []entity.CostRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*💰 AWS daily cost report (%s)*\n", run.Window.StartDate())
	fmt.Fprintf(&b, "Window: %s ~ %s (%s)\n", run.Window.StartDate(), run.Window.EndDate(), run.Window.Location())
	if run.AccountID != "" {
		fmt.Fprintf(&b, "Account: %s\n", run.AccountID)
	}
	fmt.Fprintf(&b, "Total cost: $%s\n\n", run.TotalCost.StringFixed(2))
	fmt.Fprintf(&b, "💸 Top %d cost drivers:\n", len(top))
	for _, r := range top {
		b.WriteString("- " + FormatCostLine(r) + "\n")
	}
	return b.String()
}

// FormatThreadMessage builds the extended breakdown posted as a reply to the
// summary message.
func FormatThreadMessage(run entity.ReportRun, top []entity.CostRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*📋 Top %d cost drivers for %s*\n", len(top), run.Window.StartDate())
	for i, r := range top {
		fmt.Fprintf(&b, "%d. %s\n", i+1, FormatCostLine(r))
	}

	if len(run.Budgets) > 0 {
		b.WriteString("\n*📊 Budget status:*\n")
		for _, budget := range run.Budgets {
			fmt.Fprintf(&b, "- %s: $%s / $%s (%.1f%%)",
				budget.Name, budget.Actual.StringFixed(2), budget.Limit.StringFixed(2), budget.UsedPercent())
			if !budget.Forecast.IsZero() {
				fmt.Fprintf(&b, ", forecast $%s", budget.Forecast.StringFixed(2))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FormatEmptyMessage is sent instead of the report when the billing API
// returned no usage for the window.
func FormatEmptyMessage(window entity.Window) string {
	return fmt.Sprintf("🚨 No AWS cost data available for %s.", window.StartDate())
}
