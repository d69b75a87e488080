package usecase

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/diillson/aws-daily-cost-report/internal/domain/entity"
	"github.com/diillson/aws-daily-cost-report/internal/shared/types"
)

const storageKeySuffix = "_sorted_costs.csv"

// FlattenCostResults turns the nested billing response into one CostRecord per
// group. Groups are expected to be keyed by [service, operation].
func FlattenCostResults(results []entity.DailyCostResult) ([]entity.CostRecord, error) {
	var records []entity.CostRecord
	for _, day := range results {
		for i, group := range day.Groups {
			if len(group.Keys) < 2 {
				return nil, fmt.Errorf("%w: day %s group %d has %d keys", types.ErrMalformedCostGroup, day.Start, i, len(group.Keys))
			}
			cost, err := decimal.NewFromString(group.Amount)
			if err != nil {
				return nil, fmt.Errorf("%w: day %s group %v amount %q: %v", types.ErrMalformedCostGroup, day.Start, group.Keys, group.Amount, err)
			}
			records = append(records, entity.CostRecord{
				Date:      day.Start,
				Service:   group.Keys[0],
				Operation: group.Keys[1],
				Cost:      cost,
			})
		}
	}
	return records, nil
}

// TotalCost sums the cost of every record.
func TotalCost(records []entity.CostRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Cost)
	}
	return total
}

// RankCosts returns a copy of records sorted by cost, highest first. Records
// with equal cost keep their original order.
func RankCosts(records []entity.CostRecord) []entity.CostRecord {
	sorted := make([]entity.CostRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Cost.GreaterThan(sorted[j].Cost)
	})
	return sorted
}

// TopN returns the first n records, or all of them when there are fewer.
func TopN(sorted []entity.CostRecord, n int) []entity.CostRecord {
	if n < 0 {
		n = 0
	}
	if len(sorted) < n {
		n = len(sorted)
	}
	return sorted[:n]
}

// StorageKey returns the object key of the CSV artifact for window, e.g.
// "250314_sorted_costs.csv" for 2025-03-14.
func StorageKey(prefix string, window entity.Window) string {
	return prefix + window.Start.Format("060102") + storageKeySuffix
}
