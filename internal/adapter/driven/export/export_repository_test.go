package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/aws-daily-cost-report/internal/domain/entity"
)

func sortedRun() entity.ReportRun {
	return entity.ReportRun{
		Window:    entity.WindowForDate(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)),
		AccountID: "123456789012",
		Records: []entity.CostRecord{
			{Date: "2025-03-14", Service: "S2", Operation: "O2", Cost: decimal.RequireFromString("15.50")},
			{Date: "2025-03-14", Service: "Amazon Elastic Compute Cloud - Compute", Operation: "RunInstances:0002", Cost: decimal.RequireFromString("5")},
			{Date: "2025-03-14", Service: "S3, with comma", Operation: "O3", Cost: decimal.RequireFromString("2.25")},
		},
		TotalCost: decimal.RequireFromString("22.75"),
		Budgets:   []entity.BudgetInfo{{Name: "monthly", Limit: decimal.NewFromInt(100), Actual: decimal.NewFromInt(40)}},
	}
}

func TestMarshalCSV(t *testing.T) {
	r := NewExportRepository()
	body, err := r.MarshalCSV(sortedRun().Records)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(body))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Date", "Service", "Operation", "Cost"}, rows[0])
	assert.Equal(t, []string{"2025-03-14", "S2", "O2", "15.5"}, rows[1])
	assert.Equal(t, []string{"2025-03-14", "S3, with comma", "O3", "2.25"}, rows[3])

	assert.True(t, strings.HasPrefix(string(body), "Date,Service,Operation,Cost\n"))
}

func TestMarshalCSV_HeaderOnly(t *testing.T) {
	body, err := NewExportRepository().MarshalCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "Date,Service,Operation,Cost\n", string(body))
}

func TestExportToCSV(t *testing.T) {
	dir := t.TempDir()
	path, err := NewExportRepository().ExportToCSV(sortedRun(), "report", dir)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "report_"))
	assert.Equal(t, ".csv", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2025-03-14,S2,O2,15.5")
}

func TestExportToJSON(t *testing.T) {
	dir := t.TempDir()
	path, err := NewExportRepository().ExportToJSON(sortedRun(), "report", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		AccountID string `json:"account_id"`
		Records   []struct {
			Service string `json:"service"`
			Cost    string `json:"cost"`
		} `json:"records"`
		TotalCost string `json:"total_cost"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "123456789012", decoded.AccountID)
	assert.Len(t, decoded.Records, 3)
	assert.Equal(t, "15.5", decoded.Records[0].Cost)
	assert.Equal(t, "22.75", decoded.TotalCost)
}

func TestExportToPDF(t *testing.T) {
	dir := t.TempDir()
	path, err := NewExportRepository().ExportToPDF(sortedRun(), "report", filepath.Join(dir, "nested"))
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
