package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/diillson/aws-daily-cost-report/internal/domain/entity"
)

type mockBilling struct {
	mock.Mock
}

func (m *mockBilling) GetDailyCosts(ctx context.Context, window entity.Window) ([]entity.DailyCostResult, error) {
	args := m.Called(ctx, window)
	results, _ := args.Get(0).([]entity.DailyCostResult)
	return results, args.Error(1)
}

func (m *mockBilling) GetAccountID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockBilling) GetBudgets(ctx context.Context, accountID string) ([]entity.BudgetInfo, error) {
	args := m.Called(ctx, accountID)
	budgets, _ := args.Get(0).([]entity.BudgetInfo)
	return budgets, args.Error(1)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) PutObject(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	return m.Called(ctx, bucket, key, body, contentType).Error(0)
}

func (m *mockStorage) ObjectExists(ctx context.Context, bucket, key string) (bool, error) {
	args := m.Called(ctx, bucket, key)
	return args.Bool(0), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Post(ctx context.Context, msg entity.Message) entity.Delivery {
	return m.Called(ctx, msg).Get(0).(entity.Delivery)
}

type mockExporter struct {
	mock.Mock
}

func (m *mockExporter) MarshalCSV(records []entity.CostRecord) ([]byte, error) {
	args := m.Called(records)
	body, _ := args.Get(0).([]byte)
	return body, args.Error(1)
}

func (m *mockExporter) ExportToCSV(run entity.ReportRun, filename, outputDir string) (string, error) {
	args := m.Called(run, filename, outputDir)
	return args.String(0), args.Error(1)
}

func (m *mockExporter) ExportToJSON(run entity.ReportRun, filename, outputDir string) (string, error) {
	args := m.Called(run, filename, outputDir)
	return args.String(0), args.Error(1)
}

func (m *mockExporter) ExportToPDF(run entity.ReportRun, filename, outputDir string) (string, error) {
	args := m.Called(run, filename, outputDir)
	return args.String(0), args.Error(1)
}
