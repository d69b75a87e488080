package repository

import (
	"github.com/diillson/aws-daily-cost-report/internal/domain/entity"
)

type ExportRepository interface {
	// MarshalCSV renders the full sorted record set as the persisted artifact.
	MarshalCSV(records []entity.CostRecord) ([]byte, error)

	ExportToCSV(run entity.ReportRun, filename, outputDir string) (string, error)
	ExportToJSON(run entity.ReportRun, filename, outputDir string) (string, error)
	ExportToPDF(run entity.ReportRun, filename, outputDir string) (string, error)
}
