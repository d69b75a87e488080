package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/diillson/aws-daily-cost-report/internal/domain/entity"
)

// CSVHeader is the header row of the persisted cost artifact.
var CSVHeader = []string{"Date", "Service", "Operation", "Cost"}

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() *ExportRepositoryImpl {
	return &ExportRepositoryImpl{}
}

// MarshalCSV writes every record, in order, under CSVHeader.
func (r *ExportRepositoryImpl) MarshalCSV(records []entity.CostRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCSV(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCSV(w io.Writer, records []entity.CostRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeader); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}
	for _, rec := range records {
		if err := writer.Write([]string{rec.Date, rec.Service, rec.Operation, rec.Cost.String()}); err != nil {
			return fmt.Errorf("error writing CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func (r *ExportRepositoryImpl) ExportToCSV(run entity.ReportRun, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	if err := writeCSV(file, run.Records); err != nil {
		return "", err
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToJSON(run entity.ReportRun, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(run); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToPDF(run entity.ReportRun, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("  AWS daily cost report - %s", run.Window.StartDate())), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	subtitle := fmt.Sprintf("  Window: %s ~ %s (%s)", run.Window.StartDate(), run.Window.EndDate(), run.Window.Location())
	if run.AccountID != "" {
		subtitle += fmt.Sprintf("    Account ID: %s", run.AccountID)
	}
	pdf.CellFormat(0, 8, tr(subtitle), "", 1, "L", true, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("Total: $%s", run.TotalCost.StringFixed(2))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Tabela com todas as linhas ordenadas
	widths := []float64{70, 90, 30}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
	for i, h := range []string{"Service", "Operation", "Cost"} {
		align := "L"
		if i == 2 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, h, "B", 0, align, false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, rec := range run.Records {
		pdf.CellFormat(widths[0], 6, tr(truncate(rec.Service, 45)), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, tr(truncate(rec.Operation, 60)), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, fmt.Sprintf("$%s", rec.Cost.StringFixed(2)), "", 1, "R", false, 0, "")
	}

	if len(run.Budgets) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, "Budgets")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 10)
		for _, b := range run.Budgets {
			pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s: $%s / $%s (%.1f%%)", b.Name, b.Actual.StringFixed(2), b.Limit.StringFixed(2), b.UsedPercent())), "", 1, "L", false, 0, "")
		}
	}

	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 10, fmt.Sprintf("Generated on: %s", time.Now().Format("2006-01-02 15:04:05")), "", 0, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error saving PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
