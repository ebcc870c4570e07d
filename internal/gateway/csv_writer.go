package gateway

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"retail-insights/internal/domain"
)

// Summary file names written by CSVSummaryWriter.
const (
	GenderSummaryFile   = "revenue_by_gender.csv"
	MonthSummaryFile    = "monthly_revenue.csv"
	QuarterSummaryFile  = "revenue_by_quarter.csv"
	CategorySummaryFile = "revenue_by_category.csv"
)

var canonicalHeader = []string{
	"TransactionID", "SaleDate", "CustomerID", "Gender", "Age",
	"ProductCategory", "Quantity", "PricePerUnit", "TotalAmount",
	"Month", "Quarter", "Basket Size", "Revenue",
}

// CSVCanonicalWriter writes cleaned transactions to a CSV file.
type CSVCanonicalWriter struct {
	path string
}

// NewCSVCanonicalWriter creates a writer that overwrites path.
func NewCSVCanonicalWriter(path string) *CSVCanonicalWriter {
	return &CSVCanonicalWriter{path: path}
}

// WriteCanonical implements usecase.CanonicalWriter.
func (w *CSVCanonicalWriter) WriteCanonical(ctx context.Context, txs []domain.CanonicalTransaction) error {
	// Price and total keep their source precision so the file reloads to the
	// same revenue; only the derived revenue is fixed to cents.
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		total := ""
		if tx.TotalAmount.Valid {
			total = tx.TotalAmount.Decimal.String()
		}
		rows = append(rows, []string{
			strconv.FormatInt(tx.TransactionID, 10),
			tx.SaleDate.Format(time.DateOnly),
			tx.CustomerID,
			tx.Gender,
			strconv.Itoa(tx.Age),
			tx.ProductCategory,
			strconv.Itoa(tx.Quantity),
			tx.PricePerUnit.String(),
			total,
			tx.Month,
			tx.Quarter,
			strconv.Itoa(tx.BasketSize),
			tx.Revenue.StringFixed(2),
		})
	}
	return writeCSVFile(w.path, canonicalHeader, rows)
}

// CSVSummaryWriter writes one CSV file per summary table into a directory.
type CSVSummaryWriter struct {
	dir string
}

// NewCSVSummaryWriter creates a writer for dir, which is created if needed.
func NewCSVSummaryWriter(dir string) *CSVSummaryWriter {
	return &CSVSummaryWriter{dir: dir}
}

// WriteReport implements usecase.ReportWriter.
func (w *CSVSummaryWriter) WriteReport(ctx context.Context, report *domain.SalesReport) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create summary directory %s: %w", w.dir, err)
	}
	s := report.Summaries

	gender := make([][]string, 0, len(s.ByGender))
	for _, r := range s.ByGender {
		gender = append(gender, []string{
			r.Gender, strconv.Itoa(r.Transactions),
			r.TotalRevenue.StringFixed(2), r.AverageRevenue.StringFixed(2), r.AverageBasketSize.StringFixed(2),
		})
	}
	month := make([][]string, 0, len(s.ByMonth))
	for _, r := range s.ByMonth {
		month = append(month, []string{
			r.Month, strconv.Itoa(r.Transactions),
			r.TotalRevenue.StringFixed(2), r.AverageRevenue.StringFixed(2),
		})
	}
	quarter := make([][]string, 0, len(s.ByQuarter))
	for _, r := range s.ByQuarter {
		quarter = append(quarter, []string{
			r.Quarter, strconv.Itoa(r.Transactions),
			r.TotalRevenue.StringFixed(2), r.AverageRevenue.StringFixed(2),
		})
	}
	category := make([][]string, 0, len(s.ByCategory))
	for _, r := range s.ByCategory {
		category = append(category, []string{
			r.ProductCategory, strconv.Itoa(r.Transactions),
			r.TotalRevenue.StringFixed(2), r.AverageRevenue.StringFixed(2), r.AverageUnitPrice.StringFixed(2),
		})
	}

	files := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{GenderSummaryFile, []string{"Gender", "Transactions", "TotalRevenue", "AvgRevenue", "AvgBasketSize"}, gender},
		{MonthSummaryFile, []string{"Month", "Transactions", "TotalRevenue", "AvgRevenue"}, month},
		{QuarterSummaryFile, []string{"Quarter", "Transactions", "TotalRevenue", "AvgRevenue"}, quarter},
		{CategorySummaryFile, []string{"ProductCategory", "Transactions", "TotalRevenue", "AvgRevenue", "AvgUnitPrice"}, category},
	}
	for _, f := range files {
		if err := writeCSVFile(filepath.Join(w.dir, f.name), f.header, f.rows); err != nil {
			return err
		}
	}
	return nil
}

// JSONReportWriter encodes the report as indented JSON.
type JSONReportWriter struct {
	out io.Writer
}

// NewJSONReportWriter creates a writer emitting to out.
func NewJSONReportWriter(out io.Writer) *JSONReportWriter {
	return &JSONReportWriter{out: out}
}

// WriteReport implements usecase.ReportWriter.
func (w *JSONReportWriter) WriteReport(ctx context.Context, report *domain.SalesReport) error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	return nil
}

func writeCSVFile(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows to %s: %w", path, err)
	}
	return file.Close()
}
