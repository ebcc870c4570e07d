package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"retail-insights/internal/domain"
	"retail-insights/internal/logger"
)

// DefaultRawTable is the table created by the migrations for raw sales rows.
const DefaultRawTable = "retail_sales_raw"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteStore reads raw sales rows from a table and persists report runs.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and
// applies migrations.
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := migrateSchema(ctx, dbPath); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetRawTransactions implements usecase.TransactionSource. location is the
// table name; an empty location reads DefaultRawTable.
//
// Columns are matched by name with the same aliases as the CSV header, so a
// table loaded straight from the raw export ("Transaction ID", "Price per
// Unit", ...) reads the same as DefaultRawTable. Rows come back in rowid
// order and Row is the rowid, which for DefaultRawTable is row_num.
func (s *SQLiteStore) GetRawTransactions(ctx context.Context, location string) ([]domain.RawTransaction, error) {
	table := location
	if table == "" {
		table = DefaultRawTable
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT rowid, * FROM `+table+` ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns of %s: %w", table, err)
	}
	columns, err := newColumnIndex(names[1:])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", table, err)
	}

	values := make([]sql.NullString, len(names)-1)
	dest := make([]any, len(names))
	var row int
	dest[0] = &row
	for i := range values {
		dest[i+1] = &values[i]
	}
	record := make([]string, len(values))

	transactions := make([]domain.RawTransaction, 0)
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		for i, v := range values {
			record[i] = v.String
		}
		transactions = append(transactions, columns.raw(row, record))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return transactions, nil
}

// ImportRawTransactions replaces the contents of DefaultRawTable with raws.
func (s *SQLiteStore) ImportRawTransactions(ctx context.Context, raws []domain.RawTransaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM `+DefaultRawTable); err != nil {
		return fmt.Errorf("clear %s: %w", DefaultRawTable, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO `+DefaultRawTable+` (
    row_num, transaction_id, sale_date, customer_id, gender, age,
    product_category, quantity, price_per_unit, total_amount
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	for i, r := range raws {
		row := r.Row
		if row == 0 {
			row = i + 1
		}
		if _, err := stmt.ExecContext(ctx, row, r.TransactionID, r.SaleDate, r.CustomerID, r.Gender, r.Age,
			r.ProductCategory, r.Quantity, r.PricePerUnit, r.TotalAmount); err != nil {
			return fmt.Errorf("insert row %d: %w", row, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}

	log := logger.FromContext(ctx)
	log.Debug().Int("rows", len(raws)).Str("table", DefaultRawTable).Msg("raw rows stored in SQLite")
	return nil
}

// WriteReport implements usecase.ReportWriter by storing the run and every
// summary row in one transaction.
func (s *SQLiteStore) WriteReport(ctx context.Context, report *domain.SalesReport) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin report: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
INSERT INTO report_runs (
    run_id, source, error_policy, generated_at, total_transactions,
    total_revenue, divergent_total_amount, rejected_rows
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		report.Run.RunID, report.Run.Source, report.Run.ErrorPolicy,
		report.Run.GeneratedAt.UTC().Format(time.RFC3339), report.TotalTransactions,
		report.TotalRevenue.StringFixed(2), report.DivergentTotalAmount, len(report.Rejected))
	if err != nil {
		return fmt.Errorf("insert report run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO report_summary_rows (
    run_id, dimension, position, group_key, transactions,
    total_revenue, average_revenue, average_basket_size, average_unit_price
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare summary rows: %w", err)
	}
	defer stmt.Close()

	insert := func(dimension string, pos int, key string, count int, total, avg decimal.Decimal, basket, unit *decimal.Decimal) error {
		if _, err := stmt.ExecContext(ctx, report.Run.RunID, dimension, pos, key, count,
			total.StringFixed(2), avg.StringFixed(2), fixedOrNil(basket), fixedOrNil(unit)); err != nil {
			return fmt.Errorf("insert %s summary %q: %w", dimension, key, err)
		}
		return nil
	}

	sm := report.Summaries
	for i, r := range sm.ByGender {
		if err := insert("gender", i, r.Gender, r.Transactions, r.TotalRevenue, r.AverageRevenue, &r.AverageBasketSize, nil); err != nil {
			return err
		}
	}
	for i, r := range sm.ByMonth {
		if err := insert("month", i, r.Month, r.Transactions, r.TotalRevenue, r.AverageRevenue, nil, nil); err != nil {
			return err
		}
	}
	for i, r := range sm.ByQuarter {
		if err := insert("quarter", i, r.Quarter, r.Transactions, r.TotalRevenue, r.AverageRevenue, nil, nil); err != nil {
			return err
		}
	}
	for i, r := range sm.ByCategory {
		if err := insert("category", i, r.ProductCategory, r.Transactions, r.TotalRevenue, r.AverageRevenue, nil, &r.AverageUnitPrice); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit report: %w", err)
	}

	log := logger.FromContext(ctx)
	log.Info().
		Str("run_id", report.Run.RunID).
		Int("transactions", report.TotalTransactions).
		Msg("report saved to SQLite")
	return nil
}

func fixedOrNil(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.StringFixed(2)
}
