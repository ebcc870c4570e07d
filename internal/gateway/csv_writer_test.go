package gateway

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retail-insights/internal/domain"
	"retail-insights/internal/usecase"
)

func sampleReport() *domain.SalesReport {
	d := decimal.RequireFromString
	return &domain.SalesReport{
		Run: domain.RunInfo{
			RunID:       "run-1",
			Source:      "sales.csv",
			ErrorPolicy: "abort",
			GeneratedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		TotalTransactions: 3,
		TotalRevenue:      d("125"),
		Summaries: domain.Summaries{
			ByGender: []domain.GenderSummary{
				{Gender: "Male", Transactions: 1, TotalRevenue: d("100"), AverageRevenue: d("100"), AverageBasketSize: d("4")},
				{Gender: "Female", Transactions: 2, TotalRevenue: d("25"), AverageRevenue: d("12.5"), AverageBasketSize: d("1.5")},
			},
			ByMonth: []domain.MonthSummary{
				{Month: "2023-01", Transactions: 3, TotalRevenue: d("125"), AverageRevenue: d("41.67")},
			},
			ByQuarter: []domain.QuarterSummary{
				{Quarter: "Q1-2023", Transactions: 3, TotalRevenue: d("125"), AverageRevenue: d("41.67")},
			},
			ByCategory: []domain.CategorySummary{
				{ProductCategory: "Electronics", Transactions: 1, TotalRevenue: d("100"), AverageRevenue: d("100"), AverageUnitPrice: d("25")},
				{ProductCategory: "Beauty", Transactions: 2, TotalRevenue: d("25"), AverageRevenue: d("12.5"), AverageUnitPrice: d("7.5")},
			},
		},
		Rejected: []domain.RejectedRow{},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVSummaryWriter_WriteReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w := NewCSVSummaryWriter(dir)

	require.NoError(t, w.WriteReport(context.Background(), sampleReport()))

	assert.Equal(t, [][]string{
		{"ProductCategory", "Transactions", "TotalRevenue", "AvgRevenue", "AvgUnitPrice"},
		{"Electronics", "1", "100.00", "100.00", "25.00"},
		{"Beauty", "2", "25.00", "12.50", "7.50"},
	}, readCSV(t, filepath.Join(dir, CategorySummaryFile)))

	assert.Equal(t, [][]string{
		{"Gender", "Transactions", "TotalRevenue", "AvgRevenue", "AvgBasketSize"},
		{"Male", "1", "100.00", "100.00", "4.00"},
		{"Female", "2", "25.00", "12.50", "1.50"},
	}, readCSV(t, filepath.Join(dir, GenderSummaryFile)))

	assert.Equal(t, [][]string{
		{"Month", "Transactions", "TotalRevenue", "AvgRevenue"},
		{"2023-01", "3", "125.00", "41.67"},
	}, readCSV(t, filepath.Join(dir, MonthSummaryFile)))

	assert.Len(t, readCSV(t, filepath.Join(dir, QuarterSummaryFile)), 2)
}

func TestCSVCanonicalWriter_RoundTripsThroughReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.csv")
	txs := []domain.CanonicalTransaction{
		{
			TransactionID:   7,
			SaleDate:        time.Date(2023, 5, 9, 0, 0, 0, 0, time.UTC),
			CustomerID:      "CUST007",
			Gender:          "Female",
			Age:             41,
			ProductCategory: "Beauty",
			Quantity:        2,
			PricePerUnit:    decimal.RequireFromString("12.5"),
			TotalAmount:     decimal.NewNullDecimal(decimal.RequireFromString("25")),
			Revenue:         decimal.RequireFromString("25"),
			BasketSize:      2,
			Month:           "2023-05",
			Quarter:         "Q2-2023",
		},
	}

	require.NoError(t, NewCSVCanonicalWriter(path).WriteCanonical(context.Background(), txs))

	records := readCSV(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, canonicalHeader, records[0])
	assert.Equal(t, []string{"7", "2023-05-09", "CUST007", "Female", "41", "Beauty", "2", "12.5", "25", "2023-05", "Q2-2023", "2", "25.00"}, records[1])

	// The cleaned file is itself a valid source.
	raws, err := NewCSVTransactionSource().GetRawTransactions(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, "2023-05-09", raws[0].SaleDate)
	assert.Equal(t, "12.5", raws[0].PricePerUnit)
	assert.Equal(t, "25", raws[0].TotalAmount)
}

func TestCSVCanonicalWriter_SubCentPriceKeepsRevenue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.csv")
	ctx := context.Background()

	first, err := usecase.NormalizeTransaction(domain.RawTransaction{
		Row: 1, TransactionID: "11", SaleDate: "2023-08-14", CustomerID: "CUST011", Gender: "Male",
		ProductCategory: "Electronics", Quantity: "3", PricePerUnit: "10.005", TotalAmount: "30.015",
	})
	require.NoError(t, err)
	assert.Equal(t, "30.02", first.Revenue.String())

	require.NoError(t, NewCSVCanonicalWriter(path).WriteCanonical(ctx, []domain.CanonicalTransaction{first}))

	raws, err := NewCSVTransactionSource().GetRawTransactions(ctx, path)
	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, "10.005", raws[0].PricePerUnit)
	assert.Equal(t, "30.015", raws[0].TotalAmount)

	reloaded, err := usecase.NormalizeTransaction(raws[0])
	require.NoError(t, err)
	assert.Equal(t, "30.02", reloaded.Revenue.String())
	assert.True(t, first.PricePerUnit.Equal(reloaded.PricePerUnit))
	assert.True(t, first.TotalAmount.Decimal.Equal(reloaded.TotalAmount.Decimal))
}

func TestJSONReportWriter_WriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONReportWriter(&buf).WriteReport(context.Background(), sampleReport()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(3), decoded["total_transactions"])

	summaries, ok := decoded["summaries"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, summaries["by_category"], 2)
}
