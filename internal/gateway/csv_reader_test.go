package gateway

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"retail-insights/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVTransactionSource_GetRawTransactions(t *testing.T) {
	tests := []struct {
		name     string
		csvData  [][]string
		expected []domain.RawTransaction
		wantErr  error
	}{
		{
			name: "raw dataset headers",
			csvData: [][]string{
				{"Transaction ID", "Date", "Customer ID", "Gender", "Age", "Product Category", "Quantity", "Price per Unit", "Total Amount"},
				{"1", "2023-11-24", "CUST001", "Male", "34", "Beauty", "3", "50", "150"},
				{"2", "2023-02-27", "CUST002", "Female", "26", "Clothing", "2", "500", "1000"},
			},
			expected: []domain.RawTransaction{
				{Row: 1, TransactionID: "1", SaleDate: "2023-11-24", CustomerID: "CUST001", Gender: "Male", Age: "34", ProductCategory: "Beauty", Quantity: "3", PricePerUnit: "50", TotalAmount: "150"},
				{Row: 2, TransactionID: "2", SaleDate: "2023-02-27", CustomerID: "CUST002", Gender: "Female", Age: "26", ProductCategory: "Clothing", Quantity: "2", PricePerUnit: "500", TotalAmount: "1000"},
			},
		},
		{
			name: "cleaned headers in another order",
			csvData: [][]string{
				{"Revenue", "PricePerUnit", "Quantity", "ProductCategory", "Gender", "CustomerID", "SaleDate", "TransactionID"},
				{"25.00", "12.50", "2", "Electronics", "Female", "CUST009", "2023-05-01", "9"},
			},
			expected: []domain.RawTransaction{
				{Row: 1, TransactionID: "9", SaleDate: "2023-05-01", CustomerID: "CUST009", Gender: "Female", ProductCategory: "Electronics", Quantity: "2", PricePerUnit: "12.50"},
			},
		},
		{
			name: "header only",
			csvData: [][]string{
				{"transaction_id", "sale_date", "customer_id", "gender", "product_category", "quantity", "price_per_unit"},
			},
			expected: []domain.RawTransaction{},
		},
		{
			name: "missing price column",
			csvData: [][]string{
				{"Transaction ID", "Date", "Customer ID", "Gender", "Product Category", "Quantity"},
				{"1", "2023-11-24", "CUST001", "Male", "Beauty", "3"},
			},
			wantErr: domain.ErrMissingColumn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile, err := createTempCSV(t, tt.csvData)
			require.NoError(t, err)

			source := NewCSVTransactionSource()
			got, err := source.GetRawTransactions(context.Background(), tmpFile)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCSVTransactionSource_MissingColumnNamesTheColumn(t *testing.T) {
	_, err := ReadRawTransactions(strings.NewReader("Transaction ID,Date,Gender,Product Category,Quantity,Price per Unit\n"))
	require.Error(t, err)

	var missing *domain.MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "customer_id", missing.Column)
}

func TestReadRawTransactions_ByteOrderMark(t *testing.T) {
	data := "\ufeffTransaction ID,Date,Customer ID,Gender,Product Category,Quantity,Price per Unit\n" +
		"5,2023-01-01,CUST005,Male,Beauty,1,9.99\n"

	got, err := ReadRawTransactions(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "5", got[0].TransactionID)
}

func TestReadRawTransactions_RaggedRow(t *testing.T) {
	data := "Transaction ID,Date,Customer ID,Gender,Product Category,Quantity,Price per Unit\n" +
		"1,2023-01-01,CUST001,Male,Beauty,1\n"

	_, err := ReadRawTransactions(strings.NewReader(data))
	assert.Error(t, err)
}

func TestCSVTransactionSource_FileErrors(t *testing.T) {
	source := NewCSVTransactionSource()
	ctx := context.Background()

	t.Run("file not found", func(t *testing.T) {
		_, err := source.GetRawTransactions(ctx, "nonexistent_file.csv")
		assert.Error(t, err)
	})

	t.Run("file with no header", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.csv")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		_, err := source.GetRawTransactions(ctx, path)
		assert.Error(t, err)
	})
}

// Helper functions

func createTempCSV(t *testing.T, data [][]string) (string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(data); err != nil {
		return "", err
	}
	return path, nil
}

// Benchmark tests

func BenchmarkGetRawTransactions(b *testing.B) {
	var sb strings.Builder
	sb.WriteString("Transaction ID,Date,Customer ID,Gender,Age,Product Category,Quantity,Price per Unit,Total Amount\n")
	for i := 0; i < 1000; i++ {
		sb.WriteString("1,2023-11-24,CUST001,Male,34,Beauty,3,50,150\n")
	}
	path := filepath.Join(b.TempDir(), "bench.csv")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		b.Fatalf("Failed to create temp file: %v", err)
	}

	source := NewCSVTransactionSource()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := source.GetRawTransactions(ctx, path); err != nil {
			b.Fatalf("Error in benchmark: %v", err)
		}
	}
}
