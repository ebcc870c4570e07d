package gateway

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"retail-insights/internal/domain"
)

type rawField int

const (
	fieldTransactionID rawField = iota
	fieldSaleDate
	fieldCustomerID
	fieldGender
	fieldAge
	fieldProductCategory
	fieldQuantity
	fieldPricePerUnit
	fieldTotalAmount
)

// headerAliases maps a folded header name to the raw field it feeds.
// Folding lower-cases and drops spaces and underscores, so "Transaction ID",
// "TransactionID" and "transaction_id" all resolve to the same field.
var headerAliases = map[string]rawField{
	"transactionid":   fieldTransactionID,
	"date":            fieldSaleDate,
	"saledate":        fieldSaleDate,
	"customerid":      fieldCustomerID,
	"gender":          fieldGender,
	"age":             fieldAge,
	"productcategory": fieldProductCategory,
	"category":        fieldProductCategory,
	"quantity":        fieldQuantity,
	"priceperunit":    fieldPricePerUnit,
	"unitprice":       fieldPricePerUnit,
	"totalamount":     fieldTotalAmount,
}

var requiredFields = []struct {
	field rawField
	name  string
}{
	{fieldTransactionID, "transaction_id"},
	{fieldSaleDate, "sale_date"},
	{fieldCustomerID, "customer_id"},
	{fieldGender, "gender"},
	{fieldProductCategory, "product_category"},
	{fieldQuantity, "quantity"},
	{fieldPricePerUnit, "price_per_unit"},
}

func foldHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "")
	return strings.ReplaceAll(h, "_", "")
}

// columnIndex resolves header positions. Absent optional columns map to -1.
type columnIndex map[rawField]int

func newColumnIndex(header []string) (columnIndex, error) {
	idx := columnIndex{}
	for i, h := range header {
		f, ok := headerAliases[foldHeader(h)]
		if !ok {
			continue
		}
		if _, seen := idx[f]; !seen {
			idx[f] = i
		}
	}
	for _, req := range requiredFields {
		if _, ok := idx[req.field]; !ok {
			return nil, &domain.MissingColumnError{Column: req.name}
		}
	}
	for _, f := range []rawField{fieldAge, fieldTotalAmount} {
		if _, ok := idx[f]; !ok {
			idx[f] = -1
		}
	}
	return idx, nil
}

func (c columnIndex) get(record []string, f rawField) string {
	i := c[f]
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

func (c columnIndex) raw(row int, record []string) domain.RawTransaction {
	return domain.RawTransaction{
		Row:             row,
		TransactionID:   c.get(record, fieldTransactionID),
		SaleDate:        c.get(record, fieldSaleDate),
		CustomerID:      c.get(record, fieldCustomerID),
		Gender:          c.get(record, fieldGender),
		Age:             c.get(record, fieldAge),
		ProductCategory: c.get(record, fieldProductCategory),
		Quantity:        c.get(record, fieldQuantity),
		PricePerUnit:    c.get(record, fieldPricePerUnit),
		TotalAmount:     c.get(record, fieldTotalAmount),
	}
}

// CSVTransactionSource implements the TransactionSource interface for CSV files.
type CSVTransactionSource struct{}

// NewCSVTransactionSource creates a new source instance.
func NewCSVTransactionSource() *CSVTransactionSource {
	return &CSVTransactionSource{}
}

// GetRawTransactions reads every data row of the CSV file at path. Columns
// are located by header name, so their order does not matter.
func (s *CSVTransactionSource) GetRawTransactions(ctx context.Context, path string) ([]domain.RawTransaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sales file %s: %w", path, err)
	}
	defer file.Close()

	txs, err := ReadRawTransactions(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return txs, nil
}

// ReadRawTransactions parses CSV sales rows from r.
func ReadRawTransactions(r io.Reader) ([]domain.RawTransaction, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("failed to read header: file is empty")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns, err := newColumnIndex(header)
	if err != nil {
		return nil, err
	}

	transactions := make([]domain.RawTransaction, 0)
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading row %d: %w", row, err)
		}
		transactions = append(transactions, columns.raw(row, record))
	}
	return transactions, nil
}
