package usecase

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"retail-insights/internal/domain"
)

// SaleDateLayouts are tried in order when parsing sale_date. Any time
// component is discarded.
var SaleDateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"01/02/2006",
}

// NormalizeResult holds the canonical records and, under the skip policy,
// the rows that were dropped.
type NormalizeResult struct {
	Records  []domain.CanonicalTransaction
	Rejected []*domain.RowError
}

// Normalize converts raw rows into canonical transactions, preserving order.
// With ErrorPolicyAbort the first bad row is returned as a *domain.RowError;
// with ErrorPolicySkip bad rows are collected in the result instead.
func Normalize(raws []domain.RawTransaction, policy domain.ErrorPolicy) (*NormalizeResult, error) {
	if policy == "" {
		policy = domain.ErrorPolicyAbort
	}
	if policy != domain.ErrorPolicyAbort && policy != domain.ErrorPolicySkip {
		return nil, fmt.Errorf("unsupported error policy %q", policy)
	}

	result := &NormalizeResult{
		Records: make([]domain.CanonicalTransaction, 0, len(raws)),
	}
	for i, raw := range raws {
		tx, err := NormalizeTransaction(raw)
		if err != nil {
			row := raw.Row
			if row == 0 {
				row = i + 1
			}
			rowErr := &domain.RowError{
				Row:           row,
				TransactionID: strings.TrimSpace(raw.TransactionID),
				Err:           err,
			}
			if policy == domain.ErrorPolicyAbort {
				return nil, rowErr
			}
			result.Rejected = append(result.Rejected, rowErr)
			continue
		}
		result.Records = append(result.Records, tx)
	}
	return result, nil
}

// NormalizeTransaction validates a single raw row and derives its fields.
func NormalizeTransaction(raw domain.RawTransaction) (domain.CanonicalTransaction, error) {
	var tx domain.CanonicalTransaction

	required := []struct {
		column string
		value  string
	}{
		{"transaction_id", raw.TransactionID},
		{"sale_date", raw.SaleDate},
		{"customer_id", raw.CustomerID},
		{"gender", raw.Gender},
		{"product_category", raw.ProductCategory},
		{"quantity", raw.Quantity},
		{"price_per_unit", raw.PricePerUnit},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return tx, &domain.MissingColumnError{Column: r.column}
		}
	}

	id, err := strconv.ParseInt(strings.TrimSpace(raw.TransactionID), 10, 64)
	if err != nil {
		return tx, &domain.InvalidNumericError{Field: "transaction_id", Value: raw.TransactionID, Reason: "not an integer"}
	}

	saleDate, err := ParseSaleDate(raw.SaleDate)
	if err != nil {
		return tx, err
	}

	quantity, err := parseQuantity(raw.Quantity)
	if err != nil {
		return tx, err
	}

	price, err := parseMoney("price_per_unit", raw.PricePerUnit)
	if err != nil {
		return tx, err
	}

	var total decimal.NullDecimal
	if strings.TrimSpace(raw.TotalAmount) != "" {
		amount, err := parseMoney("total_amount", raw.TotalAmount)
		if err != nil {
			return tx, err
		}
		total = decimal.NewNullDecimal(amount)
	}

	age, err := parseAge(raw.Age)
	if err != nil {
		return tx, err
	}

	tx = domain.CanonicalTransaction{
		TransactionID:   id,
		SaleDate:        saleDate,
		CustomerID:      strings.TrimSpace(raw.CustomerID),
		Gender:          strings.TrimSpace(raw.Gender),
		Age:             age,
		ProductCategory: strings.TrimSpace(raw.ProductCategory),
		Quantity:        quantity,
		PricePerUnit:    price,
		TotalAmount:     total,
		Revenue:         Revenue(quantity, price),
		BasketSize:      quantity,
		Month:           MonthKey(saleDate),
		Quarter:         QuarterKey(saleDate),
	}
	return tx, nil
}

// ParseSaleDate parses s with the first matching layout and truncates it to
// a UTC calendar date.
func ParseSaleDate(s string) (time.Time, error) {
	value := strings.TrimSpace(s)
	var lastErr error
	for _, layout := range SaleDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, &domain.MalformedDateError{Value: s, Err: lastErr}
}

// Revenue is quantity × price, rounded to cents.
func Revenue(quantity int, price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// MonthKey formats t as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// QuarterKey formats t as Qn-YYYY.
func QuarterKey(t time.Time) string {
	return fmt.Sprintf("Q%d-%d", quarterOf(t), t.Year())
}

func quarterOf(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

var maxQuantity = decimal.NewFromInt(math.MaxInt)

func parseQuantity(s string) (int, error) {
	value := strings.TrimSpace(s)
	q, err := strconv.Atoi(value)
	if err != nil {
		// Exports from spreadsheet tools sometimes write whole numbers as "2.0".
		// Atoi also lands here when the value overflows int.
		d, derr := decimal.NewFromString(value)
		if derr != nil || !d.IsInteger() {
			return 0, &domain.InvalidNumericError{Field: "quantity", Value: s, Reason: "not an integer"}
		}
		if !d.IsPositive() {
			return 0, &domain.InvalidNumericError{Field: "quantity", Value: s, Reason: "must be positive"}
		}
		if d.GreaterThan(maxQuantity) {
			return 0, &domain.InvalidNumericError{Field: "quantity", Value: s, Reason: "out of range"}
		}
		q = int(d.IntPart())
	}
	if q <= 0 {
		return 0, &domain.InvalidNumericError{Field: "quantity", Value: s, Reason: "must be positive"}
	}
	return q, nil
}

func parseMoney(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, &domain.InvalidNumericError{Field: field, Value: s, Reason: "not a number"}
	}
	if d.IsNegative() {
		return decimal.Zero, &domain.InvalidNumericError{Field: field, Value: s, Reason: "must not be negative"}
	}
	return d, nil
}

func parseAge(s string) (int, error) {
	value := strings.TrimSpace(s)
	if value == "" {
		return 0, nil
	}
	age, err := strconv.Atoi(value)
	if err != nil || age < 0 {
		return 0, &domain.InvalidNumericError{Field: "age", Value: s, Reason: "not a non-negative integer"}
	}
	return age, nil
}
