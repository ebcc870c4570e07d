package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Known gender labels in the source dataset. Other values pass through unchanged.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// RawTransaction is a sales row exactly as read from the source.
// Every field holds the raw column text; nothing is validated yet.
type RawTransaction struct {
	Row             int    `json:"row"` // 1-based data row in the source, header excluded
	TransactionID   string `json:"transaction_id"`
	SaleDate        string `json:"sale_date"`
	CustomerID      string `json:"customer_id"`
	Gender          string `json:"gender"`
	Age             string `json:"age"`
	ProductCategory string `json:"product_category"`
	Quantity        string `json:"quantity"`
	PricePerUnit    string `json:"price_per_unit"`
	TotalAmount     string `json:"total_amount"`
}

// CanonicalTransaction is a cleaned sales row with every derived field populated.
// It is built once by the normalizer and never modified afterwards.
type CanonicalTransaction struct {
	TransactionID   int64           `json:"transaction_id"`
	SaleDate        time.Time       `json:"sale_date"`
	CustomerID      string          `json:"customer_id"`
	Gender          string          `json:"gender"`
	Age             int             `json:"age"`
	ProductCategory string          `json:"product_category"`
	Quantity        int             `json:"quantity"`
	PricePerUnit    decimal.Decimal `json:"price_per_unit"`

	// TotalAmount is the amount reported by the source, if any. It is kept
	// for traceability only; Revenue is always derived.
	TotalAmount decimal.NullDecimal `json:"total_amount"`

	// Derived fields
	Revenue    decimal.Decimal `json:"revenue"`
	BasketSize int             `json:"basket_size"` // alias of Quantity
	Month      string          `json:"month"`       // YYYY-MM
	Quarter    string          `json:"quarter"`     // Qn-YYYY
}

// TotalAmountDiverges reports whether the source total amount is present and
// differs from the derived revenue.
func (t CanonicalTransaction) TotalAmountDiverges() bool {
	return t.TotalAmount.Valid && !t.TotalAmount.Decimal.Equal(t.Revenue)
}
