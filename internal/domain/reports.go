package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GenderSummary aggregates transactions sharing the same gender.
type GenderSummary struct {
	Gender            string          `json:"gender"`
	Transactions      int             `json:"transactions"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	AverageRevenue    decimal.Decimal `json:"average_revenue"`
	AverageBasketSize decimal.Decimal `json:"average_basket_size"`
}

// MonthSummary aggregates transactions sold in the same calendar month.
type MonthSummary struct {
	Month          string          `json:"month"`
	Transactions   int             `json:"transactions"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	AverageRevenue decimal.Decimal `json:"average_revenue"`
}

// QuarterSummary aggregates transactions sold in the same calendar quarter.
type QuarterSummary struct {
	Quarter        string          `json:"quarter"`
	Transactions   int             `json:"transactions"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	AverageRevenue decimal.Decimal `json:"average_revenue"`
}

// CategorySummary aggregates transactions of the same product category.
type CategorySummary struct {
	ProductCategory  string          `json:"product_category"`
	Transactions     int             `json:"transactions"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	AverageRevenue   decimal.Decimal `json:"average_revenue"`
	AverageUnitPrice decimal.Decimal `json:"average_unit_price"`
}

// Summaries holds the independent group-by results over one canonical set.
type Summaries struct {
	ByGender   []GenderSummary   `json:"by_gender"`
	ByMonth    []MonthSummary    `json:"by_month"`
	ByQuarter  []QuarterSummary  `json:"by_quarter"`
	ByCategory []CategorySummary `json:"by_category"`
}

// RejectedRow describes a source row dropped under the skip policy.
type RejectedRow struct {
	Row           int    `json:"row"`
	TransactionID string `json:"transaction_id"`
	Reason        string `json:"reason"`
}

// RunInfo identifies a single pipeline invocation.
type RunInfo struct {
	RunID       string    `json:"run_id"`
	Source      string    `json:"source"`
	ErrorPolicy string    `json:"error_policy"`
	GeneratedAt time.Time `json:"generated_at"`
}

// SalesReport is the top-level structure for the final JSON output.
type SalesReport struct {
	Run                  RunInfo         `json:"run"`
	TotalTransactions    int             `json:"total_transactions"`
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
	DivergentTotalAmount int             `json:"divergent_total_amount"`
	Summaries            Summaries       `json:"summaries"`
	Rejected             []RejectedRow   `json:"rejected"`
}
