package usecase

import (
	"sort"

	"github.com/shopspring/decimal"

	"retail-insights/internal/domain"
)

// groupTotals accumulates exact sums for one group. Rounding happens only
// when the summary row is built.
type groupTotals struct {
	key        string
	count      int
	revenue    decimal.Decimal
	basketSize int64
	unitPrice  decimal.Decimal
	year       int
	period     int // month or quarter number
}

func (g *groupTotals) add(tx domain.CanonicalTransaction) {
	g.count++
	g.revenue = g.revenue.Add(tx.Revenue)
	g.basketSize += int64(tx.BasketSize)
	g.unitPrice = g.unitPrice.Add(tx.PricePerUnit)
}

func (g *groupTotals) mean(sum decimal.Decimal) decimal.Decimal {
	return sum.Div(decimal.NewFromInt(int64(g.count))).Round(2)
}

// groupKey identifies a group. year and period are only set for time groups.
type groupKey struct {
	key          string
	year, period int
}

func byGender(tx domain.CanonicalTransaction) groupKey { return groupKey{key: tx.Gender} }

func byCategory(tx domain.CanonicalTransaction) groupKey { return groupKey{key: tx.ProductCategory} }

func byMonth(tx domain.CanonicalTransaction) groupKey {
	return groupKey{key: tx.Month, year: tx.SaleDate.Year(), period: int(tx.SaleDate.Month())}
}

func byQuarter(tx domain.CanonicalTransaction) groupKey {
	return groupKey{key: tx.Quarter, year: tx.SaleDate.Year(), period: quarterOf(tx.SaleDate)}
}

// groupBy buckets transactions by key, keeping first-seen order.
func groupBy(txs []domain.CanonicalTransaction, keyOf func(domain.CanonicalTransaction) groupKey) []*groupTotals {
	index := make(map[string]*groupTotals)
	groups := make([]*groupTotals, 0)
	for _, tx := range txs {
		k := keyOf(tx)
		g, ok := index[k.key]
		if !ok {
			g = &groupTotals{
				key:       k.key,
				revenue:   decimal.Zero,
				unitPrice: decimal.Zero,
				year:      k.year,
				period:    k.period,
			}
			index[k.key] = g
			groups = append(groups, g)
		}
		g.add(tx)
	}
	return groups
}

// Aggregate computes every summary over txs. Empty input gives empty collections.
func Aggregate(txs []domain.CanonicalTransaction) domain.Summaries {
	return domain.Summaries{
		ByGender:   SummarizeByGender(txs),
		ByMonth:    SummarizeByMonth(txs),
		ByQuarter:  SummarizeByQuarter(txs),
		ByCategory: SummarizeByCategory(txs),
	}
}

// TotalRevenue sums revenue over txs.
func TotalRevenue(txs []domain.CanonicalTransaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Revenue)
	}
	return total
}

// SummarizeByGender groups by gender, ordered by total revenue descending
// and then by gender.
func SummarizeByGender(txs []domain.CanonicalTransaction) []domain.GenderSummary {
	groups := groupBy(txs, byGender)
	sortByRevenueDesc(groups)

	out := make([]domain.GenderSummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, domain.GenderSummary{
			Gender:            g.key,
			Transactions:      g.count,
			TotalRevenue:      g.revenue.Round(2),
			AverageRevenue:    g.mean(g.revenue),
			AverageBasketSize: g.mean(decimal.NewFromInt(g.basketSize)),
		})
	}
	return out
}

// SummarizeByMonth groups by calendar month in chronological order.
func SummarizeByMonth(txs []domain.CanonicalTransaction) []domain.MonthSummary {
	groups := groupBy(txs, byMonth)
	sortChronologically(groups)

	out := make([]domain.MonthSummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, domain.MonthSummary{
			Month:          g.key,
			Transactions:   g.count,
			TotalRevenue:   g.revenue.Round(2),
			AverageRevenue: g.mean(g.revenue),
		})
	}
	return out
}

// SummarizeByQuarter groups by calendar quarter in chronological order.
func SummarizeByQuarter(txs []domain.CanonicalTransaction) []domain.QuarterSummary {
	groups := groupBy(txs, byQuarter)
	sortChronologically(groups)

	out := make([]domain.QuarterSummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, domain.QuarterSummary{
			Quarter:        g.key,
			Transactions:   g.count,
			TotalRevenue:   g.revenue.Round(2),
			AverageRevenue: g.mean(g.revenue),
		})
	}
	return out
}

// SummarizeByCategory groups by product category, ordered by total revenue
// descending and then by category name.
func SummarizeByCategory(txs []domain.CanonicalTransaction) []domain.CategorySummary {
	groups := groupBy(txs, byCategory)
	sortByRevenueDesc(groups)

	out := make([]domain.CategorySummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, domain.CategorySummary{
			ProductCategory:  g.key,
			Transactions:     g.count,
			TotalRevenue:     g.revenue.Round(2),
			AverageRevenue:   g.mean(g.revenue),
			AverageUnitPrice: g.mean(g.unitPrice),
		})
	}
	return out
}

func sortChronologically(groups []*groupTotals) {
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].year != groups[j].year {
			return groups[i].year < groups[j].year
		}
		return groups[i].period < groups[j].period
	})
}

func sortByRevenueDesc(groups []*groupTotals) {
	sort.SliceStable(groups, func(i, j int) bool {
		if c := groups[i].revenue.Cmp(groups[j].revenue); c != 0 {
			return c > 0
		}
		return groups[i].key < groups[j].key
	})
}
