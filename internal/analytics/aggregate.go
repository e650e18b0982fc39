package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// DefaultTrendMonths is how many monthly buckets Aggregate keeps.
const DefaultTrendMonths = 6

// MonthLabelFormat renders a bucket label such as "Jan 2024".
const MonthLabelFormat = "Jan 2006"

// MonthAmount is one bucket of the monthly trend.
type MonthAmount struct {
	Month  string
	Start  model.Date
	Amount decimal.Decimal
}

// Stats summarizes a list of expenses.
type Stats struct {
	Count             int
	Total             decimal.Decimal
	Average           decimal.Decimal
	CategoryBreakdown map[model.Category]decimal.Decimal
	MonthlyTrend      []MonthAmount
}

// CategoryAmount is one row of a sorted breakdown.
type CategoryAmount struct {
	Category model.Category
	Amount   decimal.Decimal
}

// Aggregate computes Stats with a six-month trend.
func Aggregate(records []model.Expense) Stats {
	return AggregateWindow(records, DefaultTrendMonths)
}

// AggregateWindow computes Stats keeping the most recent months buckets of
// the trend. Months without expenses are not included.
func AggregateWindow(records []model.Expense, months int) Stats {
	stats := Stats{
		Count:             len(records),
		Total:             decimal.Zero,
		Average:           decimal.Zero,
		CategoryBreakdown: make(map[model.Category]decimal.Decimal),
		MonthlyTrend:      []MonthAmount{},
	}

	buckets := make(map[model.Date]decimal.Decimal)
	for _, r := range records {
		stats.Total = stats.Total.Add(r.Amount)

		if cur, ok := stats.CategoryBreakdown[r.Category]; ok {
			stats.CategoryBreakdown[r.Category] = cur.Add(r.Amount)
		} else {
			stats.CategoryBreakdown[r.Category] = r.Amount
		}

		start := r.Date.MonthStart()
		if cur, ok := buckets[start]; ok {
			buckets[start] = cur.Add(r.Amount)
		} else {
			buckets[start] = r.Amount
		}
	}

	if stats.Count > 0 {
		stats.Average = stats.Total.Div(decimal.NewFromInt(int64(stats.Count)))
	}

	for start, amount := range buckets {
		stats.MonthlyTrend = append(stats.MonthlyTrend, MonthAmount{
			Month:  start.Format(MonthLabelFormat),
			Start:  start,
			Amount: amount,
		})
	}
	sort.Slice(stats.MonthlyTrend, func(i, j int) bool {
		return stats.MonthlyTrend[i].Start.Before(stats.MonthlyTrend[j].Start.Time)
	})
	if months >= 0 && len(stats.MonthlyTrend) > months {
		stats.MonthlyTrend = stats.MonthlyTrend[len(stats.MonthlyTrend)-months:]
	}

	return stats
}

// CategoriesUsed returns how many categories appear in the breakdown.
func (s Stats) CategoriesUsed() int {
	return len(s.CategoryBreakdown)
}

// SortedBreakdown returns the breakdown largest amount first; ties follow
// category display order.
func (s Stats) SortedBreakdown() []CategoryAmount {
	out := make([]CategoryAmount, 0, len(s.CategoryBreakdown))
	for c, amount := range s.CategoryBreakdown {
		out = append(out, CategoryAmount{Category: c, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if cmp := out[i].Amount.Cmp(out[j].Amount); cmp != 0 {
			return cmp > 0
		}
		return out[i].Category.Index() < out[j].Category.Index()
	})
	return out
}

// Share returns amount as a percentage of the total, or zero when the total is zero.
func (s Stats) Share(amount decimal.Decimal) decimal.Decimal {
	if s.Total.IsZero() {
		return decimal.Zero
	}
	return amount.Div(s.Total).Mul(decimal.NewFromInt(100))
}
