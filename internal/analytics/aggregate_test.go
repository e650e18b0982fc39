package analytics

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/model"
)

func months(trend []MonthAmount) []string {
	out := make([]string, len(trend))
	for i, m := range trend {
		out[i] = m.Month
	}
	return out
}

func TestAggregate_Empty(t *testing.T) {
	stats := Aggregate(nil)
	assert.Equal(t, 0, stats.Count)
	assert.True(t, stats.Total.IsZero())
	assert.True(t, stats.Average.IsZero())
	assert.NotNil(t, stats.CategoryBreakdown)
	assert.Empty(t, stats.CategoryBreakdown)
	assert.NotNil(t, stats.MonthlyTrend)
	assert.Empty(t, stats.MonthlyTrend)
	assert.Equal(t, 0, stats.CategoriesUsed())
}

func TestAggregate_CoffeeScenario(t *testing.T) {
	records := []model.Expense{
		exp("coffee", model.CategoryFood, "4.5", 2024, time.January, 10),
	}
	stats := Aggregate(records)

	assert.True(t, stats.Total.Equal(dec("4.5")))
	assert.True(t, stats.Average.Equal(dec("4.5")))
	require.Len(t, stats.CategoryBreakdown, 1)
	assert.True(t, stats.CategoryBreakdown[model.CategoryFood].Equal(dec("4.5")))
	require.Len(t, stats.MonthlyTrend, 1)
	assert.Equal(t, "Jan 2024", stats.MonthlyTrend[0].Month)
	assert.True(t, stats.MonthlyTrend[0].Amount.Equal(dec("4.5")))
}

func TestAggregate_TotalsAndBreakdown(t *testing.T) {
	stats := Aggregate(fixture())

	assert.Equal(t, 6, stats.Count)
	assert.True(t, stats.Total.Equal(dec("1956.99")), "total %s", stats.Total)
	assert.True(t, stats.Average.Equal(dec("1956.99").Div(dec("6"))))

	assert.Len(t, stats.CategoryBreakdown, 4)
	assert.True(t, stats.CategoryBreakdown[model.CategoryFood].Equal(dec("17")))
	assert.True(t, stats.CategoryBreakdown[model.CategoryHousing].Equal(dec("1500")))
	_, ok := stats.CategoryBreakdown[model.CategoryEducation]
	assert.False(t, ok, "absent categories are not zero-filled")
}

func TestAggregate_TrendSortedAndSparse(t *testing.T) {
	stats := Aggregate(fixture())
	assert.Equal(t, []string{"Jan 2024", "Feb 2024", "Mar 2024", "Jun 2024", "Jul 2024"}, months(stats.MonthlyTrend))
	assert.True(t, stats.MonthlyTrend[3].Amount.Equal(dec("350")), "June sums both records")
}

func TestAggregate_TrendKeepsMostRecentSix(t *testing.T) {
	var records []model.Expense
	// Insert newest first so insertion order disagrees with calendar order.
	for m := 12; m >= 1; m-- {
		records = append(records, exp("x", model.CategoryOther, "1", 2023, time.Month(m), 15))
	}
	records = append(records, exp("y", model.CategoryOther, "1", 2024, time.January, 2))

	stats := Aggregate(records)
	assert.Equal(t, []string{"Aug 2023", "Sep 2023", "Oct 2023", "Nov 2023", "Dec 2023", "Jan 2024"}, months(stats.MonthlyTrend))
}

func TestAggregate_SameMonthDifferentYears(t *testing.T) {
	records := []model.Expense{
		exp("a", model.CategoryOther, "1", 2024, time.March, 1),
		exp("b", model.CategoryOther, "2", 2023, time.March, 1),
	}
	stats := Aggregate(records)
	assert.Equal(t, []string{"Mar 2023", "Mar 2024"}, months(stats.MonthlyTrend))
}

func TestAggregateWindow(t *testing.T) {
	stats := AggregateWindow(fixture(), 2)
	assert.Equal(t, []string{"Jun 2024", "Jul 2024"}, months(stats.MonthlyTrend))

	stats = AggregateWindow(fixture(), 0)
	assert.Empty(t, stats.MonthlyTrend)
}

func TestAggregate_OrderIndependent(t *testing.T) {
	base := fixture()
	want := Aggregate(base)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 25; i++ {
		shuffled := make([]model.Expense, len(base))
		copy(shuffled, base)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := Aggregate(shuffled)
		assert.True(t, want.Total.Equal(got.Total))
		assert.True(t, want.Average.Equal(got.Average))
		require.Len(t, got.CategoryBreakdown, len(want.CategoryBreakdown))
		for c, amount := range want.CategoryBreakdown {
			assert.True(t, amount.Equal(got.CategoryBreakdown[c]), "category %s", c)
		}
		require.Equal(t, months(want.MonthlyTrend), months(got.MonthlyTrend))
		for j := range want.MonthlyTrend {
			assert.True(t, want.MonthlyTrend[j].Amount.Equal(got.MonthlyTrend[j].Amount))
		}
		assert.LessOrEqual(t, len(got.MonthlyTrend), DefaultTrendMonths)
	}
}

func TestSortedBreakdown(t *testing.T) {
	records := []model.Expense{
		exp("a", model.CategoryTravel, "10", 2024, 1, 1),
		exp("b", model.CategoryFood, "10", 2024, 1, 1),
		exp("c", model.CategoryHousing, "900", 2024, 1, 1),
	}
	rows := Aggregate(records).SortedBreakdown()
	require.Len(t, rows, 3)
	assert.Equal(t, model.CategoryHousing, rows[0].Category)
	assert.Equal(t, model.CategoryFood, rows[1].Category, "ties follow display order")
	assert.Equal(t, model.CategoryTravel, rows[2].Category)
}

func TestShare(t *testing.T) {
	stats := Aggregate([]model.Expense{
		exp("a", model.CategoryFood, "25", 2024, 1, 1),
		exp("b", model.CategoryHousing, "75", 2024, 1, 1),
	})
	assert.True(t, stats.Share(dec("25")).Equal(dec("25")))
	assert.True(t, Aggregate(nil).Share(dec("5")).IsZero())
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "$0.00"},
		{"4.5", "$4.50"},
		{"1234.5", "$1,234.50"},
		{"1500", "$1,500.00"},
		{"1234567.891", "$1,234,567.89"},
		{"-3", "-$3.00"},
		{"0.005", "$0.01"},
		{"-0.001", "$0.00"},
		{"12345678901234567.89", "$12,345,678,901,234,567.89"},
		{"0.1", "$0.10"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.amount), "$"), "amount %s", tt.amount)
	}
	assert.Equal(t, "€9.99", FormatCurrency(dec("9.99"), "€"))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "42.5%", FormatPercent(dec("42.5")))
	assert.Equal(t, "33.3%", FormatPercent(dec("100").Div(dec("3"))))
}
