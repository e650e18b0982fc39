// Package charts renders spending statistics as PNG images.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/tally-dev/tally/internal/analytics"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no expenses to chart")

const (
	pieSize     = 800
	trendWidth  = 1000
	trendHeight = 500
	barWidth    = 60
)

var background = chart.Style{
	Padding: chart.Box{
		Top:    50,
		Left:   50,
		Right:  50,
		Bottom: 50,
	},
	FillColor: chart.ColorWhite,
}

// CategoryPie renders the category breakdown as a pie chart, one slice per
// category colored from the category table.
func CategoryPie(stats analytics.Stats) ([]byte, error) {
	if !stats.Total.IsPositive() {
		return nil, ErrNoData
	}

	var values []chart.Value
	for _, row := range stats.SortedBreakdown() {
		if !row.Amount.IsPositive() {
			continue
		}
		amount, _ := row.Amount.Float64()
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %s", row.Category, analytics.FormatPercent(stats.Share(row.Amount))),
			Value: amount,
			Style: chart.Style{
				FillColor:   hexColor(row.Category.Color()),
				StrokeColor: chart.ColorWhite,
				FontSize:    12,
				FontColor:   chart.ColorBlack,
			},
		})
	}

	pie := chart.PieChart{
		Title:      "Spending by category",
		Width:      pieSize,
		Height:     pieSize,
		Values:     values,
		Background: background,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering category chart: %w", err)
	}
	return buf.Bytes(), nil
}

// TrendBars renders the monthly trend as a bar chart, oldest month first.
func TrendBars(stats analytics.Stats) ([]byte, error) {
	if len(stats.MonthlyTrend) == 0 {
		return nil, ErrNoData
	}

	bars := make([]chart.Value, 0, len(stats.MonthlyTrend))
	peak := 0.0
	for _, m := range stats.MonthlyTrend {
		amount, _ := m.Amount.Float64()
		if amount > peak {
			peak = amount
		}
		bars = append(bars, chart.Value{
			Label: m.Month,
			Value: amount,
			Style: chart.Style{
				FillColor:   chart.ColorBlue,
				StrokeColor: chart.ColorBlue,
			},
		})
	}
	if peak == 0 {
		peak = 1
	}

	graph := chart.BarChart{
		Title:      "Monthly spending",
		Width:      trendWidth,
		Height:     trendHeight,
		BarWidth:   barWidth,
		Background: background,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: peak * 1.1},
			ValueFormatter: func(v interface{}) string {
				f, _ := v.(float64)
				return fmt.Sprintf("%.0f", f)
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering trend chart: %w", err)
	}
	return buf.Bytes(), nil
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
