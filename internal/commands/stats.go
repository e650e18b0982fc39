package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/analytics"
)

func newStatsCommand(opts *globalOptions) *cobra.Command {
	var filters filterFlags

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize spending by category and month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			records, err := a.filtered(cmd.Context(), &filters)
			if err != nil {
				return err
			}
			stats := analytics.AggregateWindow(records, a.cfg.Display.TrendMonths)
			return writeStats(cmd.OutOrStdout(), stats, a.cfg.Display.CurrencySymbol)
		},
	}
	filters.register(cmd)

	return cmd
}

func writeStats(w io.Writer, stats analytics.Stats, symbol string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total:\t%s\n", analytics.FormatCurrency(stats.Total, symbol))
	fmt.Fprintf(tw, "Average:\t%s\n", analytics.FormatCurrency(stats.Average, symbol))
	fmt.Fprintf(tw, "Expenses:\t%d\n", stats.Count)
	fmt.Fprintf(tw, "Categories:\t%d\n", stats.CategoriesUsed())
	if err := tw.Flush(); err != nil {
		return err
	}

	if stats.Count == 0 {
		return nil
	}

	fmt.Fprintln(w, "\nBy category:")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, row := range stats.SortedBreakdown() {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t\n",
			row.Category, analytics.FormatCurrency(row.Amount, symbol), analytics.FormatPercent(stats.Share(row.Amount)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nMonthly trend:")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, m := range stats.MonthlyTrend {
		fmt.Fprintf(tw, "  %s\t%s\t\n", m.Month, analytics.FormatCurrency(m.Amount, symbol))
	}
	return tw.Flush()
}
