package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/analytics"
	"github.com/tally-dev/tally/internal/id"
	"github.com/tally-dev/tally/internal/model"
)

func newListCommand(opts *globalOptions) *cobra.Command {
	var filters filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses, newest first",
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
			return writeTable(cmd.OutOrStdout(), analytics.SortByDateDesc(records), a.cfg.Display.CurrencySymbol)
		},
	}
	filters.register(cmd)

	return cmd
}

// filtered loads every record and applies the filter flags.
func (a *app) filtered(ctx context.Context, f *filterFlags) ([]model.Expense, error) {
	c, err := f.criteria()
	if err != nil {
		return nil, err
	}
	records, err := a.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Filter(records, c), nil
}

func writeTable(w io.Writer, records []model.Expense, symbol string) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No expenses found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tAMOUNT\tDESCRIPTION")
	for _, e := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			id.Short(e.ID), e.Date, e.Category, analytics.FormatCurrency(e.Amount, symbol), e.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	stats := analytics.Aggregate(records)
	_, err := fmt.Fprintf(w, "\n%d expenses, total %s\n", stats.Count, analytics.FormatCurrency(stats.Total, symbol))
	return err
}
