package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/analytics"
	"github.com/tally-dev/tally/internal/model"
)

// filterFlags are the shared list/stats/export/chart filter options.
type filterFlags struct {
	category string
	from     string
	to       string
	min      string
	max      string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.category, "category", "", "only this category (name or slug)")
	cmd.Flags().StringVar(&f.from, "from", "", "start date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "end date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.min, "min", "", "minimum amount, inclusive")
	cmd.Flags().StringVar(&f.max, "max", "", "maximum amount, inclusive")
}

func (f *filterFlags) criteria() (analytics.Criteria, error) {
	var c analytics.Criteria

	if f.category != "" {
		cat, err := model.ParseCategory(f.category)
		if err != nil {
			return c, err
		}
		c.Category = &cat
	}
	if f.from != "" {
		d, err := model.ParseDate(f.from)
		if err != nil {
			return c, fmt.Errorf("--from: %w", err)
		}
		c.StartDate = &d
	}
	if f.to != "" {
		d, err := model.ParseDate(f.to)
		if err != nil {
			return c, fmt.Errorf("--to: %w", err)
		}
		c.EndDate = &d
	}
	if f.min != "" {
		v, err := decimal.NewFromString(f.min)
		if err != nil {
			return c, fmt.Errorf("--min: invalid amount %q", f.min)
		}
		c.MinAmount = &v
	}
	if f.max != "" {
		v, err := decimal.NewFromString(f.max)
		if err != nil {
			return c, fmt.Errorf("--max: invalid amount %q", f.max)
		}
		c.MaxAmount = &v
	}
	return c, nil
}
