package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/activity"
	"github.com/tally-dev/tally/internal/analytics"
	"github.com/tally-dev/tally/internal/model"
)

func newAddCommand(opts *globalOptions) *cobra.Command {
	var description, amount, category, date string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := parseNewExpense(description, amount, category, date)
			if err != nil {
				return err
			}

			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			e, err := a.store.Create(cmd.Context(), input)
			if err != nil {
				return err
			}

			details := fmt.Sprintf("%s %s %s", e.Description, e.Amount.StringFixed(2), e.Category)
			if err := a.record("add: "+e.Description, activity.Entry{
				Action:    activity.ActionCreate,
				ExpenseID: e.ID,
				Details:   details,
			}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s %s (%s, %s)\n",
				e.ID, e.Description, analytics.FormatCurrency(e.Amount, a.cfg.Display.CurrencySymbol), e.Category, e.Date)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "what the money was spent on (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "amount spent, e.g. 12.50 (required)")
	cmd.Flags().StringVar(&category, "category", "", "category name or slug (required)")
	cmd.Flags().StringVar(&date, "date", "", "date of the expense, YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func parseNewExpense(description, amount, category, date string) (model.NewExpense, error) {
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return model.NewExpense{}, fmt.Errorf("invalid amount %q", amount)
	}
	cat, err := model.ParseCategory(category)
	if err != nil {
		return model.NewExpense{}, err
	}
	d := model.DateOf(time.Now())
	if date != "" {
		if d, err = model.ParseDate(date); err != nil {
			return model.NewExpense{}, err
		}
	}
	return model.NewExpense{
		Description: description,
		Amount:      amt,
		Category:    cat,
		Date:        d,
	}, nil
}
