package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/activity"
	"github.com/tally-dev/tally/internal/analytics"
	"github.com/tally-dev/tally/internal/model"
)

func newEditCommand(opts *globalOptions) *cobra.Command {
	var description, amount, category, date string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an existing expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := parsePatch(cmd, description, amount, category, date)
			if err != nil {
				return err
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to change: set at least one of --description, --amount, --category, --date")
			}

			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			expenseID, err := a.resolveID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			e, err := a.store.Update(cmd.Context(), expenseID, patch)
			if err != nil {
				return err
			}

			if err := a.record("edit: "+e.Description, activity.Entry{
				Action:    activity.ActionUpdate,
				ExpenseID: e.ID,
				Details:   changedFields(cmd),
			}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s %s (%s, %s)\n",
				e.ID, e.Description, analytics.FormatCurrency(e.Amount, a.cfg.Display.CurrencySymbol), e.Category, e.Date)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&amount, "amount", "", "new amount")
	cmd.Flags().StringVar(&category, "category", "", "new category name or slug")
	cmd.Flags().StringVar(&date, "date", "", "new date, YYYY-MM-DD")

	return cmd
}

// parsePatch builds a Patch from the flags the user actually set.
func parsePatch(cmd *cobra.Command, description, amount, category, date string) (model.Patch, error) {
	var p model.Patch
	flags := cmd.Flags()

	if flags.Changed("description") {
		p.Description = &description
	}
	if flags.Changed("amount") {
		v, err := decimal.NewFromString(amount)
		if err != nil {
			return p, fmt.Errorf("invalid amount %q", amount)
		}
		p.Amount = &v
	}
	if flags.Changed("category") {
		c, err := model.ParseCategory(category)
		if err != nil {
			return p, err
		}
		p.Category = &c
	}
	if flags.Changed("date") {
		d, err := model.ParseDate(date)
		if err != nil {
			return p, err
		}
		p.Date = &d
	}
	return p, nil
}

func changedFields(cmd *cobra.Command) string {
	var names []string
	for _, name := range []string{"description", "amount", "category", "date"} {
		if cmd.Flags().Changed(name) {
			names = append(names, name)
		}
	}
	return strings.Join(names, " ")
}
