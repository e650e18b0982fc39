package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/activity"
	"github.com/tally-dev/tally/internal/store"
)

func newDeleteCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			expenseID, err := a.resolveID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			removed, err := a.store.Delete(cmd.Context(), expenseID)
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("%w: %s", store.ErrNotFound, expenseID)
			}

			if err := a.record("delete: "+expenseID, activity.Entry{
				Action:    activity.ActionDelete,
				ExpenseID: expenseID,
			}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", expenseID)
			return nil
		},
	}
}
