package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/activity"
	"github.com/tally-dev/tally/internal/sample"
)

func newSampleCommand(opts *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Load demo expenses covering the last six months",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			existing, err := a.store.LoadAll(cmd.Context())
			if err != nil {
				if !force {
					return err
				}
				a.logger.Warn("replacing unreadable expenses", "error", err)
				existing = nil
			}
			if len(existing) > 0 && !force {
				return fmt.Errorf("store already has %d expenses; use --force to replace them", len(existing))
			}

			records := sample.Generate(time.Now())
			if err := a.store.SaveAll(cmd.Context(), records); err != nil {
				return err
			}

			if err := a.record("sample: Load demo data", activity.Entry{
				Action:  activity.ActionSample,
				Details: fmt.Sprintf("replaced %d with %d", len(existing), len(records)),
			}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d sample expenses\n", len(records))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "replace existing expenses")

	return cmd
}
