package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/analytics"
	"github.com/tally-dev/tally/internal/charts"
)

func newChartCommand(opts *globalOptions) *cobra.Command {
	var filters filterFlags
	var out string

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render category and monthly trend charts as PNG",
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

			dir := out
			if dir == "" {
				dir = filepath.Join(a.dir, "exports")
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating chart dir: %w", err)
			}

			renders := []struct {
				name   string
				render func(analytics.Stats) ([]byte, error)
			}{
				{"categories.png", charts.CategoryPie},
				{"trend.png", charts.TrendBars},
			}
			for _, r := range renders {
				data, err := r.render(stats)
				if err != nil {
					return err
				}
				path := filepath.Join(dir, r.name)
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			}
			return nil
		},
	}

	filters.register(cmd)
	cmd.Flags().StringVar(&out, "out", "", "output directory (default exports/)")

	return cmd
}
