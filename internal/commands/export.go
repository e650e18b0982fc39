package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/analytics"
	"github.com/tally-dev/tally/internal/export"
)

func newExportCommand(opts *globalOptions) *cobra.Command {
	var filters filterFlags
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write expenses to a CSV or XLSX file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			records, err := a.filtered(cmd.Context(), &filters)
			if err != nil {
				return err
			}
			records = analytics.SortByDateDesc(records)

			if out == "-" {
				return export.Write(cmd.OutOrStdout(), f, records)
			}

			path := out
			if path == "" {
				path = filepath.Join(a.dir, "exports", fmt.Sprintf("expenses-%s.%s", time.Now().Format("20060102"), f))
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("creating export dir: %w", err)
			}

			file, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating %s: %w", path, err)
			}
			if err := export.Write(file, f, records); err != nil {
				file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d expenses to %s\n", len(records), path)
			return nil
		},
	}

	filters.register(cmd)
	cmd.Flags().StringVar(&format, "format", string(export.FormatCSV), "csv or xlsx")
	cmd.Flags().StringVar(&out, "out", "", "output file, or - for stdout (default exports/expenses-<date>.<format>)")

	return cmd
}
