package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/activity"
	"github.com/tally-dev/tally/internal/importer"
	"github.com/tally-dev/tally/internal/model"
)

func newImportCommand(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import expenses from a CSV file or the import/ directory",
		Long: "Import expenses from one CSV file, or from every CSV in <dir>/import/ when no\n" +
			"file is given. Files from import/ are moved to import/processed/ afterwards.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown import format %q (available: %v)", format, importer.DefaultRegistry().Formats())
			}

			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			// importFile stores the rows of path and runs settle before the
			// activity log is written. Once rows are saved, log failures only warn.
			importFile := func(path string, settle func() error) (int, error) {
				name := filepath.Base(path)
				inputs, err := importer.ParseFile(parser, path)
				if err != nil {
					return 0, err
				}
				created, err := a.store.CreateAll(cmd.Context(), inputs)
				if err != nil {
					return 0, fmt.Errorf("importing %s: %w", name, err)
				}
				if err := settle(); err != nil {
					return len(created), fmt.Errorf("imported %d expenses from %s but could not move it: %w", len(created), name, err)
				}
				if err := a.record("import: "+name, importEntries(created, name)...); err != nil {
					a.logger.Warn("activity log not updated", "file", name, "error", err)
				}
				return len(created), nil
			}

			if len(args) == 1 {
				n, err := importFile(args[0], func() error { return nil })
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d expenses from %s\n", n, args[0])
				return nil
			}

			files, err := importer.Scan(a.dir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No CSV files in import/")
				return nil
			}
			for _, f := range files {
				n, err := importFile(f.Path, func() error { return importer.MarkProcessed(a.dir, f.Name) })
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d expenses from %s\n", n, f.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "tally", "file format: tally or chase")

	return cmd
}

func importEntries(created []model.Expense, source string) []activity.Entry {
	entries := make([]activity.Entry, len(created))
	for i, e := range created {
		entries[i] = activity.Entry{
			Action:    activity.ActionImport,
			ExpenseID: e.ID,
			Details:   source,
		}
	}
	return entries
}
