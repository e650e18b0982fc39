package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/buildinfo"
	"github.com/tally-dev/tally/internal/config"
)

// globalOptions holds flags shared by every subcommand.
type globalOptions struct {
	dir string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Personal expense tracker",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	defaultDir := os.Getenv(config.EnvDir)
	if defaultDir == "" {
		defaultDir = "."
	}
	rootCmd.PersistentFlags().StringVar(&opts.dir, "dir", defaultDir, "project directory (env "+config.EnvDir+")")

	rootCmd.AddCommand(
		newInitCommand(opts),
		newAddCommand(opts),
		newEditCommand(opts),
		newDeleteCommand(opts),
		newListCommand(opts),
		newStatsCommand(opts),
		newSampleCommand(opts),
		newExportCommand(opts),
		newImportCommand(opts),
		newChartCommand(opts),
	)

	return rootCmd
}
