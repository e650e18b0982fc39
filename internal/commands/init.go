package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/gitops"
)

func newInitCommand(opts *globalOptions) *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new Tally project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.dir
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			hash, err := runInit(absDir, backend)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized Tally project at %s (%s)\n", absDir, hash)
			return nil
		},
	}

	cmd.Flags().StringVar(&backend, "backend", config.BackendFile, "storage backend: file or sqlite")

	return cmd
}

func runInit(dir, backend string) (string, error) {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return "", fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("checking %s: %w", config.FileName, err)
	}

	cfg := config.Default()
	cfg.Storage.Backend = backend
	if backend == config.BackendSQLite {
		cfg.Storage.Path = filepath.Join("data", "tally.db")
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	dirs := []string{
		"data",
		"logs",
		"exports",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return "", err
	}

	gitignore := "exports/\n.env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return "", fmt.Errorf("writing .gitignore: %w", err)
	}

	for _, keep := range []string{"data", "logs", "import"} {
		if err := os.WriteFile(filepath.Join(dir, keep, ".gitkeep"), []byte{}, 0o644); err != nil {
			return "", fmt.Errorf("writing .gitkeep: %w", err)
		}
	}

	if err := gitops.Init(dir); err != nil {
		return "", fmt.Errorf("git init: %w", err)
	}

	hash, err := gitops.CommitAll(dir, "init: Initialize tally project", cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	if err != nil {
		return "", fmt.Errorf("initial commit: %w", err)
	}
	return hash, nil
}
