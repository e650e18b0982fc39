package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/tally-dev/tally/internal/activity"
	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/gitops"
	"github.com/tally-dev/tally/internal/id"
	"github.com/tally-dev/tally/internal/logging"
	"github.com/tally-dev/tally/internal/store"
)

// app is the per-invocation wiring of config, logger and store.
type app struct {
	dir    string
	cfg    *config.Config
	logger *slog.Logger
	store  *store.Store
	close  func() error
}

func openApp(opts *globalOptions) (*app, error) {
	dir, err := filepath.Abs(opts.dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.LoadProject(dir)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Component: "tally"})
	if err != nil {
		return nil, err
	}

	slot, closeSlot, err := openSlot(cfg, dir)
	if err != nil {
		return nil, err
	}
	logger.Debug("opened storage", "backend", cfg.Storage.Backend, "dir", dir)

	return &app{
		dir:    dir,
		cfg:    cfg,
		logger: logger,
		store:  store.New(slot, store.WithKey(cfg.Storage.Key), store.WithLogger(logger)),
		close:  closeSlot,
	}, nil
}

func openSlot(cfg *config.Config, dir string) (store.Slot, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Storage.Backend {
	case config.BackendFile:
		return store.NewFileSlot(cfg.StoragePath(dir)), noop, nil
	case config.BackendSQLite:
		s, err := store.OpenSQLiteSlot(cfg.StoragePath(dir))
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.BackendMemory:
		return store.NewMemorySlot(), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// resolveID expands a short id from list output to the full stored id.
func (a *app) resolveID(ctx context.Context, ref string) (string, error) {
	records, err := a.store.LoadAll(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return id.Resolve(ids, ref)
}

// record appends activity rows and commits the project when git
// auto-commit is enabled. Git failures are logged, not returned: the data
// change has already been saved.
func (a *app) record(message string, entries ...activity.Entry) error {
	now := time.Now().UTC()
	for i := range entries {
		if entries[i].Timestamp.IsZero() {
			entries[i].Timestamp = now
		}
	}
	if err := activity.Append(a.dir, entries); err != nil {
		return err
	}

	if !a.cfg.Git.AutoCommit || !gitops.IsRepo(a.dir) {
		return nil
	}
	hash, err := gitops.CommitIfChanged(a.dir, message, a.cfg.Git.AuthorName, a.cfg.Git.AuthorEmail)
	if err != nil {
		a.logger.Warn("git commit failed", "error", err)
		return nil
	}
	if hash != "" {
		a.logger.Debug("committed", "hash", hash, "message", message)
	}
	return nil
}
