package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jmanzanog/t212-tickers/internal/application"
	"github.com/jmanzanog/t212-tickers/internal/domain"
	"github.com/jmanzanog/t212-tickers/internal/infrastructure/broker"
	"github.com/jmanzanog/t212-tickers/internal/infrastructure/broker/trading212"
	"github.com/jmanzanog/t212-tickers/internal/infrastructure/config"
	"github.com/jmanzanog/t212-tickers/internal/infrastructure/persistence/memory"
	"github.com/jmanzanog/t212-tickers/internal/infrastructure/persistence/sqldb"
	"github.com/jmanzanog/t212-tickers/internal/infrastructure/snapshot"
)

// app carries what every command needs. It is initialized on first use so
// that commands like "codes" work without credentials.
type app struct {
	out          io.Writer
	modeOverride string

	cfg      *config.Config
	mode     application.Mode
	provider broker.Provider
	store    domain.SnapshotStore
	closers  []func() error
}

func (a *app) setup(ctx context.Context) error {
	if a.provider != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	modeFlags := cfg.Mode
	if a.modeOverride != "" {
		modeFlags = a.modeOverride
	}
	mode, err := application.ParseMode(modeFlags)
	if err != nil {
		return fmt.Errorf("invalid mode: %w", err)
	}

	setupLogger(os.Stderr, cfg.LogLevel, mode.Has(application.ModeVerbose))

	a.cfg = cfg
	a.mode = mode
	a.provider = trading212.NewClient(cfg.APIKey, cfg.Demo())

	if mode.Has(application.ModeDebug) || mode.Has(application.ModeDumpToFile) {
		store, closer, err := openSnapshotStore(ctx, cfg)
		if err != nil {
			return err
		}
		a.store = store
		if closer != nil {
			a.closers = append(a.closers, closer)
		}
	}

	slog.Debug("Client configured", "environment", cfg.Environment, "mode", mode.String(), "snapshot_backend", cfg.SnapshotBackend)
	return nil
}

// openSnapshotStore returns the store selected by SNAPSHOT_BACKEND and, for
// SQL backends, the function that releases the connection pool.
func openSnapshotStore(ctx context.Context, cfg *config.Config) (domain.SnapshotStore, func() error, error) {
	switch cfg.SnapshotBackend {
	case config.BackendFS:
		return snapshot.NewFileStore(cfg.SnapshotDir), nil, nil
	case config.BackendMemory:
		return memory.NewSnapshotStore(), nil, nil
	case config.BackendSQLite:
		if err := os.MkdirAll(cfg.SnapshotDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating snapshot directory: %w", err)
		}
		fallthrough
	case config.BackendPostgres, config.BackendOracle:
		db, err := sqldb.Open(ctx, cfg.SnapshotBackend, cfg.SnapshotDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("snapshot database initialization failed: %w", err)
		}
		return sqldb.NewSnapshotStore(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported snapshot backend: %s", cfg.SnapshotBackend)
	}
}

func (a *app) client(ctx context.Context) (*application.Client, error) {
	if err := a.setup(ctx); err != nil {
		return nil, err
	}
	return application.NewClient(ctx, a.provider, a.store, a.mode)
}

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) writeLines(lines []string) {
	for _, l := range lines {
		_, _ = fmt.Fprintln(a.out, l)
	}
}

func (a *app) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			slog.Warn("Failed to close resource", "error", err)
		}
	}
	a.closers = nil
}
