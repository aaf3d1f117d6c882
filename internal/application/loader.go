package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/jmanzanog/t212-tickers/internal/domain"
	"github.com/jmanzanog/t212-tickers/internal/infrastructure/snapshot"
)

// Logical table names. Snapshots are looked up by these prefixes.
const (
	TableExchanges   = "t212_exchanges"
	TablePortfolio   = "t212_portfolio"
	TableInstruments = "t212_instruments"
)

type tableLoader struct {
	store domain.SnapshotStore
	mode  Mode
	now   func() time.Time
}

func (l *tableLoader) logLoaded(table, source string, rows int) {
	level := slog.LevelDebug
	if l.mode.Has(ModeVerbose) {
		level = slog.LevelInfo
	}
	slog.Log(context.Background(), level, "Table loaded", "table", table, "source", source, "rows", rows)
}

// loadSnapshot returns the newest stored rows of table. Outside debug mode,
// or when nothing usable is stored, ok is false.
func loadSnapshot[T any](ctx context.Context, l *tableLoader, table string) (rows []T, name string, ok bool) {
	if !l.mode.Has(ModeDebug) || l.store == nil {
		return nil, "", false
	}

	snap, found, err := l.store.Latest(ctx, table)
	if err != nil {
		slog.Warn("Failed to read snapshot, loading live", "table", table, "error", err)
		return nil, "", false
	}
	if !found {
		return nil, "", false
	}

	rows, err = snapshot.Decode[T](snap.Payload)
	if err != nil {
		slog.Warn("Malformed snapshot, loading live", "table", table, "snapshot", snap.Name, "error", err)
		return nil, "", false
	}
	return rows, snap.Name, true
}

// dump stores rows as a new snapshot. Failures are logged only.
func dump[T any](ctx context.Context, l *tableLoader, table string, rows []T) {
	if !l.mode.Has(ModeDumpToFile) || l.store == nil {
		return
	}

	payload, err := snapshot.Encode(rows)
	if err != nil {
		slog.Error("Failed to encode snapshot", "table", table, "error", err)
		return
	}

	snap, err := l.store.Save(ctx, table, payload, l.now())
	if err != nil {
		slog.Error("Failed to dump snapshot", "table", table, "error", err)
		return
	}
	slog.Debug("Snapshot dumped", "table", table, "snapshot", snap.Name)
}

// loadTable prefers a stored snapshot and falls back to fetch.
func loadTable[T any](ctx context.Context, l *tableLoader, table string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	if rows, name, ok := loadSnapshot[T](ctx, l, table); ok {
		l.logLoaded(table, name, len(rows))
		return rows, nil
	}

	rows, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	l.logLoaded(table, "live", len(rows))

	dump(ctx, l, table, rows)
	return rows, nil
}
