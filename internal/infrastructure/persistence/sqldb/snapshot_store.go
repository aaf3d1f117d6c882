package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jmanzanog/t212-tickers/internal/domain"
)

const snapshotTimeLayout = "20060102T150405.000000000Z"

// SnapshotStore implements domain.SnapshotStore on top of a SQL database.
// Each snapshot is one row; the newest created_at wins. Ids are UUIDv7, so
// ties on created_at go to the row saved last.
type SnapshotStore struct {
	db *DB
}

func NewSnapshotStore(db *DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

func (s *SnapshotStore) Latest(ctx context.Context, table string) (domain.Snapshot, bool, error) {
	var (
		name      string
		createdAt time.Time
		payload   string
	)

	err := s.db.QueryRowContext(ctx, s.db.Dialect.LatestSnapshotQuery(), table).Scan(&name, &createdAt, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		slog.Debug("No snapshot stored", "table", table, "dialect", s.db.Dialect.Name())
		return domain.Snapshot{}, false, nil
	}
	if err != nil {
		slog.Error("Failed to query snapshot", "table", table, "error", err)
		return domain.Snapshot{}, false, fmt.Errorf("querying snapshot: %w", err)
	}

	return domain.Snapshot{
		Name:      name,
		Table:     table,
		CreatedAt: createdAt,
		Payload:   []byte(payload),
	}, true, nil
}

func (s *SnapshotStore) Save(ctx context.Context, table string, payload []byte, at time.Time) (domain.Snapshot, error) {
	snap := domain.Snapshot{
		Name:      fmt.Sprintf("%s_%s", table, at.UTC().Format(snapshotTimeLayout)),
		Table:     table,
		CreatedAt: at,
		Payload:   payload,
	}

	id, err := uuid.NewV7()
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("generating snapshot id: %w", err)
	}

	err = s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := s.db.Dialect.InsertSnapshot(ctx, tx, id.String(), &snap); err != nil {
			slog.Error("Failed to save snapshot", "table", table, "error", err)
			return fmt.Errorf("insert snapshot: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Snapshot{}, err
	}

	return snap, nil
}
