package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/jmanzanog/t212-tickers/internal/domain"
	"github.com/jmanzanog/t212-tickers/internal/infrastructure/persistence/sqldb/migrations"
)

// SQLiteDialect targets a local file database through the pure Go driver,
// which is the cheapest way to keep snapshots across development runs.
type SQLiteDialect struct{}

func (d *SQLiteDialect) Name() string { return "sqlite" }

func (d *SQLiteDialect) DriverName() string { return "sqlite" }

func (d *SQLiteDialect) Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.SQLiteFS)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "sqlite"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

func (d *SQLiteDialect) InsertSnapshot(ctx context.Context, tx *sql.Tx, id string, s *domain.Snapshot) error {
	query := `
		INSERT INTO snapshots (id, name, table_name, created_at, payload)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := tx.ExecContext(ctx, query, id, s.Name, s.Table, s.CreatedAt.UTC(), string(s.Payload))
	return err
}

func (d *SQLiteDialect) LatestSnapshotQuery() string {
	return `
		SELECT name, created_at, payload
		FROM snapshots
		WHERE table_name = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
}
