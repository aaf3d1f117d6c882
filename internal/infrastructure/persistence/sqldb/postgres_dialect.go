package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/jmanzanog/t212-tickers/internal/domain"
	"github.com/jmanzanog/t212-tickers/internal/infrastructure/persistence/sqldb/migrations"
)

type PostgresDialect struct{}

func (d *PostgresDialect) Name() string { return "postgres" }

func (d *PostgresDialect) DriverName() string { return "pgx" }

func (d *PostgresDialect) Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.PostgresFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "postgres"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

func (d *PostgresDialect) InsertSnapshot(ctx context.Context, tx *sql.Tx, id string, s *domain.Snapshot) error {
	query := `
		INSERT INTO snapshots (id, name, table_name, created_at, payload)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := tx.ExecContext(ctx, query, id, s.Name, s.Table, s.CreatedAt.UTC(), string(s.Payload))
	return err
}

func (d *PostgresDialect) LatestSnapshotQuery() string {
	return `
		SELECT name, created_at, payload
		FROM snapshots
		WHERE table_name = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
}
