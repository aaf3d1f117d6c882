package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/sijms/go-ora/v2"

	"github.com/jmanzanog/t212-tickers/internal/domain"
	"github.com/jmanzanog/t212-tickers/internal/infrastructure/persistence/sqldb/migrations"
)

type OracleDialect struct{}

func (d *OracleDialect) Name() string { return "oracle" }

func (d *OracleDialect) DriverName() string { return "oracle" }

func (d *OracleDialect) Migrate(ctx context.Context, db *sql.DB) error {
	// Goose does not support Oracle natively in a way that is easy to cross-compile with go-ora.
	// The script is split on '/' and executed statement by statement instead.
	content, err := migrations.OracleFS.ReadFile("oracle/20240101000000_snapshots.sql")
	if err != nil {
		return fmt.Errorf("reading migration file: %w", err)
	}

	statements := strings.Split(string(content), "/")

	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}

		if _, err := db.ExecContext(ctx, stmt); err != nil {
			// ORA-00955: name is already used by an existing object
			if !strings.Contains(err.Error(), "ORA-00955") {
				return fmt.Errorf("migrating: %s: %w", stmt, err)
			}
		}
	}
	return nil
}

func (d *OracleDialect) InsertSnapshot(ctx context.Context, tx *sql.Tx, id string, s *domain.Snapshot) error {
	query := `INSERT INTO snapshots (id, name, table_name, created_at, payload)
             VALUES (:1, :2, :3, :4, :5)`

	_, err := tx.ExecContext(ctx, query, id, s.Name, s.Table, s.CreatedAt.UTC(), string(s.Payload))
	return err
}

func (d *OracleDialect) LatestSnapshotQuery() string {
	return `SELECT name, created_at, payload
             FROM snapshots
             WHERE table_name = :1
             ORDER BY created_at DESC, id DESC
             FETCH FIRST 1 ROWS ONLY`
}
