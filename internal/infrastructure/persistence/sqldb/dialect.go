package sqldb

import (
	"context"
	"database/sql"

	"github.com/jmanzanog/t212-tickers/internal/domain"
)

// Dialect hides the placeholder syntax, row limiting and migration tooling
// that differ between the supported databases.
type Dialect interface {
	Name() string
	DriverName() string
	Migrate(ctx context.Context, db *sql.DB) error
	InsertSnapshot(ctx context.Context, tx *sql.Tx, id string, s *domain.Snapshot) error
	// LatestSnapshotQuery selects name, created_at and payload of the newest
	// snapshot of the table bound to the first placeholder.
	LatestSnapshotQuery() string
}
