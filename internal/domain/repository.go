package domain

import (
	"context"
	"time"
)

// Snapshot is a serialized table as kept by a SnapshotStore.
type Snapshot struct {
	Name      string
	Table     string
	CreatedAt time.Time
	Payload   []byte
}

// SnapshotStore keeps serialized tables so development runs can avoid
// calling the broker. All methods accept context.Context so SQL-backed
// stores get proper cancellation.
type SnapshotStore interface {
	// Latest returns the most recent snapshot of table. ok is false when the
	// store holds none; that is not an error.
	Latest(ctx context.Context, table string) (snap Snapshot, ok bool, err error)
	// Save stores payload as a new snapshot of table taken at the given time.
	Save(ctx context.Context, table string, payload []byte, at time.Time) (Snapshot, error)
}
