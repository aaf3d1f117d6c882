package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jmanzanog/t212-tickers/internal/domain"
)

// SnapshotStore keeps snapshots in process memory. It backs tests and the
// "memory" snapshot backend, which lets dump-then-reload work without disk.
type SnapshotStore struct {
	mu        sync.RWMutex
	snapshots []domain.Snapshot
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Latest matches on the table-name prefix like the file store does; the
// newest CreatedAt wins and later saves win ties.
func (s *SnapshotStore) Latest(ctx context.Context, table string) (domain.Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		latest domain.Snapshot
		found  bool
	)
	for _, snap := range s.snapshots {
		if !strings.HasPrefix(snap.Name, table) {
			continue
		}
		if !found || !snap.CreatedAt.Before(latest.CreatedAt) {
			latest = snap
			found = true
		}
	}

	return latest, found, nil
}

func (s *SnapshotStore) Save(ctx context.Context, table string, payload []byte, at time.Time) (domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := domain.Snapshot{
		Name:      fmt.Sprintf("%s_%d", table, len(s.snapshots)),
		Table:     table,
		CreatedAt: at,
		Payload:   append([]byte(nil), payload...),
	}
	s.snapshots = append(s.snapshots, snap)
	return snap, nil
}

// Len returns the number of snapshots held.
func (s *SnapshotStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshots)
}
