package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jmanzanog/t212-tickers/internal/domain"
)

// DefaultDir is where snapshots live unless configured otherwise.
const DefaultDir = "db_t212"

const fileTimeLayout = "20060102T150405.000000000Z"

// FileStore keeps snapshots as files named "<table>_<timestamp>.json" in a
// single directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = DefaultDir
	}
	return &FileStore{dir: dir}
}

func (s *FileStore) Dir() string {
	return s.dir
}

// Latest returns the newest file whose name starts with table. Files are
// ranked by modification time; equal times fall back to the greatest name.
// A missing directory is a miss, not an error.
func (s *FileStore) Latest(ctx context.Context, table string) (domain.Snapshot, bool, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, table+"*"))
	if err != nil {
		return domain.Snapshot{}, false, fmt.Errorf("listing snapshots for %s: %w", table, err)
	}

	var (
		latestPath string
		latestTime time.Time
	)
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		mod := info.ModTime()
		if latestPath == "" || mod.After(latestTime) || (mod.Equal(latestTime) && path > latestPath) {
			latestPath = path
			latestTime = mod
		}
	}

	if latestPath == "" {
		return domain.Snapshot{}, false, nil
	}

	payload, err := os.ReadFile(latestPath)
	if err != nil {
		return domain.Snapshot{}, false, fmt.Errorf("reading snapshot %s: %w", latestPath, err)
	}

	slog.DebugContext(ctx, "Read snapshot file", "path", latestPath, "bytes", len(payload))

	return domain.Snapshot{
		Name:      filepath.Base(latestPath),
		Table:     table,
		CreatedAt: latestTime,
		Payload:   payload,
	}, true, nil
}

// Save writes payload to a new timestamped file and sets its modification
// time to at, so Latest ranks it by the time the table was taken.
func (s *FileStore) Save(ctx context.Context, table string, payload []byte, at time.Time) (domain.Snapshot, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return domain.Snapshot{}, fmt.Errorf("creating snapshot dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s.json", table, at.UTC().Format(fileTimeLayout))
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return domain.Snapshot{}, fmt.Errorf("writing snapshot %s: %w", path, err)
	}
	if err := os.Chtimes(path, at, at); err != nil {
		return domain.Snapshot{}, fmt.Errorf("stamping snapshot %s: %w", path, err)
	}

	slog.DebugContext(ctx, "Wrote snapshot file", "path", path, "bytes", len(payload))

	return domain.Snapshot{
		Name:      name,
		Table:     table,
		CreatedAt: at,
		Payload:   payload,
	}, nil
}
