package sqldb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgres(t *testing.T) (*DB, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %s", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		t.Fatalf("failed to get connection string: %s", err)
	}

	db, err := Open(ctx, "postgres", connStr)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		t.Fatalf("failed to open db: %s", err)
	}

	return db, func() {
		_ = db.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
}

func TestSnapshotStore_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db, cleanup := setupPostgres(t)
	defer cleanup()

	ctx := context.Background()
	store := NewSnapshotStore(db)

	at := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
	_, err := store.Save(ctx, "t212_instruments", []byte(`{"0":{"ticker":"A"}}`), at)
	require.NoError(t, err)
	_, err = store.Save(ctx, "t212_instruments", []byte(`{"0":{"ticker":"B"}}`), at.Add(time.Minute))
	require.NoError(t, err)

	snap, ok, err := store.Latest(ctx, "t212_instruments")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"0":{"ticker":"B"}}`, string(snap.Payload))
	assert.True(t, at.Add(time.Minute).Equal(snap.CreatedAt))

	_, ok, err = store.Latest(ctx, "t212_exchanges")
	require.NoError(t, err)
	assert.False(t, ok)
}
