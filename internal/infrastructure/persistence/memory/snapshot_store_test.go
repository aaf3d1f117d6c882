package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotStore_LatestMiss(t *testing.T) {
	store := NewSnapshotStore()

	_, ok, err := store.Latest(context.Background(), "t212_exchanges")

	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshotStore_SaveAndLatest(t *testing.T) {
	store := NewSnapshotStore()
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	_, err := store.Save(ctx, "t212_exchanges", []byte(`old`), at)
	require.NoError(t, err)
	_, err = store.Save(ctx, "t212_exchanges", []byte(`new`), at.Add(time.Second))
	require.NoError(t, err)
	_, err = store.Save(ctx, "t212_portfolio", []byte(`pf`), at.Add(time.Hour))
	require.NoError(t, err)

	snap, ok, err := store.Latest(ctx, "t212_exchanges")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", string(snap.Payload))
	assert.Equal(t, 3, store.Len())
}

func TestSnapshotStore_LaterSaveWinsTie(t *testing.T) {
	store := NewSnapshotStore()
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	_, _ = store.Save(ctx, "t212_portfolio", []byte(`first`), at)
	_, _ = store.Save(ctx, "t212_portfolio", []byte(`second`), at)

	snap, ok, err := store.Latest(ctx, "t212_portfolio")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", string(snap.Payload))
}

func TestSnapshotStore_CopiesPayload(t *testing.T) {
	store := NewSnapshotStore()
	payload := []byte(`abc`)

	_, err := store.Save(context.Background(), "t212_portfolio", payload, time.Now())
	require.NoError(t, err)
	payload[0] = 'x'

	snap, _, _ := store.Latest(context.Background(), "t212_portfolio")
	assert.Equal(t, "abc", string(snap.Payload))
}
