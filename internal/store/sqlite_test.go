package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) *SQLiteSlot {
	t.Helper()
	slot, err := OpenSQLiteSlot(filepath.Join(t.TempDir(), "db", "tally.db"))
	require.NoError(t, err)
	t.Cleanup(func() { slot.Close() })
	return slot
}

func TestSQLiteSlot_GetMissing(t *testing.T) {
	slot := openTestSQLite(t)
	_, err := slot.Get(context.Background(), DefaultKey)
	assert.ErrorIs(t, err, ErrSlotEmpty)
}

func TestSQLiteSlot_Upsert(t *testing.T) {
	ctx := context.Background()
	slot := openTestSQLite(t)

	require.NoError(t, slot.Put(ctx, DefaultKey, []byte(`[]`)))
	require.NoError(t, slot.Put(ctx, DefaultKey, []byte(`[{"id":"y"}]`)))
	require.NoError(t, slot.Put(ctx, "other", []byte(`[]`)))

	got, err := slot.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"y"}]`, string(got))
}

func TestSQLiteSlot_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tally.db")

	first, err := OpenSQLiteSlot(path)
	require.NoError(t, err)
	created, err := New(first).Create(ctx, coffee())
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// Migrations are idempotent across opens.
	second, err := OpenSQLiteSlot(path)
	require.NoError(t, err)
	defer second.Close()

	records, err := New(second).LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, created.ID, records[0].ID)
}
