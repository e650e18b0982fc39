package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSlot_GetMissing(t *testing.T) {
	slot := NewFileSlot(filepath.Join(t.TempDir(), "data"))
	_, err := slot.Get(context.Background(), DefaultKey)
	assert.ErrorIs(t, err, ErrSlotEmpty)
}

func TestFileSlot_PutGet(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")
	slot := NewFileSlot(dir)

	require.NoError(t, slot.Put(ctx, DefaultKey, []byte(`[]`)))
	require.NoError(t, slot.Put(ctx, DefaultKey, []byte(`[{"id":"x"}]`)))

	got, err := slot.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"x"}]`, string(got))

	// Only the target file remains; temp files are cleaned up.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "household_expenses.json", entries[0].Name())
}

func TestFileSlot_KeyCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	slot := NewFileSlot(dir)
	path := slot.Path("../../etc/passwd")
	assert.Equal(t, dir, filepath.Dir(path))
}

func TestFileSlot_WithStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s := New(NewFileSlot(dir))
	created, err := s.Create(ctx, coffee())
	require.NoError(t, err)

	// A second store over the same directory sees the write.
	reopened := New(NewFileSlot(dir))
	records, err := reopened.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, created.ID, records[0].ID)
}

func TestFileSlot_CorruptFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "household_expenses.json"), []byte("garbage"), 0o644))

	records, err := New(NewFileSlot(dir)).LoadAll(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.Empty(t, records)
}
