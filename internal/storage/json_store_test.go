package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/model"
)

func TestNewJSONFileStore_EmptyPath(t *testing.T) {
	_, err := NewJSONFileStore("  ")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestJSONFileStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", "budget_data.json")

	store, err := NewJSONFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, path, store.Location())

	want := sampleState()
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	requireSameState(t, want, got)

	// Temporary files must not be left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "budget_data.json", entries[0].Name())
}

func TestJSONFileStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	store, err := NewJSONFileStore(filepath.Join(t.TempDir(), "budget_data.json"))
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, sampleState()))
	require.NoError(t, store.Save(ctx, model.NewLedgerState()))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestJSONFileStore_LoadMissing(t *testing.T) {
	store, err := NewJSONFileStore(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	state, err := store.Load(context.Background())
	assert.Nil(t, state)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
	assert.ErrorIs(t, err, common.ErrStoreRead)
}

func TestJSONFileStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget_data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"income": [ oops`), 0o600))

	store, err := NewJSONFileStore(path)
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, ErrCorruptSnapshot)
}

func TestJSONFileStore_SaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file, not a directory"), 0o600))

	// The parent "directory" is a regular file, so nothing can be written.
	store, err := NewJSONFileStore(filepath.Join(blocker, "budget_data.json"))
	require.NoError(t, err)

	err = store.Save(context.Background(), sampleState())
	assert.ErrorIs(t, err, common.ErrStoreWrite)
}

func TestJSONFileStore_CanceledContext(t *testing.T) {
	store, err := NewJSONFileStore(filepath.Join(t.TempDir(), "budget_data.json"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Save(ctx, sampleState()), context.Canceled)
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
