// Tests for the SQLite task backend.
package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/todolist/pkg/types"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b, err := NewBackend(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b
}

func TestBackend_RoundTrip(t *testing.T) {
	b := newTestBackend(t)

	want := []types.Task{
		{Title: "Buy milk", Description: "2%", Category: "General"},
		{Title: "File taxes", Description: "before april", Category: "Admin", Completed: true},
		{Title: "Ünïcode ✓", Description: "", Category: "General"},
	}
	require.NoError(t, b.Save(want))

	got, err := b.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestBackend_RoundTripEmpty(t *testing.T) {
	b := newTestBackend(t)

	require.NoError(t, b.Save([]types.Task{{Title: "gone", Category: "General"}}))
	require.NoError(t, b.Save(nil))

	got, err := b.Load()
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBackend_SaveReplacesAndKeepsOrder(t *testing.T) {
	b := newTestBackend(t)

	require.NoError(t, b.Save([]types.Task{
		{Title: "a", Category: "General"},
		{Title: "b", Category: "General"},
		{Title: "c", Category: "General"},
	}))
	want := []types.Task{
		{Title: "c", Category: "General"},
		{Title: "a", Category: "General", Completed: true},
	}
	require.NoError(t, b.Save(want))

	got, err := b.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestBackend_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tasks.db")

	first, err := NewBackend(path)
	require.NoError(t, err)
	want := []types.Task{{Title: "persist", Description: "me", Category: "General"}}
	require.NoError(t, first.Save(want))
	require.NoError(t, first.Close())

	second, err := NewBackend(path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestBackend_LoadMissingDoesNotCreate(t *testing.T) {
	b := newTestBackend(t)

	got, err := b.Load()
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = os.Stat(b.Path())
	assert.True(t, os.IsNotExist(err), "loading must not create the database")
}

func TestBackend_LoadEmptyFile(t *testing.T) {
	b := newTestBackend(t)
	require.NoError(t, os.WriteFile(b.Path(), nil, 0o644))

	got, err := b.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBackend_LoadCorrupted(t *testing.T) {
	b := newTestBackend(t)
	require.NoError(t, os.WriteFile(b.Path(), []byte("this is definitely not a sqlite database, just some text padding it out"), 0o644))

	got, err := b.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrMalformed)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBackend_LoadWithoutTasksTableIsReadOnly(t *testing.T) {
	b := newTestBackend(t)

	db, err := sql.Open("sqlite", b.Path())
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE notes (body TEXT)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	before, err := os.ReadFile(b.Path())
	require.NoError(t, err)
	info, err := os.Stat(b.Path())
	require.NoError(t, err)

	got, err := b.Load()
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	after, err := os.ReadFile(b.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after, "load must not write to the database")
	afterInfo, err := os.Stat(b.Path())
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), afterInfo.ModTime())
}

func TestBackend_LoadThenSave(t *testing.T) {
	seed := newTestBackend(t)
	require.NoError(t, seed.Save([]types.Task{{Title: "a", Category: "General"}}))

	reader, err := NewBackend(seed.Path())
	require.NoError(t, err)
	t.Cleanup(func() { reader.Close() })
	got, err := reader.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)

	got = append(got, types.Task{Title: "b", Category: "General"})
	require.NoError(t, reader.Save(got))

	again, err := reader.Load()
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestBackend_Close(t *testing.T) {
	b := newTestBackend(t)
	require.NoError(t, b.Save(nil))

	require.NoError(t, b.Close())
	require.NoError(t, b.Close(), "Close is idempotent")

	assert.ErrorIs(t, b.Save(nil), types.ErrClosed)
	_, err := b.Load()
	assert.ErrorIs(t, err, types.ErrClosed)
}

func TestNewBackend_EmptyPath(t *testing.T) {
	_, err := NewBackend("")
	assert.Error(t, err)
}
