package savegame

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/tetris"
)

func newSession(store tetris.SaveStore) *tetris.Session {
	return tetris.NewSession(tetris.SessionConfig{
		Rand:  tetris.NewRandomizer(11),
		Saves: store,
	})
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "dir")
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	s := newSession(store)
	s.HardDrop()
	s.HardDrop()
	want := s.Snapshot()

	require.True(t, s.Save(ctx))
	assert.FileExists(t, filepath.Join(dir, "save.json"))

	got, err := store.LoadGame(ctx, tetris.DefaultSlot)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	other := newSession(store)
	require.True(t, other.Load(ctx))
	assert.Equal(t, want, other.Snapshot())
}

func TestFileStoreMissing(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.LoadGame(context.Background(), "nothing-here")
	assert.ErrorIs(t, err, ErrNoSave)

	assert.NoError(t, store.Delete("nothing-here"))
}

func TestFileStoreCorrupt(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.Path(tetris.DefaultSlot), []byte("{not json"), 0o644))

	_, err = store.LoadGame(context.Background(), tetris.DefaultSlot)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSave)

	s := newSession(store)
	before := s.Snapshot()
	assert.False(t, s.Load(context.Background()))
	assert.Equal(t, before, s.Snapshot())
}

func TestFileStoreVersionMismatch(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	snap := newSession(nil).Snapshot()
	snap.Version = 99
	require.NoError(t, store.SaveGame(ctx, tetris.DefaultSlot, snap))

	s := newSession(store)
	s.Board().Fill(0, 19, core.ColorRed)
	assert.False(t, s.Load(ctx))
	assert.Equal(t, 1, s.Board().FilledCount())
}

func TestFileStoreSlots(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "save.json"), store.Path(""))
	assert.Equal(t, filepath.Join(dir, "save-slot_2.json"), store.Path("slot/2"))

	a := newSession(nil).Snapshot()
	b := newSession(nil).Snapshot()
	b.Score = 900
	require.NoError(t, store.SaveGame(ctx, "a", a))
	require.NoError(t, store.SaveGame(ctx, "b", b))

	got, err := store.LoadGame(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 900, got.Score)

	require.NoError(t, store.DeleteSave(ctx, "b"))
	_, err = store.LoadGame(ctx, "b")
	assert.ErrorIs(t, err, ErrNoSave)
}

func TestFileStoreListSaves(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileStore(filepath.Join(dir, "saves"))
	require.NoError(t, err)

	saves, err := store.ListSaves(ctx)
	require.NoError(t, err)
	assert.Empty(t, saves, "missing directory lists nothing")

	snap := newSession(nil).Snapshot()
	require.NoError(t, store.SaveGame(ctx, tetris.DefaultSlot, snap))
	snap.Score = 1200
	require.NoError(t, store.SaveGame(ctx, "ssh:bob", snap))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "saves", "save-broken.json"), []byte("{"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "saves", "notes.txt"), []byte("x"), 0o644))

	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(store.Path(tetris.DefaultSlot), old, old))

	saves, err = store.ListSaves(ctx)
	require.NoError(t, err)
	require.Len(t, saves, 2)
	assert.Equal(t, "ssh_bob", saves[0].Slot)
	assert.Equal(t, 1200, saves[0].Score)
	assert.Equal(t, tetris.DefaultSlot, saves[1].Slot)
	assert.Zero(t, saves[1].Score)

	require.NoError(t, store.DeleteSave(ctx, saves[0].Slot))
	saves, err = store.ListSaves(ctx)
	require.NoError(t, err)
	require.Len(t, saves, 1)
	assert.Equal(t, tetris.DefaultSlot, saves[0].Slot)
}

func TestNewFileStoreExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewFileStore("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".blockfall", "save.json"), store.Path(tetris.DefaultSlot))
}

func TestCanceledContext(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.SaveGame(ctx, "x", tetris.Snapshot{}), context.Canceled)
}
