package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Silcet/rpg-cli/internal/game"
	"github.com/Silcet/rpg-cli/internal/storage"
)

func newGame(t *testing.T) *game.Game {
	t.Helper()
	return game.New(t.TempDir(), game.Options{})
}

func TestLoad_MissingSnapshot(t *testing.T) {
	df := storage.NewDatafile(filepath.Join(t.TempDir(), "nope"), nil)
	_, err := df.Load()
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	df := storage.NewDatafile(filepath.Join(t.TempDir(), "rpg"), nil)

	g := newGame(t)
	g.Gold = 42
	g.AddItem("potion", 3)
	require.NoError(t, df.Save(g))

	loaded, err := df.Load()
	require.NoError(t, err)
	require.NoError(t, loaded.Hydrate(game.Options{}))

	assert.Equal(t, 42, loaded.Gold)
	assert.Equal(t, 3, loaded.Inventory["potion"])
	assert.Equal(t, g.Player.Level, loaded.Player.Level)
}

func TestSave_OverwritesPrevious(t *testing.T) {
	df := storage.NewDatafile(filepath.Join(t.TempDir(), "rpg"), nil)

	g := newGame(t)
	require.NoError(t, df.Save(g))
	g.Gold = 7
	require.NoError(t, df.Save(g))

	loaded, err := df.Load()
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Gold)
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "rpg")
	df := storage.NewDatafile(dir, nil)
	require.NoError(t, df.Save(newGame(t)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "data.yaml", entries[0].Name())
}

func TestLoad_CorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	df := storage.NewDatafile(dir, nil)
	require.NoError(t, os.WriteFile(df.Path(), []byte("{not yaml"), 0o644))

	_, err := df.Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
}

func TestRemove(t *testing.T) {
	df := storage.NewDatafile(t.TempDir(), nil)
	require.NoError(t, df.Remove(), "removing a missing snapshot is not an error")

	require.NoError(t, df.Save(newGame(t)))
	require.NoError(t, df.Remove())
	_, err := df.Load()
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
