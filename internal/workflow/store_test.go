package workflow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asimons81/guide-generator/internal/types"
)

func TestStoreRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	s := sessionWithStrategy()
	s.Stage = StageUpload
	s.Article.ImagePlan = twoImagePlan()
	s.Images = []types.UploadedImage{{Filename: "a.png", Data: []byte{0x89, 0x50}}}

	require.NoError(t, store.Save(s))

	loaded, err := store.Load(s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, loaded.ID)
	assert.Equal(t, StageUpload, loaded.Stage)
	assert.Equal(t, "Best Budget Phones 2025", loaded.Article.Title)
	assert.Equal(t, 2, loaded.Article.ImagePlan.Count())
	require.Len(t, loaded.Images, 1)
	assert.Equal(t, []byte{0x89, 0x50}, loaded.Images[0].Data)
}

func TestStoreLoad_NotFound(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("no-such-session")
	require.Error(t, err)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "no-such-session", notFound.ID)
}

func TestStoreDelete(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	s := NewSession()
	require.NoError(t, store.Save(s))
	require.NoError(t, store.Delete(s.ID))

	_, err = store.Load(s.ID)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)

	// deleting again is fine
	require.NoError(t, store.Delete(s.ID))
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	a := NewSession()
	b := NewSession()
	require.NoError(t, store.Save(a))
	require.NoError(t, store.Save(b))

	// stray files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	ids, err := store.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, ids)
}

func TestStoreSave_NoTempLeftBehind(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save(NewSession()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}
