package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveWritesUnderTicketDirectory(t *testing.T) {
	store, err := NewLocalFileStore(t.TempDir())
	require.NoError(t, err)

	storedName, path, err := store.Save(7, "screenshot.PNG", strings.NewReader("pixels"))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(storedName, "attachment_7_"))
	assert.True(t, strings.HasSuffix(storedName, ".png"), "extension is kept, lowercased")
	assert.Equal(t, "ticket-7", filepath.Base(filepath.Dir(path)))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(content))
}

func TestSaveGeneratesDistinctNames(t *testing.T) {
	store, err := NewLocalFileStore(t.TempDir())
	require.NoError(t, err)

	first, _, err := store.Save(1, "report.txt", strings.NewReader("a"))
	require.NoError(t, err)
	second, _, err := store.Save(1, "report.txt", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "same original name must not collide on disk")
}

func TestSaveHandlesNameWithoutExtension(t *testing.T) {
	store, err := NewLocalFileStore(t.TempDir())
	require.NoError(t, err)

	storedName, path, err := store.Save(3, "README", strings.NewReader("docs"))

	require.NoError(t, err)
	assert.NotContains(t, storedName, ".")
	assert.FileExists(t, path)
}

func TestNewLocalFileStoreCreatesBaseDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "uploads", "nested")

	_, err := NewLocalFileStore(base)

	require.NoError(t, err)
	assert.DirExists(t, base)
}
