package report

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileAssetsLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estilo.css")
	require.NoError(t, os.WriteFile(path, []byte("body{}"), 0o644))

	assets := NewFileAssets(2)
	got, err := assets.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "body{}", got)

	got, err = assets.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "body{}", got)
	assert.Equal(t, 1, assets.cache.Size())
}

func TestFileAssetsReloadsChangedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relatorio.html")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	assets := NewFileAssets(2)
	_, err := assets.Load(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("version two"), 0o644))
	got, err := assets.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "version two", got)
}

func TestFileAssetsMissing(t *testing.T) {
	_, err := NewFileAssets(1).Load(filepath.Join(t.TempDir(), "nope.html"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestFileAssetsDirectory(t *testing.T) {
	_, err := NewFileAssets(1).Load(t.TempDir())
	assert.Error(t, err)
}
