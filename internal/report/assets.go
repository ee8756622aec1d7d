package report

import (
	"fmt"
	"os"
	"time"

	"vendas/internal/cache"
)

// AssetLoader returns the text content of a report asset.
type AssetLoader interface {
	Load(path string) (string, error)
}

type cachedAsset struct {
	modTime time.Time
	size    int64
	content string
}

// FileAssets reads assets from disk and keeps the most recently used ones
// in memory. A cached entry is reused only while the file's modification
// time and size are unchanged.
type FileAssets struct {
	cache cache.Cache[cachedAsset]
}

var _ AssetLoader = (*FileAssets)(nil)

func NewFileAssets(capacity int) *FileAssets {
	return &FileAssets{cache: cache.NewLRUCache[cachedAsset](capacity)}
}

func (a *FileAssets) Load(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		a.cache.Delete(path)
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}

	if hit, ok := a.cache.Get(path); ok && hit.size == info.Size() && hit.modTime.Equal(info.ModTime()) {
		return hit.content, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	a.cache.Set(path, cachedAsset{
		modTime: info.ModTime(),
		size:    info.Size(),
		content: string(b),
	})
	return string(b), nil
}
