package nav

import (
	"os"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/plainhq/plaindex/internal/document"
)

// docCacheSize bounds the number of cached documents so long-running
// servers don't grow without limit.
const docCacheSize = 256

type cachedDoc struct {
	modTime time.Time
	lines   []string
}

// docCache is an LRU cache of document line slices keyed by path.
// Entries are invalidated by modification time, so cursor side-queries
// never observe stale text after an edit.
type docCache struct {
	cache *lru.Cache[string, cachedDoc]
}

func newDocCache() (*docCache, error) {
	cache, err := lru.New[string, cachedDoc](docCacheSize)
	if err != nil {
		return nil, err
	}
	return &docCache{cache: cache}, nil
}

// Lines returns the document's lines, reading from disk only when the
// file changed since the cached copy.
func (d *docCache) Lines(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if entry, ok := d.cache.Get(path); ok && entry.modTime.Equal(info.ModTime()) {
		return entry.lines, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	lines := document.SplitLines(string(content))
	d.cache.Add(path, cachedDoc{modTime: info.ModTime(), lines: lines})
	return lines, nil
}
