package promptbuild

import (
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/vandre-sales/mlv-combo-nodes/internal/logger"
)

// Cache keeps each directory's AttributeSet for the life of the process.
// Concurrent misses on the same directory share a single load.
type Cache struct {
	loader *Loader

	mu      sync.RWMutex
	entries map[string]AttributeSet
	group   singleflight.Group
}

func NewCache(loader *Loader) *Cache {
	return &Cache{
		loader:  loader,
		entries: make(map[string]AttributeSet),
	}
}

// GetOrLoad returns the cached set for dir, loading it on first use.
// Missing or unlistable directories are not cached, so they are retried on the next call.
func (c *Cache) GetOrLoad(dir string) AttributeSet {
	key := filepath.Clean(dir)
	if set, ok := c.lookup(key); ok {
		logger.Trace("Attribute cache hit: %s", key)
		return set
	}

	v, _, _ := c.group.Do(key, func() (any, error) {
		if set, ok := c.lookup(key); ok {
			return set, nil
		}
		set, err := c.loader.load(key)
		if err != nil {
			return AttributeSet{}, nil
		}
		c.mu.Lock()
		c.entries[key] = set
		c.mu.Unlock()
		return set, nil
	})
	return v.(AttributeSet)
}

func (c *Cache) lookup(key string) (AttributeSet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	set, ok := c.entries[key]
	return set, ok
}

// Len reports how many directories are cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
