package llm

import (
	"sync"
	"time"
)

// cacheEntry represents a cached folder decision.
type cacheEntry struct {
	expiry time.Time
	folder string
}

// folderCache remembers successful inferences by filename so a name seen
// twice in one session costs one request.
type folderCache struct {
	entries map[string]cacheEntry
	now     func() time.Time
	ttl     time.Duration
	mu      sync.RWMutex
}

func newFolderCache(ttl time.Duration) *folderCache {
	if ttl == 0 {
		ttl = time.Hour
	}

	return &folderCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// get retrieves a folder if it exists and hasn't expired.
func (c *folderCache) get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists || c.now().After(entry.expiry) {
		return "", false
	}
	return entry.folder, true
}

// set stores a folder.
func (c *folderCache) set(key, folder string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		folder: folder,
		expiry: c.now().Add(c.ttl),
	}
}

// size returns the number of entries in the cache.
func (c *folderCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
