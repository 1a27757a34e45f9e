package consolidator

import (
	"sync"
	"time"

	"app/models"
)

// cacheEntry holds the last normalized aggregate for one source. Data is
// only trusted while now - timestamp < ttl.
type cacheEntry struct {
	data      models.Aggregate
	timestamp time.Time
	ttl       time.Duration
}

// sourceCache is the per-source result cache. The key set is fixed at
// construction (one entry per configured source); entries are overwritten
// in place on every successful fetch and never deleted.
type sourceCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

func newSourceCache(sources map[string]SourceDescriptor) *sourceCache {
	entries := make(map[string]*cacheEntry, len(sources))
	for name, desc := range sources {
		entries[name] = &cacheEntry{ttl: desc.TTL}
	}
	return &sourceCache{entries: entries}
}

// isValid reports whether the cached aggregate for name can still be
// served: the entry exists, holds data, and is inside its validity window.
func (c *sourceCache) isValid(name string, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[name]
	if !ok || e.data == nil {
		return false
	}
	return now.Sub(e.timestamp) < e.ttl
}

func (c *sourceCache) get(name string) models.Aggregate {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[name]; ok {
		return e.data
	}
	return nil
}

// put overwrites the entry for name, resetting its timestamp to now.
func (c *sourceCache) put(name string, data models.Aggregate, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[name]
	if !ok {
		return
	}
	e.data = data
	e.timestamp = now
}
