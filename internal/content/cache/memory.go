package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

const defaultMaxEntries = 512

type memoryCache struct {
	maxEntries int

	mu      sync.Mutex
	entries map[string]Entry
}

// NewMemory builds the in-process backend. The entry count is bounded:
// storing into a full cache evicts expired entries first, then the oldest
// entry by StoredAt.
func NewMemory(maxEntries int) ResultCache {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &memoryCache{maxEntries: maxEntries, entries: make(map[string]Entry)}
}

func (c *memoryCache) Lookup(_ context.Context, key string) (Entry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return Entry{}, false, nil
	}
	if !entry.Fresh(time.Now()) {
		delete(c.entries, key)
		return Entry{}, false, nil
	}
	return entry, true, nil
}

func (c *memoryCache) Store(_ context.Context, key string, entry Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry.StoredAt.IsZero() {
		entry.StoredAt = time.Now().UTC()
	}
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictLocked()
	}
	c.entries[key] = entry
	return nil
}

// evictLocked frees one slot. Expired entries go first; with none expired the
// oldest entry is dropped so the cache cannot grow without bound.
func (c *memoryCache) evictLocked() {
	now := time.Now()
	removed := false
	for key, entry := range c.entries {
		if !entry.Fresh(now) {
			delete(c.entries, key)
			removed = true
		}
	}
	if removed {
		return
	}

	var oldestKey string
	var oldestAt time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.StoredAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = entry.StoredAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

func (c *memoryCache) Clear(_ context.Context, prefix string) error {
	if prefix == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

func (c *memoryCache) Size(_ context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int64(len(c.entries)), nil
}

func (c *memoryCache) Close(_ context.Context) error {
	return nil
}
