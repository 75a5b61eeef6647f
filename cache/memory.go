package cache

import (
	"context"
	"sync"
)

// MemoryCache is an in-memory cache implementation.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]any
}

// NewMemoryCache creates a new, empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]any),
	}
}

// Get retrieves a value from the cache. Returns (nil, false) on miss.
func (c *MemoryCache) Get(_ context.Context, key string) (any, bool) {
	c.mu.RLock()
	v, ok := c.entries[key]
	c.mu.RUnlock()
	return v, ok
}

// Set stores a value, replacing any previous value for key.
func (c *MemoryCache) Set(_ context.Context, key string, value any) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	c.mu.Lock()
	c.entries[key] = value
	c.mu.Unlock()
	return nil
}

// Delete removes a value from the cache. Idempotent - no error on miss.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Flush removes every value.
func (c *MemoryCache) Flush(_ context.Context) {
	c.mu.Lock()
	c.entries = make(map[string]any)
	c.mu.Unlock()
}

// Len returns the number of cached values.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure MemoryCache implements Cache
var _ Cache = (*MemoryCache)(nil)
