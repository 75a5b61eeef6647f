package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// TTLCache keeps values for a fixed lifetime and can outlive a request.
// Share it through NewSharedMemo so that per-page namespaces stay in the
// request. A background janitor removes expired entries until Close.
type TTLCache struct {
	items *ttlcache.Cache[string, any]
	stop  sync.Once
}

// NewTTLCache creates a cache whose entries expire ttl after they are set.
// Reads do not extend an entry's lifetime.
func NewTTLCache(ttl time.Duration) *TTLCache {
	c := &TTLCache{
		items: ttlcache.New(
			ttlcache.WithTTL[string, any](ttl),
			ttlcache.WithDisableTouchOnHit[string, any](),
		),
	}
	go c.items.Start()
	return c
}

func (c *TTLCache) Get(_ context.Context, key string) (any, bool) {
	item := c.items.Get(key)
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

func (c *TTLCache) Set(_ context.Context, key string, value any) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	c.items.Set(key, value, ttlcache.DefaultTTL)
	return nil
}

func (c *TTLCache) Delete(_ context.Context, key string) error {
	c.items.Delete(key)
	return nil
}

// Flush drops every entry, expired or not.
func (c *TTLCache) Flush(context.Context) {
	c.items.DeleteAll()
}

// Len returns the number of stored entries, including expired entries the
// janitor has not removed yet.
func (c *TTLCache) Len() int {
	return c.items.Len()
}

// Close stops the janitor. The cache stays readable. Close is idempotent.
func (c *TTLCache) Close() error {
	c.stop.Do(c.items.Stop)
	return nil
}

var _ Cache = (*TTLCache)(nil)
