package cache

import (
	"context"
	"slices"

	"golang.org/x/sync/singleflight"
)

// ComputeFunc produces the value of a memoized key.
type ComputeFunc func(ctx context.Context) (any, error)

// Memo computes values once per key and request.
//
// Concurrent first accesses to the same key share one computation, and the
// result is stored with a single Set, so readers never see a partial value.
type Memo struct {
	cache  Cache
	keyer  Keyer
	policy Policy
	group  singleflight.Group

	// local holds the request-only namespaces of a shared memo.
	local       Cache
	requestOnly []string
}

// NewMemo creates a memo over cache.
// If keyer is nil, NewDefaultKeyer is used.
func NewMemo(cache Cache, keyer Keyer, policy Policy) *Memo {
	if keyer == nil {
		keyer = NewDefaultKeyer()
	}
	return &Memo{
		cache:  cache,
		keyer:  keyer,
		policy: policy,
	}
}

// NewRequestMemo returns a memo over a fresh MemoryCache with the default
// policy. Create one per request.
func NewRequestMemo() *Memo {
	return NewMemo(NewMemoryCache(), nil, DefaultPolicy())
}

// NewSharedMemo creates a request memo whose values land in shared, which
// may outlive the request. Values of the requestOnly namespaces land in a
// MemoryCache private to the returned memo and so never reach another
// request. Create one per request over the same shared cache.
func NewSharedMemo(shared Cache, requestOnly ...string) *Memo {
	m := NewMemo(shared, nil, DefaultPolicy())
	m.local = NewMemoryCache()
	m.requestOnly = slices.Clone(requestOnly)
	return m
}

func (m *Memo) cacheFor(namespace string) Cache {
	if m.local != nil && slices.Contains(m.requestOnly, namespace) {
		return m.local
	}
	return m.cache
}

// Once returns the cached value for namespace and parts, computing it with fn
// on a miss. Errors are NOT cached.
func (m *Memo) Once(ctx context.Context, namespace string, parts []string, fn ComputeFunc) (any, error) {
	if m == nil || m.cache == nil || !m.policy.ShouldCache() {
		return fn(ctx)
	}

	key, err := m.keyer.Key(namespace, parts...)
	if err != nil {
		// Key generation failed - compute without caching
		return fn(ctx)
	}

	c := m.cacheFor(namespace)
	if cached, ok := c.Get(ctx, key); ok {
		return cached, nil
	}

	v, err, _ := m.group.Do(key, func() (any, error) {
		if cached, ok := c.Get(ctx, key); ok {
			return cached, nil
		}
		result, err := fn(ctx)
		if err != nil {
			return result, err
		}
		_ = c.Set(ctx, key, result)
		return result, nil
	})
	return v, err
}

// Flush discards the values of this request. A shared memo leaves the
// shared cache untouched.
func (m *Memo) Flush(ctx context.Context) {
	switch {
	case m == nil:
	case m.local != nil:
		m.local.Flush(ctx)
	case m.cache != nil:
		m.cache.Flush(ctx)
	}
}

// Once is the typed form of Memo.Once. A cached value of another type is
// treated as a miss and recomputed.
func Once[T any](ctx context.Context, m *Memo, namespace string, part string, fn func(ctx context.Context) (T, error)) (T, error) {
	v, err := m.Once(ctx, namespace, []string{part}, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return fn(ctx)
	}
	return typed, nil
}
