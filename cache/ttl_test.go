package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTTLCache(t *testing.T, ttl time.Duration) *TTLCache {
	t.Helper()
	c := NewTTLCache(ttl)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestTTLCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := newTTLCache(t, time.Minute)

	require.NoError(t, c.Set(ctx, "seocascade::site_sets::en-US", "layer"))
	v, ok := c.Get(ctx, "seocascade::site_sets::en-US")
	assert.True(t, ok)
	assert.Equal(t, "layer", v)

	require.NoError(t, c.Delete(ctx, "seocascade::site_sets::en-US"))
	_, ok = c.Get(ctx, "seocascade::site_sets::en-US")
	assert.False(t, ok)
}

func TestTTLCache_JanitorRemovesExpired(t *testing.T) {
	ctx := context.Background()
	c := newTTLCache(t, 10*time.Millisecond)

	require.NoError(t, c.Set(ctx, "k", 1))
	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestTTLCache_FlushAndInvalidKey(t *testing.T) {
	ctx := context.Background()
	c := newTTLCache(t, time.Minute)

	_ = c.Set(ctx, "a", 1)
	_ = c.Set(ctx, "b", 2)
	c.Flush(ctx)
	assert.Zero(t, c.Len())
	assert.ErrorIs(t, c.Set(ctx, " ", 1), ErrInvalidKey)
}

func TestTTLCache_CloseIsIdempotent(t *testing.T) {
	c := NewTTLCache(time.Minute)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	require.NoError(t, c.Set(context.Background(), "k", 1))
	_, ok := c.Get(context.Background(), "k")
	assert.True(t, ok, "a closed cache stays readable")
}

func TestTTLCache_SharedAcrossRequestMemos(t *testing.T) {
	ctx := context.Background()
	shared := newTTLCache(t, time.Minute)
	compute, calls := counter("v")

	for range 2 {
		_, err := NewSharedMemo(shared, "page").Once(ctx, "site_sets", []string{"en-US"}, compute)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1, calls.Load())
}
