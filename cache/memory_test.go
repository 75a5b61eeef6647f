package cache

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_GetSetDelete(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	val, ok := cache.Get(ctx, "nonexistent")
	assert.False(t, ok)
	assert.Nil(t, val)

	key := "seocascade::site::en"
	require.NoError(t, cache.Set(ctx, key, "value"))

	got, ok := cache.Get(ctx, key)
	assert.True(t, ok)
	assert.Equal(t, "value", got)

	require.NoError(t, cache.Delete(ctx, key))
	_, ok = cache.Get(ctx, key)
	assert.False(t, ok)

	assert.NoError(t, cache.Delete(ctx, "nonexistent"), "delete is idempotent")
}

func TestMemoryCache_SetRejectsInvalidKey(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	assert.ErrorIs(t, cache.Set(ctx, "", "v"), ErrInvalidKey)
	assert.ErrorIs(t, cache.Set(ctx, "a\nb", "v"), ErrInvalidKey)
	assert.ErrorIs(t, cache.Set(ctx, strings.Repeat("k", MaxKeyLength+1), "v"), ErrKeyTooLong)
}

func TestMemoryCache_Flush(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	_ = cache.Set(ctx, "a", 1)
	_ = cache.Set(ctx, "b", 2)
	cache.Flush(ctx)

	assert.Zero(t, cache.Len())
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	const goroutines = 50
	const ops = 500

	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range ops {
				switch j % 3 {
				case 0:
					_ = cache.Set(ctx, "concurrent-key", j)
				case 1:
					_, _ = cache.Get(ctx, "concurrent-key")
				case 2:
					_ = cache.Delete(ctx, "concurrent-key")
				}
			}
		}()
	}
	wg.Wait()
}

func TestDefaultKeyer_Key(t *testing.T) {
	k := NewDefaultKeyer()

	got, err := k.Key("site", "de")
	require.NoError(t, err)
	assert.Equal(t, "seocascade::site::de", got)

	_, err = k.Key(" ")
	assert.ErrorIs(t, err, ErrInvalidKey)

	custom := &DefaultKeyer{Prefix: "advanced-seo"}
	got, _ = custom.Key("page", "en")
	assert.Equal(t, "advanced-seo::page::en", got)
}
