package fastly_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/fastly/pkg/fastly"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	t.Parallel()

	cache := fastly.NewMemoryCache(10)
	ctx := context.Background()

	entry := &fastly.CacheEntry{
		Data:      []byte(`{"id":"SU1Z0isxPaozGVKXdv0eY"}`),
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}

	err := cache.Set(ctx, "GET /service/SU1Z0isxPaozGVKXdv0eY", entry)
	require.NoError(t, err)

	retrieved, err := cache.Get(ctx, "GET /service/SU1Z0isxPaozGVKXdv0eY")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, retrieved.Data)
}

func TestMemoryCache_Misses(t *testing.T) {
	t.Parallel()

	cache := fastly.NewMemoryCache(10)
	ctx := context.Background()

	_, err := cache.Get(ctx, "nonexistent")
	require.ErrorIs(t, err, fastly.ErrCacheMiss)

	err = cache.Set(ctx, "stale", &fastly.CacheEntry{
		Data:      []byte("test data"),
		ExpiresAt: time.Now().Add(-1 * time.Hour),
	})
	require.NoError(t, err)

	_, err = cache.Get(ctx, "stale")
	require.ErrorIs(t, err, fastly.ErrCacheEntryExpired)
	assert.Equal(t, 0, cache.Len(), "expired entries are dropped on read")
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	t.Parallel()

	cache := fastly.NewMemoryCache(10)
	ctx := context.Background()

	for i := range 3 {
		_ = cache.Set(ctx, string(rune('a'+i)), &fastly.CacheEntry{
			Data:      []byte("test data"),
			ExpiresAt: time.Now().Add(1 * time.Hour),
		})
	}

	err := cache.Delete(ctx, "a")
	require.NoError(t, err)
	assert.False(t, cache.Has(ctx, "a"))
	assert.True(t, cache.Has(ctx, "b"))

	err = cache.Clear(ctx)
	require.NoError(t, err)
	assert.False(t, cache.Has(ctx, "b"))
	assert.False(t, cache.Has(ctx, "c"))
}

func TestMemoryCache_EvictsSoonestExpiry(t *testing.T) {
	t.Parallel()

	cache := fastly.NewMemoryCache(2)
	ctx := context.Background()
	now := time.Now()

	_ = cache.Set(ctx, "long", &fastly.CacheEntry{ExpiresAt: now.Add(time.Hour)})
	_ = cache.Set(ctx, "short", &fastly.CacheEntry{ExpiresAt: now.Add(time.Minute)})
	_ = cache.Set(ctx, "new", &fastly.CacheEntry{ExpiresAt: now.Add(time.Hour)})

	assert.Equal(t, 2, cache.Len())
	assert.False(t, cache.Has(ctx, "short"))
	assert.True(t, cache.Has(ctx, "long"))
	assert.True(t, cache.Has(ctx, "new"))
}

func TestMemoryCache_Concurrent(t *testing.T) {
	t.Parallel()

	cache := fastly.NewMemoryCache(100)
	ctx := context.Background()
	done := make(chan struct{})

	for i := range 10 {
		go func(n int) {
			defer func() { done <- struct{}{} }()

			key := fmt.Sprintf("key-%d", n)
			_ = cache.Set(ctx, key, &fastly.CacheEntry{
				Data:      []byte(key),
				ExpiresAt: time.Now().Add(time.Hour),
			})
			_, _ = cache.Get(ctx, key)
		}(i)
	}

	for range 10 {
		<-done
	}

	assert.Equal(t, 10, cache.Len())
}

func newRedisCache(t *testing.T) (*fastly.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	cache, err := fastly.NewRedisCache(&fastly.RedisCacheConfig{Client: client})
	require.NoError(t, err)

	return cache, server
}

func TestRedisCache_SetAndGet(t *testing.T) {
	t.Parallel()

	cache, server := newRedisCache(t)
	ctx := context.Background()

	entry := &fastly.CacheEntry{
		Data:      []byte(`[{"number":1}]`),
		ExpiresAt: time.Now().Add(time.Minute),
	}

	err := cache.Set(ctx, "GET /service/abc/version", entry)
	require.NoError(t, err)

	assert.True(t, server.Exists("fastly:cache:GET /service/abc/version"))
	assert.True(t, cache.Has(ctx, "GET /service/abc/version"))

	retrieved, err := cache.Get(ctx, "GET /service/abc/version")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, retrieved.Data)

	_, err = cache.Get(ctx, "GET /service/missing")
	require.ErrorIs(t, err, fastly.ErrCacheMiss)
}

func TestRedisCache_ExpiresWithTTL(t *testing.T) {
	t.Parallel()

	cache, server := newRedisCache(t)
	ctx := context.Background()

	err := cache.Set(ctx, "key", &fastly.CacheEntry{
		Data:      []byte("data"),
		ExpiresAt: time.Now().Add(30 * time.Second),
	})
	require.NoError(t, err)

	server.FastForward(31 * time.Second)

	assert.False(t, cache.Has(ctx, "key"))

	err = cache.Set(ctx, "already-stale", &fastly.CacheEntry{ExpiresAt: time.Now().Add(-time.Second)})
	require.NoError(t, err)
	assert.False(t, cache.Has(ctx, "already-stale"))
}

func TestRedisCache_DeleteAndClear(t *testing.T) {
	t.Parallel()

	cache, server := newRedisCache(t)
	ctx := context.Background()

	require.NoError(t, server.Set("unrelated", "keep"))

	for _, key := range []string{"a", "b", "c"} {
		err := cache.Set(ctx, key, &fastly.CacheEntry{Data: []byte(key), ExpiresAt: time.Now().Add(time.Hour)})
		require.NoError(t, err)
	}

	err := cache.Delete(ctx, "a")
	require.NoError(t, err)
	assert.False(t, cache.Has(ctx, "a"))

	err = cache.Clear(ctx)
	require.NoError(t, err)
	assert.False(t, cache.Has(ctx, "b"))
	assert.False(t, cache.Has(ctx, "c"))
	assert.True(t, server.Exists("unrelated"), "keys outside the prefix survive Clear")
}

func TestNewRedisCache_RequiresConfig(t *testing.T) {
	t.Parallel()

	_, err := fastly.NewRedisCache(nil)
	require.ErrorIs(t, err, fastly.ErrRedisConfigRequired)

	_, err = fastly.NewRedisCache(&fastly.RedisCacheConfig{})
	require.ErrorIs(t, err, fastly.ErrRedisConfigRequired)
}

func TestNewNATSKVCache_RequiresConfig(t *testing.T) {
	t.Parallel()

	_, err := fastly.NewNATSKVCache(nil)
	require.ErrorIs(t, err, fastly.ErrNATSConfigRequired)
}
