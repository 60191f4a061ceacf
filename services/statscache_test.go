package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisCache(client), mr
}

func TestRedisCacheRoundtrip(t *testing.T) {
	cache, _ := newTestRedisCache(t)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "missing")
	assert.False(t, ok)

	cache.Set(ctx, "stats", []byte(`{"repos":5}`), time.Minute)

	got, ok := cache.Get(ctx, "stats")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"repos":5}`), got)
}

func TestRedisCacheExpiry(t *testing.T) {
	cache, mr := newTestRedisCache(t)
	ctx := context.Background()

	cache.Set(ctx, "stats", []byte("payload"), time.Minute)
	mr.FastForward(2 * time.Minute)

	_, ok := cache.Get(ctx, "stats")
	assert.False(t, ok)
}

func TestMemoryCacheRoundtrip(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	_, ok := cache.Get(ctx, "missing")
	assert.False(t, ok)

	cache.Set(ctx, "stats", []byte("payload"), time.Minute)

	got, ok := cache.Get(ctx, "stats")
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), got)
}

func TestMemoryCacheExpiry(t *testing.T) {
	cache := NewMemoryCache()
	now := time.Now()
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	cache.Set(ctx, "stats", []byte("payload"), time.Minute)

	now = now.Add(30 * time.Second)
	_, ok := cache.Get(ctx, "stats")
	assert.True(t, ok)

	now = now.Add(45 * time.Second)
	_, ok = cache.Get(ctx, "stats")
	assert.False(t, ok)
}
