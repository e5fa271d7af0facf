package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCache(t *testing.T) (*LinkCache, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewLinkCache(client), s
}

func TestGetMiss(t *testing.T) {
	c, _ := setupTestCache(t)

	cached, err := c.Get(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestSetGetRoundtrip(t *testing.T) {
	c, _ := setupTestCache(t)
	ctx := context.Background()

	err := c.Set(ctx, "abc123", &CachedLink{LinkID: 42, URL: "https://example.com"}, time.Hour)
	require.NoError(t, err)

	cached, err := c.Get(ctx, "abc123")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, int64(42), cached.LinkID)
	assert.Equal(t, "https://example.com", cached.URL)
}

func TestNegativeEntry(t *testing.T) {
	c, _ := setupTestCache(t)
	ctx := context.Background()

	err := c.Set(ctx, "nosuch", &CachedLink{}, time.Minute)
	require.NoError(t, err)

	cached, err := c.Get(ctx, "nosuch")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Zero(t, cached.LinkID)
}

func TestEntryExpires(t *testing.T) {
	c, s := setupTestCache(t)
	ctx := context.Background()

	err := c.Set(ctx, "abc123", &CachedLink{LinkID: 1, URL: "https://example.com"}, time.Minute)
	require.NoError(t, err)

	s.FastForward(2 * time.Minute)

	cached, err := c.Get(ctx, "abc123")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestDelete(t *testing.T) {
	c, _ := setupTestCache(t)
	ctx := context.Background()

	err := c.Set(ctx, "abc123", &CachedLink{LinkID: 1, URL: "https://example.com"}, time.Hour)
	require.NoError(t, err)
	require.NoError(t, c.Delete(ctx, "abc123"))

	cached, err := c.Get(ctx, "abc123")
	require.NoError(t, err)
	assert.Nil(t, cached)
}
