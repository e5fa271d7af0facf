package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

type LinkCacheInterface interface {
	Get(ctx context.Context, code string) (*CachedLink, error)
	Set(ctx context.Context, code string, link *CachedLink, ttl time.Duration) error
	Delete(ctx context.Context, code string) error
}

type LinkCache struct {
	client *redis.Client
}

// CachedLink carries what the redirect path needs: the target URL and the
// link id for access recording. A zero LinkID marks a cached miss.
type CachedLink struct {
	LinkID int64  `json:"link_id"`
	URL    string `json:"url"`
}

func NewLinkCache(client *redis.Client) *LinkCache {
	return &LinkCache{client: client}
}

func (c *LinkCache) Get(ctx context.Context, code string) (*CachedLink, error) {
	key := "link:" + code
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cached CachedLink
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		return nil, err
	}

	return &cached, nil
}

func (c *LinkCache) Set(ctx context.Context, code string, link *CachedLink, ttl time.Duration) error {
	key := "link:" + code
	data, err := json.Marshal(link)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *LinkCache) Delete(ctx context.Context, code string) error {
	key := "link:" + code
	return c.client.Del(ctx, key).Err()
}
