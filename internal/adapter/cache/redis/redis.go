// Package redis implements the short code -> URL cache on top of Redis.
//
// The cache only holds the URL projection of a mapping, never the access
// counter, and every write resets the entry TTL.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vadimbarashkov/shortlink/internal/entity"
)

const (
	KeyPrefix  = "short:"
	DefaultTTL = 24 * time.Hour
)

func cacheKey(shortCode string) string {
	return KeyPrefix + shortCode
}

type URLCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewURLCache(client redis.Cmdable, ttl time.Duration) *URLCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &URLCache{
		client: client,
		ttl:    ttl,
	}
}

// Get reports found=false with a nil error when the entry is absent or expired.
func (c *URLCache) Get(ctx context.Context, shortCode string) (string, bool, error) {
	const op = "adapter.cache.redis.URLCache.Get"

	url, err := c.client.Get(ctx, cacheKey(shortCode)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}

		return "", false, fmt.Errorf("%s: failed to get key: %w: %w", op, entity.ErrCacheUnavailable, err)
	}

	return url, true, nil
}

func (c *URLCache) Set(ctx context.Context, shortCode, originalURL string) error {
	const op = "adapter.cache.redis.URLCache.Set"

	if err := c.client.Set(ctx, cacheKey(shortCode), originalURL, c.ttl).Err(); err != nil {
		return fmt.Errorf("%s: failed to set key: %w: %w", op, entity.ErrCacheUnavailable, err)
	}

	return nil
}

func (c *URLCache) Delete(ctx context.Context, shortCode string) error {
	const op = "adapter.cache.redis.URLCache.Delete"

	if err := c.client.Del(ctx, cacheKey(shortCode)).Err(); err != nil {
		return fmt.Errorf("%s: failed to delete key: %w: %w", op, entity.ErrCacheUnavailable, err)
	}

	return nil
}
