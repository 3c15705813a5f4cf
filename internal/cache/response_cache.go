package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResponseCache is a small wrapper over Redis used to serve the public GET
// endpoints. The landing page re-polls the apartments endpoint every 30
// seconds, so cached bodies with a short TTL absorb most of that traffic.
type ResponseCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewResponseCache creates a ResponseCache with the given key prefix and TTL.
func NewResponseCache(rdb *redis.Client, prefix string, ttl time.Duration) *ResponseCache {
	return &ResponseCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *ResponseCache) key(k string) string {
	return c.prefix + ":" + k
}

// Get returns the cached body for key, or (nil, false) on a miss. Redis
// errors are treated as misses; the cache is best-effort.
func (c *ResponseCache) Get(ctx context.Context, k string) ([]byte, bool) {
	data, err := c.rdb.Get(ctx, c.key(k)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores body under key for the configured TTL.
func (c *ResponseCache) Set(ctx context.Context, k string, body []byte) error {
	return c.rdb.Set(ctx, c.key(k), body, c.ttl).Err()
}

// Invalidate removes all cached entries whose key starts with the given
// sub-prefix. Called after any admin write to the corresponding collection.
func (c *ResponseCache) Invalidate(ctx context.Context, subPrefix string) error {
	pattern := c.key(subPrefix) + "*"
	iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	err := c.rdb.Del(ctx, keys...).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}
