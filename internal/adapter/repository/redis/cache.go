package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache implements usecase.Cache using Redis. Reports cached here are
// advisory; a cold or unreachable cache only costs a recompute.
type Cache struct {
	client *redis.Client
	prefix string
}

// NewCache creates a new Cache.
func NewCache(client *redis.Client) *Cache {
	return &Cache{
		client: client,
		prefix: "cache:",
	}
}

// Get retrieves a value by key. A miss returns nil with no error.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return data, nil
}

// Set stores a value with TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// Delete removes a key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}
