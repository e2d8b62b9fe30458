// Package cache provides an optional Redis read-through cache for
// computed API payloads. A nil *Cache is valid and disables caching, so
// the API works with no Redis deployed.
package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultRedisAddr = "localhost:6379"
	DefaultTTL       = 5 * time.Minute
)

// Cache wraps a Redis client for storing serialized response payloads.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis at addr. The connection is verified eagerly so a
// missing Redis surfaces at startup rather than on the first request.
func New(addr string, ttl time.Duration) (*Cache, error) {
	if addr == "" {
		addr = DefaultRedisAddr
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &Cache{client: client, ttl: ttl}, nil
}

// Get returns a cached payload and whether it was present.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("Cache get failed for %s: %v", key, err)
		return nil, false
	}
	return data, true
}

// Set stores a payload under the configured TTL. Failures are logged and
// ignored: the cache is an optimization, never a source of truth.
func (c *Cache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		log.Printf("Cache set failed for %s: %v", key, err)
	}
}

// Close closes the Redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
