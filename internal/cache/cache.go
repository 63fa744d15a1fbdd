// Package cache provides a Redis-backed cache for research results so
// repeated runs for the same event do not re-query external providers.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"conference-outreach/internal/common/database"
	"conference-outreach/internal/common/logger"
)

// Cache stores JSON values under namespaced keys with a TTL.
type Cache struct {
	client *database.RedisClient
	ttl    time.Duration
	log    logger.Logger
}

// New creates a Cache. A nil client yields a disabled cache where Get
// always misses and Set is a no-op.
func New(client *database.RedisClient, ttl time.Duration, log logger.Logger) *Cache {
	return &Cache{client: client, ttl: ttl, log: log}
}

// ResearchKey builds the cache key for a participant's research record.
func ResearchKey(event, participant string) string {
	return fmt.Sprintf("research:%s:%s", event, participant)
}

// GetJSON loads and unmarshals a cached value. Returns false on a miss
// or when the cache is disabled. Redis failures degrade to a miss.
func (c *Cache) GetJSON(ctx context.Context, key string, out interface{}) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}

	raw, err := c.client.Get(ctx, key)
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		c.log.Warn("cache read failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return false, nil
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("unmarshal cached value: %w", err)
	}
	return true, nil
}

// SetJSON marshals and stores a value under the cache TTL. Redis
// failures are logged and swallowed, the pipeline never blocks on the
// cache.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}) error {
	if c == nil || c.client == nil {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl); err != nil {
		c.log.Warn("cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
	return nil
}
