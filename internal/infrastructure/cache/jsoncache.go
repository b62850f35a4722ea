package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

// RedisJSONCache stores JSON-encoded values under a key prefix with a fixed TTL.
type RedisJSONCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger logger.Interface
}

func NewRedisJSONCache(client *redis.Client, prefix string, ttl time.Duration, logger logger.Interface) *RedisJSONCache {
	return &RedisJSONCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisJSONCache) key(k string) string {
	return c.prefix + k
}

// Get decodes the cached value into dest. A miss returns false with no error.
func (c *RedisJSONCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read cache: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// a value we cannot decode is treated as a miss and dropped
		c.logger.Warnw("discarding undecodable cache entry", "key", c.key(key), "error", err)
		_ = c.client.Del(ctx, c.key(key)).Err()
		return false, nil
	}
	return true, nil
}

func (c *RedisJSONCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}
	if err := c.client.Set(ctx, c.key(key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	c.logger.Debugw("cache entry stored", "key", c.key(key), "ttl", c.ttl)
	return nil
}

func (c *RedisJSONCache) Invalidate(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	return nil
}
