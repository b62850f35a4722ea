// Package cache holds the redis connection and the JSON-valued caches built on it.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dietdesk/dietdesk/internal/shared/config"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

// NewRedisClient connects and pings. It returns (nil, nil) when redis is disabled.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, log logger.Interface) (*redis.Client, error) {
	if !cfg.Enabled {
		log.Infow("redis disabled, caching and login rate limiting are off")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.GetAddr(), err)
	}

	log.Infow("redis connection established", "addr", cfg.GetAddr())
	return client, nil
}
