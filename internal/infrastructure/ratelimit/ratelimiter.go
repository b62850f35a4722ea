// Package ratelimit counts attempts per key over a sliding window.
package ratelimit

import (
	"context"
	"time"
)

type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

type RateLimiter interface {
	// Allow records one attempt and reports whether it is within the limit.
	Allow(ctx context.Context, key string) (bool, error)
	Attempts(ctx context.Context, key string) (int64, error)
	Reset(ctx context.Context, key string) error
}

// NoopRateLimiter allows everything; used when redis is disabled.
type NoopRateLimiter struct{}

func (NoopRateLimiter) Allow(context.Context, string) (bool, error)     { return true, nil }
func (NoopRateLimiter) Attempts(context.Context, string) (int64, error) { return 0, nil }
func (NoopRateLimiter) Reset(context.Context, string) error             { return nil }
