package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/utils"
)

// RateLimiter is a per-IP fixed-window counter in redis, shared by every instance.
type RateLimiter struct {
	redisClient *redis.Client
	prefix      string
	limit       int
	window      time.Duration
}

// NewRateLimiter allows limit requests per window per client IP. A nil client disables limiting.
func NewRateLimiter(redisClient *redis.Client, prefix string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		redisClient: redisClient,
		prefix:      prefix,
		limit:       limit,
		window:      window,
	}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.redisClient == nil || rl.limit <= 0 {
			c.Next()
			return
		}

		windowSeconds := int64(rl.window.Seconds())
		if windowSeconds < 1 {
			windowSeconds = 1
		}
		bucket := time.Now().Unix() / windowSeconds
		key := fmt.Sprintf("%s:ip:%s:%d", rl.prefix, c.ClientIP(), bucket)

		ctx := c.Request.Context()
		count, err := rl.redisClient.Incr(ctx, key).Result()
		if err != nil {
			// redis down: let traffic through
			c.Next()
			return
		}
		if count == 1 {
			rl.redisClient.Expire(ctx, key, rl.window+time.Second)
		}

		if count > int64(rl.limit) {
			utils.ErrorResponseWithError(c, errors.NewTooManyAttemptsError())
			c.Abort()
			return
		}

		c.Next()
	}
}
