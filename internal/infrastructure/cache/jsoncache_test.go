package cache

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dietdesk/dietdesk/internal/shared/config"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}

type stats struct {
	Admins int64 `json:"admins"`
}

func TestRedisJSONCache_RoundTripAndExpiry(t *testing.T) {
	mr, client := setupTestRedis(t)
	c := NewRedisJSONCache(client, "dashboard:", time.Minute, logger.NewNop())
	ctx := context.Background()

	var got stats
	hit, err := c.Get(ctx, "global", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "global", stats{Admins: 4}))
	assert.True(t, mr.Exists("dashboard:global"))

	hit, err = c.Get(ctx, "global", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, int64(4), got.Admins)

	mr.FastForward(61 * time.Second)
	hit, err = c.Get(ctx, "global", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisJSONCache_CorruptEntryIsMiss(t *testing.T) {
	mr, client := setupTestRedis(t)
	c := NewRedisJSONCache(client, "dashboard:", time.Minute, logger.NewNop())
	require.NoError(t, mr.Set("dashboard:x", "{not json"))

	var got stats
	hit, err := c.Get(context.Background(), "x", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.False(t, mr.Exists("dashboard:x"))
}

func TestRedisJSONCache_Invalidate(t *testing.T) {
	mr, client := setupTestRedis(t)
	c := NewRedisJSONCache(client, "dashboard:", time.Minute, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", stats{Admins: 1}))
	require.NoError(t, c.Invalidate(ctx, "k"))
	assert.False(t, mr.Exists("dashboard:k"))
}

func TestNewRedisClient(t *testing.T) {
	mr, _ := setupTestRedis(t)
	ctx := context.Background()

	client, err := NewRedisClient(ctx, config.RedisConfig{Enabled: false}, logger.NewNop())
	require.NoError(t, err)
	assert.Nil(t, client)

	client, err = NewRedisClient(ctx, config.RedisConfig{Enabled: true, Host: mr.Host(), Port: mustPort(t, mr)}, logger.NewNop())
	require.NoError(t, err)
	require.NotNil(t, client)
	client.Close()
}

func mustPort(t *testing.T, mr *miniredis.Miniredis) int {
	t.Helper()
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	return port
}
