package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"rankings-api/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMiniRedis creates a mini redis server for testing
func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return mr, &RedisCache{client: client}
}

func TestRedisCache_NewRedisCache_Success(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()

	c, err := NewRedisCache("redis://" + mr.Addr())

	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestRedisCache_NewRedisCache_InvalidURL(t *testing.T) {
	c, err := NewRedisCache("invalid://url::")

	assert.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "failed to parse redis URL")
}

func TestRedisCache_NewRedisCache_ConnectionFailed(t *testing.T) {
	c, err := NewRedisCache("redis://localhost:99999")

	assert.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestRedisCache_SetAndGet_TimeSeries(t *testing.T) {
	mr, c := setupMiniRedis(t)
	defer mr.Close()

	ctx := context.Background()

	original := models.TimeSeries{
		Domain: "example.com",
		Labels: []string{"2024-01-01", "2024-01-02"},
		Ranks:  []int{5, 6},
	}

	err := c.Set(ctx, "series:example.com", original, 1*time.Hour)
	require.NoError(t, err)

	value, err := c.Get(ctx, "series:example.com")
	require.NoError(t, err)

	// The redis backend returns the stored JSON string
	var retrieved models.TimeSeries
	require.NoError(t, json.Unmarshal([]byte(value.(string)), &retrieved))
	assert.Equal(t, original, retrieved)
}

func TestRedisCache_Get_Missing(t *testing.T) {
	mr, c := setupMiniRedis(t)
	defer mr.Close()

	value, err := c.Get(context.Background(), "absent")

	assert.Nil(t, value)
	assert.ErrorIs(t, err, models.ErrCacheMiss)
}

func TestRedisCache_Set_InvalidTTL(t *testing.T) {
	mr, c := setupMiniRedis(t)
	defer mr.Close()

	err := c.Set(context.Background(), "key", "value", 0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "TTL must be positive")
}

func TestRedisCache_TTLExpiry(t *testing.T) {
	mr, c := setupMiniRedis(t)
	defer mr.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "key", "value", 30*time.Second))

	// miniredis advances time manually
	mr.FastForward(31 * time.Second)

	_, err := c.Get(ctx, "key")
	assert.ErrorIs(t, err, models.ErrCacheMiss)
}

func TestRedisCache_Delete(t *testing.T) {
	mr, c := setupMiniRedis(t)
	defer mr.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "key", "value", 1*time.Hour))
	require.NoError(t, c.Delete(ctx, "key"))

	_, err := c.Get(ctx, "key")
	assert.ErrorIs(t, err, models.ErrCacheMiss)
}
