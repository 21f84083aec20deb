package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"rankings-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	c := newMemoryCache()
	ctx := context.Background()

	series := &models.TimeSeries{
		Domain: "example.com",
		Labels: []string{"2024-01-01", "2024-01-02"},
		Ranks:  []int{5, 6},
	}

	err := c.Set(ctx, "series:example.com", series, 1*time.Hour)
	require.NoError(t, err)

	value, err := c.Get(ctx, "series:example.com")
	require.NoError(t, err)

	// The memory backend hands back the stored object itself
	assert.Same(t, series, value)
}

func TestMemoryCache_Get_Missing(t *testing.T) {
	c := newMemoryCache()

	value, err := c.Get(context.Background(), "absent")

	assert.Nil(t, value)
	assert.ErrorIs(t, err, models.ErrCacheMiss)
}

func TestMemoryCache_Get_Expired(t *testing.T) {
	c := newMemoryCache()
	ctx := context.Background()

	err := c.Set(ctx, "short-lived", "value", 10*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	value, err := c.Get(ctx, "short-lived")
	assert.Nil(t, value)
	assert.ErrorIs(t, err, models.ErrCacheMiss)
}

func TestMemoryCache_Set_InvalidTTL(t *testing.T) {
	c := newMemoryCache()

	err := c.Set(context.Background(), "key", "value", 0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "TTL must be positive")

	err = c.Set(context.Background(), "key", "value", -1*time.Second)
	assert.Error(t, err)
}

func TestMemoryCache_Delete(t *testing.T) {
	c := newMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", "value", 1*time.Hour))
	require.NoError(t, c.Delete(ctx, "key"))

	_, err := c.Get(ctx, "key")
	assert.ErrorIs(t, err, models.ErrCacheMiss)
}

func TestMemoryCache_Delete_Missing(t *testing.T) {
	c := newMemoryCache()

	// Deleting a missing key is not an error
	assert.NoError(t, c.Delete(context.Background(), "absent"))
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	c := newMemoryCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i%10)
			_ = c.Set(ctx, key, i, 1*time.Hour)
			_, _ = c.Get(ctx, key)
			if i%7 == 0 {
				_ = c.Delete(ctx, key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 10)
}
