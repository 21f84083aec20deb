package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucket_AllowUpToCapacity(t *testing.T) {
	tb := NewTokenBucket(3, 1)

	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())
}

func TestTokenBucket_Refill(t *testing.T) {
	tb := NewTokenBucket(1, 10)

	require.True(t, tb.Allow())
	require.False(t, tb.Allow())

	// 10 tokens/sec: one token back after ~100ms
	time.Sleep(150 * time.Millisecond)
	assert.True(t, tb.Allow())
}

func TestTokenBucket_RefillCapped(t *testing.T) {
	tb := NewTokenBucket(2, 100)

	time.Sleep(100 * time.Millisecond)

	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())
}

func TestTwoTierRateLimiter_PerIPLimit(t *testing.T) {
	// Generous global limit, tight per-IP limit
	limiter := NewTwoTierRateLimiter(100, 100, 2, 1)

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))

	// A different IP has its own bucket
	assert.True(t, limiter.Allow("10.0.0.2"))
}

func TestTwoTierRateLimiter_GlobalLimit(t *testing.T) {
	limiter := NewTwoTierRateLimiter(2, 1, 100, 100)

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.2"))
	assert.False(t, limiter.Allow("10.0.0.3"))
}

func TestTwoTierRateLimiter_GlobalTokenReturnedOnIPReject(t *testing.T) {
	limiter := NewTwoTierRateLimiter(2, 1, 1, 1)

	require.True(t, limiter.Allow("10.0.0.1"))
	// Per-IP bucket exhausted; global token must be given back
	require.False(t, limiter.Allow("10.0.0.1"))

	// Both remaining global tokens still available for other IPs
	assert.True(t, limiter.Allow("10.0.0.2"))
}

func TestTwoTierRateLimiter_Wait(t *testing.T) {
	limiter := NewTwoTierRateLimiter(100, 100, 1, 10)

	require.True(t, limiter.Allow("10.0.0.1"))

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := limiter.Wait(ctx, "10.0.0.1")
	assert.NoError(t, err)
}

func TestTwoTierRateLimiter_WaitCancelled(t *testing.T) {
	limiter := NewTwoTierRateLimiter(100, 100, 1, 1)

	require.True(t, limiter.Allow("10.0.0.1"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx, "10.0.0.1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
