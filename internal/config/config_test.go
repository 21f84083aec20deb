package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10, cfg.MaxConcurrentFetches)
	assert.Equal(t, "memory", cfg.CacheType)
	assert.Equal(t, 5*time.Minute, cfg.SeriesCacheTTL)
	assert.Equal(t, 100, cfg.GlobalRateLimitPerSec)
	assert.Equal(t, 10, cfg.PerIPRateLimitPerSec)
	assert.Equal(t, 30*time.Second, cfg.ServerShutdownTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("UPSTREAM_API_BASE", "https://rankings.internal")
	t.Setenv("CACHE_HOURS", "6")
	t.Setenv("REQUEST_TIMEOUT_MS", "2500")
	t.Setenv("CACHE_TYPE", "redis")
	t.Setenv("SERIES_CACHE_TTL", "60")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://rankings.internal", cfg.UpstreamAPIBase)
	assert.Equal(t, 6*time.Hour, cfg.CacheTTL)
	assert.Equal(t, 2500*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, "redis", cfg.CacheType)
	assert.Equal(t, 60*time.Second, cfg.SeriesCacheTTL)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("CACHE_HOURS", "not-a-number")
	t.Setenv("GLOBAL_RATE_LIMIT_PER_SEC", "")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, 100, cfg.GlobalRateLimitPerSec)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("SOME_KEY", "value")

	assert.Equal(t, "value", getEnv("SOME_KEY", "fallback"))
	assert.Equal(t, "fallback", getEnv("MISSING_KEY", "fallback"))
}

func TestGetDurationEnv(t *testing.T) {
	t.Setenv("SOME_DURATION", "45")

	assert.Equal(t, 45*time.Second, getDurationEnv("SOME_DURATION", time.Second))
	assert.Equal(t, time.Second, getDurationEnv("MISSING_DURATION", time.Second))
}
