package seriesCache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"rankings-api/internal/cache"
	"rankings-api/internal/models"
)

// seriesCache implements Service using a generic cache backend
type seriesCache struct {
	cache cache.Service
	ttl   time.Duration
}

// New creates a new time-series cache with the given default TTL
func New(cache cache.Service, ttl time.Duration) Service {
	return &seriesCache{
		cache: cache,
		ttl:   ttl,
	}
}

// Get retrieves a domain's time series from the cache
func (s *seriesCache) Get(ctx context.Context, domain string) (*models.TimeSeries, error) {
	value, err := s.cache.Get(ctx, cacheKey(domain))
	if err != nil {
		return nil, err
	}

	switch v := value.(type) {
	case *models.TimeSeries:
		// Memory backend stores the object itself
		return v, nil
	case models.TimeSeries:
		return &v, nil
	case string:
		// Redis backend returns the JSON string
		var series models.TimeSeries
		if err := json.Unmarshal([]byte(v), &series); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cached time series: %w", err)
		}
		return &series, nil
	default:
		return nil, fmt.Errorf("unexpected type in cache: %T", v)
	}
}

// Set stores a domain's time series; ttl 0 means the configured default
func (s *seriesCache) Set(ctx context.Context, domain string, series *models.TimeSeries, ttl time.Duration) error {
	if ttl == 0 {
		ttl = s.ttl
	}

	return s.cache.Set(ctx, cacheKey(domain), series, ttl)
}

// Delete removes a domain's time series from the cache
func (s *seriesCache) Delete(ctx context.Context, domain string) error {
	return s.cache.Delete(ctx, cacheKey(domain))
}

func cacheKey(domain string) string {
	return fmt.Sprintf("series:%s", domain)
}
