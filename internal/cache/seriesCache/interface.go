package seriesCache

import (
	"context"
	"time"

	"rankings-api/internal/models"
)

// Service defines the interface for the hot TimeSeries cache.
// It sits in front of the persistent store and only ever holds series that
// were just served; correctness never depends on it.
type Service interface {
	Get(ctx context.Context, domain string) (*models.TimeSeries, error)
	Set(ctx context.Context, domain string, series *models.TimeSeries, ttl time.Duration) error
	Delete(ctx context.Context, domain string) error
}
