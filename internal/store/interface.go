package store

import (
	"context"
	"time"

	"rankings-api/internal/models"
)

// Service defines the interface for the persistent ranking store
// External packages should use this interface, not the concrete implementations
type Service interface {
	// FindLatestPerDomain returns, per requested domain, the updated_at of its
	// most recently written record. Domains with no records are absent from
	// the result.
	FindLatestPerDomain(ctx context.Context, domains []string) (map[string]time.Time, error)

	// FindAllRecords returns every stored record for the given domains,
	// ordered by domain and ascending date.
	FindAllRecords(ctx context.Context, domains []string) ([]models.RankingRecord, error)

	// ReplaceAll atomically replaces the domain's entire history with the
	// given records. Delete and insert run in one transaction; on failure the
	// prior history is left intact.
	ReplaceAll(ctx context.Context, domain string, records []models.RankingRecord) error

	Ping(ctx context.Context) error
	Close() error
}
