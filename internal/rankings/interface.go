package rankings

import (
	"context"

	"rankings-api/internal/models"
)

// RankingsService defines the interface for the ranking cache orchestrator
// External packages should use this interface, not the concrete implementations
type RankingsService interface {
	// GetRankings resolves a comma-separated domain list into per-domain time
	// series, serving fresh domains from the store and refreshing stale ones
	// from upstream. Domains that upstream cannot rank are omitted; the call
	// fails only on invalid input, an empty result, or a store read failure.
	GetRankings(ctx context.Context, rawDomains string) (map[string]models.TimeSeries, error)
}
