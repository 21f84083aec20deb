package fetcher

import (
	"context"

	"rankings-api/internal/models"
)

// Status tags the outcome of one upstream fetch
type Status int

const (
	// StatusFound means upstream returned ranking data for the domain
	StatusFound Status = iota
	// StatusNotFound means upstream has no data for the domain (HTTP 404)
	StatusNotFound
	// StatusFailed means a transport or upstream error; callers recover
	// per-domain, they never fail a whole batch on it
	StatusFailed
)

// Result is the tagged outcome of a fetch, consumed by a plain conditional
// rather than error unwinding
type Result struct {
	Status  Status
	Ranking *models.UpstreamRanking
	Err     error
}

// Service defines the interface for fetching ranking data from upstream
// External packages should use this interface, not the concrete implementations
type Service interface {
	FetchRanking(ctx context.Context, domain string) Result
}
