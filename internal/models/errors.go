package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDomain indicates that an input cannot be reduced to a valid hostname
	ErrInvalidDomain = errors.New("invalid domain format")

	// ErrNoDomainsProvided indicates that no domain tokens remained after parsing
	ErrNoDomainsProvided = errors.New("no domains provided")

	// ErrNoRankedDomains indicates that none of the requested domains produced data
	ErrNoRankedDomains = errors.New("none of the provided domains are ranked")

	// ErrDomainNotFound indicates that the upstream source has no data for the domain
	ErrDomainNotFound = errors.New("no ranking data for domain")

	// ErrFetchTimeout indicates that the upstream fetch timed out
	ErrFetchTimeout = errors.New("timeout while fetching ranking data")

	// ErrCacheMiss indicates that a key is absent from the hot cache
	ErrCacheMiss = errors.New("cache entry not found")

	// ErrStore indicates a failure in the persistence layer; never masked
	ErrStore = errors.New("ranking store failure")

	// ErrRateLimitExceeded indicates that rate limit has been exceeded
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// DomainError represents an error specific to a domain operation
type DomainError struct {
	Domain  string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("domain %s: %s: %v", e.Domain, e.Message, e.Err)
	}
	return fmt.Sprintf("domain %s: %s", e.Domain, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain-specific error
func NewDomainError(domain, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Message: message,
		Err:     err,
	}
}
