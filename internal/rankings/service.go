package rankings

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"rankings-api/internal/cache/seriesCache"
	"rankings-api/internal/fetcher"
	"rankings-api/internal/logger"
	"rankings-api/internal/models"
	"rankings-api/internal/normalizer"
	"rankings-api/internal/store"
)

// Service implements the RankingsService interface
type Service struct {
	normalizer    normalizer.Service
	store         store.Service
	fetcher       fetcher.Service
	seriesCache   seriesCache.Service // optional hot layer, may be nil
	logger        logger.Service
	cacheTTL      time.Duration
	maxConcurrent int
}

// NewService creates a new ranking cache orchestrator
func NewService(
	normalizer normalizer.Service,
	store store.Service,
	fetcher fetcher.Service,
	seriesCache seriesCache.Service,
	logger logger.Service,
	cacheTTL time.Duration,
	maxConcurrent int,
) RankingsService {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	return &Service{
		normalizer:    normalizer,
		store:         store,
		fetcher:       fetcher,
		seriesCache:   seriesCache,
		logger:        logger,
		cacheTTL:      cacheTTL,
		maxConcurrent: maxConcurrent,
	}
}

// GetRankings resolves the requested domains from store and upstream
func (s *Service) GetRankings(ctx context.Context, rawDomains string) (map[string]models.TimeSeries, error) {
	start := time.Now()

	domains, err := s.parseDomains(rawDomains)
	if err != nil {
		return nil, err
	}
	if len(domains) == 0 {
		return nil, models.ErrNoDomainsProvided
	}

	s.logger.LogInfo(ctx, logger.OpGetRankings, fmt.Sprintf("Resolving rankings for %d domains", len(domains)), map[string]interface{}{
		"domains": domains,
	})

	result := make(map[string]models.TimeSeries, len(domains))

	// Hot-cache probe before touching the store
	remaining := s.serveFromHotCache(ctx, domains, result)

	fresh, stale, err := s.partitionByFreshness(ctx, remaining)
	if err != nil {
		return nil, err
	}

	// Cached path: one batched load for every fresh domain
	if len(fresh) > 0 {
		records, err := s.store.FindAllRecords(ctx, fresh)
		if err != nil {
			s.logger.LogError(ctx, logger.OpGetRankings, "", "Failed to load cached rankings", err, models.LogSeverityHigh, map[string]interface{}{
				"domains": fresh,
			})
			return nil, err
		}
		for domain, series := range groupRecords(records) {
			result[domain] = series
		}
	}

	// Stale path: bounded concurrent refresh, one fetch per domain
	for _, series := range s.refreshStale(ctx, stale) {
		result[series.Domain] = *series
	}

	if len(result) == 0 {
		return nil, models.ErrNoRankedDomains
	}

	s.fillHotCache(ctx, remaining, result)

	s.logger.LogSuccess(ctx, logger.OpGetRankings, "", "Resolved rankings", map[string]interface{}{
		"requested":   len(domains),
		"returned":    len(result),
		"fresh":       len(fresh),
		"stale":       len(stale),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return result, nil
}

// parseDomains splits the comma-separated list, normalizes each token and
// deduplicates while preserving order. Empty tokens are dropped; an invalid
// one fails the whole request before any store or upstream work.
func (s *Service) parseDomains(rawDomains string) ([]string, error) {
	seen := make(map[string]struct{})
	var domains []string

	for _, token := range strings.Split(rawDomains, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		canonical, err := s.normalizer.Normalize(token)
		if err != nil {
			return nil, err
		}

		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		domains = append(domains, canonical)
	}

	return domains, nil
}

// serveFromHotCache fills result with hot-cache hits and returns the misses
func (s *Service) serveFromHotCache(ctx context.Context, domains []string, result map[string]models.TimeSeries) []string {
	if s.seriesCache == nil {
		return domains
	}

	var misses []string
	for _, domain := range domains {
		series, err := s.seriesCache.Get(ctx, domain)
		if err != nil {
			s.logger.LogInfo(ctx, logger.OpCacheMiss, fmt.Sprintf("Hot cache miss for %s", domain), nil)
			misses = append(misses, domain)
			continue
		}

		s.logger.LogSuccess(ctx, logger.OpCacheHit, domain, "Served time series from hot cache", nil)
		result[domain] = *series
	}

	return misses
}

// partitionByFreshness runs the one batched freshness query and splits the
// domains into store-servable and refresh-needing sets. A domain with no
// stored records is never fresh.
func (s *Service) partitionByFreshness(ctx context.Context, domains []string) (fresh, stale []string, err error) {
	if len(domains) == 0 {
		return nil, nil, nil
	}

	latest, err := s.store.FindLatestPerDomain(ctx, domains)
	if err != nil {
		s.logger.LogError(ctx, logger.OpFreshnessCheck, "", "Freshness query failed", err, models.LogSeverityHigh, map[string]interface{}{
			"domains": domains,
		})
		return nil, nil, err
	}

	now := time.Now().UTC()
	for _, domain := range domains {
		if updatedAt, ok := latest[domain]; ok && now.Sub(updatedAt) < s.cacheTTL {
			fresh = append(fresh, domain)
		} else {
			stale = append(stale, domain)
		}
	}

	s.logger.LogInfo(ctx, logger.OpFreshnessCheck, "Partitioned domains by freshness", map[string]interface{}{
		"fresh": len(fresh),
		"stale": len(stale),
	})

	return fresh, stale, nil
}

// refreshStale fans out one upstream fetch per stale domain, bounded by the
// configured concurrency, and fans the successful replacements back in.
// Completion order does not matter; all results are collected before merging.
func (s *Service) refreshStale(ctx context.Context, stale []string) []*models.TimeSeries {
	if len(stale) == 0 {
		return nil
	}

	resultsChan := make(chan *models.TimeSeries, len(stale))
	sem := make(chan struct{}, s.maxConcurrent)
	var wg sync.WaitGroup

	for _, domain := range stale {
		wg.Add(1)

		go func(dom string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			if series := s.refreshDomain(ctx, dom); series != nil {
				resultsChan <- series
			}
		}(domain)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	var refreshed []*models.TimeSeries
	for series := range resultsChan {
		refreshed = append(refreshed, series)
	}

	return refreshed
}

// refreshDomain fetches one domain from upstream and transactionally replaces
// its stored history. Every failure mode is contained to this domain: the
// return value is nil and the domain is simply absent from the response.
func (s *Service) refreshDomain(ctx context.Context, domain string) *models.TimeSeries {
	result := s.fetcher.FetchRanking(ctx, domain)

	switch result.Status {
	case fetcher.StatusNotFound:
		s.logger.LogInfo(ctx, logger.OpUpstreamFetch, fmt.Sprintf("Upstream has no data for %s", domain), map[string]interface{}{
			"domain": domain,
		})
		return nil
	case fetcher.StatusFailed:
		s.logger.LogError(ctx, logger.OpUpstreamFetch, domain, "Upstream fetch failed", result.Err, models.LogSeverityMedium, nil)
		return nil
	}

	entries := result.Ranking.Ranks
	if len(entries) == 0 {
		s.logger.LogInfo(ctx, logger.OpUpstreamFetch, fmt.Sprintf("Upstream returned an empty history for %s", domain), map[string]interface{}{
			"domain": domain,
		})
		return nil
	}

	now := time.Now().UTC()
	records := make([]models.RankingRecord, 0, len(entries))
	labels := make([]string, 0, len(entries))
	ranks := make([]int, 0, len(entries))

	for _, entry := range entries {
		records = append(records, models.RankingRecord{
			Domain:    domain,
			Date:      entry.Date,
			Rank:      entry.Rank,
			UpdatedAt: now,
		})
		labels = append(labels, entry.Date)
		ranks = append(ranks, entry.Rank)
	}

	if err := s.store.ReplaceAll(ctx, domain, records); err != nil {
		// Prior history survives the rollback; the domain just misses
		// this response and a later request retries the refresh
		s.logger.LogError(ctx, logger.OpStoreReplace, domain, "Failed to replace stored history", err, models.LogSeverityHigh, map[string]interface{}{
			"records": len(records),
		})
		return nil
	}

	s.logger.LogSuccess(ctx, logger.OpStoreReplace, domain, "Replaced stored history from upstream", map[string]interface{}{
		"records": len(records),
	})

	return &models.TimeSeries{
		Domain: domain,
		Labels: labels,
		Ranks:  ranks,
	}
}

// fillHotCache stores served series in the hot layer, best effort. Only the
// domains that missed the hot cache are written: a hit must never extend its
// own TTL, or the freshness check would be starved under sustained traffic.
func (s *Service) fillHotCache(ctx context.Context, misses []string, result map[string]models.TimeSeries) {
	if s.seriesCache == nil {
		return
	}

	for _, domain := range misses {
		series, ok := result[domain]
		if !ok {
			continue
		}
		if err := s.seriesCache.Set(ctx, domain, &series, 0); err != nil {
			s.logger.LogError(ctx, logger.OpCacheFill, domain, "Failed to fill hot cache", err, models.LogSeverityLow, nil)
		}
	}
}

// groupRecords builds one TimeSeries per domain from store records, which
// arrive ordered by domain and ascending date
func groupRecords(records []models.RankingRecord) map[string]models.TimeSeries {
	grouped := make(map[string]models.TimeSeries)

	for _, rec := range records {
		series := grouped[rec.Domain]
		series.Domain = rec.Domain
		series.Labels = append(series.Labels, rec.Date)
		series.Ranks = append(series.Ranks, rec.Rank)
		grouped[rec.Domain] = series
	}

	return grouped
}
