package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"rankings-api/internal/cache"
	"rankings-api/internal/cache/seriesCache"
	"rankings-api/internal/config"
	"rankings-api/internal/fetcher"
	"rankings-api/internal/http"
	"rankings-api/internal/logger"
	"rankings-api/internal/models"
	"rankings-api/internal/normalizer"
	"rankings-api/internal/rankings"
	"rankings-api/internal/ratelimit"
	"rankings-api/internal/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection for logging
	db, err := logger.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to logging database: %v", err)
	}
	defer db.Close()

	// Initialize logger
	appLogger := logger.NewDatabaseLogger(db)
	defer appLogger.Close()

	// Create internal log event for startup
	startupCtx := logger.WithLogEvent(context.Background(), logger.NewInternalLogEvent())

	appLogger.LogInfo(startupCtx, logger.OpServerStart, "Starting Domain Rankings API", map[string]interface{}{
		"version": "1.0.0",
		"config": map[string]interface{}{
			"port":        cfg.Port,
			"cache_type":  cfg.CacheType,
			"cache_hours": cfg.CacheTTL.Hours(),
		},
	})

	// Initialize the persistent ranking store
	rankingStore, err := store.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		appLogger.LogError(startupCtx, logger.OpStoreInit, "", "Failed to initialize ranking store", err, models.LogSeverityHigh, nil)
		log.Fatalf("Failed to initialize ranking store: %v", err)
	}
	defer rankingStore.Close()

	// Initialize the optional hot series cache
	hotCache, err := initializeSeriesCache(cfg)
	if err != nil {
		appLogger.LogError(startupCtx, logger.OpCacheInit, "", "Failed to initialize hot cache", err, models.LogSeverityHigh, nil)
		log.Fatalf("Failed to initialize hot cache: %v", err)
	}

	// Initialize components
	domainNormalizer := normalizer.New()
	upstreamFetcher := fetcher.NewHTTPFetcher(cfg.UpstreamAPIBase, cfg.RequestTimeout)

	rateLimiter := ratelimit.NewTwoTierRateLimiter(
		int64(cfg.GlobalRateLimitPerSec),
		int64(cfg.GlobalRateLimitPerSec),
		int64(cfg.PerIPRateLimitPerSec),
		int64(cfg.PerIPRateLimitPerSec),
	)

	// Initialize service
	rankingsService := rankings.NewService(
		domainNormalizer,
		rankingStore,
		upstreamFetcher,
		hotCache,
		appLogger,
		cfg.CacheTTL,
		cfg.MaxConcurrentFetches,
	)

	// Initialize HTTP handler
	handler := http.NewHandler(rankingsService, appLogger)

	// Initialize server
	addr := ":" + cfg.Port
	server := http.NewServer(
		addr,
		handler,
		appLogger,
		rateLimiter,
		cfg.ServerReadTimeout,
		cfg.ServerWriteTimeout,
	)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			appLogger.LogError(
				context.Background(),
				logger.OpServerStart,
				"",
				"Server failed to start",
				err,
				models.LogSeverityHigh,
				map[string]interface{}{"addr": addr},
			)
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	fmt.Printf("🚀 Domain Rankings API server started on %s\n", addr)
	fmt.Println("📋 Available endpoints:")
	fmt.Println("  GET  /health                          - Health check")
	fmt.Println("  GET  /api/rankings?domains=a.com,b.com - Ranking history for domains")
	fmt.Println("  GET  /api/rankings/{domains}          - Path form of the same")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.LogError(
			ctx,
			logger.OpServerShutdown,
			"",
			"Server shutdown error",
			err,
			models.LogSeverityMedium,
			nil,
		)
		log.Printf("Server shutdown error: %v", err)
	} else {
		appLogger.LogInfo(ctx, logger.OpServerShutdown, "Server shutdown completed successfully", nil)
		fmt.Println("✅ Server shutdown completed")
	}
}

// initializeSeriesCache builds the hot cache layer; CACHE_TYPE=none disables it
func initializeSeriesCache(cfg *config.Config) (seriesCache.Service, error) {
	switch cfg.CacheType {
	case "redis":
		backend, err := cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return seriesCache.New(backend, cfg.SeriesCacheTTL), nil
	case "memory":
		return seriesCache.New(cache.NewMemoryCache(), cfg.SeriesCacheTTL), nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.CacheType)
	}
}
