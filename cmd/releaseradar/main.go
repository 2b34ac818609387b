// ABOUTME: Main entry point for the release radar pipeline run
// ABOUTME: Wires config, cache, fetcher and sink together and executes one pass

package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"releaseradar/core/interfaces"
	"releaseradar/core/pipeline"
	"releaseradar/infrastructure/cache/memory"
	"releaseradar/infrastructure/cache/redis"
	"releaseradar/infrastructure/cache/sqlite"
	"releaseradar/infrastructure/fetch"
	"releaseradar/infrastructure/logger/structured"
	"releaseradar/infrastructure/sink/local"
	"releaseradar/pkg/config"
	"releaseradar/pkg/featureflags"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create logger
	logger := structured.NewStructuredLogger(os.Getenv("LOG_LEVEL"))
	logger.Info("starting release radar", map[string]interface{}{
		"config_dir": cfg.Paths.ConfigDir,
		"output_dir": cfg.Paths.OutputDir,
		"cache_type": cfg.Cache.Type,
	})

	// Create page cache
	cache := newCache(cfg, logger)
	if closer, ok := cache.(io.Closer); ok {
		defer closer.Close()
	}

	// Create fetcher with caching decorator
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	fetcher := fetch.NewCachingFetcher(fetch.NewPageFetcher(cfg.Fetch, logger), cache, ttl, logger)

	// Create dependencies container
	deps := interfaces.Dependencies{
		Fetcher: fetcher,
		Cache:   cache,
		Logger:  logger,
		Clock:   interfaces.SystemClock{},
	}

	// Resolve feature flags
	ctx := context.Background()
	flags := featureflags.NewEnvManager("")
	opts := pipeline.Options{
		DetailDelay:         time.Duration(cfg.Fetch.DetailDelayMS) * time.Millisecond,
		UniformFutureFilter: flags.IsEnabled(ctx, featureflags.UniformFutureFilter),
		ManualRenderOnly:    flags.IsEnabled(ctx, featureflags.ManualRenderOnly),
	}

	// Load feed group documents
	groups, warnings, err := config.LoadGroups(cfg.Paths.ConfigDir)
	for _, warning := range warnings {
		logger.Warn("group document skipped", map[string]interface{}{
			"error": warning.Error(),
		})
	}
	if err != nil {
		log.Fatalf("Failed to load feed groups: %v", err)
	}

	// Create output sink
	sink, err := local.NewLocalSink(cfg.Paths.OutputDir, logger, interfaces.SystemClock{})
	if err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	// Run the pipeline
	runner := pipeline.New(deps, sink, opts)
	summary, err := runner.Run(ctx, groups)
	if err != nil {
		logger.Error("run aborted", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	logger.Info("run complete", map[string]interface{}{
		"groups_processed": summary.GroupsProcessed,
		"groups_failed":    summary.GroupsFailed,
		"artists_failed":   summary.ArtistsFailed,
		"feeds_written":    summary.FeedsWritten,
		"items_published":  summary.ItemsPublished,
	})

	if summary.FeedsWritten == 0 && summary.GroupsFailed > 0 {
		logger.Error("every group failed to publish", nil)
		os.Exit(1)
	}
}

// newCache builds the configured cache backend, falling back to the
// in-memory cache when a backend cannot be reached. A degraded cache slows
// a run down but never stops it.
func newCache(cfg *config.Config, logger interfaces.Logger) interfaces.Cache {
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("redis cache unavailable, falling back to memory", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
				"error":   err.Error(),
			})
			return memory.NewMemoryCache()
		}
		logger.Info("using redis page cache", map[string]interface{}{
			"address": cfg.Cache.Redis.Address,
		})
		return redisCache
	case "sqlite":
		sqliteCache, err := sqlite.NewSQLiteCache(cfg.Cache.SQLite.Path)
		if err != nil {
			logger.Error("sqlite cache unavailable, falling back to memory", map[string]interface{}{
				"path":  cfg.Cache.SQLite.Path,
				"error": err.Error(),
			})
			return memory.NewMemoryCache()
		}
		logger.Info("using sqlite page cache", map[string]interface{}{
			"path": cfg.Cache.SQLite.Path,
		})
		return sqliteCache
	default:
		logger.Info("using in-memory page cache", nil)
		return memory.NewMemoryCache()
	}
}
