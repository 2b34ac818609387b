// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as page fetching, caching, logging, and feed persistence.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory page cache built on go-cache
// - cache/sqlite: SQLite-backed page cache that survives restarts
// - cache/redis: Redis-based page cache storing JSON envelopes
// - fetch: Colly-backed page fetcher plus a caching decorator
// - logger/structured: Logrus-backed structured logger
// - preview: HTTP middleware for the preview file server
// - sink/local: Local-filesystem feed sink with an HTML index
//
// # Design Philosophy
//
// Infrastructure components are designed to be:
// - Pluggable: Easy to swap implementations
// - Configurable: Accept configuration objects
// - Testable: Include both unit and integration tests
// - Production-ready: Include timeouts and error handling
//
// # Cache Implementations
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "page:https://artist.bandcamp.com/music", body, 1*time.Hour)
//	value, err := cache.Get(ctx, "page:https://artist.bandcamp.com/music")
//
// Redis Cache Example:
//
//	config := config.RedisConfig{
//	    Address:  "localhost:6379",
//	    Password: "",
//	    DB:       0,
//	}
//	cache, err := redis.NewRedisCache(config)
//
// # Page Fetcher
//
// The fetcher retrieves raw page markup with a browser user agent and a
// per-request timeout, and the caching decorator keeps repeat visits off
// the network:
//
//	fetcher := fetch.NewCachingFetcher(fetch.NewPageFetcher(cfg.Fetch, logger), cache, ttl, logger)
//	body, err := fetcher.Fetch(ctx, "https://artist.bandcamp.com/music")
//
// # Logger
//
// The logger supports structured logging with fields:
//
//	logger := structured.NewStructuredLogger("info")
//	logger.Info("artist processed", map[string]interface{}{
//	    "artist":   "Fog Census",
//	    "releases": 2,
//	})
package infrastructure
