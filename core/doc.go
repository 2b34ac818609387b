// Package core contains the business logic for the release radar pipeline.
// It is designed to be framework-agnostic and can be used independently
// of any scheduler or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Contains pure domain models (Artist, Candidate, Release, FeedGroup, FeedItem)
// - extract: Per-platform release candidate extraction from page markup
// - dates: Ordered strategy chain resolving release dates from candidates
// - normalize: Placeholder filtering, sanitization, deduplication and capping
// - assemble: RSS document assembly with a manual serialization fallback
// - pipeline: Sequential per-group, per-artist run orchestration
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (fetcher, cache, logger, clock, sink)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "releaseradar/core/interfaces"
//	    "releaseradar/core/pipeline"
//	)
//
//	// Create dependencies
//	deps := interfaces.Dependencies{
//	    Fetcher: myFetcher, // implements interfaces.Fetcher
//	    Cache:   myCache,   // implements interfaces.Cache
//	    Logger:  myLogger,  // implements interfaces.Logger
//	    Clock:   interfaces.SystemClock{},
//	}
//
//	// Create the runner
//	runner := pipeline.New(deps, sink, pipeline.Options{})
//
//	// Process every group and publish feeds
//	summary, err := runner.Run(ctx, groups)
package core
