// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for capabilities required by the pipeline

package interfaces

// Dependencies holds all external capabilities required by the core
// pipeline. Everything that touches the network, the filesystem, or the
// wall clock arrives here; core packages stay deterministic and testable.
type Dependencies struct {
	// Fetcher retrieves raw page markup.
	Fetcher Fetcher

	// Cache provides page caching for the fetch layer. Optional.
	Cache Cache

	// Logger provides structured logging.
	Logger Logger

	// Clock supplies the current time.
	Clock Clock
}
