// ABOUTME: Fetcher interface for retrieving raw page markup over HTTP
// ABOUTME: Implementations own transport, timeout, and pacing concerns

package interfaces

import "context"

// Fetcher retrieves the raw markup of a single page. It has no parsing
// knowledge; extractors consume the returned text. Implementations must
// enforce a bounded per-request timeout and fail on any non-2xx status,
// network timeout, or transport error. Retries, if any, belong to callers.
type Fetcher interface {
	// Fetch performs one HTTP GET and returns the response body as text.
	// Errors are reported as *errors.FetchError.
	Fetch(ctx context.Context, url string) (string, error)
}

// FetcherFunc adapts a function to the Fetcher interface; test doubles
// use this to serve canned markup.
type FetcherFunc func(ctx context.Context, url string) (string, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}
