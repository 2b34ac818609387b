// ABOUTME: Caching decorator over any Fetcher, keyed by page URL
// ABOUTME: Keeps repeat detail-page fetches cheap within and across scheduled runs

package fetch

import (
	"context"
	"time"

	"releaseradar/core/interfaces"
)

// pageKeyPrefix namespaces page bodies in the shared cache.
const pageKeyPrefix = "page:"

// CachingFetcher serves fetches from a cache before going to the network.
// Cache failures are logged and ignored; the network result always wins.
type CachingFetcher struct {
	fetcher interfaces.Fetcher
	cache   interfaces.Cache
	ttl     time.Duration
	logger  interfaces.Logger
}

// NewCachingFetcher wraps fetcher with a cache. A zero ttl stores pages
// without expiration.
func NewCachingFetcher(fetcher interfaces.Fetcher, cache interfaces.Cache, ttl time.Duration, logger interfaces.Logger) *CachingFetcher {
	return &CachingFetcher{
		fetcher: fetcher,
		cache:   cache,
		ttl:     ttl,
		logger:  logger,
	}
}

// Fetch returns the cached body when present, fetching and storing it
// otherwise.
func (f *CachingFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	key := pageKeyPrefix + pageURL

	if data, err := f.cache.Get(ctx, key); err == nil && len(data) > 0 {
		f.logger.Debug("page cache hit", map[string]interface{}{
			"url": pageURL,
		})
		return string(data), nil
	}

	page, err := f.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}

	if err := f.cache.Set(ctx, key, []byte(page), f.ttl); err != nil {
		f.logger.Debug("page cache store failed", map[string]interface{}{
			"url":   pageURL,
			"error": err.Error(),
		})
	}

	return page, nil
}
