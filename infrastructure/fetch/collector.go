// ABOUTME: Page fetcher built on colly for retrieving artist and release pages
// ABOUTME: One bounded, synchronous GET per call; failures surface as FetchError

package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly"

	"releaseradar/core/errors"
	"releaseradar/core/interfaces"
	"releaseradar/pkg/config"
)

const (
	// pageUserAgent masquerades as a desktop browser; several platforms
	// serve reduced markup to obvious bots.
	pageUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

	// maxBodyBytes caps response bodies. Listing pages run well under 1MB.
	maxBodyBytes = 5 * 1024 * 1024
)

// PageFetcher implements the Fetcher interface using colly.
type PageFetcher struct {
	timeout time.Duration
	logger  interfaces.Logger
}

// NewPageFetcher creates a page fetcher with the configured per-request
// timeout.
func NewPageFetcher(cfg config.FetchConfig, logger interfaces.Logger) *PageFetcher {
	return &PageFetcher{
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		logger:  logger,
	}
}

// Fetch performs one GET and returns the body as text.
func (f *PageFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	select {
	case <-ctx.Done():
		return "", &errors.FetchError{URL: pageURL, Err: ctx.Err()}
	default:
	}

	c := colly.NewCollector(
		colly.UserAgent(pageUserAgent),
		colly.MaxBodySize(maxBodyBytes),
		colly.Async(false),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(f.timeout)

	var body []byte
	var status int

	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = r.Body
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
		f.logger.Debug("page fetch failed", map[string]interface{}{
			"url":    pageURL,
			"status": status,
			"error":  err.Error(),
		})
	})

	if err := c.Visit(pageURL); err != nil {
		return "", &errors.FetchError{URL: pageURL, StatusCode: status, Err: err}
	}

	if len(body) == 0 {
		return "", &errors.FetchError{URL: pageURL, StatusCode: status, Err: fmt.Errorf("empty response body")}
	}

	return string(body), nil
}
