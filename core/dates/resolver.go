// ABOUTME: Date resolver turning release candidates into releases with guaranteed dates
// ABOUTME: Runs the detail-page strategy chain and the future-release filter

package dates

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/time/rate"

	"releaseradar/core/domain"
	"releaseradar/core/interfaces"
	"releaseradar/pkg/utils/htmltext"
	"releaseradar/pkg/utils/timeparse"
)

// descriptionExcerptCap bounds descriptions recovered from detail pages.
const descriptionExcerptCap = 300

// Options adjust resolver behavior per run.
type Options struct {
	// UniformFutureFilter drops future-dated releases from every platform.
	// When false, only detail-resolved dates are filtered; listing dates
	// describe already-published releases.
	UniformFutureFilter bool
}

// Resolver produces a publish date for every candidate. The date is always
// valid: when every strategy fails the resolver falls back to the clock.
type Resolver struct {
	deps    interfaces.Dependencies
	limiter *rate.Limiter
	opts    Options
}

// NewResolver creates a resolver. The limiter paces detail page fetches
// and is shared across the whole run; nil disables pacing (tests).
func NewResolver(deps interfaces.Dependencies, limiter *rate.Limiter, opts Options) *Resolver {
	return &Resolver{
		deps:    deps,
		limiter: limiter,
		opts:    opts,
	}
}

// Resolve turns one candidate into a release. The second return value is
// false when the candidate is dropped: structurally incomplete, or
// future-dated under the active filter.
func (r *Resolver) Resolve(ctx context.Context, candidate domain.Candidate) (domain.Release, bool) {
	if !candidate.IsComplete() {
		return domain.Release{}, false
	}

	release := domain.Release{
		Title:       candidate.Title,
		URL:         candidate.URL,
		ImageURL:    candidate.ImageURL,
		Description: candidate.DescriptionHint,
	}

	// Pre-extracted date text wins when it parses; no fetch needed. Text
	// that came from the release's own page keeps its detail provenance
	// so the pre-release filter still applies to it.
	if candidate.DateText != "" {
		if t := timeparse.Parse(candidate.DateText); !t.IsZero() {
			release.Published = t
			release.DetailResolved = candidate.DateFromDetail
			return r.applyFutureFilter(release)
		}
		r.deps.Logger.Debug("listing date text did not parse", map[string]interface{}{
			"url":       candidate.URL,
			"date_text": candidate.DateText,
		})
	}

	if candidate.NeedsDetail {
		if doc := r.fetchDetail(ctx, candidate.URL); doc != nil {
			if t, strategyName := r.dateFromDetail(doc); !t.IsZero() {
				release.Published = t
				release.DetailResolved = true
				r.deps.Logger.Debug("resolved publish date from detail page", map[string]interface{}{
					"url":      candidate.URL,
					"strategy": strategyName,
					"date":     t.Format(time.RFC3339),
				})
			}
			if release.Description == "" {
				release.Description = r.descriptionFromDetail(doc, candidate.URL)
			}
		}
	}

	if release.Published.IsZero() {
		release.Published = r.deps.Clock.Now()
	}

	return r.applyFutureFilter(release)
}

// fetchDetail fetches and parses the release's own page. Failures are
// non-fatal; the candidate keeps its listing fields and a clock date.
func (r *Resolver) fetchDetail(ctx context.Context, detailURL string) *goquery.Document {
	if r.deps.Fetcher == nil {
		return nil
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			r.deps.Logger.Warn("detail fetch pacing interrupted", map[string]interface{}{
				"url":   detailURL,
				"error": err.Error(),
			})
			return nil
		}
	}

	pageHTML, err := r.deps.Fetcher.Fetch(ctx, detailURL)
	if err != nil {
		r.deps.Logger.Warn("detail page fetch failed", map[string]interface{}{
			"url":   detailURL,
			"error": err.Error(),
		})
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		r.deps.Logger.Warn("detail page did not parse", map[string]interface{}{
			"url":   detailURL,
			"error": err.Error(),
		})
		return nil
	}

	return doc
}

// dateFromDetail runs the strategy chain. The first strategy whose output
// parses wins; an unparseable match moves on to the next strategy.
func (r *Resolver) dateFromDetail(doc *goquery.Document) (time.Time, string) {
	for _, s := range detailStrategies {
		raw := s.extract(doc)
		if raw == "" {
			continue
		}
		if t := timeparse.Parse(raw); !t.IsZero() {
			return t, s.name
		}
	}
	return time.Time{}, ""
}

// descriptionFromDetail recovers a short description for candidates whose
// listing carried none. Page metadata is preferred; readability extraction
// is the last resort for pages without any.
func (r *Resolver) descriptionFromDetail(doc *goquery.Document, detailURL string) string {
	if content, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok {
		if desc := htmltext.Collapse(content); desc != "" {
			return capExcerpt(desc)
		}
	}

	if content, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		if desc := htmltext.Collapse(content); desc != "" {
			return capExcerpt(desc)
		}
	}

	pageHTML, err := doc.Html()
	if err != nil {
		return ""
	}

	pageURL, err := url.Parse(detailURL)
	if err != nil {
		return ""
	}

	article, err := readability.FromReader(strings.NewReader(pageHTML), pageURL)
	if err != nil {
		return ""
	}

	excerpt := htmltext.Collapse(article.Excerpt)
	if excerpt == "" {
		excerpt = htmltext.Collapse(article.TextContent)
	}

	return capExcerpt(excerpt)
}

func capExcerpt(excerpt string) string {
	runes := []rune(excerpt)
	if len(runes) > descriptionExcerptCap {
		return string(runes[:descriptionExcerptCap])
	}
	return excerpt
}

// applyFutureFilter drops releases dated strictly after now. Detail-resolved
// dates are always subject to it; listing dates only under the uniform
// filter option.
func (r *Resolver) applyFutureFilter(release domain.Release) (domain.Release, bool) {
	if !release.DetailResolved && !r.opts.UniformFutureFilter {
		return release, true
	}

	if release.Published.After(r.deps.Clock.Now()) {
		r.deps.Logger.Info("dropping future-dated release", map[string]interface{}{
			"url":       release.URL,
			"published": release.Published.Format(time.RFC3339),
		})
		return domain.Release{}, false
	}

	return release, true
}
