// ABOUTME: Pipeline runner walks groups and artists sequentially and publishes one feed per group
// ABOUTME: Failures are contained at the smallest scope so a run always ends with written output

package pipeline

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"releaseradar/core/assemble"
	"releaseradar/core/dates"
	"releaseradar/core/domain"
	"releaseradar/core/errors"
	"releaseradar/core/extract"
	"releaseradar/core/interfaces"
	"releaseradar/core/normalize"
)

// Options adjust runner behavior per run.
type Options struct {
	// DetailDelay is the minimum spacing between successive detail-page
	// fetches. Zero disables pacing.
	DetailDelay time.Duration

	// UniformFutureFilter applies future-date filtering to listing-derived
	// dates as well as detail-derived ones.
	UniformFutureFilter bool

	// ManualRenderOnly skips the library feed renderer.
	ManualRenderOnly bool
}

// Summary reports what a run produced, for the final log line and for
// callers deciding the exit code.
type Summary struct {
	GroupsProcessed int
	GroupsFailed    int
	ArtistsFailed   int
	FeedsWritten    int
	ItemsPublished  int
}

// Runner executes the whole scrape-to-feed pipeline: fetch each artist
// page, extract candidates, resolve dates, normalize, assemble one feed
// document per group, and write an index of everything produced.
//
// Execution is strictly sequential: groups in configuration order, artists
// in document order. Detail fetches share one limiter so pacing holds
// across artists too.
type Runner struct {
	deps       interfaces.Dependencies
	resolver   *dates.Resolver
	normalizer *normalize.Normalizer
	assembler  *assemble.Assembler
	sink       interfaces.FeedSink
}

// New wires a runner from its dependencies.
func New(deps interfaces.Dependencies, sink interfaces.FeedSink, opts Options) *Runner {
	var limiter *rate.Limiter
	if opts.DetailDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.DetailDelay), 1)
	}

	return &Runner{
		deps:       deps,
		resolver:   dates.NewResolver(deps, limiter, dates.Options{UniformFutureFilter: opts.UniformFutureFilter}),
		normalizer: normalize.New(deps.Logger),
		assembler:  assemble.New(deps, sink, assemble.Options{ManualRenderOnly: opts.ManualRenderOnly}),
		sink:       sink,
	}
}

// Run processes every group and writes the feed index. Per-artist and
// per-group failures are logged and counted, never propagated; the only
// returned error is a failed index write, which means the output location
// itself is broken.
func (r *Runner) Run(ctx context.Context, groups []domain.FeedGroup) (Summary, error) {
	var summary Summary
	refs := make([]interfaces.FeedRef, 0, len(groups))

	for _, group := range groups {
		summary.GroupsProcessed++

		r.deps.Logger.Info("processing feed group", map[string]interface{}{
			"group":   group.BaseName,
			"artists": len(group.Artists),
		})

		items := r.processGroup(ctx, group, &summary)

		ref, err := r.assembler.Publish(ctx, group, items)
		if err != nil {
			summary.GroupsFailed++
			r.deps.Logger.Error("feed group failed", map[string]interface{}{
				"group": group.BaseName,
				"error": err.Error(),
			})
			continue
		}

		summary.FeedsWritten++
		summary.ItemsPublished += ref.ItemCount
		refs = append(refs, ref)
	}

	if err := r.sink.WriteIndex(ctx, refs); err != nil {
		return summary, errors.WrapError(err, "failed to write feed index")
	}

	return summary, nil
}

func (r *Runner) processGroup(ctx context.Context, group domain.FeedGroup, summary *Summary) []domain.FeedItem {
	var items []domain.FeedItem

	for _, artist := range group.Artists {
		items = append(items, r.processArtist(ctx, artist, summary)...)
	}

	return items
}

func (r *Runner) processArtist(ctx context.Context, artist domain.Artist, summary *Summary) []domain.FeedItem {
	candidates := r.collectCandidates(ctx, artist, summary)
	if len(candidates) == 0 {
		return nil
	}

	releases := make([]domain.Release, 0, len(candidates))
	for _, candidate := range candidates {
		release, ok := r.resolver.Resolve(ctx, candidate)
		if !ok {
			continue
		}
		releases = append(releases, release)
	}

	releases = r.normalizer.Apply(releases, artist.MaxReleases)

	items := make([]domain.FeedItem, 0, len(releases))
	for _, release := range releases {
		items = append(items, domain.NewFeedItem(artist, release))
	}

	r.deps.Logger.Info("artist processed", map[string]interface{}{
		"artist":   artist.Name,
		"releases": len(items),
	})

	return items
}

// collectCandidates fetches the artist's listing page and extracts release
// candidates. Fetch and extraction failures degrade to a synthetic error
// candidate; normalization filters it out of published output later, so
// the failure is visible in logs and counters without poisoning the feed.
func (r *Runner) collectCandidates(ctx context.Context, artist domain.Artist, summary *Summary) []domain.Candidate {
	extractor := extract.ForArtist(artist)

	page, err := r.deps.Fetcher.Fetch(ctx, artist.URL)
	if err != nil {
		summary.ArtistsFailed++
		r.deps.Logger.Warn("artist page fetch failed", map[string]interface{}{
			"artist":   artist.Name,
			"url":      artist.URL,
			"platform": extractor.Platform().String(),
			"error":    err.Error(),
		})
		return []domain.Candidate{extract.ErrorCandidate(artist, err)}
	}

	candidates, err := extractor.Extract(page, artist)
	if err != nil {
		summary.ArtistsFailed++
		r.deps.Logger.Warn("extraction failed", map[string]interface{}{
			"artist":   artist.Name,
			"url":      artist.URL,
			"platform": extractor.Platform().String(),
			"error":    err.Error(),
		})
		return []domain.Candidate{extract.ErrorCandidate(artist, err)}
	}

	if len(candidates) == 0 {
		r.deps.Logger.Info("no release candidates on page", map[string]interface{}{
			"artist":   artist.Name,
			"platform": extractor.Platform().String(),
		})
	}

	return candidates
}
