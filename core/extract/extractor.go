// ABOUTME: Platform extractor dispatch and the shared structural-pattern machinery
// ABOUTME: Maps artist URLs to extractor variants and runs ordered pattern fallback chains

package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"releaseradar/core/domain"
	"releaseradar/core/errors"
)

// Extractor consumes raw markup for one artist page and produces a finite
// list of release candidates. Candidates may be structurally incomplete;
// missing title or URL is rejected at extraction time.
type Extractor interface {
	// Platform identifies the variant.
	Platform() domain.Platform

	// Extract parses the artist's listing page into candidates, in document
	// order, truncated at the artist's MaxReleases.
	Extract(pageHTML string, artist domain.Artist) ([]domain.Candidate, error)
}

// ForPlatform returns the extractor variant for a platform.
func ForPlatform(p domain.Platform) Extractor {
	switch p {
	case domain.PlatformBandcamp:
		return &BandcampExtractor{}
	case domain.PlatformSoundCloud:
		return &SoundCloudExtractor{}
	case domain.PlatformSpotify:
		return &SpotifyExtractor{}
	default:
		return &GenericExtractor{}
	}
}

// ForArtist selects the extractor by inspecting the artist URL's host.
func ForArtist(artist domain.Artist) Extractor {
	return ForPlatform(domain.DetectPlatform(artist.URL))
}

// ErrorCandidate builds the synthetic candidate recorded when extraction
// for an artist fails entirely. Its title carries the "Error Reading"
// marker so normalization keeps it out of published feeds; the pipeline
// logs it as evidence of the failure.
func ErrorCandidate(artist domain.Artist, err error) domain.Candidate {
	return domain.Candidate{
		Title:           "Error Reading " + artist.Name,
		URL:             artist.URL,
		DescriptionHint: fmt.Sprintf("could not extract releases from %s: %v", artist.URL, err),
	}
}

// pattern is one structural extraction strategy over a parsed page.
type pattern func(doc *goquery.Document, artist domain.Artist) []domain.Candidate

// runPatterns tries patterns left to right and returns the first non-empty
// candidate list. Later patterns are not attempted once one yields; this is
// fallback, not merge.
func runPatterns(doc *goquery.Document, artist domain.Artist, patterns []pattern) []domain.Candidate {
	for _, p := range patterns {
		if candidates := p(doc, artist); len(candidates) > 0 {
			return candidates
		}
	}
	return nil
}

// parsePage wraps goquery parsing with the empty-page check shared by all
// extractors.
func parsePage(pageHTML string, artist domain.Artist) (*goquery.Document, error) {
	if strings.TrimSpace(pageHTML) == "" {
		return nil, &errors.ParseError{URL: artist.URL, Reason: "empty page"}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, &errors.ParseError{URL: artist.URL, Reason: err.Error()}
	}

	return doc, nil
}

// truncate caps a candidate list at max, keeping document order.
func truncate(candidates []domain.Candidate, max int) []domain.Candidate {
	if max > 0 && len(candidates) > max {
		return candidates[:max]
	}
	return candidates
}

// absoluteURL resolves href against base. Already-absolute hrefs pass
// through; unresolvable input returns the href unchanged.
func absoluteURL(base, href string) string {
	if href == "" {
		return href
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}

	refURL, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}

	return baseURL.ResolveReference(refURL).String()
}
