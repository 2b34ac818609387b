// ABOUTME: Candidate and Release domain models for the extraction pipeline
// ABOUTME: Candidates are unvalidated per-element results; Releases are resolved and immutable

package domain

import "time"

// Candidate is one raw extraction result from a single page element. Fields
// other than Title and URL may be missing or unreliable; a candidate with
// an empty Title or URL is rejected at extraction time and never enters
// the pipeline.
type Candidate struct {
	// Title is the release title as it appears on the listing page.
	Title string

	// URL is the release page URL, absolutized against the artist page.
	URL string

	// ImageURL is the cover image URL, if the listing exposed one.
	ImageURL string

	// DateText is free-form date text found near the element, if any.
	// The date resolver treats it as strategy input, not as truth.
	DateText string

	// DateFromDetail marks DateText that was read from the release's own
	// page rather than a listing, so future-date filtering treats the
	// parsed date as detail-resolved.
	DateFromDetail bool

	// DescriptionHint is listing-page text usable as a description.
	DescriptionHint string

	// NeedsDetail marks candidates whose publish date lives on the
	// release's own page and requires a secondary fetch (Bandcamp).
	NeedsDetail bool
}

// IsComplete reports whether the candidate has the two fields extraction
// must not invent.
func (c *Candidate) IsComplete() bool {
	return c.Title != "" && c.URL != ""
}

// Release is a fully resolved release record. Published is always a valid
// timestamp; the date resolver guarantees a "now" fallback. A Release is
// never mutated after resolution, only filtered or sorted.
type Release struct {
	Title       string
	URL         string
	Published   time.Time
	ImageURL    string
	Description string

	// DetailResolved records whether Published came from the release's
	// own detail page. Future-dated filtering keys off this by default.
	DetailResolved bool
}
