// ABOUTME: Artist and FeedGroup domain models describing what the pipeline watches
// ABOUTME: Provides validation and defaulting for externally supplied configuration

package domain

import (
	"errors"
	"net/url"
	"strings"
)

// DefaultMaxReleases is the per-artist candidate cap applied when a group
// document does not specify one.
const DefaultMaxReleases = 2

// Artist is one watched artist page, as supplied by a group document.
type Artist struct {
	// Name is the display name used for feed item titles and authorship.
	Name string `json:"name"`

	// URL is the artist page to scrape (listing page, not a release page).
	URL string `json:"url"`

	// MaxReleases bounds how many candidates are taken from the page,
	// in document order. Zero means DefaultMaxReleases.
	MaxReleases int `json:"maxReleases,omitempty"`
}

// Normalize applies defaults in place.
func (a *Artist) Normalize() {
	a.Name = strings.TrimSpace(a.Name)
	a.URL = strings.TrimSpace(a.URL)
	if a.MaxReleases < 1 {
		a.MaxReleases = DefaultMaxReleases
	}
}

// Validate checks the artist has the fields the pipeline cannot work without.
func (a *Artist) Validate() error {
	if a.Name == "" {
		return errors.New("artist name cannot be empty")
	}

	if a.URL == "" {
		return errors.New("artist URL cannot be empty")
	}

	parsed, err := url.Parse(a.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errors.New("artist URL is not an absolute URL")
	}

	return nil
}

// FeedGroup is the set of artists aggregated into one output feed document.
// One group corresponds to one input JSON document.
type FeedGroup struct {
	// Title is the channel title. Optional in input; defaulted by the loader.
	Title string `json:"title,omitempty"`

	// Description is the channel description. Optional in input.
	Description string `json:"description,omitempty"`

	// Artists are processed strictly in document order.
	Artists []Artist `json:"artists"`

	// BaseName is derived from the input document's file name and names
	// the output feed document. Not part of the JSON payload.
	BaseName string `json:"-"`
}

// Validate checks the group is usable. An empty artist list is allowed;
// assembly falls back to a diagnostic item rather than an empty channel.
func (g *FeedGroup) Validate() error {
	if g.BaseName == "" {
		return errors.New("feed group base name cannot be empty")
	}

	for i := range g.Artists {
		if err := g.Artists[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}
