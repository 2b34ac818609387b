// ABOUTME: FeedItem domain model represents one entry in an output feed document
// ABOUTME: Derived from exactly one Release plus its owning Artist

package domain

import "time"

// FeedItem is one entry in an assembled feed document.
type FeedItem struct {
	// ArtistName is the owning artist's display name.
	ArtistName string

	// Title is "<artist> - <release title>".
	Title string

	// Link is the release URL; it doubles as the item GUID.
	Link string

	// Description is an HTML fragment: the cover image (when present)
	// followed by the text description.
	Description string

	// AuthorName and AuthorLink identify the artist as the item author.
	AuthorName string
	AuthorLink string

	// Published orders the feed, newest first.
	Published time.Time

	// ImageURL, when set, is emitted as the item enclosure.
	ImageURL string
}

// NewFeedItem derives the feed item for a release owned by artist.
func NewFeedItem(artist Artist, release Release) FeedItem {
	return FeedItem{
		ArtistName:  artist.Name,
		Title:       artist.Name + " - " + release.Title,
		Link:        release.URL,
		Description: release.Description,
		AuthorName:  artist.Name,
		AuthorLink:  artist.URL,
		Published:   release.Published,
		ImageURL:    release.ImageURL,
	}
}

// IsValid checks if the feed item has all required fields.
func (fi *FeedItem) IsValid() bool {
	if fi.Title == "" {
		return false
	}

	if fi.Link == "" {
		return false
	}

	return true
}
