// ABOUTME: Spotify extractor reading MusicAlbum structured data from artist pages
// ABOUTME: Prefers ld+json blocks and falls back to album anchor scanning

package extract

import (
	"encoding/json"

	"github.com/PuerkitoBio/goquery"

	"releaseradar/core/domain"
	"releaseradar/pkg/utils/htmltext"
)

const spotifyBase = "https://open.spotify.com"

// SpotifyExtractor handles artist pages on spotify.com.
type SpotifyExtractor struct{}

// Platform identifies the variant.
func (e *SpotifyExtractor) Platform() domain.Platform { return domain.PlatformSpotify }

// Extract reads MusicAlbum entries from structured data blocks, falling
// back to an album anchor scan when no usable block exists.
func (e *SpotifyExtractor) Extract(pageHTML string, artist domain.Artist) ([]domain.Candidate, error) {
	doc, err := parsePage(pageHTML, artist)
	if err != nil {
		return nil, err
	}

	candidates := runPatterns(doc, artist, []pattern{
		spotifyLDJSONPattern,
		spotifyAnchorPattern,
	})

	return truncate(candidates, artist.MaxReleases), nil
}

// spotifyLDJSONPattern collects MusicAlbum entries from every structured
// data script block. A malformed block is skipped; siblings continue.
func spotifyLDJSONPattern(doc *goquery.Document, artist domain.Artist) []domain.Candidate {
	var candidates []domain.Candidate

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, script *goquery.Selection) {
		var raw interface{}
		if err := json.Unmarshal([]byte(script.Text()), &raw); err != nil {
			return
		}

		for _, entry := range ldEntries(raw) {
			if candidate, ok := albumCandidate(entry); ok {
				candidates = append(candidates, candidate)
			}
		}
	})

	return candidates
}

// ldEntries flattens the shapes structured data arrives in: a single
// object, a top-level array, or an object carrying an @graph list.
func ldEntries(raw interface{}) []map[string]interface{} {
	switch v := raw.(type) {
	case map[string]interface{}:
		if graph, ok := v["@graph"].([]interface{}); ok {
			return ldList(graph)
		}
		return []map[string]interface{}{v}
	case []interface{}:
		return ldList(v)
	}
	return nil
}

func ldList(items []interface{}) []map[string]interface{} {
	var entries []map[string]interface{}
	for _, item := range items {
		if entry, ok := item.(map[string]interface{}); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// albumCandidate converts one structured data entry into a candidate.
// Entries that are not MusicAlbum, or lack name or url, are rejected.
func albumCandidate(entry map[string]interface{}) (domain.Candidate, bool) {
	entryType, _ := entry["@type"].(string)
	if entryType != "MusicAlbum" {
		return domain.Candidate{}, false
	}

	name, _ := entry["name"].(string)
	albumURL, _ := entry["url"].(string)
	if name == "" || albumURL == "" {
		return domain.Candidate{}, false
	}

	candidate := domain.Candidate{
		Title: htmltext.Collapse(name),
		URL:   absoluteURL(spotifyBase, albumURL),
	}

	if date, ok := entry["datePublished"].(string); ok {
		candidate.DateText = date
	}

	// Image arrives as a plain string or as an ImageObject.
	if img, ok := entry["image"].(string); ok {
		candidate.ImageURL = img
	} else if imgObj, ok := entry["image"].(map[string]interface{}); ok {
		if imgURL, ok := imgObj["url"].(string); ok {
			candidate.ImageURL = imgURL
		}
	}

	return candidate, true
}

// spotifyAnchorPattern scans album anchors directly.
func spotifyAnchorPattern(doc *goquery.Document, artist domain.Artist) []domain.Candidate {
	var candidates []domain.Candidate

	doc.Find(`a[href*="/album/"]`).Each(func(_ int, anchor *goquery.Selection) {
		title := htmltext.Collapse(anchor.Text())
		href, _ := anchor.Attr("href")
		if title == "" || href == "" {
			return
		}

		candidates = append(candidates, domain.Candidate{
			Title: title,
			URL:   absoluteURL(spotifyBase, href),
		})
	})

	return candidates
}
