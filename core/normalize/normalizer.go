// ABOUTME: Release normalizer filtering placeholders and sanitizing fields for feed output
// ABOUTME: The last gate before assembly; synthetic records never get past it

package normalize

import (
	"fmt"
	"net/url"
	"strings"

	"releaseradar/core/domain"
	"releaseradar/core/interfaces"
	"releaseradar/pkg/utils/htmltext"
	"releaseradar/pkg/utils/xmlsafe"
)

// placeholderMarkers flag synthetic candidates: extraction error records,
// sample data, and demo fixtures. Titles containing any of these never
// reach a published feed.
var placeholderMarkers = []string{"Sample", "Error Reading", "Example", "Demo"}

// Normalizer sanitizes resolved releases and rejects placeholder records.
// It never fails; a problem with one release drops that release only.
type Normalizer struct {
	logger interfaces.Logger
}

// New creates a normalizer.
func New(logger interfaces.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Apply runs the normalization chain over one artist's resolved batch:
// placeholder rejection, field sanitization, image embedding, dedup by
// URL, and the final cap. Order within the batch is preserved.
func (n *Normalizer) Apply(releases []domain.Release, maxReleases int) []domain.Release {
	var kept []domain.Release
	seen := make(map[string]bool)

	for _, release := range releases {
		normalized, ok := n.normalizeOne(release)
		if !ok {
			continue
		}

		if seen[normalized.URL] {
			n.logger.Debug("dropping duplicate release URL", map[string]interface{}{
				"url": normalized.URL,
			})
			continue
		}
		seen[normalized.URL] = true

		kept = append(kept, normalized)
		if maxReleases > 0 && len(kept) >= maxReleases {
			break
		}
	}

	return kept
}

func (n *Normalizer) normalizeOne(release domain.Release) (domain.Release, bool) {
	if reason := placeholderReason(release); reason != "" {
		n.logger.Debug("rejecting placeholder release", map[string]interface{}{
			"title":  release.Title,
			"url":    release.URL,
			"reason": reason,
		})
		return domain.Release{}, false
	}

	release.Title = htmltext.Clean(release.Title)
	if release.Title == "" {
		return domain.Release{}, false
	}

	cleanURL, ok := sanitizeURL(release.URL)
	if !ok {
		n.logger.Debug("dropping release with unusable URL", map[string]interface{}{
			"title": release.Title,
			"url":   release.URL,
		})
		return domain.Release{}, false
	}
	release.URL = cleanURL

	// An unusable image is treated as absent; the release itself survives.
	if release.ImageURL != "" {
		if cleanImage, ok := sanitizeURL(release.ImageURL); ok {
			release.ImageURL = cleanImage
		} else {
			release.ImageURL = ""
		}
	}

	release.Description = htmltext.Clean(release.Description)
	if release.ImageURL != "" {
		release.Description = embedImage(release.ImageURL, release.Description)
	}

	return release, true
}

// placeholderReason reports why a release is synthetic, or "" for real ones.
func placeholderReason(release domain.Release) string {
	for _, marker := range placeholderMarkers {
		if strings.Contains(release.Title, marker) {
			return "title marker: " + marker
		}
	}

	if strings.Contains(release.URL, "example.com") {
		return "example.com URL"
	}

	if !strings.Contains(release.URL, ".") {
		return "URL without a dot"
	}

	return ""
}

// sanitizeURL validates the URL and percent-encodes literal '=' so strict
// feed readers cannot misread query delimiters. XML entity escaping happens
// once, at serialization.
func sanitizeURL(rawURL string) (string, bool) {
	trimmed := strings.TrimSpace(rawURL)

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}

	return xmlsafe.EncodeEquals(trimmed), true
}

// embedImage builds the description fragment with the cover image ahead of
// the text.
func embedImage(imageURL, description string) string {
	fragment := fmt.Sprintf(`<img src="%s"/>`, imageURL)
	if description == "" {
		return fragment
	}
	return fragment + " " + description
}
