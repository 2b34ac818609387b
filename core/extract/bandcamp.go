// ABOUTME: Bandcamp extractor reading discography grid items from artist music pages
// ABOUTME: Marks every candidate for a detail-page fetch since listings omit publish dates

package extract

import (
	"encoding/json"

	"github.com/PuerkitoBio/goquery"

	"releaseradar/core/domain"
	"releaseradar/pkg/utils/htmltext"
)

// BandcampExtractor handles artist pages on bandcamp.com.
type BandcampExtractor struct{}

// Platform identifies the variant.
func (e *BandcampExtractor) Platform() domain.Platform { return domain.PlatformBandcamp }

// Extract reads the discography grid. A music page that redirected to a
// single album page is recognized by its embedded tralbum payload; pages
// with neither fall back to an album/track anchor scan.
func (e *BandcampExtractor) Extract(pageHTML string, artist domain.Artist) ([]domain.Candidate, error) {
	doc, err := parsePage(pageHTML, artist)
	if err != nil {
		return nil, err
	}

	candidates := runPatterns(doc, artist, []pattern{
		bandcampGridPattern,
		bandcampSinglePattern,
		bandcampAnchorPattern,
	})

	return truncate(candidates, artist.MaxReleases), nil
}

// bandcampGridPattern reads the standard discography grid. Each grid item
// carries a heading, a cover image, and a link to the release page.
func bandcampGridPattern(doc *goquery.Document, artist domain.Artist) []domain.Candidate {
	var candidates []domain.Candidate

	doc.Find(".music-grid .music-grid-item").Each(func(_ int, item *goquery.Selection) {
		title := htmltext.Collapse(item.Find(".heading, .title").First().Text())
		href, _ := item.Find("a[href]").First().Attr("href")
		if title == "" || href == "" {
			return
		}

		candidates = append(candidates, domain.Candidate{
			Title:       title,
			URL:         absoluteURL(artist.URL, href),
			ImageURL:    bandcampImage(item),
			NeedsDetail: true,
		})
	})

	return candidates
}

// bandcampSinglePattern handles artists with exactly one release, whose
// music page redirects to that release's own page. Album pages embed the
// release as a data-tralbum JSON attribute that listing pages never carry,
// so the page itself becomes the one candidate.
func bandcampSinglePattern(doc *goquery.Document, artist domain.Artist) []domain.Candidate {
	raw, ok := doc.Find("script[data-tralbum]").First().Attr("data-tralbum")
	if !ok || raw == "" {
		return nil
	}

	var payload struct {
		Current struct {
			Title       string `json:"title"`
			ReleaseDate string `json:"release_date"`
			PublishDate string `json:"publish_date"`
		} `json:"current"`
		URL string `json:"url"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil
	}
	if payload.Current.Title == "" {
		return nil
	}

	releaseURL := payload.URL
	if releaseURL == "" {
		releaseURL, _ = doc.Find(`meta[property="og:url"]`).First().Attr("content")
	}
	if releaseURL == "" {
		releaseURL = artist.URL
	}

	dateText := payload.Current.ReleaseDate
	if dateText == "" {
		dateText = payload.Current.PublishDate
	}

	image, _ := doc.Find(`meta[property="og:image"]`).First().Attr("content")

	return []domain.Candidate{{
		Title:    htmltext.Collapse(payload.Current.Title),
		URL:      absoluteURL(artist.URL, releaseURL),
		ImageURL: image,
		DateText: dateText,
		// The page in hand is the detail page: its date counts as
		// detail-resolved for pre-order filtering, and a refetch is only
		// needed when the payload carried no date at all.
		DateFromDetail: dateText != "",
		NeedsDetail:    dateText == "",
	}}
}

// bandcampAnchorPattern scans release-page anchors directly. Pages using
// nonstandard grid markup still link each album or track somewhere.
func bandcampAnchorPattern(doc *goquery.Document, artist domain.Artist) []domain.Candidate {
	var candidates []domain.Candidate
	seen := make(map[string]bool)

	doc.Find(`a[href*="/album/"], a[href*="/track/"]`).Each(func(_ int, anchor *goquery.Selection) {
		title := htmltext.Collapse(anchor.Text())
		href, _ := anchor.Attr("href")
		if title == "" || href == "" {
			return
		}

		release := absoluteURL(artist.URL, href)
		if seen[release] {
			return
		}
		seen[release] = true

		candidates = append(candidates, domain.Candidate{
			Title:       title,
			URL:         release,
			NeedsDetail: true,
		})
	})

	return candidates
}

// bandcampImage reads the cover image, preferring the lazy-load attribute
// the grid uses over the placeholder src.
func bandcampImage(item *goquery.Selection) string {
	img := item.Find("img").First()
	if src, ok := img.Attr("data-original"); ok && src != "" {
		return src
	}
	return img.AttrOr("src", "")
}
