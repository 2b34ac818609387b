// ABOUTME: SoundCloud extractor reading the schema.org crawl markup on artist pages
// ABOUTME: Takes title, link, and upload time from sound articles without detail fetches

package extract

import (
	"github.com/PuerkitoBio/goquery"

	"releaseradar/core/domain"
	"releaseradar/pkg/utils/htmltext"
)

const soundcloudBase = "https://soundcloud.com"

// SoundCloudExtractor handles artist pages on soundcloud.com.
type SoundCloudExtractor struct{}

// Platform identifies the variant.
func (e *SoundCloudExtractor) Platform() domain.Platform { return domain.PlatformSoundCloud }

// Extract reads the sound articles served to crawlers, falling back to a
// bare itemprop anchor scan. Upload dates come straight from the listing,
// so no detail fetch is needed.
func (e *SoundCloudExtractor) Extract(pageHTML string, artist domain.Artist) ([]domain.Candidate, error) {
	doc, err := parsePage(pageHTML, artist)
	if err != nil {
		return nil, err
	}

	candidates := runPatterns(doc, artist, []pattern{
		soundcloudArticlePattern,
		soundcloudAnchorPattern,
	})

	return truncate(candidates, artist.MaxReleases), nil
}

// soundcloudArticlePattern reads each sound article: the itemprop anchor
// carries title and link, the pubdate element carries the upload time.
func soundcloudArticlePattern(doc *goquery.Document, artist domain.Artist) []domain.Candidate {
	var candidates []domain.Candidate

	doc.Find("article.audible").Each(func(_ int, article *goquery.Selection) {
		anchor := article.Find(`a[itemprop="url"]`).First()
		title := htmltext.Collapse(anchor.Text())
		href, _ := anchor.Attr("href")
		if title == "" || href == "" {
			return
		}

		candidates = append(candidates, domain.Candidate{
			Title:    title,
			URL:      absoluteURL(soundcloudBase, href),
			DateText: htmltext.Collapse(article.Find("time[pubdate]").First().Text()),
		})
	})

	return candidates
}

// soundcloudAnchorPattern scans itemprop anchors anywhere on the page.
func soundcloudAnchorPattern(doc *goquery.Document, artist domain.Artist) []domain.Candidate {
	var candidates []domain.Candidate

	doc.Find(`a[itemprop="url"]`).Each(func(_ int, anchor *goquery.Selection) {
		title := htmltext.Collapse(anchor.Text())
		href, _ := anchor.Attr("href")
		if title == "" || href == "" {
			return
		}

		candidates = append(candidates, domain.Candidate{
			Title: title,
			URL:   absoluteURL(soundcloudBase, href),
		})
	})

	return candidates
}
