// ABOUTME: Generic extractor scoring hyperlinks by release keywords for unknown platforms
// ABOUTME: Trades precision for coverage and caps output at three matches

package extract

import (
	"regexp"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"releaseradar/core/domain"
	"releaseradar/pkg/utils/htmltext"
)

// releaseKeywords marks link text or URLs that plausibly point at a
// release on a platform with no known structure.
var releaseKeywords = regexp.MustCompile(`(?i)album|single|ep|release|track|song|music`)

const (
	genericMinTitleLen = 4
	genericMaxTitleLen = 99
	genericMaxMatches  = 3
)

// GenericExtractor is the best-effort fallback for unrecognized hosts.
type GenericExtractor struct{}

// Platform identifies the variant.
func (e *GenericExtractor) Platform() domain.Platform { return domain.PlatformGeneric }

// Extract scans every hyperlink on the page, keeping links whose text or
// URL carries a release keyword and whose text length is plausible for a
// title. Matches are deduplicated by URL or title and capped at three.
func (e *GenericExtractor) Extract(pageHTML string, artist domain.Artist) ([]domain.Candidate, error) {
	doc, err := parsePage(pageHTML, artist)
	if err != nil {
		return nil, err
	}

	var candidates []domain.Candidate
	seenURL := make(map[string]bool)
	seenTitle := make(map[string]bool)

	doc.Find("a[href]").EachWithBreak(func(_ int, anchor *goquery.Selection) bool {
		if len(candidates) >= genericMaxMatches {
			return false
		}

		title := htmltext.Collapse(anchor.Text())
		href, _ := anchor.Attr("href")
		if title == "" || href == "" {
			return true
		}

		if !releaseKeywords.MatchString(title) && !releaseKeywords.MatchString(href) {
			return true
		}

		length := utf8.RuneCountInString(title)
		if length < genericMinTitleLen || length > genericMaxTitleLen {
			return true
		}

		resolved := absoluteURL(artist.URL, href)
		if seenURL[resolved] || seenTitle[title] {
			return true
		}
		seenURL[resolved] = true
		seenTitle[title] = true

		candidates = append(candidates, domain.Candidate{
			Title: title,
			URL:   resolved,
		})
		return true
	})

	return truncate(candidates, artist.MaxReleases), nil
}
