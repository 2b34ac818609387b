// ABOUTME: Ordered date extraction strategies over a release detail page
// ABOUTME: Each strategy yields a raw date string; the resolver tries them left to right

package dates

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// releasedLine matches the credit-line phrasing detail pages use, e.g.
// "released March 15, 2024". The capture group is the date itself.
var releasedLine = regexp.MustCompile(`(?i)released\s+([A-Za-z]+ \d{1,2}, \d{4})`)

// strategy is one way to pull a date string out of a detail page. A
// returned empty string means the strategy found nothing; a non-empty
// string still has to survive parsing.
type strategy struct {
	name    string
	extract func(doc *goquery.Document) string
}

// detailStrategies is the precedence order for detail page dates.
// Structured data first, then progressively looser text matching.
var detailStrategies = []strategy{
	{"ldjson_date_published", ldJSONDatePublished},
	{"credits_released_line", creditsReleasedLine},
	{"release_date_element", releaseDateElement},
	{"date_published_meta", datePublishedMeta},
	{"body_released_scan", bodyReleasedScan},
}

// ldJSONDatePublished reads datePublished from structured data blocks,
// accepting single-object, array, and @graph shapes.
func ldJSONDatePublished(doc *goquery.Document) string {
	date := ""

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, script *goquery.Selection) bool {
		var raw interface{}
		if err := json.Unmarshal([]byte(script.Text()), &raw); err != nil {
			return true
		}

		date = datePublishedIn(raw)
		return date == ""
	})

	return date
}

func datePublishedIn(raw interface{}) string {
	switch v := raw.(type) {
	case map[string]interface{}:
		if date, ok := v["datePublished"].(string); ok && date != "" {
			return date
		}
		if graph, ok := v["@graph"].([]interface{}); ok {
			return datePublishedIn(graph)
		}
	case []interface{}:
		for _, entry := range v {
			if date := datePublishedIn(entry); date != "" {
				return date
			}
		}
	}
	return ""
}

// creditsReleasedLine matches the released line inside the credits region.
func creditsReleasedLine(doc *goquery.Document) string {
	return matchReleasedLine(doc.Find(".tralbum-credits").Text())
}

// releaseDateElement reads the dedicated release date element. Some pages
// phrase it as a full released line, others carry the bare date.
func releaseDateElement(doc *goquery.Document) string {
	text := strings.TrimSpace(doc.Find(".tralbum-about-release-date, .release-date").First().Text())
	if text == "" {
		return ""
	}
	if date := matchReleasedLine(text); date != "" {
		return date
	}
	return text
}

// datePublishedMeta reads the datePublished meta tag's content attribute.
func datePublishedMeta(doc *goquery.Document) string {
	if content, ok := doc.Find(`meta[itemprop="datePublished"]`).First().Attr("content"); ok && content != "" {
		return content
	}
	if content, ok := doc.Find(`meta[name="datePublished"]`).First().Attr("content"); ok && content != "" {
		return content
	}
	return ""
}

// bodyReleasedScan is the last resort: the first released line anywhere in
// the page text.
func bodyReleasedScan(doc *goquery.Document) string {
	return matchReleasedLine(doc.Text())
}

func matchReleasedLine(text string) string {
	if m := releasedLine.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}
