// ABOUTME: HTML tag stripping and whitespace normalization for scraped text
// ABOUTME: Turns markup fragments from listing pages into clean single-line strings

package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

// Strip parses an HTML fragment and returns its concatenated text content.
// Script and style bodies are skipped. If the fragment cannot be parsed the
// input is returned unchanged.
func Strip(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	var textContent strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			textContent.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return textContent.String()
}

// Collapse trims the string and folds runs of whitespace, including
// newlines and tabs, into single spaces.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Clean strips markup and collapses whitespace in one pass. This is the
// form scraped titles and descriptions are stored in.
func Clean(fragment string) string {
	return Collapse(Strip(fragment))
}
