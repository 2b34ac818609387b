// ABOUTME: Date string parsing for release dates scraped from artist pages
// ABOUTME: Tries known formats in order, then falls back to heuristic parsing

package timeparse

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Formats seen on release pages, most specific first. Structured metadata
// carries RFC 3339 stamps, credit lines carry long-form dates.
var formats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"02 Jan 2006 15:04:05 MST",
	"02 Jan 2006",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822,
}

// Parse attempts to parse a date string from any of the known release date
// formats. Returns the zero time when nothing matches.
func Parse(timeStr string) time.Time {
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		return time.Time{}
	}

	for _, format := range formats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t
		}
	}

	// Heuristic pass for anything the format list missed.
	if t, err := dateparse.ParseAny(timeStr); err == nil {
		return t
	}

	return time.Time{}
}
