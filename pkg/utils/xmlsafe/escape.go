// ABOUTME: XML entity escaping and URL sanitizing for feed serialization
// ABOUTME: Guarantees text and attribute values are safe to embed in a feed document

package xmlsafe

import "strings"

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeText escapes the five XML-special characters so the result can be
// embedded verbatim in element text or attribute values. A standard XML
// entity decoder reproduces the input exactly.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// SanitizeURL prepares a URL for embedding in a feed: literal '=' is
// percent-encoded so strict readers cannot confuse path text with
// query-string delimiters, then XML-special characters are escaped.
func SanitizeURL(rawURL string) string {
	return EscapeText(EncodeEquals(rawURL))
}

// EncodeEquals percent-encodes literal '=' characters. Applied to URL
// fields before any rendering path so both renderers emit the same link.
func EncodeEquals(rawURL string) string {
	return strings.ReplaceAll(rawURL, "=", "%3D")
}
