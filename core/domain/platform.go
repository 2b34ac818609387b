// ABOUTME: Platform is the closed set of supported music-publishing platforms
// ABOUTME: Detection inspects the artist URL host once, in fixed priority order

package domain

import (
	"net/url"
	"strings"
)

// Platform identifies which extraction strategy an artist page gets.
// The set is closed; anything unrecognized falls back to PlatformGeneric.
type Platform int

const (
	PlatformGeneric Platform = iota
	PlatformBandcamp
	PlatformSoundCloud
	PlatformSpotify
)

// String returns the platform name used in logs and feed generator tags.
func (p Platform) String() string {
	switch p {
	case PlatformBandcamp:
		return "bandcamp"
	case PlatformSoundCloud:
		return "soundcloud"
	case PlatformSpotify:
		return "spotify"
	default:
		return "generic"
	}
}

// DetectPlatform maps an artist page URL to its platform. Matching is by
// host substring in priority order: bandcamp.com, soundcloud.com,
// spotify.com. A URL that does not parse is handled by the generic
// extractor rather than rejected here.
func DetectPlatform(rawURL string) Platform {
	host := rawURL
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Host != "" {
		host = parsed.Host
	}
	host = strings.ToLower(host)

	switch {
	case strings.Contains(host, "bandcamp.com"):
		return PlatformBandcamp
	case strings.Contains(host, "soundcloud.com"):
		return PlatformSoundCloud
	case strings.Contains(host, "spotify.com"):
		return PlatformSpotify
	default:
		return PlatformGeneric
	}
}
