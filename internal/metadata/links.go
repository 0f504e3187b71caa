package metadata

import (
	"net/url"
	"strings"
)

const commerceSearchURL = "https://www.amazon.com/s?k=%s&i=popular"

// CommerceURL builds a marketplace search link from the artist and album,
// falling back to the title when the album is unknown. No network access.
func CommerceURL(artist, album, title string) string {
	subject := album
	if strings.TrimSpace(subject) == "" {
		subject = title
	}
	terms := strings.TrimSpace(strings.TrimSpace(artist) + " " + strings.TrimSpace(subject))
	if terms == "" {
		return ""
	}
	return strings.Replace(commerceSearchURL, "%s", escapeComponent(terms), 1)
}

// escapeComponent percent-encodes everything outside the RFC 3986 unreserved
// set, with spaces as %20 rather than the '+' of url.QueryEscape.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
