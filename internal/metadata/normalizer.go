package metadata

import (
	"regexp"
	"strings"
)

var (
	// Any parenthesised or bracketed annotation: (Live), [Remastered 2009], ...
	parenthesized = regexp.MustCompile(`\([^)]*\)`)
	bracketed     = regexp.MustCompile(`\[[^\]]*\]`)

	// Trailing featured artists: "Artist feat. Other", "Song ft Other", "Song featuring Other"
	featuringSuffix = regexp.MustCompile(`(?i)\s+(?:feat\.?|ft\.?|featuring)(?:\s+.*)?$`)

	whitespace = regexp.MustCompile(`\s+`)
)

// CleanText strips annotations and featured artists from a title or artist
// name and collapses whitespace.
func CleanText(s string) string {
	s = parenthesized.ReplaceAllString(s, " ")
	s = bracketed.ReplaceAllString(s, " ")
	s = whitespace.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = featuringSuffix.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// CleanQuery cleans a title/artist pair before it is sent to lyrics or
// catalogue providers.
func CleanQuery(title, artist string) SearchQuery {
	return SearchQuery{
		Title:  CleanText(title),
		Artist: CleanText(artist),
	}
}

// Empty reports whether the query has nothing to search for.
func (q SearchQuery) Empty() bool {
	return q.Title == "" || q.Artist == ""
}
