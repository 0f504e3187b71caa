package metadata

import (
	"context"
	"strings"
	"unicode"

	"songid/internal/logger"

	"github.com/agnivade/levenshtein"
)

const (
	defaultConfidenceThreshold = 0.7
	maxFuzzyDistance           = 3
)

// Enricher fills cover art and streaming links that the recognizer left
// empty, using catalogue providers. It never overwrites a populated field.
type Enricher struct {
	provider  Provider
	logger    *logger.Logger
	threshold float64
}

// NewEnricher creates a new Enricher with the given provider.
// If threshold is 0, the default (0.7) is used.
func NewEnricher(p Provider, log *logger.Logger, threshold float64) *Enricher {
	if threshold <= 0 {
		threshold = defaultConfidenceThreshold
	}
	return &Enricher{
		provider:  p,
		logger:    log,
		threshold: threshold,
	}
}

// Enrich searches the provider for the song and copies missing fields from the
// best scoring candidate. Returns true if anything was filled.
// Provider failures are logged and otherwise ignored.
func (e *Enricher) Enrich(ctx context.Context, song *Song) bool {
	if !song.Valid() || !song.NeedsEnrichment() {
		return false
	}

	query := CleanQuery(song.Title, song.Artist)
	query.Album = song.Album
	if query.Empty() {
		return false
	}

	results, err := e.provider.Search(ctx, query)
	if err != nil {
		e.logger.Warn("Enrichment search failed: %v", err)
		return false
	}
	if len(results) == 0 {
		e.logger.Debug("No enrichment candidates from %s", e.provider.Name())
		return false
	}

	best := results[0]
	best.Confidence = score(query, best)
	for _, result := range results[1:] {
		result.Confidence = score(query, result)
		if result.Confidence > best.Confidence {
			best = result
		}
	}

	e.logger.Debug("Best candidate: %q by %q (confidence: %.2f)", best.Title, best.Artist, best.Confidence)

	if best.Confidence < e.threshold {
		e.logger.Debug("Confidence %.2f below threshold %.2f, keeping recognized fields", best.Confidence, e.threshold)
		return false
	}

	return fill(song, best)
}

// fill copies cover art and streaming links only. Album and release date stay
// as the recognizer reported them.
func fill(song *Song, c Candidate) bool {
	filled := false
	set := func(dst *string, v string) {
		if *dst == "" && v != "" {
			*dst = v
			filled = true
		}
	}
	set(&song.CoverArtURL, c.ArtworkURL)
	set(&song.SpotifyURL, c.SpotifyURL)
	set(&song.AppleMusicURL, c.AppleMusicURL)
	return filled
}

// score computes a similarity score (0.0-1.0) between the query and a candidate.
func score(query SearchQuery, c Candidate) float64 {
	titleScore := similarity(normalize(query.Title), normalize(CleanText(c.Title)))
	artistScore := similarity(normalize(query.Artist), normalize(CleanText(c.Artist)))

	if query.Artist == "" {
		return titleScore
	}
	// Weight: 60% title, 40% artist
	return titleScore*0.6 + artistScore*0.4
}

// similarity returns how similar two strings are (0.0-1.0).
// Compact equality and small edit distances count as a full match; otherwise
// token overlap is used.
func similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	// Handles "theweeknd" == "the weeknd"
	compactA := strings.ReplaceAll(a, " ", "")
	compactB := strings.ReplaceAll(b, " ", "")
	if compactA == compactB {
		return 1.0
	}
	if FuzzyEqual(a, b) {
		return 1.0
	}

	tokensA := strings.Fields(a)
	tokensB := strings.Fields(b)

	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0.0
	}

	setB := make(map[string]bool, len(tokensB))
	for _, t := range tokensB {
		setB[t] = true
	}

	matches := 0
	for _, t := range tokensA {
		if setB[t] {
			matches++
		}
	}

	maxLen := len(tokensA)
	if len(tokensB) > maxLen {
		maxLen = len(tokensB)
	}
	return float64(matches) / float64(maxLen)
}

// FuzzyEqual reports whether two names are the same up to case, punctuation
// and a few typos. Short names must match exactly.
func FuzzyEqual(a, b string) bool {
	a, b = normalize(a), normalize(b)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	if len(a) <= maxFuzzyDistance*2 || len(b) <= maxFuzzyDistance*2 {
		return false
	}
	return levenshtein.ComputeDistance(a, b) <= maxFuzzyDistance
}

// normalize lowercases and strips non-alphanumeric characters for comparison.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
