package metadata

import (
	"context"
	"strings"
)

// Song is the canonical result of a recognition, whichever provider supplied it.
// Lyrics and AmazonURL are attached after recognition by the pipeline.
type Song struct {
	Title         string `json:"title"`
	Artist        string `json:"artist"`
	Album         string `json:"album,omitempty"`
	ReleaseDate   string `json:"releaseDate,omitempty"` // provider formatted, not parsed
	Label         string `json:"label,omitempty"`
	CoverArtURL   string `json:"coverArtUrl,omitempty"`
	SpotifyURL    string `json:"spotifyUrl,omitempty"`
	AppleMusicURL string `json:"appleMusicUrl,omitempty"`
	AmazonURL     string `json:"amazonUrl,omitempty"`
	Lyrics        string `json:"lyrics,omitempty"`
	Provider      string `json:"provider,omitempty"`
}

// Valid reports whether the song has both a title and an artist.
// Anything less is a miss, never a partial record.
func (s *Song) Valid() bool {
	return s != nil && strings.TrimSpace(s.Title) != "" && strings.TrimSpace(s.Artist) != ""
}

// NeedsEnrichment reports whether cover art or a streaming link is missing.
func (s *Song) NeedsEnrichment() bool {
	return s.CoverArtURL == "" || s.SpotifyURL == "" || s.AppleMusicURL == ""
}

// Candidate is a catalogue entry returned by an enrichment provider.
type Candidate struct {
	Title         string
	Artist        string
	Album         string
	ReleaseDate   string
	ArtworkURL    string
	SpotifyURL    string
	AppleMusicURL string
	Confidence    float64 // 0.0-1.0, how confident we are in the match
}

// SearchQuery represents a cleaned-up query for searching catalogue providers.
type SearchQuery struct {
	Title  string
	Artist string
	Album  string
}

// Provider is the interface that enrichment providers must implement.
type Provider interface {
	Name() string
	Search(ctx context.Context, query SearchQuery) ([]Candidate, error)
}
