package lyrics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// LyricsOVH fetches lyrics from api.lyrics.ovh.
type LyricsOVH struct {
	httpClient *http.Client
	apiURL     string
}

func NewLyricsOVH() *LyricsOVH {
	return &LyricsOVH{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiURL:     "https://api.lyrics.ovh",
	}
}

func (c *LyricsOVH) Name() string {
	return "lyrics.ovh"
}

// Fetch returns the lyrics text, or "" when the song is unknown.
func (c *LyricsOVH) Fetch(ctx context.Context, artist, title string) (string, error) {
	reqURL := fmt.Sprintf("%s/v1/%s/%s", c.apiURL, url.PathEscape(artist), url.PathEscape(title))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create lyrics.ovh request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("lyrics.ovh request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lyrics.ovh returned status %d", resp.StatusCode)
	}

	var apiResp struct {
		Lyrics string `json:"lyrics"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("failed to decode lyrics.ovh response: %w", err)
	}

	return normalizeNewlines(apiResp.Lyrics), nil
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSpace(s)
}
