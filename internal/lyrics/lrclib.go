package lyrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// LRCLib fetches lyrics from lrclib.net.
type LRCLib struct {
	httpClient *http.Client
	apiURL     string
	retryDelay time.Duration
}

func NewLRCLib() *LRCLib {
	return &LRCLib{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiURL:     "https://lrclib.net/api/get",
		retryDelay: 2 * time.Second,
	}
}

func (c *LRCLib) Name() string {
	return "lrclib"
}

// Fetch retrieves lyrics for the given track from LRCLib.
// Plain lyrics are preferred; synced lyrics are returned with their
// timestamps removed. Returns "" (no error) when lyrics are not found.
// Retries once on transient network errors.
func (c *LRCLib) Fetch(ctx context.Context, artist, title string) (string, error) {
	result, err := c.doFetch(ctx, artist, title)
	if err == nil {
		return result, nil
	}

	// API errors (4xx, 5xx) would fail identically on retry.
	if !isTransient(err) {
		return "", err
	}

	select {
	case <-ctx.Done():
		return "", err
	case <-time.After(c.retryDelay):
	}
	return c.doFetch(ctx, artist, title)
}

func isTransient(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr)
}

func (c *LRCLib) doFetch(ctx context.Context, artist, title string) (string, error) {
	params := url.Values{}
	params.Set("artist_name", artist)
	params.Set("track_name", title)

	reqURL := fmt.Sprintf("%s?%s", c.apiURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create lrclib request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("lrclib request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lrclib returned status %d", resp.StatusCode)
	}

	var apiResp lrclibResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("failed to decode lrclib response: %w", err)
	}

	return apiResp.text(), nil
}

type lrclibResponse struct {
	SyncedLyrics string `json:"syncedLyrics"`
	PlainLyrics  string `json:"plainLyrics"`
}

func (r lrclibResponse) text() string {
	if plain := strings.TrimSpace(r.PlainLyrics); plain != "" {
		return plain
	}
	return StripTimestamps(r.SyncedLyrics)
}

var timestampRe = regexp.MustCompile(`\[\d+:\d+(?:[.:]\d+)?\]`)

// StripTimestamps removes LRC time tags such as [01:23.45] from synced lyrics.
func StripTimestamps(synced string) string {
	lines := strings.Split(synced, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(timestampRe.ReplaceAllString(line, ""))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
