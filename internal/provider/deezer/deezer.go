// Package deezer looks up album artwork in the public Deezer catalogue.
package deezer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"songid/internal/metadata"
)

// Client is a Deezer API client that implements metadata.Provider.
type Client struct {
	httpClient *http.Client
	apiURL     string
}

// New creates a new Deezer client.
func New() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiURL:     "https://api.deezer.com",
	}
}

func (c *Client) Name() string { return "deezer" }

// Search queries the Deezer advanced search for the track.
func (c *Client) Search(ctx context.Context, query metadata.SearchQuery) ([]metadata.Candidate, error) {
	q := buildQuery(query)
	if q == "" {
		return nil, nil
	}

	reqURL := fmt.Sprintf("%s/search?q=%s&limit=5", c.apiURL, url.QueryEscape(q))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create deezer request: %w", err)
	}
	req.Header.Set("User-Agent", "songid/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("deezer search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("deezer search returned %d: %s", resp.StatusCode, body)
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode deezer response: %w", err)
	}

	// Deezer reports quota and query errors with a 200 status.
	if searchResp.Error != nil {
		return nil, fmt.Errorf("deezer API error %d: %s", searchResp.Error.Code, searchResp.Error.Message)
	}

	return parseResults(searchResp.Data), nil
}

// buildQuery uses Deezer's field syntax: track:"..." artist:"..." album:"...".
// Album is left out since recognizers often report a compilation instead
// of the original release.
func buildQuery(query metadata.SearchQuery) string {
	field := func(name, value string) string {
		return name + ":\"" + strings.ReplaceAll(value, "\"", "") + "\""
	}
	var parts []string
	if query.Title != "" {
		parts = append(parts, field("track", query.Title))
	}
	if query.Artist != "" {
		parts = append(parts, field("artist", query.Artist))
	}
	return strings.Join(parts, " ")
}

func parseResults(items []trackItem) []metadata.Candidate {
	var results []metadata.Candidate
	for _, item := range items {
		artwork := item.Album.CoverXL
		if artwork == "" {
			artwork = item.Album.CoverBig
		}

		title := item.TitleShort
		if title == "" {
			title = item.Title
		}

		results = append(results, metadata.Candidate{
			Title:      title,
			Artist:     item.Artist.Name,
			Album:      item.Album.Title,
			ArtworkURL: artwork,
		})
	}
	return results
}

type searchResponse struct {
	Data  []trackItem `json:"data"`
	Error *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type trackItem struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	TitleShort string `json:"title_short"`
	Link       string `json:"link"`
	Artist     struct {
		Name string `json:"name"`
	} `json:"artist"`
	Album struct {
		Title    string `json:"title"`
		CoverBig string `json:"cover_big"`
		CoverXL  string `json:"cover_xl"`
	} `json:"album"`
}
