package lyrics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"songid/internal/metadata"
)

// ChartLyrics fetches lyrics from the ChartLyrics SOAP/XML API.
// The endpoint always returns its best guess, so results whose artist or
// song do not resemble the query are discarded.
type ChartLyrics struct {
	httpClient *http.Client
	apiURL     string
}

func NewChartLyrics() *ChartLyrics {
	return &ChartLyrics{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiURL:     "http://api.chartlyrics.com",
	}
}

func (c *ChartLyrics) Name() string {
	return "chartlyrics"
}

func (c *ChartLyrics) Fetch(ctx context.Context, artist, title string) (string, error) {
	params := url.Values{}
	params.Set("artist", artist)
	params.Set("song", title)

	reqURL := fmt.Sprintf("%s/apiv1.asmx/SearchLyricDirect?%s", c.apiURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create chartlyrics request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chartlyrics request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chartlyrics returned status %d", resp.StatusCode)
	}

	return parseChartLyrics(resp.Body, artist, title)
}

type chartLyricsResult struct {
	Artist string
	Song   string
	Lyric  string
}

// parseChartLyrics extracts the lyric from a GetLyricResult document.
// The HTML parser lower-cases element names and decodes entities, which is
// all the XML handling this response needs.
func parseChartLyrics(r io.Reader, artist, title string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse chartlyrics response: %w", err)
	}

	res := chartLyricsResult{
		Artist: strings.TrimSpace(doc.Find("lyricartist").First().Text()),
		Song:   strings.TrimSpace(doc.Find("lyricsong").First().Text()),
		Lyric:  normalizeNewlines(doc.Find("lyric").First().Text()),
	}

	if res.Lyric == "" {
		return "", nil
	}
	if !res.matches(artist, title) {
		return "", nil
	}
	return res.Lyric, nil
}

func (r chartLyricsResult) matches(artist, title string) bool {
	return resembles(r.Artist, artist) && resembles(r.Song, title)
}

func resembles(got, want string) bool {
	g := strings.ToLower(metadata.CleanText(got))
	w := strings.ToLower(metadata.CleanText(want))
	if g == "" || w == "" {
		return false
	}
	if strings.Contains(g, w) || strings.Contains(w, g) {
		return true
	}
	return metadata.FuzzyEqual(g, w)
}
