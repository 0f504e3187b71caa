package recognition

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"songid/internal/metadata"
)

// AudD recognizes songs with the api.audd.io service.
type AudD struct {
	httpClient *http.Client
	apiURL     string
	token      string
}

func NewAudD(token string) *AudD {
	return &AudD{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiURL:     "https://api.audd.io/",
		token:      token,
	}
}

func (a *AudD) Name() string {
	return "audd"
}

func (a *AudD) Recognize(ctx context.Context, sample Sample) (*metadata.Song, error) {
	if a.token == "" {
		return nil, ErrNotConfigured
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fields := []struct{ key, value string }{
		{"api_token", a.token},
		{"audio", base64.StdEncoding.EncodeToString(sample.Data)},
		{"return", "apple_music,spotify"},
	}
	for _, f := range fields {
		if err := w.WriteField(f.key, f.value); err != nil {
			return nil, fmt.Errorf("failed to build audd request: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to build audd request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.apiURL, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create audd request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("audd request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("audd returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audd response: %w", err)
	}

	return parseAudD(data)
}

func parseAudD(data []byte) (*metadata.Song, error) {
	var resp auddResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode audd response: %w", err)
	}

	if resp.Status != "success" {
		if resp.Error != nil {
			return nil, fmt.Errorf("audd error %d: %s", resp.Error.Code, resp.Error.Message)
		}
		return nil, fmt.Errorf("audd status %q", resp.Status)
	}
	r := resp.Result
	if r == nil || strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.Artist) == "" {
		return nil, ErrNoMatch
	}

	song := &metadata.Song{
		Title:       r.Title,
		Artist:      r.Artist,
		Album:       r.Album,
		ReleaseDate: r.ReleaseDate,
		Label:       r.Label,
	}

	if r.AppleMusic != nil {
		song.AppleMusicURL = r.AppleMusic.URL
	}
	if r.Spotify != nil {
		song.SpotifyURL = r.Spotify.ExternalURLs.Spotify
		if len(r.Spotify.Album.Images) > 0 {
			song.CoverArtURL = r.Spotify.Album.Images[0].URL
		}
	}
	if song.CoverArtURL == "" && r.AppleMusic != nil {
		song.CoverArtURL = appleArtwork(r.AppleMusic.Artwork.URL)
	}

	return song, nil
}

// appleArtwork fills the size placeholders in an Apple Music artwork template.
func appleArtwork(template string) string {
	return strings.NewReplacer("{w}", "600", "{h}", "600").Replace(template)
}

type auddResponse struct {
	Status string `json:"status"`
	Error  *struct {
		Code    int    `json:"error_code"`
		Message string `json:"error_message"`
	} `json:"error"`
	Result *struct {
		Title       string `json:"title"`
		Artist      string `json:"artist"`
		Album       string `json:"album"`
		ReleaseDate string `json:"release_date"`
		Label       string `json:"label"`
		AppleMusic  *struct {
			URL     string `json:"url"`
			Artwork struct {
				URL string `json:"url"`
			} `json:"artwork"`
		} `json:"apple_music"`
		Spotify *struct {
			ExternalURLs struct {
				Spotify string `json:"spotify"`
			} `json:"external_urls"`
			Album struct {
				Images []struct {
					URL string `json:"url"`
				} `json:"images"`
			} `json:"album"`
		} `json:"spotify"`
	} `json:"result"`
}
