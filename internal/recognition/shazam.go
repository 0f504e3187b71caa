package recognition

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"songid/internal/metadata"
)

const shazamHost = "shazam.p.rapidapi.com"

// Shazam recognizes songs with the Shazam API hosted on RapidAPI.
type Shazam struct {
	httpClient *http.Client
	apiURL     string
	key        string
}

func NewShazam(key string) *Shazam {
	return &Shazam{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiURL:     "https://" + shazamHost + "/songs/v2/detect",
		key:        key,
	}
}

func (s *Shazam) Name() string {
	return "shazam"
}

func (s *Shazam) Recognize(ctx context.Context, sample Sample) (*metadata.Song, error) {
	if s.key == "" {
		return nil, ErrNotConfigured
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("upload_file", sample.filename())
	if err != nil {
		return nil, fmt.Errorf("failed to build shazam request: %w", err)
	}
	if _, err := part.Write(sample.Data); err != nil {
		return nil, fmt.Errorf("failed to build shazam request: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to build shazam request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create shazam request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("X-RapidAPI-Key", s.key)
	req.Header.Set("X-RapidAPI-Host", shazamHost)
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shazam request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("shazam returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read shazam response: %w", err)
	}

	return parseShazam(data)
}

func parseShazam(data []byte) (*metadata.Song, error) {
	var resp shazamResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode shazam response: %w", err)
	}

	t := resp.Track
	if t == nil || strings.TrimSpace(t.Title) == "" || strings.TrimSpace(t.Subtitle) == "" {
		return nil, ErrNoMatch
	}

	song := &metadata.Song{
		Title:       t.Title,
		Artist:      t.Subtitle,
		CoverArtURL: t.Images.CoverArt,
	}

	for _, action := range t.Hub.Actions {
		switch {
		case action.URI == "":
		case strings.Contains(action.URI, "spotify"):
			song.SpotifyURL = action.URI
		case strings.Contains(action.URI, "apple"):
			song.AppleMusicURL = action.URI
		}
	}

	for _, section := range t.Sections {
		if section.Type != "SONG" {
			continue
		}
		for _, m := range section.Metadata {
			switch m.Title {
			case "Album":
				song.Album = m.Text
			case "Label":
				song.Label = m.Text
			case "Released":
				song.ReleaseDate = m.Text
			}
		}
	}

	return song, nil
}

type shazamResponse struct {
	Track *struct {
		Title    string `json:"title"`
		Subtitle string `json:"subtitle"`
		Images   struct {
			CoverArt string `json:"coverart"`
		} `json:"images"`
		Hub struct {
			Actions []struct {
				Type string `json:"type"`
				URI  string `json:"uri"`
			} `json:"actions"`
		} `json:"hub"`
		Sections []struct {
			Type     string `json:"type"`
			Metadata []struct {
				Title string `json:"title"`
				Text  string `json:"text"`
			} `json:"metadata"`
		} `json:"sections"`
	} `json:"track"`
}
