package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.senan.xyz/taglib"
)

// TagLib property names without a constant in the taglib package.
const (
	tagLyrics = "LYRICS"
	tagLabel  = "LABEL"
	tagURL    = "URL"
)

// Tags converts a Song into the tag map written to audio files.
// Empty fields are left out so existing tags survive.
func Tags(song Song) map[string][]string {
	tags := make(map[string][]string)

	add := func(key, value string) {
		if value != "" {
			tags[key] = []string{value}
		}
	}
	add(taglib.Title, song.Title)
	add(taglib.Artist, song.Artist)
	add(taglib.Album, song.Album)
	add(taglib.Date, song.ReleaseDate)
	add(tagLabel, song.Label)
	add(tagLyrics, song.Lyrics)
	if song.SpotifyURL != "" {
		add(tagURL, song.SpotifyURL)
	} else {
		add(tagURL, song.AppleMusicURL)
	}

	return tags
}

// WriteTags writes the recognized song metadata to an audio file.
func WriteTags(path string, song Song) error {
	if err := taglib.WriteTags(path, Tags(song), 0); err != nil {
		return fmt.Errorf("failed to write tags to %s: %w", path, err)
	}
	return nil
}

// WriteArtwork embeds artwork image data into an audio file.
func WriteArtwork(path string, imageData []byte) error {
	if len(imageData) == 0 {
		return nil
	}
	if err := taglib.WriteImage(path, imageData); err != nil {
		return fmt.Errorf("failed to write artwork to %s: %w", path, err)
	}
	return nil
}

// DownloadArtwork fetches cover art bytes from url.
func DownloadArtwork(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create artwork request: %w", err)
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download artwork: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("artwork download returned %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read artwork data: %w", err)
	}
	return data, nil
}
