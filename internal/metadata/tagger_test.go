package metadata

import (
	"os/exec"
	"path/filepath"
	"testing"

	"go.senan.xyz/taglib"
)

// createTestAudioFile generates a minimal MP3 using ffmpeg.
// Skips the test if ffmpeg is not available.
func createTestAudioFile(t *testing.T, dir string) string {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not available, skipping tagger test")
	}

	path := filepath.Join(dir, "test.mp3")
	cmd := exec.Command("ffmpeg", "-f", "lavfi", "-i", "anullsrc=r=44100:cl=mono", "-t", "0.1", "-q:a", "9", path)
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to create test audio file: %v", err)
	}
	return path
}

func TestTags(t *testing.T) {
	song := Song{
		Title:         "Yesterday",
		Artist:        "The Beatles",
		Album:         "Help!",
		ReleaseDate:   "1965-08-06",
		AppleMusicURL: "https://music.apple.com/track/1",
		Lyrics:        "Yesterday, all my troubles seemed so far away",
	}

	tags := Tags(song)

	checks := map[string]string{
		taglib.Title:  "Yesterday",
		taglib.Artist: "The Beatles",
		taglib.Album:  "Help!",
		taglib.Date:   "1965-08-06",
		tagLyrics:     "Yesterday, all my troubles seemed so far away",
		tagURL:        "https://music.apple.com/track/1",
	}
	for key, want := range checks {
		if got := tags[key]; len(got) != 1 || got[0] != want {
			t.Errorf("tag %s = %v, want %q", key, got, want)
		}
	}
	if _, ok := tags[tagLabel]; ok {
		t.Error("empty label should not be written")
	}
}

func TestWriteTags(t *testing.T) {
	dir := t.TempDir()
	path := createTestAudioFile(t, dir)

	song := Song{
		Title:  "Test Song",
		Artist: "Test Artist",
		Album:  "Test Album",
		Label:  "Test Label",
		Lyrics: "la la la",
	}

	if err := WriteTags(path, song); err != nil {
		t.Fatalf("WriteTags failed: %v", err)
	}

	tags, err := taglib.ReadTags(path)
	if err != nil {
		t.Fatalf("failed to read tags: %v", err)
	}

	checks := map[string]string{
		taglib.Title:  "Test Song",
		taglib.Artist: "Test Artist",
		taglib.Album:  "Test Album",
		tagLyrics:     "la la la",
	}
	for key, want := range checks {
		if got := tags[key]; len(got) == 0 || got[0] != want {
			t.Errorf("tag %s = %v, want %q", key, got, want)
		}
	}
}

func TestWriteArtworkEmpty(t *testing.T) {
	if err := WriteArtwork("/nonexistent.mp3", nil); err != nil {
		t.Errorf("empty artwork should be a no-op, got %v", err)
	}
}
