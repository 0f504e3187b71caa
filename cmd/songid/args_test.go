package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "songid.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseArgs(t *testing.T) {
	cfgPath := writeConfig(t, "target_language: de\n")

	opts, err := parseArgs([]string{"-c", cfgPath, "-v", "-w", "--no-lyrics", "--json", "a.mp3", "dir"})
	if err != nil {
		t.Fatalf("parseArgs() error = %v", err)
	}
	if opts.configPath != cfgPath {
		t.Errorf("configPath = %q", opts.configPath)
	}
	if !opts.cfg.Verbose || !opts.writeTags || !opts.noLyrics || !opts.jsonOut {
		t.Errorf("flags not set: %+v", opts)
	}
	if opts.cfg.TargetLanguage != "de" {
		t.Errorf("TargetLanguage = %q, want de from config file", opts.cfg.TargetLanguage)
	}
	if len(opts.paths) != 2 || opts.paths[0] != "a.mp3" || opts.paths[1] != "dir" {
		t.Errorf("paths = %v", opts.paths)
	}
}

func TestParseArgsFlagOverridesConfig(t *testing.T) {
	cfgPath := writeConfig(t, "target_language: de\n")

	opts, err := parseArgs([]string{"--config", cfgPath, "-t", "FR", "--lyrics", "Queen - Bohemian Rhapsody"})
	if err != nil {
		t.Fatalf("parseArgs() error = %v", err)
	}
	if opts.cfg.TargetLanguage != "fr" {
		t.Errorf("TargetLanguage = %q, want fr", opts.cfg.TargetLanguage)
	}
	if opts.lyricsOnly != "Queen - Bohemian Rhapsody" {
		t.Errorf("lyricsOnly = %q", opts.lyricsOnly)
	}
}

func TestParseArgsErrors(t *testing.T) {
	cfgPath := writeConfig(t, "")

	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-c", cfgPath, "--bogus", "a.mp3"}},
		{"missing config path", []string{"a.mp3", "-c"}},
		{"missing target", []string{"-c", cfgPath, "a.mp3", "-t"}},
		{"missing lyrics query", []string{"-c", cfgPath, "--lyrics"}},
		{"no inputs", []string{"-c", cfgPath, "-v"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseArgs(tt.args); err == nil {
				t.Errorf("parseArgs(%v) expected error", tt.args)
			}
		})
	}
}

func TestSplitArtistTitle(t *testing.T) {
	artist, title, err := splitArtistTitle("  The Beatles - Let It Be ")
	if err != nil {
		t.Fatalf("splitArtistTitle() error = %v", err)
	}
	if artist != "The Beatles" || title != "Let It Be" {
		t.Errorf("got %q / %q", artist, title)
	}

	for _, bad := range []string{"Let It Be", " - Let It Be", "The Beatles - "} {
		if _, _, err := splitArtistTitle(bad); err == nil {
			t.Errorf("splitArtistTitle(%q) expected error", bad)
		}
	}
}
