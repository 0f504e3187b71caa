package utils

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func touch(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultAudioFilter(t *testing.T) {
	tests := map[string]bool{
		"song.mp3":    true,
		"SONG.FLAC":   true,
		"clip.webm":   true,
		"notes.txt":   false,
		"noextension": false,
	}
	for name, want := range tests {
		if got := DefaultAudioFilter(name); got != want {
			t.Errorf("DefaultAudioFilter(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestFindAudioFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.mp3"), "x")
	touch(t, filepath.Join(dir, "sub", "b.wav"), "x")
	touch(t, filepath.Join(dir, "cover.jpg"), "x")

	files, err := FindAudioFiles(dir, nil)
	if err != nil {
		t.Fatalf("FindAudioFiles() error = %v", err)
	}
	sort.Strings(files)
	want := []string{filepath.Join(dir, "a.mp3"), filepath.Join(dir, "sub", "b.wav")}
	if len(files) != len(want) || files[0] != want[0] || files[1] != want[1] {
		t.Errorf("FindAudioFiles() = %v, want %v", files, want)
	}

	if _, err := FindAudioFiles("", nil); err == nil {
		t.Error("expected error for empty path")
	}
	if _, err := FindAudioFiles(filepath.Join(dir, "missing"), nil); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestCollectAudioFiles(t *testing.T) {
	dir := t.TempDir()
	single := filepath.Join(dir, "single.m4a")
	touch(t, single, "x")
	touch(t, filepath.Join(dir, "album", "01.flac"), "x")

	files, err := CollectAudioFiles([]string{single, filepath.Join(dir, "album")}, nil)
	if err != nil {
		t.Fatalf("CollectAudioFiles() error = %v", err)
	}
	if len(files) != 2 || files[0] != single {
		t.Errorf("CollectAudioFiles() = %v", files)
	}

	text := filepath.Join(dir, "readme.txt")
	touch(t, text, "x")
	if _, err := CollectAudioFiles([]string{text}, nil); err == nil {
		t.Error("expected error for unsupported file")
	}
	if _, err := CollectAudioFiles([]string{filepath.Join(dir, "nope.mp3")}, nil); err == nil {
		t.Error("expected error for missing file")
	}

	onlyFlac := func(name string) bool { return filepath.Ext(name) == ".flac" }
	files, err = CollectAudioFiles([]string{dir}, onlyFlac)
	if err != nil {
		t.Fatalf("CollectAudioFiles() error = %v", err)
	}
	if len(files) != 1 {
		t.Errorf("custom filter: got %v", files)
	}
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mp3")
	dst := filepath.Join(dir, "out", "dst.mp3")
	touch(t, src, "audio")

	if err := MoveFile(src, dst); err != nil {
		t.Fatalf("MoveFile() error = %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source should be gone")
	}
	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "audio" {
		t.Errorf("destination content = %q, %v", data, err)
	}

	if err := MoveFile("", dst); err == nil {
		t.Error("expected error for empty source")
	}
	if err := MoveFile(src, dst); err == nil {
		t.Error("expected error for missing source")
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.mp3")
	dst := filepath.Join(dir, "copy", "a.mp3")
	touch(t, src, "audio")

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}
	if _, err := os.Stat(src); err != nil {
		t.Error("source should remain")
	}
	data, _ := os.ReadFile(dst)
	if string(data) != "audio" {
		t.Errorf("copy content = %q", data)
	}
}

func TestTempDirCleanup(t *testing.T) {
	dir, err := CreateTempDir()
	if err != nil {
		t.Fatalf("CreateTempDir() error = %v", err)
	}
	if err := Cleanup(dir); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("temp dir should be removed")
	}

	if err := Cleanup(""); err != nil {
		t.Errorf("Cleanup(\"\") error = %v", err)
	}
	if err := Cleanup("/etc"); err == nil {
		t.Error("Cleanup should refuse directories outside the temp folder")
	}
}
