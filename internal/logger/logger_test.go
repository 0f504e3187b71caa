package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, false)

	l.Info("hello %s", "world")
	l.Debug("hidden")
	l.Warn("careful")
	l.Error("broken: %d", 42)

	out := buf.String()
	if !strings.Contains(out, "hello world\n") {
		t.Errorf("info line missing, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug should be suppressed when not verbose, got %q", out)
	}
	if !strings.Contains(out, "[WARN] careful") {
		t.Errorf("warn line missing, got %q", out)
	}
	if !strings.Contains(out, "[ERROR] broken: 42") {
		t.Errorf("error line missing, got %q", out)
	}
}

func TestVerboseDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, true)

	l.Debug("provider %s failed", "audd")
	if !strings.Contains(buf.String(), "[DEBUG] provider audd failed") {
		t.Errorf("expected debug line, got %q", buf.String())
	}
}

func TestProgressBarSuppressesStdout(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, false)
	l.SetProgressBar(true)

	l.Info("should not print")
	if buf.Len() != 0 {
		t.Errorf("expected no output while progress bar active, got %q", buf.String())
	}
}

func TestFromSlog(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	l := FromSlog(slog.New(h))

	l.Info("recognized %q", "Yesterday")
	l.Debug("dropped by handler level")

	out := buf.String()
	if !strings.Contains(out, "level=INFO") || !strings.Contains(out, `recognized \"Yesterday\"`) {
		t.Errorf("unexpected slog output %q", out)
	}
	if strings.Contains(out, "dropped") {
		t.Errorf("debug should be filtered by the handler, got %q", out)
	}
}
