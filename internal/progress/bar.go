// Package progress renders a single-line progress bar for batch recognition.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	barWidth   = 30
	labelWidth = 32
)

// Bar represents a simple progress bar
type Bar struct {
	out       io.Writer
	total     int
	current   int
	matched   int
	label     string
	mu        sync.Mutex
	startTime time.Time
	done      bool
}

// New creates a progress bar on stderr.
func New(total int) *Bar {
	return NewWriter(os.Stderr, total)
}

// NewWriter creates a progress bar that renders to w.
func NewWriter(w io.Writer, total int) *Bar {
	if total < 1 {
		total = 1
	}
	return &Bar{
		out:       w,
		total:     total,
		startTime: time.Now(),
	}
}

// Start shows which file is being processed.
func (b *Bar) Start(label string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.label = label
	b.render()
}

// Increment marks one file as processed, recognized or not.
func (b *Bar) Increment(recognized bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current < b.total {
		b.current++
	}
	if recognized {
		b.matched++
	}
	b.render()
}

// Finish marks the progress as complete
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.done {
		b.label = ""
		b.render()
		fmt.Fprintln(b.out)
		b.done = true
	}
}

func (b *Bar) render() {
	if b.done {
		return
	}

	filled := barWidth * b.current / b.total
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	fmt.Fprintf(b.out, "\r[%s] %d/%d recognized %d - %s %-*s",
		bar,
		b.current,
		b.total,
		b.matched,
		formatDuration(time.Since(b.startTime)),
		labelWidth,
		truncate(b.label, labelWidth),
	)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
