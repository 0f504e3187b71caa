// Package recognition identifies songs from short audio samples using
// hosted fingerprinting services, trying each in priority order.
package recognition

import (
	"context"
	"errors"

	"songid/internal/logger"
	"songid/internal/metadata"
)

var (
	// ErrNotConfigured means the provider has no credential.
	ErrNotConfigured = errors.New("recognition provider not configured")
	// ErrNoMatch means the provider answered but did not identify a song.
	ErrNoMatch = errors.New("no match")
)

// DefaultFilename is used when a sample has no name of its own.
const DefaultFilename = "audio.mp3"

const userAgent = "songid/1.0"

// Sample is an audio clip to identify.
type Sample struct {
	Data     []byte
	Filename string
}

func (s Sample) filename() string {
	if s.Filename == "" {
		return DefaultFilename
	}
	return s.Filename
}

// Recognizer identifies a sample. Every kind of miss is reported as an error.
type Recognizer interface {
	Name() string
	Recognize(ctx context.Context, sample Sample) (*metadata.Song, error)
}

// Chain tries recognizers in order and returns the first match.
type Chain struct {
	recognizers []Recognizer
	logger      *logger.Logger
}

func NewChain(recognizers []Recognizer, log *logger.Logger) *Chain {
	return &Chain{recognizers: recognizers, logger: log}
}

// Recognize returns the first song identified, or (nil, nil) when every
// recognizer missed. Individual failures are logged, never returned.
func (c *Chain) Recognize(ctx context.Context, sample Sample) (*metadata.Song, error) {
	for _, r := range c.recognizers {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		song, err := r.Recognize(ctx, sample)
		switch {
		case errors.Is(err, ErrNotConfigured):
			c.logger.Warn("%s: %v", r.Name(), err)
			continue
		case err != nil:
			c.logger.Debug("%s failed: %v", r.Name(), err)
			continue
		case !song.Valid():
			c.logger.Debug("%s returned an incomplete result", r.Name())
			continue
		}

		song.Provider = r.Name()
		c.logger.Info("Recognized by %s: %s - %s", r.Name(), song.Artist, song.Title)
		return song, nil
	}

	c.logger.Info("Song not recognized by any provider")
	return nil, nil
}
