// Package lyrics finds song lyrics across several free providers and, when
// they are not in the target language, attaches a translation.
package lyrics

import "context"

// Provider fetches plain-text lyrics for a song.
// An empty string with a nil error means the provider has no lyrics for it.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, artist, title string) (string, error)
}

const userAgent = "songid/1.0"
