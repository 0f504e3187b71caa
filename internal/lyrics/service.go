package lyrics

import (
	"context"
	"fmt"
	"strings"

	"songid/internal/language"
	"songid/internal/logger"
	"songid/internal/metadata"
	"songid/internal/translate"
)

// Separator divides the original and translated halves of a bilingual text.
var Separator = strings.Repeat("─", 40)

// Translator translates text into a fixed target language.
type Translator interface {
	Target() language.Code
	Translate(ctx context.Context, text string, source language.Code) (translate.Result, error)
}

// Service looks up lyrics across providers in order and translates them.
type Service struct {
	providers  []Provider
	translator Translator
	logger     *logger.Logger
}

// NewService creates a Service. translator may be nil, in which case lyrics
// are always returned untranslated.
func NewService(providers []Provider, translator Translator, log *logger.Logger) *Service {
	return &Service{
		providers:  providers,
		translator: translator,
		logger:     log,
	}
}

// DefaultProviders returns lyrics.ovh, LRCLib and ChartLyrics, in that order.
func DefaultProviders() []Provider {
	return []Provider{
		NewLyricsOVH(),
		NewLRCLib(),
		NewChartLyrics(),
	}
}

// Lookup returns lyrics for the song, or "" if no provider has them.
// Lyrics not in the translator's target language come back as a bilingual
// block when translation succeeds, otherwise as the original text.
func (s *Service) Lookup(ctx context.Context, title, artist string) string {
	query := metadata.CleanQuery(title, artist)
	if query.Empty() {
		s.logger.Debug("lyrics: nothing to search for %q by %q", title, artist)
		return ""
	}

	original := s.fetch(ctx, query)
	if original == "" {
		return ""
	}

	if s.translator == nil {
		return original
	}

	detected := language.Detect(original)
	target := s.translator.Target()
	if detected == target {
		return original
	}

	res, err := s.translator.Translate(ctx, original, detected)
	if err != nil {
		s.logger.Warn("lyrics translation failed: %v", err)
		return original
	}
	// A translation with no chunk translated would only repeat the original,
	// so the bilingual block is left out.
	if !res.OK() {
		s.logger.Warn("lyrics translation failed: 0 of %d chunks translated", res.Chunks)
		return original
	}
	if res.Translated < res.Chunks {
		s.logger.Debug("lyrics partially translated: %d of %d chunks", res.Translated, res.Chunks)
	}

	return Bilingual(original, detected, res.Text, target)
}

func (s *Service) fetch(ctx context.Context, query metadata.SearchQuery) string {
	for _, p := range s.providers {
		text, err := p.Fetch(ctx, query.Artist, query.Title)
		if err != nil {
			s.logger.Debug("lyrics provider %s failed: %v", p.Name(), err)
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			s.logger.Debug("lyrics found by %s", p.Name())
			return text
		}
	}
	return ""
}

// Bilingual formats original lyrics and their translation as one text.
func Bilingual(original string, from language.Code, translation string, to language.Code) string {
	return fmt.Sprintf("ORIGINAL (%s):\n%s\n\n%s\n\nTRANSLATION (%s):\n%s",
		language.Name(from), original, Separator, language.Name(to), translation)
}
