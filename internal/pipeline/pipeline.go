// Package pipeline runs a sample through recognition, enrichment, lyrics and
// link building.
package pipeline

import (
	"context"
	"fmt"

	"songid/internal/config"
	"songid/internal/language"
	"songid/internal/logger"
	"songid/internal/lyrics"
	"songid/internal/metadata"
	"songid/internal/provider"
	"songid/internal/recognition"
	"songid/internal/translate"
)

// Stage names reported through Hooks.OnStage.
type Stage string

const (
	StageRecognizing Stage = "recognizing"
	StageEnriching   Stage = "enriching"
	StageLyrics      Stage = "lyrics"
	StageDone        Stage = "done"
)

type Hooks struct {
	OnStage func(stage Stage)
}

func (h Hooks) stage(s Stage) {
	if h.OnStage != nil {
		h.OnStage(s)
	}
}

type Recognizer interface {
	Recognize(ctx context.Context, sample recognition.Sample) (*metadata.Song, error)
}

type Enricher interface {
	Enrich(ctx context.Context, song *metadata.Song) bool
}

type LyricsFinder interface {
	Lookup(ctx context.Context, title, artist string) string
}

// Components are the parts a Pipeline is built from.
// Enricher and Lyrics may be nil to skip those steps.
type Components struct {
	Recognizer Recognizer
	Enricher   Enricher
	Lyrics     LyricsFinder
}

// DefaultComponents wires the hosted services configured in cfg:
// AudD then Shazam for recognition, the enabled catalogue providers for
// enrichment, and lyrics.ovh, LRCLib and ChartLyrics with MyMemory
// translation for lyrics.
func DefaultComponents(cfg config.Config, log *logger.Logger) Components {
	c := Components{
		Recognizer: recognition.NewChain([]recognition.Recognizer{
			recognition.NewAudD(cfg.AudDAPIToken),
			recognition.NewShazam(cfg.RapidAPIKey),
		}, log),
	}

	if providers := provider.Build(cfg); len(providers) > 0 {
		chain := metadata.NewChainProvider(providers, log)
		c.Enricher = metadata.NewEnricher(chain, log, cfg.ConfidenceThreshold)
	}

	tr := translate.New(language.Code(cfg.TargetLanguage), cfg.TranslationEmail, cfg.TranslationDelay)
	c.Lyrics = lyrics.NewService(lyrics.DefaultProviders(), tr, log)

	return c
}

// Pipeline identifies songs. It holds no per-request state and is safe for
// concurrent use.
type Pipeline struct {
	recognizer Recognizer
	enricher   Enricher
	lyrics     LyricsFinder
	logger     *logger.Logger
}

func New(c Components, log *logger.Logger) *Pipeline {
	return &Pipeline{
		recognizer: c.Recognizer,
		enricher:   c.Enricher,
		lyrics:     c.Lyrics,
		logger:     log,
	}
}

// Identify recognizes a sample and completes the song record.
// Returns (nil, nil) when no recognizer knows the song.
func (p *Pipeline) Identify(ctx context.Context, sample recognition.Sample) (*metadata.Song, error) {
	return p.Run(ctx, sample, Hooks{})
}

// Run is Identify with progress callbacks.
func (p *Pipeline) Run(ctx context.Context, sample recognition.Sample, hooks Hooks) (*metadata.Song, error) {
	if len(sample.Data) == 0 {
		return nil, fmt.Errorf("empty audio sample")
	}

	hooks.stage(StageRecognizing)
	song, err := p.recognizer.Recognize(ctx, sample)
	if err != nil {
		return nil, fmt.Errorf("recognition failed: %w", err)
	}
	if song == nil {
		hooks.stage(StageDone)
		return nil, nil
	}

	if p.enricher != nil && song.NeedsEnrichment() {
		hooks.stage(StageEnriching)
		if p.enricher.Enrich(ctx, song) {
			p.logger.Debug("Enriched %s - %s", song.Artist, song.Title)
		}
	}

	if p.lyrics != nil {
		hooks.stage(StageLyrics)
		song.Lyrics = p.lyrics.Lookup(ctx, song.Title, song.Artist)
	}

	song.AmazonURL = metadata.CommerceURL(song.Artist, song.Album, song.Title)

	hooks.stage(StageDone)
	return song, nil
}

// Lyrics looks up lyrics on their own, without recognition.
func (p *Pipeline) Lyrics(ctx context.Context, title, artist string) string {
	if p.lyrics == nil {
		return ""
	}
	return p.lyrics.Lookup(ctx, title, artist)
}
