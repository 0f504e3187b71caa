// Package provider contains catalogue lookups used to enrich recognized songs
// with cover art and streaming links (Deezer, iTunes, Spotify).
//
// Each sub-package implements metadata.Provider. Build assembles the enabled
// ones, in configuration order, for a metadata.ChainProvider.
package provider

import (
	"songid/internal/config"
	"songid/internal/metadata"
	"songid/internal/provider/deezer"
	"songid/internal/provider/itunes"
	"songid/internal/provider/spotify"
)

// Build returns the enrichment providers enabled in cfg, in the configured order.
// Unknown names are skipped; Validate rejects them earlier.
func Build(cfg config.Config) []metadata.Provider {
	var providers []metadata.Provider
	for _, name := range cfg.EnrichmentProviders {
		switch name {
		case "deezer":
			providers = append(providers, deezer.New())
		case "itunes":
			providers = append(providers, itunes.New())
		case "spotify":
			providers = append(providers, spotify.New(cfg.SpotifyClientID, cfg.SpotifyClientSecret))
		}
	}
	return providers
}
