package provider

import (
	"testing"

	"songid/internal/config"
)

func TestBuild(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.EnrichmentProviders = []string{"itunes", "spotify", "deezer", "bogus"}

	providers := Build(cfg)
	if len(providers) != 3 {
		t.Fatalf("expected 3 providers, got %d", len(providers))
	}

	want := []string{"itunes", "spotify", "deezer"}
	for i, p := range providers {
		if p.Name() != want[i] {
			t.Errorf("providers[%d] = %s, want %s", i, p.Name(), want[i])
		}
	}
}

func TestBuildNone(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.EnrichmentProviders = nil

	if providers := Build(cfg); len(providers) != 0 {
		t.Errorf("expected no providers, got %d", len(providers))
	}
}
