package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"songid/internal/language"
)

// Config contains the program configuration
type Config struct {
	Verbose             bool          `yaml:"verbose"`
	AudDAPIToken        string        `yaml:"audd_api_token"`
	RapidAPIKey         string        `yaml:"rapidapi_key"`
	TargetLanguage      string        `yaml:"target_language"`
	TranslationEmail    string        `yaml:"translation_email"`
	TranslationDelay    time.Duration `yaml:"translation_delay"`
	EnrichmentProviders []string      `yaml:"enrichment_providers"`
	SpotifyClientID     string        `yaml:"spotify_client_id"`
	SpotifyClientSecret string        `yaml:"spotify_client_secret"`
	ConfidenceThreshold float64       `yaml:"confidence_threshold"`
	MaxUploadMB         int           `yaml:"max_upload_mb"`
	AllowedExtensions   []string      `yaml:"allowed_extensions"`
}

// Environment variables that override secrets from the config file.
const (
	EnvAudDAPIToken = "SONGID_AUDD_API_TOKEN"
	EnvRapidAPIKey  = "SONGID_RAPIDAPI_KEY"
)

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Verbose:             false,
		TargetLanguage:      "es",
		TranslationDelay:    500 * time.Millisecond,
		EnrichmentProviders: []string{"deezer", "itunes"},
		ConfidenceThreshold: 0.7,
		MaxUploadMB:         10,
		AllowedExtensions:   []string{".mp3", ".wav", ".m4a", ".ogg", ".flac", ".webm"},
	}
}

// LoadConfigFile loads configuration from a YAML file.
// If path is empty, searches standard locations. Returns defaults if no file found.
// Secrets set in the environment always win over the file.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = FindConfigFile()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAudDAPIToken); v != "" {
		c.AudDAPIToken = v
	}
	if v := os.Getenv(EnvRapidAPIKey); v != "" {
		c.RapidAPIKey = v
	}
}

// FindConfigFile searches for a config file in standard locations
func FindConfigFile() string {
	home := homeDir()
	locations := []string{
		"./songid.yaml",
		"./songid.yml",
		filepath.Join(home, ".config", "songid", "config.yaml"),
		filepath.Join(home, ".config", "songid", "config.yml"),
		filepath.Join(home, ".songid.yaml"),
	}

	for _, path := range locations {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// SaveConfigFile saves the current configuration to a YAML file
func SaveConfigFile(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPath returns the default config file path
func GetDefaultConfigPath() string {
	return filepath.Join(homeDir(), ".config", "songid", "config.yaml")
}

// GetDefaultLogPath returns the default log directory path
func GetDefaultLogPath() string {
	return filepath.Join(homeDir(), ".local", "share", "songid", "logs")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}

// MaxUploadBytes returns the upload size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) * 1024 * 1024
}

// AllowsExtension reports whether a file name has one of the allowed extensions.
func (c *Config) AllowsExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range c.AllowedExtensions {
		if strings.ToLower(allowed) == ext {
			return true
		}
	}
	return false
}

// HasProvider reports whether an enrichment provider is enabled.
func (c *Config) HasProvider(name string) bool {
	for _, p := range c.EnrichmentProviders {
		if p == name {
			return true
		}
	}
	return false
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if !language.Supported(language.Code(c.TargetLanguage)) {
		return fmt.Errorf("unsupported target_language %q, valid languages: %v", c.TargetLanguage, language.Codes())
	}

	if c.TranslationDelay < 0 {
		return fmt.Errorf("translation_delay cannot be negative, got %s", c.TranslationDelay)
	}

	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence_threshold must be between 0.0 and 1.0, got %.2f", c.ConfidenceThreshold)
	}

	if c.MaxUploadMB < 1 {
		return fmt.Errorf("max_upload_mb must be at least 1, got %d", c.MaxUploadMB)
	}

	if len(c.AllowedExtensions) == 0 {
		return fmt.Errorf("allowed_extensions cannot be empty")
	}
	for _, ext := range c.AllowedExtensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("allowed extension %q must start with a dot", ext)
		}
	}

	validProviders := map[string]bool{"deezer": true, "itunes": true, "spotify": true}
	for _, p := range c.EnrichmentProviders {
		if !validProviders[p] {
			return fmt.Errorf("unknown enrichment provider %q, valid providers: deezer, itunes, spotify", p)
		}
	}

	if c.HasProvider("spotify") {
		if c.SpotifyClientID == "" {
			return fmt.Errorf("spotify_client_id is required when spotify is in enrichment_providers")
		}
		if c.SpotifyClientSecret == "" {
			return fmt.Errorf("spotify_client_secret is required when spotify is in enrichment_providers")
		}
	}

	return nil
}
