package main

import (
	"fmt"
	"os"
	"strings"

	"songid/internal/config"
)

type options struct {
	cfg        config.Config
	configPath string
	paths      []string
	writeTags  bool
	noLyrics   bool
	jsonOut    bool
	lyricsOnly string
}

// parseArgs parses command-line arguments and loads configuration.
// Priority: CLI flags > environment > config file > defaults
func parseArgs(args []string) (options, error) {
	var opts options

	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			printUsage()
			os.Exit(0)
		}
		if arg == "--init-config" {
			return opts, initConfigFile()
		}
	}

	for i := 0; i < len(args); i++ {
		if args[i] == "--config" || args[i] == "-c" {
			if i+1 >= len(args) {
				return opts, fmt.Errorf("--config requires a path argument")
			}
			opts.configPath = args[i+1]
			break
		}
	}

	cfg, err := config.LoadConfigFile(opts.configPath)
	if err != nil {
		return opts, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.configPath == "" {
		opts.configPath = config.FindConfigFile()
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "--verbose", "-v":
			cfg.Verbose = true

		case "--write-tags", "-w":
			opts.writeTags = true

		case "--no-lyrics":
			opts.noLyrics = true

		case "--json":
			opts.jsonOut = true

		case "--target", "-t":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("--target requires a language code")
			}
			i++
			cfg.TargetLanguage = strings.ToLower(args[i])

		case "--lyrics", "-l":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("--lyrics requires \"Artist - Title\"")
			}
			i++
			opts.lyricsOnly = args[i]

		case "--config", "-c":
			i++

		default:
			if len(arg) > 0 && arg[0] == '-' {
				return opts, fmt.Errorf("unknown flag: %s", arg)
			}
			opts.paths = append(opts.paths, arg)
		}
	}

	if opts.lyricsOnly == "" && len(opts.paths) == 0 {
		return opts, fmt.Errorf("no audio files given")
	}

	opts.cfg = cfg
	return opts, nil
}

// splitArtistTitle splits "Artist - Title" into its parts.
func splitArtistTitle(s string) (artist, title string, err error) {
	artist, title, ok := strings.Cut(s, " - ")
	artist, title = strings.TrimSpace(artist), strings.TrimSpace(title)
	if !ok || artist == "" || title == "" {
		return "", "", fmt.Errorf("expected \"Artist - Title\", got %q", s)
	}
	return artist, title, nil
}

// initConfigFile creates a new config file with default values
func initConfigFile() error {
	path := config.GetDefaultConfigPath()

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists at: %s\n", path)
		fmt.Println("Delete it first if you want to recreate it.")
		os.Exit(0)
	}

	cfg := config.DefaultConfig()

	if err := config.SaveConfigFile(cfg, path); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Printf("Created default config file at: %s\n", path)
	fmt.Println("\nYou can now edit this file to customize your settings.")
	fmt.Println("Available options:")
	fmt.Println("  audd_api_token: AudD recognition token (or $" + config.EnvAudDAPIToken + ")")
	fmt.Println("  rapidapi_key: Shazam fallback key (or $" + config.EnvRapidAPIKey + ")")
	fmt.Println("  target_language: es, en, de, fr")
	fmt.Println("  enrichment_providers: deezer, itunes, spotify")
	fmt.Println("  confidence_threshold: 0.0-1.0 (catalogue match strictness)")
	fmt.Println("  verbose: true/false (enable detailed logging)")

	os.Exit(0)
	return nil
}

// printUsage displays the help message
func printUsage() {
	fmt.Println("songid - Identify songs and fetch translated lyrics")
	fmt.Println()
	fmt.Println("Usage: songid [options] <file|directory>...")
	fmt.Println("       songid --lyrics \"Artist - Title\"")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -v, --verbose              Show detailed output")
	fmt.Println("  -w, --write-tags           Write recognized metadata and artwork into the files")
	fmt.Println("      --no-lyrics            Skip the lyrics lookup")
	fmt.Println("  -t, --target <lang>        Translation language: es, en, de, fr (default: es)")
	fmt.Println("  -l, --lyrics <query>       Only fetch lyrics for \"Artist - Title\"")
	fmt.Println("      --json                 Print results as JSON")
	fmt.Println("  -c, --config <path>        Path to config file")
	fmt.Println("  -h, --help                 Show this help message")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println("  --init-config              Create a default config file")
	fmt.Println()
	fmt.Println("Config file locations (checked in order):")
	fmt.Println("  ./songid.yaml")
	fmt.Println("  ~/.config/songid/config.yaml")
	fmt.Println("  ~/.songid.yaml")
	fmt.Println()
	fmt.Println("Logging:")
	fmt.Println("  Normal mode: Progress bar shown, detailed logs saved to:")
	fmt.Println("    ~/.local/share/songid/logs/")
	fmt.Println("  Verbose mode: All output to stdout, no progress bar, no file logging")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  songid clip.mp3")
	fmt.Println("  songid -w ~/Music/unsorted")
	fmt.Println("  songid -t en --lyrics \"Soda Stereo - De Música Ligera\"")
}
