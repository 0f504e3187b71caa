package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"songid/internal/config"
	"songid/internal/logger"
	"songid/internal/metadata"
	"songid/internal/pipeline"
	"songid/internal/progress"
	"songid/internal/recognition"
	"songid/internal/shutdown"
	"songid/pkg/utils"
)

type result struct {
	Path  string         `json:"path"`
	Song  *metadata.Song `json:"song,omitempty"`
	Error string         `json:"error,omitempty"`
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}
	cfg := opts.cfg

	sh := shutdown.New()
	sh.Listen()

	log := logger.New(cfg.Verbose)
	defer log.Close()

	if !cfg.Verbose {
		logDir := config.GetDefaultLogPath()
		if err := os.MkdirAll(logDir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] Failed to create log directory: %v\n", err)
		} else {
			logFile := filepath.Join(logDir, fmt.Sprintf("songid_%s.log", time.Now().Format("2006-01-02_15-04-05")))
			if err := log.SetFileLog(logFile); err != nil {
				fmt.Fprintf(os.Stderr, "[WARN] Failed to setup file logging: %v\n", err)
			} else {
				log.Debug("Logging to file: %s", logFile)
			}
		}
	}

	if opts.configPath != "" {
		log.Debug("Loaded configuration from: %s", opts.configPath)
	}

	if err := cfg.Validate(); err != nil {
		log.Error("Configuration error: %v", err)
		os.Exit(1)
	}

	components := pipeline.DefaultComponents(cfg, log)
	if opts.noLyrics {
		components.Lyrics = nil
	}
	p := pipeline.New(components, log)

	if opts.lyricsOnly != "" {
		if err := printLyrics(sh.Context(), p, opts.lyricsOnly); err != nil {
			log.Error("%v", err)
			os.Exit(1)
		}
		return
	}

	code, err := run(sh, p, opts, log)
	sh.Shutdown()
	if err != nil {
		log.Error("%v", err)
		code = 1
	}
	log.Close()
	os.Exit(code)
}

func printLyrics(ctx context.Context, p *pipeline.Pipeline, query string) error {
	artist, title, err := splitArtistTitle(query)
	if err != nil {
		return err
	}
	text := p.Lyrics(ctx, title, artist)
	if text == "" {
		return fmt.Errorf("no lyrics found for %s - %s", artist, title)
	}
	fmt.Println(text)
	return nil
}

// run identifies every file and prints the results. The exit code is 2 when
// nothing was recognized.
func run(sh *shutdown.Handler, p *pipeline.Pipeline, opts options, log *logger.Logger) (int, error) {
	cfg := opts.cfg
	ctx := sh.Context()

	files, err := utils.CollectAudioFiles(opts.paths, cfg.AllowsExtension)
	if err != nil {
		return 1, err
	}
	if len(files) == 0 {
		return 1, fmt.Errorf("no audio files found")
	}
	log.Debug("Found %d audio files", len(files))

	var tmpDir string
	if opts.writeTags {
		tmpDir, err = utils.CreateTempDir()
		if err != nil {
			return 1, err
		}
		sh.AddCleanup(func() {
			if err := utils.Cleanup(tmpDir); err != nil {
				log.Warn("Error during cleanup: %v", err)
			}
		})
	}

	var bar *progress.Bar
	if !cfg.Verbose && len(files) > 1 {
		bar = progress.New(len(files))
		log.SetProgressBar(true)
	}

	results := make([]result, 0, len(files))
	matched := 0
	for _, path := range files {
		if ctx.Err() != nil {
			log.Warn("Interrupted, %d files left", len(files)-len(results))
			break
		}
		if bar != nil {
			bar.Start(filepath.Base(path))
		}

		res := identifyFile(ctx, p, cfg, path)
		if res.Song != nil {
			matched++
			if opts.writeTags {
				if err := retag(ctx, path, tmpDir, *res.Song); err != nil {
					log.Warn("%v", err)
				}
			}
		} else if res.Error != "" {
			log.Warn("%s: %s", path, res.Error)
		}
		results = append(results, res)

		if bar != nil {
			bar.Increment(res.Song != nil)
		}
	}

	if bar != nil {
		bar.Finish()
		log.SetProgressBar(false)
	}

	if opts.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return 1, fmt.Errorf("failed to encode results: %w", err)
		}
	} else {
		for _, res := range results {
			printResult(res)
		}
	}

	log.Info("=== Recognized %d of %d files ===", matched, len(files))
	if matched == 0 {
		return 2, nil
	}
	return 0, nil
}

func identifyFile(ctx context.Context, p *pipeline.Pipeline, cfg config.Config, path string) result {
	res := result{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if info.Size() > cfg.MaxUploadBytes() {
		res.Error = fmt.Sprintf("file too large (%d MB max)", cfg.MaxUploadMB)
		return res
	}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	song, err := p.Identify(ctx, recognition.Sample{Data: data, Filename: filepath.Base(path)})
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Song = song
	return res
}

// retag writes tags into a copy of the file and moves it back over the
// original.
func retag(ctx context.Context, path, tmpDir string, song metadata.Song) error {
	work := filepath.Join(tmpDir, filepath.Base(path))
	if err := utils.CopyFile(path, work); err != nil {
		return err
	}

	if err := metadata.WriteTags(work, song); err != nil {
		os.Remove(work)
		return err
	}

	if song.CoverArtURL != "" {
		art, err := metadata.DownloadArtwork(ctx, song.CoverArtURL)
		if err == nil {
			err = metadata.WriteArtwork(work, art)
		}
		if err != nil {
			os.Remove(work)
			return err
		}
	}

	return utils.MoveFile(work, path)
}

func printResult(res result) {
	fmt.Printf("%s\n", res.Path)
	if res.Song == nil {
		if res.Error != "" {
			fmt.Printf("  error: %s\n\n", res.Error)
		} else {
			fmt.Printf("  not recognized\n\n")
		}
		return
	}

	s := res.Song
	fmt.Printf("  %s - %s\n", s.Artist, s.Title)
	field := func(name, value string) {
		if value != "" {
			fmt.Printf("  %-12s %s\n", name+":", value)
		}
	}
	field("Album", s.Album)
	field("Released", s.ReleaseDate)
	field("Label", s.Label)
	field("Spotify", s.SpotifyURL)
	field("Apple Music", s.AppleMusicURL)
	field("Amazon", s.AmazonURL)
	field("Cover", s.CoverArtURL)
	field("Source", s.Provider)
	if s.Lyrics != "" {
		fmt.Printf("\n%s\n", s.Lyrics)
	}
	fmt.Println()
}
