package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/csmith/envflag/v2"
	"github.com/csmith/slogflags"

	"songid/internal/config"
	"songid/internal/logger"
	"songid/internal/pipeline"
	"songid/internal/shutdown"
	"songid/internal/web"
)

var (
	addr       = flag.String("addr", ":8080", "HTTP listen address")
	configPath = flag.String("config", "", "Config file path")
	staticDir  = flag.String("static", "", "Directory of static files to serve at /")
	target     = flag.String("target-language", "", "Translation language, overrides the config file")
	reqTimeout = flag.Duration("request-timeout", web.DefaultRequestTimeout, "Limit for synchronous recognize and lyrics requests; longer runs belong in /api/jobs")
)

func main() {
	envflag.Parse()
	l := logger.FromSlog(slogflags.Logger(slogflags.WithSetDefault(true)))

	cfg, err := config.LoadConfigFile(*configPath)
	if err != nil {
		l.Error("Config error: %v", err)
		os.Exit(1)
	}
	if *target != "" {
		cfg.TargetLanguage = *target
	}
	if err := cfg.Validate(); err != nil {
		l.Error("Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.AudDAPIToken == "" && cfg.RapidAPIKey == "" {
		l.Warn("Neither %s nor %s is set, recognition will always miss", config.EnvAudDAPIToken, config.EnvRapidAPIKey)
	}

	sh := shutdown.New()
	sh.Listen()

	jobMgr := web.NewJobManager()
	jobMgr.StartCleanup(sh.Context())

	p := pipeline.New(pipeline.DefaultComponents(cfg, l), l)
	server := web.NewServer(sh.Context(), jobMgr, p, cfg, l)
	server.SetRequestTimeout(*reqTimeout)
	if *staticDir != "" {
		server.ServeStatic(*staticDir)
	}

	httpServer := &http.Server{
		Addr:         *addr,
		Handler:      server.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: *reqTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	sh.Go(func(ctx context.Context) {
		l.Info("Starting web server on %s", *addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("Server error: %v", err)
			os.Exit(1)
		}
	})

	sh.Go(func(ctx context.Context) {
		<-ctx.Done()
		l.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			l.Error("Server shutdown error: %v", err)
		}
	})

	sh.Wait()
	l.Info("Server stopped")
}
