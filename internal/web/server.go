// Package web serves the recognition pipeline over HTTP: synchronous upload
// and microphone endpoints, a lyrics lookup, and background jobs with
// websocket progress.
package web

import (
	"context"
	"net/http"
	"time"

	"songid/internal/config"
	"songid/internal/logger"
	"songid/internal/metadata"
	"songid/internal/pipeline"
	"songid/internal/recognition"
)

// Identifier is the part of the pipeline the server needs.
type Identifier interface {
	Run(ctx context.Context, sample recognition.Sample, hooks pipeline.Hooks) (*metadata.Song, error)
	Lyrics(ctx context.Context, title, artist string) string
}

// DefaultRequestTimeout bounds the synchronous recognize and lyrics
// endpoints. The HTTP server's WriteTimeout must be longer.
const DefaultRequestTimeout = 4 * time.Minute

type Server struct {
	ctx            context.Context
	jobMgr         *JobManager
	pipeline       Identifier
	config         config.Config
	logger         *logger.Logger
	staticDir      string
	requestTimeout time.Duration
}

// NewServer creates a server. Jobs run under ctx and are cancelled with it.
func NewServer(ctx context.Context, jobMgr *JobManager, p Identifier, cfg config.Config, log *logger.Logger) *Server {
	return &Server{
		ctx:            ctx,
		jobMgr:         jobMgr,
		pipeline:       p,
		config:         cfg,
		logger:         log,
		requestTimeout: DefaultRequestTimeout,
	}
}

// SetRequestTimeout changes how long a synchronous request may run before it
// is answered with 504. Jobs are not affected.
func (s *Server) SetRequestTimeout(d time.Duration) {
	s.requestTimeout = d
}

// ServeStatic serves files from dir at the root path.
func (s *Server) ServeStatic(dir string) {
	s.staticDir = dir
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	if s.staticDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(s.staticDir)))
	}

	mux.HandleFunc("POST /api/audio/recognize", s.handleRecognizeUpload)
	mux.HandleFunc("POST /api/microphone/recognize", s.handleRecognizeMicrophone)
	mux.HandleFunc("GET /api/lyrics", s.handleLyrics)
	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.HandleFunc("POST /api/jobs", s.handleCreateJob)
	mux.HandleFunc("GET /api/jobs", s.handleListJobs)
	mux.HandleFunc("GET /api/jobs/{id}", s.handleGetJob)
	mux.HandleFunc("POST /api/jobs/{id}/cancel", s.handleCancelJob)
	mux.HandleFunc("GET /ws", s.handleWebSocket)

	return s.loggingMiddleware(mux)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("%s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
