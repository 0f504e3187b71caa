package web

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"songid/internal/metadata"
	"songid/internal/pipeline"
	"songid/internal/recognition"
)

const (
	uploadField        = "audioFile"
	microphoneFilename = "microphone-recording.wav"
	timeFormat         = "2006-01-02 15:04:05"
)

// Response is the envelope of every API reply.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// MicrophoneRequest carries a browser recording, base64 encoded, optionally
// as a data URL.
type MicrophoneRequest struct {
	AudioData string `json:"audioData"`
	MimeType  string `json:"mimeType"`
}

type LyricsResponse struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Lyrics string `json:"lyrics"`
}

type JobResponse struct {
	ID          string         `json:"id"`
	Filename    string         `json:"filename"`
	Status      JobStatus      `json:"status"`
	Stage       string         `json:"stage,omitempty"`
	Song        *metadata.Song `json:"song,omitempty"`
	Error       string         `json:"error,omitempty"`
	CreatedAt   string         `json:"created_at"`
	StartedAt   *string        `json:"started_at,omitempty"`
	CompletedAt *string        `json:"completed_at,omitempty"`
}

// errBadRequest marks input errors that map to 400.
var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Response{Success: false, Message: msg})
}

// writeInputError reports invalid client input as a 400.
func writeInputError(w http.ResponseWriter, err error) {
	msg := strings.TrimPrefix(err.Error(), errBadRequest.Error()+": ")
	writeError(w, http.StatusBadRequest, msg)
}

// readUpload reads the multipart audio file of an upload request.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (recognition.Sample, error) {
	limit := s.config.MaxUploadBytes()
	// leave room for the multipart envelope; the file itself is checked below
	r.Body = http.MaxBytesReader(w, r.Body, limit+1<<20)

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return recognition.Sample{}, badRequest("file exceeds the %d MB limit", s.config.MaxUploadMB)
		}
		return recognition.Sample{}, badRequest("no audio file provided")
	}
	defer file.Close()

	if header.Size == 0 {
		return recognition.Sample{}, badRequest("no audio file provided")
	}
	if !s.config.AllowsExtension(header.Filename) {
		return recognition.Sample{}, badRequest("invalid format, allowed formats: %s", strings.Join(s.config.AllowedExtensions, ", "))
	}
	if header.Size > limit {
		return recognition.Sample{}, badRequest("file exceeds the %d MB limit", s.config.MaxUploadMB)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return recognition.Sample{}, fmt.Errorf("failed to read upload: %w", err)
	}
	return recognition.Sample{Data: data, Filename: header.Filename}, nil
}

// decodeMicrophone decodes a base64 recording, stripping any data-URL prefix
// such as "data:audio/wav;base64,".
func decodeMicrophone(req MicrophoneRequest, limit int64) (recognition.Sample, error) {
	encoded := strings.TrimSpace(req.AudioData)
	if encoded == "" {
		return recognition.Sample{}, badRequest("no audio data provided")
	}
	if i := strings.Index(encoded, ","); i >= 0 {
		encoded = encoded[i+1:]
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return recognition.Sample{}, badRequest("audio data is not valid base64")
	}
	if len(data) == 0 {
		return recognition.Sample{}, badRequest("no audio data provided")
	}
	if int64(len(data)) > limit {
		return recognition.Sample{}, badRequest("recording exceeds the %d byte limit", limit)
	}
	return recognition.Sample{Data: data, Filename: microphoneFilename}, nil
}

func (s *Server) handleRecognizeUpload(w http.ResponseWriter, r *http.Request) {
	sample, err := s.readUpload(w, r)
	if err != nil {
		if errors.Is(err, errBadRequest) {
			writeInputError(w, err)
			return
		}
		s.logger.Error("Upload failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to read the uploaded file")
		return
	}
	s.identify(r.Context(), w, sample)
}

func (s *Server) handleRecognizeMicrophone(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes()*2)

	var req MicrophoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sample, err := decodeMicrophone(req, s.config.MaxUploadBytes())
	if err != nil {
		writeInputError(w, err)
		return
	}
	s.identify(r.Context(), w, sample)
}

func (s *Server) identify(ctx context.Context, w http.ResponseWriter, sample recognition.Sample) {
	ctx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	song, err := s.pipeline.Run(ctx, sample, pipeline.Hooks{})
	if errors.Is(err, context.DeadlineExceeded) {
		s.logger.Warn("Recognition of %s timed out after %s", sample.Filename, s.requestTimeout)
		writeError(w, http.StatusGatewayTimeout, "recognition took too long, use /api/jobs for long running requests")
		return
	}
	if err != nil {
		s.logger.Error("Recognition of %s failed: %v", sample.Filename, err)
		writeError(w, http.StatusInternalServerError, "internal error while processing the audio")
		return
	}
	if song == nil {
		writeJSON(w, http.StatusOK, Response{Success: false, Message: "song not recognized"})
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "song recognized", Data: song})
}

func (s *Server) handleLyrics(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	artist := strings.TrimSpace(r.URL.Query().Get("artist"))
	if title == "" || artist == "" {
		writeError(w, http.StatusBadRequest, "title and artist are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	text := s.pipeline.Lyrics(ctx, title, artist)
	if text == "" {
		writeJSON(w, http.StatusOK, Response{Success: false, Message: "lyrics not found"})
		return
	}
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    LyricsResponse{Title: title, Artist: artist, Lyrics: text},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	sample, err := s.readUpload(w, r)
	if err != nil {
		if errors.Is(err, errBadRequest) {
			writeInputError(w, err)
			return
		}
		s.logger.Error("Upload failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to read the uploaded file")
		return
	}

	job := s.jobMgr.CreateJob(sample)
	s.logger.Info("Created job %s for %s", job.ID, job.Filename)

	go s.processJob(job.ID)

	writeJSON(w, http.StatusAccepted, Response{Success: true, Data: jobToResponse(job)})
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs := s.jobMgr.ListJobs()
	responses := make([]*JobResponse, len(jobs))
	for i, job := range jobs {
		responses[i] = jobToResponse(job)
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: responses})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobMgr.GetJob(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: jobToResponse(job)})
}

func (s *Server) handleCancelJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	job, err := s.jobMgr.GetJob(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if job.Status.Done() {
		writeError(w, http.StatusConflict, fmt.Sprintf("job already %s", job.Status))
		return
	}

	s.jobMgr.UpdateJob(id, func(j *Job) {
		if j.Cancel != nil {
			j.Cancel()
		}
		j.Status = StatusCancelled
	})

	job, _ = s.jobMgr.GetJob(id)
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "job cancelled", Data: jobToResponse(job)})
}

func (s *Server) processJob(id string) {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	var sample recognition.Sample
	s.jobMgr.UpdateJob(id, func(j *Job) {
		j.Cancel = cancel
		j.Status = StatusRunning
		sample = j.Sample
	})
	if sample.Data == nil {
		// cancelled before it started
		return
	}

	s.logger.Info("Starting job %s", id)

	hooks := pipeline.Hooks{
		OnStage: func(stage pipeline.Stage) {
			s.jobMgr.UpdateJob(id, func(j *Job) {
				j.Stage = string(stage)
			})
		},
	}

	song, err := s.pipeline.Run(ctx, sample, hooks)
	switch {
	case ctx.Err() != nil:
		s.jobMgr.UpdateJob(id, func(j *Job) {
			j.Status = StatusCancelled
		})
		s.logger.Info("Job %s cancelled", id)
	case err != nil:
		s.logger.Error("Job %s failed: %v", id, err)
		s.jobMgr.UpdateJob(id, func(j *Job) {
			j.Status = StatusFailed
			j.Error = err.Error()
		})
	case song == nil:
		s.jobMgr.UpdateJob(id, func(j *Job) {
			j.Status = StatusNotFound
		})
		s.logger.Info("Job %s: song not recognized", id)
	default:
		s.jobMgr.UpdateJob(id, func(j *Job) {
			j.Status = StatusCompleted
			j.Song = song
		})
		s.logger.Info("Job %s completed: %s - %s", id, song.Artist, song.Title)
	}
}

func jobToResponse(job Job) *JobResponse {
	resp := &JobResponse{
		ID:        job.ID,
		Filename:  job.Filename,
		Status:    job.Status,
		Stage:     job.Stage,
		Song:      job.Song,
		Error:     job.Error,
		CreatedAt: job.CreatedAt.Format(timeFormat),
	}

	if job.StartedAt != nil {
		started := job.StartedAt.Format(timeFormat)
		resp.StartedAt = &started
	}

	if job.CompletedAt != nil {
		completed := job.CompletedAt.Format(timeFormat)
		resp.CompletedAt = &completed
	}

	return resp
}
