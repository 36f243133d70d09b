// Package httpapi exposes the analytics aggregation over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"tunelens/internal/analytics"
	"tunelens/internal/history"
	"tunelens/pkg/spotify"
)

// Runner executes one analytics aggregation with resolved credentials.
type Runner interface {
	Run(ctx context.Context, creds analytics.Credentials, artist string) (*analytics.Report, error)
}

// Recorder appends completed runs to the local history log.
type Recorder interface {
	Record(ctx context.Context, run history.Run) (int64, error)
}

// Config carries the defaults resolved at request entry when the
// payload omits a field.
type Config struct {
	DefaultClientID     string
	DefaultClientSecret string
	DefaultArtist       string
}

// Server wires HTTP handlers to the analytics runner.
type Server struct {
	runner   Runner
	recorder Recorder // nil disables history recording
	cfg      Config
	logger   zerolog.Logger
}

// New configures a Server.
func New(runner Runner, recorder Recorder, cfg Config, logger zerolog.Logger) *Server {
	return &Server{
		runner:   runner,
		recorder: recorder,
		cfg:      cfg,
		logger:   logger.With().Str("component", "httpapi").Logger(),
	}
}

// Routes exposes the HTTP handlers.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("/api/analytics", s.handleAnalytics)

	return mux
}

type analyticsRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Artist       string `json:"artist"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req analyticsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	// Resolve inputs before any external call is attempted
	creds := analytics.Credentials{
		ClientID:     firstNonEmpty(req.ClientID, s.cfg.DefaultClientID),
		ClientSecret: firstNonEmpty(req.ClientSecret, s.cfg.DefaultClientSecret),
	}
	if creds.ClientID == "" || creds.ClientSecret == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing credentials"})
		return
	}

	artist := firstNonEmpty(req.Artist, s.cfg.DefaultArtist)
	if artist == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing artist name"})
		return
	}

	report, err := s.runner.Run(r.Context(), creds, artist)
	if err != nil {
		s.writeRunError(w, err)
		return
	}

	s.recordRun(r.Context(), report)

	writeJSON(w, http.StatusOK, report)
}

// writeRunError maps aggregation failures onto status codes: rejected
// authentication is 401, the two expected-absence checkpoints are 404,
// and everything else is reported generically.
func (s *Server) writeRunError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, spotify.ErrAuthFailed):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	case errors.Is(err, analytics.ErrArtistNotFound),
		errors.Is(err, analytics.ErrNoAlbums):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		s.logger.Error().Err(err).Msg("Analytics run failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func (s *Server) recordRun(ctx context.Context, report *analytics.Report) {
	if s.recorder == nil {
		return
	}

	run := history.Run{
		Artist:     report.Artist.Name,
		Followers:  report.Artist.Followers,
		Popularity: report.Artist.Popularity,
	}
	if report.RandomArtist != nil {
		run.RandomArtist = report.RandomArtist.Name
	}

	if _, err := s.recorder.Record(ctx, run); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to record run history")
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
