// Package server exposes portfolio extraction over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/ukaji3/pfstruct-go/internal/staging"
	"github.com/ukaji3/pfstruct-go/pkg/pfstruct"
)

// AnalysisPath is the upload form and analysis endpoint.
const AnalysisPath = "/port-folio/"

// Handler serves the portfolio analysis endpoints.
type Handler struct {
	repo           pfstruct.Repository
	area           staging.Area
	maxUploadBytes int64
	now            func() time.Time
}

// NewHandler creates a Handler persisting into repo and staging uploads in area.
func NewHandler(repo pfstruct.Repository, area staging.Area, maxUploadBytes int64) *Handler {
	return &Handler{
		repo:           repo,
		area:           area,
		maxUploadBytes: maxUploadBytes,
		now:            time.Now,
	}
}

// Routes returns the HTTP routes wrapped with request logging.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Hello)
	mux.HandleFunc("GET "+AnalysisPath+"{$}", h.ShowForm)
	mux.HandleFunc("POST "+AnalysisPath+"{$}", h.Analyze)
	return logRequests(mux)
}

// Hello answers the root path.
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Hello, World!"))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		log.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("Handled request")
	})
}
