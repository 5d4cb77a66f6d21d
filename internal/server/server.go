// Package server exposes the chart pipeline over HTTP.
//
// The API is intentionally small: POST /api/render accepts pipeline
// options and returns either the computed result as JSON or a rendered
// artifact, selected by the requested format. The server shares its
// Runner, so the cache is shared across requests.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pieforge/pieforge/pkg/buildinfo"
	"github.com/pieforge/pieforge/pkg/errors"
	"github.com/pieforge/pieforge/pkg/pipeline"
)

// Server wraps the pipeline runner with an HTTP API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router *chi.Mux
}

// New creates a server around an existing runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		logger: logger,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))

	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/version", s.handleVersion)
	s.router.Post("/api/render", s.handleRender)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the server on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("listening", "addr", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
	})
}

// renderRequest is the body of POST /api/render: pipeline options plus the
// response format. An empty format returns the full result as JSON.
type renderRequest struct {
	pipeline.Options
	// Format selects the response body: "" or "json" for the computed
	// result, "svg" for the rendered image.
	Format string `json:"format,omitempty"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode request"))
		return
	}

	opts := req.Options
	opts.Logger = s.logger
	if req.Format != "" && req.Format != pipeline.FormatJSON {
		opts.Formats = []string{req.Format}
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	if req.Format == pipeline.FormatSVG {
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("ETag", fmt.Sprintf("%q", result.ResultHash))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[pipeline.FormatSVG])
		return
	}

	w.Header().Set("ETag", fmt.Sprintf("%q", result.ResultHash))
	writeJSON(w, http.StatusOK, result)
}

// statusFor maps structured error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInternal:
		return http.StatusInternalServerError
	case "":
		return http.StatusInternalServerError
	default:
		// All validation codes are client errors.
		return http.StatusBadRequest
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
