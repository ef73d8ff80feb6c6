// Package server serves rendered form views over HTTP for local previews.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/goliatone/go-formview/pkg/orchestrator"
	"github.com/goliatone/go-formview/pkg/render"
	"github.com/goliatone/go-formview/pkg/view"
)

// Server renders a cached schema/data pair on every request.
type Server struct {
	orch   *orchestrator.Orchestrator
	base   orchestrator.Request
	logger *slog.Logger

	mu       sync.RWMutex
	resolved *orchestrator.Request
}

// New returns a Server rendering base. The schema and data sources are
// resolved lazily on the first request or by Reload.
func New(orch *orchestrator.Orchestrator, base orchestrator.Request, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{orch: orch, base: base, logger: logger}
}

// Reload resolves the sources again. On failure the previous inputs stay in
// use so a half-saved file does not take the preview down.
func (s *Server) Reload(ctx context.Context) error {
	resolved, err := s.orch.Resolve(ctx, s.base)
	if err != nil {
		return fmt.Errorf("server: reload: %w", err)
	}

	s.mu.Lock()
	s.resolved = &resolved
	s.mu.Unlock()

	s.logger.Info("server: inputs reloaded",
		slog.Int("top_level_nodes", len(resolved.Form.Keys())))
	return nil
}

func (s *Server) request(ctx context.Context) (orchestrator.Request, error) {
	s.mu.RLock()
	cached := s.resolved
	s.mu.RUnlock()
	if cached != nil {
		return *cached, nil
	}
	if err := s.Reload(ctx); err != nil {
		return orchestrator.Request{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.resolved, nil
}

// Router builds the chi router exposing the preview endpoints.
//
//	GET /           rendered page (?mode=all|conditional, ?renderer=html|text|json)
//	GET /page.json  rendered page as JSON (?mode=)
//	GET /healthz    liveness probe
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handleHealth)
	r.Get("/", s.handlePage)
	r.Get("/page.json", s.handlePageJSON)
	return r
}

// HTTPServer wraps Router in an http.Server listening on addr.
func (s *Server) HTTPServer(addr string, readTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: readTimeout,
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, r.URL.Query().Get("renderer"))
}

func (s *Server) handlePageJSON(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, "json")
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request, rendererName string) {
	ctx := r.Context()

	req, err := s.request(ctx)
	if err != nil {
		s.logger.Error("server: resolve inputs", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}

	if raw := r.URL.Query().Get("mode"); raw != "" {
		req.Mode = view.ParseMode(raw)
	}
	req.Renderer = rendererName

	result, err := s.orch.Execute(ctx, req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, render.ErrRendererNotFound) {
			status = http.StatusBadRequest
		}
		s.logger.Warn("server: render failed", slog.String("error", err.Error()))
		writeJSON(w, status, errorBody(err.Error()))
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("X-Formview-Hidden", fmt.Sprint(len(result.Page.Hidden)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Output)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errResponse struct {
	Error string `json:"error"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}
