// Package server implements the HTTP API for rendering soundings.
//
// Endpoints:
//
//	POST /v1/render                   render an inline sounding document
//	POST /v1/soundings                archive a sounding, returns its ID
//	GET  /v1/soundings/{id}           archived sounding metadata
//	GET  /v1/soundings/{id}/render    render an archived sounding
//	DELETE /v1/soundings/{id}         remove an archived sounding
//	GET  /healthz                     liveness probe
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aerolab/skewt/pkg/archive"
	"github.com/aerolab/skewt/pkg/config"
	"github.com/aerolab/skewt/pkg/pipeline"
)

// Server exposes the rendering pipeline and the sounding archive over HTTP.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
	runner     *pipeline.Runner
	store      archive.Store
	chart      config.ChartConfig
	archiveTTL time.Duration
}

// NewServer creates the HTTP server with all routes registered.
func NewServer(cfg *config.Config, runner *pipeline.Runner, store archive.Store, logger *log.Logger) *Server {
	s := &Server{
		logger:     logger,
		runner:     runner,
		store:      store,
		chart:      cfg.Chart,
		archiveTTL: cfg.Archive.TTL.Duration,
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Post("/soundings", s.handleCreateSounding)
		r.Get("/soundings/{id}", s.handleGetSounding)
		r.Get("/soundings/{id}/render", s.handleRenderSounding)
		r.Delete("/soundings/{id}", s.handleDeleteSounding)
	})

	s.httpServer = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
