// Package server provides the HTTP API for erabu.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/erabu/internal/catalog"
	"github.com/hyperjump/erabu/internal/config"
	"github.com/hyperjump/erabu/internal/selector"
	"github.com/hyperjump/erabu/internal/source"
	"go.uber.org/zap"
)

// CatalogReloader reloads the catalog from its configured source.
type CatalogReloader interface {
	Reload() (*source.Report, error)
}

// Server is the HTTP server for the erabu API.
type Server struct {
	selector *selector.Selector
	store    *catalog.Store
	reloader CatalogReloader // optional; nil disables the reload endpoint
	config   *config.ServerConfig
	logger   *zap.Logger
	server   *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	sel *selector.Selector,
	store *catalog.Store,
	reloader CatalogReloader,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		selector: sel,
		store:    store,
		reloader: reloader,
		config:   cfg,
		logger:   logger,
	}
}

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/select", s.handleSelect)
		r.Get("/products", s.handleProducts)
		r.Get("/products/{id}/similar", s.handleSimilar)
		r.Get("/stats", s.handleStats)
		r.Post("/catalog/reload", s.handleReload)
	})
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
