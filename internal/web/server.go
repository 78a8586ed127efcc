package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/reelbase/reelbase/internal/config"
	"github.com/reelbase/reelbase/internal/database"
	"github.com/reelbase/reelbase/internal/stats"
	"github.com/reelbase/reelbase/internal/web/handlers"
	"github.com/reelbase/reelbase/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	db     *database.DB
	cfg    *config.Config
	router *chi.Mux
	stats  *stats.Collector
}

// NewServer creates a new web server
func NewServer(db *database.DB, statsCollector *stats.Collector, cfg *config.Config) *Server {
	s := &Server{
		db:     db,
		cfg:    cfg,
		router: chi.NewRouter(),
		stats:  statsCollector,
	}

	s.setupRoutes()

	return s
}

// Router returns the configured router; used by tests to drive requests
// without a listening socket
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	r := s.router

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	h := handlers.New(s.db, s.stats)

	r.Get("/healthz", h.Health)
	r.Get("/api/stats", h.Stats)

	// Movie catalog endpoints. The /year and /genre prefixes are static
	// segments, so they are never captured by the {id} wildcard.
	r.Route(s.cfg.BasePath, func(r chi.Router) {
		r.Get("/", h.ListMovies)
		r.Get("/year/{year}", h.ListMoviesByYear)
		r.Get("/genre/{genre}", h.ListMoviesByGenre)
		r.Get("/{id}", h.GetMovie)
	})
}

// Start starts the web server and blocks until ctx is cancelled or the
// listener fails
func (s *Server) Start(ctx context.Context) error {
	var addr string
	if s.cfg.Bind != "" {
		addr = fmt.Sprintf("%s:%d", s.cfg.Bind, s.cfg.Port)
	} else {
		addr = fmt.Sprintf(":%d", s.cfg.Port)
	}

	server := &http.Server{
		Addr:    addr,
		Handler: s.router,
		// Chi middleware timeout (60s) protects request handling
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("base_path", s.cfg.BasePath).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}
