package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
	"github.com/custodia-labs/legalchunk/internal/core/ports/driving"
	"github.com/custodia-labs/legalchunk/internal/logger"
)

// ErrMissingChunkingService is returned when the chunking service is not provided.
var ErrMissingChunkingService = errors.New("httpapi: chunking service is required")

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// Ports aggregates the driving ports the HTTP API serves.
type Ports struct {
	// Chunking runs the chunking pipeline.
	Chunking driving.ChunkingService

	// History exposes the run journal. Optional.
	History driving.HistoryService
}

// Server serves the chunking API.
type Server struct {
	ports    *Ports
	settings domain.ServerSettings
	version  string
	now      func() time.Time

	router   chi.Router
	validate *validator.Validate
	metrics  *metrics
}

// Option configures a Server.
type Option func(*Server)

// WithVersion sets the version reported by GET /.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// WithClock sets the clock used by GET /health.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// NewServer builds the router. Zero settings fields take their defaults.
func NewServer(ports *Ports, settings domain.ServerSettings, opts ...Option) (*Server, error) {
	if ports == nil || ports.Chunking == nil {
		return nil, ErrMissingChunkingService
	}

	defaults := domain.DefaultAppSettings().Server
	if settings.Addr == "" {
		settings.Addr = defaults.Addr
	}
	if settings.MaxBodyBytes <= 0 {
		settings.MaxBodyBytes = defaults.MaxBodyBytes
	}

	s := &Server{
		ports:    ports,
		settings: settings,
		version:  "dev",
		now:      time.Now,
		validate: validator.New(),
		metrics:  newMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	var limiter *rate.Limiter
	if s.settings.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(s.settings.RateLimit), max(s.settings.Burst, 1))
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(cors)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	r.Group(func(r chi.Router) {
		r.Use(rateLimit(limiter))
		r.Post("/chunk", s.handleChunk)
		r.Get("/document-types", s.handleDocumentTypes)
		r.Get("/runs", s.handleRuns)
		r.Get("/runs/{id}", s.handleRun)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.settings.Addr
}

// Run listens on the configured address until the context is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.settings.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", s.settings.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	logger.Info("http server stopped")
	return nil
}
