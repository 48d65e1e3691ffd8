// Package server exposes the converter over a small JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/BartekS5/uilm/internal/config"
	"github.com/BartekS5/uilm/internal/state"
	"github.com/BartekS5/uilm/pkg/logger"
	"github.com/BartekS5/uilm/pkg/processor"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 30 * time.Second
	bodyOverhead    = 64 * 1024
)

type Options struct {
	MaxFileBytes   int64
	RateLimitRPS   float64
	RateLimitBurst int
	Processor      *processor.Processor
}

// Server holds the dependencies shared by all handlers.
type Server struct {
	store        state.Store
	processor    *processor.Processor
	maxBodyBytes int64
	rps          float64
	burst        int
}

func New(store state.Store, opts Options) *Server {
	if opts.MaxFileBytes <= 0 {
		opts.MaxFileBytes = config.DefaultMaxFileBytes
	}
	if opts.RateLimitRPS <= 0 {
		opts.RateLimitRPS = 10
	}
	if opts.RateLimitBurst <= 0 {
		opts.RateLimitBurst = 20
	}
	if opts.Processor == nil {
		opts.Processor = processor.New()
	}
	// Four language documents plus the metadata fields.
	return &Server{
		store:        store,
		processor:    opts.Processor,
		maxBodyBytes: 4*opts.MaxFileBytes + bodyOverhead,
		rps:          opts.RateLimitRPS,
		burst:        opts.RateLimitBurst,
	}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestLogger(&chimw.DefaultLogFormatter{
		Logger:  log.New(logger.Writer(), "HTTP: ", log.Ldate|log.Ltime),
		NoColor: true,
	}))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rateLimit(s.rps, s.burst))

		r.Post("/validate", s.handleValidate)
		r.Post("/generate", s.handleGenerate)
		r.Post("/format", s.handleFormat)

		r.Get("/state", s.handleLoadState)
		r.Put("/state", s.handleSaveState)
		r.Delete("/state", s.handleClearState)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeNotFound(w, "Resource not found")
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
