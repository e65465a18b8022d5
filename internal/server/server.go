// Package server exposes the flashcard pipeline over a small HTTP API. Deck
// builds run synchronously: the response arrives when the deck is done.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrasedeck/phrasedeck/internal/config"
	"github.com/phrasedeck/phrasedeck/internal/processor"
)

// Server wires the HTTP handlers to the flashcard pipeline.
type Server struct {
	cfg    *config.Config
	proc   *processor.Processor
	logger *slog.Logger
}

// New creates a server around an assembled processor.
func New(cfg *config.Config, proc *processor.Processor, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{cfg: cfg, proc: proc, logger: logger}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/cards", s.handleCreateCard)
		r.Post("/decks", s.handleCreateDeck)
		r.Get("/decks/{name}/download", s.handleDownloadDeck)
	})

	return r
}

// ListenAndServe runs the HTTP server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Server.Address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	s.logger.Info("server listening", "address", s.cfg.Server.Address)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
