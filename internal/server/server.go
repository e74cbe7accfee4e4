// Package server provides the HTTP API of the CV orchestrator.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/cv-orchestrator/internal/config"
	"github.com/jonathan/cv-orchestrator/internal/types"
)

// Generator produces a CV generation outcome for a validated request.
type Generator interface {
	GenerateCV(ctx context.Context, req *types.GenerateCVRequest) *types.GenerateCVResponse
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	settings   *config.Settings
	svc        Generator
	logger     *zap.SugaredLogger
}

// Config holds server configuration
type Config struct {
	Port int
}

// New creates a new server instance
func New(cfg Config, settings *config.Settings, svc Generator, logger *zap.SugaredLogger) *Server {
	s := &Server{
		settings: settings,
		svc:      svc,
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /health", s.handleHealth)

	// REST resource endpoint; the orchestrator path is a deprecated alias.
	mux.HandleFunc("POST /api/v1/cv-generations", s.handleCreateCVGeneration)
	mux.HandleFunc("POST /v1/orchestrator/generate-cv", s.handleGenerateCVAlias)

	s.mux = mux
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.withCorrelationID(s.withRecover(s.withAPIVersion(s.withLogging(s.mux))))
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Infow("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatalw("server error", "error", err)
		}
	}()

	<-stop
	s.logger.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Infow("server stopped")
	return nil
}
