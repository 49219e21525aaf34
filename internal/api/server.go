// Package api implements the HTTP API for catalog searches.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"becat/internal/auth"
	"becat/internal/catalog"
	"becat/internal/config"
	"becat/internal/history"
	"becat/internal/logging"
)

// Searcher runs catalog searches. *catalog.Service implements it.
type Searcher interface {
	Search(ctx context.Context, req catalog.SearchRequest) (*catalog.Outcome, error)
}

// BinaryResolver reports which shell binary an invocation would use.
// *bemcli.Runner implements it.
type BinaryResolver interface {
	ResolveBinary() (string, error)
}

// Server represents the HTTP API server
type Server struct {
	router   *http.ServeMux
	server   *http.Server
	addr     string
	logger   *logging.Logger
	searcher Searcher
	resolver BinaryResolver
	store    *history.Store
	verifier *auth.Verifier
	cfg      *config.Config
	started  time.Time
}

// Options carries the optional collaborators for a server
type Options struct {
	// Resolver powers the /status shell check; nil disables it
	Resolver BinaryResolver
	// Store journals searches; nil disables the journal and /history
	Store *history.Store
	// Verifier guards endpoints; nil means no authentication
	Verifier *auth.Verifier
}

// NewServer creates a new HTTP server instance
func NewServer(addr string, searcher Searcher, cfg *config.Config, logger *logging.Logger, opts Options) *Server {
	s := &Server{
		addr:     addr,
		logger:   logger,
		searcher: searcher,
		resolver: opts.Resolver,
		store:    opts.Store,
		verifier: opts.Verifier,
		cfg:      cfg,
		router:   http.NewServeMux(),
		started:  time.Now(),
	}

	// Register routes
	s.registerRoutes()

	// Create HTTP server with configured router and middleware
	handler := s.applyMiddleware(s.router)
	s.server = &http.Server{
		Addr:    addr,
		Handler: handler,
		// No WriteTimeout: a catalog search legitimately blocks for the full
		// shell timeout, which the invoker bounds itself
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", map[string]interface{}{
		"addr": s.addr,
	})

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server", nil)

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.logger.Info("Server shut down successfully", nil)
	return nil
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

// applyMiddleware wraps the handler with middleware in the correct order
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	// Apply middleware in reverse order (last one wraps first)
	handler = AuthMiddleware(s.verifier)(handler)
	handler = RecoveryMiddleware(s.logger)(handler)
	handler = LoggingMiddleware(s.logger)(handler)
	handler = RequestIDMiddleware()(handler)
	handler = CORSMiddleware()(handler)
	return handler
}
