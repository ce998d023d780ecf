// Package stubapi is an in-memory double of the ebuy REST API. Tests mount
// its router directly with httptest; cmd/stubapi serves it for front-end
// development. It is not the production service.
package stubapi

import (
	"context"
	"log"
	"net/http"
	"time"
)

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

type Options struct {
	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigins []string
}

// New builds a Server around a seeded or empty Store.
func New(addr string, logger *log.Logger, store *Store, opts Options) *Server {
	router := buildRouter(logger, store, newTokenManager(opts.JWTSecret, opts.TokenTTL), opts.CORSOrigins)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
	}
}

// Handler exposes the router for in-process tests.
func Handler(logger *log.Logger, store *Store, opts Options) http.Handler {
	return buildRouter(logger, store, newTokenManager(opts.JWTSecret, opts.TokenTTL), opts.CORSOrigins)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
