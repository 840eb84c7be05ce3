// Package server implements the stand-in REST collaborator: the same
// /<collection> contract the client speaks, backed by a UserStore.  It
// exists so the interactive session and the users subcommands can be
// exercised without a third-party endpoint.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/userdesk/userdesk/internal/store"
)

// Config carries everything New needs.  Zero values fall back to
// sensible defaults except Store, which is required.
type Config struct {
	// Addr is the listen address, "127.0.0.1:8080" when empty.
	Addr string
	// Collection is the path segment records live under, "users"
	// when empty.
	Collection string
	// Store backs all five operations.
	Store store.UserStore
	// Logger receives one line per request.  Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Server serves the user collection over HTTP.
type Server struct {
	store      store.UserStore
	logger     *slog.Logger
	collection string
	httpSrv    *http.Server
}

// New wires the routes for the configured collection and returns a
// server ready to Run.
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("server: a store is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8080"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	collection := strings.Trim(cfg.Collection, "/")
	if collection == "" {
		collection = "users"
	}

	s := &Server{
		store:      cfg.Store,
		logger:     cfg.Logger,
		collection: collection,
	}

	mux := http.NewServeMux()
	base := "/" + collection
	mux.HandleFunc("GET "+base, s.handleList)
	mux.HandleFunc("POST "+base, s.handleCreate)
	mux.HandleFunc("GET "+base+"/{id}", s.handleGet)
	mux.HandleFunc("PUT "+base+"/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE "+base+"/{id}", s.handleDelete)

	s.httpSrv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           withRequestLog(cfg.Logger, mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// Handler exposes the routed handler, request logging included.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// Run listens on the configured address and serves until ctx is
// cancelled, then drains in-flight requests before returning.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.httpSrv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpSrv.Addr, err)
	}
	s.logger.Info("serving collection",
		"addr", lis.Addr().String(),
		"collection", "/"+s.collection,
	)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpSrv.Serve(lis)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.logger.Info("server stopped")
		return nil
	}
}
