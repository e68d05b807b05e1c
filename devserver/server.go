// Package devserver is an in-memory posts backend for local development and
// end-to-end tests. It serves the same REST surface the client consumes.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/TanakaAkihiro0930/SocialEcho/devmode"
)

const maxUploadBytes = 10 << 20

// Server wires the store behind a mux router.
type Server struct {
	store  *Store
	secret []byte
	log    zerolog.Logger
	router *mux.Router
}

// Option configures a Server.
type Option func(*Server)

// WithSecret sets the HS256 signing secret. The dev secret is used otherwise.
func WithSecret(secret []byte) Option {
	return func(s *Server) {
		if len(secret) > 0 {
			s.secret = secret
		}
	}
}

// WithStore replaces the empty default store.
func WithStore(st *Store) Option {
	return func(s *Server) {
		if st != nil {
			s.store = st
		}
	}
}

// New builds a server and registers its routes.
func New(opts ...Option) *Server {
	s := &Server{
		store:  NewStore(),
		secret: []byte(devmode.SigningSecret),
		log:    log.With().Str("component", "devserver").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Store exposes the backing store.
func (s *Server) Store() *Store { return s.store }

// Secret returns the signing secret tokens must be issued with.
func (s *Server) Secret() []byte { return s.secret }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.instrument)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	posts := r.PathPrefix("/posts").Subrouter()
	posts.Use(s.requireAuth)

	// literal routes before {id}
	posts.HandleFunc("", s.handleCreatePost).Methods(http.MethodPost)
	posts.HandleFunc("", s.handleGetPosts).Methods(http.MethodGet)
	posts.HandleFunc("/saved", s.handleGetSaved).Methods(http.MethodGet)
	posts.HandleFunc("/{id}", s.handleGetCommunityPosts).Methods(http.MethodGet)
	posts.HandleFunc("/{id}", s.handleDeletePost).Methods(http.MethodDelete)
	posts.HandleFunc("/{id}/like", s.handleLike).Methods(http.MethodPatch)
	posts.HandleFunc("/{id}/unlike", s.handleUnlike).Methods(http.MethodPatch)
	posts.HandleFunc("/{id}/comment", s.handleAddComment).Methods(http.MethodPost)
	posts.HandleFunc("/{id}/comment", s.handleGetComments).Methods(http.MethodGet)
	posts.HandleFunc("/{id}/save", s.handleSave).Methods(http.MethodPatch)
	posts.HandleFunc("/{id}/unsave", s.handleUnsave).Methods(http.MethodPatch)
	posts.HandleFunc("/{id}/userPosts", s.handleGetPublicPosts).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return r
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("dev server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Info().Msg("dev server stopped")
	return nil
}
