package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/renix-codex/posts/internal/api"
)

type Server struct {
	api    *api.API
	router *mux.Router
	log    zerolog.Logger
}

func New(a *api.API, log zerolog.Logger) *Server {
	s := &Server{api: a, router: mux.NewRouter(), log: log}
	s.routes()
	return s
}

// Handler returns the router wrapped in request logging. The wrapper sits
// outside mux so unmatched routes (404, 405) are logged too.
func (s *Server) Handler() http.Handler { return s.logRequests(s.router) }

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
