package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) routes() {
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/posts", s.handleGetPosts).Methods(http.MethodGet)
	s.router.HandleFunc("/posts/recent", s.handleRecentPosts).Methods(http.MethodGet)
	s.router.HandleFunc("/ingest", s.handleIngest).Methods(http.MethodPost)
	s.router.HandleFunc("/upstream/posts/{id}", s.handleUpstreamPost).Methods(http.MethodGet)
	s.router.HandleFunc("/upstream/users/{id}/posts", s.handleUpstreamUserPosts).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
}
