package observability

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HealthStatus struct {
	Status     string `json:"status"`
	Files      int    `json:"files"`
	Violations int    `json:"violations"`
}

// Server exposes /metrics and /health. The health callback is polled
// per request.
type Server struct {
	addr   string
	health func() HealthStatus
	server *http.Server
}

func NewServer(addr string, health func() HealthStatus) *Server {
	return &Server{addr: addr, health: health}
}

func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status := s.health()
		w.Header().Set("Content-Type", "application/json")
		if status.Status != "up" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(status)
	})

	s.server = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	slog.Info("observability server starting", "addr", s.addr)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("observability server failed", "error", err)
		}
	}()

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
