// Package diagnostics runs the operator-facing side listener. It serves
// Prometheus metrics, runtime memory stats and pprof on a separate address
// (localhost by default) so the public listener keeps its two responses.
package diagnostics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/richiesure/day3-docker-ecs-deployment/internal/infrastructure/logger"
	"github.com/richiesure/day3-docker-ecs-deployment/internal/infrastructure/monitoring"
	"github.com/richiesure/day3-docker-ecs-deployment/internal/infrastructure/profiling"
)

const (
	readHeaderTimeout = 5 * time.Second
	// pprof CPU profiles stream for 30s by default.
	writeTimeout = 60 * time.Second
)

// Server is the diagnostics HTTP server.
type Server struct {
	server *http.Server
	logger logger.Logger
}

// NewServer creates a diagnostics server on addr. metrics serves /metrics.
func NewServer(addr string, metrics http.Handler, log logger.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics)
	mux.HandleFunc("/health/memory", monitoring.MemoryHealthHandler)
	profiling.RegisterPprof(mux)

	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: readHeaderTimeout,
			WriteTimeout:      writeTimeout,
		},
		logger: log,
	}
}

// Handler returns the diagnostics mux.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start binds the listener and serves in the background. Bind errors are
// returned; later serve errors are logged.
func (s *Server) Start() (net.Addr, error) {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", s.server.Addr, err)
	}

	s.logger.Debug("Diagnostics server listening",
		logger.String("address", ln.Addr().String()),
	)

	go func() {
		if serveErr := s.server.Serve(ln); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			s.logger.Error("Diagnostics server error", logger.Error(serveErr))
		}
	}()

	return ln.Addr(), nil
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("diagnostics shutdown: %w", err)
	}
	return nil
}
