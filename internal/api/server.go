package api

import (
	"time"

	"github.com/richiesure/day3-docker-ecs-deployment/internal/config"
	"github.com/richiesure/day3-docker-ecs-deployment/internal/handler"
	infragin "github.com/richiesure/day3-docker-ecs-deployment/internal/infrastructure/gin"
	infralogger "github.com/richiesure/day3-docker-ecs-deployment/internal/infrastructure/logger"
	"github.com/richiesure/day3-docker-ecs-deployment/internal/telemetry"
)

const (
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 30 * time.Second
)

// NewServer creates the public HTTP server. It binds all interfaces on the
// configured service port and sends every request to pageHandler.
func NewServer(
	pageHandler *handler.PageHandler,
	metrics *telemetry.Metrics,
	cfg *config.Config,
	log infralogger.Logger,
) *infragin.Server {
	b := infragin.NewServerBuilder(cfg.Service.Name, cfg.Service.Port).
		WithLogger(log).
		WithDebug(cfg.Service.Debug).
		WithVersion(cfg.Service.Version).
		WithTimeouts(defaultReadTimeout, defaultWriteTimeout, defaultIdleTimeout).
		WithShutdownTimeout(defaultShutdownTimeout).
		WithFallback(pageHandler.Handle)

	if metrics != nil {
		b = b.WithMiddleware(metrics.Middleware(handler.Route))
	}

	return b.Build()
}
