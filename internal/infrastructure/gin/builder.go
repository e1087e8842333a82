package gin

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/richiesure/day3-docker-ecs-deployment/internal/infrastructure/logger"
)

// ServerBuilder provides a fluent API for building HTTP servers.
type ServerBuilder struct {
	config      *Config
	logger      logger.Logger
	middleware  []gin.HandlerFunc
	setupRoutes func(*gin.Engine)
	fallback    gin.HandlerFunc
}

// NewServerBuilder creates a new server builder with the given configuration.
func NewServerBuilder(serviceName string, port int) *ServerBuilder {
	return &ServerBuilder{
		config: NewConfig(serviceName, port),
	}
}

// WithLogger sets the logger.
func (b *ServerBuilder) WithLogger(log logger.Logger) *ServerBuilder {
	b.logger = log
	return b
}

// WithDebug enables or disables debug mode.
func (b *ServerBuilder) WithDebug(debug bool) *ServerBuilder {
	b.config.Debug = debug
	return b
}

// WithVersion sets the service version.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.config.ServiceVersion = version
	return b
}

// WithHost sets the bind interface.
func (b *ServerBuilder) WithHost(host string) *ServerBuilder {
	b.config.Host = host
	return b
}

// WithTimeouts sets all timeout values for the HTTP server.
func (b *ServerBuilder) WithTimeouts(read, write, idle time.Duration) *ServerBuilder {
	b.config.ReadTimeout = read
	b.config.WriteTimeout = write
	b.config.IdleTimeout = idle
	return b
}

// WithShutdownTimeout sets how long Shutdown waits for in-flight requests.
func (b *ServerBuilder) WithShutdownTimeout(d time.Duration) *ServerBuilder {
	b.config.ShutdownTimeout = d
	return b
}

// WithMiddleware appends middleware that runs after recovery.
func (b *ServerBuilder) WithMiddleware(mw ...gin.HandlerFunc) *ServerBuilder {
	b.middleware = append(b.middleware, mw...)
	return b
}

// WithRoutes sets the route setup function.
func (b *ServerBuilder) WithRoutes(setupRoutes func(*gin.Engine)) *ServerBuilder {
	b.setupRoutes = setupRoutes
	return b
}

// WithFallback sets the handler for every request no route matches.
// Its response status is whatever it writes; Gin's preset 404 does not leak.
func (b *ServerBuilder) WithFallback(h gin.HandlerFunc) *ServerBuilder {
	b.fallback = h
	return b
}

// Build creates the server with all configured options.
func (b *ServerBuilder) Build() *Server {
	if b.logger == nil {
		b.logger = logger.Must(logger.Config{
			Level:       "info",
			Development: b.config.Debug,
		})
	}

	setup := func(router *gin.Engine) {
		router.Use(b.middleware...)

		if b.setupRoutes != nil {
			b.setupRoutes(router)
		}

		if b.fallback != nil {
			router.NoRoute(b.fallback)
		}
	}

	return NewServer(b.config, b.logger, setup)
}
