package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/richiesure/day3-docker-ecs-deployment/internal/api"
	"github.com/richiesure/day3-docker-ecs-deployment/internal/config"
	"github.com/richiesure/day3-docker-ecs-deployment/internal/diagnostics"
	"github.com/richiesure/day3-docker-ecs-deployment/internal/handler"
	"github.com/richiesure/day3-docker-ecs-deployment/internal/hostinfo"
	infraconfig "github.com/richiesure/day3-docker-ecs-deployment/internal/infrastructure/config"
	"github.com/richiesure/day3-docker-ecs-deployment/internal/infrastructure/logger"
	"github.com/richiesure/day3-docker-ecs-deployment/internal/infrastructure/profiling"
	"github.com/richiesure/day3-docker-ecs-deployment/internal/telemetry"
)

const diagnosticsShutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	// Uptime counts from here.
	host := hostinfo.New()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	log, err := createLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	return runServer(context.Background(), cfg, log, host)
}

// loadConfig loads and validates configuration.
func loadConfig() (*config.Config, error) {
	configPath := infraconfig.GetConfigPath("config.yml")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}
	return cfg, nil
}

// createLogger creates a logger instance from configuration.
func createLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(logger.String("service", cfg.Service.Name)), nil
}

// runServer wires dependencies, binds the public listener and serves until
// a shutdown signal or ctx cancellation.
func runServer(ctx context.Context, cfg *config.Config, log logger.Logger, host *hostinfo.Provider) int {
	profiler, err := profiling.StartPyroscope(profiling.PyroscopeConfig{
		Enabled:     cfg.Profiling.Enabled,
		ServiceName: cfg.Service.Name,
		ServerURL:   cfg.Profiling.ServerURL,
		Environment: cfg.Profiling.Environment,
		Version:     cfg.Service.Version,
		Hostname:    host.Hostname(),
	}, log)
	if err != nil {
		log.Warn("Continuous profiling unavailable", logger.Error(err))
	}
	defer func() { _ = profiler.Stop() }()

	metrics := telemetry.NewMetrics(cfg.Service.Version, host)

	if cfg.Diagnostics.Enabled {
		diag, diagErr := startDiagnostics(cfg, metrics, log)
		if diagErr != nil {
			log.Error("Failed to start diagnostics server", logger.Error(diagErr))
			return 1
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), diagnosticsShutdownTimeout)
			defer cancel()
			_ = diag.Shutdown(shutdownCtx)
		}()
	}

	pageHandler := handler.NewPageHandler(host, cfg.Service)
	server := api.NewServer(pageHandler, metrics, cfg, log)

	if _, listenErr := server.Listen(); listenErr != nil {
		log.Error("Failed to bind", logger.Error(listenErr), logger.Int("port", cfg.Service.Port))
		return 1
	}

	logStartup(log, cfg.Service.Port, host.Hostname(), cfg.Service.Version)

	if runErr := server.RunWithGracefulShutdown(ctx); runErr != nil {
		log.Error("Server error", logger.Error(runErr))
		return 1
	}

	return 0
}

// startDiagnostics binds the side listener for metrics, memory and pprof.
func startDiagnostics(cfg *config.Config, metrics *telemetry.Metrics, log logger.Logger) (*diagnostics.Server, error) {
	addr := net.JoinHostPort(cfg.Diagnostics.Host, strconv.Itoa(cfg.Diagnostics.Port))
	diag := diagnostics.NewServer(addr, metrics.Handler(), log)
	if _, err := diag.Start(); err != nil {
		return nil, err
	}
	return diag, nil
}

// logStartup writes the three startup lines: port, hostname, version.
func logStartup(log logger.Logger, port int, hostname, version string) {
	log.Info("Server running on port "+strconv.Itoa(port), logger.Int("port", port))
	log.Info("Container ID: "+hostname, logger.String("hostname", hostname))
	log.Info("Version: "+version, logger.String("version", version))
}
