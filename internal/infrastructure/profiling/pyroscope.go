// Package profiling wires continuous profiling (Pyroscope) and the
// pprof HTTP handlers.
package profiling

import (
	"fmt"
	"runtime"

	"github.com/grafana/pyroscope-go"
	"github.com/richiesure/day3-docker-ecs-deployment/internal/infrastructure/logger"
)

// PyroscopeConfig configures StartPyroscope.
type PyroscopeConfig struct {
	Enabled     bool
	ServiceName string
	ServerURL   string
	Environment string
	Version     string
	Hostname    string
}

// PyroscopeProfiler holds the Pyroscope profiler instance.
type PyroscopeProfiler struct {
	profiler *pyroscope.Profiler
}

// StartPyroscope starts continuous profiling. It returns a nil profiler
// and nil error when profiling is disabled.
func StartPyroscope(cfg PyroscopeConfig, log logger.Logger) (*PyroscopeProfiler, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	pcfg := pyroscope.Config{
		ApplicationName: cfg.ServiceName,
		ServerAddress:   cfg.ServerURL,
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
		Tags: map[string]string{
			"environment": cfg.Environment,
			"version":     cfg.Version,
			"hostname":    cfg.Hostname,
			"go_version":  runtime.Version(),
		},
	}

	profiler, err := pyroscope.Start(pcfg)
	if err != nil {
		return nil, fmt.Errorf("start pyroscope profiler: %w", err)
	}

	log.Debug("Pyroscope continuous profiling started",
		logger.String("application", pcfg.ApplicationName),
		logger.String("server", cfg.ServerURL),
		logger.String("environment", cfg.Environment),
	)

	return &PyroscopeProfiler{profiler: profiler}, nil
}

// Stop stops the profiler. Safe on a nil receiver.
func (p *PyroscopeProfiler) Stop() error {
	if p == nil || p.profiler == nil {
		return nil
	}
	return p.profiler.Stop()
}
