package config

import (
	infraconfig "github.com/richiesure/day3-docker-ecs-deployment/internal/infrastructure/config"
)

// Default configuration values.
const (
	defaultServiceName     = "day3-docker-ecs"
	defaultServicePort     = 3000
	defaultVersion         = "1.0.0"
	defaultDiagnosticsHost = "localhost"
	defaultDiagnosticsPort = 6060
	defaultPyroscopeURL    = "http://pyroscope:4040"
	defaultPyroscopeEnv    = "development"
)

// Config holds the application configuration. It is built once at startup
// and treated as read-only afterwards.
type Config struct {
	Service     ServiceConfig             `yaml:"service"`
	Logging     infraconfig.LoggingConfig `yaml:"logging"`
	Diagnostics DiagnosticsConfig         `yaml:"diagnostics"`
	Profiling   ProfilingConfig           `yaml:"profiling"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `env:"APP_VERSION" yaml:"version"`
	Port    int    `env:"PORT"        yaml:"port"`
	Debug   bool   `env:"APP_DEBUG"   yaml:"debug"`
}

// DiagnosticsConfig configures the side listener serving metrics, memory
// stats and pprof.
type DiagnosticsConfig struct {
	Enabled bool   `env:"ENABLE_DIAGNOSTICS" yaml:"enabled"`
	Host    string `env:"DIAGNOSTICS_HOST"   yaml:"host"`
	Port    int    `env:"DIAGNOSTICS_PORT"   yaml:"port"`
}

// ProfilingConfig configures Pyroscope continuous profiling.
type ProfilingConfig struct {
	Enabled     bool   `env:"ENABLE_CONTINUOUS_PROFILING" yaml:"enabled"`
	ServerURL   string `env:"PYROSCOPE_SERVER_URL"        yaml:"server_url"`
	Environment string `env:"PYROSCOPE_ENVIRONMENT"       yaml:"environment"`
}

// Load loads configuration from the specified path. The file is optional.
func Load(path string) (*Config, error) {
	return infraconfig.LoadWithDefaults[Config](path, setDefaults)
}

func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	cfg.Logging.SetDefaults()
	setDiagnosticsDefaults(&cfg.Diagnostics)
	setProfilingDefaults(&cfg.Profiling)
}

func setServiceDefaults(svc *ServiceConfig) {
	if svc.Name == "" {
		svc.Name = defaultServiceName
	}
	if svc.Version == "" {
		svc.Version = defaultVersion
	}
	if svc.Port == 0 {
		svc.Port = defaultServicePort
	}
}

func setDiagnosticsDefaults(d *DiagnosticsConfig) {
	if d.Host == "" {
		d.Host = defaultDiagnosticsHost
	}
	if d.Port == 0 {
		d.Port = defaultDiagnosticsPort
	}
}

func setProfilingDefaults(p *ProfilingConfig) {
	if p.ServerURL == "" {
		p.ServerURL = defaultPyroscopeURL
	}
	if p.Environment == "" {
		p.Environment = defaultPyroscopeEnv
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := infraconfig.ValidatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if err := infraconfig.ValidateRequired("service.version", c.Service.Version); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if !c.Diagnostics.Enabled {
		return nil
	}
	if err := infraconfig.ValidatePort("diagnostics.port", c.Diagnostics.Port); err != nil {
		return err
	}
	if c.Diagnostics.Port == c.Service.Port {
		return &infraconfig.ValidationError{
			Field:   "diagnostics.port",
			Message: "must differ from service.port",
		}
	}
	return nil
}
