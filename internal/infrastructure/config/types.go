package config

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// SetDefaults applies default values for LoggingConfig.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "json"
	}
}

// Validate validates a LoggingConfig.
func (c *LoggingConfig) Validate() error {
	if err := ValidateLogLevel("logging.level", c.Level); err != nil {
		return err
	}
	return ValidateLogFormat("logging.format", c.Format)
}
