package config

import "fmt"

const (
	minPort = 1
	maxPort = 65535
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateRequired checks if a string field is not empty.
func ValidateRequired(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

// ValidatePort checks if a port number is valid.
func ValidatePort(field string, port int) error {
	if port < minPort || port > maxPort {
		return &ValidationError{Field: field, Message: "must be between 1 and 65535"}
	}
	return nil
}

// ValidateLogLevel checks if a log level is valid.
func ValidateLogLevel(field, level string) error {
	switch level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return &ValidationError{Field: field, Message: "must be one of: debug, info, warn, error"}
	}
}

// ValidateLogFormat checks if a log format is valid.
func ValidateLogFormat(field, format string) error {
	switch format {
	case "json", "console":
		return nil
	default:
		return &ValidationError{Field: field, Message: "must be one of: json, console"}
	}
}
