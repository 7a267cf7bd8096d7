package server

import (
	"errors"
	"log/slog"

	"github.com/f5ops/mcp-bigip/internal/bigip"
	"github.com/f5ops/mcp-bigip/internal/instrumentation"
)

// Option is a functional option for configuring ServerContext.
type Option func(*ServerContext) error

// WithClient sets the BIG-IP client for the ServerContext.
func WithClient(client bigip.Client) Option {
	return func(sc *ServerContext) error {
		if client == nil {
			return ErrMissingClient
		}
		sc.client = client
		return nil
	}
}

// WithLogger sets the logger for the ServerContext.
func WithLogger(logger *slog.Logger) Option {
	return func(sc *ServerContext) error {
		if logger == nil {
			return ErrMissingLogger
		}
		sc.logger = logger
		return nil
	}
}

// WithConfig sets the configuration for the ServerContext.
func WithConfig(config *Config) Option {
	return func(sc *ServerContext) error {
		if config == nil {
			return ErrMissingConfig
		}
		sc.config = config.Clone()
		return nil
	}
}

// WithMetrics sets the metrics recorder for the ServerContext.
func WithMetrics(metrics *instrumentation.Metrics) Option {
	return func(sc *ServerContext) error {
		sc.metrics = metrics
		return nil
	}
}

// WithReadOnlyMode enables read-only mode with an optional allow list of
// mutating operations that stay permitted.
func WithReadOnlyMode(allowedOperations []string) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.ReadOnlyMode = true
		if allowedOperations != nil {
			sc.config.AllowedOperations = make([]string, len(allowedOperations))
			copy(sc.config.AllowedOperations, allowedOperations)
		}
		return nil
	}
}

// Error definitions for ServerContext validation.
var (
	ErrMissingClient = errors.New("BIG-IP client is required")
	ErrMissingLogger = errors.New("logger is required")
	ErrMissingConfig = errors.New("configuration is required")
)
