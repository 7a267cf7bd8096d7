// Package server provides the dependency container shared by all MCP tool
// handlers.
package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/f5ops/mcp-bigip/internal/bigip"
	"github.com/f5ops/mcp-bigip/internal/instrumentation"
)

// ServerContext encapsulates the dependencies needed by the MCP server:
// the BIG-IP client, configuration, logger, and metrics. It is constructed
// once per process and handed to every tool registration.
type ServerContext struct {
	client  bigip.Client
	logger  *slog.Logger
	config  *Config
	metrics *instrumentation.Metrics

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a ServerContext with defaults applied, then the
// given functional options. A BIG-IP client is required.
func NewServerContext(ctx context.Context, opts ...Option) (*ServerContext, error) {
	serverCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:    serverCtx,
		cancel: cancel,
		config: NewDefaultConfig(),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(sc); err != nil {
			cancel()
			return nil, err
		}
	}

	if err := sc.validate(); err != nil {
		cancel()
		return nil, err
	}
	return sc, nil
}

// Context returns the server context for cancellation and deadlines.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Client returns the BIG-IP client.
func (sc *ServerContext) Client() bigip.Client {
	return sc.client
}

// Logger returns the structured logger.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// Config returns the server configuration.
func (sc *ServerContext) Config() *Config {
	return sc.config
}

// Metrics returns the metrics recorder; may be nil when metrics are disabled.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

// Shutdown cancels the server context. Safe to call more than once.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}
	sc.logger.Info("shutting down server context")
	if sc.cancel != nil {
		sc.cancel()
	}
	sc.shutdown = true
	return nil
}

// IsShutdown reports whether Shutdown has been called.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

func (sc *ServerContext) validate() error {
	if sc.client == nil {
		return ErrMissingClient
	}
	if sc.logger == nil {
		return ErrMissingLogger
	}
	if sc.config == nil {
		return ErrMissingConfig
	}
	return nil
}

// Config holds the server-level (not device-level) configuration.
type Config struct {
	ServerName string `json:"serverName"`
	Version    string `json:"version"`

	// ReadOnlyMode blocks every mutating tool except those listed in
	// AllowedOperations. Off by default: rule management is this server's
	// purpose, and the flag exists for audit-only deployments.
	ReadOnlyMode      bool     `json:"readOnlyMode"`
	AllowedOperations []string `json:"allowedOperations"`

	LogLevel  string `json:"logLevel"`
	LogFormat string `json:"logFormat"`
}

// NewDefaultConfig creates a configuration with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		ServerName: "mcp-bigip",
		Version:    "0.1.0",
		LogLevel:   "info",
		LogFormat:  "json",
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	if c.AllowedOperations != nil {
		clone.AllowedOperations = make([]string, len(c.AllowedOperations))
		copy(clone.AllowedOperations, c.AllowedOperations)
	}
	return &clone
}
