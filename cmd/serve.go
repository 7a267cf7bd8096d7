package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/f5ops/mcp-bigip/internal/bigip"
	"github.com/f5ops/mcp-bigip/internal/instrumentation"
	"github.com/f5ops/mcp-bigip/internal/logging"
	"github.com/f5ops/mcp-bigip/internal/server"
	"github.com/f5ops/mcp-bigip/internal/tools/datagroup"
	"github.com/f5ops/mcp-bigip/internal/tools/irule"
	"github.com/f5ops/mcp-bigip/internal/tools/logs"
	"github.com/f5ops/mcp-bigip/internal/tools/pool"
	"github.com/f5ops/mcp-bigip/internal/tools/system"
	"github.com/f5ops/mcp-bigip/internal/tools/virtual"
)

// Transport type constants for the MCP server.
const (
	transportStdio          = "stdio"
	transportSSE            = "sse"
	transportStreamableHTTP = "streamable-http"
)

// serverName identifies this server to MCP clients.
const serverName = "mcp-bigip"

func newServeCmd() *cobra.Command {
	config := ServeConfig{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP BIG-IP server",
		Long: `Start the MCP server that exposes BIG-IP management operations as tools.

The server connects to the BIG-IP iControl REST API using either a static
auth token or username/password credentials. Connection settings can come
from flags or from BIGIP_* environment variables; flags win.

Supports three transport types:
  - stdio: Standard input/output (default)
  - sse: Server-Sent Events over HTTP
  - streamable-http: Streamable HTTP transport`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.applyEnvironment(cmd.Flags().Changed("verify-ssl"))
			return runServe(config)
		},
	}

	// BIG-IP connection flags
	cmd.Flags().StringVar(&config.Host, "host", "", "BIG-IP management endpoint URL, e.g. https://bigip.example.com (env: BIGIP_HOST)")
	cmd.Flags().StringVar(&config.Token, "token", "", "Static iControl REST auth token (env: BIGIP_TOKEN)")
	cmd.Flags().StringVar(&config.Username, "username", "", "BIG-IP username for token exchange (env: BIGIP_USERNAME)")
	cmd.Flags().StringVar(&config.Password, "password", "", "BIG-IP password for token exchange (env: BIGIP_PASSWORD)")
	cmd.Flags().StringVar(&config.Partition, "partition", "", "Default partition for operations (env: BIGIP_PARTITION, default: Common)")
	cmd.Flags().StringVar(&config.LoginProvider, "login-provider", "", "Login provider for token exchange (env: BIGIP_LOGIN_PROVIDER, default: tmos)")
	cmd.Flags().BoolVar(&config.VerifySSL, "verify-ssl", true, "Verify the BIG-IP TLS certificate (env: BIGIP_VERIFY_SSL)")
	cmd.Flags().DurationVar(&config.Timeout, "timeout", bigip.DefaultTimeout, "Request timeout for iControl REST calls")
	cmd.Flags().IntVar(&config.MaxTailLines, "max-tail-lines", bigip.DefaultMaxTailLines, "Ceiling for log tail line counts")

	// Server behavior flags
	cmd.Flags().BoolVar(&config.ReadOnly, "read-only", false, "Reject mutating operations (create, update, delete, attach, detach)")
	cmd.Flags().StringSliceVar(&config.AllowedOperations, "allowed-operations", nil, "Mutating operations that stay permitted in read-only mode")
	cmd.Flags().StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, or error")
	cmd.Flags().StringVar(&config.LogFormat, "log-format", "json", "Log format: json or text")

	// Transport flags
	cmd.Flags().StringVar(&config.Transport, "transport", transportStdio, "Transport type: stdio, sse, or streamable-http")
	cmd.Flags().StringVar(&config.HTTPAddr, "http-addr", ":8080", "HTTP server address (for sse and streamable-http transports)")
	cmd.Flags().StringVar(&config.SSEEndpoint, "sse-endpoint", "/sse", "SSE endpoint path (for sse transport)")
	cmd.Flags().StringVar(&config.MessageEndpoint, "message-endpoint", "/message", "Message endpoint path (for sse transport)")
	cmd.Flags().StringVar(&config.HTTPEndpoint, "http-endpoint", "/mcp", "HTTP endpoint path (for streamable-http transport)")

	// Observability flags
	cmd.Flags().StringVar(&config.MetricsAddr, "metrics-addr", "", "Address for the Prometheus /metrics endpoint (disabled when empty)")
	cmd.Flags().BoolVar(&config.TraceEnabled, "trace", false, "Emit OpenTelemetry trace spans to stderr")

	return cmd
}

func runServe(config ServeConfig) error {
	logger := logging.New(config.LogLevel, config.LogFormat)

	bigipClient, err := bigip.NewClient(config.clientConfig(), bigip.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create BIG-IP client: %w", err)
	}

	// Setup graceful shutdown - listen for both SIGINT and SIGTERM
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if config.TraceEnabled {
		shutdownTracing, err := instrumentation.SetupTracing(shutdownCtx, serverName, rootCmd.Version)
		if err != nil {
			return fmt.Errorf("failed to set up tracing: %w", err)
		}
		defer func() {
			if shutdownErr := shutdownTracing(context.Background()); shutdownErr != nil && config.Transport != transportStdio {
				logger.Warn("tracing shutdown failed", logging.Err(shutdownErr))
			}
		}()
	}

	metrics := instrumentation.NewMetrics()
	if config.MetricsAddr != "" {
		metricsServer := startMetricsServer(config.MetricsAddr, metrics, logger)
		defer func() {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer stopCancel()
			_ = metricsServer.Shutdown(stopCtx)
		}()
	}

	serverConfig := server.NewDefaultConfig()
	serverConfig.Version = rootCmd.Version
	serverConfig.LogLevel = config.LogLevel
	serverConfig.LogFormat = config.LogFormat

	serverContextOptions := []server.Option{
		server.WithClient(bigipClient),
		server.WithLogger(logger),
		server.WithConfig(serverConfig),
		server.WithMetrics(metrics),
	}
	if config.ReadOnly {
		serverContextOptions = append(serverContextOptions, server.WithReadOnlyMode(config.AllowedOperations))
	}

	serverContext, err := server.NewServerContext(shutdownCtx, serverContextOptions...)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil && config.Transport != transportStdio {
			logger.Warn("server context shutdown failed", logging.Err(err))
		}
	}()

	logger.Info("connecting to BIG-IP",
		logging.Host(config.Host),
		logging.Partition(serverContext.Client().Info().Partition))

	mcpSrv, err := newMCPServer(serverContext)
	if err != nil {
		return err
	}

	// Start the appropriate server based on transport type
	switch config.Transport {
	case transportStdio:
		// Don't print startup message for stdio mode as it interferes with
		// MCP communication
		return runStdioServer(mcpSrv)
	case transportSSE:
		fmt.Printf("Starting MCP BIG-IP server with %s transport...\n", config.Transport)
		return runSSEServer(shutdownCtx, mcpSrv, config.HTTPAddr, config.SSEEndpoint, config.MessageEndpoint)
	case transportStreamableHTTP:
		fmt.Printf("Starting MCP BIG-IP server with %s transport...\n", config.Transport)
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, config.HTTPAddr, config.HTTPEndpoint)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: %s, %s, %s)",
			config.Transport, transportStdio, transportSSE, transportStreamableHTTP)
	}
}

// newMCPServer creates the MCP server and registers every tool family.
func newMCPServer(sc *server.ServerContext) (*mcpserver.MCPServer, error) {
	mcpSrv := mcpserver.NewMCPServer(serverName, sc.Config().Version,
		mcpserver.WithToolCapabilities(true),
	)

	if err := irule.RegisterIRuleTools(mcpSrv, sc); err != nil {
		return nil, fmt.Errorf("failed to register iRule tools: %w", err)
	}
	if err := virtual.RegisterVirtualTools(mcpSrv, sc); err != nil {
		return nil, fmt.Errorf("failed to register virtual server tools: %w", err)
	}
	if err := pool.RegisterPoolTools(mcpSrv, sc); err != nil {
		return nil, fmt.Errorf("failed to register pool tools: %w", err)
	}
	if err := datagroup.RegisterDataGroupTools(mcpSrv, sc); err != nil {
		return nil, fmt.Errorf("failed to register data group tools: %w", err)
	}
	if err := logs.RegisterLogTools(mcpSrv, sc); err != nil {
		return nil, fmt.Errorf("failed to register log tools: %w", err)
	}
	if err := system.RegisterSystemTools(mcpSrv, sc); err != nil {
		return nil, fmt.Errorf("failed to register system tools: %w", err)
	}

	return mcpSrv, nil
}

// startMetricsServer serves Prometheus metrics on a dedicated listener.
func startMetricsServer(addr string, metrics *instrumentation.Metrics, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	metricsServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn("metrics server stopped", "error", err.Error())
		}
	}()

	return metricsServer
}
