package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/client"
	"github.com/spf13/cobra"

	"github.com/f5ops/mcp-bigip/internal/bigip"
	"github.com/f5ops/mcp-bigip/internal/logging"
	"github.com/f5ops/mcp-bigip/internal/server"
	"github.com/f5ops/mcp-bigip/internal/validate"
)

func newValidateCmd() *cobra.Command {
	config := ServeConfig{}
	var virtualName string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Exercise the tool surface against a live BIG-IP",
		Long: `Run an end-to-end validation against the configured BIG-IP: create a
probe iRule, update it, attach it to a virtual server, tail the LTM log,
then detach and delete the probe. The flow goes through an in-process MCP
client, so it covers the same path an agent would use.

The probe iRule is named mcp_validate_probe_<timestamp> and is removed on
success and on most failures.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.applyEnvironment(cmd.Flags().Changed("verify-ssl"))
			return runValidate(config, virtualName)
		},
	}

	cmd.Flags().StringVar(&config.Host, "host", "", "BIG-IP management endpoint URL (env: BIGIP_HOST)")
	cmd.Flags().StringVar(&config.Token, "token", "", "Static iControl REST auth token (env: BIGIP_TOKEN)")
	cmd.Flags().StringVar(&config.Username, "username", "", "BIG-IP username for token exchange (env: BIGIP_USERNAME)")
	cmd.Flags().StringVar(&config.Password, "password", "", "BIG-IP password for token exchange (env: BIGIP_PASSWORD)")
	cmd.Flags().StringVar(&config.Partition, "partition", "", "Partition for the probe iRule (env: BIGIP_PARTITION)")
	cmd.Flags().StringVar(&config.LoginProvider, "login-provider", "", "Login provider for token exchange (env: BIGIP_LOGIN_PROVIDER)")
	cmd.Flags().BoolVar(&config.VerifySSL, "verify-ssl", true, "Verify the BIG-IP TLS certificate (env: BIGIP_VERIFY_SSL)")
	cmd.Flags().DurationVar(&config.Timeout, "timeout", bigip.DefaultTimeout, "Request timeout for iControl REST calls")
	cmd.Flags().StringVar(&config.LogLevel, "log-level", "warn", "Log level: debug, info, warn, or error")
	cmd.Flags().StringVar(&config.LogFormat, "log-format", "text", "Log format: json or text")
	cmd.Flags().StringVar(&virtualName, "virtual-server", "", "Virtual server for the bind steps (default: first one found)")

	return cmd
}

func runValidate(config ServeConfig, virtualName string) error {
	logger := logging.New(config.LogLevel, config.LogFormat)

	bigipClient, err := bigip.NewClient(config.clientConfig(), bigip.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create BIG-IP client: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sc, err := server.NewServerContext(ctx,
		server.WithClient(bigipClient),
		server.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() { _ = sc.Shutdown() }()

	mcpSrv, err := newMCPServer(sc)
	if err != nil {
		return err
	}

	mcpClient, err := client.NewInProcessClient(mcpSrv)
	if err != nil {
		return fmt.Errorf("failed to create in-process MCP client: %w", err)
	}
	defer func() { _ = mcpClient.Close() }()
	if err := mcpClient.Start(ctx); err != nil {
		return fmt.Errorf("failed to start MCP client: %w", err)
	}

	harness := validate.New(mcpClient, logger)
	harness.VirtualName = virtualName
	harness.Partition = config.Partition

	fmt.Printf("Validating against %s\n", logging.SanitizeHost(config.Host))
	report, runErr := harness.Run(ctx)
	for _, step := range report.Steps {
		fmt.Printf("  ok  %-22s %s\n", step.Name, step.Detail)
	}
	if runErr != nil {
		return fmt.Errorf("validation failed: %w", runErr)
	}

	fmt.Println("Validation passed")
	return nil
}
