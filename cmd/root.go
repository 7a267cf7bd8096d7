package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the mcp-bigip application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mcp-bigip",
	Short: "MCP server for F5 BIG-IP operations",
	Long: `mcp-bigip is a Model Context Protocol (MCP) server that exposes
F5 BIG-IP management operations as tools: iRule CRUD, virtual server
bindings, pools, data groups, and LTM log retrieval over iControl REST.

When run without subcommands, it starts the MCP server (equivalent to 'mcp-bigip serve').`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that
	// are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// Called from the main package to inject the version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "mcp-bigip version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newValidateCmd())
}
