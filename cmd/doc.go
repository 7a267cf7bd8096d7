// Package cmd provides the command-line interface for mcp-bigip.
//
// This package implements a Cobra-based CLI with multiple subcommands:
//   - serve: Starts the MCP server (default behavior when no subcommand is provided)
//   - validate: Runs an end-to-end exercise against a live BIG-IP
//   - version: Displays the application version
//
// The CLI runs the serve command when no subcommand is specified.
//
// Command Structure:
//
//	mcp-bigip [flags]                # Starts the MCP server (default)
//	mcp-bigip serve [flags]          # Explicitly starts the MCP server
//	mcp-bigip validate [flags]       # Validates the tool surface end to end
//	mcp-bigip version                # Shows version information
//	mcp-bigip help [command]         # Shows help information
//
// The serve command supports multiple transport options:
//   - stdio: Standard input/output (default) - for command-line integration
//   - sse: Server-Sent Events over HTTP - for web-based clients
//   - streamable-http: Streamable HTTP transport - for HTTP-based integration
//
// Transport Configuration Examples:
//
//	mcp-bigip serve --transport stdio
//	mcp-bigip serve --transport sse --http-addr :8080 --sse-endpoint /sse
//	mcp-bigip serve --transport streamable-http --http-addr :9000 --http-endpoint /mcp
//
// BIG-IP connection settings come from flags or BIGIP_* environment
// variables (BIGIP_HOST, BIGIP_TOKEN, BIGIP_USERNAME, BIGIP_PASSWORD,
// BIGIP_PARTITION, BIGIP_LOGIN_PROVIDER, BIGIP_VERIFY_SSL); flags win.
package cmd
