// Package logs provides the MCP tool for LTM log retrieval.
package logs

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/f5ops/mcp-bigip/internal/server"
)

// RegisterLogTools registers the log retrieval tool with the MCP server.
func RegisterLogTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// bigip_log_tail tool
	tailTool := mcp.NewTool("bigip_log_tail",
		mcp.WithDescription("Return the last N lines of the LTM log (/var/log/ltm), optionally filtered to lines containing a substring"),
		mcp.WithNumber("lines",
			mcp.Description("Number of lines to fetch (default: 50; capped server-side)"),
		),
		mcp.WithString("contains",
			mcp.Description("Keep only lines containing this substring; matching happens after retrieval, never on the device"),
		),
	)

	s.AddTool(tailTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleTailLog(ctx, request, sc)
	})

	return nil
}
