// Package system provides MCP tools describing the server and its endpoint.
package system

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/f5ops/mcp-bigip/internal/server"
)

// RegisterSystemTools registers the server information tool with the MCP
// server.
func RegisterSystemTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// bigip_server_info tool
	infoTool := mcp.NewTool("bigip_server_info",
		mcp.WithDescription("Describe this server and the BIG-IP endpoint it talks to, without exposing secrets"),
	)

	s.AddTool(infoTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleServerInfo(ctx, request, sc)
	})

	return nil
}
