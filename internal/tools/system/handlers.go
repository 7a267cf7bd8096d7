package system

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/f5ops/mcp-bigip/internal/server"
	"github.com/f5ops/mcp-bigip/internal/tools"
)

// handleServerInfo reports server configuration and the endpoint the client
// is bound to. Secret material (tokens, passwords) never appears here.
func handleServerInfo(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	start := time.Now()

	config := sc.Config()
	info := sc.Client().Info()
	tools.Finish(sc, "bigip_server_info", start, nil)

	return tools.JSONResult(map[string]any{
		"server": map[string]any{
			"name":         config.ServerName,
			"version":      config.Version,
			"readOnlyMode": config.ReadOnlyMode,
		},
		"endpoint": info,
	})
}
