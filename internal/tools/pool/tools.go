// Package pool provides MCP tools for LTM pool management.
package pool

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/f5ops/mcp-bigip/internal/server"
)

// RegisterPoolTools registers all pool management tools with the MCP server.
func RegisterPoolTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// bigip_pool_list tool
	listTool := mcp.NewTool("bigip_pool_list",
		mcp.WithDescription("List LTM pools, optionally narrowed to specific fields"),
		mcp.WithArray("selectFields",
			mcp.Description("Field names to include per pool (e.g., ['name', 'loadBalancingMode']); all fields when omitted"),
		),
	)

	s.AddTool(listTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListPools(ctx, request, sc)
	})

	// bigip_pool_create tool
	createTool := mcp.NewTool("bigip_pool_create",
		mcp.WithDescription("Create an LTM pool"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the pool to create"),
		),
		mcp.WithString("partition",
			mcp.Description("Partition to create the pool in (optional)"),
		),
		mcp.WithString("loadBalancingMode",
			mcp.Description("Load balancing mode (e.g., 'round-robin', 'least-connections-member')"),
		),
		mcp.WithString("monitor",
			mcp.Description("Health monitor to associate (e.g., '/Common/http')"),
		),
		mcp.WithString("description",
			mcp.Description("Free-form description"),
		),
		mcp.WithArray("members",
			mcp.Description("Pool members as array of 'address:port' strings"),
		),
	)

	s.AddTool(createTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleCreatePool(ctx, request, sc)
	})

	// bigip_pool_modify tool
	modifyTool := mcp.NewTool("bigip_pool_modify",
		mcp.WithDescription("Modify an existing LTM pool. Only the supplied fields change; a members array replaces the remote members wholesale."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the pool to modify"),
		),
		mcp.WithString("partition",
			mcp.Description("Partition the pool lives in (optional)"),
		),
		mcp.WithString("loadBalancingMode",
			mcp.Description("New load balancing mode"),
		),
		mcp.WithString("monitor",
			mcp.Description("New health monitor"),
		),
		mcp.WithString("description",
			mcp.Description("New description"),
		),
		mcp.WithArray("members",
			mcp.Description("Replacement member list as array of 'address:port' strings"),
		),
	)

	s.AddTool(modifyTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleModifyPool(ctx, request, sc)
	})

	return nil
}
