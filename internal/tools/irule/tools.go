// Package irule provides MCP tools for iRule management on BIG-IP.
package irule

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/f5ops/mcp-bigip/internal/server"
)

// RegisterIRuleTools registers all iRule management tools with the MCP server.
func RegisterIRuleTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// bigip_irule_list tool
	listTool := mcp.NewTool("bigip_irule_list",
		mcp.WithDescription("List iRules in a partition"),
		mcp.WithString("partition",
			mcp.Description("Partition to list from (optional, uses the configured partition if not specified)"),
		),
		mcp.WithBoolean("includeDefinition",
			mcp.Description("Include the full TCL definition of each iRule (default: false)"),
		),
	)

	s.AddTool(listTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListIRules(ctx, request, sc)
	})

	// bigip_irule_get tool
	getTool := mcp.NewTool("bigip_irule_get",
		mcp.WithDescription("Get a single iRule including its TCL definition"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the iRule"),
		),
		mcp.WithString("partition",
			mcp.Description("Partition the iRule lives in (optional)"),
		),
	)

	s.AddTool(getTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetIRule(ctx, request, sc)
	})

	// bigip_irule_create tool
	createTool := mcp.NewTool("bigip_irule_create",
		mcp.WithDescription("Create a new iRule with the given TCL definition"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the iRule to create"),
		),
		mcp.WithString("definition",
			mcp.Required(),
			mcp.Description("TCL body of the iRule, stored verbatim"),
		),
		mcp.WithString("partition",
			mcp.Description("Partition to create the iRule in (optional)"),
		),
	)

	s.AddTool(createTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleCreateIRule(ctx, request, sc)
	})

	// bigip_irule_update tool
	updateTool := mcp.NewTool("bigip_irule_update",
		mcp.WithDescription("Replace the TCL definition of an existing iRule"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the iRule to update"),
		),
		mcp.WithString("definition",
			mcp.Required(),
			mcp.Description("New TCL body, replacing the current one"),
		),
		mcp.WithString("partition",
			mcp.Description("Partition the iRule lives in (optional)"),
		),
	)

	s.AddTool(updateTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleUpdateIRule(ctx, request, sc)
	})

	// bigip_irule_delete tool
	deleteTool := mcp.NewTool("bigip_irule_delete",
		mcp.WithDescription("Delete an iRule"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the iRule to delete"),
		),
		mcp.WithString("partition",
			mcp.Description("Partition the iRule lives in (optional)"),
		),
	)

	s.AddTool(deleteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleDeleteIRule(ctx, request, sc)
	})

	return nil
}
