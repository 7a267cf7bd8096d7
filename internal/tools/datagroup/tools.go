// Package datagroup provides MCP tools for internal data group management.
package datagroup

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/f5ops/mcp-bigip/internal/server"
)

// RegisterDataGroupTools registers all data group tools with the MCP server.
func RegisterDataGroupTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// bigip_datagroup_list tool
	listTool := mcp.NewTool("bigip_datagroup_list",
		mcp.WithDescription("List internal data groups"),
		mcp.WithBoolean("includeRecords",
			mcp.Description("Include each data group's records (default: false)"),
		),
	)

	s.AddTool(listTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListDataGroups(ctx, request, sc)
	})

	// bigip_datagroup_create tool
	createTool := mcp.NewTool("bigip_datagroup_create",
		mcp.WithDescription("Create an internal data group"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the data group to create"),
		),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Data group type: 'string', 'ip', or 'integer'"),
			mcp.Enum("string", "ip", "integer"),
		),
		mcp.WithString("partition",
			mcp.Description("Partition to create the data group in (optional)"),
		),
		mcp.WithString("description",
			mcp.Description("Free-form description"),
		),
		mcp.WithObject("records",
			mcp.Description("Records as an object mapping record name to data value"),
		),
	)

	s.AddTool(createTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleCreateDataGroup(ctx, request, sc)
	})

	// bigip_datagroup_update tool
	updateTool := mcp.NewTool("bigip_datagroup_update",
		mcp.WithDescription("Update an internal data group. A records object replaces the remote records wholesale."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the data group to update"),
		),
		mcp.WithString("partition",
			mcp.Description("Partition the data group lives in (optional)"),
		),
		mcp.WithString("description",
			mcp.Description("New description"),
		),
		mcp.WithObject("records",
			mcp.Description("Replacement records as an object mapping record name to data value"),
		),
	)

	s.AddTool(updateTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleUpdateDataGroup(ctx, request, sc)
	})

	// bigip_datagroup_delete tool
	deleteTool := mcp.NewTool("bigip_datagroup_delete",
		mcp.WithDescription("Delete an internal data group"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the data group to delete"),
		),
		mcp.WithString("partition",
			mcp.Description("Partition the data group lives in (optional)"),
		),
	)

	s.AddTool(deleteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleDeleteDataGroup(ctx, request, sc)
	})

	return nil
}
