// Package virtual provides MCP tools for virtual server inspection and
// iRule binding management.
package virtual

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/f5ops/mcp-bigip/internal/server"
)

// RegisterVirtualTools registers all virtual server tools with the MCP server.
func RegisterVirtualTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// bigip_virtual_list tool
	listTool := mcp.NewTool("bigip_virtual_list",
		mcp.WithDescription("List virtual servers with their attached iRules"),
	)

	s.AddTool(listTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListVirtuals(ctx, request, sc)
	})

	// bigip_virtual_get tool
	getTool := mcp.NewTool("bigip_virtual_get",
		mcp.WithDescription("Get a single virtual server including its iRule binding list"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name or full path of the virtual server"),
		),
	)

	s.AddTool(getTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetVirtual(ctx, request, sc)
	})

	// bigip_virtual_attach_irule tool
	attachTool := mcp.NewTool("bigip_virtual_attach_irule",
		mcp.WithDescription("Attach an iRule to a virtual server. Attaching an already-attached iRule is a no-op."),
		mcp.WithString("virtualName",
			mcp.Required(),
			mcp.Description("Name or full path of the virtual server"),
		),
		mcp.WithString("ruleName",
			mcp.Required(),
			mcp.Description("Name or full path of the iRule to attach"),
		),
	)

	s.AddTool(attachTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleAttachIRule(ctx, request, sc)
	})

	// bigip_virtual_detach_irule tool
	detachTool := mcp.NewTool("bigip_virtual_detach_irule",
		mcp.WithDescription("Detach an iRule from a virtual server. Detaching an absent iRule succeeds without changes."),
		mcp.WithString("virtualName",
			mcp.Required(),
			mcp.Description("Name or full path of the virtual server"),
		),
		mcp.WithString("ruleName",
			mcp.Required(),
			mcp.Description("Name or full path of the iRule to detach"),
		),
	)

	s.AddTool(detachTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleDetachIRule(ctx, request, sc)
	})

	return nil
}
