package virtual

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/f5ops/mcp-bigip/internal/bigip"
	"github.com/f5ops/mcp-bigip/internal/server"
	"github.com/f5ops/mcp-bigip/internal/tools"
)

// handleListVirtuals handles virtual server listing.
func handleListVirtuals(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	start := time.Now()

	virtuals, err := sc.Client().ListVirtuals(ctx)
	tools.Finish(sc, "bigip_virtual_list", start, err)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	return tools.JSONResult(map[string]any{
		"count":          len(virtuals),
		"virtualServers": virtuals,
	})
}

// handleGetVirtual handles single virtual server retrieval.
func handleGetVirtual(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	start := time.Now()
	args := request.GetArguments()

	name, errResult := tools.StringArg(args, "name")
	if errResult != nil {
		return errResult, nil
	}

	vs, err := sc.Client().GetVirtual(ctx, name)
	tools.Finish(sc, "bigip_virtual_get", start, err)
	if err != nil {
		if bigip.IsNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf("virtual server %q not found", name)), nil
		}
		return tools.ErrorResult(err), nil
	}

	return tools.JSONResult(vs)
}

// handleAttachIRule handles iRule attachment.
func handleAttachIRule(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if blocked := tools.CheckMutatingOperation(sc, "attach"); blocked != nil {
		return blocked, nil
	}
	return handleBindingChange(ctx, request, sc, "bigip_virtual_attach_irule", sc.Client().AttachRule)
}

// handleDetachIRule handles iRule detachment.
func handleDetachIRule(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if blocked := tools.CheckMutatingOperation(sc, "detach"); blocked != nil {
		return blocked, nil
	}
	return handleBindingChange(ctx, request, sc, "bigip_virtual_detach_irule", sc.Client().DetachRule)
}

// handleBindingChange runs the shared attach/detach flow: both take the same
// arguments and return the resulting binding list.
func handleBindingChange(
	ctx context.Context,
	request mcp.CallToolRequest,
	sc *server.ServerContext,
	tool string,
	change func(ctx context.Context, virtualName, ruleName string) (*bigip.BindingUpdate, error),
) (*mcp.CallToolResult, error) {
	start := time.Now()
	args := request.GetArguments()

	virtualName, errResult := tools.StringArg(args, "virtualName")
	if errResult != nil {
		return errResult, nil
	}
	ruleName, errResult := tools.StringArg(args, "ruleName")
	if errResult != nil {
		return errResult, nil
	}

	update, err := change(ctx, virtualName, ruleName)
	tools.Finish(sc, tool, start, err)
	if err != nil {
		if bigip.IsNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf("virtual server %q not found", virtualName)), nil
		}
		return tools.ErrorResult(err), nil
	}

	return tools.JSONResult(update)
}
