package irule

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/f5ops/mcp-bigip/internal/bigip"
	"github.com/f5ops/mcp-bigip/internal/server"
	"github.com/f5ops/mcp-bigip/internal/tools"
)

// handleListIRules handles iRule listing.
func handleListIRules(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	start := time.Now()
	args := request.GetArguments()

	opts := bigip.RuleListOptions{
		Partition:         tools.OptionalString(args, "partition"),
		IncludeDefinition: tools.OptionalBool(args, "includeDefinition"),
	}

	rules, err := sc.Client().ListRules(ctx, opts)
	tools.Finish(sc, "bigip_irule_list", start, err)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	return tools.JSONResult(map[string]any{
		"count": len(rules),
		"rules": rules,
	})
}

// handleGetIRule handles single iRule retrieval.
func handleGetIRule(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	start := time.Now()
	args := request.GetArguments()

	name, errResult := tools.StringArg(args, "name")
	if errResult != nil {
		return errResult, nil
	}
	partition := tools.OptionalString(args, "partition")

	rule, err := sc.Client().GetRule(ctx, name, partition)
	tools.Finish(sc, "bigip_irule_get", start, err)
	if err != nil {
		if bigip.IsNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf("iRule %q not found", name)), nil
		}
		return tools.ErrorResult(err), nil
	}

	return tools.JSONResult(rule)
}

// handleCreateIRule handles iRule creation.
func handleCreateIRule(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if blocked := tools.CheckMutatingOperation(sc, "create"); blocked != nil {
		return blocked, nil
	}

	start := time.Now()
	args := request.GetArguments()

	name, errResult := tools.StringArg(args, "name")
	if errResult != nil {
		return errResult, nil
	}
	definition, errResult := tools.StringArg(args, "definition")
	if errResult != nil {
		return errResult, nil
	}
	partition := tools.OptionalString(args, "partition")

	rule, err := sc.Client().CreateRule(ctx, name, partition, definition)
	tools.Finish(sc, "bigip_irule_create", start, err)
	if err != nil {
		if bigip.IsConflict(err) {
			return mcp.NewToolResultError(fmt.Sprintf("iRule %q already exists", name)), nil
		}
		return tools.ErrorResult(err), nil
	}

	return tools.JSONResult(rule)
}

// handleUpdateIRule handles iRule definition replacement.
func handleUpdateIRule(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if blocked := tools.CheckMutatingOperation(sc, "update"); blocked != nil {
		return blocked, nil
	}

	start := time.Now()
	args := request.GetArguments()

	name, errResult := tools.StringArg(args, "name")
	if errResult != nil {
		return errResult, nil
	}
	definition, errResult := tools.StringArg(args, "definition")
	if errResult != nil {
		return errResult, nil
	}
	partition := tools.OptionalString(args, "partition")

	rule, err := sc.Client().UpdateRule(ctx, name, partition, definition)
	tools.Finish(sc, "bigip_irule_update", start, err)
	if err != nil {
		if bigip.IsNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf("iRule %q not found", name)), nil
		}
		return tools.ErrorResult(err), nil
	}

	return tools.JSONResult(rule)
}

// handleDeleteIRule handles iRule deletion.
func handleDeleteIRule(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if blocked := tools.CheckMutatingOperation(sc, "delete"); blocked != nil {
		return blocked, nil
	}

	start := time.Now()
	args := request.GetArguments()

	name, errResult := tools.StringArg(args, "name")
	if errResult != nil {
		return errResult, nil
	}
	partition := tools.OptionalString(args, "partition")

	err := sc.Client().DeleteRule(ctx, name, partition)
	tools.Finish(sc, "bigip_irule_delete", start, err)
	if err != nil {
		if bigip.IsNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf("iRule %q not found", name)), nil
		}
		return tools.ErrorResult(err), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Deleted iRule %q", name)), nil
}
