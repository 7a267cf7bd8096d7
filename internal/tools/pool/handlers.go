package pool

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/f5ops/mcp-bigip/internal/bigip"
	"github.com/f5ops/mcp-bigip/internal/server"
	"github.com/f5ops/mcp-bigip/internal/tools"
)

// handleListPools handles pool listing.
func handleListPools(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	start := time.Now()
	args := request.GetArguments()

	opts := bigip.PoolListOptions{
		SelectFields: tools.StringSlice(args, "selectFields"),
	}

	pools, err := sc.Client().ListPools(ctx, opts)
	tools.Finish(sc, "bigip_pool_list", start, err)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	return tools.JSONResult(map[string]any{
		"count": len(pools),
		"pools": pools,
	})
}

// handleCreatePool handles pool creation.
func handleCreatePool(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if blocked := tools.CheckMutatingOperation(sc, "create"); blocked != nil {
		return blocked, nil
	}

	start := time.Now()
	args := request.GetArguments()

	name, errResult := tools.StringArg(args, "name")
	if errResult != nil {
		return errResult, nil
	}

	spec := bigip.PoolSpec{
		Name:              name,
		Partition:         tools.OptionalString(args, "partition"),
		LoadBalancingMode: tools.OptionalString(args, "loadBalancingMode"),
		Monitor:           tools.OptionalString(args, "monitor"),
		Description:       tools.OptionalString(args, "description"),
		Members:           memberSpecs(tools.StringSlice(args, "members")),
	}

	created, err := sc.Client().CreatePool(ctx, spec)
	tools.Finish(sc, "bigip_pool_create", start, err)
	if err != nil {
		if bigip.IsConflict(err) {
			return mcp.NewToolResultError(fmt.Sprintf("pool %q already exists", name)), nil
		}
		return tools.ErrorResult(err), nil
	}

	return tools.JSONResult(created)
}

// handleModifyPool handles pool modification.
func handleModifyPool(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if blocked := tools.CheckMutatingOperation(sc, "update"); blocked != nil {
		return blocked, nil
	}

	start := time.Now()
	args := request.GetArguments()

	name, errResult := tools.StringArg(args, "name")
	if errResult != nil {
		return errResult, nil
	}

	spec := bigip.PoolSpec{
		Partition:         tools.OptionalString(args, "partition"),
		LoadBalancingMode: tools.OptionalString(args, "loadBalancingMode"),
		Monitor:           tools.OptionalString(args, "monitor"),
		Description:       tools.OptionalString(args, "description"),
		Members:           memberSpecs(tools.StringSlice(args, "members")),
	}

	modified, err := sc.Client().ModifyPool(ctx, name, spec)
	tools.Finish(sc, "bigip_pool_modify", start, err)
	if err != nil {
		if bigip.IsNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf("pool %q not found", name)), nil
		}
		return tools.ErrorResult(err), nil
	}

	return tools.JSONResult(modified)
}

// memberSpecs converts "address:port" strings into pool member entries.
// Returns nil for an empty list so absent members stay out of the payload.
func memberSpecs(names []string) []bigip.PoolMember {
	if len(names) == 0 {
		return nil
	}
	members := make([]bigip.PoolMember, 0, len(names))
	for _, name := range names {
		members = append(members, bigip.PoolMember{Name: name})
	}
	return members
}
