package datagroup

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/f5ops/mcp-bigip/internal/bigip"
	"github.com/f5ops/mcp-bigip/internal/server"
	"github.com/f5ops/mcp-bigip/internal/tools"
)

// handleListDataGroups handles data group listing.
func handleListDataGroups(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	start := time.Now()
	args := request.GetArguments()

	opts := bigip.DataGroupListOptions{
		IncludeRecords: tools.OptionalBool(args, "includeRecords"),
	}

	groups, err := sc.Client().ListDataGroups(ctx, opts)
	tools.Finish(sc, "bigip_datagroup_list", start, err)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	return tools.JSONResult(map[string]any{
		"count":      len(groups),
		"dataGroups": groups,
	})
}

// handleCreateDataGroup handles data group creation.
func handleCreateDataGroup(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if blocked := tools.CheckMutatingOperation(sc, "create"); blocked != nil {
		return blocked, nil
	}

	start := time.Now()
	args := request.GetArguments()

	name, errResult := tools.StringArg(args, "name")
	if errResult != nil {
		return errResult, nil
	}
	groupType, errResult := tools.StringArg(args, "type")
	if errResult != nil {
		return errResult, nil
	}

	spec := bigip.DataGroupSpec{
		Name:        name,
		Type:        groupType,
		Partition:   tools.OptionalString(args, "partition"),
		Description: tools.OptionalString(args, "description"),
		Records:     recordSpecs(args["records"]),
	}

	created, err := sc.Client().CreateDataGroup(ctx, spec)
	tools.Finish(sc, "bigip_datagroup_create", start, err)
	if err != nil {
		if bigip.IsConflict(err) {
			return mcp.NewToolResultError(fmt.Sprintf("data group %q already exists", name)), nil
		}
		return tools.ErrorResult(err), nil
	}

	return tools.JSONResult(created)
}

// handleUpdateDataGroup handles data group updates.
func handleUpdateDataGroup(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if blocked := tools.CheckMutatingOperation(sc, "update"); blocked != nil {
		return blocked, nil
	}

	start := time.Now()
	args := request.GetArguments()

	name, errResult := tools.StringArg(args, "name")
	if errResult != nil {
		return errResult, nil
	}

	spec := bigip.DataGroupSpec{
		Partition:   tools.OptionalString(args, "partition"),
		Description: tools.OptionalString(args, "description"),
		Records:     recordSpecs(args["records"]),
	}

	updated, err := sc.Client().UpdateDataGroup(ctx, name, spec)
	tools.Finish(sc, "bigip_datagroup_update", start, err)
	if err != nil {
		if bigip.IsNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf("data group %q not found", name)), nil
		}
		return tools.ErrorResult(err), nil
	}

	return tools.JSONResult(updated)
}

// handleDeleteDataGroup handles data group deletion.
func handleDeleteDataGroup(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
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

	err := sc.Client().DeleteDataGroup(ctx, name, partition)
	tools.Finish(sc, "bigip_datagroup_delete", start, err)
	if err != nil {
		if bigip.IsNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf("data group %q not found", name)), nil
		}
		return tools.ErrorResult(err), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Deleted data group %q", name)), nil
}

// recordSpecs converts a records argument (object of name -> data) into
// record entries, sorted by name for a stable request body.
func recordSpecs(raw any) []bigip.DataGroupRecord {
	object, ok := raw.(map[string]any)
	if !ok || len(object) == 0 {
		return nil
	}
	records := make([]bigip.DataGroupRecord, 0, len(object))
	for name, data := range object {
		record := bigip.DataGroupRecord{Name: name}
		if s, ok := data.(string); ok {
			record.Data = s
		}
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records
}
