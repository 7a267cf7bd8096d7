// Package validate drives an end-to-end exercise of the MCP tool surface
// against a live endpoint: create an iRule, update it, bind it to a virtual
// server, tail the log, then unbind and clean up.
package validate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/f5ops/mcp-bigip/internal/logging"
)

// probeDefinition is the iRule body the harness creates and later rewrites.
const probeDefinition = `when HTTP_REQUEST {
    # validation probe, never deployed to traffic
}`

// probeDefinitionUpdated replaces probeDefinition in the update step.
const probeDefinitionUpdated = `when HTTP_REQUEST {
    # validation probe, second revision
}`

// requiredTools are the tool names the harness expects the server to expose.
var requiredTools = []string{
	"bigip_irule_list",
	"bigip_irule_create",
	"bigip_irule_update",
	"bigip_irule_delete",
	"bigip_virtual_list",
	"bigip_virtual_attach_irule",
	"bigip_virtual_detach_irule",
	"bigip_log_tail",
	"bigip_server_info",
}

// Caller is the MCP client surface the harness needs. *client.Client from
// mcp-go satisfies it, as does any in-process equivalent.
type Caller interface {
	Initialize(ctx context.Context, request mcp.InitializeRequest) (*mcp.InitializeResult, error)
	ListTools(ctx context.Context, request mcp.ListToolsRequest) (*mcp.ListToolsResult, error)
	CallTool(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// Step records the outcome of one harness step.
type Step struct {
	Name   string
	Detail string
}

// Report collects the steps a run completed. A run stops at the first
// failure, so the last step of a failed run names the failing operation.
type Report struct {
	Steps []Step
}

// Harness runs the validation flow through an MCP client.
type Harness struct {
	caller Caller
	logger *slog.Logger

	// RuleName is the probe iRule created and deleted by the run.
	RuleName string

	// VirtualName selects the virtual server for the bind steps. Empty
	// means the first virtual server the endpoint reports.
	VirtualName string

	// Partition scopes the probe iRule; empty uses the server default.
	Partition string
}

// New builds a harness around a connected MCP client.
func New(caller Caller, logger *slog.Logger) *Harness {
	return &Harness{
		caller:   caller,
		logger:   logger,
		RuleName: fmt.Sprintf("mcp_validate_probe_%d", time.Now().Unix()),
	}
}

// Run executes the full flow. The returned report lists the completed steps;
// on error the probe iRule may be left behind when cleanup itself failed.
func (h *Harness) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	if _, err := h.caller.Initialize(ctx, initRequest()); err != nil {
		return report, fmt.Errorf("initialize failed: %w", err)
	}
	report.add("initialize", "session established")

	if err := h.checkTools(ctx, report); err != nil {
		return report, err
	}

	virtualName, err := h.pickVirtual(ctx, report)
	if err != nil {
		return report, err
	}

	ruleArgs := map[string]any{"name": h.RuleName}
	if h.Partition != "" {
		ruleArgs["partition"] = h.Partition
	}

	if _, err := h.call(ctx, "bigip_irule_create", merge(ruleArgs, map[string]any{
		"definition": probeDefinition,
	})); err != nil {
		return report, err
	}
	report.add("create iRule", h.RuleName)

	if _, err := h.call(ctx, "bigip_irule_update", merge(ruleArgs, map[string]any{
		"definition": probeDefinitionUpdated,
	})); err != nil {
		return report, h.cleanup(ctx, report, ruleArgs, err)
	}
	report.add("update iRule", "definition replaced")

	bindArgs := map[string]any{"virtualName": virtualName, "ruleName": h.RuleName}

	attached, err := h.call(ctx, "bigip_virtual_attach_irule", bindArgs)
	if err != nil {
		return report, h.cleanup(ctx, report, ruleArgs, err)
	}
	if !strings.Contains(attached, `"changed": true`) {
		return report, h.cleanup(ctx, report, ruleArgs,
			fmt.Errorf("attach reported no binding change: %s", attached))
	}
	report.add("attach iRule", virtualName)

	if _, err := h.call(ctx, "bigip_log_tail", map[string]any{"lines": 5}); err != nil {
		_, _ = h.call(ctx, "bigip_virtual_detach_irule", bindArgs)
		return report, h.cleanup(ctx, report, ruleArgs, err)
	}
	report.add("tail log", "retrieved")

	if _, err := h.call(ctx, "bigip_virtual_detach_irule", bindArgs); err != nil {
		return report, h.cleanup(ctx, report, ruleArgs, err)
	}
	report.add("detach iRule", virtualName)

	if _, err := h.call(ctx, "bigip_irule_delete", ruleArgs); err != nil {
		return report, err
	}
	report.add("delete iRule", h.RuleName)

	return report, nil
}

// checkTools verifies the required tool names are registered.
func (h *Harness) checkTools(ctx context.Context, report *Report) error {
	listed, err := h.caller.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return fmt.Errorf("list tools failed: %w", err)
	}

	available := make(map[string]bool, len(listed.Tools))
	for _, tool := range listed.Tools {
		available[tool.Name] = true
	}
	var missing []string
	for _, name := range requiredTools {
		if !available[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("server is missing tools: %s", strings.Join(missing, ", "))
	}

	report.add("list tools", fmt.Sprintf("%d tools available", len(listed.Tools)))
	return nil
}

// pickVirtual resolves the virtual server used by the bind steps.
func (h *Harness) pickVirtual(ctx context.Context, report *Report) (string, error) {
	if h.VirtualName != "" {
		report.add("select virtual server", h.VirtualName)
		return h.VirtualName, nil
	}

	text, err := h.call(ctx, "bigip_virtual_list", nil)
	if err != nil {
		return "", err
	}
	name := firstJSONString(text, `"fullPath": "`)
	if name == "" {
		return "", errors.New("endpoint reports no virtual servers; pass one explicitly")
	}

	report.add("select virtual server", name)
	return name, nil
}

// cleanup deletes the probe iRule after a mid-run failure and returns the
// original error, annotated when cleanup also failed.
func (h *Harness) cleanup(ctx context.Context, report *Report, ruleArgs map[string]any, cause error) error {
	if _, err := h.call(ctx, "bigip_irule_delete", ruleArgs); err != nil {
		h.logger.Warn("probe cleanup failed", logging.Resource(h.RuleName), logging.Err(err))
		return fmt.Errorf("%w (probe iRule %s left behind)", cause, h.RuleName)
	}
	report.add("cleanup", h.RuleName)
	return cause
}

// call invokes one tool and returns its text payload. An IsError result is
// surfaced as a Go error.
func (h *Harness) call(ctx context.Context, tool string, args map[string]any) (string, error) {
	request := mcp.CallToolRequest{}
	request.Params.Name = tool
	request.Params.Arguments = args

	result, err := h.caller.CallTool(ctx, request)
	if err != nil {
		return "", fmt.Errorf("%s failed: %w", tool, err)
	}

	text := resultText(result)
	if result.IsError {
		return "", fmt.Errorf("%s returned an error: %s", tool, text)
	}

	h.logger.Debug("validation step completed", logging.Tool(tool))
	return text, nil
}

func (r *Report) add(name, detail string) {
	r.Steps = append(r.Steps, Step{Name: name, Detail: detail})
}

func initRequest() mcp.InitializeRequest {
	request := mcp.InitializeRequest{}
	request.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	request.Params.ClientInfo = mcp.Implementation{
		Name:    "mcp-bigip-validate",
		Version: "1.0.0",
	}
	return request
}

// resultText flattens the text content of a tool result.
func resultText(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}
	var parts []string
	for _, content := range result.Content {
		if text, ok := content.(mcp.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// firstJSONString pulls the first string value following marker out of an
// indented JSON payload. Good enough for harness output inspection without
// re-decoding tool results into types.
func firstJSONString(text, marker string) string {
	idx := strings.Index(text, marker)
	if idx < 0 {
		return ""
	}
	rest := text[idx+len(marker):]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return ""
	}
	return rest[:end]
}

func merge(base, extra map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
