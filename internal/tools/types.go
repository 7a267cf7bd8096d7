// Package tools provides shared utilities for MCP tool implementations.
package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/f5ops/mcp-bigip/internal/bigip"
	"github.com/f5ops/mcp-bigip/internal/logging"
	"github.com/f5ops/mcp-bigip/internal/server"
)

// JSONResult marshals a payload into an indented-JSON text result.
func JSONResult(payload any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// ErrorResult renders a client error as an MCP error result, prefixing the
// failure class so agents can react programmatically.
func ErrorResult(err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, bigip.ErrValidation):
		return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err))
	case errors.Is(err, bigip.ErrAuthentication):
		return mcp.NewToolResultError(fmt.Sprintf("Authentication failed: %v", err))
	case errors.Is(err, bigip.ErrTransport):
		return mcp.NewToolResultError(fmt.Sprintf("BIG-IP unreachable: %v", err))
	default:
		return mcp.NewToolResultError(err.Error())
	}
}

// Finish records metrics and an access log line for a completed tool call.
// Call it once per handler, after the client call returns.
func Finish(sc *server.ServerContext, tool string, start time.Time, err error) {
	status := logging.StatusSuccess
	if err != nil {
		status = logging.StatusError
	}
	duration := time.Since(start)
	sc.Metrics().RecordToolCall(tool, status, duration)

	logger := sc.Logger().With(logging.Tool(tool), logging.Status(status))
	if err != nil {
		logger.Warn("tool call failed", logging.Err(err))
		return
	}
	logger.Debug("tool call completed", logging.Operation(tool))
}

// StringArg extracts a required string argument, returning an error result
// when it is missing or empty.
func StringArg(args map[string]any, key string) (string, *mcp.CallToolResult) {
	value, ok := args[key].(string)
	if !ok || value == "" {
		return "", mcp.NewToolResultError(key + " is required")
	}
	return value, nil
}

// OptionalString extracts an optional string argument.
func OptionalString(args map[string]any, key string) string {
	value, _ := args[key].(string)
	return value
}

// OptionalBool extracts an optional boolean argument.
func OptionalBool(args map[string]any, key string) bool {
	value, _ := args[key].(bool)
	return value
}

// OptionalInt extracts an optional number argument. MCP arguments arrive as
// JSON numbers, hence the float64 intermediate.
func OptionalInt(args map[string]any, key string, fallback int) int {
	if value, ok := args[key].(float64); ok {
		return int(value)
	}
	return fallback
}

// StringSlice extracts an optional array-of-strings argument.
func StringSlice(args map[string]any, key string) []string {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
