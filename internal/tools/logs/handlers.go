package logs

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/f5ops/mcp-bigip/internal/bigip"
	"github.com/f5ops/mcp-bigip/internal/server"
	"github.com/f5ops/mcp-bigip/internal/tools"
)

// defaultTailLines is used when the caller does not ask for a count.
const defaultTailLines = 50

// handleTailLog handles LTM log retrieval.
func handleTailLog(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	start := time.Now()
	args := request.GetArguments()

	opts := bigip.TailOptions{
		Lines:    tools.OptionalInt(args, "lines", defaultTailLines),
		Contains: tools.OptionalString(args, "contains"),
	}

	lines, err := sc.Client().TailLog(ctx, opts)
	tools.Finish(sc, "bigip_log_tail", start, err)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	return tools.JSONResult(map[string]any{
		"count": len(lines),
		"lines": lines,
	})
}
