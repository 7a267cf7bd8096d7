package tools

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/f5ops/mcp-bigip/internal/server"
)

// CheckMutatingOperation verifies whether a mutating operation is allowed
// under the current server configuration. Returns an error result if
// blocked, nil if allowed.
//
// Mutations are allowed unless read-only mode is on; in read-only mode an
// operation still passes when it appears in AllowedOperations. Protected
// operations: create, update, delete, attach, detach.
func CheckMutatingOperation(sc *server.ServerContext, operation string) *mcp.CallToolResult {
	config := sc.Config()
	if !config.ReadOnlyMode {
		return nil
	}
	for _, op := range config.AllowedOperations {
		if op == operation {
			return nil
		}
	}
	return mcp.NewToolResultError(fmt.Sprintf(
		"%s operations are not allowed in read-only mode",
		cases.Title(language.English).String(operation),
	))
}
