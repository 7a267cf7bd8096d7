package irule

import (
	"context"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f5ops/mcp-bigip/internal/bigip"
	"github.com/f5ops/mcp-bigip/internal/server"
	"github.com/f5ops/mcp-bigip/internal/tools/testdata"
)

// getResultText extracts the text payload from an MCP result.
func getResultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent in result, got %T", result.Content[0])
	return textContent.Text
}

func newTestContext(t *testing.T, client bigip.Client, opts ...server.Option) *server.ServerContext {
	t.Helper()
	all := append([]server.Option{
		server.WithClient(client),
		server.WithLogger(slog.New(slog.DiscardHandler)),
	}, opts...)
	sc, err := server.NewServerContext(context.Background(), all...)
	require.NoError(t, err)
	return sc
}

func request(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func TestListIRulesPassesOptionsThrough(t *testing.T) {
	var gotOpts bigip.RuleListOptions
	mock := &testdata.MockClient{
		ListRulesFunc: func(ctx context.Context, opts bigip.RuleListOptions) ([]bigip.Rule, error) {
			gotOpts = opts
			return []bigip.Rule{
				{Name: "redirect", Partition: "Common", FullPath: "/Common/redirect"},
			}, nil
		},
	}
	sc := newTestContext(t, mock)

	result, err := handleListIRules(context.Background(), request(map[string]any{
		"partition":         "Dev",
		"includeDefinition": true,
	}), sc)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	assert.Equal(t, "Dev", gotOpts.Partition)
	assert.True(t, gotOpts.IncludeDefinition)

	text := getResultText(t, result)
	assert.Contains(t, text, `"count": 1`)
	assert.Contains(t, text, "/Common/redirect")
}

func TestGetIRuleRequiresName(t *testing.T) {
	sc := newTestContext(t, &testdata.MockClient{})

	result, err := handleGetIRule(context.Background(), request(map[string]any{}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, getResultText(t, result), "name is required")
}

func TestGetIRuleNotFoundIsFriendly(t *testing.T) {
	mock := &testdata.MockClient{
		GetRuleFunc: func(ctx context.Context, name, partition string) (*bigip.Rule, error) {
			return nil, &bigip.RemoteOperationError{StatusCode: 404, Method: "GET", Path: "/mgmt/tm/ltm/rule/~Common~ghost"}
		},
	}
	sc := newTestContext(t, mock)

	result, err := handleGetIRule(context.Background(), request(map[string]any{"name": "ghost"}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, getResultText(t, result), `iRule "ghost" not found`)
}

func TestCreateIRuleReturnsCreatedRule(t *testing.T) {
	mock := &testdata.MockClient{
		CreateRuleFunc: func(ctx context.Context, name, partition, definition string) (*bigip.Rule, error) {
			return &bigip.Rule{
				Name:       name,
				Partition:  "Common",
				FullPath:   "/Common/" + name,
				Definition: definition,
			}, nil
		},
	}
	sc := newTestContext(t, mock)

	result, err := handleCreateIRule(context.Background(), request(map[string]any{
		"name":       "block_bots",
		"definition": "when HTTP_REQUEST { HTTP::respond 403 }",
	}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)

	text := getResultText(t, result)
	assert.Contains(t, text, "block_bots")
	assert.Contains(t, text, "HTTP::respond 403")
}

func TestCreateIRuleConflictIsFriendly(t *testing.T) {
	mock := &testdata.MockClient{
		CreateRuleFunc: func(ctx context.Context, name, partition, definition string) (*bigip.Rule, error) {
			return nil, &bigip.RemoteOperationError{StatusCode: 409, Method: "POST", Path: "/mgmt/tm/ltm/rule"}
		},
	}
	sc := newTestContext(t, mock)

	result, err := handleCreateIRule(context.Background(), request(map[string]any{
		"name":       "dup",
		"definition": "when HTTP_REQUEST { }",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, getResultText(t, result), `iRule "dup" already exists`)
}

func TestMutatingIRuleOperationsBlockedInReadOnlyMode(t *testing.T) {
	sc := newTestContext(t, &testdata.MockClient{}, server.WithReadOnlyMode(nil))

	tests := []struct {
		name    string
		handler func(context.Context, mcp.CallToolRequest, *server.ServerContext) (*mcp.CallToolResult, error)
		args    map[string]any
		want    string
	}{
		{
			name:    "create blocked",
			handler: handleCreateIRule,
			args:    map[string]any{"name": "x", "definition": "when HTTP_REQUEST { }"},
			want:    "Create operations are not allowed in read-only mode",
		},
		{
			name:    "update blocked",
			handler: handleUpdateIRule,
			args:    map[string]any{"name": "x", "definition": "when HTTP_REQUEST { }"},
			want:    "Update operations are not allowed in read-only mode",
		},
		{
			name:    "delete blocked",
			handler: handleDeleteIRule,
			args:    map[string]any{"name": "x"},
			want:    "Delete operations are not allowed in read-only mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.handler(context.Background(), request(tt.args), sc)
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Contains(t, getResultText(t, result), tt.want)
		})
	}
}

func TestDeleteIRuleReportsSuccess(t *testing.T) {
	var deleted string
	mock := &testdata.MockClient{
		DeleteRuleFunc: func(ctx context.Context, name, partition string) error {
			deleted = name
			return nil
		},
	}
	sc := newTestContext(t, mock)

	result, err := handleDeleteIRule(context.Background(), request(map[string]any{"name": "old_rule"}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "old_rule", deleted)
	assert.Contains(t, getResultText(t, result), `Deleted iRule "old_rule"`)
}

func TestUpdateIRuleValidationErrorSurfaces(t *testing.T) {
	mock := &testdata.MockClient{
		UpdateRuleFunc: func(ctx context.Context, name, partition, definition string) (*bigip.Rule, error) {
			return nil, &bigip.ValidationError{Field: "definition", Reason: "must not be empty"}
		},
	}
	sc := newTestContext(t, mock)

	result, err := handleUpdateIRule(context.Background(), request(map[string]any{
		"name":       "x",
		"definition": "nonempty",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, getResultText(t, result), "Invalid arguments")
}
