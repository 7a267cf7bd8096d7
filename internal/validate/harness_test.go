package validate

import (
	"context"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f5ops/mcp-bigip/internal/bigip"
	"github.com/f5ops/mcp-bigip/internal/bigip/bigiptest"
	"github.com/f5ops/mcp-bigip/internal/server"
	"github.com/f5ops/mcp-bigip/internal/tools/irule"
	"github.com/f5ops/mcp-bigip/internal/tools/logs"
	"github.com/f5ops/mcp-bigip/internal/tools/system"
	"github.com/f5ops/mcp-bigip/internal/tools/virtual"
)

// newHarnessFixture stands up a fake BIG-IP, a real client against it, an
// in-process MCP server with the tool families the harness touches, and an
// in-process MCP client.
func newHarnessFixture(t *testing.T) (*Harness, *bigiptest.Server) {
	t.Helper()

	fake := bigiptest.New()
	t.Cleanup(fake.Close)

	bigipClient, err := bigip.NewClient(bigip.Config{
		Host:  fake.URL,
		Token: fake.ValidToken,
	})
	require.NoError(t, err)

	sc, err := server.NewServerContext(context.Background(),
		server.WithClient(bigipClient),
		server.WithLogger(slog.New(slog.DiscardHandler)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })

	mcpSrv := mcpserver.NewMCPServer("mcp-bigip-test", "0.0.0",
		mcpserver.WithToolCapabilities(true),
	)
	require.NoError(t, irule.RegisterIRuleTools(mcpSrv, sc))
	require.NoError(t, virtual.RegisterVirtualTools(mcpSrv, sc))
	require.NoError(t, logs.RegisterLogTools(mcpSrv, sc))
	require.NoError(t, system.RegisterSystemTools(mcpSrv, sc))

	mcpClient, err := client.NewInProcessClient(mcpSrv)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mcpClient.Close() })
	require.NoError(t, mcpClient.Start(context.Background()))

	return New(mcpClient, slog.New(slog.DiscardHandler)), fake
}

func TestHarnessRunsFullFlow(t *testing.T) {
	h, fake := newHarnessFixture(t)
	h.RuleName = "probe_rule"

	report, err := h.Run(context.Background())
	require.NoError(t, err)

	var names []string
	for _, step := range report.Steps {
		names = append(names, step.Name)
	}
	assert.Equal(t, []string{
		"initialize",
		"list tools",
		"select virtual server",
		"create iRule",
		"update iRule",
		"attach iRule",
		"tail log",
		"detach iRule",
		"delete iRule",
	}, names)

	// The probe is gone and the virtual server binding list is empty again.
	assert.Empty(t, fake.RuleNames())
	assert.Empty(t, fake.VirtualRules("/Common/TestVs"))
}

func TestHarnessUsesConfiguredVirtualServer(t *testing.T) {
	h, _ := newHarnessFixture(t)
	h.RuleName = "probe_rule"
	h.VirtualName = "TestVs"

	report, err := h.Run(context.Background())
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(report.Steps), 3)
	assert.Equal(t, "select virtual server", report.Steps[2].Name)
	assert.Equal(t, "TestVs", report.Steps[2].Detail)
}

func TestHarnessCleansUpWhenAttachFails(t *testing.T) {
	h, fake := newHarnessFixture(t)
	h.RuleName = "probe_rule"
	h.VirtualName = "no_such_vs"

	_, err := h.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bigip_virtual_attach_irule")

	// The failed run removed its probe iRule.
	assert.Empty(t, fake.RuleNames())
}

func TestHarnessReportsMissingTools(t *testing.T) {
	fake := bigiptest.New()
	t.Cleanup(fake.Close)

	bigipClient, err := bigip.NewClient(bigip.Config{Host: fake.URL, Token: fake.ValidToken})
	require.NoError(t, err)

	sc, err := server.NewServerContext(context.Background(),
		server.WithClient(bigipClient),
		server.WithLogger(slog.New(slog.DiscardHandler)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })

	// Only the iRule family: the harness should notice what is absent.
	mcpSrv := mcpserver.NewMCPServer("mcp-bigip-test", "0.0.0",
		mcpserver.WithToolCapabilities(true),
	)
	require.NoError(t, irule.RegisterIRuleTools(mcpSrv, sc))

	mcpClient, err := client.NewInProcessClient(mcpSrv)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mcpClient.Close() })
	require.NoError(t, mcpClient.Start(context.Background()))

	h := New(mcpClient, slog.New(slog.DiscardHandler))
	_, err = h.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing tools")
	assert.Contains(t, err.Error(), "bigip_virtual_attach_irule")
}
