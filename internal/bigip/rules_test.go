package bigip

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f5ops/mcp-bigip/internal/bigip/bigiptest"
)

func newFakeBackedClient(t *testing.T, fake *bigiptest.Server) Client {
	t.Helper()
	client, err := NewClient(Config{Host: fake.URL, Token: fake.ValidToken})
	require.NoError(t, err)
	return client
}

func TestListRulesFiltersPartitionAndStripsDefinitions(t *testing.T) {
	fake := bigiptest.New()
	defer fake.Close()
	client := newFakeBackedClient(t, fake)
	ctx := context.Background()

	_, err := client.CreateRule(ctx, "keep", "Common", `when HTTP_REQUEST { log local0. "hit" }`)
	require.NoError(t, err)
	_, err = client.CreateRule(ctx, "skip", "Other", `when HTTP_REQUEST { }`)
	require.NoError(t, err)

	rules, err := client.ListRules(ctx, RuleListOptions{})
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "keep", rules[0].Name)
	assert.Empty(t, rules[0].Definition, "definitions are stripped unless requested")

	full, err := client.ListRules(ctx, RuleListOptions{IncludeDefinition: true})
	require.NoError(t, err)
	require.Len(t, full, 1)
	assert.Contains(t, full[0].Definition, "HTTP_REQUEST")
}

func TestRuleLifecycle(t *testing.T) {
	fake := bigiptest.New()
	defer fake.Close()
	client := newFakeBackedClient(t, fake)
	ctx := context.Background()

	created, err := client.CreateRule(ctx, "codex_test", "", `when HTTP_REQUEST { log local0. "hit" }`)
	require.NoError(t, err)
	assert.Equal(t, "/Common/codex_test", created.FullPath)

	updated, err := client.UpdateRule(ctx, "codex_test", "", `when HTTP_REQUEST { log local0. "hit v2" }`)
	require.NoError(t, err)
	assert.Contains(t, updated.Definition, "v2")

	got, err := client.GetRule(ctx, "codex_test", "")
	require.NoError(t, err)
	assert.Contains(t, got.Definition, "v2")

	require.NoError(t, client.DeleteRule(ctx, "codex_test", ""))

	rules, err := client.ListRules(ctx, RuleListOptions{})
	require.NoError(t, err)
	for _, rule := range rules {
		assert.NotEqual(t, "codex_test", rule.Name)
	}
}

func TestCreateRuleConflict(t *testing.T) {
	fake := bigiptest.New()
	defer fake.Close()
	client := newFakeBackedClient(t, fake)
	ctx := context.Background()

	_, err := client.CreateRule(ctx, "dup", "", "body")
	require.NoError(t, err)
	_, err = client.CreateRule(ctx, "dup", "", "body")
	require.ErrorIs(t, err, ErrRemoteOperation)
	assert.True(t, IsConflict(err))
}

func TestRuleArgumentValidation(t *testing.T) {
	fake := bigiptest.New()
	defer fake.Close()
	client := newFakeBackedClient(t, fake)
	ctx := context.Background()

	_, err := client.CreateRule(ctx, "", "", "body")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = client.CreateRule(ctx, "name", "", "   ")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = client.UpdateRule(ctx, "", "", "body")
	assert.ErrorIs(t, err, ErrValidation)
	err = client.DeleteRule(ctx, "", "")
	assert.ErrorIs(t, err, ErrValidation)
}
