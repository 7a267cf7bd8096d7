// Package testdata provides a configurable mock BIG-IP client shared by the
// tool handler tests.
package testdata

import (
	"context"
	"errors"

	"github.com/f5ops/mcp-bigip/internal/bigip"
)

// ErrNotConfigured is returned by mock methods without a configured func.
var ErrNotConfigured = errors.New("mock method not configured")

// MockClient implements bigip.Client with per-method function fields.
// Unconfigured methods return ErrNotConfigured so tests fail loudly when a
// handler calls something unexpected.
type MockClient struct {
	ListRulesFunc  func(ctx context.Context, opts bigip.RuleListOptions) ([]bigip.Rule, error)
	GetRuleFunc    func(ctx context.Context, name, partition string) (*bigip.Rule, error)
	CreateRuleFunc func(ctx context.Context, name, partition, definition string) (*bigip.Rule, error)
	UpdateRuleFunc func(ctx context.Context, name, partition, definition string) (*bigip.Rule, error)
	DeleteRuleFunc func(ctx context.Context, name, partition string) error

	ListVirtualsFunc func(ctx context.Context) ([]bigip.VirtualServer, error)
	GetVirtualFunc   func(ctx context.Context, name string) (*bigip.VirtualServer, error)
	AttachRuleFunc   func(ctx context.Context, virtualName, ruleName string) (*bigip.BindingUpdate, error)
	DetachRuleFunc   func(ctx context.Context, virtualName, ruleName string) (*bigip.BindingUpdate, error)

	ListPoolsFunc  func(ctx context.Context, opts bigip.PoolListOptions) ([]bigip.Pool, error)
	CreatePoolFunc func(ctx context.Context, spec bigip.PoolSpec) (*bigip.Pool, error)
	ModifyPoolFunc func(ctx context.Context, name string, spec bigip.PoolSpec) (*bigip.Pool, error)

	ListDataGroupsFunc  func(ctx context.Context, opts bigip.DataGroupListOptions) ([]bigip.DataGroup, error)
	CreateDataGroupFunc func(ctx context.Context, spec bigip.DataGroupSpec) (*bigip.DataGroup, error)
	UpdateDataGroupFunc func(ctx context.Context, name string, spec bigip.DataGroupSpec) (*bigip.DataGroup, error)
	DeleteDataGroupFunc func(ctx context.Context, name, partition string) error

	TailLogFunc func(ctx context.Context, opts bigip.TailOptions) ([]string, error)

	InfoValue bigip.Info
}

var _ bigip.Client = (*MockClient)(nil)

func (m *MockClient) ListRules(ctx context.Context, opts bigip.RuleListOptions) ([]bigip.Rule, error) {
	if m.ListRulesFunc == nil {
		return nil, ErrNotConfigured
	}
	return m.ListRulesFunc(ctx, opts)
}

func (m *MockClient) GetRule(ctx context.Context, name, partition string) (*bigip.Rule, error) {
	if m.GetRuleFunc == nil {
		return nil, ErrNotConfigured
	}
	return m.GetRuleFunc(ctx, name, partition)
}

func (m *MockClient) CreateRule(ctx context.Context, name, partition, definition string) (*bigip.Rule, error) {
	if m.CreateRuleFunc == nil {
		return nil, ErrNotConfigured
	}
	return m.CreateRuleFunc(ctx, name, partition, definition)
}

func (m *MockClient) UpdateRule(ctx context.Context, name, partition, definition string) (*bigip.Rule, error) {
	if m.UpdateRuleFunc == nil {
		return nil, ErrNotConfigured
	}
	return m.UpdateRuleFunc(ctx, name, partition, definition)
}

func (m *MockClient) DeleteRule(ctx context.Context, name, partition string) error {
	if m.DeleteRuleFunc == nil {
		return ErrNotConfigured
	}
	return m.DeleteRuleFunc(ctx, name, partition)
}

func (m *MockClient) ListVirtuals(ctx context.Context) ([]bigip.VirtualServer, error) {
	if m.ListVirtualsFunc == nil {
		return nil, ErrNotConfigured
	}
	return m.ListVirtualsFunc(ctx)
}

func (m *MockClient) GetVirtual(ctx context.Context, name string) (*bigip.VirtualServer, error) {
	if m.GetVirtualFunc == nil {
		return nil, ErrNotConfigured
	}
	return m.GetVirtualFunc(ctx, name)
}

func (m *MockClient) AttachRule(ctx context.Context, virtualName, ruleName string) (*bigip.BindingUpdate, error) {
	if m.AttachRuleFunc == nil {
		return nil, ErrNotConfigured
	}
	return m.AttachRuleFunc(ctx, virtualName, ruleName)
}

func (m *MockClient) DetachRule(ctx context.Context, virtualName, ruleName string) (*bigip.BindingUpdate, error) {
	if m.DetachRuleFunc == nil {
		return nil, ErrNotConfigured
	}
	return m.DetachRuleFunc(ctx, virtualName, ruleName)
}

func (m *MockClient) ListPools(ctx context.Context, opts bigip.PoolListOptions) ([]bigip.Pool, error) {
	if m.ListPoolsFunc == nil {
		return nil, ErrNotConfigured
	}
	return m.ListPoolsFunc(ctx, opts)
}

func (m *MockClient) CreatePool(ctx context.Context, spec bigip.PoolSpec) (*bigip.Pool, error) {
	if m.CreatePoolFunc == nil {
		return nil, ErrNotConfigured
	}
	return m.CreatePoolFunc(ctx, spec)
}

func (m *MockClient) ModifyPool(ctx context.Context, name string, spec bigip.PoolSpec) (*bigip.Pool, error) {
	if m.ModifyPoolFunc == nil {
		return nil, ErrNotConfigured
	}
	return m.ModifyPoolFunc(ctx, name, spec)
}

func (m *MockClient) ListDataGroups(ctx context.Context, opts bigip.DataGroupListOptions) ([]bigip.DataGroup, error) {
	if m.ListDataGroupsFunc == nil {
		return nil, ErrNotConfigured
	}
	return m.ListDataGroupsFunc(ctx, opts)
}

func (m *MockClient) CreateDataGroup(ctx context.Context, spec bigip.DataGroupSpec) (*bigip.DataGroup, error) {
	if m.CreateDataGroupFunc == nil {
		return nil, ErrNotConfigured
	}
	return m.CreateDataGroupFunc(ctx, spec)
}

func (m *MockClient) UpdateDataGroup(ctx context.Context, name string, spec bigip.DataGroupSpec) (*bigip.DataGroup, error) {
	if m.UpdateDataGroupFunc == nil {
		return nil, ErrNotConfigured
	}
	return m.UpdateDataGroupFunc(ctx, name, spec)
}

func (m *MockClient) DeleteDataGroup(ctx context.Context, name, partition string) error {
	if m.DeleteDataGroupFunc == nil {
		return ErrNotConfigured
	}
	return m.DeleteDataGroupFunc(ctx, name, partition)
}

func (m *MockClient) TailLog(ctx context.Context, opts bigip.TailOptions) ([]string, error) {
	if m.TailLogFunc == nil {
		return nil, ErrNotConfigured
	}
	return m.TailLogFunc(ctx, opts)
}

func (m *MockClient) Info() bigip.Info {
	return m.InfoValue
}
