package bigip

import (
	"context"
	"net/http"
)

const virtualCollectionPath = "/mgmt/tm/ltm/virtual"

type virtualCollection struct {
	Items []VirtualServer `json:"items"`
}

// ListVirtuals implements VirtualManager.
func (c *restClient) ListVirtuals(ctx context.Context) ([]VirtualServer, error) {
	result, err := c.do(ctx, http.MethodGet, virtualCollectionPath, nil)
	if err != nil {
		return nil, err
	}
	var collection virtualCollection
	if err := result.Decode(&collection); err != nil {
		return nil, err
	}

	virtuals := make([]VirtualServer, 0, len(collection.Items))
	for _, vs := range collection.Items {
		if vs.Partition == c.cfg.Partition {
			virtuals = append(virtuals, vs)
		}
	}
	return virtuals, nil
}

// GetVirtual implements VirtualManager.
func (c *restClient) GetVirtual(ctx context.Context, name string) (*VirtualServer, error) {
	if err := requireName(name); err != nil {
		return nil, err
	}
	result, err := c.do(ctx, http.MethodGet, virtualPath(name, c.cfg.Partition), nil)
	if err != nil {
		return nil, err
	}
	var vs VirtualServer
	if err := result.Decode(&vs); err != nil {
		return nil, err
	}
	if vs.FullPath == "" {
		vs.FullPath = fullPath(name, c.cfg.Partition)
	}
	return &vs, nil
}

// AttachRule implements VirtualManager. The binding list is read, extended
// append-if-absent, and written back wholesale; iControl replaces arrays,
// never merges them. A concurrent writer between the read and the write is
// silently overwritten (accepted limitation, there is no conditional-write
// primitive on this endpoint).
func (c *restClient) AttachRule(ctx context.Context, virtualName, ruleName string) (*BindingUpdate, error) {
	return c.rewriteBindings(ctx, virtualName, ruleName, func(rules []string, rulePath string) ([]string, bool) {
		for _, existing := range rules {
			if existing == rulePath {
				return rules, false
			}
		}
		return append(rules, rulePath), true
	})
}

// DetachRule implements VirtualManager. Detaching a rule that is not bound
// is a no-op success returning the unchanged list.
func (c *restClient) DetachRule(ctx context.Context, virtualName, ruleName string) (*BindingUpdate, error) {
	return c.rewriteBindings(ctx, virtualName, ruleName, func(rules []string, rulePath string) ([]string, bool) {
		next := make([]string, 0, len(rules))
		changed := false
		for _, existing := range rules {
			if existing == rulePath {
				changed = true
				continue
			}
			next = append(next, existing)
		}
		return next, changed
	})
}

// rewriteBindings runs the shared read-modify-write sequence for attach and
// detach. The PATCH is skipped entirely when the recompute is a no-op.
func (c *restClient) rewriteBindings(ctx context.Context, virtualName, ruleName string, recompute func([]string, string) ([]string, bool)) (*BindingUpdate, error) {
	if err := requireName(virtualName); err != nil {
		return nil, &ValidationError{Field: "virtualName", Reason: "must not be empty"}
	}
	if err := requireName(ruleName); err != nil {
		return nil, &ValidationError{Field: "ruleName", Reason: "must not be empty"}
	}

	vs, err := c.GetVirtual(ctx, virtualName)
	if err != nil {
		return nil, err
	}

	rulePath := fullPath(ruleName, c.cfg.Partition)
	next, changed := recompute(vs.Rules, rulePath)

	update := &BindingUpdate{
		VirtualPath: vs.FullPath,
		RulePath:    rulePath,
		Rules:       next,
		Changed:     changed,
	}
	if !changed {
		return update, nil
	}

	// Send an empty JSON array rather than null when the last rule goes.
	if next == nil {
		next = []string{}
		update.Rules = next
	}
	result, err := c.do(ctx, http.MethodPatch, virtualPath(virtualName, c.cfg.Partition), map[string][]string{
		"rules": next,
	})
	if err != nil {
		return nil, err
	}

	var patched VirtualServer
	if err := result.Decode(&patched); err != nil {
		return nil, err
	}
	if patched.Rules != nil {
		update.Rules = patched.Rules
	}
	return update, nil
}

func virtualPath(name, partition string) string {
	return virtualCollectionPath + "/" + normalizeName(name, partition)
}
