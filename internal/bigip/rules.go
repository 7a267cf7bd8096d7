package bigip

import (
	"context"
	"net/http"
	"strings"
)

const ruleCollectionPath = "/mgmt/tm/ltm/rule"

// ruleCollection is the wire shape of the rule collection endpoint.
type ruleCollection struct {
	Items []Rule `json:"items"`
}

// ListRules implements RuleManager.
func (c *restClient) ListRules(ctx context.Context, opts RuleListOptions) ([]Rule, error) {
	partition := c.partitionOrDefault(opts.Partition)

	result, err := c.do(ctx, http.MethodGet, ruleCollectionPath, nil)
	if err != nil {
		return nil, err
	}

	var collection ruleCollection
	if err := result.Decode(&collection); err != nil {
		return nil, &RemoteOperationError{
			StatusCode: result.StatusCode,
			Method:     http.MethodGet,
			Path:       ruleCollectionPath,
			Body:       "undecodable rule collection: " + err.Error(),
		}
	}

	// iControl returns every partition's rules; scope to ours client-side.
	rules := make([]Rule, 0, len(collection.Items))
	for _, rule := range collection.Items {
		if rule.Partition != partition {
			continue
		}
		if !opts.IncludeDefinition {
			rule.Definition = ""
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// GetRule implements RuleManager.
func (c *restClient) GetRule(ctx context.Context, name, partition string) (*Rule, error) {
	if err := requireName(name); err != nil {
		return nil, err
	}
	partition = c.partitionOrDefault(partition)

	result, err := c.do(ctx, http.MethodGet, rulePath(name, partition), nil)
	if err != nil {
		return nil, err
	}
	var rule Rule
	if err := result.Decode(&rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

// CreateRule implements RuleManager.
func (c *restClient) CreateRule(ctx context.Context, name, partition, definition string) (*Rule, error) {
	if err := requireName(name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(definition) == "" {
		return nil, &ValidationError{Field: "definition", Reason: "must not be empty"}
	}
	partition = c.partitionOrDefault(partition)

	result, err := c.do(ctx, http.MethodPost, ruleCollectionPath, map[string]string{
		"name":         name,
		"partition":    partition,
		"apiAnonymous": definition,
	})
	if err != nil {
		return nil, err
	}
	return decodeRule(result, name, partition)
}

// UpdateRule implements RuleManager.
func (c *restClient) UpdateRule(ctx context.Context, name, partition, definition string) (*Rule, error) {
	if err := requireName(name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(definition) == "" {
		return nil, &ValidationError{Field: "definition", Reason: "must not be empty"}
	}
	partition = c.partitionOrDefault(partition)

	result, err := c.do(ctx, http.MethodPatch, rulePath(name, partition), map[string]string{
		"apiAnonymous": definition,
	})
	if err != nil {
		return nil, err
	}
	return decodeRule(result, name, partition)
}

// DeleteRule implements RuleManager. An empty or undecodable success body is
// a successful deletion; only the status code matters here.
func (c *restClient) DeleteRule(ctx context.Context, name, partition string) error {
	if err := requireName(name); err != nil {
		return err
	}
	partition = c.partitionOrDefault(partition)

	_, err := c.do(ctx, http.MethodDelete, rulePath(name, partition), nil)
	return err
}

func rulePath(name, partition string) string {
	return ruleCollectionPath + "/" + normalizeName(name, partition)
}

// decodeRule reads a rule from the structured branch, falling back to the
// natural key when the remote returned a bare success.
func decodeRule(result *Result, name, partition string) (*Rule, error) {
	rule := Rule{Name: name, Partition: partition, FullPath: fullPath(name, partition)}
	if err := result.Decode(&rule); err != nil {
		return nil, err
	}
	if rule.FullPath == "" {
		rule.FullPath = fullPath(rule.Name, rule.Partition)
	}
	return &rule, nil
}

func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return nil
}
