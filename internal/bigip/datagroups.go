package bigip

import (
	"context"
	"net/http"
)

const dataGroupCollectionPath = "/mgmt/tm/ltm/data-group/internal"

type dataGroupCollection struct {
	Items []DataGroup `json:"items"`
}

// ListDataGroups implements DataGroupManager.
func (c *restClient) ListDataGroups(ctx context.Context, opts DataGroupListOptions) ([]DataGroup, error) {
	result, err := c.do(ctx, http.MethodGet, dataGroupCollectionPath, nil)
	if err != nil {
		return nil, err
	}
	var collection dataGroupCollection
	if err := result.Decode(&collection); err != nil {
		return nil, err
	}

	groups := make([]DataGroup, 0, len(collection.Items))
	for _, group := range collection.Items {
		if group.Partition != c.cfg.Partition {
			continue
		}
		if !opts.IncludeRecords {
			group.Records = nil
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// CreateDataGroup implements DataGroupManager.
func (c *restClient) CreateDataGroup(ctx context.Context, spec DataGroupSpec) (*DataGroup, error) {
	if err := requireName(spec.Name); err != nil {
		return nil, err
	}
	if spec.Type == "" {
		return nil, &ValidationError{Field: "type", Reason: "must be one of string, ip, integer"}
	}
	partition := c.partitionOrDefault(spec.Partition)

	payload := spec.payload()
	payload["name"] = spec.Name
	payload["partition"] = partition
	payload["type"] = spec.Type

	result, err := c.do(ctx, http.MethodPost, dataGroupCollectionPath, payload)
	if err != nil {
		return nil, err
	}
	return decodeDataGroup(result, spec.Name, partition)
}

// UpdateDataGroup implements DataGroupManager. A populated Records array
// replaces the remote records wholesale.
func (c *restClient) UpdateDataGroup(ctx context.Context, name string, spec DataGroupSpec) (*DataGroup, error) {
	if err := requireName(name); err != nil {
		return nil, err
	}
	partition := c.partitionOrDefault(spec.Partition)

	payload := spec.payload()
	if spec.Type != "" {
		payload["type"] = spec.Type
	}
	if len(payload) == 0 {
		return nil, &ValidationError{Field: "spec", Reason: "no fields to update"}
	}

	result, err := c.do(ctx, http.MethodPatch, dataGroupCollectionPath+"/"+normalizeName(name, partition), payload)
	if err != nil {
		return nil, err
	}
	return decodeDataGroup(result, name, partition)
}

// DeleteDataGroup implements DataGroupManager. Shares the delete-body
// tolerance with DeleteRule.
func (c *restClient) DeleteDataGroup(ctx context.Context, name, partition string) error {
	if err := requireName(name); err != nil {
		return err
	}
	partition = c.partitionOrDefault(partition)

	_, err := c.do(ctx, http.MethodDelete, dataGroupCollectionPath+"/"+normalizeName(name, partition), nil)
	return err
}

func (s DataGroupSpec) payload() map[string]any {
	payload := map[string]any{}
	if s.Description != "" {
		payload["description"] = s.Description
	}
	if s.Records != nil {
		payload["records"] = s.Records
	}
	return payload
}

func decodeDataGroup(result *Result, name, partition string) (*DataGroup, error) {
	group := DataGroup{Name: name, Partition: partition, FullPath: fullPath(name, partition)}
	if err := result.Decode(&group); err != nil {
		return nil, err
	}
	if group.FullPath == "" {
		group.FullPath = fullPath(group.Name, group.Partition)
	}
	return &group, nil
}
