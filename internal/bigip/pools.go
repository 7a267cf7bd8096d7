package bigip

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

const poolCollectionPath = "/mgmt/tm/ltm/pool"

type poolCollection struct {
	Items []Pool `json:"items"`
}

// ListPools implements PoolManager.
func (c *restClient) ListPools(ctx context.Context, opts PoolListOptions) ([]Pool, error) {
	path := poolCollectionPath
	if len(opts.SelectFields) > 0 {
		path += "?$select=" + url.QueryEscape(strings.Join(opts.SelectFields, ","))
	}

	result, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var collection poolCollection
	if err := result.Decode(&collection); err != nil {
		return nil, err
	}

	pools := make([]Pool, 0, len(collection.Items))
	for _, pool := range collection.Items {
		// $select responses drop the partition field; keep those rows.
		if pool.Partition != "" && pool.Partition != c.cfg.Partition {
			continue
		}
		pools = append(pools, pool)
	}
	return pools, nil
}

// CreatePool implements PoolManager.
func (c *restClient) CreatePool(ctx context.Context, spec PoolSpec) (*Pool, error) {
	if err := requireName(spec.Name); err != nil {
		return nil, err
	}
	partition := c.partitionOrDefault(spec.Partition)

	payload := spec.payload()
	payload["name"] = spec.Name
	payload["partition"] = partition

	result, err := c.do(ctx, http.MethodPost, poolCollectionPath, payload)
	if err != nil {
		return nil, err
	}
	return decodePool(result, spec.Name, partition)
}

// ModifyPool implements PoolManager. Only the populated spec fields are
// sent; a populated Members array replaces the remote membership wholesale.
func (c *restClient) ModifyPool(ctx context.Context, name string, spec PoolSpec) (*Pool, error) {
	if err := requireName(name); err != nil {
		return nil, err
	}
	partition := c.partitionOrDefault(spec.Partition)

	payload := spec.payload()
	if len(payload) == 0 {
		return nil, &ValidationError{Field: "spec", Reason: "no fields to modify"}
	}

	result, err := c.do(ctx, http.MethodPatch, poolCollectionPath+"/"+normalizeName(name, partition), payload)
	if err != nil {
		return nil, err
	}
	return decodePool(result, name, partition)
}

// payload collects the populated spec fields into a PATCH/POST body.
func (s PoolSpec) payload() map[string]any {
	payload := map[string]any{}
	if s.LoadBalancingMode != "" {
		payload["loadBalancingMode"] = s.LoadBalancingMode
	}
	if s.Monitor != "" {
		payload["monitor"] = s.Monitor
	}
	if s.Description != "" {
		payload["description"] = s.Description
	}
	if s.Members != nil {
		payload["members"] = s.Members
	}
	return payload
}

func decodePool(result *Result, name, partition string) (*Pool, error) {
	pool := Pool{Name: name, Partition: partition, FullPath: fullPath(name, partition)}
	if err := result.Decode(&pool); err != nil {
		return nil, err
	}
	if pool.FullPath == "" {
		pool.FullPath = fullPath(pool.Name, pool.Partition)
	}
	return &pool, nil
}
