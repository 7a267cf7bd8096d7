package bigip

import (
	"context"
)

// Client defines the interface for BIG-IP iControl REST operations.
// One instance serves one logical caller; concurrent callers should each
// construct their own instance (the token cache is not guarded against
// concurrent refresh from multiple goroutines racing distinct operations).
type Client interface {
	RuleManager
	VirtualManager
	PoolManager
	DataGroupManager
	LogManager

	// Info describes the endpoint this client talks to, without exposing
	// secret material.
	Info() Info
}

// RuleManager handles iRule CRUD on /mgmt/tm/ltm/rule.
type RuleManager interface {
	// ListRules returns the iRules in the configured (or override) partition.
	// Definitions are stripped unless opts.IncludeDefinition is set.
	ListRules(ctx context.Context, opts RuleListOptions) ([]Rule, error)

	// GetRule retrieves a single iRule by natural key.
	GetRule(ctx context.Context, name, partition string) (*Rule, error)

	// CreateRule creates a new iRule. The definition body is stored verbatim;
	// the client never parses it. An existing rule of the same name surfaces
	// as a RemoteOperationError with a conflict status.
	CreateRule(ctx context.Context, name, partition, definition string) (*Rule, error)

	// UpdateRule replaces the definition of an existing iRule via PATCH.
	UpdateRule(ctx context.Context, name, partition, definition string) (*Rule, error)

	// DeleteRule removes an iRule. An empty or undecodable success body is a
	// successful deletion.
	DeleteRule(ctx context.Context, name, partition string) error
}

// VirtualManager handles virtual servers and their iRule bindings.
type VirtualManager interface {
	// ListVirtuals returns the virtual servers in the configured partition.
	ListVirtuals(ctx context.Context) ([]VirtualServer, error)

	// GetVirtual retrieves a virtual server by name or full path.
	GetVirtual(ctx context.Context, name string) (*VirtualServer, error)

	// AttachRule appends a rule to the virtual server's binding list if it is
	// not already present, writing the full list back. Attaching an attached
	// rule is a no-op. The read-then-write sequence is not atomic: a
	// concurrent mutation of the binding list by another actor between the
	// read and the write is silently overwritten.
	AttachRule(ctx context.Context, virtualName, ruleName string) (*BindingUpdate, error)

	// DetachRule removes a rule from the binding list if present. Detaching
	// an absent rule is a no-op success. Carries the same read-then-write
	// race as AttachRule.
	DetachRule(ctx context.Context, virtualName, ruleName string) (*BindingUpdate, error)
}

// PoolManager handles LTM pools on /mgmt/tm/ltm/pool.
type PoolManager interface {
	// ListPools returns the pools in the configured partition, optionally
	// narrowed to the named fields.
	ListPools(ctx context.Context, opts PoolListOptions) ([]Pool, error)

	// CreatePool creates an LTM pool.
	CreatePool(ctx context.Context, spec PoolSpec) (*Pool, error)

	// ModifyPool patches an existing pool. Only the fields set in spec are
	// sent; the members array, when present, replaces the remote array
	// wholesale.
	ModifyPool(ctx context.Context, name string, spec PoolSpec) (*Pool, error)
}

// DataGroupManager handles internal data groups on
// /mgmt/tm/ltm/data-group/internal.
type DataGroupManager interface {
	ListDataGroups(ctx context.Context, opts DataGroupListOptions) ([]DataGroup, error)
	CreateDataGroup(ctx context.Context, spec DataGroupSpec) (*DataGroup, error)
	UpdateDataGroup(ctx context.Context, name string, spec DataGroupSpec) (*DataGroup, error)
	DeleteDataGroup(ctx context.Context, name, partition string) error
}

// LogManager handles LTM log retrieval.
type LogManager interface {
	// TailLog returns the last opts.Lines lines of /var/log/ltm, optionally
	// filtered client-side to lines containing opts.Contains. The filter
	// never enters the remote command string.
	TailLog(ctx context.Context, opts TailOptions) ([]string, error)
}

// Info describes a client's endpoint configuration.
type Info struct {
	Host      string `json:"host"`
	Partition string `json:"partition"`
	VerifyTLS bool   `json:"verifyTls"`
	AuthMode  string `json:"authMode"` // "static-token" or "credentials"
}

// Rule is a named iRule. Definition holds the TCL body verbatim.
type Rule struct {
	Name       string `json:"name"`
	Partition  string `json:"partition"`
	FullPath   string `json:"fullPath"`
	Definition string `json:"apiAnonymous,omitempty"`
	Generation int64  `json:"generation,omitempty"`
}

// RuleListOptions configures ListRules.
type RuleListOptions struct {
	// Partition overrides the configured partition when non-empty.
	Partition string

	// IncludeDefinition keeps the full script bodies in the result.
	IncludeDefinition bool
}

// VirtualServer is a virtual endpoint with its ordered rule binding list.
type VirtualServer struct {
	Name        string   `json:"name"`
	Partition   string   `json:"partition"`
	FullPath    string   `json:"fullPath"`
	Destination string   `json:"destination,omitempty"`
	Rules       []string `json:"rules,omitempty"`
	Generation  int64    `json:"generation,omitempty"`
}

// BindingUpdate reports the outcome of an attach or detach.
type BindingUpdate struct {
	VirtualPath string   `json:"virtualPath"`
	RulePath    string   `json:"rulePath"`
	Rules       []string `json:"rules"`
	Changed     bool     `json:"changed"`
}

// Pool is an LTM pool.
type Pool struct {
	Name              string       `json:"name"`
	Partition         string       `json:"partition"`
	FullPath          string       `json:"fullPath"`
	LoadBalancingMode string       `json:"loadBalancingMode,omitempty"`
	Monitor           string       `json:"monitor,omitempty"`
	Description       string       `json:"description,omitempty"`
	Members           []PoolMember `json:"members,omitempty"`
	Generation        int64        `json:"generation,omitempty"`
}

// PoolMember is one pool member in "address:port" form.
type PoolMember struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// PoolSpec carries the caller-supplied fields for pool create/modify.
// Zero-valued fields are omitted from the request body.
type PoolSpec struct {
	Name              string
	Partition         string
	LoadBalancingMode string
	Monitor           string
	Description       string
	Members           []PoolMember
}

// PoolListOptions configures ListPools.
type PoolListOptions struct {
	// SelectFields narrows the response to the named fields via $select.
	SelectFields []string
}

// DataGroup is an internal data group.
type DataGroup struct {
	Name        string            `json:"name"`
	Partition   string            `json:"partition"`
	FullPath    string            `json:"fullPath"`
	Type        string            `json:"type"`
	Description string            `json:"description,omitempty"`
	Records     []DataGroupRecord `json:"records,omitempty"`
	Generation  int64             `json:"generation,omitempty"`
}

// DataGroupRecord is one name/data pair in a data group.
type DataGroupRecord struct {
	Name string `json:"name"`
	Data string `json:"data,omitempty"`
}

// DataGroupSpec carries the caller-supplied fields for data group
// create/update. The Records array, when present, replaces the remote array
// wholesale.
type DataGroupSpec struct {
	Name        string
	Partition   string
	Type        string
	Description string
	Records     []DataGroupRecord
}

// DataGroupListOptions configures ListDataGroups.
type DataGroupListOptions struct {
	// IncludeRecords keeps record lists in the result.
	IncludeRecords bool
}

// TailOptions configures TailLog.
type TailOptions struct {
	// Lines is the number of lines to fetch. Must be positive; values above
	// the configured ceiling are clamped.
	Lines int

	// Contains, when non-empty, keeps only lines containing the substring.
	// Applied client-side after retrieval.
	Contains string
}
