// Package bigip is a thin client for the BIG-IP iControl REST API.
//
// It owns the session token lifecycle (lazy mint, cache, at most one
// transparent refresh after an authorization failure), request/response
// normalization, the iRule / virtual-server / pool / data-group operations
// used by the MCP tool layer, and the safety-constrained LTM log tail.
//
// The client is deliberately not a general-purpose REST client: every
// operation performs at most one network round trip plus the optional
// authentication exchange, there is no retry or backoff machinery beyond the
// single auth refresh, and the only state held is the in-memory token.
// Callers needing retry policy layer it on top.
//
// Errors surface through four types — TransportError, AuthenticationError,
// RemoteOperationError, ValidationError — all matchable with errors.Is
// against the package sentinels.
package bigip
