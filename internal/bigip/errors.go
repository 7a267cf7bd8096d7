package bigip

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for the four failure classes the client can surface.
// These can be checked with errors.Is() for programmatic handling.
var (
	// ErrTransport indicates a network-level failure (connection refused,
	// timeout, TLS failure) before any application response was received.
	// Transport failures are never retried by the client.
	ErrTransport = errors.New("transport failure")

	// ErrAuthentication indicates that the login exchange failed, that a
	// request still failed authorization after one refresh-and-retry cycle,
	// or that no credential material was available to refresh with.
	ErrAuthentication = errors.New("authentication failed")

	// ErrRemoteOperation indicates that BIG-IP accepted the connection but
	// reported a non-success application outcome.
	ErrRemoteOperation = errors.New("remote operation failed")

	// ErrValidation indicates that caller-supplied arguments failed local
	// validation before any network call was made.
	ErrValidation = errors.New("invalid argument")
)

// TransportError wraps a network-level failure with the request it aborted.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure during %s %s: %v", e.Method, e.Path, e.Err)
}

// Unwrap returns the underlying network error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements custom error matching for errors.Is().
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// AuthenticationError describes a failed token exchange or an authorization
// failure that survived the single refresh-and-retry cycle.
type AuthenticationError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

// Unwrap returns the underlying error, if any.
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is implements custom error matching for errors.Is().
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthentication
}

// RemoteOperationError carries the status code and diagnostic body of a
// non-success iControl response.
type RemoteOperationError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

// Error implements the error interface.
func (e *RemoteOperationError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		body = "no body"
	}
	return fmt.Sprintf("BIG-IP returned %d %s for %s %s: %s",
		e.StatusCode, http.StatusText(e.StatusCode), e.Method, e.Path, body)
}

// Is implements custom error matching for errors.Is().
func (e *RemoteOperationError) Is(target error) bool {
	return target == ErrRemoteOperation
}

// IsConflict reports whether the remote rejected the operation because the
// resource already exists.
func IsConflict(err error) bool {
	var remoteErr *RemoteOperationError
	if errors.As(err, &remoteErr) {
		return remoteErr.StatusCode == http.StatusConflict
	}
	return false
}

// IsNotFound reports whether the remote could not find the referenced resource.
func IsNotFound(err error) bool {
	var remoteErr *RemoteOperationError
	if errors.As(err, &remoteErr) {
		return remoteErr.StatusCode == http.StatusNotFound
	}
	return false
}

// ValidationError describes a caller-supplied argument rejected before any
// network call.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is implements custom error matching for errors.Is().
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
