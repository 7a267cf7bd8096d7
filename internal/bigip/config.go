package bigip

import (
	"strings"
	"time"
)

// Defaults applied by Config.withDefaults.
const (
	DefaultPartition     = "Common"
	DefaultLoginProvider = "tmos"
	DefaultTimeout       = 30 * time.Second
	DefaultMaxTailLines  = 1000
)

// Config is the explicit, caller-owned configuration for a Client.
// The client never reads environment variables or files; cmd/ resolves
// flags and environment into this value and hands it to NewClient.
type Config struct {
	// Host is the BIG-IP management address, e.g. "https://bigip.example.com".
	// A trailing slash is stripped.
	Host string

	// Token is an optional pre-issued X-F5-Auth-Token. When set it is used
	// unconditionally and never refreshed; Username/Password are ignored.
	Token string

	// Username and Password are exchanged for a token at the login endpoint
	// when no static Token is configured.
	Username string
	Password string

	// Partition scopes resource names; defaults to "Common".
	Partition string

	// LoginProvider names the authentication provider used by the login
	// exchange; defaults to "tmos".
	LoginProvider string

	// InsecureSkipVerify disables TLS certificate verification.
	// Verification is on by default.
	InsecureSkipVerify bool

	// Timeout bounds every HTTP round trip; defaults to 30s.
	Timeout time.Duration

	// MaxTailLines is the ceiling for log-tail requests; larger requests are
	// clamped. Defaults to 1000.
	MaxTailLines int
}

// Validate checks that the configuration is complete enough to build a client.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return &ValidationError{Field: "host", Reason: "must not be empty"}
	}
	if c.Token == "" && (c.Username == "" || c.Password == "") {
		return &ValidationError{Field: "credentials", Reason: "either a token or a username/password pair is required"}
	}
	return nil
}

// HasCredentials reports whether the client owns credentials it can use to
// mint or refresh a token. Static-token configurations return false: a
// caller-asserted token is never refreshed automatically.
func (c Config) HasCredentials() bool {
	return c.Token == "" && c.Username != "" && c.Password != ""
}

// withDefaults returns a copy with zero values replaced by defaults.
func (c Config) withDefaults() Config {
	c.Host = strings.TrimRight(c.Host, "/")
	if c.Partition == "" {
		c.Partition = DefaultPartition
	}
	if c.LoginProvider == "" {
		c.LoginProvider = DefaultLoginProvider
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxTailLines <= 0 {
		c.MaxTailLines = DefaultMaxTailLines
	}
	return c
}
