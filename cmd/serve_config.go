package cmd

import (
	"os"
	"strconv"
	"time"

	"github.com/f5ops/mcp-bigip/internal/bigip"
)

// Environment variable names honored by the serve command. Flags win over
// environment values.
const (
	envBigIPHost          = "BIGIP_HOST"
	envBigIPToken         = "BIGIP_TOKEN"
	envBigIPUsername      = "BIGIP_USERNAME"
	envBigIPPassword      = "BIGIP_PASSWORD"
	envBigIPPartition     = "BIGIP_PARTITION"
	envBigIPLoginProvider = "BIGIP_LOGIN_PROVIDER"
	envBigIPVerifySSL     = "BIGIP_VERIFY_SSL"
)

// ServeConfig holds all configuration for the serve command.
type ServeConfig struct {
	// Transport settings
	Transport string
	HTTPAddr  string

	// Endpoint paths
	SSEEndpoint     string
	MessageEndpoint string
	HTTPEndpoint    string

	// BIG-IP connection settings
	Host          string
	Token         string
	Username      string
	Password      string
	Partition     string
	LoginProvider string
	VerifySSL     bool
	Timeout       time.Duration
	MaxTailLines  int

	// Server behavior
	ReadOnly          bool
	AllowedOperations []string
	LogLevel          string
	LogFormat         string

	// Observability
	MetricsAddr  string
	TraceEnabled bool
}

// loadEnvIfEmpty fills target from the environment variable when the flag
// left it empty.
func loadEnvIfEmpty(target *string, envKey string) {
	if *target == "" {
		if value := os.Getenv(envKey); value != "" {
			*target = value
		}
	}
}

// applyEnvironment fills unset connection settings from the environment.
// verifyFlagSet reports whether --insecure-skip-verify was given explicitly;
// the BIGIP_VERIFY_SSL variable only applies when it was not.
func (c *ServeConfig) applyEnvironment(verifyFlagSet bool) {
	loadEnvIfEmpty(&c.Host, envBigIPHost)
	loadEnvIfEmpty(&c.Token, envBigIPToken)
	loadEnvIfEmpty(&c.Username, envBigIPUsername)
	loadEnvIfEmpty(&c.Password, envBigIPPassword)
	loadEnvIfEmpty(&c.Partition, envBigIPPartition)
	loadEnvIfEmpty(&c.LoginProvider, envBigIPLoginProvider)

	if !verifyFlagSet {
		if value := os.Getenv(envBigIPVerifySSL); value != "" {
			if parsed, err := strconv.ParseBool(value); err == nil {
				c.VerifySSL = parsed
			}
		}
	}
}

// clientConfig converts the serve configuration into a BIG-IP client
// configuration.
func (c *ServeConfig) clientConfig() bigip.Config {
	return bigip.Config{
		Host:               c.Host,
		Token:              c.Token,
		Username:           c.Username,
		Password:           c.Password,
		Partition:          c.Partition,
		LoginProvider:      c.LoginProvider,
		InsecureSkipVerify: !c.VerifySSL,
		Timeout:            c.Timeout,
		MaxTailLines:       c.MaxTailLines,
	}
}
