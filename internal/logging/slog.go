// Package logging provides slog attribute helpers and sanitizers shared
// across the codebase so log fields stay consistently named.
package logging

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"
)

// Common log attribute keys.
const (
	KeyOperation = "operation"
	KeyPartition = "partition"
	KeyResource  = "resource"
	KeyVirtual   = "virtual"
	KeyStatus    = "status"
	KeyError     = "error"
	KeyHost      = "host"
	KeyTool      = "tool"
	KeyDuration  = "duration"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ipv4Regex matches IPv4 addresses for host sanitization.
var ipv4Regex = regexp.MustCompile(`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Partition returns a slog attribute for the partition.
func Partition(partition string) slog.Attr {
	return slog.String(KeyPartition, partition)
}

// Resource returns a slog attribute for the resource full path.
func Resource(path string) slog.Attr {
	return slog.String(KeyResource, path)
}

// Virtual returns a slog attribute for the virtual server path.
func Virtual(path string) slog.Attr {
	return slog.String(KeyVirtual, path)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Tool returns a slog attribute for the tool name.
func Tool(name string) slog.Attr {
	return slog.String(KeyTool, name)
}

// Err returns a slog attribute for an error.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

// Host returns a slog attribute for a host with IP addresses redacted.
func Host(host string) slog.Attr {
	return slog.String(KeyHost, SanitizeHost(host))
}

// SanitizeHost redacts IP addresses from a host or URL so device addresses
// do not end up in shipped logs while hostnames stay readable.
func SanitizeHost(host string) string {
	if host == "" {
		return "<empty>"
	}
	if !strings.Contains(host, "://") {
		return ipv4Regex.ReplaceAllString(host, "<redacted-ip>")
	}
	parsed, err := url.Parse(host)
	if err != nil {
		return ipv4Regex.ReplaceAllString(host, "<redacted-ip>")
	}
	if ipv4Regex.MatchString(parsed.Host) {
		parsed.Host = ipv4Regex.ReplaceAllString(parsed.Host, "<redacted-ip>")
		return parsed.String()
	}
	return host
}

// SanitizeToken returns a masked representation of a token for logging.
// Only the length is reported; partial prefixes can still aid attacks.
func SanitizeToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[token:%d chars]", len(token))
}

// New builds the process logger. format is "json" or "text"; level is one of
// debug, info, warn, error. Output goes to stderr so stdio MCP framing on
// stdout stays clean.
func New(level, format string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if strings.ToLower(format) == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
