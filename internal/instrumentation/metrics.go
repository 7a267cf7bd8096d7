// Package instrumentation provides prometheus metrics and OpenTelemetry
// tracing setup for the MCP server.
package instrumentation

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's prometheus collectors on a private registry so
// tests can build isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	toolCalls    *prometheus.CounterVec
	toolDuration *prometheus.HistogramVec
}

// NewMetrics builds a Metrics instance with its own registry, including the
// standard Go runtime and process collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mcp_bigip",
			Name:      "tool_calls_total",
			Help:      "Tool invocations by tool name and outcome.",
		}, []string{"tool", "status"}),
		toolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mcp_bigip",
			Name:      "tool_call_duration_seconds",
			Help:      "Tool invocation latency, including the iControl round trips.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tool"}),
	}
	registry.MustRegister(m.toolCalls, m.toolDuration)
	return m
}

// RecordToolCall records one tool invocation.
func (m *Metrics) RecordToolCall(tool, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.toolCalls.WithLabelValues(tool, status).Inc()
	m.toolDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// Handler exposes the registry for a /metrics listener.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, used by tests to gather families.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
