// Package metrics exposes Prometheus collectors for command handling and
// cloud provider calls.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name
const Namespace = "vmbot"

// Command outcomes
const (
	OutcomeOK      = "ok"
	OutcomeDenied  = "denied"
	OutcomeFailed  = "failed"
	OutcomeUnknown = "unknown_command"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	commands         *prometheus.CounterVec
	providerCalls    *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec
	gatewayConnected prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "commands_total",
				Help:      "Chat commands handled, by command and outcome.",
			},
			[]string{"command", "outcome"},
		),
		providerCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "provider_calls_total",
				Help:      "Cloud control-plane calls, by operation and result.",
			},
			[]string{"operation", "result"},
		),
		providerLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "provider_call_duration_seconds",
				Help:      "Latency of cloud control-plane calls.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		gatewayConnected: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "gateway_connected",
				Help:      "1 while the chat gateway session is connected.",
			},
		),
	}

	reg.MustRegister(m.commands, m.providerCalls, m.providerLatency, m.gatewayConnected)
	return m
}

// ObserveCommand counts one handled chat command
func (m *Metrics) ObserveCommand(command, outcome string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(command, outcome).Inc()
}

// ObserveProviderCall records the result and latency of one provider call
func (m *Metrics) ObserveProviderCall(operation string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.providerCalls.WithLabelValues(operation, result).Inc()
	m.providerLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// SetGatewayConnected flips the gateway gauge
func (m *Metrics) SetGatewayConnected(connected bool) {
	if m == nil {
		return
	}
	if connected {
		m.gatewayConnected.Set(1)
		return
	}
	m.gatewayConnected.Set(0)
}
