// Package metrics counts what the facade dispatches.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/level"
	aglametrics "github.com/gxo-labs/aglalog/pkg/aglalog/v1/metrics"
)

// Outcomes recorded for each dispatched record.
const (
	OutcomeEmitted      = "emitted"
	OutcomeFormatFailed = "format_failed"
	OutcomeOutputFailed = "output_failed"
)

// DispatchMetrics counts records that passed the threshold, by level and
// outcome. Suppressed records are never counted.
type DispatchMetrics struct {
	registry *prometheus.Registry
	records  *prometheus.CounterVec
}

var _ aglametrics.RegistryProvider = (*DispatchMetrics)(nil)

// NewDispatchMetrics creates the counters and registers them with reg. A nil
// reg gets a fresh registry of its own, reachable through Registry.
func NewDispatchMetrics(reg *prometheus.Registry) (*DispatchMetrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	records := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aglalog",
		Name:      "records_total",
		Help:      "Log records that passed the threshold, by level and outcome.",
	}, []string{"level", "outcome"})
	if err := reg.Register(records); err != nil {
		return nil, err
	}
	return &DispatchMetrics{registry: reg, records: records}, nil
}

// Registry returns the registry the counters live in, so applications can
// serve it from their own endpoint.
func (m *DispatchMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe counts one record. A nil receiver is a no-op so callers can leave
// metrics unset.
func (m *DispatchMetrics) Observe(lvl level.Level, outcome string) {
	if m == nil {
		return
	}
	m.records.WithLabelValues(lvl.String(), outcome).Inc()
}

// Counter exposes a single series, mainly for tests.
func (m *DispatchMetrics) Counter(lvl level.Level, outcome string) prometheus.Counter {
	return m.records.WithLabelValues(lvl.String(), outcome)
}
