// Package telemetry records conversion metrics on a private Prometheus
// registry and writes them in the text exposition format, suitable for the
// node_exporter textfile collector.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Row outcomes.
const (
	OutcomeConverted = "converted"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
)

// Metrics holds the converter's counters. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry
	rows     *prometheus.CounterVec
	entries  *prometheus.CounterVec
	outputs  *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tcga_fhir",
			Name:      "rows_total",
			Help:      "Input rows processed, by outcome.",
		}, []string{"outcome"}),
		entries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tcga_fhir",
			Name:      "entries_total",
			Help:      "Bundle entries produced, by resource type.",
		}, []string{"resource_type"}),
		outputs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tcga_fhir",
			Name:      "outputs_total",
			Help:      "Output units written, by kind (bundle or study).",
		}, []string{"kind"}),
	}
	m.registry.MustRegister(m.rows, m.entries, m.outputs)
	return m
}

// Row counts one processed row.
func (m *Metrics) Row(outcome string) {
	if m == nil {
		return
	}
	m.rows.WithLabelValues(outcome).Inc()
}

// Entries counts the entries of one bundle by resource type.
func (m *Metrics) Entries(resourceTypes []string) {
	if m == nil {
		return
	}
	for _, rt := range resourceTypes {
		m.entries.WithLabelValues(rt).Inc()
	}
}

// Output counts one written output unit.
func (m *Metrics) Output(kind string) {
	if m == nil {
		return
	}
	m.outputs.WithLabelValues(kind).Inc()
}

// WriteFile writes the current values to path atomically.
func (m *Metrics) WriteFile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
