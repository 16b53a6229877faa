package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// NewRegistry creates a private registry with every promptplay metric
// registered on it. Each CLI invocation gets its own.
func NewRegistry() (*prometheus.Registry, *Metrics) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	return reg, m
}

// WriteFile writes every metric in reg to path in the text exposition format.
func WriteFile(reg prometheus.Gatherer, path string) error {
	return prometheus.WriteToTextfile(path, reg)
}
