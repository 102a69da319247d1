// Package metrics counts what a scan did against the API and the disk cache.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics holds the counters for one run. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	APIRequests     *prometheus.CounterVec
	CacheLookups    *prometheus.CounterVec
	NationsEnriched prometheus.Counter
	NationsSkipped  prometheus.Counter
}

// New creates a Metrics backed by its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		APIRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "goldeneye_api_requests_total",
			Help: "Total number of API requests by outcome",
		}, []string{"outcome"}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "goldeneye_cache_lookups_total",
			Help: "Total number of disk cache lookups by result",
		}, []string{"result"}),
		NationsEnriched: factory.NewCounter(prometheus.CounterOpts{
			Name: "goldeneye_nations_enriched_total",
			Help: "Total number of nations fetched or loaded and decoded",
		}),
		NationsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "goldeneye_nations_skipped_total",
			Help: "Total number of nations skipped because the API had no data",
		}),
	}
}

func (m *Metrics) ObserveRequest(outcome string) {
	if m == nil {
		return
	}
	m.APIRequests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) IncrementEnriched() {
	if m == nil {
		return
	}
	m.NationsEnriched.Inc()
}

func (m *Metrics) IncrementSkipped() {
	if m == nil {
		return
	}
	m.NationsSkipped.Inc()
}

// WriteTextfile writes all counters to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
