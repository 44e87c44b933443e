// Package metrics exposes Prometheus collectors for swipe activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors. Each instance has its own registry.
type Metrics struct {
	registry *prometheus.Registry

	Decisions         *prometheus.CounterVec
	Unlocks           *prometheus.CounterVec
	Energy            prometheus.Gauge
	StoreFailures     *prometheus.CounterVec
	LocationFallbacks prometheus.Counter
}

// New registers a fresh set of collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Decisions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tastequest_decisions_total",
				Help: "Decisions submitted, by kind and outcome",
			},
			[]string{"kind", "status"},
		),
		Unlocks: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tastequest_unlocks_total",
				Help: "Unlock attempts, by result",
			},
			[]string{"status"},
		),
		Energy: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "tastequest_energy",
				Help: "Current session energy",
			},
		),
		StoreFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tastequest_store_failures_total",
				Help: "Persistence gateway failures, by operation",
			},
			[]string{"op"},
		),
		LocationFallbacks: f.NewCounter(
			prometheus.CounterOpts{
				Name: "tastequest_location_fallbacks_total",
				Help: "Location lookups that fell back to the default position",
			},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
