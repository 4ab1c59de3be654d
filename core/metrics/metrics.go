package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "destination_sync"

// Metrics bundles every collector used by the reconcilers.
type Metrics struct {
	registry *prometheus.Registry

	// CacheHits counts schema cache lookups that returned a fresh entry.
	CacheHits prometheus.Counter
	// CacheMisses counts schema cache lookups that found nothing.
	CacheMisses prometheus.Counter
	// CacheBypass counts lookups made without a scope id (cache disabled for the call).
	CacheBypass prometheus.Counter
	// Reconciliations counts finished reconciliations by reconciler and outcome.
	Reconciliations *prometheus.CounterVec
	// RemoteRequests counts destination API calls by destination and status class.
	RemoteRequests *prometheus.CounterVec
}

// New creates collectors registered on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schema_cache_hits_total",
			Help:      "Schema cache lookups that returned a fresh entry.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schema_cache_misses_total",
			Help:      "Schema cache lookups that found no entry.",
		}),
		CacheBypass: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schema_cache_bypass_total",
			Help:      "Schema cache lookups skipped because no scope id was configured.",
		}),
		Reconciliations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciliations_total",
			Help:      "Finished reconciliations by reconciler and outcome.",
		}, []string{"reconciler", "outcome"}),
		RemoteRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_requests_total",
			Help:      "Destination API requests by destination and status class.",
		}, []string{"destination", "class"}),
	}
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// ObserveOutcome records the outcome label for a finished reconciliation.
// Outcome is "success" or the fault kind.
func (m *Metrics) ObserveOutcome(reconciler, outcome string) {
	if m == nil {
		return
	}
	m.Reconciliations.WithLabelValues(reconciler, outcome).Inc()
}

// ObserveStatus records a destination API response status.
func (m *Metrics) ObserveStatus(destination string, status int) {
	if m == nil {
		return
	}
	m.RemoteRequests.WithLabelValues(destination, StatusClass(status)).Inc()
}

// StatusClass buckets a status code ("2xx", "4xx", ...). Zero means the request never completed.
func StatusClass(status int) string {
	switch {
	case status <= 0:
		return "error"
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
