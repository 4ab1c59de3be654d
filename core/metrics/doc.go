// Package metrics holds the Prometheus collectors exported by the service.
//
// Collectors are registered against an explicit registry so tests can build an
// isolated Metrics value per case. The HTTP layer exposes the same registry at
// GET /metrics.
package metrics
