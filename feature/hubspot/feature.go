package hubspot

import (
	"destination-sync/core/metrics"
	"destination-sync/core/reconcile"
	"destination-sync/core/transport"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	enabled bool
	service *Service
	handler *Handler
}

// NewFeature creates a new HubSpot feature.
func NewFeature(cfg Config, t transport.Transport, cache *reconcile.SchemaCache, m *metrics.Metrics, logger *zap.Logger) *Feature {
	svc := NewService(cfg, t, cache, m, logger)
	return &Feature{enabled: cfg.Enabled, service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "hubspot"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service returns the feature's service.
func (f *Feature) Service() *Service {
	return f.service
}
