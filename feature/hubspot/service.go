package hubspot

import (
	"context"

	"destination-sync/core/logger"
	"destination-sync/core/metrics"
	"destination-sync/core/reconcile"
	"destination-sync/core/transport"

	"go.uber.org/zap"
)

// SendEventRequest is the body accepted by the events endpoint.
type SendEventRequest struct {
	Settings Settings     `json:"settings"`
	Payload  EventPayload `json:"payload"`
}

// Service delivers custom events to HubSpot.
type Service struct {
	reconciler *Reconciler
	logger     *zap.Logger
}

// NewService wires a reconciler over the given transport and schema cache.
func NewService(cfg Config, t transport.Transport, cache *reconcile.SchemaCache, m *metrics.Metrics, logg *zap.Logger) *Service {
	if logg == nil {
		logg = zap.NewNop()
	}
	logg = logger.WithDestination(logg, destination)
	client := NewClient(t, cfg, m)
	return &Service{
		reconciler: NewReconciler(client, cache, cfg, m, logg),
		logger:     logg,
	}
}

// SendEvent reconciles the event schema and sends the event.
func (s *Service) SendEvent(ctx context.Context, req SendEventRequest) (*SendResult, error) {
	res, err := s.reconciler.ReconcileAndSend(ctx, req.Payload, req.Settings)
	if err != nil {
		return nil, err
	}

	logger.WithScope(s.logger, req.Settings.ScopeID).Info("Event sent",
		zap.String("event", res.EventName),
		zap.String("fqn", res.FullyQualifiedName),
		zap.String("schema_action", string(res.SchemaAction)),
	)
	return res, nil
}
