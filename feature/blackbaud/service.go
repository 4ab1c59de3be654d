package blackbaud

import (
	"context"

	"destination-sync/core/logger"
	"destination-sync/core/metrics"
	"destination-sync/core/transport"

	"go.uber.org/zap"
)

// ConstituentRequest is the body accepted by the constituents endpoint.
type ConstituentRequest struct {
	Settings Settings           `json:"settings"`
	Payload  ConstituentPayload `json:"payload"`
}

// GiftRequest is the body accepted by the gifts endpoint.
type GiftRequest struct {
	Settings Settings    `json:"settings"`
	Payload  GiftPayload `json:"payload"`
}

// Service handles Raiser's Edge NXT operations.
type Service struct {
	reconciler *Reconciler
	gifts      *GiftService
	logger     *zap.Logger
}

// NewService wires the SKY client, reconciler and gift service.
func NewService(cfg Config, t transport.Transport, m *metrics.Metrics, logg *zap.Logger) *Service {
	if logg == nil {
		logg = zap.NewNop()
	}
	logg = logger.WithDestination(logg, destination)
	client := NewClient(t, cfg, m)
	reconciler := NewReconciler(client, m, logg)
	return &Service{
		reconciler: reconciler,
		gifts:      NewGiftService(reconciler, client, logg),
		logger:     logg,
	}
}

// UpsertConstituent creates or updates a constituent.
func (s *Service) UpsertConstituent(ctx context.Context, req ConstituentRequest) (*RecordResult, error) {
	res, err := s.reconciler.ReconcileRecord(ctx, req.Payload, req.Settings)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Constituent reconciled", zap.String("constituent_id", res.ID), zap.Bool("created", res.Created))
	return res, nil
}

// CreateGift creates a gift.
func (s *Service) CreateGift(ctx context.Context, req GiftRequest) (*GiftResult, error) {
	return s.gifts.CreateGift(ctx, req.Payload, req.Settings)
}
