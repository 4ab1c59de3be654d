package hubspot

import (
	"destination-sync/core/fault"
	"destination-sync/core/logger"
	"destination-sync/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for HubSpot events.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the HubSpot routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/hubspot")
	group.Post("/events", h.HandleSendEvent)
}

// HandleSendEvent reconciles the event schema and sends a custom event.
// @Summary Send Custom Event
// @Description Creates or extends the custom event definition as the sync mode allows, then sends the event.
// @Tags hubspot
// @Accept json
// @Produce json
// @Param request body SendEventRequest true "Settings and event payload"
// @Success 200 {object} SendResult "Delivered event"
// @Failure 400 {object} server.Problem "Invalid payload"
// @Failure 422 {object} server.Problem "Rejected by HubSpot"
// @Failure 503 {object} server.Problem "Retry later"
// @Security ApiKeyAuth
// @Router /hubspot/events [post]
func (h *Handler) HandleSendEvent(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req SendEventRequest
	if err := c.BodyParser(&req); err != nil {
		return server.WriteProblem(c, fault.Validationf(fault.CodeInvalidBody, "invalid request body: %v", err))
	}

	res, err := h.service.SendEvent(c.UserContext(), req)
	if err != nil {
		l.Warn("Event delivery failed", append(logger.FaultFields(err), zap.String("event", req.Payload.EventName))...)
		return server.WriteProblem(c, err)
	}

	return c.JSON(res)
}
