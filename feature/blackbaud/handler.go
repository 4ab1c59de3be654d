package blackbaud

import (
	"destination-sync/core/fault"
	"destination-sync/core/logger"
	"destination-sync/core/server"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for Raiser's Edge NXT.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the Raiser's Edge NXT routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/blackbaud")
	group.Post("/constituents", h.HandleUpsertConstituent)
	group.Post("/gifts", h.HandleCreateGift)
}

// HandleUpsertConstituent creates or updates an individual constituent.
// @Summary Create or Update Constituent
// @Description Finds the constituent by id, lookup id or email and updates it with its address, email, phone and online presence, or creates it.
// @Tags blackbaud
// @Accept json
// @Produce json
// @Param request body ConstituentRequest true "Settings and constituent payload"
// @Success 200 {object} RecordResult "Constituent id"
// @Failure 400 {object} server.Problem "Invalid payload"
// @Failure 422 {object} server.Problem "Rejected by Blackbaud"
// @Failure 503 {object} server.Problem "Retry later"
// @Security ApiKeyAuth
// @Router /blackbaud/constituents [post]
func (h *Handler) HandleUpsertConstituent(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req ConstituentRequest
	if err := c.BodyParser(&req); err != nil {
		return server.WriteProblem(c, fault.Validationf(fault.CodeInvalidBody, "invalid request body: %v", err))
	}

	res, err := h.service.UpsertConstituent(c.UserContext(), req)
	if err != nil {
		l.Warn("Constituent reconciliation failed", logger.FaultFields(err)...)
		return server.WriteProblem(c, err)
	}
	return c.JSON(res)
}

// HandleCreateGift creates a gift.
// @Summary Create Gift
// @Description Creates a gift, reconciling the donor constituent first when constituent fields are supplied.
// @Tags blackbaud
// @Accept json
// @Produce json
// @Param request body GiftRequest true "Settings and gift payload"
// @Success 200 {object} GiftResult "Gift id"
// @Failure 400 {object} server.Problem "Invalid payload"
// @Failure 422 {object} server.Problem "Rejected by Blackbaud"
// @Failure 503 {object} server.Problem "Retry later"
// @Security ApiKeyAuth
// @Router /blackbaud/gifts [post]
func (h *Handler) HandleCreateGift(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req GiftRequest
	if err := c.BodyParser(&req); err != nil {
		return server.WriteProblem(c, fault.Validationf(fault.CodeInvalidBody, "invalid request body: %v", err))
	}

	res, err := h.service.CreateGift(c.UserContext(), req)
	if err != nil {
		l.Warn("Gift creation failed", logger.FaultFields(err)...)
		return server.WriteProblem(c, err)
	}
	return c.JSON(res)
}
