package reconcile

import (
	"errors"

	"delivery-reconciler/core/ledger"
	"delivery-reconciler/core/logger"
	"delivery-reconciler/core/verify"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for reconciliation.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the reconciliation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/reconcile")
	group.Post("/pending", h.HandleReconcilePending)
	group.Post("/:deliveryId", h.HandleReconcileDelivery)

	app.Get("/deliveries/:deliveryId", h.HandleGetDelivery)
}

// HandleReconcileDelivery reconciles a single delivery against its store ledger.
// @Summary Reconcile Delivery
// @Description Verify a delivery's invoice reference and supplier against the store's external ledger and update its reconciliation status.
// @Tags reconcile
// @Accept json
// @Produce json
// @Param deliveryId path int true "Delivery ID"
// @Success 200 {object} map[string]string "Outcome"
// @Failure 404 {object} map[string]string "Delivery Not Found"
// @Failure 422 {object} map[string]string "Store Not Configured"
// @Failure 502 {object} map[string]string "Ledger Unavailable"
// @Router /reconcile/{deliveryId} [post]
func (h *Handler) HandleReconcileDelivery(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	deliveryID, err := c.ParamsInt("deliveryId")
	if err != nil || deliveryID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "delivery id must be a positive integer",
		})
	}

	outcome, err := h.service.Reconcile(c.Context(), uint(deliveryID))
	if err != nil {
		l.Error("Reconciliation failed", zap.Int("delivery_id", deliveryID), zap.Error(err))
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"outcome": string(outcome),
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"delivery_id": deliveryID,
		"outcome":     string(outcome),
	})
}

// HandleReconcilePending reconciles every unreconciled delivery.
// @Summary Reconcile Pending Deliveries
// @Description Run reconciliation for all deliveries not yet reconciled and return a batch report.
// @Tags reconcile
// @Accept json
// @Produce json
// @Success 200 {object} reconcile.Report "Batch Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconcile/pending [post]
func (h *Handler) HandleReconcilePending(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, object, err := h.service.ReconcilePendingAndArchive(c.Context())
	if err != nil {
		l.Error("Batch reconciliation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if object != "" {
		c.Set("X-Report-Object", object)
	}
	return c.JSON(report)
}

// HandleGetDelivery returns a delivery with its reconciliation status.
// @Summary Get Delivery
// @Description Get a delivery record including its reconciliation status and matched ledger payload.
// @Tags reconcile
// @Accept json
// @Produce json
// @Param deliveryId path int true "Delivery ID"
// @Success 200 {object} models.Delivery "Delivery"
// @Failure 404 {object} map[string]string "Delivery Not Found"
// @Router /deliveries/{deliveryId} [get]
func (h *Handler) HandleGetDelivery(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	deliveryID, err := c.ParamsInt("deliveryId")
	if err != nil || deliveryID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "delivery id must be a positive integer",
		})
	}

	d, err := h.service.deliveries.GetDelivery(c.Context(), uint(deliveryID))
	if err != nil {
		if errors.Is(err, ErrDeliveryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Failed to load delivery", zap.Int("delivery_id", deliveryID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(d)
}

// statusForError maps service failures to HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrDeliveryNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrConfigMissing):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, verify.ErrInvalidQuery):
		return fiber.StatusBadRequest
	case ledger.IsLookupFailure(err):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
