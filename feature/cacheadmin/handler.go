package cacheadmin

import (
	"delivery-reconciler/core/logger"
	"delivery-reconciler/core/verify"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes verification cache administration over HTTP.
type Handler struct {
	cache  *verify.Cache
	logger *zap.Logger
}

// NewHandler creates a new cache administration handler.
func NewHandler(cache *verify.Cache, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{cache: cache, logger: logger}
}

// RegisterRoutes registers the cache administration routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/cache")
	group.Delete("/", h.HandleFlushAll)
	group.Delete("/:storeId", h.HandleFlushStore)
	group.Delete("/:storeId/invoices/:invoiceRef", h.HandleFlushInvoice)
	group.Post("/sweep", h.HandleSweep)
}

// HandleFlushAll drops every cached verification.
// @Summary Flush Cache
// @Description Drop every cached verification result. Subsequent reconciliations hit the ledger again.
// @Tags cache
// @Produce json
// @Success 200 {object} map[string]string "Flushed"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /cache [delete]
func (h *Handler) HandleFlushAll(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	if err := h.cache.InvalidateAll(c.Context()); err != nil {
		l.Error("Failed to flush verification cache", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Verification cache flushed")
	return c.JSON(fiber.Map{"status": "flushed"})
}

// HandleFlushStore drops cached verifications for one store.
// @Summary Flush Store Cache
// @Description Drop cached verification results for a single store, e.g. after its ledger binding changed.
// @Tags cache
// @Produce json
// @Param storeId path string true "Store ID"
// @Success 200 {object} map[string]string "Flushed"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /cache/{storeId} [delete]
func (h *Handler) HandleFlushStore(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	storeID := c.Params("storeId")

	if err := h.cache.InvalidateStore(c.Context(), storeID); err != nil {
		l.Error("Failed to flush store cache", zap.String("store_id", storeID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Store verification cache flushed", zap.String("store_id", storeID))
	return c.JSON(fiber.Map{"status": "flushed", "store_id": storeID})
}

// HandleFlushInvoice drops cached verifications for one invoice reference
// within a store.
// @Summary Flush Invoice Cache
// @Description Drop cached verification results for one invoice reference within a store, e.g. after the ledger row was corrected.
// @Tags cache
// @Produce json
// @Param storeId path string true "Store ID"
// @Param invoiceRef path string true "Invoice Reference"
// @Success 200 {object} map[string]string "Flushed"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /cache/{storeId}/invoices/{invoiceRef} [delete]
func (h *Handler) HandleFlushInvoice(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	storeID := c.Params("storeId")
	invoiceRef := c.Params("invoiceRef")

	if err := h.cache.InvalidateInvoiceRef(c.Context(), storeID, invoiceRef); err != nil {
		l.Error("Failed to flush invoice cache",
			zap.String("store_id", storeID),
			zap.String("invoice_reference", invoiceRef),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Invoice verification cache flushed",
		zap.String("store_id", storeID),
		zap.String("invoice_reference", invoiceRef))
	return c.JSON(fiber.Map{"status": "flushed", "store_id": storeID, "invoice_reference": invoiceRef})
}

// HandleSweep removes expired entries immediately instead of waiting for the
// background sweeper.
// @Summary Sweep Cache
// @Description Remove expired cache entries now and report how many were purged.
// @Tags cache
// @Produce json
// @Success 200 {object} map[string]int64 "Purged Count"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /cache/sweep [post]
func (h *Handler) HandleSweep(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	purged, err := h.cache.PurgeExpired(c.Context())
	if err != nil {
		l.Error("Failed to sweep verification cache", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Verification cache swept", zap.Int64("purged", purged))
	return c.JSON(fiber.Map{"status": "swept", "purged": purged})
}
