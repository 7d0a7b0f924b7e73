package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/cafepos/internal/domain/models"
)

// KitchenService is the kitchen display queue.
type KitchenService interface {
	Current(ctx context.Context) ([]models.OrderRow, error)
	Completed(ctx context.Context, date models.EffectiveDate) ([]models.OrderRow, error)
	Complete(ctx context.Context, orderID int) error
}

// KitchenHandler serves the kitchen display.
type KitchenHandler struct {
	svc    KitchenService
	today  func() models.EffectiveDate
	logger *zap.Logger
}

// NewKitchenHandler constructs the kitchen HTTP adapter.
func NewKitchenHandler(svc KitchenService, today func() models.EffectiveDate, logger *zap.Logger) *KitchenHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KitchenHandler{svc: svc, today: today, logger: logger}
}

// Orders lists ?type=current or ?type=completed orders.
func (h *KitchenHandler) Orders(c *gin.Context) {
	var (
		rows []models.OrderRow
		err  error
	)
	switch c.Query("type") {
	case "current":
		rows, err = h.svc.Current(c.Request.Context())
	case "completed":
		rows, err = h.svc.Completed(c.Request.Context(), h.today())
	default:
		badRequest(c, "specify ?type=current or ?type=completed")
		return
	}
	if err != nil {
		respondError(c, h.logger, "failed listing kitchen orders", err)
		return
	}
	if rows == nil {
		rows = []models.OrderRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// Complete marks order :id as done.
func (h *KitchenHandler) Complete(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Complete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "failed completing order", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order_id": id})
}
