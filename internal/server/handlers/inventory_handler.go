package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/cafepos/internal/domain/models"
	"github.com/mamadbah2/cafepos/internal/service/inventory"
)

// InventoryService is the ledger the stock endpoints act on.
type InventoryService interface {
	Refresh(ctx context.Context) ([]models.InventoryItem, error)
	LowStock(ctx context.Context) ([]models.InventoryItem, error)
	Restock(ctx context.Context, ingredient string, delta int) (models.InventoryItem, error)
}

// InventoryHandler serves the manager's stock view.
type InventoryHandler struct {
	svc    InventoryService
	logger *zap.Logger
}

// NewInventoryHandler constructs the inventory HTTP adapter.
func NewInventoryHandler(svc InventoryService, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{svc: svc, logger: logger}
}

type stockView struct {
	models.InventoryItem
	NeedsRestock bool `json:"needs_restock"`
}

type restockRequest struct {
	Ingredient string `json:"ingredient" binding:"required"`
	// Amount is kept as text: the register sends whatever the operator typed.
	Amount string `json:"amount"`
}

// List reloads and returns every ingredient with its restock flag.
func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.svc.Refresh(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "failed loading inventory", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": stockViews(items)})
}

// Low reloads and returns the ingredients at or below their restock minimum.
func (h *InventoryHandler) Low(c *gin.Context) {
	items, err := h.svc.LowStock(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "failed loading low stock", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": stockViews(items)})
}

// Restock adds the typed amount to an ingredient. Blank or non-numeric input
// is ignored rather than rejected.
func (h *InventoryHandler) Restock(c *gin.Context) {
	var req restockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	delta, ok := inventory.ParseRestockAmount(req.Amount)
	if !ok {
		h.logger.Warn("ignoring restock input", zap.String("ingredient", req.Ingredient), zap.String("amount", req.Amount))
		c.JSON(http.StatusOK, gin.H{"ignored": true})
		return
	}

	item, err := h.svc.Restock(c.Request.Context(), req.Ingredient, delta)
	if err != nil {
		respondError(c, h.logger, "failed restocking", err)
		return
	}
	c.JSON(http.StatusOK, stockView{InventoryItem: item, NeedsRestock: item.NeedsRestock()})
}

func stockViews(items []models.InventoryItem) []stockView {
	out := make([]stockView, 0, len(items))
	for _, it := range items {
		out = append(out, stockView{InventoryItem: it, NeedsRestock: it.NeedsRestock()})
	}
	return out
}
