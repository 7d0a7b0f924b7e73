package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/cafepos/internal/domain/models"
)

// CatalogService is what the menu endpoints need from the catalog.
type CatalogService interface {
	Available(ctx context.Context, category string, date models.EffectiveDate) ([]models.MenuItem, error)
	Menu(ctx context.Context) ([]models.MenuItem, error)
	AddItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error)
	UpdateItem(ctx context.Context, item models.MenuItem) error
	RemoveItem(ctx context.Context, id int) error
}

// MenuHandler serves the cashier menu board and the manager's menu editor.
type MenuHandler struct {
	svc    CatalogService
	today  func() models.EffectiveDate
	logger *zap.Logger
}

// NewMenuHandler constructs the menu HTTP adapter. today yields the business date.
func NewMenuHandler(svc CatalogService, today func() models.EffectiveDate, logger *zap.Logger) *MenuHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MenuHandler{svc: svc, today: today, logger: logger}
}

type menuItemRequest struct {
	Name        string          `json:"name" binding:"required"`
	Category    models.Category `json:"category" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

// Available lists the items of ?category= that sell on the business date.
func (h *MenuHandler) Available(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		badRequest(c, "category is required")
		return
	}
	date := h.today()
	items, err := h.svc.Available(c.Request.Context(), category, date)
	if err != nil {
		respondError(c, h.logger, "failed listing available items", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date.String(), "category": category, "items": items})
}

// Categories lists the menu board tabs.
func (h *MenuHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.Categories})
}

// List returns the full menu regardless of season.
func (h *MenuHandler) List(c *gin.Context) {
	items, err := h.svc.Menu(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "failed listing menu", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Create adds a menu item.
func (h *MenuHandler) Create(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	item, err := h.svc.AddItem(c.Request.Context(), req.item(0))
	if err != nil {
		respondError(c, h.logger, "failed adding menu item", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update rewrites name, category and price of :id.
func (h *MenuHandler) Update(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if err := h.svc.UpdateItem(c.Request.Context(), req.item(id)); err != nil {
		respondError(c, h.logger, "failed updating menu item", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete removes :id from the menu.
func (h *MenuHandler) Delete(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.RemoveItem(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "failed removing menu item", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (r menuItemRequest) item(id int) models.MenuItem {
	return models.MenuItem{ID: id, Name: r.Name, Category: r.Category, Price: r.Price, Description: r.Description}
}
