package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/cafepos/internal/domain/models"
	"github.com/mamadbah2/cafepos/internal/service/ordering"
)

// EmployeeHeader identifies the cashier whose session a request acts on.
const EmployeeHeader = "X-Employee-ID"

// MenuLookup resolves a menu id to an item that sells on date.
type MenuLookup interface {
	Sellable(ctx context.Context, id int, date models.EffectiveDate) (models.MenuItem, error)
}

// OrderHandler drives the cashier's in-progress order.
type OrderHandler struct {
	sessions        *ordering.SessionManager
	composer        *ordering.Composer
	menu            MenuLookup
	today           func() models.EffectiveDate
	defaultEmployee int
	logger          *zap.Logger
}

// NewOrderHandler constructs the order HTTP adapter.
func NewOrderHandler(sessions *ordering.SessionManager, composer *ordering.Composer, menu MenuLookup, today func() models.EffectiveDate, defaultEmployee int, logger *zap.Logger) *OrderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderHandler{
		sessions:        sessions,
		composer:        composer,
		menu:            menu,
		today:           today,
		defaultEmployee: defaultEmployee,
		logger:          logger,
	}
}

type addLineRequest struct {
	MenuID  int      `json:"menu_id" binding:"required"`
	Removed []string `json:"removed"`
	Added   []string `json:"added"`
}

type removeByLabelRequest struct {
	Label string `json:"label" binding:"required"`
}

type orderView struct {
	EmployeeID int                `json:"employee_id"`
	Location   string             `json:"location"`
	Lines      []models.OrderLine `json:"lines"`
	Labels     []string           `json:"labels"`
	Total      string             `json:"total"`
}

// Options lists removable ingredients and addable extras.
func (h *OrderHandler) Options(c *gin.Context) {
	opts := h.composer.Options()
	c.JSON(http.StatusOK, gin.H{"base_ingredients": opts.BaseIngredients, "extras": opts.Extras})
}

// Current shows the cashier's order.
func (h *OrderHandler) Current(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, view(s.Order()))
}

// AddLine customizes a menu item and appends it to the order.
func (h *OrderHandler) AddLine(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req addLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	item, err := h.menu.Sellable(c.Request.Context(), req.MenuID, h.today())
	if err != nil {
		respondError(c, h.logger, "menu item not sellable", err)
		return
	}
	line, err := h.composer.Compose(item, req.Removed, req.Added)
	if err != nil {
		respondError(c, h.logger, "failed composing line", err)
		return
	}

	total := s.AddLine(line)
	c.JSON(http.StatusCreated, gin.H{"line": line, "label": line.Label(), "total": total.StringFixed(2)})
}

// RemoveLine drops the line with id :line.
func (h *OrderHandler) RemoveLine(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("line"))
	if err != nil {
		badRequest(c, "line must be a uuid")
		return
	}
	if _, err := s.RemoveLine(id); err != nil {
		respondError(c, h.logger, "failed removing line", err)
		return
	}
	c.JSON(http.StatusOK, view(s.Order()))
}

// RemoveLineByLabel drops a line by its displayed label.
func (h *OrderHandler) RemoveLineByLabel(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req removeByLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if _, err := s.RemoveLineByLabel(req.Label); err != nil {
		respondError(c, h.logger, "failed removing line by label", err)
		return
	}
	c.JSON(http.StatusOK, view(s.Order()))
}

// Submit persists the order on the business date and starts a new one.
func (h *OrderHandler) Submit(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	order, err := s.Submit(c.Request.Context(), h.today())
	if err != nil {
		respondError(c, h.logger, "failed submitting order", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"order_id":  order.ID,
		"placed_at": order.PlacedAt,
		"total":     order.Total().StringFixed(2),
		"lines":     len(order.Lines),
	})
}

// Close ends the cashier's shift. Any unsubmitted lines are dropped and
// reported back so the register can show what was lost.
func (h *OrderHandler) Close(c *gin.Context) {
	employeeID, ok := h.employee(c)
	if !ok {
		return
	}
	discarded, open := h.sessions.Close(employeeID)
	if !open {
		c.JSON(http.StatusOK, gin.H{"employee_id": employeeID, "closed": false, "discarded": 0})
		return
	}
	if !discarded.IsEmpty() {
		h.logger.Warn("shift closed with unsubmitted order",
			zap.Int("employee_id", employeeID),
			zap.Int("lines", len(discarded.Lines)),
			zap.String("total", discarded.Total().StringFixed(2)))
	}
	c.JSON(http.StatusOK, gin.H{"employee_id": employeeID, "closed": true, "discarded": len(discarded.Lines)})
}

func (h *OrderHandler) session(c *gin.Context) (*ordering.Session, bool) {
	employeeID, ok := h.employee(c)
	if !ok {
		return nil, false
	}
	return h.sessions.Session(employeeID), true
}

func (h *OrderHandler) employee(c *gin.Context) (int, bool) {
	raw := c.GetHeader(EmployeeHeader)
	if raw == "" {
		return h.defaultEmployee, true
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		badRequest(c, EmployeeHeader+" must be a positive integer")
		return 0, false
	}
	return id, true
}

func view(o models.Order) orderView {
	v := orderView{
		EmployeeID: o.EmployeeID,
		Location:   o.Location,
		Lines:      o.Lines,
		Labels:     make([]string, 0, len(o.Lines)),
		Total:      o.Total().StringFixed(2),
	}
	if v.Lines == nil {
		v.Lines = []models.OrderLine{}
	}
	for _, l := range o.Lines {
		v.Labels = append(v.Labels, l.Label())
	}
	return v
}
