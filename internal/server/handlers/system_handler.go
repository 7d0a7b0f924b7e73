package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/cafepos/internal/domain/models"
	"github.com/mamadbah2/cafepos/pkg/clients/weather"
)

// DateStore holds the business date.
type DateStore interface {
	Get() models.EffectiveDate
	Set(date models.EffectiveDate) models.EffectiveDate
}

// SystemHandler serves register-wide settings and the weather widget.
type SystemHandler struct {
	dates   DateStore
	weather weather.Client
	logger  *zap.Logger
}

// NewSystemHandler constructs the settings HTTP adapter.
func NewSystemHandler(dates DateStore, weatherClient weather.Client, logger *zap.Logger) *SystemHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SystemHandler{dates: dates, weather: weatherClient, logger: logger}
}

type businessDateRequest struct {
	Date string `json:"date" binding:"required"`
}

// BusinessDate returns the current business date.
func (h *SystemHandler) BusinessDate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"date": h.dates.Get().String()})
}

// SetBusinessDate moves the business date.
func (h *SystemHandler) SetBusinessDate(c *gin.Context) {
	var req businessDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	date, err := models.ParseEffectiveDate(req.Date)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	prev := h.dates.Set(date)
	c.JSON(http.StatusOK, gin.H{"date": date.String(), "previous": prev.String()})
}

// Weather proxies current conditions at the store.
func (h *SystemHandler) Weather(c *gin.Context) {
	conditions, err := h.weather.Current(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "failed to fetch weather", err)
		return
	}
	c.JSON(http.StatusOK, conditions)
}
