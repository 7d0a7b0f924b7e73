package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/cafepos/internal/domain/models"
	"github.com/mamadbah2/cafepos/internal/service/catalog"
	"github.com/mamadbah2/cafepos/internal/service/inventory"
	"github.com/mamadbah2/cafepos/internal/service/kitchen"
	"github.com/mamadbah2/cafepos/internal/service/ordering"
	"github.com/mamadbah2/cafepos/internal/service/reporting"
	"github.com/mamadbah2/cafepos/pkg/clients/weather"
)

var (
	validationErrors = []error{
		ordering.ErrEmptyOrder,
		ordering.ErrFlagMismatch,
		ordering.ErrUnknownOption,
		inventory.ErrInvalidAmount,
		models.ErrUnparseablePrice,
		catalog.ErrUnknownCategory,
		catalog.ErrInvalidMenuItem,
		catalog.ErrOutOfSeason,
		reporting.ErrInvalidRange,
	}
	notFoundErrors = []error{
		models.ErrNotFound,
		models.ErrLineNotFound,
		inventory.ErrUnknownIngredient,
		kitchen.ErrOrderNotFound,
	}
)

// statusFor maps domain errors onto HTTP statuses. Anything unrecognized is
// a store failure.
func statusFor(err error) int {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return http.StatusUnprocessableEntity
		}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}
	switch {
	case errors.Is(err, ordering.ErrPersistence):
		return http.StatusServiceUnavailable
	case errors.Is(err, weather.ErrDisabled), errors.Is(err, ErrSnapshotsDisabled):
		return http.StatusNotImplemented
	default:
		return http.StatusBadGateway
	}
}

func respondError(c *gin.Context, logger *zap.Logger, msg string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, zap.Error(err))
	} else {
		logger.Debug(msg, zap.Error(err))
	}

	body := gin.H{"error": err.Error()}
	if errors.Is(err, ordering.ErrPersistence) {
		body["retry"] = true
	}
	c.JSON(status, body)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		badRequest(c, name+" must be an integer")
		return 0, false
	}
	return v, true
}

func dateQuery(c *gin.Context, name string) (models.EffectiveDate, bool) {
	raw := c.Query(name)
	if raw == "" {
		badRequest(c, name+" is required (YYYY-MM-DD)")
		return models.EffectiveDate{}, false
	}
	d, err := models.ParseEffectiveDate(raw)
	if err != nil {
		badRequest(c, err.Error())
		return models.EffectiveDate{}, false
	}
	return d, true
}
