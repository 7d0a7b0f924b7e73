package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/cafepos/internal/domain/models"
)

// ReportService produces the manager reports.
type ReportService interface {
	XReport(ctx context.Context, date models.EffectiveDate) (models.XReport, error)
	ZReport(ctx context.Context, date models.EffectiveDate) (models.ZReport, error)
	RangeReport(ctx context.Context, start, end models.EffectiveDate) (models.RangeReport, error)
	UsageReport(ctx context.Context, start, end models.EffectiveDate) (models.UsageReport, error)
}

// SnapshotReader loads the Z report stored at close of day.
type SnapshotReader interface {
	DailyReport(ctx context.Context, day time.Time) (models.DailyReport, error)
}

// ErrSnapshotsDisabled is returned when no snapshot store is configured.
var ErrSnapshotsDisabled = errors.New("z report snapshots not configured")

// ReportHandler serves X, Z, range and usage reports.
type ReportHandler struct {
	svc       ReportService
	snapshots SnapshotReader
	loc       *time.Location
	today     func() models.EffectiveDate
	logger    *zap.Logger
}

// ReportOption customizes a ReportHandler.
type ReportOption func(*ReportHandler)

// WithSnapshots serves stored Z reports from r. Days are keyed by their
// midnight in loc, matching the nightly close-out.
func WithSnapshots(r SnapshotReader, loc *time.Location) ReportOption {
	return func(h *ReportHandler) {
		h.snapshots = r
		if loc != nil {
			h.loc = loc
		}
	}
}

// NewReportHandler constructs the reporting HTTP adapter.
func NewReportHandler(svc ReportService, today func() models.EffectiveDate, logger *zap.Logger, opts ...ReportOption) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &ReportHandler{svc: svc, loc: time.UTC, today: today, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// X is the intraday report for the business date, or ?date= when given.
func (h *ReportHandler) X(c *gin.Context) {
	date, ok := h.day(c)
	if !ok {
		return
	}
	report, err := h.svc.XReport(c.Request.Context(), date)
	if err != nil {
		respondError(c, h.logger, "failed building x report", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Z closes out the business date, or ?date= when given.
func (h *ReportHandler) Z(c *gin.Context) {
	date, ok := h.day(c)
	if !ok {
		return
	}
	report, err := h.svc.ZReport(c.Request.Context(), date)
	if err != nil {
		respondError(c, h.logger, "failed building z report", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Snapshot returns the Z report stored by the nightly close-out for the
// business date, or ?date= when given.
func (h *ReportHandler) Snapshot(c *gin.Context) {
	date, ok := h.day(c)
	if !ok {
		return
	}
	if h.snapshots == nil {
		respondError(c, h.logger, "z report snapshots disabled", ErrSnapshotsDisabled)
		return
	}
	report, err := h.snapshots.DailyReport(c.Request.Context(), date.StartOfDay(h.loc))
	if err != nil {
		respondError(c, h.logger, "failed loading z report snapshot", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Range reports ?start= through ?end= inclusive.
func (h *ReportHandler) Range(c *gin.Context) {
	start, end, ok := dateRange(c)
	if !ok {
		return
	}
	report, err := h.svc.RangeReport(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, h.logger, "failed building range report", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Usage reports ingredient consumption for ?start= through ?end= inclusive.
func (h *ReportHandler) Usage(c *gin.Context) {
	start, end, ok := dateRange(c)
	if !ok {
		return
	}
	report, err := h.svc.UsageReport(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, h.logger, "failed building usage report", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) day(c *gin.Context) (models.EffectiveDate, bool) {
	if c.Query("date") == "" {
		return h.today(), true
	}
	return dateQuery(c, "date")
}

func dateRange(c *gin.Context) (models.EffectiveDate, models.EffectiveDate, bool) {
	start, ok := dateQuery(c, "start")
	if !ok {
		return models.EffectiveDate{}, models.EffectiveDate{}, false
	}
	end, ok := dateQuery(c, "end")
	if !ok {
		return models.EffectiveDate{}, models.EffectiveDate{}, false
	}
	return start, end, true
}
