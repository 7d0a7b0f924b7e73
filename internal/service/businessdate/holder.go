package businessdate

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/cafepos/internal/domain/models"
)

// Persister remembers the business date outside the process.
type Persister interface {
	SaveBusinessDate(ctx context.Context, date models.EffectiveDate) error
}

// Option configures a Holder.
type Option func(*Holder)

// WithPersister saves every change through p.
func WithPersister(p Persister) Option {
	return func(h *Holder) {
		h.persister = p
	}
}

// Holder keeps the operator-set business date. Handlers read it once per
// request and pass the value down; nothing below the HTTP layer reads it.
type Holder struct {
	mu        sync.RWMutex
	date      models.EffectiveDate
	persister Persister
	logger    *zap.Logger
}

// NewHolder starts at initial, or at today's date in loc when initial is zero.
func NewHolder(initial models.EffectiveDate, loc *time.Location, logger *zap.Logger, opts ...Option) *Holder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	if initial.IsZero() {
		initial = models.NewEffectiveDate(time.Now().In(loc))
	}
	h := &Holder{date: initial, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Get returns the current business date.
func (h *Holder) Get() models.EffectiveDate {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.date
}

// Set moves the business date and returns the previous one. A failed save is
// logged; the in-process date still moves.
func (h *Holder) Set(date models.EffectiveDate) models.EffectiveDate {
	h.mu.Lock()
	prev := h.date
	h.date = date
	h.mu.Unlock()

	h.logger.Info("business date changed", zap.Stringer("from", prev), zap.Stringer("to", date))

	if h.persister != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := h.persister.SaveBusinessDate(ctx, date); err != nil {
			h.logger.Warn("business date not saved", zap.Stringer("date", date), zap.Error(err))
		}
	}
	return prev
}
