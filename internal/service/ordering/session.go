package ordering

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/cafepos/internal/domain/models"
)

var (
	// ErrEmptyOrder indicates a submit was attempted without any lines.
	ErrEmptyOrder = errors.New("cannot submit an empty order")
	// ErrPersistence indicates the store rejected the order; retry the submit.
	ErrPersistence = errors.New("order could not be saved")
)

const (
	openingHour  = 9
	tradingHours = 9
)

// Persister writes submitted orders and returns the identifier the store assigned.
type Persister interface {
	PersistOrder(ctx context.Context, order models.Order) (int, error)
}

// TicketPublisher forwards submitted orders to the kitchen.
type TicketPublisher interface {
	PublishTicket(ctx context.Context, order models.Order) error
}

// Session is one cashier's in-progress order.
type Session struct {
	mu        sync.Mutex
	order     *models.Order
	persister Persister
	publisher TicketPublisher
	loc       *time.Location
	intn      func(int) int
	logger    *zap.Logger
}

// SessionOption customizes a Session.
type SessionOption func(*Session)

// WithPublisher forwards every submitted order to p.
func WithPublisher(p TicketPublisher) SessionOption {
	return func(s *Session) { s.publisher = p }
}

// WithLocation stamps orders in loc instead of UTC.
func WithLocation(loc *time.Location) SessionOption {
	return func(s *Session) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithRandom replaces the source used to pick the order time.
func WithRandom(intn func(int) int) SessionOption {
	return func(s *Session) {
		if intn != nil {
			s.intn = intn
		}
	}
}

// NewSession opens an empty order for an employee at a location.
func NewSession(employeeID int, location string, persister Persister, logger *zap.Logger, opts ...SessionOption) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		order:     models.NewOrder(employeeID, location),
		persister: persister,
		loc:       time.UTC,
		intn:      rand.Intn,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Order returns a copy of the current order.
func (s *Session) Order() models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Total returns the order total.
func (s *Session) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Total()
}

// AddLine appends a line and returns the new total.
func (s *Session) AddLine(line models.OrderLine) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := s.order.AddLine(line)
	s.logger.Debug("line added", zap.String("line", line.Label()), zap.String("total", total.StringFixed(2)))
	return total
}

// RemoveLine drops the line with the given id.
func (s *Session) RemoveLine(id uuid.UUID) (models.OrderLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.RemoveLine(id)
}

// RemoveLineByLabel drops a line by its rendered label. A label whose price
// does not parse is logged and leaves the order unchanged.
func (s *Session) RemoveLineByLabel(label string) (models.OrderLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line, err := s.order.RemoveLineByLabel(label)
	if errors.Is(err, models.ErrUnparseablePrice) {
		s.logger.Warn("ignoring line removal", zap.String("label", label), zap.Error(err))
	}
	return line, err
}

// Submit persists the order stamped on date and clears it for the next
// customer. If the store fails the order is kept so the cashier can retry.
func (s *Session) Submit(ctx context.Context, date models.EffectiveDate) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.order.IsEmpty() {
		return models.Order{}, ErrEmptyOrder
	}

	pending := s.snapshot()
	pending.PlacedAt = s.randomTime(date)
	pending.Status = models.OrderStatusSubmitted

	id, err := s.persister.PersistOrder(ctx, pending)
	if err != nil {
		s.logger.Error("failed to persist order", zap.Error(err), zap.Int("lines", len(pending.Lines)))
		return models.Order{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	pending.ID = id

	s.logger.Info("order submitted",
		zap.Int("order_id", id),
		zap.Int("employee_id", pending.EmployeeID),
		zap.Time("placed_at", pending.PlacedAt),
		zap.String("total", pending.Total().StringFixed(2)))

	if s.publisher != nil {
		if err := s.publisher.PublishTicket(ctx, pending); err != nil {
			s.logger.Warn("kitchen ticket not published", zap.Int("order_id", id), zap.Error(err))
		}
	}

	s.order.Clear()
	return pending, nil
}

// randomTime places the order somewhere in [09:00:00, 18:00:00) on date.
func (s *Session) randomTime(date models.EffectiveDate) time.Time {
	hour := openingHour + s.intn(tradingHours)
	minute := s.intn(60)
	second := s.intn(60)
	return time.Date(date.Year, date.Month, date.Day, hour, minute, second, 0, s.loc)
}

func (s *Session) snapshot() models.Order {
	cp := *s.order
	cp.Lines = append([]models.OrderLine(nil), s.order.Lines...)
	return cp
}

// SessionManager keeps one session per cashier.
type SessionManager struct {
	sessions map[int]*Session
	mu       sync.Mutex
	factory  func(employeeID int) *Session
}

// NewSessionManager creates sessions on demand with factory.
func NewSessionManager(factory func(employeeID int) *Session) *SessionManager {
	return &SessionManager{
		sessions: make(map[int]*Session),
		factory:  factory,
	}
}

// Session returns the cashier's session, opening one if needed.
func (sm *SessionManager) Session(employeeID int) *Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if s, ok := sm.sessions[employeeID]; ok {
		return s
	}
	s := sm.factory(employeeID)
	sm.sessions[employeeID] = s
	return s
}

// Close ends a cashier's shift, discarding the session and returning the
// order it still held. The bool is false when the cashier had no session.
func (sm *SessionManager) Close(employeeID int) (models.Order, bool) {
	sm.mu.Lock()
	s, ok := sm.sessions[employeeID]
	delete(sm.sessions, employeeID)
	sm.mu.Unlock()
	if !ok {
		return models.Order{}, false
	}
	return s.Order(), true
}
