package kitchen

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/cafepos/internal/domain/models"
)

// ErrOrderNotFound indicates no order carries the requested id.
var ErrOrderNotFound = errors.New("order not found")

// Repository is the kitchen's view of submitted orders.
type Repository interface {
	OpenOrders(ctx context.Context) ([]models.OrderRow, error)
	CompletedOrdersBetween(ctx context.Context, start, end time.Time) ([]models.OrderRow, error)
	CompleteOrder(ctx context.Context, orderID int) (bool, error)
}

// Service drives the kitchen display queue.
type Service struct {
	repo   Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewService wires a kitchen service. Business dates are interpreted in loc.
func NewService(repo Repository, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, loc: loc, logger: logger}
}

// Current lists orders still being prepared, newest first.
func (s *Service) Current(ctx context.Context) ([]models.OrderRow, error) {
	rows, err := s.repo.OpenOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("load open orders: %w", err)
	}
	newestFirst(rows)
	return rows, nil
}

// Completed lists the orders finished on date, newest first.
func (s *Service) Completed(ctx context.Context, date models.EffectiveDate) ([]models.OrderRow, error) {
	w := date.Window(s.loc)
	rows, err := s.repo.CompletedOrdersBetween(ctx, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("load completed orders: %w", err)
	}
	newestFirst(rows)
	return rows, nil
}

// Complete marks an order as handed to the customer.
func (s *Service) Complete(ctx context.Context, orderID int) error {
	found, err := s.repo.CompleteOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("complete order %d: %w", orderID, err)
	}
	if !found {
		return fmt.Errorf("%w: %d", ErrOrderNotFound, orderID)
	}
	s.logger.Info("order completed", zap.Int("order_id", orderID))
	return nil
}

func newestFirst(rows []models.OrderRow) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].PlacedAt.After(rows[j].PlacedAt) })
}
