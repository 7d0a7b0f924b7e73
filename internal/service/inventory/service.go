package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/mamadbah2/cafepos/internal/domain/models"
)

// ErrUnknownIngredient indicates the ledger holds no such ingredient.
var ErrUnknownIngredient = errors.New("unknown ingredient")

// Repository is the inventory side of the store.
type Repository interface {
	Inventory(ctx context.Context) ([]models.InventoryItem, error)
	PersistRestock(ctx context.Context, ingredient string, delta int) error
}

// Service keeps a ledger view of stock levels in step with the store.
type Service struct {
	repo   Repository
	logger *zap.Logger

	mu     sync.Mutex
	ledger map[string]models.InventoryItem
}

// NewService wires an inventory service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, ledger: make(map[string]models.InventoryItem)}
}

// Refresh reloads the ledger view from the store.
func (s *Service) Refresh(ctx context.Context) ([]models.InventoryItem, error) {
	items, err := s.repo.Inventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger = make(map[string]models.InventoryItem, len(items))
	for _, item := range items {
		s.ledger[item.Name] = item
	}
	return items, nil
}

// Items returns the ledger view ordered by name.
func (s *Service) Items() []models.InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.InventoryItem, 0, len(s.ledger))
	for _, item := range s.ledger {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}

// LowStock reloads the ledger and returns the items that need restocking,
// ordered by name.
func (s *Service) LowStock(ctx context.Context) ([]models.InventoryItem, error) {
	if _, err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	var low []models.InventoryItem
	for _, item := range s.Items() {
		if NeedsRestock(item) {
			low = append(low, item)
		}
	}
	return low, nil
}

// Restock adds delta units of ingredient. The ledger view changes only after
// the store accepts the update.
func (s *Service) Restock(ctx context.Context, ingredient string, delta int) (models.InventoryItem, error) {
	current, ok := s.lookup(ingredient)
	if !ok {
		// The view may predate a new ingredient row; reload once before giving up.
		if _, err := s.Refresh(ctx); err != nil {
			return models.InventoryItem{}, err
		}
		if current, ok = s.lookup(ingredient); !ok {
			return models.InventoryItem{}, fmt.Errorf("%w: %s", ErrUnknownIngredient, ingredient)
		}
	}

	if _, err := Restock(current, delta); err != nil {
		return current, err
	}

	if err := s.repo.PersistRestock(ctx, ingredient, delta); err != nil {
		s.logger.Error("restock not saved", zap.String("ingredient", ingredient), zap.Int("delta", delta), zap.Error(err))
		return current, fmt.Errorf("persist restock of %s: %w", ingredient, err)
	}

	// Apply the delta to whatever the ledger holds now; another restock or a
	// refresh may have landed while the store was being written.
	s.mu.Lock()
	latest, ok := s.ledger[ingredient]
	if !ok {
		latest = current
	}
	updated, _ := Restock(latest, delta)
	s.ledger[ingredient] = updated
	s.mu.Unlock()

	s.logger.Info("ingredient restocked",
		zap.String("ingredient", ingredient),
		zap.Int("delta", delta),
		zap.Float64("quantity", updated.Quantity),
		zap.Bool("needs_restock", updated.NeedsRestock()))
	return updated, nil
}

func (s *Service) lookup(ingredient string) (models.InventoryItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.ledger[ingredient]
	return item, ok
}
