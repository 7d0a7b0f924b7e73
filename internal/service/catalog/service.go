package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/cafepos/internal/domain/models"
)

var (
	// ErrUnknownCategory indicates the requested category is not on the menu board.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrOutOfSeason indicates the item exists but does not sell on the business date.
	ErrOutOfSeason = errors.New("item is out of season")
)

// Repository is the catalog side of the store.
type Repository interface {
	CatalogByCategory(ctx context.Context, category models.Category) ([]models.CatalogRow, error)
	Catalog(ctx context.Context) ([]models.CatalogRow, error)
	InsertMenuItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id int) error
}

// Service filters the menu down to what sells on a business date.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService wires a catalog service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Available returns the items of a category that sell on date, in store order.
func (s *Service) Available(ctx context.Context, category string, date models.EffectiveDate) ([]models.MenuItem, error) {
	cat, ok := models.ParseCategory(category)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	rows, err := s.repo.CatalogByCategory(ctx, cat)
	if err != nil {
		return nil, fmt.Errorf("load catalog for %s: %w", cat, err)
	}

	items := make([]models.MenuItem, 0, len(rows))
	for _, row := range rows {
		item := row.MenuItem()
		if !IsAvailable(item.Season, date) {
			s.logger.Debug("item out of season", zap.String("item", item.Name), zap.Stringer("date", date))
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// Menu returns every catalog item regardless of season.
func (s *Service) Menu(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := s.repo.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	items := make([]models.MenuItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.MenuItem())
	}
	return items, nil
}

// Sellable returns menu item id if it sells on date.
func (s *Service) Sellable(ctx context.Context, id int, date models.EffectiveDate) (models.MenuItem, error) {
	items, err := s.Menu(ctx)
	if err != nil {
		return models.MenuItem{}, err
	}
	for _, item := range items {
		if item.ID != id {
			continue
		}
		if !IsAvailable(item.Season, date) {
			return models.MenuItem{}, fmt.Errorf("%w: %s on %s", ErrOutOfSeason, item.Name, date)
		}
		return item, nil
	}
	return models.MenuItem{}, fmt.Errorf("menu item %d: %w", id, models.ErrNotFound)
}

// AddItem stores a new menu item; the store assigns its id.
func (s *Service) AddItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	if err := validateItem(item); err != nil {
		return models.MenuItem{}, err
	}
	stored, err := s.repo.InsertMenuItem(ctx, item)
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("insert menu item %s: %w", item.Name, err)
	}
	s.logger.Info("menu item added", zap.Int("id", stored.ID), zap.String("name", stored.Name))
	return stored, nil
}

// UpdateItem changes name, category and price of an existing item.
func (s *Service) UpdateItem(ctx context.Context, item models.MenuItem) error {
	if err := validateItem(item); err != nil {
		return err
	}
	if err := s.repo.UpdateMenuItem(ctx, item); err != nil {
		return fmt.Errorf("update menu item %d: %w", item.ID, err)
	}
	return nil
}

// RemoveItem deletes a menu item.
func (s *Service) RemoveItem(ctx context.Context, id int) error {
	if err := s.repo.DeleteMenuItem(ctx, id); err != nil {
		return fmt.Errorf("delete menu item %d: %w", id, err)
	}
	s.logger.Info("menu item removed", zap.Int("id", id))
	return nil
}

// ErrInvalidMenuItem indicates a menu item failed validation.
var ErrInvalidMenuItem = errors.New("invalid menu item")

func validateItem(item models.MenuItem) error {
	switch {
	case item.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidMenuItem)
	case item.Price.IsNegative():
		return fmt.Errorf("%w: price must not be negative", ErrInvalidMenuItem)
	}
	if _, ok := models.ParseCategory(string(item.Category)); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, item.Category)
	}
	return nil
}
