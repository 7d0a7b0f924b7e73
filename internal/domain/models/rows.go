package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned by the store when a keyed row does not exist.
var ErrNotFound = errors.New("record not found")

// CatalogRow is a menu row as read from the store. Either bound may be absent.
type CatalogRow struct {
	ID            int
	Name          string
	Category      Category
	Price         decimal.Decimal
	ImageID       int
	Description   string
	SeasonalStart *time.Time
	SeasonalEnd   *time.Time
}

// MenuItem converts the row, collapsing a half-specified season to "always".
func (r CatalogRow) MenuItem() MenuItem {
	item := MenuItem{
		ID:          r.ID,
		Name:        r.Name,
		Category:    r.Category,
		Price:       r.Price,
		ImageID:     r.ImageID,
		Description: r.Description,
	}
	if r.SeasonalStart != nil && r.SeasonalEnd != nil {
		item.Season = &SeasonalWindow{Start: MonthDayOf(*r.SeasonalStart), End: MonthDayOf(*r.SeasonalEnd)}
	}
	return item
}

// OrderRow is a persisted order header.
type OrderRow struct {
	OrderID    int             `json:"order_id"`
	EmployeeID int             `json:"employee_id"`
	Location   string          `json:"location"`
	PlacedAt   time.Time       `json:"placed_at"`
	Total      decimal.Decimal `json:"total"`
	Complete   bool            `json:"complete"`
}

// OrderItemRow is a persisted order line.
type OrderItemRow struct {
	OrderID           int
	MenuID            int
	QuantityPurchased int
	PriceAtPurchase   decimal.Decimal
}

// MenuIngredientRow maps one unit of a menu item to an ingredient quantity.
type MenuIngredientRow struct {
	MenuID          int
	InventoryID     int
	QuantityPerUnit float64
}
