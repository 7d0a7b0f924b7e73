package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mamadbah2/cafepos/internal/domain/models"
)

// Inventory returns every ingredient ordered by name.
func (r *Repository) Inventory(ctx context.Context) ([]models.InventoryItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT inventoryid, inventoryname, quantityavailable, restockmin,
		       COALESCE(unit, ''), COALESCE(restockordered, 0)
		FROM inventory ORDER BY inventoryname`)
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.InventoryItem, error) {
		var it models.InventoryItem
		err := row.Scan(&it.ID, &it.Name, &it.Quantity, &it.RestockMin, &it.Unit, &it.RestockOrdered)
		return it, err
	})
}

// PersistRestock adds delta to an ingredient's available quantity.
func (r *Repository) PersistRestock(ctx context.Context, ingredient string, delta int) error {
	tag, err := r.db.Exec(ctx, `UPDATE inventory SET quantityavailable = quantityavailable + $1 WHERE inventoryname = $2`, delta, ingredient)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("restock %s: %w", ingredient, models.ErrNotFound)
	}
	return nil
}
