package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/mamadbah2/cafepos/internal/domain/models"
)

const catalogColumns = `menuid, menuname, category, price, COALESCE(menuimage, 0), COALESCE(menudescription, ''), seasonalstart, seasonalend`

// CatalogByCategory returns the menu rows of one category in id order.
func (r *Repository) CatalogByCategory(ctx context.Context, category models.Category) ([]models.CatalogRow, error) {
	rows, err := r.db.Query(ctx, `SELECT `+catalogColumns+` FROM menu WHERE category = $1 ORDER BY menuid`, string(category))
	if err != nil {
		return nil, fmt.Errorf("query menu by category: %w", err)
	}
	return pgx.CollectRows(rows, scanCatalogRow)
}

// Catalog returns every menu row in id order.
func (r *Repository) Catalog(ctx context.Context) ([]models.CatalogRow, error) {
	rows, err := r.db.Query(ctx, `SELECT `+catalogColumns+` FROM menu ORDER BY menuid`)
	if err != nil {
		return nil, fmt.Errorf("query menu: %w", err)
	}
	return pgx.CollectRows(rows, scanCatalogRow)
}

// MenuNames maps menu ids to display names.
func (r *Repository) MenuNames(ctx context.Context) (map[int]string, error) {
	rows, err := r.db.Query(ctx, `SELECT menuid, menuname FROM menu`)
	if err != nil {
		return nil, fmt.Errorf("query menu names: %w", err)
	}
	defer rows.Close()

	names := make(map[int]string)
	for rows.Next() {
		var (
			id   int
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan menu name: %w", err)
		}
		names[id] = name
	}
	return names, rows.Err()
}

// MenuIngredients returns the recipe table.
func (r *Repository) MenuIngredients(ctx context.Context) ([]models.MenuIngredientRow, error) {
	rows, err := r.db.Query(ctx, `SELECT menuid, inventoryid, menuinfoquantity FROM menuinfo`)
	if err != nil {
		return nil, fmt.Errorf("query menuinfo: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.MenuIngredientRow, error) {
		var m models.MenuIngredientRow
		err := row.Scan(&m.MenuID, &m.InventoryID, &m.QuantityPerUnit)
		return m, err
	})
}

// InsertMenuItem stores item under the next free id.
func (r *Repository) InsertMenuItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO menu (menuid, menuname, category, price, menudescription)
		VALUES ((SELECT COALESCE(MAX(menuid), 0) + 1 FROM menu), $1, $2, $3, $4)
		RETURNING menuid`,
		item.Name, string(item.Category), item.Price, item.Description,
	).Scan(&item.ID)
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("insert menu item: %w", err)
	}
	r.logger.Debug("menu row inserted", zap.Int("menu_id", item.ID))
	return item, nil
}

// UpdateMenuItem rewrites name, category and price.
func (r *Repository) UpdateMenuItem(ctx context.Context, item models.MenuItem) error {
	tag, err := r.db.Exec(ctx, `UPDATE menu SET menuname = $1, category = $2, price = $3 WHERE menuid = $4`,
		item.Name, string(item.Category), item.Price, item.ID)
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update menu item %d: %w", item.ID, models.ErrNotFound)
	}
	return nil
}

// DeleteMenuItem removes a menu row.
func (r *Repository) DeleteMenuItem(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM menu WHERE menuid = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete menu item %d: %w", id, models.ErrNotFound)
	}
	return nil
}

func scanCatalogRow(row pgx.CollectableRow) (models.CatalogRow, error) {
	var (
		c        models.CatalogRow
		category string
	)
	err := row.Scan(&c.ID, &c.Name, &category, &c.Price, &c.ImageID, &c.Description, &c.SeasonalStart, &c.SeasonalEnd)
	c.Category = models.Category(category)
	return c, err
}
