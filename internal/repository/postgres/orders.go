package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/mamadbah2/cafepos/internal/domain/models"
)

const orderColumns = `orderid, employeeid, COALESCE(orderlocation, ''), orderdate, ordertotal, COALESCE(ordercomplete, false)`

// PersistOrder inserts the order header under MAX(orderid)+1 and one orderitem
// row per line sold from the catalog. Ids are not race-safe across registers.
func (r *Repository) PersistOrder(ctx context.Context, order models.Order) (id int, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	err = tx.QueryRow(ctx, `
		INSERT INTO ordertest (orderid, employeeid, orderlocation, orderdate, ordertotal, ordercomplete)
		VALUES ((SELECT COALESCE(MAX(orderid), 0) + 1 FROM ordertest), $1, $2, $3, $4, false)
		RETURNING orderid`,
		order.EmployeeID, order.Location, order.PlacedAt.In(r.loc), order.Total(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, line := range order.Lines {
		if line.MenuID == 0 {
			continue
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO orderitem (orderid, menuid, quantitypurchased, priceatpurchase)
			VALUES ($1, $2, 1, $3)`,
			id, line.MenuID, line.Price)
		if err != nil {
			return 0, fmt.Errorf("failed to insert order item %s: %w", line.DrinkName, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Debug("order persisted", zap.Int("order_id", id), zap.Int("lines", len(order.Lines)))
	return id, nil
}

// OrdersBetween returns orders placed in [start, end).
func (r *Repository) OrdersBetween(ctx context.Context, start, end time.Time) ([]models.OrderRow, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM ordertest WHERE orderdate >= $1 AND orderdate < $2 ORDER BY orderdate`,
		start.In(r.loc), end.In(r.loc))
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	return pgx.CollectRows(rows, r.scanOrderRow)
}

// OrderItems returns the lines of the given orders.
func (r *Repository) OrderItems(ctx context.Context, orderIDs []int) ([]models.OrderItemRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT orderid, menuid, quantitypurchased, priceatpurchase
		FROM orderitem WHERE orderid = ANY($1)`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.OrderItemRow, error) {
		var it models.OrderItemRow
		err := row.Scan(&it.OrderID, &it.MenuID, &it.QuantityPurchased, &it.PriceAtPurchase)
		return it, err
	})
}

// OpenOrders returns orders the kitchen has not completed.
func (r *Repository) OpenOrders(ctx context.Context) ([]models.OrderRow, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM ordertest WHERE ordercomplete = false ORDER BY orderdate DESC`)
	if err != nil {
		return nil, fmt.Errorf("query open orders: %w", err)
	}
	return pgx.CollectRows(rows, r.scanOrderRow)
}

// CompletedOrdersBetween returns completed orders placed in [start, end).
func (r *Repository) CompletedOrdersBetween(ctx context.Context, start, end time.Time) ([]models.OrderRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+` FROM ordertest
		WHERE ordercomplete = true AND orderdate >= $1 AND orderdate < $2
		ORDER BY orderdate DESC`, start.In(r.loc), end.In(r.loc))
	if err != nil {
		return nil, fmt.Errorf("query completed orders: %w", err)
	}
	return pgx.CollectRows(rows, r.scanOrderRow)
}

// CompleteOrder flags an order as done. It reports false when no row matched.
func (r *Repository) CompleteOrder(ctx context.Context, orderID int) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE ordertest SET ordercomplete = true WHERE orderid = $1`, orderID)
	if err != nil {
		return false, fmt.Errorf("complete order: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) scanOrderRow(row pgx.CollectableRow) (models.OrderRow, error) {
	var o models.OrderRow
	if err := row.Scan(&o.OrderID, &o.EmployeeID, &o.Location, &o.PlacedAt, &o.Total, &o.Complete); err != nil {
		return o, err
	}
	o.PlacedAt = wallClock(o.PlacedAt, r.loc)
	return o, nil
}
