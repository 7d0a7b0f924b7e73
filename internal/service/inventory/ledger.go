package inventory

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mamadbah2/cafepos/internal/domain/models"
)

// ErrInvalidAmount indicates a restock delta that is not a positive integer.
var ErrInvalidAmount = errors.New("restock amount must be a positive integer")

// NeedsRestock reports whether item sits at or below its restock minimum.
func NeedsRestock(item models.InventoryItem) bool {
	return item.NeedsRestock()
}

// Restock returns item with delta units added. Stock only ever grows here.
func Restock(item models.InventoryItem, delta int) (models.InventoryItem, error) {
	if delta <= 0 {
		return item, fmt.Errorf("%w: %d", ErrInvalidAmount, delta)
	}
	item.Quantity += float64(delta)
	return item, nil
}

// ParseRestockAmount reads operator input. Empty or non-numeric input
// reports ok=false and should be ignored by the caller.
func ParseRestockAmount(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
