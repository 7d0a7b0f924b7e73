package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/cafepos/internal/domain/models"
)

func TestNeedsRestock(t *testing.T) {
	tests := []struct {
		quantity, min float64
		want          bool
	}{
		{5, 8, true},
		{8, 8, true},
		{8.01, 8, false},
		{0, 0, true},
		{12.5, 3, false},
	}
	for _, tt := range tests {
		item := models.InventoryItem{Name: "Milk", Quantity: tt.quantity, RestockMin: tt.min}
		assert.Equal(t, tt.want, NeedsRestock(item), "quantity %v min %v", tt.quantity, tt.min)
	}
}

func TestRestock(t *testing.T) {
	item := models.InventoryItem{Name: "Tapioca", Quantity: 5, RestockMin: 8}
	require.True(t, NeedsRestock(item))

	updated, err := Restock(item, 10)
	require.NoError(t, err)
	assert.Equal(t, 15.0, updated.Quantity)
	assert.False(t, NeedsRestock(updated))
	assert.Equal(t, 5.0, item.Quantity)
}

func TestRestockRejectsNonPositive(t *testing.T) {
	item := models.InventoryItem{Name: "Tapioca", Quantity: 5, RestockMin: 8}
	for _, delta := range []int{0, -3} {
		got, err := Restock(item, delta)
		assert.ErrorIs(t, err, ErrInvalidAmount)
		assert.Equal(t, item, got)
	}
}

func TestParseRestockAmount(t *testing.T) {
	n, ok := ParseRestockAmount(" 12 ")
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	for _, raw := range []string{"", "   ", "ten", "1.5"} {
		_, ok := ParseRestockAmount(raw)
		assert.False(t, ok, raw)
	}

	n, ok = ParseRestockAmount("-4")
	assert.True(t, ok)
	_, err := Restock(models.InventoryItem{}, n)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
