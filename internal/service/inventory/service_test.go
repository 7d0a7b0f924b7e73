package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/cafepos/internal/domain/models"
)

type fakeRepo struct {
	mu       sync.Mutex
	items    []models.InventoryItem
	restocks map[string]int
	err      error
	loadErr  error
}

func (f *fakeRepo) Inventory(context.Context) ([]models.InventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return append([]models.InventoryItem(nil), f.items...), nil
}

func (f *fakeRepo) PersistRestock(_ context.Context, ingredient string, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.restocks == nil {
		f.restocks = map[string]int{}
	}
	f.restocks[ingredient] += delta
	return nil
}

func newTestService(t *testing.T, repo *fakeRepo) *Service {
	t.Helper()
	svc := NewService(repo, nil)
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	return svc
}

func TestServiceRestock(t *testing.T) {
	repo := &fakeRepo{items: []models.InventoryItem{
		{ID: 1, Name: "Milk", Quantity: 5, RestockMin: 8, Unit: "gal"},
		{ID: 2, Name: "Ice", Quantity: 40, RestockMin: 10, Unit: "lb"},
	}}
	svc := newTestService(t, repo)
	assert.Equal(t, []string{"Ice", "Milk"}, itemNames(svc.Items()))

	updated, err := svc.Restock(context.Background(), "Milk", 10)
	require.NoError(t, err)
	assert.Equal(t, 15.0, updated.Quantity)
	assert.Equal(t, 10, repo.restocks["Milk"])
	assert.Equal(t, 15.0, svc.Items()[1].Quantity)
}

func TestServiceRestockConcurrent(t *testing.T) {
	repo := &fakeRepo{items: []models.InventoryItem{{Name: "Milk", Quantity: 5, RestockMin: 8}}}
	svc := newTestService(t, repo)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Restock(context.Background(), "Milk", 3)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 65.0, svc.Items()[0].Quantity)
	assert.Equal(t, 60, repo.restocks["Milk"])
}

func TestServiceLowStockReloads(t *testing.T) {
	repo := &fakeRepo{items: []models.InventoryItem{
		{Name: "Milk", Quantity: 5, RestockMin: 8},
		{Name: "Ice", Quantity: 40, RestockMin: 10},
	}}
	svc := newTestService(t, repo)

	low, err := svc.LowStock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Milk"}, itemNames(low))

	// Stock changed in the store behind the service's back.
	repo.mu.Lock()
	repo.items = []models.InventoryItem{
		{Name: "Milk", Quantity: 20, RestockMin: 8},
		{Name: "Ice", Quantity: 2, RestockMin: 10},
	}
	repo.mu.Unlock()

	low, err = svc.LowStock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Ice"}, itemNames(low))

	repo.loadErr = errors.New("connection refused")
	_, err = svc.LowStock(context.Background())
	assert.ErrorIs(t, err, repo.loadErr)
}

func TestServiceRestockFailures(t *testing.T) {
	repo := &fakeRepo{items: []models.InventoryItem{{Name: "Milk", Quantity: 5, RestockMin: 8}}}
	svc := newTestService(t, repo)

	_, err := svc.Restock(context.Background(), "Cream", 3)
	assert.ErrorIs(t, err, ErrUnknownIngredient)

	_, err = svc.Restock(context.Background(), "Milk", 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Empty(t, repo.restocks)

	boom := errors.New("deadlock detected")
	repo.err = boom
	_, err = svc.Restock(context.Background(), "Milk", 4)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 5.0, svc.Items()[0].Quantity)
}

func itemNames(items []models.InventoryItem) []string {
	out := []string{}
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func TestServiceRestockLoadsLedgerOnMiss(t *testing.T) {
	repo := &fakeRepo{items: []models.InventoryItem{{Name: "Oat Milk", Quantity: 1, RestockMin: 4}}}
	svc := NewService(repo, nil)

	updated, err := svc.Restock(context.Background(), "Oat Milk", 6)
	require.NoError(t, err)
	assert.Equal(t, 7.0, updated.Quantity)
	assert.Equal(t, []string{"Oat Milk"}, itemNames(svc.Items()))
}
