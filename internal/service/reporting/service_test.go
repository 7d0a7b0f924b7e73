package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/cafepos/internal/domain/models"
)

type fakeRepo struct {
	orders    []models.OrderRow
	items     []models.OrderItemRow
	names     map[int]string
	recipes   []models.MenuIngredientRow
	inventory []models.InventoryItem
	err       error

	queried []models.ReportWindow
}

func (f *fakeRepo) OrdersBetween(_ context.Context, start, end time.Time) ([]models.OrderRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.queried = append(f.queried, models.ReportWindow{Start: start, End: end})
	return f.orders, nil
}

func (f *fakeRepo) OrderItems(_ context.Context, ids []int) ([]models.OrderItemRow, error) {
	want := map[int]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []models.OrderItemRow
	for _, it := range f.items {
		if want[it.OrderID] {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeRepo) MenuNames(context.Context) (map[int]string, error) { return f.names, nil }

func (f *fakeRepo) MenuIngredients(context.Context) ([]models.MenuIngredientRow, error) {
	return f.recipes, nil
}

func (f *fakeRepo) Inventory(context.Context) ([]models.InventoryItem, error) {
	return f.inventory, nil
}

func TestServiceXReport(t *testing.T) {
	repo := &fakeRepo{
		orders:    sampleOrders(),
		inventory: []models.InventoryItem{{Name: "Milk", RestockOrdered: 3}},
	}
	svc := NewService(repo, time.UTC, nil)

	report, err := svc.XReport(context.Background(), june15)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15", report.Date)
	assert.Len(t, report.Hourly, 3)
	assert.True(t, dec("11.25").Equal(report.TotalSales))
	assert.True(t, dec("3.25").Equal(report.Returns))
	assert.Equal(t, 1, report.Voids)
	assert.Equal(t, 3.0, report.Discards)

	require.Len(t, repo.queried, 1)
	assert.Equal(t, june15.Window(time.UTC), repo.queried[0])
}

func TestServiceZReport(t *testing.T) {
	svc := NewService(&fakeRepo{orders: sampleOrders()}, time.UTC, nil)

	report, err := svc.ZReport(context.Background(), june15)
	require.NoError(t, err)
	assert.Equal(t, 4, report.OrderCount)
	assert.True(t, dec("11.25").Equal(report.TotalSales))
	require.NotNil(t, report.FirstOrder)
	assert.Equal(t, at(15, 9, 5), *report.FirstOrder)

	summary := SummarizeZReport(report)
	assert.Contains(t, summary, "Z report 2024-06-15: $11.25 across 4 orders.")
	assert.Contains(t, summary, "First 09:05:00, last 17:59:00.")
	assert.Contains(t, summary, "voids 1")
}

func TestServiceZReportNoOrders(t *testing.T) {
	report, err := NewService(&fakeRepo{}, time.UTC, nil).ZReport(context.Background(), june15)
	require.NoError(t, err)
	assert.Zero(t, report.OrderCount)
	assert.True(t, report.TotalSales.IsZero())
	assert.Nil(t, report.FirstOrder)
	assert.NotContains(t, SummarizeZReport(report), "First")
}

func TestServiceRangeReport(t *testing.T) {
	repo := &fakeRepo{
		orders: sampleOrders(),
		items: []models.OrderItemRow{
			{OrderID: 1, MenuID: 1, QuantityPurchased: 1, PriceAtPurchase: dec("4.50")},
			{OrderID: 2, MenuID: 2, QuantityPurchased: 2, PriceAtPurchase: dec("5.00")},
			{OrderID: 6, MenuID: 1, QuantityPurchased: 1, PriceAtPurchase: dec("6.00")},
		},
		names: map[int]string{1: "Taro Slush", 2: "Mango Fizz"},
	}
	svc := NewService(repo, time.UTC, nil)

	start := models.EffectiveDate{Year: 2024, Month: time.June, Day: 14}
	report, err := svc.RangeReport(context.Background(), start, june15)
	require.NoError(t, err)
	assert.Equal(t, 5, report.OrderCount)
	assert.True(t, dec("19.25").Equal(report.TotalRevenue), report.TotalRevenue.String())
	require.Len(t, report.TopItems, 2)
	assert.Equal(t, "Mango Fizz", report.TopItems[0].Name)
	assert.Equal(t, time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC), report.Window.End)

	_, err = svc.RangeReport(context.Background(), june15, start)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestServiceUsageReport(t *testing.T) {
	repo := &fakeRepo{
		orders:    sampleOrders(),
		items:     []models.OrderItemRow{{OrderID: 1, MenuID: 1, QuantityPurchased: 2}},
		recipes:   []models.MenuIngredientRow{{MenuID: 1, InventoryID: 7, QuantityPerUnit: 0.5}},
		inventory: []models.InventoryItem{{ID: 7, Name: "Milk", Unit: "cup"}},
	}
	report, err := NewService(repo, time.UTC, nil).UsageReport(context.Background(), june15, june15)
	require.NoError(t, err)
	assert.Equal(t, []models.IngredientUsage{{Ingredient: "Milk", Unit: "cup", Used: 1}}, report.Usage)
}

func TestServiceStoreFailure(t *testing.T) {
	boom := errors.New("too many connections")
	svc := NewService(&fakeRepo{err: boom}, time.UTC, nil)

	_, err := svc.XReport(context.Background(), june15)
	assert.ErrorIs(t, err, boom)
	_, err = svc.ZReport(context.Background(), june15)
	assert.ErrorIs(t, err, boom)
	_, err = svc.RangeReport(context.Background(), june15, june15)
	assert.ErrorIs(t, err, boom)
}

func TestServiceReportsJudgeRowsInStoreZone(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	// 09:15 and 19:30 in Chicago, handed back by the store as UTC instants.
	// The evening sale is already 2024-06-16 in UTC.
	repo := &fakeRepo{orders: []models.OrderRow{
		{OrderID: 1, PlacedAt: time.Date(2024, time.June, 15, 14, 15, 0, 0, time.UTC), Total: dec("4.00")},
		{OrderID: 2, PlacedAt: time.Date(2024, time.June, 16, 0, 30, 0, 0, time.UTC), Total: dec("6.50")},
	}}
	svc := NewService(repo, chicago, nil)

	x, err := svc.XReport(context.Background(), june15)
	require.NoError(t, err)
	require.Len(t, x.Hourly, 2)
	assert.Equal(t, 9, x.Hourly[0].Hour)
	assert.True(t, dec("4.00").Equal(x.Hourly[0].Sales))
	assert.Equal(t, 19, x.Hourly[1].Hour)
	assert.True(t, dec("10.50").Equal(x.TotalSales))

	z, err := svc.ZReport(context.Background(), june15)
	require.NoError(t, err)
	assert.Equal(t, 2, z.OrderCount)
	require.NotNil(t, z.LastOrder)
	assert.Equal(t, 19, z.LastOrder.Hour())
	assert.Equal(t, chicago, z.LastOrder.Location())

	r, err := svc.RangeReport(context.Background(), june15, june15)
	require.NoError(t, err)
	assert.Equal(t, z.OrderCount, r.OrderCount)
	assert.True(t, z.TotalSales.Equal(r.TotalRevenue))

	assert.Equal(t, june15.Window(chicago), repo.queried[0])
}
