package reporting

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/cafepos/internal/domain/models"
)

// DefaultTopN is how many items the range report ranks.
const DefaultTopN = 5

type orderKind int

const (
	kindSale orderKind = iota
	kindReturn
	kindVoid
)

// classify derives the transaction kind from the sign of the order total.
// There is no kind column yet; once refunds and voids are recorded explicitly
// this is the only place that has to change.
func classify(row models.OrderRow) orderKind {
	switch {
	case row.Total.IsNegative():
		return kindReturn
	case row.Total.IsZero():
		return kindVoid
	default:
		return kindSale
	}
}

// Totals sums order totals and counts orders placed inside w.
func Totals(orders []models.OrderRow, w models.ReportWindow) (decimal.Decimal, int) {
	revenue := decimal.Zero
	count := 0
	for _, o := range orders {
		if !w.Contains(o.PlacedAt) {
			continue
		}
		revenue = revenue.Add(o.Total)
		count++
	}
	return revenue, count
}

// TopRevenueItems ranks menu items by quantity*price over the orders placed in
// w. Ties go to the alphabetically first name. Lines whose menu item is gone
// are skipped. n <= 0 means DefaultTopN.
func TopRevenueItems(orders []models.OrderRow, items []models.OrderItemRow, menuNames map[int]string, w models.ReportWindow, n int) []models.RevenueItem {
	if n <= 0 {
		n = DefaultTopN
	}

	inWindow := ordersIn(orders, w)
	revenue := make(map[string]decimal.Decimal)
	for _, it := range items {
		if _, ok := inWindow[it.OrderID]; !ok {
			continue
		}
		name, ok := menuNames[it.MenuID]
		if !ok {
			continue
		}
		amount := it.PriceAtPurchase.Mul(decimal.NewFromInt(int64(it.QuantityPurchased)))
		revenue[name] = revenue[name].Add(amount)
	}

	ranked := make([]models.RevenueItem, 0, len(revenue))
	for name, total := range revenue {
		ranked = append(ranked, models.RevenueItem{Name: name, Revenue: total})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if c := ranked[i].Revenue.Cmp(ranked[j].Revenue); c != 0 {
			return c > 0
		}
		return ranked[i].Name < ranked[j].Name
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// HourlyBreakdown buckets the day's orders by hour. Only hours with orders
// appear, in ascending order.
func HourlyBreakdown(orders []models.OrderRow, day models.EffectiveDate) []models.HourlySales {
	buckets := make(map[int]decimal.Decimal)
	for _, o := range orders {
		if !day.Contains(o.PlacedAt) {
			continue
		}
		h := o.PlacedAt.Hour()
		buckets[h] = buckets[h].Add(o.Total)
	}

	hours := make([]int, 0, len(buckets))
	for h := range buckets {
		hours = append(hours, h)
	}
	sort.Ints(hours)

	out := make([]models.HourlySales, 0, len(hours))
	for _, h := range hours {
		out = append(out, models.HourlySales{Hour: h, Sales: buckets[h]})
	}
	return out
}

// ReturnsTotal is the absolute value of all negative order totals on day.
func ReturnsTotal(orders []models.OrderRow, day models.EffectiveDate) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if day.Contains(o.PlacedAt) && classify(o) == kindReturn {
			total = total.Add(o.Total)
		}
	}
	return total.Abs()
}

// VoidCount counts orders on day whose total is exactly zero.
func VoidCount(orders []models.OrderRow, day models.EffectiveDate) int {
	count := 0
	for _, o := range orders {
		if day.Contains(o.PlacedAt) && classify(o) == kindVoid {
			count++
		}
	}
	return count
}

// DiscardsTotal sums the positive restock-ordered quantities across the whole
// inventory. Unlike every other aggregate it takes no window.
func DiscardsTotal(inventory []models.InventoryItem) float64 {
	total := 0.0
	for _, item := range inventory {
		if item.RestockOrdered > 0 {
			total += item.RestockOrdered
		}
	}
	return total
}

// IngredientUsage totals recipe quantity * units sold per ingredient for the
// orders placed in w, rounded to two decimals, largest first.
func IngredientUsage(orders []models.OrderRow, items []models.OrderItemRow, recipes []models.MenuIngredientRow, inventory []models.InventoryItem, w models.ReportWindow) []models.IngredientUsage {
	inWindow := ordersIn(orders, w)

	byMenu := make(map[int][]models.MenuIngredientRow)
	for _, r := range recipes {
		byMenu[r.MenuID] = append(byMenu[r.MenuID], r)
	}
	stock := make(map[int]models.InventoryItem, len(inventory))
	for _, item := range inventory {
		stock[item.ID] = item
	}

	type key struct{ name, unit string }
	used := make(map[key]decimal.Decimal)
	for _, it := range items {
		if _, ok := inWindow[it.OrderID]; !ok {
			continue
		}
		qty := decimal.NewFromInt(int64(it.QuantityPurchased))
		for _, r := range byMenu[it.MenuID] {
			ingredient, ok := stock[r.InventoryID]
			if !ok {
				continue
			}
			k := key{ingredient.Name, ingredient.Unit}
			used[k] = used[k].Add(decimal.NewFromFloat(r.QuantityPerUnit).Mul(qty))
		}
	}

	out := make([]models.IngredientUsage, 0, len(used))
	for k, v := range used {
		out = append(out, models.IngredientUsage{Ingredient: k.name, Unit: k.unit, Used: v.Round(2).InexactFloat64()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Used != out[j].Used {
			return out[i].Used > out[j].Used
		}
		if out[i].Ingredient != out[j].Ingredient {
			return out[i].Ingredient < out[j].Ingredient
		}
		return out[i].Unit < out[j].Unit
	})
	return out
}

// DaySpan returns total sales, order count and the first and last order
// timestamps for day. The timestamps are nil when no order matched.
func DaySpan(orders []models.OrderRow, day models.EffectiveDate) (decimal.Decimal, int, *time.Time, *time.Time) {
	total := decimal.Zero
	count := 0
	var first, last *time.Time
	for _, o := range orders {
		if !day.Contains(o.PlacedAt) {
			continue
		}
		total = total.Add(o.Total)
		count++
		placed := o.PlacedAt
		if first == nil || placed.Before(*first) {
			first = &placed
		}
		if last == nil || placed.After(*last) {
			last = &placed
		}
	}
	return total, count, first, last
}

func ordersIn(orders []models.OrderRow, w models.ReportWindow) map[int]struct{} {
	ids := make(map[int]struct{})
	for _, o := range orders {
		if w.Contains(o.PlacedAt) {
			ids[o.OrderID] = struct{}{}
		}
	}
	return ids
}
