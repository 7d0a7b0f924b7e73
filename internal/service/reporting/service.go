package reporting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/cafepos/internal/domain/models"
)

// ErrInvalidRange indicates a report range that ends before it starts.
var ErrInvalidRange = errors.New("end date is before start date")

// Repository reads the history the reports are computed from.
type Repository interface {
	OrdersBetween(ctx context.Context, start, end time.Time) ([]models.OrderRow, error)
	OrderItems(ctx context.Context, orderIDs []int) ([]models.OrderItemRow, error)
	MenuNames(ctx context.Context) (map[int]string, error)
	MenuIngredients(ctx context.Context) ([]models.MenuIngredientRow, error)
	Inventory(ctx context.Context) ([]models.InventoryItem, error)
}

// Service loads rows from the store and runs the aggregations over them.
type Service struct {
	repo   Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewService wires a reporting service. Dates are interpreted in loc.
func NewService(repository Repository, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repository, loc: loc, logger: logger}
}

// XReport is the intraday view for date.
func (s *Service) XReport(ctx context.Context, date models.EffectiveDate) (models.XReport, error) {
	orders, err := s.orders(ctx, date.Window(s.loc))
	if err != nil {
		return models.XReport{}, err
	}
	inventory, err := s.repo.Inventory(ctx)
	if err != nil {
		return models.XReport{}, fmt.Errorf("load inventory: %w", err)
	}

	hourly := HourlyBreakdown(orders, date)
	total := decimal.Zero
	for _, h := range hourly {
		total = total.Add(h.Sales)
	}

	return models.XReport{
		Date:        date.String(),
		Hourly:      hourly,
		TotalSales:  total,
		Adjustments: adjustments(orders, inventory, date),
	}, nil
}

// ZReport closes out date.
func (s *Service) ZReport(ctx context.Context, date models.EffectiveDate) (models.ZReport, error) {
	orders, err := s.orders(ctx, date.Window(s.loc))
	if err != nil {
		return models.ZReport{}, err
	}
	inventory, err := s.repo.Inventory(ctx)
	if err != nil {
		return models.ZReport{}, fmt.Errorf("load inventory: %w", err)
	}

	total, count, first, last := DaySpan(orders, date)
	return models.ZReport{
		Date:        date.String(),
		TotalSales:  total,
		OrderCount:  count,
		FirstOrder:  first,
		LastOrder:   last,
		Adjustments: adjustments(orders, inventory, date),
	}, nil
}

// RangeReport covers start through end inclusive.
func (s *Service) RangeReport(ctx context.Context, start, end models.EffectiveDate) (models.RangeReport, error) {
	if end.Before(start) {
		return models.RangeReport{}, ErrInvalidRange
	}
	w := models.DateRangeWindow(start, end, s.loc)

	orders, err := s.orders(ctx, w)
	if err != nil {
		return models.RangeReport{}, err
	}
	items, err := s.items(ctx, orders)
	if err != nil {
		return models.RangeReport{}, err
	}
	names, err := s.repo.MenuNames(ctx)
	if err != nil {
		return models.RangeReport{}, fmt.Errorf("load menu names: %w", err)
	}

	revenue, count := Totals(orders, w)
	return models.RangeReport{
		Window:       w,
		TotalRevenue: revenue,
		OrderCount:   count,
		TopItems:     TopRevenueItems(orders, items, names, w, DefaultTopN),
	}, nil
}

// UsageReport lists ingredient consumption for start through end inclusive.
func (s *Service) UsageReport(ctx context.Context, start, end models.EffectiveDate) (models.UsageReport, error) {
	if end.Before(start) {
		return models.UsageReport{}, ErrInvalidRange
	}
	w := models.DateRangeWindow(start, end, s.loc)

	orders, err := s.orders(ctx, w)
	if err != nil {
		return models.UsageReport{}, err
	}
	items, err := s.items(ctx, orders)
	if err != nil {
		return models.UsageReport{}, err
	}
	recipes, err := s.repo.MenuIngredients(ctx)
	if err != nil {
		return models.UsageReport{}, fmt.Errorf("load recipes: %w", err)
	}
	inventory, err := s.repo.Inventory(ctx)
	if err != nil {
		return models.UsageReport{}, fmt.Errorf("load inventory: %w", err)
	}

	usage := IngredientUsage(orders, items, recipes, inventory, w)
	if len(usage) == 0 {
		s.logger.Debug("no ingredient usage in window", zap.Time("start", w.Start), zap.Time("end", w.End))
	}
	return models.UsageReport{Window: w, Usage: usage}, nil
}

// SummarizeZReport renders a Z report as a short plain-text summary.
func SummarizeZReport(r models.ZReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Z report %s: $%s across %d orders.", r.Date, r.TotalSales.StringFixed(2), r.OrderCount)
	if r.FirstOrder != nil && r.LastOrder != nil {
		fmt.Fprintf(&b, " First %s, last %s.", r.FirstOrder.Format("15:04:05"), r.LastOrder.Format("15:04:05"))
	}
	fmt.Fprintf(&b, " Returns $%s, voids %d, discards %.0f items.", r.Returns.StringFixed(2), r.Voids, r.Discards)
	return b.String()
}

// orders loads the rows in w and moves every timestamp into s.loc, so day
// and hour are judged in the same zone the window was built in.
func (s *Service) orders(ctx context.Context, w models.ReportWindow) ([]models.OrderRow, error) {
	orders, err := s.repo.OrdersBetween(ctx, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	for i := range orders {
		orders[i].PlacedAt = orders[i].PlacedAt.In(s.loc)
	}
	return orders, nil
}

func (s *Service) items(ctx context.Context, orders []models.OrderRow) ([]models.OrderItemRow, error) {
	if len(orders) == 0 {
		return nil, nil
	}
	ids := make([]int, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.OrderID)
	}
	items, err := s.repo.OrderItems(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	return items, nil
}

func adjustments(orders []models.OrderRow, inventory []models.InventoryItem, date models.EffectiveDate) models.Adjustments {
	return models.Adjustments{
		Returns:  ReturnsTotal(orders, date),
		Voids:    VoidCount(orders, date),
		Discards: DiscardsTotal(inventory),
	}
}
