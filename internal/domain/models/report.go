package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevenueItem is a menu item's aggregated revenue over a window.
type RevenueItem struct {
	Name    string          `json:"name"`
	Revenue decimal.Decimal `json:"revenue"`
}

// HourlySales is one bucket of the hourly breakdown.
type HourlySales struct {
	Hour  int             `json:"hour"`
	Sales decimal.Decimal `json:"sales"`
}

// IngredientUsage is the quantity of an ingredient consumed by sold items.
type IngredientUsage struct {
	Ingredient string  `json:"ingredient"`
	Unit       string  `json:"unit"`
	Used       float64 `json:"used"`
}

// Adjustments groups the sign-derived return/void figures and discards.
type Adjustments struct {
	Returns  decimal.Decimal `json:"returns"`
	Voids    int             `json:"voids"`
	Discards float64         `json:"discards"`
}

// XReport is the intraday snapshot for a business date.
type XReport struct {
	Date       string          `json:"date"`
	Hourly     []HourlySales   `json:"hourly"`
	TotalSales decimal.Decimal `json:"total_sales"`
	Adjustments
}

// ZReport closes out a business date.
type ZReport struct {
	Date       string          `json:"date"`
	TotalSales decimal.Decimal `json:"total_sales"`
	OrderCount int             `json:"order_count"`
	FirstOrder *time.Time      `json:"first_order,omitempty"`
	LastOrder  *time.Time      `json:"last_order,omitempty"`
	Adjustments
}

// RangeReport summarizes an inclusive date range.
type RangeReport struct {
	Window       ReportWindow    `json:"window"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	OrderCount   int             `json:"order_count"`
	TopItems     []RevenueItem   `json:"top_items"`
}

// UsageReport lists ingredient consumption over a window.
type UsageReport struct {
	Window ReportWindow      `json:"window"`
	Usage  []IngredientUsage `json:"usage"`
}

// DailyReport is the stored form of a Z report.
type DailyReport struct {
	Date       time.Time  `bson:"date" json:"date"`
	TotalSales float64    `bson:"total_sales" json:"total_sales"`
	OrderCount int        `bson:"order_count" json:"order_count"`
	FirstOrder *time.Time `bson:"first_order,omitempty" json:"first_order,omitempty"`
	LastOrder  *time.Time `bson:"last_order,omitempty" json:"last_order,omitempty"`
	Returns    float64    `bson:"returns" json:"returns"`
	Voids      int        `bson:"voids" json:"voids"`
	Discards   float64    `bson:"discards" json:"discards"`
	CreatedAt  time.Time  `bson:"created_at" json:"created_at"`
}

// NewDailyReport converts a Z report for the day starting at day into its
// stored form.
func NewDailyReport(z ZReport, day, createdAt time.Time) DailyReport {
	return DailyReport{
		Date:       day,
		TotalSales: z.TotalSales.InexactFloat64(),
		OrderCount: z.OrderCount,
		FirstOrder: z.FirstOrder,
		LastOrder:  z.LastOrder,
		Returns:    z.Returns.InexactFloat64(),
		Voids:      z.Voids,
		Discards:   z.Discards,
		CreatedAt:  createdAt,
	}
}
