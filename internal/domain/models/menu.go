package models

import (
	"github.com/shopspring/decimal"
)

// Category enumerates the drink families sold at the register.
type Category string

const (
	CategoryIceBlended     Category = "Ice-Blended"
	CategoryFruity         Category = "Fruity Beverage"
	CategoryFreshBrew      Category = "Fresh Brew"
	CategoryMilky          Category = "Milky Series"
	CategoryMatcha         Category = "New Matcha Series"
	CategoryNonCaffeinated Category = "Non-Caffeinated"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryIceBlended,
	CategoryFruity,
	CategoryFreshBrew,
	CategoryMilky,
	CategoryMatcha,
	CategoryNonCaffeinated,
}

// ParseCategory matches the given name against the known categories.
func ParseCategory(name string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}

// SeasonalWindow is a yearly month/day interval during which an item sells.
// End before Start (by month) means the window spans New Year's Day.
type SeasonalWindow struct {
	Start MonthDay `json:"start"`
	End   MonthDay `json:"end"`
}

// MenuItem is a sellable catalog entry. Season is nil for year-round items.
type MenuItem struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Category    Category        `json:"category"`
	Price       decimal.Decimal `json:"price"`
	ImageID     int             `json:"image_id"`
	Description string          `json:"description,omitempty"`
	Season      *SeasonalWindow `json:"season,omitempty"`
}

// Extra is an addable topping with a fixed surcharge.
type Extra struct {
	Name      string          `json:"name"`
	Surcharge decimal.Decimal `json:"surcharge"`
}
