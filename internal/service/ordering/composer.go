package ordering

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/cafepos/internal/domain/models"
)

var (
	// ErrFlagMismatch indicates selection flags do not line up with their options.
	ErrFlagMismatch = errors.New("selection flags do not match options")
	// ErrUnknownOption indicates a selected ingredient is not offered.
	ErrUnknownOption = errors.New("unknown customization option")
)

// DefaultSurcharge is what one added extra costs unless configured otherwise.
var DefaultSurcharge = decimal.RequireFromString("0.50")

// Options are the customizations offered for every drink.
type Options struct {
	BaseIngredients []string
	Extras          []models.Extra
}

// DefaultOptions returns the house customizations at the given surcharge.
func DefaultOptions(surcharge decimal.Decimal) Options {
	extras := []string{"Aloe", "Pudding", "Jelly", "Extra Boba"}
	opts := Options{BaseIngredients: []string{"Milk", "Sugar", "Boba", "Ice"}}
	for _, name := range extras {
		opts.Extras = append(opts.Extras, models.Extra{Name: name, Surcharge: surcharge})
	}
	return opts
}

// LineRequest carries everything needed to price one drink. Removed aligns
// with BaseIngredients and Added with Extras.
type LineRequest struct {
	MenuID          int
	DrinkName       string
	BasePrice       decimal.Decimal
	BaseIngredients []string
	Extras          []models.Extra
	Removed         []bool
	Added           []bool
}

// BuildLine prices and describes a customized drink.
//
// The description reads "<drink> [-<removed> ... +<added> ... ]", each marker
// followed by a single space.
func BuildLine(req LineRequest) (models.OrderLine, error) {
	if len(req.Removed) != len(req.BaseIngredients) {
		return models.OrderLine{}, fmt.Errorf("%w: %d removal flags for %d ingredients", ErrFlagMismatch, len(req.Removed), len(req.BaseIngredients))
	}
	if len(req.Added) != len(req.Extras) {
		return models.OrderLine{}, fmt.Errorf("%w: %d extra flags for %d extras", ErrFlagMismatch, len(req.Added), len(req.Extras))
	}

	price := req.BasePrice
	var (
		desc    strings.Builder
		removed []string
		added   []models.Extra
	)
	desc.WriteString(req.DrinkName)
	desc.WriteString(" [")

	for i, ingredient := range req.BaseIngredients {
		if !req.Removed[i] {
			continue
		}
		removed = append(removed, ingredient)
		desc.WriteString("-" + ingredient + " ")
	}

	for i, extra := range req.Extras {
		if !req.Added[i] {
			continue
		}
		added = append(added, extra)
		price = price.Add(extra.Surcharge)
		desc.WriteString("+" + extra.Name + " ")
	}
	desc.WriteString("]")

	return models.OrderLine{
		ID:          uuid.New(),
		MenuID:      req.MenuID,
		DrinkName:   req.DrinkName,
		Removed:     removed,
		Extras:      added,
		Price:       price,
		Description: desc.String(),
	}, nil
}

// Composer builds lines for catalog items from selected option names.
type Composer struct {
	options Options
}

// NewComposer returns a composer offering opts.
func NewComposer(opts Options) *Composer {
	return &Composer{options: opts}
}

// Options exposes the offered customizations.
func (c *Composer) Options() Options {
	return c.options
}

// Compose builds a line for item with the named ingredients removed and extras added.
func (c *Composer) Compose(item models.MenuItem, removed, added []string) (models.OrderLine, error) {
	removedFlags, err := flagsFor(c.options.BaseIngredients, removed)
	if err != nil {
		return models.OrderLine{}, err
	}

	extraNames := make([]string, 0, len(c.options.Extras))
	for _, e := range c.options.Extras {
		extraNames = append(extraNames, e.Name)
	}
	addedFlags, err := flagsFor(extraNames, added)
	if err != nil {
		return models.OrderLine{}, err
	}

	return BuildLine(LineRequest{
		MenuID:          item.ID,
		DrinkName:       item.Name,
		BasePrice:       item.Price,
		BaseIngredients: c.options.BaseIngredients,
		Extras:          c.options.Extras,
		Removed:         removedFlags,
		Added:           addedFlags,
	})
}

func flagsFor(options, selected []string) ([]bool, error) {
	flags := make([]bool, len(options))
	for _, name := range selected {
		found := false
		for i, opt := range options {
			if strings.EqualFold(opt, name) {
				flags[i] = true
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrUnknownOption, name)
		}
	}
	return flags, nil
}
