package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/mamadbah2/cafepos/internal/domain/models"
)

// Customization lists the removable base ingredients and addable extras
// offered for every drink.
type Customization struct {
	BaseIngredients []string
	Extras          []models.Extra
}

type customizationFile struct {
	BaseIngredients []string `yaml:"base_ingredients"`
	Extras          []struct {
		Name      string `yaml:"name"`
		Surcharge string `yaml:"surcharge"`
	} `yaml:"extras"`
}

// LoadCustomization reads options from a YAML file. Extras without a
// surcharge cost surcharge.
func LoadCustomization(path string, surcharge decimal.Decimal) (Customization, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Customization{}, fmt.Errorf("read customization file %s: %w", path, err)
	}
	return ParseCustomization(raw, surcharge)
}

// ParseCustomization decodes the YAML form of Customization.
func ParseCustomization(raw []byte, surcharge decimal.Decimal) (Customization, error) {
	var file customizationFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Customization{}, fmt.Errorf("decode customization: %w", err)
	}
	if len(file.BaseIngredients) == 0 && len(file.Extras) == 0 {
		return Customization{}, errors.New("customization file lists no options")
	}

	c := Customization{BaseIngredients: file.BaseIngredients}
	for _, e := range file.Extras {
		if e.Name == "" {
			return Customization{}, errors.New("customization extra without a name")
		}
		price := surcharge
		if e.Surcharge != "" {
			parsed, err := decimal.NewFromString(e.Surcharge)
			if err != nil {
				return Customization{}, fmt.Errorf("surcharge for %s: %w", e.Name, err)
			}
			if parsed.IsNegative() {
				return Customization{}, fmt.Errorf("surcharge for %s must not be negative", e.Name)
			}
			price = parsed
		}
		c.Extras = append(c.Extras, models.Extra{Name: e.Name, Surcharge: price})
	}
	return c, nil
}
