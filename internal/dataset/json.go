package dataset

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/halvard/alchemist/internal/domain"
)

// ReadJSONBundle reads the three reference tables from a single JSON file
// with top-level "ingredients", "effects" and "traits" arrays. Field names
// match the CSV headers.
func ReadJSONBundle(path string) (Tables, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if !gjson.ValidBytes(raw) {
		return Tables{}, fmt.Errorf("%w: %s is not valid JSON", domain.ErrMalformedField, path)
	}

	var tables Tables
	root := gjson.ParseBytes(raw)

	for i, item := range root.Get("ingredients").Array() {
		value := item.Get("value")
		if value.Exists() && value.Type != gjson.Number {
			return Tables{}, bundleError(path, "ingredients", i, "value", value)
		}
		tables.Ingredients = append(tables.Ingredients, IngredientRow{
			Name:         item.Get("name").String(),
			Value:        int(value.Int()),
			Plantable:    item.Get("plantable").Bool(),
			VendorRarity: item.Get("vendor_rarity").String(),
			UniqueTo:     item.Get("unique_to").String(),
		})
	}

	for i, item := range root.Get("effects").Array() {
		baseCost := item.Get("base_cost")
		if baseCost.Exists() && baseCost.Type != gjson.Number {
			return Tables{}, bundleError(path, "effects", i, "base_cost", baseCost)
		}
		tables.Effects = append(tables.Effects, EffectRow{
			Name:     item.Get("name").String(),
			Type:     item.Get("effect_type").String(),
			BaseCost: baseCost.Float(),
		})
	}

	for i, item := range root.Get("traits").Array() {
		for _, field := range []string{"magnitude", "duration", "order"} {
			v := item.Get(field)
			if v.Exists() && v.Type != gjson.Number {
				return Tables{}, bundleError(path, "traits", i, field, v)
			}
		}
		tables.Traits = append(tables.Traits, TraitRow{
			IngredientName: item.Get("ingredient_name").String(),
			EffectName:     item.Get("effect_name").String(),
			Magnitude:      item.Get("magnitude").Float(),
			Duration:       int(item.Get("duration").Int()),
			Order:          int(item.Get("order").Int()),
		})
	}

	return tables, nil
}

func bundleError(path, table string, index int, field string, v gjson.Result) error {
	return fmt.Errorf("%w: %s: %s[%d].%s=%s", domain.ErrMalformedField, path, table, index, field, v.Raw)
}
