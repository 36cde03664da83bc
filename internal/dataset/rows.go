package dataset

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/halvard/alchemist/internal/domain"
)

// IngredientRow is one already-coerced record from the ingredients table.
type IngredientRow struct {
	Name         string `validate:"required"`
	Value        int    `validate:"gte=0"`
	Plantable    bool
	VendorRarity string `validate:"omitempty,oneof=common uncommon rare limited"`
	UniqueTo     string `validate:"omitempty,oneof=ResourcePack Dawnguard Dragonborn Fishing Hearthfire Requiem"`
}

// EffectRow is one already-coerced record from the effects table.
type EffectRow struct {
	Name     string  `validate:"required"`
	Type     string  `validate:"required,oneof=beneficial harmful"`
	BaseCost float64 `validate:"gte=0"`
}

// TraitRow associates an ingredient with an effect at a given magnitude,
// duration and in-game ordering position.
type TraitRow struct {
	IngredientName string  `validate:"required"`
	EffectName     string  `validate:"required"`
	Magnitude      float64 `validate:"gte=0"`
	Duration       int     `validate:"gte=0"`
	Order          int     `validate:"gte=0"`
}

// Tables bundles the three reference datasets in row form, after parsing and
// coercion but before graph linking.
type Tables struct {
	Ingredients []IngredientRow
	Effects     []EffectRow
	Traits      []TraitRow
}

var validate = validator.New()

// Validate checks every row against its struct tags. The first failure aborts
// with the table name and row index; there is no partial load.
func (t Tables) Validate() error {
	for i, row := range t.Ingredients {
		if err := validate.Struct(row); err != nil {
			return rowError("ingredients", i, row.Name, err)
		}
	}
	for i, row := range t.Effects {
		if err := validate.Struct(row); err != nil {
			return rowError("effects", i, row.Name, err)
		}
	}
	for i, row := range t.Traits {
		if err := validate.Struct(row); err != nil {
			return rowError("traits", i, row.IngredientName+"/"+row.EffectName, err)
		}
	}
	return nil
}

func rowError(table string, index int, key string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		return fmt.Errorf("%w: %s row %d (%s): field %s fails %q",
			domain.ErrInvalidRow, table, index, key, e.Field(), e.Tag())
	}
	return fmt.Errorf("%w: %s row %d (%s): %v", domain.ErrInvalidRow, table, index, key, err)
}
