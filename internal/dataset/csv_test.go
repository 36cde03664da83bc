package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvard/alchemist/internal/domain"
)

func writeCSVDir(t *testing.T, ingredients, effects, traits string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ingredients.csv"), []byte(ingredients), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "effects.csv"), []byte(effects), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "traits.csv"), []byte(traits), 0o644))
	return dir
}

const (
	validIngredients = `name,value,plantable,vendor_rarity,unique_to
Deathbell,4,True,,
Wheat,5,True,common,
Ash Hopper Jelly,20,False,rare,Dragonborn
`
	validEffects = `name,effect_type,base_cost
Damage Health,harmful,3
Restore Health,beneficial,21
`
	validTraits = `ingredient_name,effect_name,magnitude,duration,order
Deathbell,Damage Health,10,10,0
Wheat,Restore Health,5,0,0
`
)

func TestReadCSVDir(t *testing.T) {
	dir := writeCSVDir(t, validIngredients, validEffects, validTraits)

	tables, err := ReadCSVDir(dir)
	require.NoError(t, err)

	require.Len(t, tables.Ingredients, 3)
	require.Len(t, tables.Effects, 2)
	require.Len(t, tables.Traits, 2)

	t.Run("coerces typed fields", func(t *testing.T) {
		deathbell := tables.Ingredients[0]
		assert.Equal(t, "Deathbell", deathbell.Name)
		assert.Equal(t, 4, deathbell.Value)
		assert.True(t, deathbell.Plantable)
		assert.Equal(t, "", deathbell.VendorRarity, "empty cell means absent")

		jelly := tables.Ingredients[2]
		assert.False(t, jelly.Plantable)
		assert.Equal(t, "Dragonborn", jelly.UniqueTo)

		assert.Equal(t, 21.0, tables.Effects[1].BaseCost)
		assert.Equal(t, 10.0, tables.Traits[0].Magnitude)
		assert.Equal(t, 10, tables.Traits[0].Duration)
	})

	t.Run("loads into a store", func(t *testing.T) {
		require.NoError(t, tables.Validate())
	})
}

func TestReadCSVDir_Malformed(t *testing.T) {
	tests := []struct {
		name        string
		ingredients string
		traits      string
	}{
		{
			name: "non-numeric value",
			ingredients: `name,value,plantable,vendor_rarity,unique_to
Deathbell,lots,True,,
`,
			traits: validTraits,
		},
		{
			name:        "non-numeric magnitude",
			ingredients: validIngredients,
			traits: `ingredient_name,effect_name,magnitude,duration,order
Deathbell,Damage Health,high,10,0
`,
		},
		{
			name: "unrecognized bool spelling",
			ingredients: `name,value,plantable,vendor_rarity,unique_to
Deathbell,4,maybe,,
`,
			traits: validTraits,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeCSVDir(t, tt.ingredients, validEffects, tt.traits)
			_, err := ReadCSVDir(dir)
			assert.ErrorIs(t, err, domain.ErrMalformedField)
		})
	}
}

func TestReadCSVDir_MissingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ingredients.csv"), []byte(validIngredients), 0o644))

	_, err := ReadCSVDir(dir)
	assert.Error(t, err)
}

func TestReadCSVDir_EmptyNumericCells(t *testing.T) {
	traits := `ingredient_name,effect_name,magnitude,duration,order
Wheat,Restore Health,5,,
`
	dir := writeCSVDir(t, validIngredients, validEffects, traits)

	tables, err := ReadCSVDir(dir)
	require.NoError(t, err)
	require.Len(t, tables.Traits, 1)
	assert.Equal(t, 0, tables.Traits[0].Duration, "empty cell coerces to zero")
	assert.Equal(t, 0, tables.Traits[0].Order)
}
