package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvard/alchemist/internal/domain"
)

const validBundle = `{
  "ingredients": [
    {"name": "Deathbell", "value": 4, "plantable": true},
    {"name": "Wheat", "value": 5, "plantable": true, "vendor_rarity": "common"}
  ],
  "effects": [
    {"name": "Damage Health", "effect_type": "harmful", "base_cost": 3},
    {"name": "Restore Health", "effect_type": "beneficial", "base_cost": 21}
  ],
  "traits": [
    {"ingredient_name": "Deathbell", "effect_name": "Damage Health", "magnitude": 10, "duration": 10, "order": 0},
    {"ingredient_name": "Wheat", "effect_name": "Restore Health", "magnitude": 5, "duration": 0, "order": 0}
  ]
}`

func writeBundle(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "alchemy.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadJSONBundle(t *testing.T) {
	tables, err := ReadJSONBundle(writeBundle(t, validBundle))
	require.NoError(t, err)

	require.Len(t, tables.Ingredients, 2)
	require.Len(t, tables.Effects, 2)
	require.Len(t, tables.Traits, 2)

	assert.Equal(t, "Deathbell", tables.Ingredients[0].Name)
	assert.True(t, tables.Ingredients[0].Plantable)
	assert.Equal(t, "", tables.Ingredients[0].VendorRarity, "absent field stays empty")
	assert.Equal(t, "common", tables.Ingredients[1].VendorRarity)
	assert.Equal(t, 3.0, tables.Effects[0].BaseCost)
	assert.Equal(t, 10.0, tables.Traits[0].Magnitude)
	assert.Equal(t, 10, tables.Traits[0].Duration)

	t.Run("matches the CSV row shape", func(t *testing.T) {
		require.NoError(t, tables.Validate())
	})
}

func TestReadJSONBundle_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ReadJSONBundle(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := ReadJSONBundle(writeBundle(t, `{"ingredients": [`))
		assert.ErrorIs(t, err, domain.ErrMalformedField)
	})

	t.Run("non-numeric value field", func(t *testing.T) {
		_, err := ReadJSONBundle(writeBundle(t, `{
  "ingredients": [{"name": "Deathbell", "value": "lots"}],
  "effects": [],
  "traits": []
}`))
		assert.ErrorIs(t, err, domain.ErrMalformedField)
	})

	t.Run("non-numeric magnitude", func(t *testing.T) {
		_, err := ReadJSONBundle(writeBundle(t, `{
  "ingredients": [],
  "effects": [],
  "traits": [{"ingredient_name": "A", "effect_name": "B", "magnitude": "high"}]
}`))
		assert.ErrorIs(t, err, domain.ErrMalformedField)
	})
}
