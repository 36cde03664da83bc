package render

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvard/alchemist/internal/alchemy"
	"github.com/halvard/alchemist/internal/dataset"
)

func fixtureStore(t *testing.T) (*dataset.Store, *alchemy.Result) {
	t.Helper()
	tables := dataset.Tables{
		Ingredients: []dataset.IngredientRow{
			{Name: "Deathbell", Value: 4, Plantable: true},
			{Name: "Nightshade", Value: 8, Plantable: true, VendorRarity: "common"},
			{Name: "River Betty", Value: 15, VendorRarity: "rare"},
		},
		Effects: []dataset.EffectRow{
			{Name: "Damage Health", Type: "harmful", BaseCost: 3},
			{Name: "Slow", Type: "harmful", BaseCost: 247},
		},
		Traits: []dataset.TraitRow{
			{IngredientName: "Deathbell", EffectName: "Damage Health", Magnitude: 10, Duration: 10},
			{IngredientName: "Deathbell", EffectName: "Slow", Magnitude: 50, Duration: 10},
			{IngredientName: "Nightshade", EffectName: "Damage Health", Magnitude: 10, Duration: 10},
			{IngredientName: "River Betty", EffectName: "Damage Health", Magnitude: 15, Duration: 5},
			{IngredientName: "River Betty", EffectName: "Slow", Magnitude: 50, Duration: 10},
		},
	}
	store, err := dataset.Load(context.Background(), tables)
	require.NoError(t, err)
	result, err := alchemy.Enumerate(context.Background(), store, alchemy.Options{Workers: 1})
	require.NoError(t, err)
	return store, result
}

func readPage(t *testing.T, dir, name string) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(raw)
}

func TestWritePages(t *testing.T) {
	store, result := fixtureStore(t)
	dir := t.TempDir()

	err := WritePages(context.Background(), store, result, DefaultManifest(), dir)
	require.NoError(t, err)

	t.Run("all pages are written", func(t *testing.T) {
		for _, name := range []string{"index.html", "ingredients.html", "effects.html", "potions.html"} {
			_, err := os.Stat(filepath.Join(dir, name))
			assert.NoError(t, err, name)
		}
	})

	t.Run("index carries the dataset counts", func(t *testing.T) {
		index := readPage(t, dir, "index.html")
		assert.Contains(t, index, DefaultManifest().Title)
		assert.Contains(t, index, "Valid potions")
	})

	t.Run("ingredients page lists every ingredient", func(t *testing.T) {
		page := readPage(t, dir, "ingredients.html")
		assert.Contains(t, page, "Deathbell")
		assert.Contains(t, page, "Nightshade")
		assert.Contains(t, page, "River Betty")
	})

	t.Run("effects page orders by base cost descending", func(t *testing.T) {
		page := readPage(t, dir, "effects.html")
		assert.Less(t,
			strings.Index(page, "Slow"),
			strings.Index(page, "Damage Health"),
			"Slow (247) must appear before Damage Health (3)")
	})

	t.Run("potions page shows the easiest recipe per potency set", func(t *testing.T) {
		page := readPage(t, dir, "potions.html")
		assert.Contains(t, page, "Deathbell + Nightshade")
	})

	t.Run("rendering is deterministic", func(t *testing.T) {
		again := t.TempDir()
		require.NoError(t, WritePages(context.Background(), store, result, DefaultManifest(), again))
		for _, name := range []string{"index.html", "ingredients.html", "effects.html", "potions.html"} {
			assert.Equal(t, readPage(t, dir, name), readPage(t, again, name), name)
		}
	})
}

func TestWritePages_ManifestControls(t *testing.T) {
	store, result := fixtureStore(t)

	t.Run("page selection", func(t *testing.T) {
		dir := t.TempDir()
		manifest := DefaultManifest()
		manifest.Pages = []string{"index", "effects"}

		require.NoError(t, WritePages(context.Background(), store, result, manifest, dir))

		_, err := os.Stat(filepath.Join(dir, "effects.html"))
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(dir, "ingredients.html"))
		assert.True(t, os.IsNotExist(err), "disabled pages must not be written")
	})

	t.Run("potion group cap", func(t *testing.T) {
		dir := t.TempDir()
		manifest := DefaultManifest()
		manifest.MaxPotionGroups = 1

		require.NoError(t, WritePages(context.Background(), store, result, manifest, dir))
		page := readPage(t, dir, "potions.html")
		assert.Contains(t, page, "omitted")
	})
}

func TestLoadManifest(t *testing.T) {
	t.Run("empty path yields defaults", func(t *testing.T) {
		manifest, err := LoadManifest("")
		require.NoError(t, err)
		assert.Equal(t, DefaultManifest(), manifest)
	})

	t.Run("missing configured file is an error", func(t *testing.T) {
		_, err := LoadManifest(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "site.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"title: Brewmaster\npages:\n  - index\nmax_potion_groups: 10\n"), 0o644))

		manifest, err := LoadManifest(path)
		require.NoError(t, err)
		assert.Equal(t, "Brewmaster", manifest.Title)
		assert.Equal(t, []string{"index"}, manifest.Pages)
		assert.Equal(t, 10, manifest.MaxPotionGroups)
	})

	t.Run("missing title falls back to the default", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "site.yaml")
		require.NoError(t, os.WriteFile(path, []byte("description: just potions\n"), 0o644))

		manifest, err := LoadManifest(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultManifest().Title, manifest.Title)
		assert.Equal(t, "just potions", manifest.Description)
	})

	t.Run("invalid YAML is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "site.yaml")
		require.NoError(t, os.WriteFile(path, []byte("title: [\n"), 0o644))
		_, err := LoadManifest(path)
		assert.Error(t, err)
	})
}
