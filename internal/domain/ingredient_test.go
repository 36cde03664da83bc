package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAccessibilityFactor verifies the sourcing-difficulty bands
func TestAccessibilityFactor(t *testing.T) {
	t.Run("plantable beats gatherable beats hard to find", func(t *testing.T) {
		plantable := &Ingredient{Name: "Wheat", Value: 5, Plantable: true, VendorRarity: RarityCommon}
		gatherable := &Ingredient{Name: "Bone Meal", Value: 5, Plantable: false, VendorRarity: RarityCommon}
		hard := &Ingredient{Name: "Daedra Heart", Value: 5, Plantable: false, VendorRarity: RarityCommon}

		assert.Less(t, plantable.AccessibilityFactor(0), gatherable.AccessibilityFactor(0))
		assert.Less(t, gatherable.AccessibilityFactor(0), hard.AccessibilityFactor(0))
	})

	t.Run("cheaper ingredients are more accessible", func(t *testing.T) {
		cheap := &Ingredient{Name: "A", Value: 10, VendorRarity: RarityCommon}
		mid := &Ingredient{Name: "B", Value: 100, VendorRarity: RarityCommon}
		dear := &Ingredient{Name: "C", Value: 500, VendorRarity: RarityCommon}
		exotic := &Ingredient{Name: "D", Value: 1000, VendorRarity: RarityCommon}

		assert.Less(t, cheap.AccessibilityFactor(0), mid.AccessibilityFactor(0))
		assert.Less(t, mid.AccessibilityFactor(0), dear.AccessibilityFactor(0))
		assert.Less(t, dear.AccessibilityFactor(0), exotic.AccessibilityFactor(0))
	})

	t.Run("rarity bands order correctly", func(t *testing.T) {
		factor := func(rarity VendorRarity) float64 {
			ingredient := &Ingredient{Name: "X", Value: 10, VendorRarity: rarity}
			return ingredient.AccessibilityFactor(0)
		}
		assert.Less(t, factor(RarityCommon), factor(RarityUncommon))
		assert.Less(t, factor(RarityUncommon), factor(RarityRare))
		assert.Less(t, factor(RarityRare), factor(RarityLimited))
		assert.Less(t, factor(RarityLimited), factor(RarityUnsold))
	})

	t.Run("source pack bands order correctly", func(t *testing.T) {
		factor := func(pack SourcePack) float64 {
			ingredient := &Ingredient{Name: "X", Value: 10, VendorRarity: RarityCommon, UniqueTo: pack}
			return ingredient.AccessibilityFactor(0)
		}
		assert.Equal(t, factor(PackNone), factor(PackRequiem),
			"Requiem ingredients count as base game")
		assert.Less(t, factor(PackNone), factor(PackDawnguard))
		assert.Less(t, factor(PackDawnguard), factor(PackFishing),
			"Fishing ingredients are the least accessible pack")
	})

	t.Run("average potency price breaks ties within a band", func(t *testing.T) {
		ingredient := &Ingredient{Name: "X", Value: 10, VendorRarity: RarityCommon}
		assert.Less(t, ingredient.AccessibilityFactor(1), ingredient.AccessibilityFactor(50))
	})
}

func TestTraitBeats(t *testing.T) {
	effect := &Effect{Name: "Damage Health", Type: EffectHarmful, BaseCost: 3}
	strong := &Potency{Effect: effect, Magnitude: 15, Duration: 5, Price: 30}
	weak := &Potency{Effect: effect, Magnitude: 2, Duration: 10, Price: 6}

	deathbell := &Ingredient{Name: "Deathbell"}
	nightshade := &Ingredient{Name: "Nightshade"}

	t.Run("higher price wins", func(t *testing.T) {
		winner := &Trait{Ingredient: deathbell, Potency: strong}
		loser := &Trait{Ingredient: nightshade, Potency: weak}
		assert.True(t, winner.Beats(loser))
		assert.False(t, loser.Beats(winner))
	})

	t.Run("equal price falls back to ingredient name", func(t *testing.T) {
		a := &Trait{Ingredient: deathbell, Potency: weak}
		b := &Trait{Ingredient: nightshade, Potency: weak}
		assert.True(t, a.Beats(b), "Deathbell sorts before Nightshade")
		assert.False(t, b.Beats(a))
	})
}
