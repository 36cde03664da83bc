package alchemy

import (
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/halvard/alchemist/internal/dataset"
	"github.com/halvard/alchemist/internal/domain"
)

// pairCacheSize bounds the pair-signature memo. The full Skyrim dataset has
// well under 100k compatible pairs, so in practice nothing is ever evicted.
const pairCacheSize = 131072

// Builder turns an ingredient combination into a potion, or nil when the
// combination yields nothing worth bottling. It is safe for concurrent use:
// the store is read-only and the pair memo is a thread-safe LRU.
type Builder struct {
	store    *dataset.Store
	pairSigs *lru.Cache[string, string]
}

// NewBuilder creates a builder over the loaded reference data.
func NewBuilder(store *dataset.Store) (*Builder, error) {
	cache, err := lru.New[string, string](pairCacheSize)
	if err != nil {
		return nil, err
	}
	return &Builder{store: store, pairSigs: cache}, nil
}

// Build mixes 2 or 3 distinct ingredients and returns the resulting potion,
// or nil when the mix is invalid:
//   - no effect is contributed by at least two ingredients,
//   - the surviving potencies mix beneficial and harmful effects,
//   - a 3-ingredient mix produces exactly the potency set of one of its
//     2-ingredient subsets (the third ingredient adds nothing).
func (b *Builder) Build(ingredients []*domain.Ingredient) *domain.Potion {
	potencies := b.winningPotencies(ingredients)
	if len(potencies) == 0 {
		return nil
	}

	// Purity: a valid potion is all-beneficial or all-harmful.
	effectType := potencies[0].Effect.Type
	for _, potency := range potencies[1:] {
		if potency.Effect.Type != effectType {
			return nil
		}
	}

	if len(ingredients) == 3 {
		signature := domain.PotencySignature(potencies)
		for drop := range ingredients {
			pair := make([]*domain.Ingredient, 0, 2)
			for i, ingredient := range ingredients {
				if i != drop {
					pair = append(pair, ingredient)
				}
			}
			if b.pairSignature(pair[0], pair[1]) == signature {
				return nil
			}
		}
	}

	sorted := make([]*domain.Ingredient, len(ingredients))
	copy(sorted, ingredients)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	potion := &domain.Potion{
		Ingredients: sorted,
		Potencies:   potencies,
	}
	for _, potency := range potencies {
		potion.Price += potency.Price
	}
	for _, ingredient := range sorted {
		potion.Accessibility += b.store.AccessibilityFactor(ingredient)
	}
	return potion
}

// winningPotencies computes the canonical potency list for the combination:
// per effect contributed by at least two of the ingredients, the single
// winning trait's potency, sorted by effect name. May be empty. Purity is
// not checked here; the pair memo needs the raw set either way.
func (b *Builder) winningPotencies(ingredients []*domain.Ingredient) []*domain.Potency {
	winners := make(map[string]*domain.Trait)
	contributors := make(map[string]int)
	for _, ingredient := range ingredients {
		for _, trait := range b.store.TraitsOf(ingredient) {
			effectName := trait.Potency.Effect.Name
			contributors[effectName]++
			if current, ok := winners[effectName]; !ok || trait.Beats(current) {
				winners[effectName] = trait
			}
		}
	}

	var potencies []*domain.Potency
	for effectName, trait := range winners {
		if contributors[effectName] < 2 {
			continue
		}
		potencies = append(potencies, trait.Potency)
	}
	sort.Slice(potencies, func(i, j int) bool {
		if potencies[i].Effect.Name != potencies[j].Effect.Name {
			return potencies[i].Effect.Name < potencies[j].Effect.Name
		}
		return potencies[i].Price < potencies[j].Price
	})
	return potencies
}

// pairSignature returns the potency signature the 2-ingredient mix would
// have, memoized; the empty string means the pair yields no potencies.
func (b *Builder) pairSignature(a, c *domain.Ingredient) string {
	first, second := a.Name, c.Name
	if second < first {
		first, second = second, first
	}
	key := first + "\x00" + second

	if sig, ok := b.pairSigs.Get(key); ok {
		return sig
	}

	sig := domain.PotencySignature(b.winningPotencies([]*domain.Ingredient{a, c}))
	b.pairSigs.Add(key, sig)
	return sig
}
