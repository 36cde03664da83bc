package alchemy

import (
	"sort"

	"github.com/halvard/alchemist/internal/dataset"
	"github.com/halvard/alchemist/internal/domain"
)

// CompatIndex answers "which ingredients share at least one effect" without
// rescanning the trait table. Two ingredients are compatible when their
// effect sets intersect; an ingredient is never compatible with itself.
type CompatIndex struct {
	byName map[string]map[string]struct{}
	sorted map[string][]*domain.Ingredient
}

// NewCompatIndex builds the index from the store's trait table.
func NewCompatIndex(store *dataset.Store) *CompatIndex {
	idx := &CompatIndex{
		byName: make(map[string]map[string]struct{}),
		sorted: make(map[string][]*domain.Ingredient),
	}

	for _, effect := range store.Effects() {
		sharing := store.IngredientsWith(effect)
		for _, a := range sharing {
			for _, b := range sharing {
				if a.Name == b.Name {
					continue
				}
				peers, ok := idx.byName[a.Name]
				if !ok {
					peers = make(map[string]struct{})
					idx.byName[a.Name] = peers
				}
				peers[b.Name] = struct{}{}
			}
		}
	}

	byIngredientName := make(map[string]*domain.Ingredient)
	for _, ingredient := range store.Ingredients() {
		byIngredientName[ingredient.Name] = ingredient
	}
	for name, peers := range idx.byName {
		list := make([]*domain.Ingredient, 0, len(peers))
		for peer := range peers {
			list = append(list, byIngredientName[peer])
		}
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
		idx.sorted[name] = list
	}

	return idx
}

// Compatible reports whether a and b share at least one effect.
func (idx *CompatIndex) Compatible(a, b *domain.Ingredient) bool {
	_, ok := idx.byName[a.Name][b.Name]
	return ok
}

// CompatibleWith returns the ingredients sharing at least one effect with
// ingredient, sorted by name. The ingredient itself is never included.
func (idx *CompatIndex) CompatibleWith(ingredient *domain.Ingredient) []*domain.Ingredient {
	return idx.sorted[ingredient.Name]
}
