package alchemy

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/halvard/alchemist/internal/dataset"
	"github.com/halvard/alchemist/internal/domain"
	"github.com/halvard/alchemist/internal/logger"
	"github.com/halvard/alchemist/internal/utils"
)

// Options tunes the enumeration. Workers <= 1 runs sequentially; either way
// the output order is identical.
type Options struct {
	Workers int
}

// Result is the full enumeration output plus the groupings reports consume.
// Potions is deterministic: ingredient combinations are visited in name
// order, so two runs over the same tables produce the same slice.
type Result struct {
	Potions []*domain.Potion

	// ByPotencySet groups potions sharing the exact same potency set.
	ByPotencySet map[string][]*domain.Potion
	// ByEffectSet groups potions sharing the same effect set, regardless of
	// which magnitudes and durations won.
	ByEffectSet map[string][]*domain.Potion
	// ByIngredient lists every potion an ingredient participates in.
	ByIngredient map[string][]*domain.Potion

	// MeanPriceByIngredient and MedianPriceByIngredient summarise the prices
	// of each ingredient's potions.
	MeanPriceByIngredient   map[string]float64
	MedianPriceByIngredient map[string]float64
}

// Enumerate builds every valid 2- and 3-ingredient potion over the store's
// ingredients. Combinations are generated in ingredient-name order; the
// compat index prunes combinations that cannot produce a potion before the
// builder ever sees them.
func Enumerate(ctx context.Context, store *dataset.Store, opts Options) (*Result, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	ingredients := store.Ingredients()
	compat := NewCompatIndex(store)
	builder, err := NewBuilder(store)
	if err != nil {
		return nil, err
	}

	// Each outer index collects its own slice; flattening in index order
	// makes the parallel run byte-identical to the sequential one.
	perIndex := make([][]*domain.Potion, len(ingredients))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range ingredients {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			perIndex[i] = enumerateFrom(builder, compat, ingredients, i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		ByPotencySet: make(map[string][]*domain.Potion),
		ByEffectSet:  make(map[string][]*domain.Potion),
		ByIngredient: make(map[string][]*domain.Potion),
	}
	for _, potions := range perIndex {
		for _, potion := range potions {
			result.Potions = append(result.Potions, potion)
			result.ByPotencySet[potion.PotencySignature()] = append(result.ByPotencySet[potion.PotencySignature()], potion)
			result.ByEffectSet[potion.EffectSignature()] = append(result.ByEffectSet[potion.EffectSignature()], potion)
			for _, ingredient := range potion.Ingredients {
				result.ByIngredient[ingredient.Name] = append(result.ByIngredient[ingredient.Name], potion)
			}
		}
	}
	result.computePriceStats()

	log.Info("enumeration complete",
		"ingredients", len(ingredients),
		"potions", len(result.Potions),
		"potency_sets", len(result.ByPotencySet),
		"workers", workers,
		"elapsed", time.Since(start))

	return result, nil
}

// enumerateFrom yields the valid potions whose lowest-ordered ingredient is
// ingredients[i]: every pair (i,j) and triple (i,j,k) with i<j<k. A triple is
// attempted only when at least two of its three pairs are compatible; with a
// single compatible pair the third ingredient contributes nothing and the
// redundancy check would reject the potion anyway.
func enumerateFrom(builder *Builder, compat *CompatIndex, ingredients []*domain.Ingredient, i int) []*domain.Potion {
	var potions []*domain.Potion
	first := ingredients[i]

	for j := i + 1; j < len(ingredients); j++ {
		second := ingredients[j]
		ij := compat.Compatible(first, second)
		if ij {
			if potion := builder.Build([]*domain.Ingredient{first, second}); potion != nil {
				potions = append(potions, potion)
			}
		}
		for k := j + 1; k < len(ingredients); k++ {
			third := ingredients[k]
			links := 0
			if ij {
				links++
			}
			if compat.Compatible(first, third) {
				links++
			}
			if compat.Compatible(second, third) {
				links++
			}
			if links < 2 {
				continue
			}
			if potion := builder.Build([]*domain.Ingredient{first, second, third}); potion != nil {
				potions = append(potions, potion)
			}
		}
	}
	return potions
}

func (r *Result) computePriceStats() {
	r.MeanPriceByIngredient = make(map[string]float64, len(r.ByIngredient))
	r.MedianPriceByIngredient = make(map[string]float64, len(r.ByIngredient))
	for name, potions := range r.ByIngredient {
		prices := make([]float64, len(potions))
		for i, potion := range potions {
			prices[i] = potion.Price
		}
		r.MeanPriceByIngredient[name] = utils.Mean(prices)
		r.MedianPriceByIngredient[name] = utils.Median(prices)
	}
}

// BestByPotencySet returns, per potency set, the potion with the lowest
// accessibility score (the easiest to brew), with ties broken by the
// ingredient list so the pick is stable.
func (r *Result) BestByPotencySet() map[string]*domain.Potion {
	best := make(map[string]*domain.Potion, len(r.ByPotencySet))
	for signature, potions := range r.ByPotencySet {
		pick := potions[0]
		for _, potion := range potions[1:] {
			if potion.Accessibility < pick.Accessibility ||
				(potion.Accessibility == pick.Accessibility && ingredientKey(potion) < ingredientKey(pick)) {
				pick = potion
			}
		}
		best[signature] = pick
	}
	return best
}

// SortedPotencySets returns the potency-set signatures ordered by descending
// group price, then signature, for stable report output.
func (r *Result) SortedPotencySets() []string {
	signatures := make([]string, 0, len(r.ByPotencySet))
	for signature := range r.ByPotencySet {
		signatures = append(signatures, signature)
	}
	sort.Slice(signatures, func(i, j int) bool {
		pi := r.ByPotencySet[signatures[i]][0].Price
		pj := r.ByPotencySet[signatures[j]][0].Price
		if pi != pj {
			return pi > pj
		}
		return signatures[i] < signatures[j]
	})
	return signatures
}

func ingredientKey(p *domain.Potion) string {
	key := ""
	for i, ingredient := range p.Ingredients {
		if i > 0 {
			key += "+"
		}
		key += ingredient.Name
	}
	return key
}
