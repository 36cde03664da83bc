package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/halvard/alchemist/internal/domain"
	"github.com/halvard/alchemist/internal/logger"
	"github.com/halvard/alchemist/internal/utils"
)

// potencyKey is the structural identity of a potency. Two traits recording
// the same (effect, magnitude, duration) must resolve to the same *Potency.
type potencyKey struct {
	effectName string
	magnitude  float64
	duration   int
}

// pairKey addresses the at-most-one trait an ingredient has per effect.
type pairKey struct {
	ingredientName string
	effectName     string
}

// Store holds the loaded reference data plus the index maps everything else
// navigates through. All cross-entity lookups go through the store; the
// domain structs themselves carry no back-pointers. A Store is immutable
// after Load returns and safe for concurrent readers.
type Store struct {
	ingredients []*domain.Ingredient
	effects     []*domain.Effect
	traits      []*domain.Trait
	potencies   []*domain.Potency

	ingredientByName  map[string]*domain.Ingredient
	effectByName      map[string]*domain.Effect
	potencyByKey      map[potencyKey]*domain.Potency
	traitsByIngredient map[string][]*domain.Trait
	traitsByEffect    map[string][]*domain.Trait
	traitByPair       map[pairKey]*domain.Trait

	avgPotencyPrice map[string]float64 // ingredient name -> mean potency price
	accessibility   map[string]float64 // ingredient name -> accessibility factor
}

// Load validates the tables and links them into a Store. Any inconsistency
// (validation failure, duplicate key, dangling trait reference) aborts the
// load; there is no partial result.
func Load(ctx context.Context, tables Tables) (*Store, error) {
	log := logger.FromContext(ctx)

	if err := tables.Validate(); err != nil {
		return nil, err
	}

	s := &Store{
		ingredientByName:  make(map[string]*domain.Ingredient, len(tables.Ingredients)),
		effectByName:      make(map[string]*domain.Effect, len(tables.Effects)),
		potencyByKey:      make(map[potencyKey]*domain.Potency),
		traitsByIngredient: make(map[string][]*domain.Trait),
		traitsByEffect:    make(map[string][]*domain.Trait),
		traitByPair:       make(map[pairKey]*domain.Trait, len(tables.Traits)),
	}

	for _, row := range tables.Ingredients {
		if _, exists := s.ingredientByName[row.Name]; exists {
			return nil, fmt.Errorf("%w: ingredient %q", domain.ErrDuplicateName, row.Name)
		}
		rarity := domain.VendorRarity(row.VendorRarity)
		if row.VendorRarity == "" {
			rarity = domain.RarityUnsold
		}
		ingredient := &domain.Ingredient{
			Name:         row.Name,
			Value:        row.Value,
			Plantable:    row.Plantable,
			VendorRarity: rarity,
			UniqueTo:     domain.SourcePack(row.UniqueTo),
		}
		s.ingredients = append(s.ingredients, ingredient)
		s.ingredientByName[row.Name] = ingredient
	}

	for _, row := range tables.Effects {
		if _, exists := s.effectByName[row.Name]; exists {
			return nil, fmt.Errorf("%w: effect %q", domain.ErrDuplicateName, row.Name)
		}
		effect := &domain.Effect{
			Name:     row.Name,
			Type:     domain.EffectType(row.Type),
			BaseCost: row.BaseCost,
		}
		s.effects = append(s.effects, effect)
		s.effectByName[row.Name] = effect
	}

	for _, row := range tables.Traits {
		ingredient, ok := s.ingredientByName[row.IngredientName]
		if !ok {
			return nil, fmt.Errorf("%w: %q (trait for effect %q)",
				domain.ErrUnknownIngredient, row.IngredientName, row.EffectName)
		}
		effect, ok := s.effectByName[row.EffectName]
		if !ok {
			return nil, fmt.Errorf("%w: %q (trait of ingredient %q)",
				domain.ErrUnknownEffect, row.EffectName, row.IngredientName)
		}

		pk := pairKey{ingredientName: ingredient.Name, effectName: effect.Name}
		if _, exists := s.traitByPair[pk]; exists {
			return nil, fmt.Errorf("%w: %q already has effect %q",
				domain.ErrDuplicateTrait, ingredient.Name, effect.Name)
		}

		trait := &domain.Trait{
			Ingredient: ingredient,
			Potency:    s.ResolvePotency(effect, row.Magnitude, row.Duration),
			Order:      row.Order,
		}
		s.traits = append(s.traits, trait)
		s.traitByPair[pk] = trait
		s.traitsByIngredient[ingredient.Name] = append(s.traitsByIngredient[ingredient.Name], trait)
		s.traitsByEffect[effect.Name] = append(s.traitsByEffect[effect.Name], trait)
	}

	s.computeDerived()

	log.Info("reference data loaded",
		"ingredients", len(s.ingredients),
		"effects", len(s.effects),
		"traits", len(s.traits),
		"potencies", len(s.potencies))

	return s, nil
}

// ResolvePotency returns the unique potency for (effect, magnitude, duration),
// creating it on first sight. The price is fixed here, once.
func (s *Store) ResolvePotency(effect *domain.Effect, magnitude float64, duration int) *domain.Potency {
	key := potencyKey{effectName: effect.Name, magnitude: magnitude, duration: duration}
	if p, ok := s.potencyByKey[key]; ok {
		return p
	}
	p := &domain.Potency{
		Effect:    effect,
		Magnitude: magnitude,
		Duration:  duration,
		Price:     domain.ValueFormula(magnitude, duration) * effect.BaseCost,
	}
	s.potencyByKey[key] = p
	s.potencies = append(s.potencies, p)
	return p
}

// computeDerived fixes the per-ingredient aggregates after all traits are in.
// Accessibility depends on the mean potency price, so order matters.
func (s *Store) computeDerived() {
	s.avgPotencyPrice = make(map[string]float64, len(s.ingredients))
	s.accessibility = make(map[string]float64, len(s.ingredients))
	for _, ingredient := range s.ingredients {
		var prices []float64
		for _, trait := range s.traitsByIngredient[ingredient.Name] {
			prices = append(prices, trait.Potency.Price)
		}
		avg := utils.Mean(prices)
		s.avgPotencyPrice[ingredient.Name] = avg
		s.accessibility[ingredient.Name] = ingredient.AccessibilityFactor(avg)
	}
}

// Ingredients returns all ingredients sorted by name.
func (s *Store) Ingredients() []*domain.Ingredient {
	out := make([]*domain.Ingredient, len(s.ingredients))
	copy(out, s.ingredients)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Effects returns all effects sorted by name.
func (s *Store) Effects() []*domain.Effect {
	out := make([]*domain.Effect, len(s.effects))
	copy(out, s.effects)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Traits returns all traits in table order.
func (s *Store) Traits() []*domain.Trait {
	out := make([]*domain.Trait, len(s.traits))
	copy(out, s.traits)
	return out
}

// Potencies returns all distinct potencies in creation order.
func (s *Store) Potencies() []*domain.Potency {
	out := make([]*domain.Potency, len(s.potencies))
	copy(out, s.potencies)
	return out
}

// Ingredient looks an ingredient up by name.
func (s *Store) Ingredient(name string) (*domain.Ingredient, error) {
	ingredient, ok := s.ingredientByName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownIngredient, name)
	}
	return ingredient, nil
}

// Effect looks an effect up by name.
func (s *Store) Effect(name string) (*domain.Effect, error) {
	effect, ok := s.effectByName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownEffect, name)
	}
	return effect, nil
}

// TraitsOf returns the ingredient's traits in table order.
func (s *Store) TraitsOf(ingredient *domain.Ingredient) []*domain.Trait {
	return s.traitsByIngredient[ingredient.Name]
}

// TraitFor returns the single trait linking ingredient and effect, or nil.
func (s *Store) TraitFor(ingredient *domain.Ingredient, effect *domain.Effect) *domain.Trait {
	return s.traitByPair[pairKey{ingredientName: ingredient.Name, effectName: effect.Name}]
}

// EffectsOf returns the ingredient's effects sorted by name.
func (s *Store) EffectsOf(ingredient *domain.Ingredient) []*domain.Effect {
	traits := s.traitsByIngredient[ingredient.Name]
	out := make([]*domain.Effect, 0, len(traits))
	for _, trait := range traits {
		out = append(out, trait.Potency.Effect)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// PotenciesOf returns the ingredient's potencies in trait order.
func (s *Store) PotenciesOf(ingredient *domain.Ingredient) []*domain.Potency {
	traits := s.traitsByIngredient[ingredient.Name]
	out := make([]*domain.Potency, 0, len(traits))
	for _, trait := range traits {
		out = append(out, trait.Potency)
	}
	return out
}

// TraitsForEffect returns the effect's traits in table order.
func (s *Store) TraitsForEffect(effect *domain.Effect) []*domain.Trait {
	return s.traitsByEffect[effect.Name]
}

// IngredientsWith returns the ingredients exhibiting the effect, sorted by name.
func (s *Store) IngredientsWith(effect *domain.Effect) []*domain.Ingredient {
	traits := s.traitsByEffect[effect.Name]
	out := make([]*domain.Ingredient, 0, len(traits))
	for _, trait := range traits {
		out = append(out, trait.Ingredient)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AveragePotencyPrice returns the mean price of the ingredient's potencies.
func (s *Store) AveragePotencyPrice(ingredient *domain.Ingredient) float64 {
	return s.avgPotencyPrice[ingredient.Name]
}

// AccessibilityFactor returns the ingredient's precomputed accessibility score.
func (s *Store) AccessibilityFactor(ingredient *domain.Ingredient) float64 {
	return s.accessibility[ingredient.Name]
}

// MedianAccessibility returns the median accessibility factor over all
// ingredients, used by reports as a baseline.
func (s *Store) MedianAccessibility() float64 {
	factors := make([]float64, 0, len(s.ingredients))
	for _, ingredient := range s.ingredients {
		factors = append(factors, s.accessibility[ingredient.Name])
	}
	return utils.Median(factors)
}

// MedianIngredientAccessibility returns the median accessibility factor over
// the ingredients exhibiting the effect, a measure of how hard the effect is
// to get into a bottle at all.
func (s *Store) MedianIngredientAccessibility(effect *domain.Effect) float64 {
	traits := s.traitsByEffect[effect.Name]
	factors := make([]float64, 0, len(traits))
	for _, trait := range traits {
		factors = append(factors, s.accessibility[trait.Ingredient.Name])
	}
	return utils.Median(factors)
}

// MedianMagnitude returns the median magnitude across the effect's traits.
// An effect with no traits yields 0 and a warning rather than an error, since
// reports still want a row for it.
func (s *Store) MedianMagnitude(effect *domain.Effect) float64 {
	return s.medianOver(effect, func(t *domain.Trait) float64 { return t.Potency.Magnitude })
}

// MedianDuration returns the median duration across the effect's traits.
func (s *Store) MedianDuration(effect *domain.Effect) float64 {
	return s.medianOver(effect, func(t *domain.Trait) float64 { return float64(t.Potency.Duration) })
}

// MedianPrice returns the median price across the effect's traits.
func (s *Store) MedianPrice(effect *domain.Effect) float64 {
	return s.medianOver(effect, func(t *domain.Trait) float64 { return t.Potency.Price })
}

func (s *Store) medianOver(effect *domain.Effect, pick func(*domain.Trait) float64) float64 {
	traits := s.traitsByEffect[effect.Name]
	if len(traits) == 0 {
		slog.Warn("effect has no traits", "effect", effect.Name)
		return 0
	}
	values := make([]float64, 0, len(traits))
	for _, trait := range traits {
		values = append(values, pick(trait))
	}
	return utils.Median(values)
}
