package domain

import (
	"strconv"
	"strings"
)

// Availability is the coarse sourcing grade of a whole potion, derived from
// its least accessible ingredient.
type Availability string

const (
	AvailabilityPlantable Availability = "plantable"
	AvailabilityCommon    Availability = "common"
	AvailabilityUncommon  Availability = "uncommon"
	AvailabilityRare      Availability = "rare"
	AvailabilityScarce    Availability = "scarce"
)

// Potion is an unordered set of 2 or 3 distinct ingredients together with
// the potencies that survive mixing. Instances are built once by the engine
// and never mutated:
//   - Ingredients are sorted by name,
//   - Potencies are in canonical order (effect name ascending, price as a
//     stabiliser), so two potions with equal potency sets have equal
//     signatures regardless of construction order.
type Potion struct {
	Ingredients   []*Ingredient
	Potencies     []*Potency
	Price         float64 // sum of potency prices
	Accessibility float64 // sum of ingredient accessibility factors
}

// Type returns the shared effect type of the potion's potencies. Valid
// potions are pure, so inspecting the first potency suffices.
func (p *Potion) Type() EffectType {
	return p.Potencies[0].Effect.Type
}

// Effects returns the potion's effects in canonical potency order.
func (p *Potion) Effects() []*Effect {
	effects := make([]*Effect, len(p.Potencies))
	for i, potency := range p.Potencies {
		effects[i] = potency.Effect
	}
	return effects
}

// PotencySignature is a stable textual key for the potion's potency set,
// used for set-equality checks and for grouping potions in reports.
func (p *Potion) PotencySignature() string {
	return PotencySignature(p.Potencies)
}

// EffectSignature is a stable textual key for the potion's effect set.
func (p *Potion) EffectSignature() string {
	names := make([]string, len(p.Potencies))
	for i, potency := range p.Potencies {
		names[i] = potency.Effect.Name
	}
	return strings.Join(names, ";")
}

// Availability grades the potion by its hardest-to-source ingredient.
func (p *Potion) Availability() Availability {
	all := func(pred func(*Ingredient) bool) bool {
		for _, ing := range p.Ingredients {
			if !pred(ing) {
				return false
			}
		}
		return true
	}
	switch {
	case all(func(i *Ingredient) bool { return i.Plantable }):
		return AvailabilityPlantable
	case all(func(i *Ingredient) bool { return i.VendorRarity == RarityCommon }):
		return AvailabilityCommon
	case all(func(i *Ingredient) bool {
		return i.VendorRarity == RarityCommon || i.VendorRarity == RarityUncommon
	}):
		return AvailabilityUncommon
	case all(func(i *Ingredient) bool {
		return i.VendorRarity == RarityCommon || i.VendorRarity == RarityUncommon || i.VendorRarity == RarityRare
	}):
		return AvailabilityRare
	default:
		return AvailabilityScarce
	}
}

// PotencySignature builds the canonical key for a potency list that is
// already in canonical order. An empty list yields the empty string, which
// the engine treats as "no potion".
func PotencySignature(potencies []*Potency) string {
	if len(potencies) == 0 {
		return ""
	}
	var b strings.Builder
	for i, potency := range potencies {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(potency.Effect.Name)
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(potency.Magnitude, 'g', -1, 64))
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(potency.Duration))
	}
	return b.String()
}
