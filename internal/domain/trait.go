package domain

// Trait records that an ingredient exhibits a potency, at a given in-game
// ordering position. An ingredient has at most one trait per effect; several
// ingredients may share the same potency.
type Trait struct {
	Ingredient *Ingredient
	Potency    *Potency
	Order      int
}

// Beats reports whether this trait wins over other when both compete for the
// same effect in a potion. Higher potency price wins; equal prices fall back
// to ingredient name ascending so the winner is deterministic.
func (t *Trait) Beats(other *Trait) bool {
	if t.Potency.Price != other.Potency.Price {
		return t.Potency.Price > other.Potency.Price
	}
	return t.Ingredient.Name < other.Ingredient.Name
}
