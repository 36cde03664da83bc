package domain

// EffectType splits effects into the two mutually exclusive camps a pure
// potion must not mix.
type EffectType string

const (
	EffectBeneficial EffectType = "beneficial"
	EffectHarmful    EffectType = "harmful"
)

// Effect is a single alchemical effect from the reference data.
// Name is the unique key. BaseCost feeds the potency price formula.
type Effect struct {
	Name     string
	Type     EffectType
	BaseCost float64
}
