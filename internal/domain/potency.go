package domain

import "math"

// Potency is a canonical (effect, magnitude, duration) triple. Identity is
// structural: the dataset store guarantees that two traits recording the same
// triple reference the same *Potency, which is what makes potency-set
// comparisons between potions meaningful.
type Potency struct {
	Effect    *Effect
	Magnitude float64
	Duration  int
	Price     float64 // ValueFormula(Magnitude, Duration) * Effect.BaseCost, fixed at creation
}

// Less orders potencies by price, breaking ties on effect name so the order
// is total and stable across runs.
func (p *Potency) Less(other *Potency) bool {
	if p.Price != other.Price {
		return p.Price < other.Price
	}
	return p.Effect.Name < other.Effect.Name
}

// ValueFormula is the game's potion value curve. A zero magnitude or duration
// contributes a neutral factor of 1; the 1.1 exponent rewards combined
// magnitude and duration superlinearly, so it must not be approximated.
func ValueFormula(magnitude float64, duration int) float64 {
	magFactor := 1.0
	if magnitude != 0 {
		magFactor = magnitude
	}
	durFactor := 1.0
	if duration != 0 {
		durFactor = float64(duration) / 10
	}
	return math.Pow(magFactor*durFactor, 1.1)
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
