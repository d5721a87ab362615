package engine

import "math/rand/v2"

// Picker selects one of n equally-likely candidates. It exists so tests can
// substitute a deterministic implementation; production uses the package
// default backed by math/rand/v2, which needs no seeding.
type Picker interface {
	// Pick returns an index in [0, n). n must be positive.
	Pick(n int) int
}

// RandomPicker is a uniform Picker backed by math/rand/v2.
type RandomPicker struct{}

// Pick returns a uniformly random index in [0, n).
func (RandomPicker) Pick(n int) int {
	return rand.IntN(n)
}
