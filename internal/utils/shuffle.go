package utils

import "math/rand/v2"

// Rand is the randomness the seeding code needs. *rand.Rand from math/rand/v2 satisfies it,
// tests inject one built on a fixed PCG seed.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// GlobalRand draws from the process-wide source
var GlobalRand Rand = globalRand{}

// Shuffle returns a shuffled copy (Fisher-Yates), the input is left untouched
func Shuffle[T any](rng Rand, items []T) []T {
	if rng == nil {
		rng = GlobalRand
	}
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
