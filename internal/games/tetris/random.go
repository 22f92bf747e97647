package tetris

import "math/rand"

// Randomizer supplies the random choices the game makes: which shape and
// which color a new piece gets. Tests inject scripted sequences.
type Randomizer interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// NewRandomizer returns a math/rand source seeded with seed.
func NewRandomizer(seed int64) Randomizer {
	return rand.New(rand.NewSource(seed))
}
