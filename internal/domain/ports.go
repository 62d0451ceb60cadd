package domain

import (
	"context"
	"math/rand"
)

// RecipeSource draws recipes from the fixed pools.
type RecipeSource interface {
	// Pick draws one recipe of the given difficulty uniformly at random.
	Pick(ctx context.Context, d Difficulty, rng *rand.Rand) (*Recipe, error)
}

// PointerSource yields the latest known pointer position. Implementations
// must never block.
type PointerSource interface {
	Current() PointerSample
}

// Notifier delivers game events to the player. Implementations can print
// them, chime, or both.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}
