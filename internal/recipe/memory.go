// Package recipe provides the built-in recipe pools.
package recipe

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"sync"

	"github.com/hammamikhairi/eliksir/internal/domain"
	"github.com/hammamikhairi/eliksir/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeSource = (*MemorySource)(nil)

// MemorySource holds the fixed recipe pools in memory. Callers always
// receive copies, so the pools cannot be edited from outside.
type MemorySource struct {
	mu    sync.RWMutex
	pools map[domain.Difficulty][]*domain.Recipe
	log   *logger.Logger
}

// NewMemorySource creates a recipe source preloaded with the easy and
// hard pools.
func NewMemorySource(log *logger.Logger) *MemorySource {
	src := &MemorySource{
		pools: make(map[domain.Difficulty][]*domain.Recipe),
		log:   log,
	}
	src.seed()
	return src
}

// Pick draws a recipe from the difficulty's pool uniformly at random.
// A nil rng uses the package-level source.
func (s *MemorySource) Pick(ctx context.Context, d domain.Difficulty, rng *rand.Rand) (*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pool, ok := s.pools[d]
	if !ok {
		return nil, fmt.Errorf("pool %s: %w", d, domain.ErrUnknownDifficulty)
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("pool %s: %w", d, domain.ErrEmptyPool)
	}

	var i int
	if rng != nil {
		i = rng.Intn(len(pool))
	} else {
		i = rand.Intn(len(pool))
	}
	r := pool[i]
	s.log.Debug("picked recipe %q from %s pool (%d/%d)", r.Name, d, i+1, len(pool))
	return clone(r), nil
}

func clone(r *domain.Recipe) *domain.Recipe {
	c := *r
	c.Steps = slices.Clone(r.Steps)
	return &c
}

// seed populates both pools.
func (s *MemorySource) seed() {
	for _, r := range append(easyPool(), hardPool()...) {
		s.pools[r.Difficulty] = append(s.pools[r.Difficulty], r)
	}
	s.log.Debug("seeded %d easy and %d hard recipes",
		len(s.pools[domain.DifficultyEasy]), len(s.pools[domain.DifficultyHard]))
}
