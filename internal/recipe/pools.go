package recipe

import "github.com/hammamikhairi/eliksir/internal/domain"

const (
	ring  = domain.IngredientGlowingRing
	claw  = domain.IngredientDragonClaw
	wing  = domain.IngredientPhoenixWing
	drop  = domain.IngredientElixirDrop
	star  = domain.IngredientCentralStar
	scale = domain.IngredientSirenScale
)

// easyPool holds five-step recipes where every ingredient appears once.
func easyPool() []*domain.Recipe {
	return []*domain.Recipe{
		{
			ID:         "eliksir-smoczej-luski",
			Name:       "Eliksir Smoczej Łuski",
			Difficulty: domain.DifficultyEasy,
			Steps:      []string{claw, wing, drop, star, scale},
		},
		{
			ID:         "mikstura-gwiezdnej-iskry",
			Name:       "Mikstura Gwiezdnej Iskry",
			Difficulty: domain.DifficultyEasy,
			Steps:      []string{ring, drop, wing, star, scale},
		},
		{
			ID:         "wywar-feniksa",
			Name:       "Wywar Feniksa",
			Difficulty: domain.DifficultyEasy,
			Steps:      []string{wing, claw, ring, drop, star},
		},
	}
}

// hardPool holds seven-step recipes; ingredients may repeat.
func hardPool() []*domain.Recipe {
	return []*domain.Recipe{
		{
			ID:         "napar-syreniej-piesni",
			Name:       "Napar Syreniej Pieśni",
			Difficulty: domain.DifficultyHard,
			Steps:      []string{scale, drop, ring, claw, scale, star, wing},
		},
		{
			ID:         "esencja-zacmienia",
			Name:       "Esencja Zaćmienia",
			Difficulty: domain.DifficultyHard,
			Steps:      []string{star, claw, drop, wing, ring, drop, scale},
		},
		{
			ID:         "tonik-smoczego-serca",
			Name:       "Tonik Smoczego Serca",
			Difficulty: domain.DifficultyHard,
			Steps:      []string{claw, ring, star, scale, wing, claw, drop},
		},
	}
}
