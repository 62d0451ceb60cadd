// Package domain defines the core types and interfaces for the elixir game.
// All other packages depend on domain; domain depends on nothing.
package domain

// Difficulty selects which recipe pool a session draws from.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyHard
)

// String returns the pool key used in logs and region IDs.
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyHard:
		return "hard"
	default:
		return "unknown"
	}
}

// Difficulties lists every tier in menu order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyHard}

// Ingredient identifiers. These double as region IDs on the playing screen.
const (
	IngredientGlowingRing = "swietlisty_krag"
	IngredientDragonClaw  = "pazur_smoka"
	IngredientPhoenixWing = "skrzydlo_feniksa"
	IngredientElixirDrop  = "kropla_eliksiru"
	IngredientCentralStar = "gwiazda_centralna"
	IngredientSirenScale  = "luska_syreny"
)

// Ingredients lists every ingredient in layout order.
var Ingredients = []string{
	IngredientGlowingRing,
	IngredientDragonClaw,
	IngredientPhoenixWing,
	IngredientElixirDrop,
	IngredientCentralStar,
	IngredientSirenScale,
}

// IngredientLabel returns a display name for an ingredient ID.
func IngredientLabel(id string) string {
	switch id {
	case IngredientGlowingRing:
		return "Świetlisty Krąg"
	case IngredientDragonClaw:
		return "Pazur Smoka"
	case IngredientPhoenixWing:
		return "Skrzydło Feniksa"
	case IngredientElixirDrop:
		return "Kropla Eliksiru"
	case IngredientCentralStar:
		return "Gwiazda Centralna"
	case IngredientSirenScale:
		return "Łuska Syreny"
	default:
		return id
	}
}

// Recipe is an ordered target sequence of ingredient IDs.
type Recipe struct {
	ID         string
	Name       string
	Difficulty Difficulty
	Steps      []string
}

// Len returns the number of steps (L).
func (r *Recipe) Len() int { return len(r.Steps) }
