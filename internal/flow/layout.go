package flow

import "github.com/hammamikhairi/eliksir/internal/domain"

// Button region IDs.
const (
	RegionStart            = "start"
	RegionEasy             = "easy"
	RegionHard             = "hard"
	RegionPlayAgainSuccess = "playAgainSuccess"
	RegionPlayAgainFailure = "playAgainFailure"
)

// Layout holds the interactive regions of each screen. Only the active
// screen's regions are polled.
type Layout [stateCount][]domain.Region

// Regions returns the regions of one screen.
func (l *Layout) Regions(s State) []domain.Region {
	if s < 0 || s >= stateCount {
		return nil
	}
	return l[s]
}

// Find returns the region with the given ID on a screen.
func (l *Layout) Find(s State, id string) (domain.Region, bool) {
	for _, r := range l.Regions(s) {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Region{}, false
}

// DefaultLayout is the 1024×768 arrangement: centred buttons and six
// 120×120 ingredient slots along an arc.
func DefaultLayout() Layout {
	playAgain := domain.Rect{X: 400, Y: 500, W: 200, H: 80}

	var l Layout
	l[StateStart] = []domain.Region{
		{ID: RegionStart, Label: "START", Rect: domain.Rect{X: 400, Y: 500, W: 200, H: 80}},
	}
	l[StateDifficulty] = []domain.Region{
		{ID: RegionEasy, Label: "ŁATWY", Rect: domain.Rect{X: 300, Y: 400, W: 150, H: 60}},
		{ID: RegionHard, Label: "TRUDNY", Rect: domain.Rect{X: 500, Y: 400, W: 150, H: 60}},
	}
	l[StatePlaying] = []domain.Region{
		ingredient(domain.IngredientGlowingRing, 100, 550),
		ingredient(domain.IngredientDragonClaw, 220, 370),
		ingredient(domain.IngredientPhoenixWing, 400, 200),
		ingredient(domain.IngredientElixirDrop, 680, 230),
		ingredient(domain.IngredientCentralStar, 860, 320),
		ingredient(domain.IngredientSirenScale, 940, 550),
	}
	l[StateEndSuccess] = []domain.Region{
		{ID: RegionPlayAgainSuccess, Label: "ZAGRAJ PONOWNIE", Rect: playAgain},
	}
	l[StateEndFailure] = []domain.Region{
		{ID: RegionPlayAgainFailure, Label: "ZAGRAJ PONOWNIE", Rect: playAgain},
	}
	return l
}

func ingredient(id string, x, y int) domain.Region {
	return domain.Region{
		ID:    id,
		Label: domain.IngredientLabel(id),
		Rect:  domain.Rect{X: x, Y: y, W: 120, H: 120},
	}
}
