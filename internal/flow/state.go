package flow

// State is the screen currently shown. Exactly one is active.
type State int

const (
	StateStart State = iota
	StateDifficulty
	StatePlaying
	StateEndSuccess
	// StateEndFailure has a screen and a way out but nothing leads in:
	// a wrong tap always loops back into replay.
	StateEndFailure

	stateCount
)

// String returns a human-readable state.
func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateDifficulty:
		return "difficulty"
	case StatePlaying:
		return "playing"
	case StateEndSuccess:
		return "end_success"
	case StateEndFailure:
		return "end_failure"
	default:
		return "unknown"
	}
}
