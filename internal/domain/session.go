package domain

import "time"

// Session is one round on the playing screen. It is created on entering
// the playing state and discarded on returning to difficulty selection.
type Session struct {
	ID         string
	Difficulty Difficulty
	Recipe     *Recipe

	Mode           Mode
	PlaybackIndex  int       // in [0, L]; L means playback finished
	PhaseStartedAt time.Time // start of the current playback step
	ErrorStartedAt time.Time // valid while Mode == ModeShowingError
	PlayerProgress []string  // taps accepted so far, len <= L
	Mistakes       int
	Outcome        Outcome
	StartedAt      time.Time
	UpdatedAt      time.Time
}

// Mode is the sub-state of a session.
type Mode int

const (
	// ModeIdle means no recipe is being taught or played.
	ModeIdle Mode = iota
	// ModePlayback highlights the recipe steps one by one.
	ModePlayback
	// ModeAwaitingInput accepts taps and validates them.
	ModeAwaitingInput
	// ModeShowingError is the cooldown after a wrong tap.
	ModeShowingError
	// ModeComplete means the recipe was reproduced.
	ModeComplete
)

// String returns a human-readable mode.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModePlayback:
		return "playback"
	case ModeAwaitingInput:
		return "awaiting_input"
	case ModeShowingError:
		return "showing_error"
	case ModeComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of a session.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeSuccess
	OutcomeFailure
)

// String returns a human-readable outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// TapResult reports what a submitted tap did to the session.
type TapResult int

const (
	// TapIgnored means the session was not accepting input.
	TapIgnored TapResult = iota
	// TapAccepted means the tap matched and more steps remain.
	TapAccepted
	// TapMismatch means the tap was wrong; progress was cleared.
	TapMismatch
	// TapComplete means the tap finished the recipe.
	TapComplete
)

// String returns a human-readable tap result.
func (t TapResult) String() string {
	switch t {
	case TapIgnored:
		return "ignored"
	case TapAccepted:
		return "accepted"
	case TapMismatch:
		return "mismatch"
	case TapComplete:
		return "complete"
	default:
		return "unknown"
	}
}
