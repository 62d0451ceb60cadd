package domain

// EventKind classifies something the player should be told about.
type EventKind int

const (
	EventUnknown EventKind = iota

	EventActivated      // a button region fired
	EventSessionStarted // a recipe was drawn and playback begins
	EventInputOpen      // playback finished, taps are accepted
	EventTapAccepted    // a correct ingredient was tapped
	EventMismatch       // a wrong ingredient was tapped
	EventReplay         // error cooldown over, playback restarts
	EventSuccess        // the recipe was completed
)

// String returns a human-readable event kind.
func (k EventKind) String() string {
	switch k {
	case EventActivated:
		return "activated"
	case EventSessionStarted:
		return "session_started"
	case EventInputOpen:
		return "input_open"
	case EventTapAccepted:
		return "tap_accepted"
	case EventMismatch:
		return "mismatch"
	case EventReplay:
		return "replay"
	case EventSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Urgent reports whether the event should stand out from regular chatter.
func (k EventKind) Urgent() bool {
	return k == EventMismatch
}

// Event is a notification emitted by the game loop.
type Event struct {
	Kind     EventKind
	RegionID string // region or ingredient involved, if any
	Message  string
}
