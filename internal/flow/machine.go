// Package flow is the top-level screen state machine. Each tick it polls the
// regions of the active screen through the dwell detector, moves between
// screens on activation, and drives the sequence engine while playing.
package flow

import (
	"context"
	"time"

	"github.com/hammamikhairi/eliksir/internal/domain"
	"github.com/hammamikhairi/eliksir/internal/dwell"
	"github.com/hammamikhairi/eliksir/internal/engine"
	"github.com/hammamikhairi/eliksir/internal/logger"
)

// Option configures the machine.
type Option func(*Machine)

// WithLayout replaces the default region layout.
func WithLayout(l Layout) Option {
	return func(m *Machine) {
		m.layout = l
	}
}

// Machine owns the active screen. Like the detector and engine it drives,
// it belongs to the game loop and is not safe for concurrent use.
type Machine struct {
	det      *dwell.Detector
	eng      *engine.Engine
	notifier domain.Notifier
	log      *logger.Logger
	layout   Layout

	state State
}

// New creates a machine on the start screen.
func New(det *dwell.Detector, eng *engine.Engine, notifier domain.Notifier, log *logger.Logger, opts ...Option) *Machine {
	m := &Machine{
		det:      det,
		eng:      eng,
		notifier: notifier,
		log:      log,
		layout:   DefaultLayout(),
		state:    StateStart,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Tick advances the game by one frame.
func (m *Machine) Tick(ctx context.Context, now time.Time) {
	switch m.state {
	case StateStart:
		if m.poll(RegionStart, now) {
			m.activated(RegionStart)
			m.enter(StateDifficulty)
			m.notify(ctx, domain.Event{Kind: domain.EventActivated, RegionID: RegionStart, Message: lineStart()})
		}

	case StateDifficulty:
		for _, r := range m.layout.Regions(StateDifficulty) {
			if !m.det.PollRegion(r, now) {
				continue
			}
			m.activated(r.ID)
			switch r.ID {
			case RegionEasy:
				m.startPlaying(ctx, domain.DifficultyEasy, now)
			case RegionHard:
				m.startPlaying(ctx, domain.DifficultyHard, now)
			}
			return
		}

	case StatePlaying:
		m.tickPlaying(ctx, now)

	case StateEndSuccess:
		if m.poll(RegionPlayAgainSuccess, now) {
			m.activated(RegionPlayAgainSuccess)
			m.enter(StateDifficulty)
			m.notify(ctx, domain.Event{Kind: domain.EventActivated, RegionID: RegionPlayAgainSuccess, Message: linePlayAgain()})
		}

	case StateEndFailure:
		if m.poll(RegionPlayAgainFailure, now) {
			m.activated(RegionPlayAgainFailure)
			m.enter(StateDifficulty)
			m.notify(ctx, domain.Event{Kind: domain.EventActivated, RegionID: RegionPlayAgainFailure, Message: linePlayAgain()})
		}
	}
}

func (m *Machine) tickPlaying(ctx context.Context, now time.Time) {
	if m.eng.Tick(now) {
		switch m.eng.Mode() {
		case domain.ModeAwaitingInput:
			m.notify(ctx, domain.Event{Kind: domain.EventInputOpen, Message: lineInputOpen()})
		case domain.ModePlayback:
			m.notify(ctx, domain.Event{Kind: domain.EventReplay, Message: lineReplay()})
		}
	}

	ingredients := m.layout.Regions(StatePlaying)
	if !m.eng.AcceptingInput() {
		// Hovering during playback or the error message must not carry
		// over into the input phase.
		for _, r := range ingredients {
			m.det.Forget(r.ID)
		}
		return
	}

	for _, r := range ingredients {
		if !m.det.PollRegion(r, now) {
			continue
		}
		res, err := m.eng.SubmitTap(r.ID, now)
		if err != nil {
			m.log.Error("tap %s rejected: %v", r.ID, err)
			return
		}
		sess := m.eng.Session()
		switch res {
		case domain.TapAccepted:
			m.notify(ctx, domain.Event{
				Kind:     domain.EventTapAccepted,
				RegionID: r.ID,
				Message:  lineTapAccepted(r.Label, len(sess.PlayerProgress), sess.Recipe.Len()),
			})
		case domain.TapMismatch:
			m.det.Reset()
			m.notify(ctx, domain.Event{Kind: domain.EventMismatch, RegionID: r.ID, Message: ErrorLine})
			return
		case domain.TapComplete:
			m.log.Info("recipe %q completed (mistakes: %d)", sess.Recipe.Name, sess.Mistakes)
			m.enter(StateEndSuccess)
			m.notify(ctx, domain.Event{
				Kind:     domain.EventSuccess,
				RegionID: r.ID,
				Message:  lineSuccess(sess.Recipe.Name, sess.Mistakes),
			})
			return
		}
	}
}

func (m *Machine) startPlaying(ctx context.Context, d domain.Difficulty, now time.Time) {
	sess, err := m.eng.StartSession(ctx, d, now)
	if err != nil {
		m.log.Error("could not start %s session: %v", d, err)
		m.det.Reset()
		return
	}
	m.enter(StatePlaying)
	m.notify(ctx, domain.Event{
		Kind:    domain.EventSessionStarted,
		Message: lineSessionStarted(sess.Recipe.Name, sess.Recipe.Len()),
	})
}

// enter switches screens. Dwell state never crosses a screen boundary.
func (m *Machine) enter(s State) {
	if s == m.state {
		return
	}
	m.log.Info("screen %s -> %s", m.state, s)
	if s == StateDifficulty {
		m.eng.End()
	}
	m.det.Reset()
	m.state = s
}

func (m *Machine) poll(id string, now time.Time) bool {
	r, ok := m.layout.Find(m.state, id)
	if !ok {
		return false
	}
	return m.det.PollRegion(r, now)
}

func (m *Machine) activated(id string) {
	m.log.Debug("region %s activated on %s", id, m.state)
}

func (m *Machine) notify(ctx context.Context, ev domain.Event) {
	if m.notifier == nil {
		return
	}
	if err := m.notifier.Notify(ctx, ev); err != nil {
		m.log.Warn("notify %s: %v", ev.Kind, err)
	}
}

// ── Presentation queries ─────────────────────────────────────────

// State returns the active screen.
func (m *Machine) State() State { return m.state }

// Regions returns the interactive regions of the active screen.
func (m *Machine) Regions() []domain.Region { return m.layout.Regions(m.state) }

// Layout returns the full region table.
func (m *Machine) Layout() *Layout { return &m.layout }

// IsHovering reports whether the pointer is dwelling on a region.
func (m *Machine) IsHovering(id string) bool { return m.det.IsHovering(id) }

// Progress returns the dwell progress of a region in [0, 1].
func (m *Machine) Progress(id string) float64 { return m.det.Progress(id) }

// ActiveSequenceStep returns the ingredient highlighted by playback.
func (m *Machine) ActiveSequenceStep() (string, bool) {
	if m.state != StatePlaying {
		return "", false
	}
	return m.eng.ActiveStep()
}

// FadeIntensity returns the highlight brightness of the active step.
func (m *Machine) FadeIntensity() float64 {
	if m.state != StatePlaying {
		return 0
	}
	return m.eng.FadeIntensity()
}

// ErrorActive reports whether the mismatch message should be shown.
func (m *Machine) ErrorActive() bool {
	return m.state == StatePlaying && m.eng.ErrorActive()
}

// Session returns the current session, or nil outside the playing screen
// and its end screens.
func (m *Machine) Session() *domain.Session { return m.eng.Session() }
