// Package engine implements the recipe sequence state machine: it plays the
// recipe as a timed highlight sequence, then validates the player's taps.
//
// The engine holds at most one session and is driven entirely by the game
// loop through Tick and SubmitTap; every call takes the loop's clock so the
// engine itself never reads wall time.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/hammamikhairi/eliksir/internal/domain"
	"github.com/hammamikhairi/eliksir/internal/logger"
)

const (
	// DefaultGlowDuration is how long each step is highlighted.
	DefaultGlowDuration = time.Second
	// DefaultGlowPause is the dark gap after each highlight.
	DefaultGlowPause = 300 * time.Millisecond
	// DefaultErrorCooldown is how long the mismatch message stays up
	// before the sequence is replayed.
	DefaultErrorCooldown = 2 * time.Second
)

// Option configures the engine.
type Option func(*Engine)

// WithGlow sets the highlight duration and the pause after it.
func WithGlow(duration, pause time.Duration) Option {
	return func(e *Engine) {
		e.glowDuration = duration
		e.glowPause = pause
	}
}

// WithErrorCooldown sets how long a mismatch is shown.
func WithErrorCooldown(d time.Duration) Option {
	return func(e *Engine) {
		e.errorCooldown = d
	}
}

// WithRand sets the source used to draw recipes.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// Engine plays and validates one recipe session at a time. It is owned by
// the game loop and is not safe for concurrent use.
type Engine struct {
	recipes       domain.RecipeSource
	log           *logger.Logger
	rng           *rand.Rand
	glowDuration  time.Duration
	glowPause     time.Duration
	errorCooldown time.Duration

	session *domain.Session
	now     time.Time // clock of the last Tick/StartSession/SubmitTap
}

// New creates a sequence engine drawing recipes from the given source.
func New(recipes domain.RecipeSource, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		recipes:       recipes,
		log:           log,
		glowDuration:  DefaultGlowDuration,
		glowPause:     DefaultGlowPause,
		errorCooldown: DefaultErrorCooldown,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartSession draws a recipe for the difficulty and starts playback.
// Any previous session is discarded.
func (e *Engine) StartSession(ctx context.Context, d domain.Difficulty, now time.Time) (*domain.Session, error) {
	recipe, err := e.recipes.Pick(ctx, d, e.rng)
	if err != nil {
		return nil, fmt.Errorf("picking recipe: %w", err)
	}
	if recipe.Len() == 0 {
		return nil, fmt.Errorf("recipe %s: %w", recipe.ID, domain.ErrEmptyPool)
	}

	e.now = now
	e.session = &domain.Session{
		ID:             generateID(now),
		Difficulty:     d,
		Recipe:         recipe,
		Mode:           domain.ModePlayback,
		PlaybackIndex:  0,
		PhaseStartedAt: now,
		PlayerProgress: make([]string, 0, recipe.Len()),
		Outcome:        domain.OutcomePending,
		StartedAt:      now,
		UpdatedAt:      now,
	}

	e.log.Info("started session %s: %q (%s, %d steps)", e.session.ID, recipe.Name, d, recipe.Len())
	return e.session, nil
}

// Session returns the active session, or nil.
func (e *Engine) Session() *domain.Session { return e.session }

// Mode returns the active session's mode, or ModeIdle without one.
func (e *Engine) Mode() domain.Mode {
	if e.session == nil {
		return domain.ModeIdle
	}
	return e.session.Mode
}

// Outcome returns the active session's outcome.
func (e *Engine) Outcome() domain.Outcome {
	if e.session == nil {
		return domain.OutcomePending
	}
	return e.session.Outcome
}

// End discards the active session.
func (e *Engine) End() {
	if e.session != nil {
		e.log.Debug("session %s discarded (%s)", e.session.ID, e.session.Outcome)
	}
	e.session = nil
}

// Tick advances time-driven sub-states: playback steps and the error
// cooldown. It reports whether the mode changed.
func (e *Engine) Tick(now time.Time) (changed bool) {
	e.now = now
	if e.session == nil {
		return false
	}
	before := e.session.Mode
	switch before {
	case domain.ModePlayback:
		e.tickPlayback(now)
	case domain.ModeShowingError:
		e.tickError(now)
	}
	return e.session.Mode != before
}

// tickPlayback moves to the next step once the current step's highlight
// and pause are over. It advances at most one step per call.
func (e *Engine) tickPlayback(now time.Time) {
	s := e.session
	elapsed := now.Sub(s.PhaseStartedAt)
	if elapsed < e.glowDuration+e.glowPause {
		return
	}

	s.PlaybackIndex++
	s.UpdatedAt = now
	if s.PlaybackIndex >= s.Recipe.Len() {
		s.PlaybackIndex = s.Recipe.Len()
		s.Mode = domain.ModeAwaitingInput
		e.log.Debug("session %s: playback done, awaiting input", s.ID)
		return
	}
	s.PhaseStartedAt = now
	e.log.Debug("session %s: playback step %d/%d (%s)", s.ID, s.PlaybackIndex+1, s.Recipe.Len(), s.Recipe.Steps[s.PlaybackIndex])
}

// tickError restarts the full playback once the cooldown has passed.
// This is the only way out of the error state.
func (e *Engine) tickError(now time.Time) {
	s := e.session
	if now.Sub(s.ErrorStartedAt) < e.errorCooldown {
		return
	}
	s.Mode = domain.ModePlayback
	s.PlaybackIndex = 0
	s.PhaseStartedAt = now
	s.UpdatedAt = now
	e.log.Debug("session %s: replaying sequence", s.ID)
}

// SubmitTap validates one ingredient tap. Taps outside AwaitingInput are
// ignored; the player cannot cut playback or the cooldown short.
func (e *Engine) SubmitTap(ingredient string, now time.Time) (domain.TapResult, error) {
	e.now = now
	s := e.session
	if s == nil {
		return domain.TapIgnored, domain.ErrNoSession
	}
	if s.Mode != domain.ModeAwaitingInput {
		e.log.Debug("session %s: tap %s ignored during %s", s.ID, ingredient, s.Mode)
		return domain.TapIgnored, nil
	}

	s.PlayerProgress = append(s.PlayerProgress, ingredient)
	s.UpdatedAt = now
	i := len(s.PlayerProgress) - 1

	if i < s.Recipe.Len() && ingredient != s.Recipe.Steps[i] {
		s.PlayerProgress = s.PlayerProgress[:0]
		s.Mode = domain.ModeShowingError
		s.ErrorStartedAt = now
		s.Mistakes++
		e.log.Info("session %s: mismatch at step %d (want %s, got %s)", s.ID, i+1, s.Recipe.Steps[i], ingredient)
		return domain.TapMismatch, nil
	}

	if len(s.PlayerProgress) == s.Recipe.Len() {
		s.Mode = domain.ModeComplete
		s.Outcome = domain.OutcomeSuccess
		e.log.Info("session %s: recipe %q complete (%d mistakes)", s.ID, s.Recipe.Name, s.Mistakes)
		return domain.TapComplete, nil
	}

	e.log.Debug("session %s: step %d/%d ok", s.ID, len(s.PlayerProgress), s.Recipe.Len())
	return domain.TapAccepted, nil
}

// ActiveStep returns the ingredient highlighted right now, if any. A step
// glows only during the first GlowDuration of its phase.
func (e *Engine) ActiveStep() (string, bool) {
	s := e.session
	if s == nil || s.Mode != domain.ModePlayback || s.PlaybackIndex >= s.Recipe.Len() {
		return "", false
	}
	if e.now.Sub(s.PhaseStartedAt) > e.glowDuration {
		return "", false
	}
	return s.Recipe.Steps[s.PlaybackIndex], true
}

// FadeIntensity returns the highlight strength of the active step, fading
// linearly from 1.0 to 0.5 across the glow. It is 0 when nothing glows.
func (e *Engine) FadeIntensity() float64 {
	if _, ok := e.ActiveStep(); !ok {
		return 0
	}
	elapsed := e.now.Sub(e.session.PhaseStartedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	return 1.0 - float64(elapsed)/float64(e.glowDuration)*0.5
}

// ErrorActive reports whether the mismatch cooldown is showing.
func (e *Engine) ErrorActive() bool {
	return e.session != nil && e.session.Mode == domain.ModeShowingError
}

// AcceptingInput reports whether taps are being validated.
func (e *Engine) AcceptingInput() bool {
	return e.session != nil && e.session.Mode == domain.ModeAwaitingInput
}
