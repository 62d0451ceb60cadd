// Package dwell turns a hovering pointer into clicks.
//
// A region "activates" once the pointer has stayed inside it for the hover
// time. Firing pushes the region's start time into the future (the re-arm
// delay), so the same continuous hover cannot fire again until the pointer
// leaves and comes back or the delay plus another hover time passes.
package dwell

import (
	"time"

	"github.com/hammamikhairi/eliksir/internal/domain"
	"github.com/hammamikhairi/eliksir/internal/logger"
)

const (
	// DefaultHoverTime is how long the pointer must rest on a region.
	DefaultHoverTime = 500 * time.Millisecond
	// DefaultRearmDelay is how far into the future a fired entry restarts.
	DefaultRearmDelay = time.Second
)

// Option configures the detector.
type Option func(*Detector)

// WithHoverTime sets the dwell threshold.
func WithHoverTime(d time.Duration) Option {
	return func(det *Detector) {
		if d > 0 {
			det.hoverTime = d
		}
	}
}

// WithRearmDelay sets how long a fired region stays quiet.
func WithRearmDelay(d time.Duration) Option {
	return func(det *Detector) {
		det.rearmDelay = d
	}
}

// Detector tracks per-region dwell time. It is owned by the game loop and
// is not safe for concurrent use.
type Detector struct {
	pointer    domain.PointerSource
	log        *logger.Logger
	hoverTime  time.Duration
	rearmDelay time.Duration

	// startedAt has an entry iff the pointer is continuously inside the
	// region, as of the last poll.
	startedAt map[string]time.Time
	now       time.Time
}

// New creates a detector reading the given pointer source.
func New(pointer domain.PointerSource, log *logger.Logger, opts ...Option) *Detector {
	d := &Detector{
		pointer:    pointer,
		log:        log,
		hoverTime:  DefaultHoverTime,
		rearmDelay: DefaultRearmDelay,
		startedAt:  make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// HoverTime returns the configured dwell threshold.
func (d *Detector) HoverTime() time.Duration { return d.hoverTime }

// Poll updates the dwell entry for one region and reports whether it fired
// on this call. Call it once per region per tick.
func (d *Detector) Poll(id string, rect domain.Rect, now time.Time) bool {
	d.now = now

	p := d.pointer.Current()
	if !p.Valid || !rect.Contains(p.Point) {
		delete(d.startedAt, id)
		return false
	}

	started, ok := d.startedAt[id]
	if !ok {
		d.startedAt[id] = now
		return false
	}

	if now.Sub(started) < d.hoverTime {
		return false
	}

	d.startedAt[id] = now.Add(d.rearmDelay)
	d.log.Debug("region %s activated at (%d,%d)", id, p.X, p.Y)
	return true
}

// PollRegion is Poll for a region record.
func (d *Detector) PollRegion(r domain.Region, now time.Time) bool {
	return d.Poll(r.ID, r.Rect, now)
}

// Progress returns the dwell fraction in [0, 1] for a region as of the
// last poll. It returns 0 when the pointer is not on the region.
func (d *Detector) Progress(id string) float64 {
	started, ok := d.startedAt[id]
	if !ok {
		return 0
	}
	p := float64(d.now.Sub(started)) / float64(d.hoverTime)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

// IsHovering reports whether the pointer was inside the region at the
// last poll.
func (d *Detector) IsHovering(id string) bool {
	_, ok := d.startedAt[id]
	return ok
}

// Hovered returns the IDs currently holding a dwell entry.
func (d *Detector) Hovered() []string {
	out := make([]string, 0, len(d.startedAt))
	for id := range d.startedAt {
		out = append(out, id)
	}
	return out
}

// Forget drops the entries for the given regions, e.g. when they stop
// being polled.
func (d *Detector) Forget(ids ...string) {
	for _, id := range ids {
		delete(d.startedAt, id)
	}
}

// Reset drops every entry. Called on screen changes so regions of an
// inactive screen hold no state.
func (d *Detector) Reset() {
	clear(d.startedAt)
}
