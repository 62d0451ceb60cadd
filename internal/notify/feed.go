// Package notify turns game events into lines for the terminal UI.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/eliksir/internal/domain"
	"github.com/hammamikhairi/eliksir/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*Feed)(nil)

// Line is one message waiting to be printed.
type Line struct {
	Kind   domain.EventKind
	Text   string
	Urgent bool
	At     time.Time
}

// DefaultCapacity bounds how many undrained lines a feed keeps.
const DefaultCapacity = 64

// Feed buffers event lines until the UI drains them. The game loop calls
// Notify from inside the UI's update, which must not print directly, so the
// lines are handed back on the next frame instead.
type Feed struct {
	log      *logger.Logger
	capacity int
	clock    func() time.Time

	mu      sync.Mutex
	pending []Line
	last    Line
	dropped int
}

// Option configures the feed.
type Option func(*Feed)

// WithCapacity bounds the number of buffered lines. Older lines are dropped
// first.
func WithCapacity(n int) Option {
	return func(f *Feed) {
		if n > 0 {
			f.capacity = n
		}
	}
}

// WithClock sets the time source used to stamp lines.
func WithClock(clock func() time.Time) Option {
	return func(f *Feed) {
		f.clock = clock
	}
}

// NewFeed creates an empty feed.
func NewFeed(log *logger.Logger, opts ...Option) *Feed {
	f := &Feed{
		log:      log,
		capacity: DefaultCapacity,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Notify queues the event's message. Events without a message are logged
// but produce no line.
func (f *Feed) Notify(_ context.Context, ev domain.Event) error {
	if ev.Kind.Urgent() {
		f.log.Info("notify-urgent: [%s] %s", ev.Kind, ev.Message)
	} else {
		f.log.Debug("notify: [%s] %s", ev.Kind, ev.Message)
	}
	if ev.Message == "" {
		return nil
	}

	line := Line{
		Kind:   ev.Kind,
		Text:   ev.Message,
		Urgent: ev.Kind.Urgent(),
		At:     f.clock(),
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.pending) >= f.capacity {
		f.pending = f.pending[1:]
		f.dropped++
	}
	f.pending = append(f.pending, line)
	f.last = line
	return nil
}

// Drain returns and clears the buffered lines, oldest first.
func (f *Feed) Drain() []Line {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.pending) == 0 {
		return nil
	}
	out := f.pending
	f.pending = nil
	if f.dropped > 0 {
		f.log.Warn("feed dropped %d lines before drain", f.dropped)
		f.dropped = 0
	}
	return out
}

// Last returns the most recent line, drained or not.
func (f *Feed) Last() (Line, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last, f.last.Text != ""
}
