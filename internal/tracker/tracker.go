// Package tracker runs the hand-tracking producer: a background loop that
// reads landmark frames from a camera and publishes the right index
// fingertip into a pointer slot.
package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hammamikhairi/eliksir/internal/domain"
	"github.com/hammamikhairi/eliksir/internal/logger"
)

const (
	// DefaultRate is the target publish rate in frames per second.
	DefaultRate = 30
	// DefaultMissLimit is how many failed reads in a row clear the pointer.
	DefaultMissLimit = 3
)

// Publisher receives the producer's samples. *pointer.Slot satisfies it.
type Publisher interface {
	Publish(domain.PointerSample)
	Clear()
}

// Option configures the tracker.
type Option func(*Tracker)

// WithRate sets the publish rate in frames per second.
func WithRate(fps int) Option {
	return func(t *Tracker) {
		if fps > 0 {
			t.interval = time.Second / time.Duration(fps)
		}
	}
}

// WithMissLimit sets how many consecutive read failures clear the pointer.
func WithMissLimit(n int) Option {
	return func(t *Tracker) {
		if n > 0 {
			t.missLimit = n
		}
	}
}

// Tracker owns the camera while running. It is the only writer of its
// publisher.
type Tracker struct {
	cam       Camera
	out       Publisher
	log       *logger.Logger
	interval  time.Duration
	missLimit int

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a tracker reading from cam and publishing into out.
func New(cam Camera, out Publisher, log *logger.Logger, opts ...Option) *Tracker {
	t := &Tracker{
		cam:       cam,
		out:       out,
		log:       log,
		interval:  time.Second / DefaultRate,
		missLimit: DefaultMissLimit,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start opens the camera and begins the producer loop. Non-blocking. The
// camera is closed by the loop once it observes Stop or ctx cancellation.
func (t *Tracker) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		t.log.Warn("tracker already running")
		return nil
	}

	if err := t.cam.Open(ctx); err != nil {
		t.out.Clear()
		return fmt.Errorf("opening camera: %w", err)
	}

	childCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.done = make(chan struct{})
	t.running = true

	go t.loop(childCtx, t.done)

	t.log.Info("tracker started (interval=%s, miss limit=%d)", t.interval, t.missLimit)
	return nil
}

// Stop signals the loop and waits until the camera has been released.
func (t *Tracker) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.cancel()
	t.running = false
	done := t.done
	t.mu.Unlock()

	<-done
	t.log.Info("tracker stopped")
}

// Running reports whether the producer loop is active.
func (t *Tracker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *Tracker) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer func() {
		// A cancelled parent ends the loop without Stop; allow a restart.
		t.mu.Lock()
		if t.done == done {
			t.running = false
		}
		t.mu.Unlock()
	}()
	defer func() {
		if err := t.cam.Close(); err != nil {
			t.log.Warn("closing camera: %v", err)
		}
		t.out.Clear()
		t.log.Debug("camera released")
	}()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	misses := 0
	tracked := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		frame, err := t.cam.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			misses++
			t.log.Debug("camera read failed (%d in a row): %v", misses, err)
			if misses == t.missLimit {
				t.out.Clear()
				tracked = false
			}
			continue
		}
		misses = 0

		sample := MapFrame(frame)
		if sample.Valid != tracked {
			if sample.Valid {
				t.log.Debug("right hand acquired")
			} else {
				t.log.Debug("right hand lost")
			}
			tracked = sample.Valid
		}
		t.out.Publish(sample)
	}
}
