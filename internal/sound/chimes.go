package sound

import (
	"context"
	"sync"

	"github.com/hammamikhairi/eliksir/internal/domain"
	"github.com/hammamikhairi/eliksir/internal/logger"
)

// DefaultQueueSize bounds how many cues may wait behind the one playing.
const DefaultQueueSize = 4

// ChimesOption configures the dispatcher.
type ChimesOption func(*Chimes)

// WithQueueSize sets the number of cues that may wait.
func WithQueueSize(n int) ChimesOption {
	return func(c *Chimes) {
		if n > 0 {
			c.queueSize = n
		}
	}
}

// Chimes serializes cue playback through one speaker. Only one cue sounds
// at a time; a mismatch cuts off whatever is playing and jumps the queue.
type Chimes struct {
	speaker   Speaker
	log       *logger.Logger
	queueSize int

	pcmOnce sync.Once
	pcm     map[Cue][]byte

	mu     sync.Mutex
	queue  []Cue
	wake   chan struct{}
	cancel context.CancelFunc
	done   chan struct{}
}

// NewChimes creates a dispatcher playing through speaker.
func NewChimes(speaker Speaker, log *logger.Logger, opts ...ChimesOption) *Chimes {
	c := &Chimes{
		speaker:   speaker,
		log:       log,
		queueSize: DefaultQueueSize,
		wake:      make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start renders the cues and begins the playback goroutine. Non-blocking.
func (c *Chimes) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done != nil {
		return
	}
	c.render()

	childCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	go c.loop(childCtx, c.done)
	c.log.Info("chimes started")
}

// Stop cuts off playback and waits for the goroutine to exit.
func (c *Chimes) Stop() {
	c.mu.Lock()
	if c.done == nil {
		c.mu.Unlock()
		return
	}
	c.cancel()
	done := c.done
	c.done = nil
	c.queue = nil
	c.mu.Unlock()

	c.speaker.Stop()
	<-done
	c.log.Info("chimes stopped")
}

// Play queues a cue. Non-blocking; a full queue drops the cue.
func (c *Chimes) Play(cue Cue) {
	if cue == CueNone {
		return
	}

	c.mu.Lock()
	switch {
	case cue == CueMismatch:
		c.queue = append(c.queue[:0], cue)
		// Still holding mu, so the loop cannot have dequeued the
		// mismatch yet and only the older cue is cut off.
		c.speaker.Stop()
	case len(c.queue) >= c.queueSize:
		c.mu.Unlock()
		c.log.Debug("chimes: queue full, dropping %s", cue)
		return
	default:
		c.queue = append(c.queue, cue)
	}
	c.mu.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// QueueLen returns the number of waiting cues.
func (c *Chimes) QueueLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

func (c *Chimes) render() {
	c.pcmOnce.Do(func() {
		c.pcm = make(map[Cue][]byte, len(Cues))
		for _, cue := range Cues {
			c.pcm[cue] = Render(cue)
		}
		c.log.Debug("chimes: rendered %d cues", len(c.pcm))
	})
}

func (c *Chimes) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.wake:
		}
		for {
			if ctx.Err() != nil {
				return
			}
			cue, ok := c.dequeue()
			if !ok {
				break
			}
			if err := c.speaker.Play(c.pcm[cue]); err != nil {
				c.log.Warn("chimes: playing %s: %v", cue, err)
			}
		}
	}
}

func (c *Chimes) dequeue() (Cue, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) == 0 {
		return CueNone, false
	}
	cue := c.queue[0]
	c.queue = c.queue[1:]
	return cue, true
}

// CueFor maps a game event to its sound.
func CueFor(kind domain.EventKind) Cue {
	switch kind {
	case domain.EventActivated, domain.EventSessionStarted:
		return CueActivate
	case domain.EventTapAccepted:
		return CueTap
	case domain.EventMismatch:
		return CueMismatch
	case domain.EventSuccess:
		return CueSuccess
	default:
		return CueNone
	}
}

// Compile-time interface check.
var _ domain.Notifier = (*ChimeNotifier)(nil)

// ChimeNotifier wraps a notifier and also plays the event's cue.
type ChimeNotifier struct {
	inner  domain.Notifier
	chimes *Chimes
}

// NewChimeNotifier creates a notifier that forwards to inner and chimes.
func NewChimeNotifier(inner domain.Notifier, chimes *Chimes) *ChimeNotifier {
	return &ChimeNotifier{inner: inner, chimes: chimes}
}

// Notify forwards the event, then queues its cue.
func (n *ChimeNotifier) Notify(ctx context.Context, ev domain.Event) error {
	if err := n.inner.Notify(ctx, ev); err != nil {
		return err
	}
	n.chimes.Play(CueFor(ev.Kind))
	return nil
}
