package tracker

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hammamikhairi/eliksir/internal/domain"
)

// EnvReplayFile names the environment variable holding a replay path.
const EnvReplayFile = "ELIKSIR_REPLAY_FILE"

// ReplayCamera plays back recorded frames from a JSON-lines file, one
// frame per line, looping at the end. Blank lines and lines starting with
// '#' are skipped.
type ReplayCamera struct {
	path     string
	interval time.Duration

	frames []Frame
	next   int
}

var _ Camera = (*ReplayCamera)(nil)

// NewReplayCamera creates a replay camera. Frames are paced at interval;
// zero reads as fast as the caller asks.
func NewReplayCamera(path string, interval time.Duration) *ReplayCamera {
	return &ReplayCamera{path: path, interval: interval}
}

// Open loads every frame from the file.
func (c *ReplayCamera) Open(_ context.Context) error {
	f, err := os.Open(c.path)
	if err != nil {
		return fmt.Errorf("opening replay %s: %w", c.path, domain.ErrCameraUnavailable)
	}
	defer f.Close()

	var frames []Frame
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		var fr Frame
		if err := json.Unmarshal([]byte(text), &fr); err != nil {
			return fmt.Errorf("replay %s line %d: %w", c.path, line, err)
		}
		frames = append(frames, fr)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading replay %s: %w", c.path, err)
	}
	if len(frames) == 0 {
		return fmt.Errorf("replay %s has no frames: %w", c.path, domain.ErrCameraUnavailable)
	}

	c.frames = frames
	c.next = 0
	return nil
}

// Read returns the next frame, waiting one interval first.
func (c *ReplayCamera) Read(ctx context.Context) (Frame, error) {
	if len(c.frames) == 0 {
		return Frame{}, domain.ErrCameraUnavailable
	}
	if c.interval > 0 {
		t := time.NewTimer(c.interval)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return Frame{}, ctx.Err()
		case <-t.C:
		}
	}
	fr := c.frames[c.next]
	c.next = (c.next + 1) % len(c.frames)
	return fr, nil
}

// Close drops the loaded frames.
func (c *ReplayCamera) Close() error {
	c.frames = nil
	return nil
}

// Len returns the number of loaded frames.
func (c *ReplayCamera) Len() int { return len(c.frames) }
