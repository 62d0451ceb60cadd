package tracker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/hammamikhairi/eliksir/internal/domain"
	"github.com/hammamikhairi/eliksir/internal/logger"
	"github.com/hammamikhairi/eliksir/internal/pointer"
)

// fakeCamera returns a fixed frame, or an error when failing is set.
type fakeCamera struct {
	mu      sync.Mutex
	frame   Frame
	failing bool
	openErr error
	opened  int
	closed  int
	reads   int
}

func (c *fakeCamera) Open(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opened++
	return c.openErr
}

func (c *fakeCamera) Read(context.Context) (Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reads++
	if c.failing {
		return Frame{}, errors.New("frame grab failed")
	}
	return c.frame, nil
}

func (c *fakeCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed++
	return nil
}

func (c *fakeCamera) set(f Frame, failing bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frame = f
	c.failing = failing
}

func (c *fakeCamera) counts() (opened, closed, reads int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opened, c.closed, c.reads
}

func right(x, y float64) Frame {
	return Frame{Hands: []Hand{{Handedness: RightHand, X: x, Y: y}}}
}

func TestMapFrame(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
		want  domain.PointerSample
	}{
		{"no hands", Frame{}, domain.NoPointer},
		{"left only", Frame{Hands: []Hand{{Handedness: "Left", X: 0.5, Y: 0.5}}}, domain.NoPointer},
		{"centre", right(0.5, 0.5), domain.At(512, 384)},
		{"mirrored", right(0.25, 0), domain.At(768, 0)},
		{"far corner", right(1, 1), domain.At(0, 768)},
		{"first right wins", Frame{Hands: []Hand{
			{Handedness: "Left", X: 0.9, Y: 0.9},
			{Handedness: RightHand, X: 0.75, Y: 0.25},
			{Handedness: RightHand, X: 0.1, Y: 0.1},
		}}, domain.At(256, 192)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapFrame(tt.frame); got != tt.want {
				t.Fatalf("MapFrame = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTrackerPublishes(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	cam := &fakeCamera{frame: right(0.5, 0.5)}
	slot := pointer.NewSlot()

	tr := New(cam, slot, log, WithRate(200))
	if err := tr.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer tr.Stop()

	time.Sleep(100 * time.Millisecond)

	if got := slot.Current(); got != domain.At(512, 384) {
		t.Fatalf("slot = %+v", got)
	}

	cam.set(Frame{}, false)
	time.Sleep(50 * time.Millisecond)
	if slot.Current().Valid {
		t.Fatal("losing the hand should publish none")
	}
}

func TestTrackerClearsAfterMisses(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	cam := &fakeCamera{frame: right(0.5, 0.5)}
	slot := pointer.NewSlot()

	tr := New(cam, slot, log, WithRate(200), WithMissLimit(3))
	if err := tr.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer tr.Stop()

	time.Sleep(50 * time.Millisecond)
	if !slot.Current().Valid {
		t.Fatal("expected a tracked position")
	}

	cam.set(right(0.5, 0.5), true)
	time.Sleep(100 * time.Millisecond)
	if slot.Current().Valid {
		t.Fatal("repeated read failures should clear the pointer")
	}
}

func TestTrackerStopReleasesCamera(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	cam := &fakeCamera{failing: true}
	slot := pointer.NewSlot()

	tr := New(cam, slot, log, WithRate(200))
	if err := tr.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	tr.Stop()

	opened, closed, reads := cam.counts()
	if opened != 1 || closed != 1 {
		t.Fatalf("opened=%d closed=%d, want 1/1", opened, closed)
	}
	if tr.Running() {
		t.Fatal("tracker still running after Stop")
	}

	time.Sleep(30 * time.Millisecond)
	if _, _, after := cam.counts(); after != reads {
		t.Fatalf("camera read after Stop (%d -> %d)", reads, after)
	}

	// Idempotent.
	tr.Stop()
	if _, closed, _ := cam.counts(); closed != 1 {
		t.Fatalf("camera closed %d times", closed)
	}
}

func TestTrackerContextCancel(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	cam := &fakeCamera{frame: right(0.5, 0.5)}
	slot := pointer.NewSlot()

	ctx, cancel := context.WithCancel(context.Background())
	tr := New(cam, slot, log, WithRate(200))
	if err := tr.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	cancel()
	time.Sleep(30 * time.Millisecond)

	if _, closed, _ := cam.counts(); closed != 1 {
		t.Fatalf("cancelling the context should release the camera, closed=%d", closed)
	}
	if slot.Current().Valid {
		t.Fatal("released camera should leave no pointer behind")
	}
	if tr.Running() {
		t.Fatal("tracker should not report running after its context ended")
	}
	tr.Stop()
}

func TestTrackerRestartAfterContextCancel(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	cam := &fakeCamera{frame: right(0.5, 0.5)}
	slot := pointer.NewSlot()
	tr := New(cam, slot, log, WithRate(200))

	ctx, cancel := context.WithCancel(context.Background())
	if err := tr.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	cancel()
	time.Sleep(30 * time.Millisecond)

	if err := tr.Start(context.Background()); err != nil {
		t.Fatalf("restart: %v", err)
	}
	defer tr.Stop()
	time.Sleep(30 * time.Millisecond)

	opened, closed, _ := cam.counts()
	if opened != 2 || closed != 1 {
		t.Fatalf("restart should reopen the camera, opened=%d closed=%d", opened, closed)
	}
	if !tr.Running() {
		t.Fatal("restarted tracker should be running")
	}
	if !slot.Current().Valid {
		t.Fatal("restarted tracker should publish again")
	}
}

func TestTrackerOpenError(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	cam := &fakeCamera{openErr: domain.ErrCameraUnavailable}
	slot := pointer.NewSlot()

	tr := New(cam, slot, log)
	err := tr.Start(context.Background())
	if !errors.Is(err, domain.ErrCameraUnavailable) {
		t.Fatalf("expected ErrCameraUnavailable, got %v", err)
	}
	if tr.Running() {
		t.Fatal("tracker must not run without a camera")
	}
	tr.Stop()
}

func TestReplayCamera(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hands.jsonl")
	data := `# recorded
{"hands":[{"handedness":"Right","x":0.5,"y":0.5}]}

{"hands":[]}
{"hands":[{"handedness":"Left","x":0.1,"y":0.2},{"handedness":"Right","x":0.25,"y":0.5}]}
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	cam := NewReplayCamera(path, 0)
	if err := cam.Open(ctx); err != nil {
		t.Fatalf("open: %v", err)
	}
	if cam.Len() != 3 {
		t.Fatalf("loaded %d frames, want 3", cam.Len())
	}

	want := []domain.PointerSample{
		domain.At(512, 384),
		domain.NoPointer,
		domain.At(768, 384),
		domain.At(512, 384), // loops
	}
	for i, w := range want {
		fr, err := cam.Read(ctx)
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if got := MapFrame(fr); got != w {
			t.Fatalf("frame %d: %+v, want %+v", i, got, w)
		}
	}

	if err := cam.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := cam.Read(ctx); !errors.Is(err, domain.ErrCameraUnavailable) {
		t.Fatalf("read after close: %v", err)
	}
}

func TestReplayCameraErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.jsonl")
	broken := filepath.Join(dir, "broken.jsonl")
	if err := os.WriteFile(empty, []byte("\n# nothing\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(broken, []byte("{\"hands\": [\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if err := NewReplayCamera(filepath.Join(dir, "missing.jsonl"), 0).Open(ctx); !errors.Is(err, domain.ErrCameraUnavailable) {
		t.Fatalf("missing file: %v", err)
	}
	if err := NewReplayCamera(empty, 0).Open(ctx); !errors.Is(err, domain.ErrCameraUnavailable) {
		t.Fatalf("empty file: %v", err)
	}
	if err := NewReplayCamera(broken, 0).Open(ctx); err == nil {
		t.Fatal("expected a parse error")
	}
}
