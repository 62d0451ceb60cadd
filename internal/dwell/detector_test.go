package dwell

import (
	"testing"
	"time"

	"github.com/hammamikhairi/eliksir/internal/domain"
	"github.com/hammamikhairi/eliksir/internal/logger"
)

// fakePointer is a settable pointer source.
type fakePointer struct {
	sample domain.PointerSample
}

func (f *fakePointer) Current() domain.PointerSample { return f.sample }

var (
	button = domain.Rect{X: 400, Y: 500, W: 200, H: 80}
	inside = domain.At(450, 520)
	epoch  = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
)

func setup(t *testing.T) (*Detector, *fakePointer) {
	t.Helper()
	ptr := &fakePointer{}
	return New(ptr, logger.New(logger.LevelOff, nil)), ptr
}

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

func TestPollBelowThreshold(t *testing.T) {
	tests := []struct {
		dwellMS      int
		wantProgress float64
	}{
		{0, 0},
		{100, 0.2},
		{250, 0.5},
		{499, 0.998},
	}

	for _, tt := range tests {
		det, ptr := setup(t)
		ptr.sample = inside

		if det.Poll("start", button, at(0)) {
			t.Fatal("first poll must not fire")
		}
		if det.Poll("start", button, at(tt.dwellMS)) {
			t.Fatalf("dwell %dms fired below threshold", tt.dwellMS)
		}
		got := det.Progress("start")
		if diff := got - tt.wantProgress; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("dwell %dms: progress %.4f, want %.4f", tt.dwellMS, got, tt.wantProgress)
		}
	}
}

func TestFiresExactlyOncePerHover(t *testing.T) {
	det, ptr := setup(t)
	ptr.sample = inside

	fired := 0
	// 60 Hz for 1.4 s of continuous hover.
	for ms := 0; ms <= 1400; ms += 16 {
		if det.Poll("start", button, at(ms)) {
			fired++
		}
	}
	if fired != 1 {
		t.Fatalf("expected exactly one activation, got %d", fired)
	}
	if !det.IsHovering("start") {
		t.Fatal("expected hover entry to persist while pointer stays")
	}
	if p := det.Progress("start"); p != 0 {
		t.Fatalf("re-armed entry should report zero progress, got %f", p)
	}
}

func TestRearmAfterDelay(t *testing.T) {
	det, ptr := setup(t)
	ptr.sample = inside

	det.Poll("start", button, at(0))
	if !det.Poll("start", button, at(500)) {
		t.Fatal("expected fire at threshold")
	}
	// Re-armed to 1500ms; fires again only after 1500+500.
	if det.Poll("start", button, at(1999)) {
		t.Fatal("fired before re-arm delay elapsed")
	}
	if !det.Poll("start", button, at(2000)) {
		t.Fatal("expected second fire after re-arm delay plus hover time")
	}
}

func TestLeaveResetsDwell(t *testing.T) {
	det, ptr := setup(t)
	ptr.sample = inside

	det.Poll("start", button, at(0))
	det.Poll("start", button, at(400))

	ptr.sample = domain.At(10, 10)
	if det.Poll("start", button, at(420)) {
		t.Fatal("must not fire outside the region")
	}
	if det.IsHovering("start") || det.Progress("start") != 0 {
		t.Fatal("leaving must drop the entry")
	}

	ptr.sample = inside
	det.Poll("start", button, at(440))
	if det.Poll("start", button, at(900)) {
		t.Fatal("dwell must restart from zero after re-entry")
	}
	if !det.Poll("start", button, at(940)) {
		t.Fatal("expected fire 500ms after re-entry")
	}
}

func TestNoPointerCreatesNoState(t *testing.T) {
	det, ptr := setup(t)
	ptr.sample = domain.NoPointer

	regions := []domain.Region{
		{ID: "start", Rect: button},
		{ID: "easy", Rect: domain.Rect{X: 300, Y: 400, W: 150, H: 60}},
		{ID: "hard", Rect: domain.Rect{X: 500, Y: 400, W: 150, H: 60}},
	}
	for ms := 0; ms < 1000; ms += 16 {
		for _, r := range regions {
			if det.PollRegion(r, at(ms)) {
				t.Fatalf("region %s fired without a pointer", r.ID)
			}
		}
	}
	for _, r := range regions {
		if det.IsHovering(r.ID) {
			t.Fatalf("region %s hovering without a pointer", r.ID)
		}
	}
	if len(det.Hovered()) != 0 {
		t.Fatalf("expected no dwell entries, got %v", det.Hovered())
	}
}

func TestProgressIdempotent(t *testing.T) {
	det, ptr := setup(t)
	ptr.sample = inside

	det.Poll("start", button, at(0))
	det.Poll("start", button, at(300))

	first := det.Progress("start")
	for i := 0; i < 5; i++ {
		if got := det.Progress("start"); got != first {
			t.Fatalf("progress changed between polls: %f -> %f", first, got)
		}
	}
}

func TestEdgesInclusive(t *testing.T) {
	det, ptr := setup(t)

	corners := []domain.PointerSample{
		domain.At(button.X, button.Y),
		domain.At(button.X+button.W, button.Y+button.H),
	}
	for _, c := range corners {
		ptr.sample = c
		det.Reset()
		det.Poll("start", button, at(0))
		if !det.IsHovering("start") {
			t.Fatalf("corner %+v should count as inside", c.Point)
		}
	}
}

func TestResetAndForget(t *testing.T) {
	det, ptr := setup(t)
	ptr.sample = inside

	det.Poll("a", button, at(0))
	det.Poll("b", button, at(0))

	det.Forget("a")
	if det.IsHovering("a") || !det.IsHovering("b") {
		t.Fatal("forget should only drop the named region")
	}

	det.Reset()
	if det.IsHovering("b") {
		t.Fatal("reset should drop every entry")
	}
}

func TestWithHoverTime(t *testing.T) {
	ptr := &fakePointer{sample: inside}
	det := New(ptr, logger.New(logger.LevelOff, nil), WithHoverTime(time.Second), WithRearmDelay(0))

	det.Poll("start", button, at(0))
	if det.Poll("start", button, at(999)) {
		t.Fatal("fired before custom hover time")
	}
	if !det.Poll("start", button, at(1000)) {
		t.Fatal("expected fire at custom hover time")
	}
	if det.HoverTime() != time.Second {
		t.Fatalf("HoverTime=%s", det.HoverTime())
	}
}
