// Package pointer fuses the hand-tracker pointer with the mouse fallback.
//
// The tracker goroutine is the only writer of a [Slot]; the game loop is
// the only reader. Every write replaces the whole sample, so a reader sees
// either the previous position, the new position, or "none", never a mix.
package pointer

import (
	"sync/atomic"

	"github.com/hammamikhairi/eliksir/internal/domain"
)

// Compile-time interface checks.
var (
	_ domain.PointerSource = (*Slot)(nil)
	_ domain.PointerSource = (*Fallback)(nil)
	_ domain.PointerSource = (*Fusion)(nil)
)

// Slot is a single published pointer sample.
type Slot struct {
	v atomic.Pointer[domain.PointerSample]
}

// NewSlot returns a slot holding "none".
func NewSlot() *Slot {
	s := &Slot{}
	s.Clear()
	return s
}

// Publish replaces the held sample.
func (s *Slot) Publish(sample domain.PointerSample) {
	s.v.Store(&sample)
}

// Clear publishes "none".
func (s *Slot) Clear() {
	s.Publish(domain.NoPointer)
}

// Current returns the latest published sample without waiting.
func (s *Slot) Current() domain.PointerSample {
	p := s.v.Load()
	if p == nil {
		return domain.NoPointer
	}
	return *p
}

// Fallback remembers the last cursor position reported by the windowing
// layer. It starts empty and stays valid once any move or press arrives.
type Fallback struct {
	slot Slot
}

// NewFallback returns an empty fallback pointer.
func NewFallback() *Fallback {
	return &Fallback{}
}

// Move records a cursor position.
func (f *Fallback) Move(x, y int) {
	f.slot.Publish(domain.At(x, y))
}

// Forget drops the cursor position, e.g. when the cursor leaves the window.
func (f *Fallback) Forget() {
	f.slot.Clear()
}

// Current returns the last cursor position or "none".
func (f *Fallback) Current() domain.PointerSample {
	return f.slot.Current()
}

// Fusion prefers the primary (tracked) source and falls back to the
// secondary (cursor) source when the primary has nothing.
type Fusion struct {
	primary  domain.PointerSource
	fallback domain.PointerSource
}

// NewFusion combines a primary and a fallback source. Either may be nil.
func NewFusion(primary, fallback domain.PointerSource) *Fusion {
	return &Fusion{primary: primary, fallback: fallback}
}

// Current returns the fused pointer. It is a pure read of both sources.
func (f *Fusion) Current() domain.PointerSample {
	if f.primary != nil {
		if p := f.primary.Current(); p.Valid {
			return p
		}
	}
	if f.fallback != nil {
		if p := f.fallback.Current(); p.Valid {
			return p
		}
	}
	return domain.NoPointer
}

// FromPrimary reports whether the current fused sample comes from the
// primary source. The presentation uses it to pick the cursor marker.
func (f *Fusion) FromPrimary() bool {
	return f.primary != nil && f.primary.Current().Valid
}
