package pointer

import (
	"sync"
	"testing"

	"github.com/hammamikhairi/eliksir/internal/domain"
)

func TestSlotStartsEmpty(t *testing.T) {
	var zero Slot
	if zero.Current().Valid {
		t.Fatal("zero-value slot should hold none")
	}
	if NewSlot().Current().Valid {
		t.Fatal("new slot should hold none")
	}
}

func TestSlotPublishAndClear(t *testing.T) {
	s := NewSlot()
	s.Publish(domain.At(10, 20))

	got := s.Current()
	if !got.Valid || got.X != 10 || got.Y != 20 {
		t.Fatalf("expected (10,20), got %+v", got)
	}

	s.Clear()
	if s.Current().Valid {
		t.Fatal("expected none after clear")
	}
}

func TestFusionPriority(t *testing.T) {
	tests := []struct {
		name     string
		primary  domain.PointerSample
		fallback domain.PointerSample
		want     domain.PointerSample
	}{
		{"primary wins", domain.At(1, 2), domain.At(3, 4), domain.At(1, 2)},
		{"fallback when primary absent", domain.NoPointer, domain.At(3, 4), domain.At(3, 4)},
		{"primary without fallback", domain.At(5, 6), domain.NoPointer, domain.At(5, 6)},
		{"both absent", domain.NoPointer, domain.NoPointer, domain.NoPointer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := NewSlot()
			primary.Publish(tt.primary)
			fallback := NewFallback()
			if tt.fallback.Valid {
				fallback.Move(tt.fallback.X, tt.fallback.Y)
			}

			f := NewFusion(primary, fallback)
			if got := f.Current(); got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
			if got := f.FromPrimary(); got != tt.primary.Valid {
				t.Fatalf("FromPrimary=%v, want %v", got, tt.primary.Valid)
			}
		})
	}
}

func TestFusionNilSources(t *testing.T) {
	f := NewFusion(nil, nil)
	if f.Current().Valid {
		t.Fatal("expected none with no sources")
	}
}

func TestFallbackForget(t *testing.T) {
	fb := NewFallback()
	fb.Move(7, 8)
	fb.Forget()
	if fb.Current().Valid {
		t.Fatal("expected none after forget")
	}
}

// Run with -race: one writer, one reader, whole-value replacement.
func TestSlotConcurrentPublish(t *testing.T) {
	s := NewSlot()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if i%2 == 0 {
				s.Publish(domain.At(i, i))
			} else {
				s.Clear()
			}
		}
	}()

	for i := 0; i < 1000; i++ {
		p := s.Current()
		if p.Valid && p.X != p.Y {
			t.Fatalf("torn sample: %+v", p)
		}
	}
	wg.Wait()
}
