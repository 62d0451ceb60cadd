package tracker

import (
	"context"

	"github.com/hammamikhairi/eliksir/internal/domain"
)

// Hand is one detected hand: its handedness label and the index fingertip
// in normalized camera coordinates, both axes in [0, 1].
type Hand struct {
	Handedness string  `json:"handedness"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
}

// Frame is the landmark extraction result of one camera read.
type Frame struct {
	Hands []Hand `json:"hands"`
}

// Camera yields landmark frames. Open and Close bracket the device handle;
// Read may block for up to one frame interval.
type Camera interface {
	Open(ctx context.Context) error
	Read(ctx context.Context) (Frame, error)
	Close() error
}

// RightHand is the handedness label of the tracked hand.
const RightHand = "Right"

// MapFrame converts a frame to a pointer sample on the display surface.
// Only the first right hand counts; the image is mirrored so moving the
// hand right moves the pointer right.
func MapFrame(f Frame) domain.PointerSample {
	for _, h := range f.Hands {
		if h.Handedness != RightHand {
			continue
		}
		x := int((1 - h.X) * domain.SurfaceWidth)
		y := int(h.Y * domain.SurfaceHeight)
		return domain.At(x, y)
	}
	return domain.NoPointer
}
