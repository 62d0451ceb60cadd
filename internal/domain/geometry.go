package domain

// Surface dimensions. Pointer coordinates and region rectangles share
// this space; the presentation layer scales it to whatever it draws on.
const (
	SurfaceWidth  = 1024
	SurfaceHeight = 768
)

// Point is a position on the display surface.
type Point struct {
	X, Y int
}

// PointerSample is a pointer position or nothing. The zero value is "none".
type PointerSample struct {
	Point
	Valid bool
}

// NoPointer is the absent sample.
var NoPointer = PointerSample{}

// At returns a present sample at (x, y).
func At(x, y int) PointerSample {
	return PointerSample{Point: Point{X: x, Y: y}, Valid: true}
}

// Rect is an axis-aligned rectangle on the display surface.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether p lies inside r. Edges are inclusive on
// every side.
func (r Rect) Contains(p Point) bool {
	return r.X <= p.X && p.X <= r.X+r.W && r.Y <= p.Y && p.Y <= r.Y+r.H
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Region is a named interactive hit-zone: a button or an ingredient slot.
type Region struct {
	ID    string
	Label string
	Rect  Rect
}
