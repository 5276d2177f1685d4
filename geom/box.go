// Package geom holds the plain value types passed between wrappers and the
// native layer: boxes, points, colors, output transforms and 3x3 matrices.
//
// The types follow the memory layout and semantics of the wlroots helpers
// (wlr_box, wlr_fbox, wlr_matrix) so they can be handed to a native
// implementation without reinterpretation.
package geom

import (
	"image"
	"math"
)

// closestInset keeps ClosestPoint inside a half-open box.
const closestInset = 1.0 / 65536.0

// Point is a position in layout coordinates.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Box is an integer rectangle in layout or buffer coordinates.
type Box struct {
	X      int
	Y      int
	Width  int
	Height int
}

// BoxFromRect converts an image.Rectangle.
func BoxFromRect(r image.Rectangle) Box {
	r = r.Canon()
	return Box{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Rect converts the box to an image.Rectangle.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Empty reports whether the box has no area.
func (b Box) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Contains reports whether the point lies inside the box. Boxes are
// half-open: the right and bottom edges are outside.
func (b Box) Contains(x, y float64) bool {
	if b.Empty() {
		return false
	}
	return x >= float64(b.X) && x < float64(b.X+b.Width) &&
		y >= float64(b.Y) && y < float64(b.Y+b.Height)
}

// ClosestPoint returns the point inside the box closest to (x, y).
// An empty box has no closest point and yields NaN for both coordinates.
func (b Box) ClosestPoint(x, y float64) (float64, float64) {
	if b.Empty() {
		return math.NaN(), math.NaN()
	}

	cx := x
	if x < float64(b.X) {
		cx = float64(b.X)
	} else if x > float64(b.X+b.Width)-closestInset {
		cx = float64(b.X+b.Width) - closestInset
	}

	cy := y
	if y < float64(b.Y) {
		cy = float64(b.Y)
	} else if y > float64(b.Y+b.Height)-closestInset {
		cy = float64(b.Y+b.Height) - closestInset
	}

	return cx, cy
}

// Intersect returns the overlap of two boxes and whether it is non-empty.
func (b Box) Intersect(o Box) (Box, bool) {
	if b.Empty() || o.Empty() {
		return Box{}, false
	}
	r := b.Rect().Intersect(o.Rect())
	if r.Empty() {
		return Box{}, false
	}
	return BoxFromRect(r), true
}

// FBox is a rectangle with fractional coordinates, used for texture source
// regions.
type FBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Empty reports whether the box has no area.
func (f FBox) Empty() bool {
	return f.Width <= 0 || f.Height <= 0
}

// FBoxFromBox widens an integer box.
func FBoxFromBox(b Box) FBox {
	return FBox{X: float64(b.X), Y: float64(b.Y), Width: float64(b.Width), Height: float64(b.Height)}
}
