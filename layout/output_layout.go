// Package layout wraps a native output layout, the shared coordinate space
// cursors move over.
package layout

import (
	"github.com/bnema/wlrwrap/geom"
	"github.com/bnema/wlrwrap/internal/object"
	"github.com/bnema/wlrwrap/native"
)

// OutputLayout is an owning wrapper around a native.OutputLayout.
type OutputLayout struct {
	*object.Object
	handle native.OutputLayout
}

// Create allocates a layout through lib. It returns nil on failure.
func Create(lib native.Library) *OutputLayout {
	h := lib.CreateOutputLayout()
	if h == nil {
		return nil
	}
	l := &OutputLayout{handle: h}
	l.Object = object.New(object.Owned, h.Destroy)
	return l
}

// Handle returns the native layout.
func (l *OutputLayout) Handle() native.OutputLayout {
	return l.handle
}

// Add places output at (x, y) in layout coordinates.
func (l *OutputLayout) Add(output native.Output, x, y int) {
	l.handle.Add(output, x, y)
}

// AddAuto places output to the right of the existing outputs.
func (l *OutputLayout) AddAuto(output native.Output) {
	l.handle.AddAuto(output)
}

// Remove takes output out of the layout.
func (l *OutputLayout) Remove(output native.Output) {
	l.handle.Remove(output)
}

// OutputBox returns the box of output, or the layout extents for nil.
func (l *OutputLayout) OutputBox(output native.Output) geom.Box {
	return l.handle.OutputBox(output)
}

// ContainsPoint reports whether (x, y) lies on output, or on any output when
// output is nil.
func (l *OutputLayout) ContainsPoint(output native.Output, x, y float64) bool {
	return l.handle.ContainsPoint(output, x, y)
}

// OutputAt returns the output under (x, y), or nil.
func (l *OutputLayout) OutputAt(x, y float64) native.Output {
	return l.handle.OutputAt(x, y)
}

// Extents returns the bounding box of all outputs. It is empty without outputs.
func (l *OutputLayout) Extents() geom.Box {
	return l.handle.Extents()
}
