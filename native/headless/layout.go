package headless

import (
	"math"

	"github.com/bnema/wlrwrap/geom"
	"github.com/bnema/wlrwrap/native"
	"github.com/bnema/wlrwrap/signal"
)

type layoutOutput struct {
	output native.Output
	x, y   int
	auto   bool
}

func (lo *layoutOutput) box() geom.Box {
	w, h := lo.output.EffectiveResolution()
	return geom.Box{X: lo.x, Y: lo.y, Width: w, Height: h}
}

// OutputLayoutEvents are the signals an OutputLayout emits.
type OutputLayoutEvents struct {
	Destroy signal.Signal[*OutputLayout]
}

// OutputLayout arranges outputs in a shared coordinate space. Outputs added
// with AddAuto are placed left to right after the manually placed ones.
type OutputLayout struct {
	outputs   []*layoutOutput
	events    OutputLayoutEvents
	destroyed bool
}

var _ native.OutputLayout = (*OutputLayout)(nil)

func newOutputLayout() *OutputLayout {
	return &OutputLayout{}
}

func (l *OutputLayout) find(o native.Output) *layoutOutput {
	for _, lo := range l.outputs {
		if lo.output == o {
			return lo
		}
	}
	return nil
}

// Add places output at (x, y), moving it if it is already in the layout.
func (l *OutputLayout) Add(output native.Output, x, y int) {
	if output == nil || l.destroyed {
		return
	}
	lo := l.find(output)
	if lo == nil {
		lo = &layoutOutput{output: output}
		l.outputs = append(l.outputs, lo)
	}
	lo.x, lo.y, lo.auto = x, y, false
	l.reconfigure()
}

// AddAuto places output to the right of everything else in the layout.
func (l *OutputLayout) AddAuto(output native.Output) {
	if output == nil || l.destroyed {
		return
	}
	lo := l.find(output)
	if lo == nil {
		lo = &layoutOutput{output: output}
		l.outputs = append(l.outputs, lo)
	}
	lo.auto = true
	l.reconfigure()
}

// Remove takes output out of the layout and reflows the auto-placed outputs.
func (l *OutputLayout) Remove(output native.Output) {
	for i, lo := range l.outputs {
		if lo.output == output {
			l.outputs = append(l.outputs[:i], l.outputs[i+1:]...)
			l.reconfigure()
			return
		}
	}
}

// reconfigure reflows the auto-placed outputs.
func (l *OutputLayout) reconfigure() {
	maxX := math.MinInt
	for _, lo := range l.outputs {
		if lo.auto {
			continue
		}
		b := lo.box()
		maxX = max(maxX, b.X+b.Width)
	}
	if maxX == math.MinInt {
		maxX = 0
	}

	for _, lo := range l.outputs {
		if !lo.auto {
			continue
		}
		lo.x, lo.y = maxX, 0
		w, _ := lo.output.EffectiveResolution()
		maxX += w
	}
}

// OutputBox returns the box of output, or the extents when output is nil.
// An output that is not in the layout has an empty box.
func (l *OutputLayout) OutputBox(output native.Output) geom.Box {
	if output == nil {
		return l.Extents()
	}
	if lo := l.find(output); lo != nil {
		return lo.box()
	}
	return geom.Box{}
}

func (l *OutputLayout) ContainsPoint(reference native.Output, x, y float64) bool {
	if reference != nil {
		lo := l.find(reference)
		return lo != nil && lo.box().Contains(x, y)
	}
	return l.OutputAt(x, y) != nil
}

// ClosestPoint returns the closest point on reference, or on any output when
// reference is nil. With nothing to clamp to the result is NaN.
func (l *OutputLayout) ClosestPoint(reference native.Output, x, y float64) (float64, float64) {
	if l.destroyed {
		return math.NaN(), math.NaN()
	}

	cx, cy := math.NaN(), math.NaN()
	best := math.MaxFloat64
	for _, lo := range l.outputs {
		if reference != nil && lo.output != reference {
			continue
		}
		ox, oy := lo.box().ClosestPoint(x, y)
		if math.IsNaN(ox) || math.IsNaN(oy) {
			continue
		}
		d := (x-ox)*(x-ox) + (y-oy)*(y-oy)
		if d < best {
			best = d
			cx, cy = ox, oy
		}
	}
	return cx, cy
}

// OutputAt returns the first output containing the point, or nil.
func (l *OutputLayout) OutputAt(x, y float64) native.Output {
	for _, lo := range l.outputs {
		if lo.box().Contains(x, y) {
			return lo.output
		}
	}
	return nil
}

// Extents is the bounding box of all outputs. It is empty when the layout
// has no outputs.
func (l *OutputLayout) Extents() geom.Box {
	if len(l.outputs) == 0 {
		return geom.Box{}
	}
	minX, minY := math.MaxInt, math.MaxInt
	maxX, maxY := math.MinInt, math.MinInt
	for _, lo := range l.outputs {
		b := lo.box()
		minX, minY = min(minX, b.X), min(minY, b.Y)
		maxX, maxY = max(maxX, b.X+b.Width), max(maxY, b.Y+b.Height)
	}
	return geom.Box{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Outputs returns the outputs in insertion order.
func (l *OutputLayout) Outputs() []native.Output {
	out := make([]native.Output, 0, len(l.outputs))
	for _, lo := range l.outputs {
		out = append(out, lo.output)
	}
	return out
}

// Events returns the layout's signals.
func (l *OutputLayout) Events() *OutputLayoutEvents {
	return &l.events
}

// Destroy emits Destroy, then drops every output. Later calls do nothing.
func (l *OutputLayout) Destroy() {
	if l.destroyed {
		return
	}
	l.events.Destroy.Emit(l)
	l.events.Destroy.DisconnectAll()
	l.destroyed = true
	l.outputs = nil
}

// Destroyed reports whether Destroy has been called.
func (l *OutputLayout) Destroyed() bool {
	return l.destroyed
}
