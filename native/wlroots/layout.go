//go:build wlroots

package wlroots

/*
#include "glue.h"
*/
import "C"

import (
	"unsafe"

	"github.com/bnema/wlrwrap/geom"
	"github.com/bnema/wlrwrap/native"
)

// OutputLayout is a wlr_output_layout.
type OutputLayout struct {
	p *C.struct_wlr_output_layout
}

var _ native.OutputLayout = (*OutputLayout)(nil)

func layoutPtr(layout native.OutputLayout) *C.struct_wlr_output_layout {
	if l, ok := layout.(*OutputLayout); ok && l != nil {
		return l.p
	}
	return nil
}

func (l *OutputLayout) Add(output native.Output, x, y int) {
	if p := outputPtr(output); p != nil {
		C.wlr_output_layout_add(l.p, p, C.int(x), C.int(y))
	}
}

func (l *OutputLayout) AddAuto(output native.Output) {
	if p := outputPtr(output); p != nil {
		C.wlr_output_layout_add_auto(l.p, p)
	}
}

func (l *OutputLayout) Remove(output native.Output) {
	if p := outputPtr(output); p != nil {
		C.wlr_output_layout_remove(l.p, p)
	}
}

func (l *OutputLayout) OutputBox(output native.Output) geom.Box {
	var b C.struct_wlr_box
	C.wlr_output_layout_get_box(l.p, outputPtr(output), &b)
	return goBox(b)
}

// ContainsPoint truncates to integer layout coordinates like wlroots does.
func (l *OutputLayout) ContainsPoint(reference native.Output, x, y float64) bool {
	return bool(C.wlr_output_layout_contains_point(l.p, outputPtr(reference), C.int(x), C.int(y)))
}

func (l *OutputLayout) ClosestPoint(reference native.Output, x, y float64) (float64, float64) {
	var cx, cy C.double
	C.wlr_output_layout_closest_point(l.p, outputPtr(reference), C.double(x), C.double(y), &cx, &cy)
	return float64(cx), float64(cy)
}

func (l *OutputLayout) OutputAt(x, y float64) native.Output {
	p := C.wlr_output_layout_output_at(l.p, C.double(x), C.double(y))
	if p == nil {
		return nil
	}
	return wrapOutput(p)
}

func (l *OutputLayout) Extents() geom.Box {
	return l.OutputBox(nil)
}

func (l *OutputLayout) Outputs() []native.Output {
	n := C.go_output_layout_outputs(l.p, nil, 0)
	if n == 0 {
		return nil
	}
	ptrs := make([]*C.struct_wlr_output, int(n))
	C.go_output_layout_outputs(l.p, (**C.struct_wlr_output)(unsafe.Pointer(&ptrs[0])), n)
	out := make([]native.Output, 0, len(ptrs))
	for _, p := range ptrs {
		out = append(out, wrapOutput(p))
	}
	return out
}

func (l *OutputLayout) Destroy() {
	if l.p == nil {
		return
	}
	C.wlr_output_layout_destroy(l.p)
	l.p = nil
}
