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

// Cursor is a wlr_cursor. Every wlr_cursor signal is forwarded to the
// matching CursorEvents signal with its payload converted.
type Cursor struct {
	p         *C.struct_wlr_cursor
	listeners *listenerSet
	events    native.CursorEvents
}

var _ native.Cursor = (*Cursor)(nil)

func newCursor() *Cursor {
	p := C.wlr_cursor_create()
	if p == nil {
		return nil
	}
	c := &Cursor{p: p}
	c.listeners = newListenerSet(c.dispatch)
	for ch := C.int(0); ch < C.GO_CURSOR_CHANNELS; ch++ {
		c.listeners.listen(C.go_cursor_signal(p, ch), ch)
	}
	return c
}

func (c *Cursor) dispatch(channel C.int, data unsafe.Pointer) {
	ev := &c.events
	switch channel {
	case C.GO_CURSOR_MOTION:
		e := (*C.struct_wlr_pointer_motion_event)(data)
		ev.Motion.Emit(&native.PointerMotionEvent{
			Device:    wrapDevice(&e.pointer.base),
			TimeMsec:  uint32(e.time_msec),
			DeltaX:    float64(e.delta_x),
			DeltaY:    float64(e.delta_y),
			UnaccelDX: float64(e.unaccel_dx),
			UnaccelDY: float64(e.unaccel_dy),
		})
	case C.GO_CURSOR_MOTION_ABSOLUTE:
		e := (*C.struct_wlr_pointer_motion_absolute_event)(data)
		ev.MotionAbsolute.Emit(&native.PointerMotionAbsoluteEvent{
			Device:   wrapDevice(&e.pointer.base),
			TimeMsec: uint32(e.time_msec),
			X:        float64(e.x),
			Y:        float64(e.y),
		})
	case C.GO_CURSOR_BUTTON:
		e := (*C.struct_wlr_pointer_button_event)(data)
		ev.Button.Emit(&native.PointerButtonEvent{
			Device:   wrapDevice(&e.pointer.base),
			TimeMsec: uint32(e.time_msec),
			Button:   uint32(e.button),
			State:    native.ButtonState(e.state),
		})
	case C.GO_CURSOR_AXIS:
		e := (*C.struct_wlr_pointer_axis_event)(data)
		ev.Axis.Emit(&native.PointerAxisEvent{
			Device:        wrapDevice(&e.pointer.base),
			TimeMsec:      uint32(e.time_msec),
			Source:        native.AxisSource(e.source),
			Orientation:   native.AxisOrientation(e.orientation),
			Delta:         float64(e.delta),
			DeltaDiscrete: int32(e.delta_discrete),
		})
	case C.GO_CURSOR_FRAME:
		ev.Frame.Emit(c)

	case C.GO_CURSOR_SWIPE_BEGIN:
		e := (*C.struct_wlr_pointer_swipe_begin_event)(data)
		ev.SwipeBegin.Emit(&native.PointerSwipeBeginEvent{
			Device:   wrapDevice(&e.pointer.base),
			TimeMsec: uint32(e.time_msec),
			Fingers:  uint32(e.fingers),
		})
	case C.GO_CURSOR_SWIPE_UPDATE:
		e := (*C.struct_wlr_pointer_swipe_update_event)(data)
		ev.SwipeUpdate.Emit(&native.PointerSwipeUpdateEvent{
			Device:   wrapDevice(&e.pointer.base),
			TimeMsec: uint32(e.time_msec),
			Fingers:  uint32(e.fingers),
			DX:       float64(e.dx),
			DY:       float64(e.dy),
		})
	case C.GO_CURSOR_SWIPE_END:
		e := (*C.struct_wlr_pointer_swipe_end_event)(data)
		ev.SwipeEnd.Emit(&native.PointerSwipeEndEvent{
			Device:    wrapDevice(&e.pointer.base),
			TimeMsec:  uint32(e.time_msec),
			Cancelled: bool(e.cancelled),
		})
	case C.GO_CURSOR_PINCH_BEGIN:
		e := (*C.struct_wlr_pointer_pinch_begin_event)(data)
		ev.PinchBegin.Emit(&native.PointerPinchBeginEvent{
			Device:   wrapDevice(&e.pointer.base),
			TimeMsec: uint32(e.time_msec),
			Fingers:  uint32(e.fingers),
		})
	case C.GO_CURSOR_PINCH_UPDATE:
		e := (*C.struct_wlr_pointer_pinch_update_event)(data)
		ev.PinchUpdate.Emit(&native.PointerPinchUpdateEvent{
			Device:   wrapDevice(&e.pointer.base),
			TimeMsec: uint32(e.time_msec),
			Fingers:  uint32(e.fingers),
			DX:       float64(e.dx),
			DY:       float64(e.dy),
			Scale:    float64(e.scale),
			Rotation: float64(e.rotation),
		})
	case C.GO_CURSOR_PINCH_END:
		e := (*C.struct_wlr_pointer_pinch_end_event)(data)
		ev.PinchEnd.Emit(&native.PointerPinchEndEvent{
			Device:    wrapDevice(&e.pointer.base),
			TimeMsec:  uint32(e.time_msec),
			Cancelled: bool(e.cancelled),
		})
	case C.GO_CURSOR_HOLD_BEGIN:
		e := (*C.struct_wlr_pointer_hold_begin_event)(data)
		ev.HoldBegin.Emit(&native.PointerHoldBeginEvent{
			Device:   wrapDevice(&e.pointer.base),
			TimeMsec: uint32(e.time_msec),
			Fingers:  uint32(e.fingers),
		})
	case C.GO_CURSOR_HOLD_END:
		e := (*C.struct_wlr_pointer_hold_end_event)(data)
		ev.HoldEnd.Emit(&native.PointerHoldEndEvent{
			Device:    wrapDevice(&e.pointer.base),
			TimeMsec:  uint32(e.time_msec),
			Cancelled: bool(e.cancelled),
		})

	case C.GO_CURSOR_TOUCH_UP:
		e := (*C.struct_wlr_touch_up_event)(data)
		ev.TouchUp.Emit(&native.TouchUpEvent{
			Device:   wrapDevice(&e.touch.base),
			TimeMsec: uint32(e.time_msec),
			TouchID:  int32(e.touch_id),
		})
	case C.GO_CURSOR_TOUCH_DOWN:
		e := (*C.struct_wlr_touch_down_event)(data)
		ev.TouchDown.Emit(&native.TouchDownEvent{
			Device:   wrapDevice(&e.touch.base),
			TimeMsec: uint32(e.time_msec),
			TouchID:  int32(e.touch_id),
			X:        float64(e.x),
			Y:        float64(e.y),
		})
	case C.GO_CURSOR_TOUCH_MOTION:
		e := (*C.struct_wlr_touch_motion_event)(data)
		ev.TouchMotion.Emit(&native.TouchMotionEvent{
			Device:   wrapDevice(&e.touch.base),
			TimeMsec: uint32(e.time_msec),
			TouchID:  int32(e.touch_id),
			X:        float64(e.x),
			Y:        float64(e.y),
		})
	case C.GO_CURSOR_TOUCH_CANCEL:
		e := (*C.struct_wlr_touch_cancel_event)(data)
		ev.TouchCancel.Emit(&native.TouchCancelEvent{
			Device:   wrapDevice(&e.touch.base),
			TimeMsec: uint32(e.time_msec),
			TouchID:  int32(e.touch_id),
		})
	case C.GO_CURSOR_TOUCH_FRAME:
		ev.TouchFrame.Emit(struct{}{})

	case C.GO_CURSOR_TABLET_TOOL_AXIS:
		e := (*C.struct_wlr_tablet_tool_axis_event)(data)
		ev.TabletToolAxis.Emit(&native.TabletToolAxisEvent{
			Device:      wrapDevice(&e.tablet.base),
			Tool:        wrapTool(e.tool),
			TimeMsec:    uint32(e.time_msec),
			UpdatedAxes: native.TabletToolAxes(e.updated_axes),
			X:           float64(e.x),
			Y:           float64(e.y),
			DX:          float64(e.dx),
			DY:          float64(e.dy),
			Pressure:    float64(e.pressure),
			Distance:    float64(e.distance),
			TiltX:       float64(e.tilt_x),
			TiltY:       float64(e.tilt_y),
			Rotation:    float64(e.rotation),
			Slider:      float64(e.slider),
			WheelDelta:  float64(e.wheel_delta),
		})
	case C.GO_CURSOR_TABLET_TOOL_PROXIMITY:
		e := (*C.struct_wlr_tablet_tool_proximity_event)(data)
		ev.TabletToolProximity.Emit(&native.TabletToolProximityEvent{
			Device:   wrapDevice(&e.tablet.base),
			Tool:     wrapTool(e.tool),
			TimeMsec: uint32(e.time_msec),
			X:        float64(e.x),
			Y:        float64(e.y),
			State:    native.TabletToolProximityState(e.state),
		})
	case C.GO_CURSOR_TABLET_TOOL_TIP:
		e := (*C.struct_wlr_tablet_tool_tip_event)(data)
		ev.TabletToolTip.Emit(&native.TabletToolTipEvent{
			Device:   wrapDevice(&e.tablet.base),
			Tool:     wrapTool(e.tool),
			TimeMsec: uint32(e.time_msec),
			X:        float64(e.x),
			Y:        float64(e.y),
			State:    native.TabletToolTipState(e.state),
		})
	case C.GO_CURSOR_TABLET_TOOL_BUTTON:
		e := (*C.struct_wlr_tablet_tool_button_event)(data)
		ev.TabletToolButton.Emit(&native.TabletToolButtonEvent{
			Device:   wrapDevice(&e.tablet.base),
			Tool:     wrapTool(e.tool),
			TimeMsec: uint32(e.time_msec),
			Button:   uint32(e.button),
			State:    native.ButtonState(e.state),
		})
	}
}

func (c *Cursor) Events() *native.CursorEvents { return &c.events }

func (c *Cursor) Position() (float64, float64) {
	return float64(c.p.x), float64(c.p.y)
}

func (c *Cursor) Warp(dev native.InputDevice, x, y float64) bool {
	return bool(C.wlr_cursor_warp(c.p, devicePtr(dev), C.double(x), C.double(y)))
}

func (c *Cursor) WarpClosest(dev native.InputDevice, x, y float64) {
	C.wlr_cursor_warp_closest(c.p, devicePtr(dev), C.double(x), C.double(y))
}

func (c *Cursor) WarpAbsolute(dev native.InputDevice, x, y float64) {
	C.wlr_cursor_warp_absolute(c.p, devicePtr(dev), C.double(x), C.double(y))
}

func (c *Cursor) Move(dev native.InputDevice, dx, dy float64) {
	C.wlr_cursor_move(c.p, devicePtr(dev), C.double(dx), C.double(dy))
}

// SetImage hands pixels to wlroots, which copies them before returning.
func (c *Cursor) SetImage(pixels []byte, stride int32, width, height uint32, hotspotX, hotspotY int32, scale float32) {
	var p *C.uint8_t
	if len(pixels) > 0 {
		p = (*C.uint8_t)(unsafe.Pointer(&pixels[0]))
	}
	C.wlr_cursor_set_image(c.p, p, C.int32_t(stride), C.uint32_t(width), C.uint32_t(height),
		C.int32_t(hotspotX), C.int32_t(hotspotY), C.float(scale))
}

func (c *Cursor) SetSurface(surface native.Surface, hotspotX, hotspotY int32) {
	C.wlr_cursor_set_surface(c.p, surfacePtr(surface), C.int32_t(hotspotX), C.int32_t(hotspotY))
}

func (c *Cursor) AttachInputDevice(dev native.InputDevice) {
	if p := devicePtr(dev); p != nil {
		C.wlr_cursor_attach_input_device(c.p, p)
	}
}

func (c *Cursor) DetachInputDevice(dev native.InputDevice) {
	if p := devicePtr(dev); p != nil {
		C.wlr_cursor_detach_input_device(c.p, p)
	}
}

func (c *Cursor) AttachOutputLayout(layout native.OutputLayout) {
	C.wlr_cursor_attach_output_layout(c.p, layoutPtr(layout))
}

func (c *Cursor) MapToOutput(output native.Output) {
	C.wlr_cursor_map_to_output(c.p, outputPtr(output))
}

func (c *Cursor) MapInputToOutput(dev native.InputDevice, output native.Output) {
	if p := devicePtr(dev); p != nil {
		C.wlr_cursor_map_input_to_output(c.p, p, outputPtr(output))
	}
}

func (c *Cursor) MapToRegion(box *geom.Box) {
	if box == nil {
		C.wlr_cursor_map_to_region(c.p, nil)
		return
	}
	b := cBox(*box)
	C.wlr_cursor_map_to_region(c.p, &b)
}

func (c *Cursor) MapInputToRegion(dev native.InputDevice, box *geom.Box) {
	p := devicePtr(dev)
	if p == nil {
		return
	}
	if box == nil {
		C.wlr_cursor_map_input_to_region(c.p, p, nil)
		return
	}
	b := cBox(*box)
	C.wlr_cursor_map_input_to_region(c.p, p, &b)
}

// Destroy removes the Go listeners before wlroots frees the signals they
// hang off.
func (c *Cursor) Destroy() {
	if c.p == nil {
		return
	}
	c.listeners.remove()
	C.wlr_cursor_destroy(c.p)
	c.p = nil
}
