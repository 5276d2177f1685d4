package cmd

import (
	"fmt"
	"io"
	"math"

	"github.com/bnema/wlrwrap/cursor"
	"github.com/bnema/wlrwrap/geom"
	"github.com/bnema/wlrwrap/internal/ui"
	"github.com/bnema/wlrwrap/native"
	"github.com/bnema/wlrwrap/signal"
)

// printer prints every notification a cursor re-emits. Pointer and tablet
// motion also move the cursor, so the printed positions follow the script.
type printer struct {
	out    io.Writer
	cursor *cursor.Cursor
	conns  signal.Connector
	count  int
}

func (p *printer) line(name, detail string) {
	p.count++
	fmt.Fprintln(p.out, ui.FormatEvent(p.count, name, detail))
}

func (p *printer) position() string {
	return "-> " + formatPoint(p.cursor.Position())
}

func deviceName(dev native.InputDevice) string {
	if dev == nil {
		return "?"
	}
	return dev.DeviceName()
}

func (p *printer) connect() {
	ev := p.cursor.Events()
	c := &p.conns

	signal.Connect(c, &ev.Motion, func(e *native.PointerMotionEvent) {
		p.cursor.Move(e.Device, geom.Pt(e.DeltaX, e.DeltaY))
		p.line("motion", fmt.Sprintf("%s t=%d dx=%g dy=%g %s", deviceName(e.Device), e.TimeMsec, e.DeltaX, e.DeltaY, p.position()))
	})
	signal.Connect(c, &ev.MotionAbsolute, func(e *native.PointerMotionAbsoluteEvent) {
		p.cursor.WarpAbsolute(e.Device, geom.Pt(e.X, e.Y))
		p.line("motion_absolute", fmt.Sprintf("%s t=%d x=%g y=%g %s", deviceName(e.Device), e.TimeMsec, e.X, e.Y, p.position()))
	})
	signal.Connect(c, &ev.Button, func(e *native.PointerButtonEvent) {
		state := "released"
		if e.State == native.ButtonPressed {
			state = "pressed"
		}
		p.line("button", fmt.Sprintf("%s t=%d button=%d %s", deviceName(e.Device), e.TimeMsec, e.Button, state))
	})
	signal.Connect(c, &ev.Axis, func(e *native.PointerAxisEvent) {
		p.line("axis", fmt.Sprintf("%s t=%d source=%d orientation=%d delta=%g discrete=%d",
			deviceName(e.Device), e.TimeMsec, e.Source, e.Orientation, e.Delta, e.DeltaDiscrete))
	})
	signal.Connect(c, &ev.Frame, func(struct{}) { p.line("frame", "") })

	signal.Connect(c, &ev.SwipeBegin, func(e *native.PointerSwipeBeginEvent) {
		p.line("swipe_begin", fmt.Sprintf("%s fingers=%d", deviceName(e.Device), e.Fingers))
	})
	signal.Connect(c, &ev.SwipeUpdate, func(e *native.PointerSwipeUpdateEvent) {
		p.line("swipe_update", fmt.Sprintf("%s dx=%g dy=%g", deviceName(e.Device), e.DX, e.DY))
	})
	signal.Connect(c, &ev.SwipeEnd, func(e *native.PointerSwipeEndEvent) {
		p.line("swipe_end", fmt.Sprintf("%s cancelled=%v", deviceName(e.Device), e.Cancelled))
	})
	signal.Connect(c, &ev.PinchBegin, func(e *native.PointerPinchBeginEvent) {
		p.line("pinch_begin", fmt.Sprintf("%s fingers=%d", deviceName(e.Device), e.Fingers))
	})
	signal.Connect(c, &ev.PinchUpdate, func(e *native.PointerPinchUpdateEvent) {
		p.line("pinch_update", fmt.Sprintf("%s dx=%g dy=%g scale=%g rotation=%g", deviceName(e.Device), e.DX, e.DY, e.Scale, e.Rotation))
	})
	signal.Connect(c, &ev.PinchEnd, func(e *native.PointerPinchEndEvent) {
		p.line("pinch_end", fmt.Sprintf("%s cancelled=%v", deviceName(e.Device), e.Cancelled))
	})
	signal.Connect(c, &ev.HoldBegin, func(e *native.PointerHoldBeginEvent) {
		p.line("hold_begin", fmt.Sprintf("%s fingers=%d", deviceName(e.Device), e.Fingers))
	})
	signal.Connect(c, &ev.HoldEnd, func(e *native.PointerHoldEndEvent) {
		p.line("hold_end", fmt.Sprintf("%s cancelled=%v", deviceName(e.Device), e.Cancelled))
	})

	signal.Connect(c, &ev.TouchUp, func(e *native.TouchUpEvent) {
		p.line("touch_up", fmt.Sprintf("%s id=%d", deviceName(e.Device), e.TouchID))
	})
	signal.Connect(c, &ev.TouchDown, func(e *native.TouchDownEvent) {
		p.line("touch_down", fmt.Sprintf("%s id=%d x=%g y=%g", deviceName(e.Device), e.TouchID, e.X, e.Y))
	})
	signal.Connect(c, &ev.TouchMotion, func(e *native.TouchMotionEvent) {
		p.line("touch_motion", fmt.Sprintf("%s id=%d x=%g y=%g", deviceName(e.Device), e.TouchID, e.X, e.Y))
	})
	signal.Connect(c, &ev.TouchCancel, func(e *native.TouchCancelEvent) {
		p.line("touch_cancel", fmt.Sprintf("%s id=%d", deviceName(e.Device), e.TouchID))
	})
	signal.Connect(c, &ev.TouchFrame, func(struct{}) { p.line("touch_frame", "") })

	signal.Connect(c, &ev.TabletToolAxis, func(e *native.TabletToolAxisEvent) {
		// An axis that did not change keeps the current cursor coordinate.
		x, y := math.NaN(), math.NaN()
		if e.UpdatedAxes&native.AxisX != 0 {
			x = e.X
		}
		if e.UpdatedAxes&native.AxisY != 0 {
			y = e.Y
		}
		p.cursor.WarpAbsolute(e.Device, geom.Pt(x, y))
		p.line("tablet_axis", fmt.Sprintf("%s axes=%#x pressure=%g %s", deviceName(e.Device), uint32(e.UpdatedAxes), e.Pressure, p.position()))
	})
	signal.Connect(c, &ev.TabletToolProximity, func(e *native.TabletToolProximityEvent) {
		state := "out"
		if e.State == native.ProximityIn {
			state = "in"
		}
		p.line("tablet_proximity", fmt.Sprintf("%s %s", deviceName(e.Device), state))
	})
	signal.Connect(c, &ev.TabletToolTip, func(e *native.TabletToolTipEvent) {
		state := "up"
		if e.State == native.TipDown {
			state = "down"
		}
		p.line("tablet_tip", fmt.Sprintf("%s %s", deviceName(e.Device), state))
	})
	signal.Connect(c, &ev.TabletToolButton, func(e *native.TabletToolButtonEvent) {
		p.line("tablet_button", fmt.Sprintf("%s button=%d", deviceName(e.Device), e.Button))
	})
}
