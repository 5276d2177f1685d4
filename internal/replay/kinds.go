package replay

import (
	"fmt"

	"github.com/bnema/wlrwrap/native"
	"github.com/bnema/wlrwrap/native/headless"
)

type kind struct {
	device native.InputDeviceType
	check  func(ev *Event) error
	emit   func(ev *Event, dev *headless.InputDevice, tool native.TabletTool)
}

func noCheck(*Event) error { return nil }

func checkButton(ev *Event) error {
	_, err := parseButtonState(ev.State)
	return err
}

var kinds = map[string]kind{
	"motion": {native.DevicePointer, noCheck, func(ev *Event, dev *headless.InputDevice, _ native.TabletTool) {
		dev.Pointer.Motion.Emit(&native.PointerMotionEvent{
			Device: dev, TimeMsec: ev.Time,
			DeltaX: ev.DX, DeltaY: ev.DY,
			UnaccelDX: ev.UnaccelDX, UnaccelDY: ev.UnaccelDY,
		})
	}},
	"motion_absolute": {native.DevicePointer, checkUnit, func(ev *Event, dev *headless.InputDevice, _ native.TabletTool) {
		dev.Pointer.MotionAbsolute.Emit(&native.PointerMotionAbsoluteEvent{
			Device: dev, TimeMsec: ev.Time, X: ev.X, Y: ev.Y,
		})
	}},
	"button": {native.DevicePointer, checkButton, func(ev *Event, dev *headless.InputDevice, _ native.TabletTool) {
		state, _ := parseButtonState(ev.State)
		dev.Pointer.Button.Emit(&native.PointerButtonEvent{
			Device: dev, TimeMsec: ev.Time, Button: ev.Button, State: state,
		})
	}},
	"axis": {native.DevicePointer, checkAxis, func(ev *Event, dev *headless.InputDevice, _ native.TabletTool) {
		source, _ := parseAxisSource(ev.Source)
		orientation, _ := parseAxisOrientation(ev.Orientation)
		dev.Pointer.Axis.Emit(&native.PointerAxisEvent{
			Device: dev, TimeMsec: ev.Time,
			Source: source, Orientation: orientation,
			Delta: ev.Delta, DeltaDiscrete: ev.Discrete,
		})
	}},
	"frame": {native.DevicePointer, noCheck, func(_ *Event, dev *headless.InputDevice, _ native.TabletTool) {
		dev.Pointer.Frame.Emit(struct{}{})
	}},

	"swipe_begin": {native.DevicePointer, noCheck, func(ev *Event, dev *headless.InputDevice, _ native.TabletTool) {
		dev.Pointer.SwipeBegin.Emit(&native.PointerSwipeBeginEvent{Device: dev, TimeMsec: ev.Time, Fingers: ev.Fingers})
	}},
	"swipe_update": {native.DevicePointer, noCheck, func(ev *Event, dev *headless.InputDevice, _ native.TabletTool) {
		dev.Pointer.SwipeUpdate.Emit(&native.PointerSwipeUpdateEvent{
			Device: dev, TimeMsec: ev.Time, Fingers: ev.Fingers, DX: ev.DX, DY: ev.DY,
		})
	}},
	"swipe_end": {native.DevicePointer, noCheck, func(ev *Event, dev *headless.InputDevice, _ native.TabletTool) {
		dev.Pointer.SwipeEnd.Emit(&native.PointerSwipeEndEvent{Device: dev, TimeMsec: ev.Time, Cancelled: ev.Cancelled})
	}},
	"pinch_begin": {native.DevicePointer, noCheck, func(ev *Event, dev *headless.InputDevice, _ native.TabletTool) {
		dev.Pointer.PinchBegin.Emit(&native.PointerPinchBeginEvent{Device: dev, TimeMsec: ev.Time, Fingers: ev.Fingers})
	}},
	"pinch_update": {native.DevicePointer, noCheck, func(ev *Event, dev *headless.InputDevice, _ native.TabletTool) {
		dev.Pointer.PinchUpdate.Emit(&native.PointerPinchUpdateEvent{
			Device: dev, TimeMsec: ev.Time, Fingers: ev.Fingers,
			DX: ev.DX, DY: ev.DY, Scale: ev.Scale, Rotation: ev.Rotation,
		})
	}},
	"pinch_end": {native.DevicePointer, noCheck, func(ev *Event, dev *headless.InputDevice, _ native.TabletTool) {
		dev.Pointer.PinchEnd.Emit(&native.PointerPinchEndEvent{Device: dev, TimeMsec: ev.Time, Cancelled: ev.Cancelled})
	}},
	"hold_begin": {native.DevicePointer, noCheck, func(ev *Event, dev *headless.InputDevice, _ native.TabletTool) {
		dev.Pointer.HoldBegin.Emit(&native.PointerHoldBeginEvent{Device: dev, TimeMsec: ev.Time, Fingers: ev.Fingers})
	}},
	"hold_end": {native.DevicePointer, noCheck, func(ev *Event, dev *headless.InputDevice, _ native.TabletTool) {
		dev.Pointer.HoldEnd.Emit(&native.PointerHoldEndEvent{Device: dev, TimeMsec: ev.Time, Cancelled: ev.Cancelled})
	}},

	"touch_down": {native.DeviceTouch, checkUnit, func(ev *Event, dev *headless.InputDevice, _ native.TabletTool) {
		dev.Touch.Down.Emit(&native.TouchDownEvent{Device: dev, TimeMsec: ev.Time, TouchID: ev.ID, X: ev.X, Y: ev.Y})
	}},
	"touch_up": {native.DeviceTouch, noCheck, func(ev *Event, dev *headless.InputDevice, _ native.TabletTool) {
		dev.Touch.Up.Emit(&native.TouchUpEvent{Device: dev, TimeMsec: ev.Time, TouchID: ev.ID})
	}},
	"touch_motion": {native.DeviceTouch, checkUnit, func(ev *Event, dev *headless.InputDevice, _ native.TabletTool) {
		dev.Touch.Motion.Emit(&native.TouchMotionEvent{Device: dev, TimeMsec: ev.Time, TouchID: ev.ID, X: ev.X, Y: ev.Y})
	}},
	"touch_cancel": {native.DeviceTouch, noCheck, func(ev *Event, dev *headless.InputDevice, _ native.TabletTool) {
		dev.Touch.Cancel.Emit(&native.TouchCancelEvent{Device: dev, TimeMsec: ev.Time, TouchID: ev.ID})
	}},
	"touch_frame": {native.DeviceTouch, noCheck, func(_ *Event, dev *headless.InputDevice, _ native.TabletTool) {
		dev.Touch.Frame.Emit(struct{}{})
	}},

	"tablet_axis": {native.DeviceTabletTool, checkAxes, func(ev *Event, dev *headless.InputDevice, tool native.TabletTool) {
		axes, _ := parseAxes(ev.Axes)
		dev.Tablet.Axis.Emit(&native.TabletToolAxisEvent{
			Device: dev, Tool: tool, TimeMsec: ev.Time, UpdatedAxes: axes,
			X: ev.X, Y: ev.Y, DX: ev.DX, DY: ev.DY,
			Pressure: ev.Pressure, Distance: ev.Distance,
			TiltX: ev.TiltX, TiltY: ev.TiltY,
			Rotation: ev.Rotation, Slider: ev.Slider, WheelDelta: ev.Wheel,
		})
	}},
	"tablet_proximity": {native.DeviceTabletTool, checkProximity, func(ev *Event, dev *headless.InputDevice, tool native.TabletTool) {
		state, _ := parseProximity(ev.State)
		dev.Tablet.Proximity.Emit(&native.TabletToolProximityEvent{
			Device: dev, Tool: tool, TimeMsec: ev.Time, X: ev.X, Y: ev.Y, State: state,
		})
	}},
	"tablet_tip": {native.DeviceTabletTool, checkTip, func(ev *Event, dev *headless.InputDevice, tool native.TabletTool) {
		state, _ := parseTip(ev.State)
		dev.Tablet.Tip.Emit(&native.TabletToolTipEvent{
			Device: dev, Tool: tool, TimeMsec: ev.Time, X: ev.X, Y: ev.Y, State: state,
		})
	}},
	"tablet_button": {native.DeviceTabletTool, checkButton, func(ev *Event, dev *headless.InputDevice, tool native.TabletTool) {
		state, _ := parseButtonState(ev.State)
		dev.Tablet.Button.Emit(&native.TabletToolButtonEvent{
			Device: dev, Tool: tool, TimeMsec: ev.Time, Button: ev.Button, State: state,
		})
	}},
}

// checkUnit rejects absolute coordinates outside [0, 1].
func checkUnit(ev *Event) error {
	if ev.X < 0 || ev.X > 1 || ev.Y < 0 || ev.Y > 1 {
		return fmt.Errorf("%s: coordinates (%v, %v) outside [0, 1]", ev.Type, ev.X, ev.Y)
	}
	return nil
}

func checkAxis(ev *Event) error {
	if _, err := parseAxisSource(ev.Source); err != nil {
		return err
	}
	_, err := parseAxisOrientation(ev.Orientation)
	return err
}

func checkAxes(ev *Event) error {
	if _, err := parseAxes(ev.Axes); err != nil {
		return err
	}
	return checkUnit(ev)
}

func checkProximity(ev *Event) error {
	_, err := parseProximity(ev.State)
	return err
}

func checkTip(ev *Event) error {
	_, err := parseTip(ev.State)
	return err
}

func parseDeviceType(s string) (native.InputDeviceType, error) {
	switch s {
	case "pointer":
		return native.DevicePointer, nil
	case "touch":
		return native.DeviceTouch, nil
	case "tablet-tool", "tablet":
		return native.DeviceTabletTool, nil
	}
	return 0, fmt.Errorf("unsupported device type %q", s)
}

var toolTypes = map[string]native.TabletToolType{
	"pen":      native.ToolPen,
	"eraser":   native.ToolEraser,
	"brush":    native.ToolBrush,
	"pencil":   native.ToolPencil,
	"airbrush": native.ToolAirbrush,
	"mouse":    native.ToolMouse,
	"lens":     native.ToolLens,
	"totem":    native.ToolTotem,
}

func parseToolType(s string) (native.TabletToolType, error) {
	if t, ok := toolTypes[s]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("unknown tool type %q", s)
}

// parseButtonState defaults to pressed.
func parseButtonState(s string) (native.ButtonState, error) {
	switch s {
	case "", "pressed":
		return native.ButtonPressed, nil
	case "released":
		return native.ButtonReleased, nil
	}
	return 0, fmt.Errorf("unknown button state %q", s)
}

// parseAxisSource defaults to wheel.
func parseAxisSource(s string) (native.AxisSource, error) {
	switch s {
	case "", "wheel":
		return native.AxisSourceWheel, nil
	case "finger":
		return native.AxisSourceFinger, nil
	case "continuous":
		return native.AxisSourceContinuous, nil
	case "wheel-tilt":
		return native.AxisSourceWheelTilt, nil
	}
	return 0, fmt.Errorf("unknown axis source %q", s)
}

// parseAxisOrientation defaults to vertical.
func parseAxisOrientation(s string) (native.AxisOrientation, error) {
	switch s {
	case "", "vertical":
		return native.AxisVertical, nil
	case "horizontal":
		return native.AxisHorizontal, nil
	}
	return 0, fmt.Errorf("unknown axis orientation %q", s)
}

// parseProximity defaults to in.
func parseProximity(s string) (native.TabletToolProximityState, error) {
	switch s {
	case "", "in":
		return native.ProximityIn, nil
	case "out":
		return native.ProximityOut, nil
	}
	return 0, fmt.Errorf("unknown proximity state %q", s)
}

// parseTip defaults to down.
func parseTip(s string) (native.TabletToolTipState, error) {
	switch s {
	case "", "down":
		return native.TipDown, nil
	case "up":
		return native.TipUp, nil
	}
	return 0, fmt.Errorf("unknown tip state %q", s)
}

var axisNames = map[string]native.TabletToolAxes{
	"x":        native.AxisX,
	"y":        native.AxisY,
	"distance": native.AxisDistance,
	"pressure": native.AxisPressure,
	"tilt_x":   native.AxisTiltX,
	"tilt_y":   native.AxisTiltY,
	"rotation": native.AxisRotation,
	"slider":   native.AxisSlider,
	"wheel":    native.AxisWheel,
}

// parseAxes defaults to x and y.
func parseAxes(names []string) (native.TabletToolAxes, error) {
	if len(names) == 0 {
		return native.AxisX | native.AxisY, nil
	}
	var axes native.TabletToolAxes
	for _, n := range names {
		a, ok := axisNames[n]
		if !ok {
			return 0, fmt.Errorf("unknown tablet axis %q", n)
		}
		axes |= a
	}
	return axes, nil
}
