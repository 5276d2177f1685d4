package headless

import (
	"github.com/bnema/wlrwrap/native"
	"github.com/bnema/wlrwrap/signal"
)

// PointerEvents mirror the signals of a wlr_pointer.
type PointerEvents struct {
	Motion         signal.Signal[*native.PointerMotionEvent]
	MotionAbsolute signal.Signal[*native.PointerMotionAbsoluteEvent]
	Button         signal.Signal[*native.PointerButtonEvent]
	Axis           signal.Signal[*native.PointerAxisEvent]
	Frame          signal.Signal[struct{}]

	SwipeBegin  signal.Signal[*native.PointerSwipeBeginEvent]
	SwipeUpdate signal.Signal[*native.PointerSwipeUpdateEvent]
	SwipeEnd    signal.Signal[*native.PointerSwipeEndEvent]
	PinchBegin  signal.Signal[*native.PointerPinchBeginEvent]
	PinchUpdate signal.Signal[*native.PointerPinchUpdateEvent]
	PinchEnd    signal.Signal[*native.PointerPinchEndEvent]
	HoldBegin   signal.Signal[*native.PointerHoldBeginEvent]
	HoldEnd     signal.Signal[*native.PointerHoldEndEvent]
}

// TouchEvents mirror the signals of a wlr_touch.
type TouchEvents struct {
	Up     signal.Signal[*native.TouchUpEvent]
	Down   signal.Signal[*native.TouchDownEvent]
	Motion signal.Signal[*native.TouchMotionEvent]
	Cancel signal.Signal[*native.TouchCancelEvent]
	Frame  signal.Signal[struct{}]
}

// TabletEvents mirror the signals of a wlr_tablet.
type TabletEvents struct {
	Axis      signal.Signal[*native.TabletToolAxisEvent]
	Proximity signal.Signal[*native.TabletToolProximityEvent]
	Tip       signal.Signal[*native.TabletToolTipEvent]
	Button    signal.Signal[*native.TabletToolButtonEvent]
}

// InputDevice is a virtual input device. Emitting on its signals plays the
// role of the kernel delivering input.
type InputDevice struct {
	deviceType native.InputDeviceType
	name       string

	Pointer PointerEvents
	Touch   TouchEvents
	Tablet  TabletEvents
}

var _ native.InputDevice = (*InputDevice)(nil)

func (d *InputDevice) DeviceType() native.InputDeviceType { return d.deviceType }
func (d *InputDevice) DeviceName() string                 { return d.name }
