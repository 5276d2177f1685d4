package native

import "github.com/bnema/wlrwrap/signal"

// InputDeviceType mirrors enum wlr_input_device_type.
type InputDeviceType int

const (
	DeviceKeyboard InputDeviceType = iota
	DevicePointer
	DeviceTouch
	DeviceTabletTool
	DeviceTabletPad
	DeviceSwitch
)

func (t InputDeviceType) String() string {
	switch t {
	case DeviceKeyboard:
		return "keyboard"
	case DevicePointer:
		return "pointer"
	case DeviceTouch:
		return "touch"
	case DeviceTabletTool:
		return "tablet-tool"
	case DeviceTabletPad:
		return "tablet-pad"
	case DeviceSwitch:
		return "switch"
	default:
		return "unknown"
	}
}

// ButtonState mirrors enum wlr_button_state.
type ButtonState uint32

const (
	ButtonReleased ButtonState = iota
	ButtonPressed
)

// AxisSource mirrors enum wlr_axis_source.
type AxisSource uint32

const (
	AxisSourceWheel AxisSource = iota
	AxisSourceFinger
	AxisSourceContinuous
	AxisSourceWheelTilt
)

// AxisOrientation mirrors enum wlr_axis_orientation.
type AxisOrientation uint32

const (
	AxisVertical AxisOrientation = iota
	AxisHorizontal
)

// TabletToolType mirrors enum wlr_tablet_tool_type.
type TabletToolType uint32

const (
	ToolPen TabletToolType = iota + 1
	ToolEraser
	ToolBrush
	ToolPencil
	ToolAirbrush
	ToolMouse
	ToolLens
	ToolTotem
)

// TabletToolAxes is the bitmask in TabletToolAxisEvent.UpdatedAxes.
type TabletToolAxes uint32

const (
	AxisX TabletToolAxes = 1 << iota
	AxisY
	AxisDistance
	AxisPressure
	AxisTiltX
	AxisTiltY
	AxisRotation
	AxisSlider
	AxisWheel
)

// TabletToolProximityState mirrors enum wlr_tablet_tool_proximity_state.
type TabletToolProximityState uint32

const (
	ProximityOut TabletToolProximityState = iota
	ProximityIn
)

// TabletToolTipState mirrors enum wlr_tablet_tool_tip_state.
type TabletToolTipState uint32

const (
	TipUp TabletToolTipState = iota
	TipDown
)

type PointerMotionEvent struct {
	Device    InputDevice
	TimeMsec  uint32
	DeltaX    float64
	DeltaY    float64
	UnaccelDX float64
	UnaccelDY float64
}

// PointerMotionAbsoluteEvent carries X and Y normalized to [0, 1].
type PointerMotionAbsoluteEvent struct {
	Device   InputDevice
	TimeMsec uint32
	X        float64
	Y        float64
}

type PointerButtonEvent struct {
	Device   InputDevice
	TimeMsec uint32
	Button   uint32
	State    ButtonState
}

type PointerAxisEvent struct {
	Device        InputDevice
	TimeMsec      uint32
	Source        AxisSource
	Orientation   AxisOrientation
	Delta         float64
	DeltaDiscrete int32
}

type PointerSwipeBeginEvent struct {
	Device   InputDevice
	TimeMsec uint32
	Fingers  uint32
}

type PointerSwipeUpdateEvent struct {
	Device   InputDevice
	TimeMsec uint32
	Fingers  uint32
	DX       float64
	DY       float64
}

type PointerSwipeEndEvent struct {
	Device    InputDevice
	TimeMsec  uint32
	Cancelled bool
}

type PointerPinchBeginEvent struct {
	Device   InputDevice
	TimeMsec uint32
	Fingers  uint32
}

type PointerPinchUpdateEvent struct {
	Device   InputDevice
	TimeMsec uint32
	Fingers  uint32
	DX       float64
	DY       float64
	Scale    float64
	Rotation float64
}

type PointerPinchEndEvent struct {
	Device    InputDevice
	TimeMsec  uint32
	Cancelled bool
}

type PointerHoldBeginEvent struct {
	Device   InputDevice
	TimeMsec uint32
	Fingers  uint32
}

type PointerHoldEndEvent struct {
	Device    InputDevice
	TimeMsec  uint32
	Cancelled bool
}

type TouchUpEvent struct {
	Device   InputDevice
	TimeMsec uint32
	TouchID  int32
}

type TouchDownEvent struct {
	Device   InputDevice
	TimeMsec uint32
	TouchID  int32
	X        float64
	Y        float64
}

type TouchMotionEvent struct {
	Device   InputDevice
	TimeMsec uint32
	TouchID  int32
	X        float64
	Y        float64
}

type TouchCancelEvent struct {
	Device   InputDevice
	TimeMsec uint32
	TouchID  int32
}

type TabletToolAxisEvent struct {
	Device      InputDevice
	Tool        TabletTool
	TimeMsec    uint32
	UpdatedAxes TabletToolAxes
	X           float64
	Y           float64
	DX          float64
	DY          float64
	Pressure    float64
	Distance    float64
	TiltX       float64
	TiltY       float64
	Rotation    float64
	Slider      float64
	WheelDelta  float64
}

type TabletToolProximityEvent struct {
	Device   InputDevice
	Tool     TabletTool
	TimeMsec uint32
	X        float64
	Y        float64
	State    TabletToolProximityState
}

type TabletToolTipEvent struct {
	Device   InputDevice
	Tool     TabletTool
	TimeMsec uint32
	X        float64
	Y        float64
	State    TabletToolTipState
}

type TabletToolButtonEvent struct {
	Device   InputDevice
	Tool     TabletTool
	TimeMsec uint32
	Button   uint32
	State    ButtonState
}

// CursorEvents are the signals a native cursor emits. Frame carries the
// emitting cursor and TouchFrame carries nothing, as in wlroots.
type CursorEvents struct {
	Motion         signal.Signal[*PointerMotionEvent]
	MotionAbsolute signal.Signal[*PointerMotionAbsoluteEvent]
	Button         signal.Signal[*PointerButtonEvent]
	Axis           signal.Signal[*PointerAxisEvent]
	Frame          signal.Signal[Cursor]

	SwipeBegin  signal.Signal[*PointerSwipeBeginEvent]
	SwipeUpdate signal.Signal[*PointerSwipeUpdateEvent]
	SwipeEnd    signal.Signal[*PointerSwipeEndEvent]
	PinchBegin  signal.Signal[*PointerPinchBeginEvent]
	PinchUpdate signal.Signal[*PointerPinchUpdateEvent]
	PinchEnd    signal.Signal[*PointerPinchEndEvent]
	HoldBegin   signal.Signal[*PointerHoldBeginEvent]
	HoldEnd     signal.Signal[*PointerHoldEndEvent]

	TouchUp     signal.Signal[*TouchUpEvent]
	TouchDown   signal.Signal[*TouchDownEvent]
	TouchMotion signal.Signal[*TouchMotionEvent]
	TouchCancel signal.Signal[*TouchCancelEvent]
	TouchFrame  signal.Signal[struct{}]

	TabletToolAxis      signal.Signal[*TabletToolAxisEvent]
	TabletToolProximity signal.Signal[*TabletToolProximityEvent]
	TabletToolTip       signal.Signal[*TabletToolTipEvent]
	TabletToolButton    signal.Signal[*TabletToolButtonEvent]
}
