package cursor

import (
	"bytes"
	"image"
	"image/color"
	"io"
	"testing"

	"github.com/bnema/wlrwrap/geom"
	"github.com/bnema/wlrwrap/internal/logger"
	"github.com/bnema/wlrwrap/layout"
	"github.com/bnema/wlrwrap/native"
	"github.com/bnema/wlrwrap/native/headless"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLibrary(opts ...headless.Option) *headless.Library {
	return headless.New(append([]headless.Option{headless.WithLogger(log.New(io.Discard))}, opts...)...)
}

// channel pairs a native emission with the wrapper notification it should
// produce. connect records the payload under name.
type channel struct {
	name    string
	emit    func(ev *native.CursorEvents)
	connect func(ev *Events, record func(name string, payload any))
	payload any
}

func channels(h native.Cursor) []channel {
	motion := &native.PointerMotionEvent{DeltaX: 1}
	motionAbs := &native.PointerMotionAbsoluteEvent{X: 0.5}
	button := &native.PointerButtonEvent{Button: 272, State: native.ButtonPressed}
	axis := &native.PointerAxisEvent{Delta: 15}
	swipeBegin := &native.PointerSwipeBeginEvent{Fingers: 3}
	swipeUpdate := &native.PointerSwipeUpdateEvent{DX: 2}
	swipeEnd := &native.PointerSwipeEndEvent{Cancelled: true}
	pinchBegin := &native.PointerPinchBeginEvent{Fingers: 2}
	pinchUpdate := &native.PointerPinchUpdateEvent{Scale: 1.5}
	pinchEnd := &native.PointerPinchEndEvent{}
	holdBegin := &native.PointerHoldBeginEvent{Fingers: 4}
	holdEnd := &native.PointerHoldEndEvent{}
	touchUp := &native.TouchUpEvent{TouchID: 1}
	touchDown := &native.TouchDownEvent{TouchID: 1, X: 0.1}
	touchMotion := &native.TouchMotionEvent{TouchID: 1, Y: 0.2}
	touchCancel := &native.TouchCancelEvent{TouchID: 1}
	toolAxis := &native.TabletToolAxisEvent{UpdatedAxes: native.AxisX | native.AxisPressure}
	toolProx := &native.TabletToolProximityEvent{State: native.ProximityIn}
	toolTip := &native.TabletToolTipEvent{State: native.TipDown}
	toolButton := &native.TabletToolButtonEvent{Button: 331}

	return []channel{
		{"motion",
			func(ev *native.CursorEvents) { ev.Motion.Emit(motion) },
			func(ev *Events, rec func(string, any)) {
				ev.Motion.Connect(func(e *native.PointerMotionEvent) { rec("motion", e) })
			}, motion},
		{"motion_absolute",
			func(ev *native.CursorEvents) { ev.MotionAbsolute.Emit(motionAbs) },
			func(ev *Events, rec func(string, any)) {
				ev.MotionAbsolute.Connect(func(e *native.PointerMotionAbsoluteEvent) { rec("motion_absolute", e) })
			}, motionAbs},
		{"button",
			func(ev *native.CursorEvents) { ev.Button.Emit(button) },
			func(ev *Events, rec func(string, any)) {
				ev.Button.Connect(func(e *native.PointerButtonEvent) { rec("button", e) })
			}, button},
		{"axis",
			func(ev *native.CursorEvents) { ev.Axis.Emit(axis) },
			func(ev *Events, rec func(string, any)) {
				ev.Axis.Connect(func(e *native.PointerAxisEvent) { rec("axis", e) })
			}, axis},
		{"frame",
			func(ev *native.CursorEvents) { ev.Frame.Emit(h) },
			func(ev *Events, rec func(string, any)) {
				ev.Frame.Connect(func(struct{}) { rec("frame", nil) })
			}, nil},
		{"swipe_begin",
			func(ev *native.CursorEvents) { ev.SwipeBegin.Emit(swipeBegin) },
			func(ev *Events, rec func(string, any)) {
				ev.SwipeBegin.Connect(func(e *native.PointerSwipeBeginEvent) { rec("swipe_begin", e) })
			}, swipeBegin},
		{"swipe_update",
			func(ev *native.CursorEvents) { ev.SwipeUpdate.Emit(swipeUpdate) },
			func(ev *Events, rec func(string, any)) {
				ev.SwipeUpdate.Connect(func(e *native.PointerSwipeUpdateEvent) { rec("swipe_update", e) })
			}, swipeUpdate},
		{"swipe_end",
			func(ev *native.CursorEvents) { ev.SwipeEnd.Emit(swipeEnd) },
			func(ev *Events, rec func(string, any)) {
				ev.SwipeEnd.Connect(func(e *native.PointerSwipeEndEvent) { rec("swipe_end", e) })
			}, swipeEnd},
		{"pinch_begin",
			func(ev *native.CursorEvents) { ev.PinchBegin.Emit(pinchBegin) },
			func(ev *Events, rec func(string, any)) {
				ev.PinchBegin.Connect(func(e *native.PointerPinchBeginEvent) { rec("pinch_begin", e) })
			}, pinchBegin},
		{"pinch_update",
			func(ev *native.CursorEvents) { ev.PinchUpdate.Emit(pinchUpdate) },
			func(ev *Events, rec func(string, any)) {
				ev.PinchUpdate.Connect(func(e *native.PointerPinchUpdateEvent) { rec("pinch_update", e) })
			}, pinchUpdate},
		{"pinch_end",
			func(ev *native.CursorEvents) { ev.PinchEnd.Emit(pinchEnd) },
			func(ev *Events, rec func(string, any)) {
				ev.PinchEnd.Connect(func(e *native.PointerPinchEndEvent) { rec("pinch_end", e) })
			}, pinchEnd},
		{"hold_begin",
			func(ev *native.CursorEvents) { ev.HoldBegin.Emit(holdBegin) },
			func(ev *Events, rec func(string, any)) {
				ev.HoldBegin.Connect(func(e *native.PointerHoldBeginEvent) { rec("hold_begin", e) })
			}, holdBegin},
		{"hold_end",
			func(ev *native.CursorEvents) { ev.HoldEnd.Emit(holdEnd) },
			func(ev *Events, rec func(string, any)) {
				ev.HoldEnd.Connect(func(e *native.PointerHoldEndEvent) { rec("hold_end", e) })
			}, holdEnd},
		{"touch_up",
			func(ev *native.CursorEvents) { ev.TouchUp.Emit(touchUp) },
			func(ev *Events, rec func(string, any)) {
				ev.TouchUp.Connect(func(e *native.TouchUpEvent) { rec("touch_up", e) })
			}, touchUp},
		{"touch_down",
			func(ev *native.CursorEvents) { ev.TouchDown.Emit(touchDown) },
			func(ev *Events, rec func(string, any)) {
				ev.TouchDown.Connect(func(e *native.TouchDownEvent) { rec("touch_down", e) })
			}, touchDown},
		{"touch_motion",
			func(ev *native.CursorEvents) { ev.TouchMotion.Emit(touchMotion) },
			func(ev *Events, rec func(string, any)) {
				ev.TouchMotion.Connect(func(e *native.TouchMotionEvent) { rec("touch_motion", e) })
			}, touchMotion},
		{"touch_cancel",
			func(ev *native.CursorEvents) { ev.TouchCancel.Emit(touchCancel) },
			func(ev *Events, rec func(string, any)) {
				ev.TouchCancel.Connect(func(e *native.TouchCancelEvent) { rec("touch_cancel", e) })
			}, touchCancel},
		{"touch_frame",
			func(ev *native.CursorEvents) { ev.TouchFrame.Emit(struct{}{}) },
			func(ev *Events, rec func(string, any)) {
				ev.TouchFrame.Connect(func(struct{}) { rec("touch_frame", nil) })
			}, nil},
		{"tablet_tool_axis",
			func(ev *native.CursorEvents) { ev.TabletToolAxis.Emit(toolAxis) },
			func(ev *Events, rec func(string, any)) {
				ev.TabletToolAxis.Connect(func(e *native.TabletToolAxisEvent) { rec("tablet_tool_axis", e) })
			}, toolAxis},
		{"tablet_tool_proximity",
			func(ev *native.CursorEvents) { ev.TabletToolProximity.Emit(toolProx) },
			func(ev *Events, rec func(string, any)) {
				ev.TabletToolProximity.Connect(func(e *native.TabletToolProximityEvent) { rec("tablet_tool_proximity", e) })
			}, toolProx},
		{"tablet_tool_tip",
			func(ev *native.CursorEvents) { ev.TabletToolTip.Emit(toolTip) },
			func(ev *Events, rec func(string, any)) {
				ev.TabletToolTip.Connect(func(e *native.TabletToolTipEvent) { rec("tablet_tool_tip", e) })
			}, toolTip},
		{"tablet_tool_button",
			func(ev *native.CursorEvents) { ev.TabletToolButton.Emit(toolButton) },
			func(ev *Events, rec func(string, any)) {
				ev.TabletToolButton.Connect(func(e *native.TabletToolButtonEvent) { rec("tablet_tool_button", e) })
			}, toolButton},
	}
}

type received struct {
	name    string
	payload any
}

func TestCreateAllocationFailure(t *testing.T) {
	c := Create(newLibrary(headless.WithCursorAllocFailure()))
	assert.Nil(t, c)
}

func TestCreateSubscribesAllChannels(t *testing.T) {
	c := Create(newLibrary())
	require.NotNil(t, c)
	assert.Equal(t, 22, c.Subscriptions())
	assert.True(t, c.Owned())
}

func TestReemitsEveryChannelUnchanged(t *testing.T) {
	c := Create(newLibrary())
	require.NotNil(t, c)

	chans := channels(c.Handle())
	require.Len(t, chans, 22)

	var got []received
	record := func(name string, payload any) {
		got = append(got, received{name, payload})
	}
	for _, ch := range chans {
		ch.connect(c.Events(), record)
	}

	src := c.Handle().Events()
	for _, ch := range chans {
		ch.emit(src)
	}

	require.Len(t, got, len(chans), "exactly one notification per native event")
	for i, ch := range chans {
		t.Run(ch.name, func(t *testing.T) {
			assert.Equal(t, ch.name, got[i].name, "notifications keep native order")
			if ch.payload == nil {
				assert.Nil(t, got[i].payload)
				return
			}
			assert.Same(t, ch.payload, got[i].payload, "payload is forwarded unmodified")
		})
	}
}

func TestReemitPreservesInterleavedOrder(t *testing.T) {
	lib := newLibrary()
	c := Create(lib)
	require.NotNil(t, c)

	var order []string
	c.Events().Motion.Connect(func(*native.PointerMotionEvent) { order = append(order, "motion") })
	c.Events().Button.Connect(func(*native.PointerButtonEvent) { order = append(order, "button") })
	c.Events().Frame.Connect(func(struct{}) { order = append(order, "frame") })

	ptr := lib.NewBackend().NewInputDevice(native.DevicePointer, "pointer")
	c.AttachInputDevice(ptr)

	ptr.Pointer.Motion.Emit(&native.PointerMotionEvent{Device: ptr})
	ptr.Pointer.Motion.Emit(&native.PointerMotionEvent{Device: ptr})
	ptr.Pointer.Frame.Emit(struct{}{})
	ptr.Pointer.Button.Emit(&native.PointerButtonEvent{Device: ptr})
	ptr.Pointer.Frame.Emit(struct{}{})

	assert.Equal(t, []string{"motion", "motion", "frame", "button", "frame"}, order)
}

func TestDestroyStopsNotifications(t *testing.T) {
	c := Create(newLibrary())
	require.NotNil(t, c)
	h := c.Handle().(*headless.Cursor)

	var calls int
	for _, ch := range channels(h) {
		ch.connect(c.Events(), func(string, any) { calls++ })
	}

	c.Destroy()
	assert.True(t, h.Destroyed(), "owned native cursor is destroyed")
	assert.Zero(t, c.Subscriptions())

	for _, ch := range channels(h) {
		ch.emit(h.Events())
	}
	assert.Zero(t, calls)

	c.Destroy()
}

func TestTeardownInvalidatesBeforeNativeDestroy(t *testing.T) {
	c := Create(newLibrary())
	require.NotNil(t, c)
	h := c.Handle().(*headless.Cursor)

	// A notification fired by a hook registered after construction runs
	// after the subscriptions are gone but before the native destroy.
	var fired bool
	c.Events().Motion.Connect(func(*native.PointerMotionEvent) { fired = true })
	c.OnTeardown(func() {
		assert.False(t, h.Destroyed())
		h.Events().Motion.Emit(&native.PointerMotionEvent{})
	})

	c.Destroy()
	assert.False(t, fired)
	assert.True(t, h.Destroyed())
}

func TestWarp(t *testing.T) {
	lib := newLibrary()
	b := lib.NewBackend()
	out := b.NewOutput("HEADLESS-1", 640, 480, 1)

	l := layout.Create(lib)
	require.NotNil(t, l)
	l.Add(out, 0, 0)

	c := Create(lib)
	require.NotNil(t, c)
	c.AttachOutputLayout(l)

	tests := []struct {
		name string
		p    geom.Point
		want bool
	}{
		{"inside", geom.Pt(320, 240), true},
		{"origin", geom.Pt(0, 0), true},
		{"right edge", geom.Pt(640, 10), false},
		{"far outside", geom.Pt(-50, 1000), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := c.Position()
			got := c.Warp(nil, tt.p)
			assert.Equal(t, tt.want, got)
			if got {
				assert.Equal(t, tt.p, c.Position())
			} else {
				assert.Equal(t, before, c.Position())
			}
		})
	}

	c.MapToRegion(image.Rect(100, 100, 200, 200))
	assert.False(t, c.Warp(nil, geom.Pt(50, 50)))
	assert.True(t, c.Warp(nil, geom.Pt(150, 150)))

	c.MapToRegion(image.Rectangle{})
	assert.True(t, c.Warp(nil, geom.Pt(50, 50)), "empty rect clears the region")
}

func TestMoveAndWarpAbsolute(t *testing.T) {
	lib := newLibrary()
	out := lib.NewBackend().NewOutput("HEADLESS-1", 200, 100, 1)
	l := layout.Create(lib)
	l.AddAuto(out)

	c := Create(lib)
	c.AttachOutputLayout(l)

	c.WarpAbsolute(nil, geom.Pt(0.5, 0.5))
	assert.Equal(t, geom.Pt(100, 50), c.Position())

	c.Move(nil, geom.Pt(10, -5))
	assert.Equal(t, geom.Pt(110, 45), c.Position())

	c.WarpClosest(nil, geom.Pt(-10, 20))
	assert.Equal(t, geom.Pt(0, 20), c.Position())
}

func TestSetImageRoundTrip(t *testing.T) {
	c := Create(newLibrary())
	require.NotNil(t, c)

	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{B: 128, A: 128})

	c.SetImage(img, image.Pt(1, 0), 2)
	img.Set(0, 0, color.RGBA{G: 255, A: 255})

	got := c.Handle().(*headless.Cursor).Image()
	assert.Equal(t, []byte{0, 0, 255, 255, 128, 0, 0, 128}, got.Pixels, "ARGB8888 in memory order")
	assert.Equal(t, int32(8), got.Stride)
	assert.Equal(t, uint32(2), got.Width)
	assert.Equal(t, uint32(1), got.Height)
	assert.Equal(t, int32(1), got.HotspotX)
	assert.Equal(t, float32(2), got.Scale)
}

func TestSetImagePixelsUnchanged(t *testing.T) {
	c := Create(newLibrary())
	require.NotNil(t, c)

	pixels := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	c.SetImagePixels(pixels, 8, 2, 1, image.Pt(0, 0), 1)

	assert.Equal(t, pixels, c.Handle().(*headless.Cursor).Image().Pixels)
}

func TestSetImageFromSubImage(t *testing.T) {
	c := Create(newLibrary())

	big := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	big.Set(2, 2, color.NRGBA{G: 255, A: 255})
	c.SetImage(big.SubImage(image.Rect(2, 2, 3, 3)), image.Point{}, 1)

	got := c.Handle().(*headless.Cursor).Image()
	assert.Equal(t, []byte{0, 255, 0, 255}, got.Pixels)
}

func TestAttachOutputLayout(t *testing.T) {
	lib := newLibrary()
	c := Create(lib)
	l := layout.Create(lib)

	c.AttachOutputLayout(l)
	assert.Same(t, l.Handle(), c.Handle().(*headless.Cursor).Layout())

	c.AttachOutputLayout(nil)
	assert.Nil(t, c.Handle().(*headless.Cursor).Layout())
}

func TestDestroyedLayoutIsDetached(t *testing.T) {
	lib := newLibrary()
	c := Create(lib)
	require.NotNil(t, c)
	l := layout.Create(lib)
	out := lib.NewBackend().NewOutput("HEADLESS-1", 100, 100, 1)
	l.Add(out, 0, 0)
	c.AttachOutputLayout(l)
	require.True(t, c.Warp(nil, geom.Pt(10, 10)))

	l.Destroy()

	assert.Nil(t, c.Handle().(*headless.Cursor).Layout())
	assert.False(t, c.Warp(nil, geom.Pt(20, 20)))
	assert.Equal(t, geom.Pt(10, 10), c.Position())
}

func TestCreateFailureLogsNoError(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.Logger
	logger.Logger = log.New(&buf)
	logger.Logger.SetLevel(log.InfoLevel)
	t.Cleanup(func() { logger.Logger = prev })

	assert.Nil(t, Create(newLibrary(headless.WithCursorAllocFailure())))
	assert.Empty(t, buf.String(), "the library already reports the allocation failure")
}
