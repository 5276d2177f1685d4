package headless

import (
	"math"
	"testing"

	"github.com/bnema/wlrwrap/geom"
	"github.com/bnema/wlrwrap/native"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cursorFixture struct {
	lib    *Library
	cursor *Cursor
	layout *OutputLayout
	left   *Output
	right  *Output
	ptr    *InputDevice
}

// newCursorFixture builds two 100x100 outputs side by side.
func newCursorFixture(t *testing.T) *cursorFixture {
	t.Helper()
	lib := quietLibrary()
	b := lib.NewBackend()

	f := &cursorFixture{
		lib:    lib,
		cursor: lib.CreateCursor().(*Cursor),
		layout: lib.CreateOutputLayout().(*OutputLayout),
		left:   b.NewOutput("HEADLESS-1", 100, 100, 1),
		right:  b.NewOutput("HEADLESS-2", 100, 100, 1),
		ptr:    b.NewInputDevice(native.DevicePointer, "pointer"),
	}
	f.layout.Add(f.left, 0, 0)
	f.layout.Add(f.right, 100, 0)
	f.cursor.AttachOutputLayout(f.layout)
	return f
}

func position(c *Cursor) geom.Point {
	x, y := c.Position()
	return geom.Pt(x, y)
}

func TestCursorAllocationFailure(t *testing.T) {
	lib := quietLibrary(WithCursorAllocFailure())
	assert.Nil(t, lib.CreateCursor())
}

func TestCursorWarp(t *testing.T) {
	f := newCursorFixture(t)

	assert.True(t, f.cursor.Warp(nil, 150, 50))
	assert.Equal(t, geom.Pt(150, 50), position(f.cursor))

	assert.False(t, f.cursor.Warp(nil, 200, 50), "right edge is outside")
	assert.False(t, f.cursor.Warp(nil, -1, 50))
	assert.Equal(t, geom.Pt(150, 50), position(f.cursor), "failed warp does not move")

	f.cursor.MapToRegion(&geom.Box{X: 10, Y: 10, Width: 20, Height: 20})
	assert.False(t, f.cursor.Warp(nil, 50, 50), "outside mapped region")
	assert.True(t, f.cursor.Warp(nil, 15, 15))
}

func TestCursorWarpWithoutLayout(t *testing.T) {
	c := quietLibrary().CreateCursor()
	assert.False(t, c.Warp(nil, 0, 0))
	c.WarpClosest(nil, 10, 10)
	x, y := c.Position()
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestCursorWarpClosest(t *testing.T) {
	f := newCursorFixture(t)

	f.cursor.WarpClosest(nil, 500, -20)
	x, y := f.cursor.Position()
	assert.InDelta(t, 200, x, 0.001)
	assert.Equal(t, 0.0, y)
	assert.True(t, f.layout.ContainsPoint(nil, x, y))

	empty := quietLibrary().CreateOutputLayout()
	f.cursor.AttachOutputLayout(empty)
	f.cursor.WarpClosest(nil, 42, 42)
	assert.Equal(t, geom.Pt(0, 0), position(f.cursor), "empty layout warps to the origin")
}

func TestCursorMappingPriority(t *testing.T) {
	f := newCursorFixture(t)
	f.cursor.AttachInputDevice(f.ptr)

	f.cursor.MapToOutput(f.right)
	f.cursor.WarpClosest(f.ptr, 0, 0)
	assert.Equal(t, geom.Pt(100, 0), position(f.cursor), "cursor output mapping")

	f.cursor.MapToRegion(&geom.Box{X: 20, Y: 20, Width: 10, Height: 10})
	f.cursor.WarpClosest(f.ptr, 0, 0)
	assert.Equal(t, geom.Pt(20, 20), position(f.cursor), "cursor region beats cursor output")

	f.cursor.MapInputToOutput(f.ptr, f.left)
	f.cursor.WarpClosest(f.ptr, 150, 50)
	assert.InDelta(t, 100, position(f.cursor).X, 0.001, "device output beats cursor region")

	f.cursor.MapInputToRegion(f.ptr, &geom.Box{X: 50, Y: 50, Width: 5, Height: 5})
	f.cursor.WarpClosest(f.ptr, 0, 0)
	assert.Equal(t, geom.Pt(50, 50), position(f.cursor), "device region beats everything")

	f.cursor.MapInputToRegion(f.ptr, nil)
	f.cursor.WarpClosest(f.ptr, 0, 0)
	assert.Equal(t, geom.Pt(0, 0), position(f.cursor), "cleared region falls back to device output")

	// A device without its own mapping uses the cursor mapping.
	f.cursor.WarpClosest(nil, 0, 0)
	assert.Equal(t, geom.Pt(20, 20), position(f.cursor))
}

func TestCursorMapUnattachedDevice(t *testing.T) {
	f := newCursorFixture(t)

	f.cursor.MapInputToRegion(f.ptr, &geom.Box{X: 50, Y: 50, Width: 5, Height: 5})
	f.cursor.MapInputToOutput(f.ptr, f.right)

	f.cursor.WarpClosest(f.ptr, 0, 0)
	assert.Equal(t, geom.Pt(0, 0), position(f.cursor), "mapping an unattached device is ignored")
}

func TestCursorWarpAbsolute(t *testing.T) {
	f := newCursorFixture(t)

	f.cursor.WarpAbsolute(nil, 0.5, 0.5)
	assert.Equal(t, geom.Pt(100, 50), position(f.cursor))

	f.cursor.WarpAbsolute(nil, math.NaN(), 0.25)
	assert.Equal(t, geom.Pt(100, 25), position(f.cursor), "NaN keeps the current x")

	f.cursor.MapToOutput(f.right)
	f.cursor.WarpAbsolute(nil, 0, 1)
	x, y := f.cursor.Position()
	assert.Equal(t, 100.0, x)
	assert.InDelta(t, 100, y, 0.001)
}

func TestCursorMove(t *testing.T) {
	f := newCursorFixture(t)
	require.True(t, f.cursor.Warp(nil, 10, 10))

	f.cursor.Move(nil, 5, -3)
	assert.Equal(t, geom.Pt(15, 7), position(f.cursor))

	f.cursor.Move(nil, math.NaN(), 1)
	assert.Equal(t, geom.Pt(15, 8), position(f.cursor))

	f.cursor.Move(nil, -100, 0)
	assert.Equal(t, geom.Pt(0, 8), position(f.cursor), "clamped to the layout")
}

func TestCursorSetImageCopiesPixels(t *testing.T) {
	c := quietLibrary().CreateCursor().(*Cursor)

	pixels := []byte{1, 2, 3, 4}
	c.SetImage(pixels, 4, 1, 1, 0, 0, 2)
	pixels[0] = 99

	img := c.Image()
	assert.Equal(t, []byte{1, 2, 3, 4}, img.Pixels)
	assert.Equal(t, float32(2), img.Scale)

	img.Pixels[1] = 99
	assert.Equal(t, byte(2), c.Image().Pixels[1], "Image returns a copy")

	surface := quietLibrary().NewSurface(24, 24)
	c.SetSurface(surface, 4, 4)
	img = c.Image()
	assert.Empty(t, img.Pixels)
	assert.Same(t, surface, img.Surface)
	assert.Equal(t, uint32(24), img.Width)
}

func TestCursorForwardsPointerEvents(t *testing.T) {
	f := newCursorFixture(t)
	f.cursor.AttachInputDevice(f.ptr)
	ev := f.cursor.Events()

	var motion *native.PointerMotionEvent
	var frames []native.Cursor
	ev.Motion.Connect(func(e *native.PointerMotionEvent) { motion = e })
	ev.Frame.Connect(func(c native.Cursor) { frames = append(frames, c) })

	sent := &native.PointerMotionEvent{Device: f.ptr, DeltaX: 3}
	f.ptr.Pointer.Motion.Emit(sent)
	f.ptr.Pointer.Frame.Emit(struct{}{})

	assert.Same(t, sent, motion, "payload is forwarded unchanged")
	require.Len(t, frames, 1)
	assert.Same(t, f.cursor, frames[0])

	f.cursor.DetachInputDevice(f.ptr)
	f.ptr.Pointer.Frame.Emit(struct{}{})
	assert.Len(t, frames, 1, "detached device is not forwarded")
	assert.False(t, f.cursor.Attached(f.ptr))
}

func TestCursorForwardsTouchAndTablet(t *testing.T) {
	lib := quietLibrary()
	b := lib.NewBackend()
	c := lib.CreateCursor().(*Cursor)
	touch := b.NewInputDevice(native.DeviceTouch, "touch")
	tablet := b.NewInputDevice(native.DeviceTabletTool, "tablet")
	c.AttachInputDevice(touch)
	c.AttachInputDevice(tablet)

	var touchFrames int
	var tip *native.TabletToolTipEvent
	c.Events().TouchFrame.Connect(func(struct{}) { touchFrames++ })
	c.Events().TabletToolTip.Connect(func(e *native.TabletToolTipEvent) { tip = e })

	touch.Touch.Frame.Emit(struct{}{})
	sent := &native.TabletToolTipEvent{Device: tablet, Tool: lib.NewTabletTool(native.ToolPen, 7), State: native.TipDown}
	tablet.Tablet.Tip.Emit(sent)

	assert.Equal(t, 1, touchFrames)
	assert.Same(t, sent, tip)
}

func TestCursorRejectsUnsupportedDevices(t *testing.T) {
	lib := quietLibrary()
	b := lib.NewBackend()
	c := lib.CreateCursor().(*Cursor)

	for _, typ := range []native.InputDeviceType{native.DeviceKeyboard, native.DeviceTabletPad, native.DeviceSwitch} {
		t.Run(typ.String(), func(t *testing.T) {
			dev := b.NewInputDevice(typ, typ.String())
			c.AttachInputDevice(dev)
			assert.False(t, c.Attached(dev))
		})
	}
}

func TestCursorDestroyStopsForwarding(t *testing.T) {
	f := newCursorFixture(t)
	f.cursor.AttachInputDevice(f.ptr)

	var calls int
	f.cursor.Events().Button.Connect(func(*native.PointerButtonEvent) { calls++ })

	f.cursor.Destroy()
	f.ptr.Pointer.Button.Emit(&native.PointerButtonEvent{Device: f.ptr})

	assert.Zero(t, calls)
	assert.Zero(t, f.ptr.Pointer.Button.Len(), "device listeners removed")
	assert.True(t, f.cursor.Destroyed())
}

func TestCursorDetachesDestroyedLayout(t *testing.T) {
	f := newCursorFixture(t)
	require.True(t, f.cursor.Warp(nil, 50, 50))

	f.layout.Destroy()

	assert.Nil(t, f.cursor.Layout())
	assert.False(t, f.cursor.Warp(nil, 60, 60))
	f.cursor.WarpAbsolute(nil, 0.5, 0.5)
	assert.Equal(t, geom.Pt(50, 50), position(f.cursor), "no layout, no movement")
	assert.Zero(t, f.layout.Events().Destroy.Len())
}

func TestCursorReattachDropsOldLayoutListener(t *testing.T) {
	f := newCursorFixture(t)
	other := f.lib.CreateOutputLayout().(*OutputLayout)
	other.Add(f.left, 0, 0)

	f.cursor.AttachOutputLayout(other)
	assert.Zero(t, f.layout.Events().Destroy.Len())
	assert.Equal(t, 1, other.Events().Destroy.Len())

	f.layout.Destroy()
	assert.Same(t, other, f.cursor.Layout(), "destroying a detached layout changes nothing")

	f.cursor.Destroy()
	assert.Zero(t, other.Events().Destroy.Len(), "cursor destroy drops the listener")
}
