// Package cursor wraps a native cursor.
//
// A Cursor owns the native cursor it creates. At construction it subscribes
// to all 22 native event channels and re-emits every event unchanged on its
// own Events. Destroying the cursor drops those subscriptions before the
// native cursor is released, so no notification can fire during or after
// teardown.
package cursor

import (
	"image"
	"image/draw"

	"github.com/bnema/wlrwrap/geom"
	"github.com/bnema/wlrwrap/internal/logger"
	"github.com/bnema/wlrwrap/internal/object"
	"github.com/bnema/wlrwrap/layout"
	"github.com/bnema/wlrwrap/native"
	"github.com/bnema/wlrwrap/signal"
)

// Events are the notifications a Cursor re-emits. The frame channels carry no
// payload.
type Events struct {
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

	TouchUp     signal.Signal[*native.TouchUpEvent]
	TouchDown   signal.Signal[*native.TouchDownEvent]
	TouchMotion signal.Signal[*native.TouchMotionEvent]
	TouchCancel signal.Signal[*native.TouchCancelEvent]
	TouchFrame  signal.Signal[struct{}]

	TabletToolAxis      signal.Signal[*native.TabletToolAxisEvent]
	TabletToolProximity signal.Signal[*native.TabletToolProximityEvent]
	TabletToolTip       signal.Signal[*native.TabletToolTipEvent]
	TabletToolButton    signal.Signal[*native.TabletToolButtonEvent]
}

// Cursor is an owning wrapper around a native.Cursor.
type Cursor struct {
	*object.Object
	handle native.Cursor
	conns  signal.Connector
	events Events
}

// Create allocates a native cursor through lib. It returns nil when the
// allocation fails.
func Create(lib native.Library) *Cursor {
	h := lib.CreateCursor()
	if h == nil {
		logger.Debug("Library could not allocate a cursor")
		return nil
	}

	c := &Cursor{handle: h}
	c.Object = object.New(object.Owned, h.Destroy)
	c.OnTeardown(c.conns.Invalidate)
	c.subscribe()
	return c
}

func (c *Cursor) subscribe() {
	src, dst := c.handle.Events(), &c.events

	signal.Connect(&c.conns, &src.Motion, dst.Motion.Emit)
	signal.Connect(&c.conns, &src.MotionAbsolute, dst.MotionAbsolute.Emit)
	signal.Connect(&c.conns, &src.Button, dst.Button.Emit)
	signal.Connect(&c.conns, &src.Axis, dst.Axis.Emit)
	signal.Connect(&c.conns, &src.Frame, func(native.Cursor) { dst.Frame.Emit(struct{}{}) })

	signal.Connect(&c.conns, &src.SwipeBegin, dst.SwipeBegin.Emit)
	signal.Connect(&c.conns, &src.SwipeUpdate, dst.SwipeUpdate.Emit)
	signal.Connect(&c.conns, &src.SwipeEnd, dst.SwipeEnd.Emit)
	signal.Connect(&c.conns, &src.PinchBegin, dst.PinchBegin.Emit)
	signal.Connect(&c.conns, &src.PinchUpdate, dst.PinchUpdate.Emit)
	signal.Connect(&c.conns, &src.PinchEnd, dst.PinchEnd.Emit)
	signal.Connect(&c.conns, &src.HoldBegin, dst.HoldBegin.Emit)
	signal.Connect(&c.conns, &src.HoldEnd, dst.HoldEnd.Emit)

	signal.Connect(&c.conns, &src.TouchUp, dst.TouchUp.Emit)
	signal.Connect(&c.conns, &src.TouchDown, dst.TouchDown.Emit)
	signal.Connect(&c.conns, &src.TouchMotion, dst.TouchMotion.Emit)
	signal.Connect(&c.conns, &src.TouchCancel, dst.TouchCancel.Emit)
	signal.Connect(&c.conns, &src.TouchFrame, dst.TouchFrame.Emit)

	signal.Connect(&c.conns, &src.TabletToolAxis, dst.TabletToolAxis.Emit)
	signal.Connect(&c.conns, &src.TabletToolProximity, dst.TabletToolProximity.Emit)
	signal.Connect(&c.conns, &src.TabletToolTip, dst.TabletToolTip.Emit)
	signal.Connect(&c.conns, &src.TabletToolButton, dst.TabletToolButton.Emit)
}

// Handle returns the native cursor.
func (c *Cursor) Handle() native.Cursor {
	return c.handle
}

// Events returns the re-emitted notifications.
func (c *Cursor) Events() *Events {
	return &c.events
}

// Subscriptions returns the number of live native subscriptions.
func (c *Cursor) Subscriptions() int {
	return c.conns.Len()
}

// Position returns the cursor position in layout coordinates.
func (c *Cursor) Position() geom.Point {
	x, y := c.handle.Position()
	return geom.Pt(x, y)
}

// Warp moves the cursor to p if p lies inside the area dev is mapped to.
// It reports whether the cursor moved.
func (c *Cursor) Warp(dev native.InputDevice, p geom.Point) bool {
	return c.handle.Warp(dev, p.X, p.Y)
}

// WarpClosest moves the cursor to the valid position closest to p.
func (c *Cursor) WarpClosest(dev native.InputDevice, p geom.Point) {
	c.handle.WarpClosest(dev, p.X, p.Y)
}

// WarpAbsolute moves the cursor to p given in normalized [0, 1] coordinates.
func (c *Cursor) WarpAbsolute(dev native.InputDevice, p geom.Point) {
	c.handle.WarpAbsolute(dev, p.X, p.Y)
}

// Move moves the cursor by delta.
func (c *Cursor) Move(dev native.InputDevice, delta geom.Point) {
	c.handle.Move(dev, delta.X, delta.Y)
}

// SetImage sets the cursor image. The pixels are copied by the native cursor
// during the call, so img can be reused afterwards. A nil image hides the
// cursor.
func (c *Cursor) SetImage(img image.Image, hotspot image.Point, scale float32) {
	if img == nil {
		c.handle.SetImage(nil, 0, 0, 0, int32(hotspot.X), int32(hotspot.Y), scale)
		return
	}
	argb := toARGB(img)
	b := img.Bounds()
	c.handle.SetImage(argb, int32(b.Dx()*4), uint32(b.Dx()), uint32(b.Dy()),
		int32(hotspot.X), int32(hotspot.Y), scale)
}

// SetImagePixels passes raw ARGB8888 pixels through unchanged.
func (c *Cursor) SetImagePixels(pixels []byte, stride int32, width, height uint32, hotspot image.Point, scale float32) {
	c.handle.SetImage(pixels, stride, width, height, int32(hotspot.X), int32(hotspot.Y), scale)
}

// SetSurface uses a client surface as the cursor image.
func (c *Cursor) SetSurface(surface native.Surface, hotspot image.Point) {
	c.handle.SetSurface(surface, int32(hotspot.X), int32(hotspot.Y))
}

// AttachInputDevice makes dev drive this cursor.
func (c *Cursor) AttachInputDevice(dev native.InputDevice) {
	c.handle.AttachInputDevice(dev)
}

// DetachInputDevice stops dev from driving this cursor.
func (c *Cursor) DetachInputDevice(dev native.InputDevice) {
	c.handle.DetachInputDevice(dev)
}

// AttachOutputLayout sets the layout used for clamping. Nil detaches it.
func (c *Cursor) AttachOutputLayout(l *layout.OutputLayout) {
	if l == nil {
		c.handle.AttachOutputLayout(nil)
		return
	}
	c.handle.AttachOutputLayout(l.Handle())
}

// MapToOutput confines the cursor to output. Nil removes the mapping.
func (c *Cursor) MapToOutput(output native.Output) {
	c.handle.MapToOutput(output)
}

// MapInputToOutput confines events from dev to output. Nil removes the mapping.
func (c *Cursor) MapInputToOutput(dev native.InputDevice, output native.Output) {
	c.handle.MapInputToOutput(dev, output)
}

// MapToRegion confines the cursor to rect. An empty rect removes the mapping.
func (c *Cursor) MapToRegion(rect image.Rectangle) {
	c.handle.MapToRegion(regionBox(rect))
}

// MapInputToRegion confines events from dev to rect. An empty rect removes
// the mapping.
func (c *Cursor) MapInputToRegion(dev native.InputDevice, rect image.Rectangle) {
	c.handle.MapInputToRegion(dev, regionBox(rect))
}

func regionBox(rect image.Rectangle) *geom.Box {
	if rect.Empty() {
		return nil
	}
	box := geom.BoxFromRect(rect)
	return &box
}

// toARGB encodes img as premultiplied ARGB8888 (B, G, R, A in memory).
func toARGB(img image.Image) []byte {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) || rgba.Stride != b.Dx()*4 {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	}

	out := make([]byte, b.Dx()*b.Dy()*4)
	for i := 0; i < len(out); i += 4 {
		out[i+0] = rgba.Pix[i+2]
		out[i+1] = rgba.Pix[i+1]
		out[i+2] = rgba.Pix[i+0]
		out[i+3] = rgba.Pix[i+3]
	}
	return out
}
