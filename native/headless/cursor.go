package headless

import (
	"math"

	"github.com/bnema/wlrwrap/geom"
	"github.com/bnema/wlrwrap/native"
	"github.com/bnema/wlrwrap/signal"
)

// Image is the cursor image last set through SetImage or SetSurface.
type Image struct {
	Pixels   []byte
	Stride   int32
	Width    uint32
	Height   uint32
	HotspotX int32
	HotspotY int32
	Scale    float32
	Surface  native.Surface
}

type cursorDevice struct {
	dev          *InputDevice
	mappedBox    geom.Box
	mappedOutput native.Output
	conns        signal.Connector
}

// Cursor tracks a pointer position over an output layout and re-emits the
// input events of every attached device.
type Cursor struct {
	lib *Library

	x, y       float64
	layout     native.OutputLayout
	layoutConn signal.Connector

	devices      []*cursorDevice
	mappedBox    geom.Box
	mappedOutput native.Output

	image     Image
	events    native.CursorEvents
	destroyed bool
}

var _ native.Cursor = (*Cursor)(nil)

func newCursor(lib *Library) *Cursor {
	return &Cursor{lib: lib}
}

func (c *Cursor) Events() *native.CursorEvents {
	return &c.events
}

func (c *Cursor) Position() (float64, float64) {
	return c.x, c.y
}

// Image returns a copy of the current cursor image.
func (c *Cursor) Image() Image {
	img := c.image
	img.Pixels = append([]byte(nil), c.image.Pixels...)
	return img
}

// Layout returns the attached output layout, or nil.
func (c *Cursor) Layout() native.OutputLayout {
	return c.layout
}

// Attached reports whether dev is attached to the cursor.
func (c *Cursor) Attached(dev native.InputDevice) bool {
	return c.device(dev) != nil
}

// Destroyed reports whether Destroy has been called.
func (c *Cursor) Destroyed() bool {
	return c.destroyed
}

func (c *Cursor) device(dev native.InputDevice) *cursorDevice {
	if dev == nil {
		return nil
	}
	for _, cd := range c.devices {
		if native.InputDevice(cd.dev) == dev {
			return cd
		}
	}
	return nil
}

// mapping returns the box the device is confined to. The device mapping
// wins over the cursor mapping and a region wins over an output.
func (c *Cursor) mapping(dev native.InputDevice) geom.Box {
	if cd := c.device(dev); cd != nil {
		if !cd.mappedBox.Empty() {
			return cd.mappedBox
		}
		if cd.mappedOutput != nil {
			return c.outputBox(cd.mappedOutput)
		}
	}
	if !c.mappedBox.Empty() {
		return c.mappedBox
	}
	if c.mappedOutput != nil {
		return c.outputBox(c.mappedOutput)
	}
	return geom.Box{}
}

func (c *Cursor) outputBox(o native.Output) geom.Box {
	if c.layout == nil {
		return geom.Box{}
	}
	return c.layout.OutputBox(o)
}

func (c *Cursor) warpUnchecked(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		c.lib.log.Warn("Ignoring non-finite cursor position", "x", x, "y", y)
		return
	}
	c.x, c.y = x, y
}

// Warp moves the cursor to (x, y) if that point is inside the device
// mapping, or inside any output when there is no mapping.
func (c *Cursor) Warp(dev native.InputDevice, x, y float64) bool {
	if c.destroyed || c.layout == nil {
		return false
	}

	var ok bool
	if mapping := c.mapping(dev); !mapping.Empty() {
		ok = mapping.Contains(x, y)
	} else {
		ok = c.layout.ContainsPoint(nil, x, y)
	}
	if ok {
		c.warpUnchecked(x, y)
	}
	return ok
}

// WarpClosest moves the cursor to the point nearest (x, y) that is inside
// the mapping or the layout. With neither it moves to the origin.
func (c *Cursor) WarpClosest(dev native.InputDevice, x, y float64) {
	if c.destroyed || c.layout == nil {
		return
	}

	if mapping := c.mapping(dev); !mapping.Empty() {
		x, y = mapping.ClosestPoint(x, y)
	} else if len(c.layout.Outputs()) > 0 {
		x, y = c.layout.ClosestPoint(nil, x, y)
	} else {
		x, y = 0, 0
	}
	c.warpUnchecked(x, y)
}

// WarpAbsolute maps normalized [0, 1] coordinates onto the mapping, or the
// layout extents without one. A NaN axis keeps its current value.
func (c *Cursor) WarpAbsolute(dev native.InputDevice, x, y float64) {
	if c.destroyed || c.layout == nil {
		return
	}

	mapping := c.mapping(dev)
	if mapping.Empty() {
		mapping = c.layout.OutputBox(nil)
	}

	lx, ly := c.x, c.y
	if !math.IsNaN(x) {
		lx = float64(mapping.Width)*x + float64(mapping.X)
	}
	if !math.IsNaN(y) {
		ly = float64(mapping.Height)*y + float64(mapping.Y)
	}
	c.WarpClosest(dev, lx, ly)
}

// Move displaces the cursor. A NaN delta leaves that axis alone.
func (c *Cursor) Move(dev native.InputDevice, dx, dy float64) {
	lx, ly := c.x, c.y
	if !math.IsNaN(dx) {
		lx += dx
	}
	if !math.IsNaN(dy) {
		ly += dy
	}
	c.WarpClosest(dev, lx, ly)
}

// SetImage copies the pixel data. Nil pixels hide the cursor.
func (c *Cursor) SetImage(pixels []byte, stride int32, width, height uint32, hotspotX, hotspotY int32, scale float32) {
	if c.destroyed {
		return
	}
	c.image = Image{
		Pixels:   append([]byte(nil), pixels...),
		Stride:   stride,
		Width:    width,
		Height:   height,
		HotspotX: hotspotX,
		HotspotY: hotspotY,
		Scale:    scale,
	}
}

// SetSurface uses a client surface as the cursor image.
func (c *Cursor) SetSurface(surface native.Surface, hotspotX, hotspotY int32) {
	if c.destroyed {
		return
	}
	img := Image{Surface: surface, HotspotX: hotspotX, HotspotY: hotspotY, Scale: 1}
	if surface != nil {
		w, h := surface.Size()
		img.Width, img.Height = uint32(w), uint32(h)
	}
	c.image = img
}

// AttachInputDevice starts re-emitting the device's events on the cursor.
// Only pointer, touch and tablet tool devices can be attached.
func (c *Cursor) AttachInputDevice(dev native.InputDevice) {
	if c.destroyed || dev == nil {
		return
	}
	switch dev.DeviceType() {
	case native.DevicePointer, native.DeviceTouch, native.DeviceTabletTool:
	default:
		c.lib.log.Error("Only pointer, touch and tablet tool devices can be attached to a cursor",
			"device", dev.DeviceName(), "type", dev.DeviceType())
		return
	}
	d, ok := dev.(*InputDevice)
	if !ok || d == nil {
		c.lib.log.Error("Cannot attach device", "reason", "foreign device", "device", dev.DeviceName())
		return
	}
	if c.device(dev) != nil {
		return
	}

	cd := &cursorDevice{dev: d}
	switch d.deviceType {
	case native.DevicePointer:
		c.forwardPointer(cd)
	case native.DeviceTouch:
		c.forwardTouch(cd)
	case native.DeviceTabletTool:
		c.forwardTablet(cd)
	}
	c.devices = append(c.devices, cd)
}

func (c *Cursor) forwardPointer(cd *cursorDevice) {
	p, ev := &cd.dev.Pointer, &c.events
	signal.Connect(&cd.conns, &p.Motion, ev.Motion.Emit)
	signal.Connect(&cd.conns, &p.MotionAbsolute, ev.MotionAbsolute.Emit)
	signal.Connect(&cd.conns, &p.Button, ev.Button.Emit)
	signal.Connect(&cd.conns, &p.Axis, ev.Axis.Emit)
	signal.Connect(&cd.conns, &p.Frame, func(struct{}) { ev.Frame.Emit(c) })
	signal.Connect(&cd.conns, &p.SwipeBegin, ev.SwipeBegin.Emit)
	signal.Connect(&cd.conns, &p.SwipeUpdate, ev.SwipeUpdate.Emit)
	signal.Connect(&cd.conns, &p.SwipeEnd, ev.SwipeEnd.Emit)
	signal.Connect(&cd.conns, &p.PinchBegin, ev.PinchBegin.Emit)
	signal.Connect(&cd.conns, &p.PinchUpdate, ev.PinchUpdate.Emit)
	signal.Connect(&cd.conns, &p.PinchEnd, ev.PinchEnd.Emit)
	signal.Connect(&cd.conns, &p.HoldBegin, ev.HoldBegin.Emit)
	signal.Connect(&cd.conns, &p.HoldEnd, ev.HoldEnd.Emit)
}

func (c *Cursor) forwardTouch(cd *cursorDevice) {
	t, ev := &cd.dev.Touch, &c.events
	signal.Connect(&cd.conns, &t.Up, ev.TouchUp.Emit)
	signal.Connect(&cd.conns, &t.Down, ev.TouchDown.Emit)
	signal.Connect(&cd.conns, &t.Motion, ev.TouchMotion.Emit)
	signal.Connect(&cd.conns, &t.Cancel, ev.TouchCancel.Emit)
	signal.Connect(&cd.conns, &t.Frame, ev.TouchFrame.Emit)
}

func (c *Cursor) forwardTablet(cd *cursorDevice) {
	t, ev := &cd.dev.Tablet, &c.events
	signal.Connect(&cd.conns, &t.Axis, ev.TabletToolAxis.Emit)
	signal.Connect(&cd.conns, &t.Proximity, ev.TabletToolProximity.Emit)
	signal.Connect(&cd.conns, &t.Tip, ev.TabletToolTip.Emit)
	signal.Connect(&cd.conns, &t.Button, ev.TabletToolButton.Emit)
}

// DetachInputDevice stops forwarding the device's events.
func (c *Cursor) DetachInputDevice(dev native.InputDevice) {
	for i, cd := range c.devices {
		if native.InputDevice(cd.dev) == dev {
			cd.conns.Invalidate()
			c.devices = append(c.devices[:i], c.devices[i+1:]...)
			return
		}
	}
}

// AttachOutputLayout sets the layout the cursor moves over. Nil detaches it.
// Destroying the layout detaches it too.
func (c *Cursor) AttachOutputLayout(layout native.OutputLayout) {
	if c.destroyed {
		return
	}
	c.layoutConn.Invalidate()
	c.layout = layout
	if l, ok := layout.(*OutputLayout); ok && l != nil {
		signal.Connect(&c.layoutConn, &l.events.Destroy, func(*OutputLayout) {
			c.layoutConn.Invalidate()
			c.layout = nil
		})
	}
}

func (c *Cursor) MapToOutput(output native.Output) {
	c.mappedOutput = output
}

func (c *Cursor) MapInputToOutput(dev native.InputDevice, output native.Output) {
	cd := c.device(dev)
	if cd == nil {
		c.lib.log.Error("Cannot map device to output", "reason", "device not attached")
		return
	}
	cd.mappedOutput = output
}

// MapToRegion confines the cursor to box. A nil or empty box clears it.
func (c *Cursor) MapToRegion(box *geom.Box) {
	if box == nil || box.Empty() {
		c.mappedBox = geom.Box{}
		return
	}
	c.mappedBox = *box
}

func (c *Cursor) MapInputToRegion(dev native.InputDevice, box *geom.Box) {
	cd := c.device(dev)
	if cd == nil {
		c.lib.log.Error("Cannot map device to region", "reason", "device not attached")
		return
	}
	if box == nil || box.Empty() {
		cd.mappedBox = geom.Box{}
		return
	}
	cd.mappedBox = *box
}

// Destroy detaches every device. No events are emitted afterwards.
func (c *Cursor) Destroy() {
	if c.destroyed {
		return
	}
	for _, cd := range c.devices {
		cd.conns.Invalidate()
	}
	c.devices = nil
	c.layoutConn.Invalidate()
	c.layout = nil
	c.image = Image{}
	c.destroyed = true
}
