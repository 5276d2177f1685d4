//go:build wlroots

package wlroots

/*
#include "glue.h"
*/
import "C"

import (
	"errors"
	"sync"
	"unsafe"

	"github.com/bnema/wlrwrap/native"
)

// Go wrappers are cached per C pointer so payloads always carry the same
// value for the same device, output or tool.
var (
	objectsMu sync.Mutex
	devices   = make(map[*C.struct_wlr_input_device]*InputDevice)
	outputs   = make(map[*C.struct_wlr_output]*Output)
	tools     = make(map[*C.struct_wlr_tablet_tool]*TabletTool)
)

// forget installs a destroy listener that drops the cache entry.
func forget(sig *C.struct_wl_signal, drop func()) {
	var set *listenerSet
	set = newListenerSet(func(C.int, unsafe.Pointer) {
		objectsMu.Lock()
		drop()
		objectsMu.Unlock()
		set.remove()
	})
	set.listen(sig, C.GO_OBJECT_DESTROY)
}

// Display is a wl_display with an auto-named socket.
type Display struct {
	p      *C.struct_wl_display
	socket string
}

var _ native.Display = (*Display)(nil)

// NewDisplay creates a display and binds a listening socket.
func NewDisplay() (*Display, error) {
	p := C.wl_display_create()
	if p == nil {
		return nil, errors.New("wl_display_create failed")
	}
	socket := C.wl_display_add_socket_auto(p)
	if socket == nil {
		C.wl_display_destroy(p)
		return nil, errors.New("unable to open wayland socket")
	}
	return &Display{p: p, socket: C.GoString(socket)}, nil
}

// Name returns the socket name, e.g. "wayland-1".
func (d *Display) Name() string { return d.socket }

// Run runs the display event loop until Terminate is called.
func (d *Display) Run() { C.wl_display_run(d.p) }

func (d *Display) Terminate() { C.wl_display_terminate(d.p) }

func (d *Display) Destroy() {
	if d.p == nil {
		return
	}
	C.wl_display_destroy(d.p)
	d.p = nil
}

// InputDevice is a wlr_input_device.
type InputDevice struct {
	p *C.struct_wlr_input_device
}

var _ native.InputDevice = (*InputDevice)(nil)

func wrapDevice(p *C.struct_wlr_input_device) *InputDevice {
	if p == nil {
		return nil
	}
	objectsMu.Lock()
	defer objectsMu.Unlock()
	if d, ok := devices[p]; ok {
		return d
	}
	d := &InputDevice{p: p}
	devices[p] = d
	forget(&p.events.destroy, func() { delete(devices, p) })
	return d
}

func (d *InputDevice) DeviceType() native.InputDeviceType {
	switch d.p._type {
	case C.WLR_INPUT_DEVICE_KEYBOARD:
		return native.DeviceKeyboard
	case C.WLR_INPUT_DEVICE_POINTER:
		return native.DevicePointer
	case C.WLR_INPUT_DEVICE_TOUCH:
		return native.DeviceTouch
	case C.WLR_INPUT_DEVICE_TABLET_TOOL:
		return native.DeviceTabletTool
	case C.WLR_INPUT_DEVICE_TABLET_PAD:
		return native.DeviceTabletPad
	default:
		return native.DeviceSwitch
	}
}

func (d *InputDevice) DeviceName() string { return C.GoString(d.p.name) }

func devicePtr(dev native.InputDevice) *C.struct_wlr_input_device {
	if d, ok := dev.(*InputDevice); ok && d != nil {
		return d.p
	}
	return nil
}

// Output is a wlr_output.
type Output struct {
	p *C.struct_wlr_output
}

var _ native.Output = (*Output)(nil)

func wrapOutput(p *C.struct_wlr_output) *Output {
	if p == nil {
		return nil
	}
	objectsMu.Lock()
	defer objectsMu.Unlock()
	if o, ok := outputs[p]; ok {
		return o
	}
	o := &Output{p: p}
	outputs[p] = o
	forget(&p.events.destroy, func() { delete(outputs, p) })
	return o
}

func (o *Output) OutputName() string { return C.GoString(o.p.name) }

func (o *Output) EffectiveResolution() (int, int) {
	var w, h C.int
	C.wlr_output_effective_resolution(o.p, &w, &h)
	return int(w), int(h)
}

func outputPtr(output native.Output) *C.struct_wlr_output {
	if o, ok := output.(*Output); ok && o != nil {
		return o.p
	}
	return nil
}

// TabletTool is a wlr_tablet_tool.
type TabletTool struct {
	p *C.struct_wlr_tablet_tool
}

var _ native.TabletTool = (*TabletTool)(nil)

func wrapTool(p *C.struct_wlr_tablet_tool) *TabletTool {
	if p == nil {
		return nil
	}
	objectsMu.Lock()
	defer objectsMu.Unlock()
	if t, ok := tools[p]; ok {
		return t
	}
	t := &TabletTool{p: p}
	tools[p] = t
	forget(&p.events.destroy, func() { delete(tools, p) })
	return t
}

func (t *TabletTool) ToolType() native.TabletToolType {
	return native.TabletToolType(t.p._type)
}

func (t *TabletTool) HardwareSerial() uint64 {
	return uint64(t.p.hardware_serial)
}

// Surface is a wlr_surface owned by a client.
type Surface struct {
	p *C.struct_wlr_surface
}

var _ native.Surface = (*Surface)(nil)

// SurfaceFrom wraps a struct wlr_surface pointer obtained elsewhere.
func SurfaceFrom(p unsafe.Pointer) *Surface {
	if p == nil {
		return nil
	}
	return &Surface{p: (*C.struct_wlr_surface)(p)}
}

func (s *Surface) Size() (int, int) {
	return int(s.p.current.width), int(s.p.current.height)
}

func surfacePtr(surface native.Surface) *C.struct_wlr_surface {
	if s, ok := surface.(*Surface); ok && s != nil {
		return s.p
	}
	return nil
}

// Buffer is a wlr_buffer.
type Buffer struct {
	p *C.struct_wlr_buffer
}

var _ native.Buffer = (*Buffer)(nil)

// BufferFrom wraps a struct wlr_buffer pointer obtained elsewhere.
func BufferFrom(p unsafe.Pointer) *Buffer {
	if p == nil {
		return nil
	}
	return &Buffer{p: (*C.struct_wlr_buffer)(p)}
}

func (b *Buffer) Width() int  { return int(b.p.width) }
func (b *Buffer) Height() int { return int(b.p.height) }
func (b *Buffer) Drop()       { C.wlr_buffer_drop(b.p) }

// Texture is a wlr_texture.
type Texture struct {
	p *C.struct_wlr_texture
}

var _ native.Texture = (*Texture)(nil)

func (t *Texture) Width() uint32  { return uint32(t.p.width) }
func (t *Texture) Height() uint32 { return uint32(t.p.height) }

func (t *Texture) Destroy() {
	if t.p == nil {
		return
	}
	C.wlr_texture_destroy(t.p)
	t.p = nil
}
