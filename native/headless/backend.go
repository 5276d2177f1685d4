package headless

import (
	"math"

	"github.com/bnema/wlrwrap/native"
	"github.com/bnema/wlrwrap/signal"
)

// BackendEvents are emitted by a Backend.
type BackendEvents struct {
	NewInput  signal.Signal[*InputDevice]
	NewOutput signal.Signal[*Output]
	Destroy   signal.Signal[*Backend]
}

// Backend owns the software renderer and the virtual outputs and input
// devices created on it.
type Backend struct {
	lib       *Library
	renderer  *Renderer
	outputs   []*Output
	devices   []*InputDevice
	started   bool
	destroyed bool
	events    BackendEvents
}

var _ native.Backend = (*Backend)(nil)

// Events returns the backend's signals.
func (b *Backend) Events() *BackendEvents {
	return &b.events
}

// AutoCreateRenderer returns the backend's renderer, creating it on first
// use. The backend keeps ownership and destroys it in Destroy.
func (b *Backend) AutoCreateRenderer() native.Renderer {
	if b.destroyed {
		return nil
	}
	if b.lib.noRenderer {
		b.lib.log.Error("Could not initialize renderer", "reason", "no renderer available")
		return nil
	}
	if b.renderer == nil {
		b.renderer = newRenderer(b.lib)
		b.lib.log.Debug("Created software renderer")
	}
	return b.renderer
}

// Start announces every output and input device created so far. Objects
// created afterwards are announced immediately.
func (b *Backend) Start() bool {
	if b.destroyed {
		return false
	}
	if b.started {
		return true
	}
	b.started = true
	for _, o := range b.outputs {
		b.events.NewOutput.Emit(o)
	}
	for _, d := range b.devices {
		b.events.NewInput.Emit(d)
	}
	return true
}

// Destroy releases the renderer and every device and output.
func (b *Backend) Destroy() {
	if b.destroyed {
		return
	}
	b.events.Destroy.Emit(b)
	b.destroyed = true

	if b.renderer != nil {
		b.renderer.destroy()
		b.renderer = nil
	}
	b.outputs = nil
	b.devices = nil
	b.lib.log.Debug("Backend destroyed")
}

// NewOutput adds a virtual output. A scale of zero or less means 1.
func (b *Backend) NewOutput(name string, width, height int, scale float64) *Output {
	if scale <= 0 {
		scale = 1
	}
	o := &Output{name: name, width: width, height: height, scale: scale}
	b.outputs = append(b.outputs, o)
	if b.started {
		b.events.NewOutput.Emit(o)
	}
	return o
}

// NewInputDevice adds a virtual input device.
func (b *Backend) NewInputDevice(deviceType native.InputDeviceType, name string) *InputDevice {
	d := &InputDevice{deviceType: deviceType, name: name}
	b.devices = append(b.devices, d)
	if b.started {
		b.events.NewInput.Emit(d)
	}
	return d
}

// Output is a virtual monitor.
type Output struct {
	name   string
	width  int
	height int
	scale  float64
}

var _ native.Output = (*Output)(nil)

func (o *Output) OutputName() string { return o.name }

// EffectiveResolution returns the mode size divided by the scale.
func (o *Output) EffectiveResolution() (int, int) {
	return int(math.Round(float64(o.width) / o.scale)), int(math.Round(float64(o.height) / o.scale))
}

// Mode returns the pixel size of the output.
func (o *Output) Mode() (int, int) {
	return o.width, o.height
}

// Scale returns the output scale factor.
func (o *Output) Scale() float64 {
	return o.scale
}

// Global is a wl_global registered on a Display.
type Global struct {
	Interface string
	Version   uint32
	Formats   []uint32
}

// Display records the globals renderers register on it.
type Display struct {
	name    string
	globals []Global
}

var _ native.Display = (*Display)(nil)

func (d *Display) Name() string { return d.name }

// Globals returns a copy of the registered globals.
func (d *Display) Globals() []Global {
	return append([]Global(nil), d.globals...)
}

// HasGlobal reports whether an interface has been registered.
func (d *Display) HasGlobal(iface string) bool {
	for _, g := range d.globals {
		if g.Interface == iface {
			return true
		}
	}
	return false
}

func (d *Display) addGlobal(g Global) {
	if d.HasGlobal(g.Interface) {
		return
	}
	d.globals = append(d.globals, g)
}

// Surface stands in for a client wl_surface.
type Surface struct {
	width  int
	height int
}

var _ native.Surface = (*Surface)(nil)

func (s *Surface) Size() (int, int) { return s.width, s.height }

// TabletTool is a virtual stylus or eraser.
type TabletTool struct {
	toolType native.TabletToolType
	serial   uint64
}

var _ native.TabletTool = (*TabletTool)(nil)

func (t *TabletTool) ToolType() native.TabletToolType { return t.toolType }
func (t *TabletTool) HardwareSerial() uint64          { return t.serial }
