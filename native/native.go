// Package native describes the compositor library that the wrapper packages
// delegate to.
//
// Every wrapper in this module (render, cursor, layout, backend) holds one
// of the handles declared here and forwards its calls to it 1:1. Two
// implementations exist: native/headless, a software library used by the
// tests and the CLI, and native/wlroots, a cgo binding built with the
// "wlroots" tag.
//
// Argument objects (textures, buffers, displays, devices, outputs,
// surfaces) are opaque. An implementation only accepts objects it created
// itself and treats foreign values the way the C library treats an invalid
// pointer: the call fails or does nothing.
package native

import "github.com/bnema/wlrwrap/geom"

// Library creates the resources a wrapper owns.
type Library interface {
	// CreateCursor allocates a cursor. It returns nil when allocation fails.
	CreateCursor() Cursor
	// CreateOutputLayout allocates an empty output layout, or nil.
	CreateOutputLayout() OutputLayout
}

// Backend produces input devices and outputs and owns the renderer it
// selects.
type Backend interface {
	// AutoCreateRenderer picks a renderer implementation for the backend.
	// It returns nil when none is available. The backend keeps ownership.
	AutoCreateRenderer() Renderer
	Start() bool
	Destroy()
}

// Renderer is a wlr_renderer. It is owned by the backend that created it.
type Renderer interface {
	Begin(width, height uint32)
	BeginWithBuffer(buffer Buffer) bool
	End()

	InitDisplay(display Display) bool
	InitShm(display Display) bool

	Clear(color [4]float32)
	// Scissor restricts drawing to box. A nil box removes the restriction.
	Scissor(box *geom.Box)

	RenderTexture(texture Texture, projection geom.Matrix, x, y int, alpha float32) bool
	RenderTextureWithMatrix(texture Texture, matrix geom.Matrix, alpha float32) bool
	RenderSubtextureWithMatrix(texture Texture, box geom.FBox, matrix geom.Matrix, alpha float32) bool
	RenderRect(box geom.Box, color [4]float32, projection geom.Matrix)
	RenderQuadWithMatrix(color [4]float32, matrix geom.Matrix)

	// ShmTextureFormats returns DRM fourcc codes. The slice belongs to the
	// renderer and must not be modified.
	ShmTextureFormats() []uint32
	// DMABufTextureFormats returns the importable formats, or nil.
	DMABufTextureFormats() *DRMFormatSet

	ReadPixels(format, stride, width, height, srcX, srcY, dstX, dstY uint32, data []byte) bool
	DRMFd() int

	// TextureFromPixels uploads pixel data. It returns nil on failure.
	TextureFromPixels(format, stride, width, height uint32, data []byte) Texture
}

// Texture is a wlr_texture.
type Texture interface {
	Width() uint32
	Height() uint32
	Destroy()
}

// Buffer is a wlr_buffer that a render pass can target.
type Buffer interface {
	Width() int
	Height() int
	Drop()
}

// Display is the wl_display renderer capabilities are registered with.
type Display interface {
	Name() string
}

// Surface is a client surface that can serve as a cursor image.
type Surface interface {
	Size() (width, height int)
}

// Output is a wlr_output.
type Output interface {
	OutputName() string
	// EffectiveResolution is the size in layout coordinates.
	EffectiveResolution() (width, height int)
}

// InputDevice is a wlr_input_device.
type InputDevice interface {
	DeviceType() InputDeviceType
	DeviceName() string
}

// TabletTool is a wlr_tablet_tool.
type TabletTool interface {
	ToolType() TabletToolType
	HardwareSerial() uint64
}

// OutputLayout is a wlr_output_layout.
type OutputLayout interface {
	Add(output Output, x, y int)
	AddAuto(output Output)
	Remove(output Output)
	// OutputBox returns the output's box. A nil output returns the extents.
	OutputBox(output Output) geom.Box
	// ContainsPoint tests one output, or all of them when reference is nil.
	ContainsPoint(reference Output, x, y float64) bool
	// ClosestPoint clamps (x, y) to one output, or the nearest of all.
	ClosestPoint(reference Output, x, y float64) (float64, float64)
	OutputAt(x, y float64) Output
	Extents() geom.Box
	Outputs() []Output
	Destroy()
}

// Cursor is a wlr_cursor.
type Cursor interface {
	Events() *CursorEvents
	Position() (x, y float64)

	Warp(dev InputDevice, x, y float64) bool
	WarpClosest(dev InputDevice, x, y float64)
	WarpAbsolute(dev InputDevice, x, y float64)
	Move(dev InputDevice, dx, dy float64)

	// SetImage copies pixels; the caller keeps ownership of the slice.
	SetImage(pixels []byte, stride int32, width, height uint32, hotspotX, hotspotY int32, scale float32)
	SetSurface(surface Surface, hotspotX, hotspotY int32)

	AttachInputDevice(dev InputDevice)
	DetachInputDevice(dev InputDevice)
	AttachOutputLayout(layout OutputLayout)

	MapToOutput(output Output)
	MapInputToOutput(dev InputDevice, output Output)
	MapToRegion(box *geom.Box)
	MapInputToRegion(dev InputDevice, box *geom.Box)

	Destroy()
}
