package headless

import (
	"image"
	"image/color"

	"github.com/bnema/wlrwrap/geom"
	"github.com/bnema/wlrwrap/native"
	"golang.org/x/image/draw"
)

// Renderer is a software wlr_renderer. Pixels are premultiplied RGBA.
type Renderer struct {
	lib *Library

	// target stays bound after End so that ReadPixels can inspect the
	// finished frame, matching renderers that keep the last buffer current.
	target    *image.RGBA
	offscreen *image.RGBA
	buffer    *Buffer
	inPass    bool
	scissor   *image.Rectangle

	shmFormats []uint32
	dmabuf     *native.DRMFormatSet
	destroyed  bool
}

var _ native.Renderer = (*Renderer)(nil)

func newRenderer(lib *Library) *Renderer {
	return &Renderer{
		lib: lib,
		shmFormats: []uint32{
			native.FormatARGB8888,
			native.FormatXRGB8888,
			native.FormatABGR8888,
			native.FormatXBGR8888,
		},
		dmabuf: native.NewDRMFormatSet(),
	}
}

func (r *Renderer) destroy() {
	r.destroyed = true
	r.inPass = false
	r.target = nil
	r.offscreen = nil
	r.buffer = nil
}

// Destroyed reports whether the owning backend has destroyed the renderer.
func (r *Renderer) Destroyed() bool {
	return r.destroyed
}

// InPass reports whether a render pass is active.
func (r *Renderer) InPass() bool {
	return r.inPass
}

// Target returns the currently bound image, or nil.
func (r *Renderer) Target() *image.RGBA {
	return r.target
}

// Begin starts a pass on the renderer's own offscreen image.
func (r *Renderer) Begin(width, height uint32) {
	if r.inPass {
		r.lib.log.Warn("Begin called during an active render pass")
	}
	bounds := image.Rect(0, 0, int(width), int(height))
	if r.offscreen == nil || r.offscreen.Rect != bounds {
		r.offscreen = image.NewRGBA(bounds)
	}
	r.startPass(r.offscreen, nil)
}

// BeginWithBuffer starts a pass targeting buffer. Buffers from other
// libraries are rejected.
func (r *Renderer) BeginWithBuffer(buffer native.Buffer) bool {
	buf, ok := buffer.(*Buffer)
	if !ok || buf == nil {
		r.lib.log.Error("Cannot render to buffer", "reason", "foreign buffer")
		return false
	}
	if r.inPass {
		r.lib.log.Warn("BeginWithBuffer called during an active render pass")
	}
	r.startPass(buf.img, buf)
	return true
}

func (r *Renderer) startPass(target *image.RGBA, buf *Buffer) {
	r.target = target
	r.buffer = buf
	r.scissor = nil
	r.inPass = true
}

// End finishes the pass. The target stays bound for ReadPixels.
func (r *Renderer) End() {
	if !r.inPass {
		r.lib.log.Warn("End called without an active render pass")
	}
	r.inPass = false
}

// InitShm registers wl_shm with the supported formats.
func (r *Renderer) InitShm(display native.Display) bool {
	d, ok := display.(*Display)
	if !ok || d == nil {
		return false
	}
	d.addGlobal(Global{
		Interface: "wl_shm",
		Version:   1,
		Formats:   append([]uint32(nil), r.shmFormats...),
	})
	return true
}

// InitDisplay registers wl_shm and, on a DRM capable renderer, wl_drm.
func (r *Renderer) InitDisplay(display native.Display) bool {
	if !r.InitShm(display) {
		return false
	}
	if r.DRMFd() >= 0 {
		display.(*Display).addGlobal(Global{Interface: "wl_drm", Version: 2})
	}
	return true
}

// Clear fills the scissored target with color, replacing existing pixels.
func (r *Renderer) Clear(c [4]float32) {
	if !r.drawable("clear") {
		return
	}
	clip := r.clip()
	if clip.Empty() {
		return
	}
	draw.Draw(r.target, clip, image.NewUniform(toRGBA(c)), image.Point{}, draw.Src)
}

// Scissor restricts drawing to box. Nil removes the restriction.
func (r *Renderer) Scissor(box *geom.Box) {
	if box == nil {
		r.scissor = nil
		return
	}
	rect := box.Rect()
	r.scissor = &rect
}

func (r *Renderer) RenderTexture(texture native.Texture, projection geom.Matrix, x, y int, alpha float32) bool {
	if texture == nil {
		return false
	}
	box := geom.Box{X: x, Y: y, Width: int(texture.Width()), Height: int(texture.Height())}
	m := geom.ProjectBox(box, geom.TransformNormal, 0, projection)
	return r.RenderTextureWithMatrix(texture, m, alpha)
}

func (r *Renderer) RenderTextureWithMatrix(texture native.Texture, matrix geom.Matrix, alpha float32) bool {
	if texture == nil {
		return false
	}
	box := geom.FBox{Width: float64(texture.Width()), Height: float64(texture.Height())}
	return r.RenderSubtextureWithMatrix(texture, box, matrix, alpha)
}

func (r *Renderer) RenderSubtextureWithMatrix(texture native.Texture, box geom.FBox, matrix geom.Matrix, alpha float32) bool {
	tex, ok := texture.(*Texture)
	if !ok || tex == nil || tex.destroyed {
		r.lib.log.Error("Cannot render texture", "reason", "foreign or destroyed texture")
		return false
	}
	if !r.drawable("render texture") {
		return false
	}
	r.drawTexture(tex, box, matrix, alpha)
	return true
}

// RenderRect fills box. A box without area draws nothing.
func (r *Renderer) RenderRect(box geom.Box, c [4]float32, projection geom.Matrix) {
	if box.Empty() {
		return
	}
	m := geom.ProjectBox(box, geom.TransformNormal, 0, projection)
	r.RenderQuadWithMatrix(c, m)
}

// RenderQuadWithMatrix fills the unit square mapped through matrix.
func (r *Renderer) RenderQuadWithMatrix(c [4]float32, matrix geom.Matrix) {
	if !r.drawable("render quad") {
		return
	}
	r.fillQuad(matrix, toRGBA(c))
}

func (r *Renderer) ShmTextureFormats() []uint32 {
	return r.shmFormats
}

func (r *Renderer) DMABufTextureFormats() *native.DRMFormatSet {
	return r.dmabuf
}

// DRMFd returns -1: the software renderer has no DRM device.
func (r *Renderer) DRMFd() int {
	return -1
}

// ReadPixels copies a width×height block at (srcX, srcY) of the bound target
// into data at (dstX, dstY), encoded in format.
func (r *Renderer) ReadPixels(format, stride, width, height, srcX, srcY, dstX, dstY uint32, data []byte) bool {
	if r.target == nil {
		r.lib.log.Error("Cannot read pixels", "reason", "no render target bound")
		return false
	}
	layout, ok := shmLayouts[format]
	if !ok {
		r.lib.log.Error("Cannot read pixels", "reason", "unsupported format", "format", native.FormatName(format))
		return false
	}
	if width == 0 || height == 0 {
		return true
	}

	src := image.Rect(int(srcX), int(srcY), int(srcX+width), int(srcY+height))
	if !src.In(r.target.Rect) {
		r.lib.log.Error("Cannot read pixels", "reason", "source outside target")
		return false
	}
	need := int(dstY+height-1)*int(stride) + int(dstX+width)*bytesPerPixel
	if need > len(data) {
		r.lib.log.Error("Cannot read pixels", "reason", "destination too small", "need", need, "have", len(data))
		return false
	}

	for y := 0; y < int(height); y++ {
		in := r.target.Pix[r.target.PixOffset(src.Min.X, src.Min.Y+y):]
		out := data[(int(dstY)+y)*int(stride)+int(dstX)*bytesPerPixel:]
		for x := 0; x < int(width); x++ {
			p := in[x*bytesPerPixel:]
			encodePixel(layout, out[x*bytesPerPixel:], p[0], p[1], p[2], p[3])
		}
	}
	return true
}

// TextureFromPixels decodes data into a new texture.
func (r *Renderer) TextureFromPixels(format, stride, width, height uint32, data []byte) native.Texture {
	layout, ok := shmLayouts[format]
	if !ok {
		r.lib.log.Error("Cannot create texture", "reason", "unsupported format", "format", native.FormatName(format))
		return nil
	}
	if width == 0 || height == 0 || stride < width*bytesPerPixel {
		r.lib.log.Error("Cannot create texture", "reason", "invalid size", "width", width, "height", height, "stride", stride)
		return nil
	}
	need := int(height-1)*int(stride) + int(width)*bytesPerPixel
	if len(data) < need {
		r.lib.log.Error("Cannot create texture", "reason", "short pixel data", "need", need, "have", len(data))
		return nil
	}
	return &Texture{img: decodePixels(layout, int(stride), int(width), int(height), data)}
}

func (r *Renderer) drawable(op string) bool {
	if r.destroyed {
		r.lib.log.Error("Draw call on destroyed renderer", "op", op)
		return false
	}
	if !r.inPass || r.target == nil {
		r.lib.log.Warn("Draw call outside a render pass", "op", op)
		return false
	}
	return true
}

// clip is the target bounds intersected with the scissor box.
func (r *Renderer) clip() image.Rectangle {
	bounds := r.target.Rect
	if r.scissor != nil {
		bounds = bounds.Intersect(*r.scissor)
	}
	return bounds
}

// toRGBA converts a premultiplied float color. Channels above alpha are
// clamped so the result is a valid color.RGBA.
func toRGBA(c [4]float32) color.RGBA {
	n := geom.ColorFromArray(c).NRGBA()
	return color.RGBA{R: min(n.R, n.A), G: min(n.G, n.A), B: min(n.B, n.A), A: n.A}
}
