// Package render wraps a backend's renderer and the textures and buffers it
// draws with.
//
// Renderer calls map 1:1 onto the native renderer. The wrapper adds the
// conversions from Go value types (image.Rectangle, color.Color) and ties the
// renderer's lifetime to the backend that created it: the renderer handle is
// borrowed and never destroyed here.
package render

import (
	"image"
	"image/color"

	"github.com/bnema/wlrwrap/backend"
	"github.com/bnema/wlrwrap/geom"
	"github.com/bnema/wlrwrap/internal/logger"
	"github.com/bnema/wlrwrap/internal/object"
	"github.com/bnema/wlrwrap/native"
)

// Renderer is a borrowed wrapper around a native.Renderer.
type Renderer struct {
	*object.Object
	handle native.Renderer
}

// AutoCreate asks b to select a renderer. It returns nil when the backend has
// none. The renderer becomes a child of b and is invalidated when b is
// destroyed.
func AutoCreate(b *backend.Backend) *Renderer {
	if b == nil {
		return nil
	}
	h := b.Handle().AutoCreateRenderer()
	if h == nil {
		logger.Debug("Backend has no renderer")
		return nil
	}
	r := &Renderer{handle: h}
	r.Object = object.New(object.Borrowed, nil)
	r.SetParent(b.Object)
	return r
}

// Handle returns the native renderer.
func (r *Renderer) Handle() native.Renderer {
	return r.handle
}

// Begin starts a pass on a width×height target.
func (r *Renderer) Begin(width, height uint32) {
	r.handle.Begin(width, height)
}

// BeginWithBuffer starts a pass that draws into buffer.
func (r *Renderer) BeginWithBuffer(buffer *Buffer) bool {
	if buffer == nil {
		return false
	}
	return r.handle.BeginWithBuffer(buffer.Handle())
}

// End finishes the active render pass.
func (r *Renderer) End() {
	r.handle.End()
}

// InitDisplay registers the renderer's buffer protocols on display.
func (r *Renderer) InitDisplay(display native.Display) bool {
	return r.handle.InitDisplay(display)
}

// InitShm registers wl_shm on display.
func (r *Renderer) InitShm(display native.Display) bool {
	return r.handle.InitShm(display)
}

// Clear fills the target with c.
func (r *Renderer) Clear(c geom.Color) {
	r.handle.Clear(c.Array())
}

// ClearColor is Clear for any color.Color.
func (r *Renderer) ClearColor(c color.Color) {
	r.Clear(geom.ColorFrom(c))
}

// Scissor restricts drawing to box. A nil or empty box lifts the restriction.
func (r *Renderer) Scissor(box *geom.Box) {
	if box != nil && box.Empty() {
		box = nil
	}
	r.handle.Scissor(box)
}

// ScissorRect is Scissor for an image.Rectangle.
func (r *Renderer) ScissorRect(rect image.Rectangle) {
	box := geom.BoxFromRect(rect)
	r.Scissor(&box)
}

// RenderTexture draws tex at (x, y) with the given projection and alpha.
func (r *Renderer) RenderTexture(tex *Texture, projection geom.Matrix, x, y int, alpha float32) bool {
	if tex == nil {
		return false
	}
	return r.handle.RenderTexture(tex.Handle(), projection, x, y, alpha)
}

// RenderTextureWithMatrix draws tex onto the unit square mapped through
// matrix.
func (r *Renderer) RenderTextureWithMatrix(tex *Texture, matrix geom.Matrix, alpha float32) bool {
	if tex == nil {
		return false
	}
	return r.handle.RenderTextureWithMatrix(tex.Handle(), matrix, alpha)
}

// RenderSubtexture draws the src region of tex.
func (r *Renderer) RenderSubtexture(tex *Texture, src geom.FBox, matrix geom.Matrix, alpha float32) bool {
	if tex == nil {
		return false
	}
	return r.handle.RenderSubtextureWithMatrix(tex.Handle(), src, matrix, alpha)
}

// RenderRect fills box with c.
func (r *Renderer) RenderRect(box geom.Box, c geom.Color, projection geom.Matrix) {
	r.handle.RenderRect(box, c.Array(), projection)
}

// RenderRectImage is RenderRect for Go image types.
func (r *Renderer) RenderRectImage(rect image.Rectangle, c color.Color, projection geom.Matrix) {
	r.RenderRect(geom.BoxFromRect(rect), geom.ColorFrom(c), projection)
}

// RenderQuad fills the unit square mapped through matrix.
func (r *Renderer) RenderQuad(c geom.Color, matrix geom.Matrix) {
	r.handle.RenderQuadWithMatrix(c.Array(), matrix)
}

// RenderQuadColor is RenderQuad for any color.Color.
func (r *Renderer) RenderQuadColor(c color.Color, matrix geom.Matrix) {
	r.RenderQuad(geom.ColorFrom(c), matrix)
}

// ShmTextureFormats returns the renderer's wl_shm formats. The slice is
// owned by the renderer.
func (r *Renderer) ShmTextureFormats() []uint32 {
	return r.handle.ShmTextureFormats()
}

// DMABufTextureFormats returns the importable DMA-BUF formats.
func (r *Renderer) DMABufTextureFormats() *native.DRMFormatSet {
	return r.handle.DMABufTextureFormats()
}

// ReadPixels copies pixels out of the current target into data.
func (r *Renderer) ReadPixels(format, stride, width, height, srcX, srcY, dstX, dstY uint32, data []byte) bool {
	return r.handle.ReadPixels(format, stride, width, height, srcX, srcY, dstX, dstY, data)
}

// DRMFd returns the renderer's DRM file descriptor, or -1.
func (r *Renderer) DRMFd() int {
	return r.handle.DRMFd()
}
