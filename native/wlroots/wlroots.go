//go:build wlroots

// Package wlroots implements the native layer on top of wlroots 0.16 through
// cgo. It is only built with the "wlroots" build tag; without it the package
// reports itself unavailable.
package wlroots

/*
#include "glue.h"
*/
import "C"

import (
	"errors"
	"unsafe"

	"github.com/bnema/wlrwrap/geom"
	"github.com/bnema/wlrwrap/native"
	"github.com/bnema/wlrwrap/signal"
)

// Available reports whether the binding was compiled in.
func Available() bool { return true }

// Library creates wlroots cursors and output layouts.
type Library struct{}

var _ native.Library = (*Library)(nil)

func New() *Library { return &Library{} }

func (l *Library) CreateCursor() native.Cursor {
	c := newCursor()
	if c == nil {
		return nil
	}
	return c
}

func (l *Library) CreateOutputLayout() native.OutputLayout {
	p := C.wlr_output_layout_create()
	if p == nil {
		return nil
	}
	return &OutputLayout{p: p}
}

// BackendEvents are emitted by a Backend.
type BackendEvents struct {
	NewInput  signal.Signal[*InputDevice]
	NewOutput signal.Signal[*Output]
}

// Backend is a wlr_backend picked by wlr_backend_autocreate.
type Backend struct {
	p         *C.struct_wlr_backend
	renderer  *Renderer
	listeners *listenerSet
	events    BackendEvents
}

var _ native.Backend = (*Backend)(nil)

// NewBackend creates the backend best suited to the environment.
func NewBackend(d *Display) (*Backend, error) {
	if d == nil || d.p == nil {
		return nil, errors.New("nil display")
	}
	p := C.wlr_backend_autocreate(d.p)
	if p == nil {
		return nil, errors.New("failed to create wlr_backend")
	}

	b := &Backend{p: p}
	b.listeners = newListenerSet(b.notify)
	b.listeners.listen(&p.events.new_input, C.GO_BACKEND_NEW_INPUT)
	b.listeners.listen(&p.events.new_output, C.GO_BACKEND_NEW_OUTPUT)
	b.listeners.listen(&p.events.destroy, C.GO_BACKEND_DESTROY)
	return b, nil
}

func (b *Backend) notify(channel C.int, data unsafe.Pointer) {
	switch channel {
	case C.GO_BACKEND_NEW_INPUT:
		b.events.NewInput.Emit(wrapDevice((*C.struct_wlr_input_device)(data)))
	case C.GO_BACKEND_NEW_OUTPUT:
		b.events.NewOutput.Emit(wrapOutput((*C.struct_wlr_output)(data)))
	case C.GO_BACKEND_DESTROY:
		b.listeners.remove()
		b.p = nil
	}
}

// Events returns the backend's signals.
func (b *Backend) Events() *BackendEvents {
	return &b.events
}

func (b *Backend) AutoCreateRenderer() native.Renderer {
	if b.p == nil {
		return nil
	}
	if b.renderer == nil {
		p := C.wlr_renderer_autocreate(b.p)
		if p == nil {
			return nil
		}
		b.renderer = &Renderer{p: p}
	}
	return b.renderer
}

func (b *Backend) Start() bool {
	if b.p == nil {
		return false
	}
	return bool(C.wlr_backend_start(b.p))
}

// Destroy destroys the renderer created through AutoCreateRenderer and then
// the backend.
func (b *Backend) Destroy() {
	if b.p == nil {
		return
	}
	if b.renderer != nil {
		b.renderer.destroy()
		b.renderer = nil
	}
	p := b.p
	b.listeners.remove()
	b.p = nil
	C.wlr_backend_destroy(p)
}

// Renderer is a wlr_renderer.
type Renderer struct {
	p   *C.struct_wlr_renderer
	shm []uint32
}

var _ native.Renderer = (*Renderer)(nil)

func (r *Renderer) destroy() {
	C.wlr_renderer_destroy(r.p)
	r.p = nil
}

func (r *Renderer) Begin(width, height uint32) {
	C.wlr_renderer_begin(r.p, C.uint32_t(width), C.uint32_t(height))
}

func (r *Renderer) BeginWithBuffer(buffer native.Buffer) bool {
	b, ok := buffer.(*Buffer)
	if !ok || b == nil {
		return false
	}
	return bool(C.wlr_renderer_begin_with_buffer(r.p, b.p))
}

func (r *Renderer) End() {
	C.wlr_renderer_end(r.p)
}

func (r *Renderer) InitDisplay(display native.Display) bool {
	d, ok := display.(*Display)
	if !ok || d == nil {
		return false
	}
	return bool(C.wlr_renderer_init_wl_display(r.p, d.p))
}

func (r *Renderer) InitShm(display native.Display) bool {
	d, ok := display.(*Display)
	if !ok || d == nil {
		return false
	}
	return bool(C.wlr_renderer_init_wl_shm(r.p, d.p))
}

func (r *Renderer) Clear(color [4]float32) {
	c := cColor(color)
	C.wlr_renderer_clear(r.p, &c[0])
}

func (r *Renderer) Scissor(box *geom.Box) {
	if box == nil {
		C.wlr_renderer_scissor(r.p, nil)
		return
	}
	b := cBox(*box)
	C.wlr_renderer_scissor(r.p, &b)
}

func (r *Renderer) RenderTexture(texture native.Texture, projection geom.Matrix, x, y int, alpha float32) bool {
	t, ok := texture.(*Texture)
	if !ok || t == nil || t.p == nil {
		return false
	}
	m := cMatrix(projection)
	return bool(C.wlr_render_texture(r.p, t.p, &m[0], C.int(x), C.int(y), C.float(alpha)))
}

func (r *Renderer) RenderTextureWithMatrix(texture native.Texture, matrix geom.Matrix, alpha float32) bool {
	t, ok := texture.(*Texture)
	if !ok || t == nil || t.p == nil {
		return false
	}
	m := cMatrix(matrix)
	return bool(C.wlr_render_texture_with_matrix(r.p, t.p, &m[0], C.float(alpha)))
}

func (r *Renderer) RenderSubtextureWithMatrix(texture native.Texture, box geom.FBox, matrix geom.Matrix, alpha float32) bool {
	t, ok := texture.(*Texture)
	if !ok || t == nil || t.p == nil {
		return false
	}
	fb := C.struct_wlr_fbox{
		x:      C.double(box.X),
		y:      C.double(box.Y),
		width:  C.double(box.Width),
		height: C.double(box.Height),
	}
	m := cMatrix(matrix)
	return bool(C.wlr_render_subtexture_with_matrix(r.p, t.p, &fb, &m[0], C.float(alpha)))
}

func (r *Renderer) RenderRect(box geom.Box, color [4]float32, projection geom.Matrix) {
	b := cBox(box)
	c := cColor(color)
	m := cMatrix(projection)
	C.wlr_render_rect(r.p, &b, &c[0], &m[0])
}

func (r *Renderer) RenderQuadWithMatrix(color [4]float32, matrix geom.Matrix) {
	c := cColor(color)
	m := cMatrix(matrix)
	C.wlr_render_quad_with_matrix(r.p, &c[0], &m[0])
}

// ShmTextureFormats copies the renderer's list on first use.
func (r *Renderer) ShmTextureFormats() []uint32 {
	if r.shm != nil {
		return r.shm
	}
	var n C.size_t
	p := C.wlr_renderer_get_shm_texture_formats(r.p, &n)
	if p == nil || n == 0 {
		return nil
	}
	src := unsafe.Slice((*uint32)(unsafe.Pointer(p)), int(n))
	r.shm = append([]uint32(nil), src...)
	return r.shm
}

func (r *Renderer) DMABufTextureFormats() *native.DRMFormatSet {
	set := C.wlr_renderer_get_dmabuf_texture_formats(r.p)
	if set == nil {
		return nil
	}
	formats := make([]native.DRMFormat, 0, int(set.len))
	for i := C.size_t(0); i < set.len; i++ {
		f := C.go_drm_format_at(set, i)
		df := native.DRMFormat{Format: uint32(f.format)}
		for j := C.size_t(0); j < f.len; j++ {
			df.Modifiers = append(df.Modifiers, uint64(C.go_drm_format_modifier(f, j)))
		}
		formats = append(formats, df)
	}
	return native.NewDRMFormatSet(formats...)
}

func (r *Renderer) ReadPixels(format, stride, width, height, srcX, srcY, dstX, dstY uint32, data []byte) bool {
	if len(data) == 0 {
		return false
	}
	return bool(C.wlr_renderer_read_pixels(r.p, C.uint32_t(format), C.uint32_t(stride),
		C.uint32_t(width), C.uint32_t(height), C.uint32_t(srcX), C.uint32_t(srcY),
		C.uint32_t(dstX), C.uint32_t(dstY), unsafe.Pointer(&data[0])))
}

func (r *Renderer) DRMFd() int {
	return int(C.wlr_renderer_get_drm_fd(r.p))
}

func (r *Renderer) TextureFromPixels(format, stride, width, height uint32, data []byte) native.Texture {
	if len(data) == 0 {
		return nil
	}
	p := C.wlr_texture_from_pixels(r.p, C.uint32_t(format), C.uint32_t(stride),
		C.uint32_t(width), C.uint32_t(height), unsafe.Pointer(&data[0]))
	if p == nil {
		return nil
	}
	return &Texture{p: p}
}

func cColor(c [4]float32) [4]C.float {
	return [4]C.float{C.float(c[0]), C.float(c[1]), C.float(c[2]), C.float(c[3])}
}

func cMatrix(m geom.Matrix) [9]C.float {
	var out [9]C.float
	for i, v := range m {
		out[i] = C.float(v)
	}
	return out
}

func cBox(b geom.Box) C.struct_wlr_box {
	return C.struct_wlr_box{x: C.int(b.X), y: C.int(b.Y), width: C.int(b.Width), height: C.int(b.Height)}
}

func goBox(b C.struct_wlr_box) geom.Box {
	return geom.Box{X: int(b.x), Y: int(b.y), Width: int(b.width), Height: int(b.height)}
}
