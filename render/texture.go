package render

import (
	"github.com/bnema/wlrwrap/internal/object"
	"github.com/bnema/wlrwrap/native"
)

// Texture is an owning wrapper around a native.Texture.
type Texture struct {
	*object.Object
	handle native.Texture
}

// TextureFromPixels uploads data in the given DRM format. It returns nil when
// the renderer rejects the upload. The texture is a child of r and is
// destroyed with it.
func TextureFromPixels(r *Renderer, format, stride, width, height uint32, data []byte) *Texture {
	if r == nil {
		return nil
	}
	h := r.handle.TextureFromPixels(format, stride, width, height, data)
	if h == nil {
		return nil
	}
	t := &Texture{handle: h}
	t.Object = object.New(object.Owned, h.Destroy)
	t.SetParent(r.Object)
	return t
}

// Handle returns the native texture.
func (t *Texture) Handle() native.Texture {
	return t.handle
}

func (t *Texture) Width() uint32  { return t.handle.Width() }
func (t *Texture) Height() uint32 { return t.handle.Height() }

// Buffer is a borrowed wrapper around a native.Buffer. Its producer keeps
// ownership.
type Buffer struct {
	*object.Object
	handle native.Buffer
}

// BufferFrom wraps h without taking ownership.
func BufferFrom(h native.Buffer) *Buffer {
	if h == nil {
		return nil
	}
	return &Buffer{Object: object.New(object.Borrowed, nil), handle: h}
}

// Handle returns the native buffer.
func (b *Buffer) Handle() native.Buffer {
	return b.handle
}

func (b *Buffer) Width() int  { return b.handle.Width() }
func (b *Buffer) Height() int { return b.handle.Height() }
