package headless

import (
	"image"

	"github.com/bnema/wlrwrap/native"
)

const bytesPerPixel = 4

// Texture holds premultiplied RGBA pixels uploaded through
// Renderer.TextureFromPixels.
type Texture struct {
	img       *image.RGBA
	destroyed bool
}

var _ native.Texture = (*Texture)(nil)

func (t *Texture) Width() uint32  { return uint32(t.img.Rect.Dx()) }
func (t *Texture) Height() uint32 { return uint32(t.img.Rect.Dy()) }

// Destroy frees the pixel storage.
func (t *Texture) Destroy() {
	t.destroyed = true
}

// Destroyed reports whether Destroy has been called.
func (t *Texture) Destroyed() bool {
	return t.destroyed
}

// Buffer is a render target backed by an RGBA image.
type Buffer struct {
	img     *image.RGBA
	dropped bool
}

var _ native.Buffer = (*Buffer)(nil)

func newBuffer(width, height int) *Buffer {
	return &Buffer{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (b *Buffer) Width() int  { return b.img.Rect.Dx() }
func (b *Buffer) Height() int { return b.img.Rect.Dy() }

// Drop releases the producer's reference. The pixels remain readable.
func (b *Buffer) Drop() {
	b.dropped = true
}

// Dropped reports whether Drop has been called.
func (b *Buffer) Dropped() bool {
	return b.dropped
}

// Image returns the backing image. It aliases the buffer contents.
func (b *Buffer) Image() *image.RGBA {
	return b.img
}

// formatLayout describes where each channel lives in a 4-byte pixel.
type formatLayout struct {
	r, g, b, a int
	opaque     bool
}

var shmLayouts = map[uint32]formatLayout{
	native.FormatARGB8888: {r: 2, g: 1, b: 0, a: 3},
	native.FormatXRGB8888: {r: 2, g: 1, b: 0, a: 3, opaque: true},
	native.FormatABGR8888: {r: 0, g: 1, b: 2, a: 3},
	native.FormatXBGR8888: {r: 0, g: 1, b: 2, a: 3, opaque: true},
}

// decodePixels converts format-encoded rows into a new RGBA image.
func decodePixels(layout formatLayout, stride, width, height int, data []byte) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := data[y*stride:]
		out := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			px := row[x*bytesPerPixel : x*bytesPerPixel+bytesPerPixel]
			o := out[x*bytesPerPixel : x*bytesPerPixel+bytesPerPixel]
			o[0] = px[layout.r]
			o[1] = px[layout.g]
			o[2] = px[layout.b]
			if layout.opaque {
				o[3] = 0xff
			} else {
				o[3] = px[layout.a]
			}
		}
	}
	return img
}

// encodePixel writes one premultiplied RGBA pixel in layout order.
func encodePixel(layout formatLayout, dst []byte, r, g, b, a uint8) {
	dst[layout.r] = r
	dst[layout.g] = g
	dst[layout.b] = b
	if layout.opaque {
		a = 0xff
	}
	dst[layout.a] = a
}
