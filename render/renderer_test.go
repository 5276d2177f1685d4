package render

import (
	"image"
	"image/color"
	"io"
	"testing"

	"github.com/bnema/wlrwrap/backend"
	"github.com/bnema/wlrwrap/geom"
	"github.com/bnema/wlrwrap/native"
	"github.com/bnema/wlrwrap/native/headless"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLibrary(opts ...headless.Option) *headless.Library {
	return headless.New(append([]headless.Option{headless.WithLogger(log.New(io.Discard))}, opts...)...)
}

func newRenderer(t *testing.T) (*backend.Backend, *Renderer) {
	t.Helper()
	b := backend.New(newLibrary().NewBackend())
	r := AutoCreate(b)
	require.NotNil(t, r)
	return b, r
}

// readARGB reads w×h pixels at (x, y) as ARGB8888.
func readARGB(t *testing.T, r *Renderer, x, y, w, h uint32) []byte {
	t.Helper()
	data := make([]byte, w*h*4)
	require.True(t, r.ReadPixels(native.FormatARGB8888, w*4, w, h, x, y, 0, 0, data))
	return data
}

func TestAutoCreate(t *testing.T) {
	b, r := newRenderer(t)

	assert.False(t, r.Owned(), "the backend owns the renderer")
	assert.Same(t, b.Object, r.Parent())

	none := backend.New(newLibrary(headless.WithoutRenderer()).NewBackend())
	assert.Nil(t, AutoCreate(none))
	assert.Nil(t, AutoCreate(nil))
}

func TestBackendDestroysRenderer(t *testing.T) {
	b, r := newRenderer(t)
	h := r.Handle().(*headless.Renderer)

	b.Destroy()

	assert.True(t, r.Destroyed(), "child wrapper is torn down with the backend")
	assert.True(t, h.Destroyed(), "native renderer is freed by the backend")
	assert.Empty(t, b.Children())
}

func TestRendererDestroyDoesNotFreeHandle(t *testing.T) {
	b, r := newRenderer(t)
	h := r.Handle().(*headless.Renderer)

	r.Destroy()

	assert.False(t, h.Destroyed(), "borrowed handle survives the wrapper")
	assert.Empty(t, b.Children())
}

func TestClearRedReadsBackRed(t *testing.T) {
	_, r := newRenderer(t)

	r.Begin(16, 16)
	r.Clear(geom.Color{R: 1, G: 0, B: 0, A: 1})
	r.End()

	px := readARGB(t, r, 0, 0, 16, 16)
	for i := 0; i < len(px); i += 4 {
		require.Equal(t, []byte{0, 0, 255, 255}, px[i:i+4], "pixel %d", i/4)
	}
}

func TestClearColor(t *testing.T) {
	_, r := newRenderer(t)

	r.Begin(1, 1)
	r.ClearColor(color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff})
	r.End()

	assert.Equal(t, []byte{0x33, 0x22, 0x11, 0xff}, readARGB(t, r, 0, 0, 1, 1))
}

func TestRenderRectWhite(t *testing.T) {
	_, r := newRenderer(t)

	r.Begin(32, 32)
	r.Clear(geom.Black)
	r.RenderRect(geom.Box{X: 0, Y: 0, Width: 10, Height: 10}, geom.White, geom.Identity())
	r.End()

	px := readARGB(t, r, 0, 0, 10, 10)
	for i := 0; i < len(px); i += 4 {
		require.Equal(t, []byte{255, 255, 255, 255}, px[i:i+4], "pixel %d", i/4)
	}
	assert.Equal(t, []byte{0, 0, 0, 255}, readARGB(t, r, 10, 0, 1, 1))
}

func TestRenderRectZeroSizeIsNoop(t *testing.T) {
	tests := []struct {
		name string
		box  geom.Box
	}{
		{"zero width", geom.Box{X: 1, Y: 1, Width: 0, Height: 10}},
		{"zero height", geom.Box{X: 1, Y: 1, Width: 10, Height: 0}},
		{"zero size", geom.Box{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, r := newRenderer(t)
			r.Begin(12, 12)
			r.Clear(geom.Black)
			before := readARGB(t, r, 0, 0, 12, 12)
			r.RenderRect(tt.box, geom.White, geom.Identity())
			r.End()
			assert.Equal(t, before, readARGB(t, r, 0, 0, 12, 12))
		})
	}
}

func TestRenderRectImageAndScissorRect(t *testing.T) {
	_, r := newRenderer(t)

	r.Begin(10, 10)
	r.Clear(geom.Black)
	r.ScissorRect(image.Rect(0, 0, 5, 10))
	r.RenderRectImage(image.Rect(0, 0, 10, 10), color.White, geom.Identity())
	r.ScissorRect(image.Rectangle{})
	r.End()

	assert.Equal(t, []byte{255, 255, 255, 255}, readARGB(t, r, 4, 4, 1, 1))
	assert.Equal(t, []byte{0, 0, 0, 255}, readARGB(t, r, 5, 4, 1, 1))
}

func TestRenderQuadWithTranslation(t *testing.T) {
	_, r := newRenderer(t)

	r.Begin(8, 8)
	r.Clear(geom.Transparent)
	r.RenderQuadColor(color.RGBA{G: 255, A: 255}, geom.Identity().Translate(4, 4).Scale(2, 2))
	r.End()

	assert.Equal(t, []byte{0, 255, 0, 255}, readARGB(t, r, 5, 5, 1, 1))
	assert.Equal(t, []byte{0, 0, 0, 0}, readARGB(t, r, 3, 3, 1, 1))
}

func TestTextureRendering(t *testing.T) {
	_, r := newRenderer(t)

	// 2x1 ARGB8888: blue, red
	pixels := []byte{255, 0, 0, 255, 0, 0, 255, 255}
	tex := TextureFromPixels(r, native.FormatARGB8888, 8, 2, 1, pixels)
	require.NotNil(t, tex)
	assert.True(t, tex.Owned())
	assert.Same(t, r.Object, tex.Parent())

	r.Begin(4, 4)
	r.Clear(geom.Transparent)
	require.True(t, r.RenderTexture(tex, geom.Identity(), 2, 3, 1))
	r.End()
	assert.Equal(t, pixels, readARGB(t, r, 2, 3, 2, 1))

	r.Begin(4, 4)
	r.Clear(geom.Transparent)
	m := geom.ProjectBox(geom.Box{Width: 1, Height: 1}, geom.TransformNormal, 0, geom.Identity())
	require.True(t, r.RenderSubtexture(tex, geom.FBox{X: 1, Width: 1, Height: 1}, m, 1))
	r.End()
	assert.Equal(t, []byte{0, 0, 255, 255}, readARGB(t, r, 0, 0, 1, 1), "subtexture picks the red texel")

	assert.False(t, r.RenderTexture(nil, geom.Identity(), 0, 0, 1))
	assert.Nil(t, TextureFromPixels(r, native.FormatARGB8888, 8, 2, 1, pixels[:4]))
}

func TestTextureDestroyedWithRenderer(t *testing.T) {
	b, r := newRenderer(t)
	tex := TextureFromPixels(r, native.FormatXRGB8888, 4, 1, 1, []byte{1, 2, 3, 4})
	require.NotNil(t, tex)
	h := tex.Handle().(*headless.Texture)

	b.Destroy()
	assert.True(t, h.Destroyed())
	assert.True(t, tex.Destroyed())
}

func TestBeginWithBuffer(t *testing.T) {
	lib := newLibrary()
	b := backend.New(lib.NewBackend())
	r := AutoCreate(b)
	require.NotNil(t, r)

	nb := lib.NewBuffer(4, 4)
	buf := BufferFrom(nb)
	require.NotNil(t, buf)
	assert.False(t, buf.Owned())
	assert.Equal(t, 4, buf.Width())

	require.True(t, r.BeginWithBuffer(buf))
	r.Clear(geom.Blue)
	r.End()

	assert.Equal(t, []byte{0, 0, 255, 255}, nb.Image().Pix[:4])
	assert.False(t, r.BeginWithBuffer(nil))

	buf.Destroy()
	assert.False(t, nb.Dropped(), "borrowed buffer is not dropped")
}

func TestFormatsAndDisplaySupport(t *testing.T) {
	lib := newLibrary()
	r := AutoCreate(backend.New(lib.NewBackend()))
	require.NotNil(t, r)

	assert.ElementsMatch(t, []uint32{
		native.FormatARGB8888, native.FormatXRGB8888,
		native.FormatABGR8888, native.FormatXBGR8888,
	}, r.ShmTextureFormats())
	assert.Zero(t, r.DMABufTextureFormats().Len())
	assert.Equal(t, -1, r.DRMFd())

	d := lib.NewDisplay("wayland-1")
	assert.True(t, r.InitShm(d))
	assert.True(t, r.InitDisplay(d))
	assert.True(t, d.HasGlobal("wl_shm"))
}
