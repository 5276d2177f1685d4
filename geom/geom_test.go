package geom

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxContains(t *testing.T) {
	b := Box{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"origin corner", 10, 20, true},
		{"center", 60, 45, true},
		{"just inside right edge", 109.999, 69.999, true},
		{"right edge", 110, 30, false},
		{"bottom edge", 30, 70, false},
		{"left of box", 9.5, 30, false},
		{"above box", 30, 19.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Contains(tt.x, tt.y))
		})
	}

	assert.False(t, Box{Width: 0, Height: 10}.Contains(0, 0), "empty box contains nothing")
}

func TestBoxClosestPoint(t *testing.T) {
	b := Box{X: 0, Y: 0, Width: 100, Height: 100}

	x, y := b.ClosestPoint(50, 50)
	assert.Equal(t, 50.0, x)
	assert.Equal(t, 50.0, y)

	x, y = b.ClosestPoint(-20, 300)
	assert.Equal(t, 0.0, x)
	assert.InDelta(t, 100-closestInset, y, 1e-12)
	assert.True(t, b.Contains(x, y), "clamped point must be inside the box")

	x, y = Box{}.ClosestPoint(1, 1)
	assert.True(t, math.IsNaN(x))
	assert.True(t, math.IsNaN(y))
}

func TestBoxRectRoundTrip(t *testing.T) {
	r := image.Rect(3, 4, 13, 24)
	b := BoxFromRect(r)
	assert.Equal(t, Box{X: 3, Y: 4, Width: 10, Height: 20}, b)
	assert.Equal(t, r, b.Rect())

	got, ok := b.Intersect(Box{X: 8, Y: 0, Width: 100, Height: 10})
	assert.True(t, ok)
	assert.Equal(t, Box{X: 8, Y: 4, Width: 5, Height: 6}, got)

	_, ok = b.Intersect(Box{X: 100, Y: 100, Width: 1, Height: 1})
	assert.False(t, ok)
}

func TestColorConversions(t *testing.T) {
	assert.Equal(t, Red, ColorFrom(color.RGBA{R: 0xff, A: 0xff}))
	assert.Equal(t, White, ColorFrom(color.White))

	c := ARGB(0x80ff8000)
	assert.InDelta(t, 1.0, c.R, 1e-6)
	assert.InDelta(t, 128.0/255.0, c.G, 1e-6)
	assert.InDelta(t, 0.0, c.B, 1e-6)
	assert.InDelta(t, 128.0/255.0, c.A, 1e-6)
	assert.Equal(t, uint32(0x80ff8000), c.ARGB())

	assert.Equal(t, [4]float32{1, 0, 0, 1}, Red.Array())
	assert.Equal(t, Red, ColorFromArray(Red.Array()))

	clamped := Color{R: -1, G: 2, B: float32(math.NaN()), A: 0.5}.Clamp()
	assert.Equal(t, Color{R: 0, G: 1, B: 0, A: 0.5}, clamped)
}

func TestMatrixBasics(t *testing.T) {
	id := Identity()
	m := Matrix{1, 2, 3, 4, 5, 6, 7, 8, 9}

	assert.Equal(t, m, id.Mul(m))
	assert.Equal(t, m, m.Mul(id))
	assert.Equal(t, Matrix{1, 4, 7, 2, 5, 8, 3, 6, 9}, m.Transpose())

	x, y := Identity().Translate(5, 7).Scale(2, 3).Apply(1, 1)
	assert.Equal(t, float32(7), x)
	assert.Equal(t, float32(10), y)
}

func TestProjection(t *testing.T) {
	p := Projection(200, 100, TransformNormal)

	x, y := p.Apply(0, 0)
	assert.InDelta(t, -1, x, 1e-6)
	assert.InDelta(t, 1, y, 1e-6)

	x, y = p.Apply(200, 100)
	assert.InDelta(t, 1, x, 1e-6)
	assert.InDelta(t, -1, y, 1e-6)
}

func TestProjectBox(t *testing.T) {
	m := ProjectBox(Box{X: 10, Y: 20, Width: 30, Height: 40}, TransformNormal, 0, Identity())

	x, y := m.Apply(0, 0)
	assert.Equal(t, float32(10), x)
	assert.Equal(t, float32(20), y)

	x, y = m.Apply(1, 1)
	assert.Equal(t, float32(40), x)
	assert.Equal(t, float32(60), y)

	flipped := ProjectBox(Box{Width: 10, Height: 10}, TransformFlipped, 0, Identity())
	x, _ = flipped.Apply(0, 0)
	assert.InDelta(t, 10, x, 1e-5, "flip mirrors the unit square inside the box")
}

func TestTransformString(t *testing.T) {
	assert.Equal(t, "normal", TransformNormal.String())
	assert.Equal(t, "flipped-270", TransformFlipped270.String())
	assert.Equal(t, "unknown", Transform(42).String())
	assert.Equal(t, Identity(), Transform(42).Matrix())
}
