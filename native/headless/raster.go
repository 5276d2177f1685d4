package headless

import (
	"image"
	"image/color"
	"math"

	"github.com/bnema/wlrwrap/geom"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"
)

// unitSquare is traversed in this order when building the quad outline.
var unitSquare = [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// fillQuad composites c over the target inside the unit square mapped
// through m, clipped to the scissor.
func (r *Renderer) fillQuad(m geom.Matrix, c color.RGBA) {
	clip := r.clip()
	if clip.Empty() || c == (color.RGBA{}) {
		return
	}

	ox, oy := float32(clip.Min.X), float32(clip.Min.Y)
	poly := make([][2]float32, 0, len(unitSquare))
	for _, corner := range unitSquare {
		x, y := m.Apply(corner[0], corner[1])
		poly = append(poly, [2]float32{x - ox, y - oy})
	}
	poly = clipPolygon(poly, float32(clip.Dx()), float32(clip.Dy()))
	if len(poly) < 3 {
		return
	}

	z := vector.NewRasterizer(clip.Dx(), clip.Dy())
	z.MoveTo(poly[0][0], poly[0][1])
	for _, p := range poly[1:] {
		z.LineTo(p[0], p[1])
	}
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, clip.Dx(), clip.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	draw.DrawMask(r.target, clip, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}

// clipPolygon clips a convex or concave polygon to [0,w]×[0,h]
// (Sutherland-Hodgman), so the rasterizer never sees points off its grid.
func clipPolygon(poly [][2]float32, w, h float32) [][2]float32 {
	edges := []struct {
		inside func(p [2]float32) bool
		cross  func(a, b [2]float32) [2]float32
	}{
		{
			inside: func(p [2]float32) bool { return p[0] >= 0 },
			cross:  func(a, b [2]float32) [2]float32 { return lerpAtX(a, b, 0) },
		},
		{
			inside: func(p [2]float32) bool { return p[0] <= w },
			cross:  func(a, b [2]float32) [2]float32 { return lerpAtX(a, b, w) },
		},
		{
			inside: func(p [2]float32) bool { return p[1] >= 0 },
			cross:  func(a, b [2]float32) [2]float32 { return lerpAtY(a, b, 0) },
		},
		{
			inside: func(p [2]float32) bool { return p[1] <= h },
			cross:  func(a, b [2]float32) [2]float32 { return lerpAtY(a, b, h) },
		},
	}

	for _, e := range edges {
		if len(poly) == 0 {
			return nil
		}
		in := poly
		poly = make([][2]float32, 0, len(in)+2)
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case e.inside(cur) && e.inside(prev):
				poly = append(poly, cur)
			case e.inside(cur):
				poly = append(poly, e.cross(prev, cur), cur)
			case e.inside(prev):
				poly = append(poly, e.cross(prev, cur))
			}
			prev = cur
		}
	}
	return poly
}

func lerpAtX(a, b [2]float32, x float32) [2]float32 {
	t := (x - a[0]) / (b[0] - a[0])
	return [2]float32{x, a[1] + t*(b[1]-a[1])}
}

func lerpAtY(a, b [2]float32, y float32) [2]float32 {
	t := (y - a[1]) / (b[1] - a[1])
	return [2]float32{a[0] + t*(b[0]-a[0]), y}
}

// drawTexture samples the src region of tex onto the unit square mapped
// through m, scaled by alpha and clipped to the scissor.
func (r *Renderer) drawTexture(tex *Texture, src geom.FBox, m geom.Matrix, alpha float32) {
	clip := r.clip()
	if clip.Empty() || src.Empty() || alpha <= 0 {
		return
	}

	sr := image.Rect(
		int(math.Floor(src.X)), int(math.Floor(src.Y)),
		int(math.Ceil(src.X+src.Width)), int(math.Ceil(src.Y+src.Height)),
	).Intersect(tex.img.Rect)
	if sr.Empty() {
		return
	}

	// The sampled region is copied to the origin so the transform only ever
	// sees a zero-based source rectangle.
	crop := withAlpha(tex.img, sr, alpha)

	s2d := m.
		Scale(float32(1/src.Width), float32(1/src.Height)).
		Translate(float32(float64(sr.Min.X)-src.X), float32(float64(sr.Min.Y)-src.Y))

	aff := f64.Aff3{
		float64(s2d[0]), float64(s2d[1]), float64(s2d[2]),
		float64(s2d[3]), float64(s2d[4]), float64(s2d[5]),
	}

	dst := r.target.SubImage(clip).(*image.RGBA)
	draw.ApproxBiLinear.Transform(dst, aff, crop, crop.Bounds(), draw.Over, nil)
}

// withAlpha copies sr of img to a zero-based image, multiplying every
// premultiplied channel by alpha.
func withAlpha(img *image.RGBA, sr image.Rectangle, alpha float32) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, sr.Dx(), sr.Dy()))
	if alpha >= 1 {
		draw.Copy(out, image.Point{}, img, sr, draw.Src, nil)
		return out
	}

	for y := 0; y < sr.Dy(); y++ {
		in := img.Pix[img.PixOffset(sr.Min.X, sr.Min.Y+y):]
		o := out.Pix[y*out.Stride:]
		for i := 0; i < sr.Dx()*bytesPerPixel; i++ {
			o[i] = uint8(math.Round(float64(in[i]) * float64(alpha)))
		}
	}
	return out
}
