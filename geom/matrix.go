package geom

import "math"

// Matrix is a row-major 3x3 matrix, laid out like a wlroots float[9].
type Matrix [9]float32

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Mul returns m × b.
func (m Matrix) Mul(b Matrix) Matrix {
	var p Matrix
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			p[row*3+col] = m[row*3]*b[col] + m[row*3+1]*b[3+col] + m[row*3+2]*b[6+col]
		}
	}
	return p
}

// Transpose returns the transposed matrix.
func (m Matrix) Transpose() Matrix {
	return Matrix{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Translate post-multiplies a translation.
func (m Matrix) Translate(x, y float32) Matrix {
	return m.Mul(Matrix{1, 0, x, 0, 1, y, 0, 0, 1})
}

// Scale post-multiplies a scale.
func (m Matrix) Scale(x, y float32) Matrix {
	return m.Mul(Matrix{x, 0, 0, 0, y, 0, 0, 0, 1})
}

// Rotate post-multiplies a rotation of rad radians.
func (m Matrix) Rotate(rad float32) Matrix {
	s, c := math.Sincos(float64(rad))
	return m.Mul(Matrix{float32(c), float32(-s), 0, float32(s), float32(c), 0, 0, 0, 1})
}

// Transform post-multiplies an output transform.
func (m Matrix) Transform(t Transform) Matrix {
	return m.Mul(t.Matrix())
}

// Apply maps a point through the affine part of the matrix.
func (m Matrix) Apply(x, y float32) (float32, float32) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// Projection builds the matrix that maps a width×height buffer into clip
// space for the given output transform.
func Projection(width, height int, t Transform) Matrix {
	tm := t.Matrix()
	x := 2 / float32(width)
	y := 2 / float32(height)

	var m Matrix
	m[0] = x * tm[0]
	m[1] = x * tm[1]
	m[3] = y * -tm[3]
	m[4] = y * -tm[4]

	m[2] = -copysign(m[0] + m[1])
	m[5] = -copysign(m[3] + m[4])

	m[8] = 1
	return m
}

// ProjectBox builds the matrix that maps the unit square onto box, rotated
// around its center and transformed, then multiplied by projection.
func ProjectBox(box Box, t Transform, rotation float32, projection Matrix) Matrix {
	m := Identity().Translate(float32(box.X), float32(box.Y))

	if rotation != 0 {
		m = m.Translate(float32(box.Width/2), float32(box.Height/2))
		m = m.Rotate(rotation)
		m = m.Translate(-float32(box.Width/2), -float32(box.Height/2))
	}

	m = m.Scale(float32(box.Width), float32(box.Height))

	if t != TransformNormal {
		m = m.Translate(0.5, 0.5)
		m = m.Transform(t)
		m = m.Translate(-0.5, -0.5)
	}

	return projection.Mul(m)
}

func copysign(v float32) float32 {
	return float32(math.Copysign(1, float64(v)))
}
