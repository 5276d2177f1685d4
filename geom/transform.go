package geom

// Transform is a wl_output_transform value.
type Transform int32

// Transform constants for output rotation and flipping
const (
	TransformNormal     Transform = iota // No transformation
	Transform90                          // 90 degree counter-clockwise rotation
	Transform180                         // 180 degree rotation
	Transform270                         // 270 degree counter-clockwise rotation
	TransformFlipped                     // Horizontal flip
	TransformFlipped90                   // Horizontal flip + 90 degree rotation
	TransformFlipped180                  // Horizontal flip + 180 degree rotation
	TransformFlipped270                  // Horizontal flip + 270 degree rotation
)

var transformMatrices = [...]Matrix{
	TransformNormal:     {1, 0, 0, 0, 1, 0, 0, 0, 1},
	Transform90:         {0, 1, 0, -1, 0, 0, 0, 0, 1},
	Transform180:        {-1, 0, 0, 0, -1, 0, 0, 0, 1},
	Transform270:        {0, -1, 0, 1, 0, 0, 0, 0, 1},
	TransformFlipped:    {-1, 0, 0, 0, 1, 0, 0, 0, 1},
	TransformFlipped90:  {0, 1, 0, 1, 0, 0, 0, 0, 1},
	TransformFlipped180: {1, 0, 0, 0, -1, 0, 0, 0, 1},
	TransformFlipped270: {0, -1, 0, -1, 0, 0, 0, 0, 1},
}

// Valid reports whether t is one of the eight defined transforms.
func (t Transform) Valid() bool {
	return t >= TransformNormal && t <= TransformFlipped270
}

// Matrix returns the rotation/reflection matrix of the transform. Unknown
// values map to the identity.
func (t Transform) Matrix() Matrix {
	if !t.Valid() {
		return Identity()
	}
	return transformMatrices[t]
}

func (t Transform) String() string {
	switch t {
	case TransformNormal:
		return "normal"
	case Transform90:
		return "90"
	case Transform180:
		return "180"
	case Transform270:
		return "270"
	case TransformFlipped:
		return "flipped"
	case TransformFlipped90:
		return "flipped-90"
	case TransformFlipped180:
		return "flipped-180"
	case TransformFlipped270:
		return "flipped-270"
	default:
		return "unknown"
	}
}
