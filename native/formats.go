package native

import "fmt"

// Fourcc packs four characters into a DRM format code.
func Fourcc(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

// DRM formats understood by the software renderer. Names follow
// drm_fourcc.h, so ARGB8888 is stored as B, G, R, A bytes in memory.
var (
	FormatARGB8888 = Fourcc('A', 'R', '2', '4')
	FormatXRGB8888 = Fourcc('X', 'R', '2', '4')
	FormatABGR8888 = Fourcc('A', 'B', '2', '4')
	FormatXBGR8888 = Fourcc('X', 'B', '2', '4')
)

// Format modifiers.
const (
	ModifierLinear  uint64 = 0
	ModifierInvalid uint64 = 0x00ffffffffffffff
)

// FormatName renders a fourcc as its four characters, e.g. "AR24".
func FormatName(format uint32) string {
	b := []byte{byte(format), byte(format >> 8), byte(format >> 16), byte(format >> 24)}
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return fmt.Sprintf("0x%08x", format)
		}
	}
	return string(b)
}

// DRMFormat is a format code with the modifiers it supports.
type DRMFormat struct {
	Format    uint32
	Modifiers []uint64
}

// DRMFormatSet is a read-only collection of DRM formats. It is owned by the
// renderer that returned it and stays valid until that renderer goes away.
type DRMFormatSet struct {
	formats []DRMFormat
}

// NewDRMFormatSet builds a set. Implementations of Renderer use it to
// publish their formats.
func NewDRMFormatSet(formats ...DRMFormat) *DRMFormatSet {
	return &DRMFormatSet{formats: formats}
}

// Len returns the number of formats. A nil set is empty.
func (s *DRMFormatSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.formats)
}

// Formats returns a copy of the formats.
func (s *DRMFormatSet) Formats() []DRMFormat {
	if s == nil {
		return nil
	}
	out := make([]DRMFormat, len(s.formats))
	for i, f := range s.formats {
		out[i] = DRMFormat{Format: f.Format, Modifiers: append([]uint64(nil), f.Modifiers...)}
	}
	return out
}

// Has reports whether the set contains format with modifier.
func (s *DRMFormatSet) Has(format uint32, modifier uint64) bool {
	if s == nil {
		return false
	}
	for _, f := range s.formats {
		if f.Format != format {
			continue
		}
		for _, m := range f.Modifiers {
			if m == modifier {
				return true
			}
		}
	}
	return false
}
