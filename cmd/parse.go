package cmd

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/bnema/wlrwrap/geom"
	"github.com/bnema/wlrwrap/native"
)

// parseColor reads #rrggbb or #rrggbbaa.
func parseColor(s string) (geom.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 6:
		hex += "ff"
	case 8:
	default:
		return geom.Color{}, fmt.Errorf("invalid color %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return geom.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	// rrggbbaa -> aarrggbb
	return geom.ARGB(uint32(v>>8) | uint32(v&0xff)<<24), nil
}

// parseInts splits a comma separated list of n integers.
func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("%q: want %d comma separated values", s, n)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}

// parseBox reads "x,y,width,height".
func parseBox(s string) (geom.Box, error) {
	v, err := parseInts(s, 4)
	if err != nil {
		return geom.Box{}, fmt.Errorf("invalid box %w", err)
	}
	if v[2] < 0 || v[3] < 0 {
		return geom.Box{}, fmt.Errorf("invalid box %q: negative size", s)
	}
	return geom.Box{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

// parsePoint reads "x,y".
func parsePoint(s string) (image.Point, error) {
	v, err := parseInts(s, 2)
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid point %w", err)
	}
	return image.Pt(v[0], v[1]), nil
}

// parseSize reads "WIDTHxHEIGHT".
func parseSize(s string) (int, int, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q: want WIDTHxHEIGHT", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if width < 0 || height < 0 {
		return 0, 0, fmt.Errorf("invalid size %q: negative size", s)
	}
	return width, height, nil
}

type coloredRect struct {
	box   geom.Box
	color geom.Color
}

// parseRect reads "x,y,width,height,#color".
func parseRect(s string) (coloredRect, error) {
	i := strings.LastIndex(s, ",")
	if i < 0 {
		return coloredRect{}, fmt.Errorf("invalid rect %q: want x,y,w,h,#color", s)
	}
	box, err := parseBox(s[:i])
	if err != nil {
		return coloredRect{}, err
	}
	c, err := parseColor(s[i+1:])
	if err != nil {
		return coloredRect{}, err
	}
	return coloredRect{box: box, color: c}, nil
}

var formatsByName = map[string]uint32{
	"AR24": native.FormatARGB8888,
	"XR24": native.FormatXRGB8888,
	"AB24": native.FormatABGR8888,
	"XB24": native.FormatXBGR8888,
}

// parseFormat accepts a fourcc name such as "AR24" or "ARGB8888".
func parseFormat(s string) (uint32, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	switch name {
	case "ARGB8888":
		name = "AR24"
	case "XRGB8888":
		name = "XR24"
	case "ABGR8888":
		name = "AB24"
	case "XBGR8888":
		name = "XB24"
	}
	if f, ok := formatsByName[name]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("unsupported format %q", s)
}
