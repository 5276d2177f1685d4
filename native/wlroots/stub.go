//go:build !wlroots

// Package wlroots implements the native layer on top of wlroots 0.16 through
// cgo. Build with -tags wlroots to enable it; this build only reports that
// the binding is missing.
package wlroots

import "errors"

// ErrUnavailable is returned when the binding was not compiled in.
var ErrUnavailable = errors.New("wlroots support not compiled in (build with -tags wlroots)")

// Available reports whether the binding was compiled in.
func Available() bool { return false }

// Display stands in for the wl_display of the cgo build.
type Display struct{}

func NewDisplay() (*Display, error) { return nil, ErrUnavailable }

func (d *Display) Name() string { return "" }
func (d *Display) Destroy()     {}
