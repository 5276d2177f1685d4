// Package headless is a pure-Go implementation of the native compositor
// layer. It renders in software into RGBA images and implements the wlroots
// cursor and output-layout semantics without any display server, which
// makes it suitable for tests and offline tooling.
package headless

import (
	"github.com/bnema/wlrwrap/native"
	"github.com/charmbracelet/log"
)

// Library is the entry point of the headless implementation.
type Library struct {
	log             *log.Logger
	failCursorAlloc bool
	noRenderer      bool
}

// Option configures a Library.
type Option func(*Library)

// WithCursorAllocFailure makes every CreateCursor call fail, simulating an
// out-of-memory condition in the allocator.
func WithCursorAllocFailure() Option {
	return func(l *Library) {
		l.failCursorAlloc = true
	}
}

// WithoutRenderer makes backends report that no renderer is available.
func WithoutRenderer() Option {
	return func(l *Library) {
		l.noRenderer = true
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(l *Library) {
		if logger != nil {
			l.log = logger
		}
	}
}

// New creates a headless library.
func New(opts ...Option) *Library {
	l := &Library{
		log: log.Default().WithPrefix("headless"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ native.Library = (*Library)(nil)

// CreateCursor allocates a cursor.
func (l *Library) CreateCursor() native.Cursor {
	if l.failCursorAlloc {
		l.log.Error("Failed to allocate wlr_cursor")
		return nil
	}
	return newCursor(l)
}

// CreateOutputLayout allocates an empty layout.
func (l *Library) CreateOutputLayout() native.OutputLayout {
	return newOutputLayout()
}

// NewBackend creates a backend that offers the software renderer.
func (l *Library) NewBackend() *Backend {
	return &Backend{lib: l}
}

// NewDisplay creates a display that records registered globals.
func (l *Library) NewDisplay(name string) *Display {
	return &Display{name: name}
}

// NewBuffer allocates a render target of the given size.
func (l *Library) NewBuffer(width, height int) *Buffer {
	return newBuffer(width, height)
}

// NewSurface creates a client surface stand-in.
func (l *Library) NewSurface(width, height int) *Surface {
	return &Surface{width: width, height: height}
}

// NewTabletTool creates a tablet tool for tablet events.
func (l *Library) NewTabletTool(toolType native.TabletToolType, serial uint64) *TabletTool {
	return &TabletTool{toolType: toolType, serial: serial}
}
