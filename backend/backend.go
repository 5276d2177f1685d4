// Package backend wraps a native backend. The backend owns the renderer it
// selects, so renderer wrappers are created as its children and torn down
// before it.
package backend

import (
	"github.com/bnema/wlrwrap/internal/object"
	"github.com/bnema/wlrwrap/native"
)

// Backend is an owning wrapper around a native.Backend.
type Backend struct {
	*object.Object
	handle native.Backend
}

// New takes ownership of h. It returns nil for a nil handle.
func New(h native.Backend) *Backend {
	if h == nil {
		return nil
	}
	b := &Backend{handle: h}
	b.Object = object.New(object.Owned, h.Destroy)
	return b
}

// Start starts the native backend.
func (b *Backend) Start() bool {
	return b.handle.Start()
}

// Handle returns the native backend.
func (b *Backend) Handle() native.Backend {
	return b.handle
}
