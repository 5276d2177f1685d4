//go:build wlroots

package wlroots

/*
#cgo pkg-config: wlroots wayland-server pixman-1
#include "glue.h"
*/
import "C"

import (
	"sync"
	"unsafe"
)

// handler receives a wl_signal notification forwarded from C.
type handler func(channel C.int, data unsafe.Pointer)

// Global registry for callbacks, since C cannot hold Go pointers.
var (
	handlersMu sync.RWMutex
	handlers   = make(map[uintptr]handler)
	nextID     uintptr
)

func register(h handler) uintptr {
	handlersMu.Lock()
	defer handlersMu.Unlock()
	nextID++
	handlers[nextID] = h
	return nextID
}

func unregister(id uintptr) {
	handlersMu.Lock()
	delete(handlers, id)
	handlersMu.Unlock()
}

//export goNotify
func goNotify(id C.uintptr_t, channel C.int, data unsafe.Pointer) {
	handlersMu.RLock()
	h := handlers[uintptr(id)]
	handlersMu.RUnlock()

	if h == nil {
		return
	}
	h(channel, data)
}

// listenerSet is the group of C listeners one Go object installed.
type listenerSet struct {
	id        uintptr
	listeners []*C.struct_go_listener
}

func newListenerSet(h handler) *listenerSet {
	return &listenerSet{id: register(h)}
}

func (s *listenerSet) listen(sig *C.struct_wl_signal, channel C.int) {
	if sig == nil {
		return
	}
	if l := C.go_listen(sig, C.uintptr_t(s.id), channel); l != nil {
		s.listeners = append(s.listeners, l)
	}
}

// remove detaches every listener from its signal. It must run before the
// object owning the signals is destroyed.
func (s *listenerSet) remove() {
	for _, l := range s.listeners {
		C.go_unlisten(l)
	}
	s.listeners = nil
	unregister(s.id)
}
