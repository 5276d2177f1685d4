// Package signal is a small listener registry modeled on wl_signal and
// wl_listener.
//
// A Signal keeps an ordered list of listeners and calls them synchronously
// on Emit. A Connector groups connections made on behalf of one owner so
// they can be dropped together before that owner releases its resources.
//
// Nothing in this package is safe for concurrent use. Signals are expected to
// be emitted and connected from the goroutine running the compositor event
// loop.
package signal

// Disconnecter is implemented by every connection handle.
type Disconnecter interface {
	Disconnect()
}

// Listener is a single connection to a Signal.
type Listener[T any] struct {
	signal  *Signal[T]
	notify  func(T)
	removed bool
}

// Disconnect removes the listener from its signal. Calling it more than once
// is a no-op.
func (l *Listener[T]) Disconnect() {
	if l.removed {
		return
	}
	l.removed = true
	l.signal.remove(l)
}

// Connected reports whether the listener is still attached.
func (l *Listener[T]) Connected() bool {
	return !l.removed
}

// Signal is an event source carrying a payload of type T.
// The zero value is ready to use.
type Signal[T any] struct {
	listeners []*Listener[T]
}

// Connect appends fn to the listener list.
func (s *Signal[T]) Connect(fn func(T)) *Listener[T] {
	l := &Listener[T]{signal: s, notify: fn}
	s.listeners = append(s.listeners, l)
	return l
}

// Emit calls every listener in connection order. Listeners removed while the
// emission is running are skipped; listeners added during it are not called
// until the next Emit.
func (s *Signal[T]) Emit(v T) {
	if len(s.listeners) == 0 {
		return
	}
	snapshot := make([]*Listener[T], len(s.listeners))
	copy(snapshot, s.listeners)
	for _, l := range snapshot {
		if l.removed {
			continue
		}
		l.notify(v)
	}
}

// Len returns the number of connected listeners.
func (s *Signal[T]) Len() int {
	return len(s.listeners)
}

// DisconnectAll drops every listener.
func (s *Signal[T]) DisconnectAll() {
	for _, l := range s.listeners {
		l.removed = true
	}
	s.listeners = nil
}

func (s *Signal[T]) remove(l *Listener[T]) {
	for i, cur := range s.listeners {
		if cur == l {
			s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
			return
		}
	}
}
