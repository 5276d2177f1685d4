// Package object tracks native handle ownership and the parent/child tree
// that wrapper lifetimes hang off.
package object

// Ownership says whether a wrapper may destroy its native handle.
type Ownership int

const (
	// Borrowed handles are destroyed by whoever created them.
	Borrowed Ownership = iota
	// Owned handles are destroyed by the wrapper, exactly once.
	Owned
)

func (o Ownership) String() string {
	if o == Owned {
		return "owned"
	}
	return "borrowed"
}

// Object is embedded by every wrapper.
type Object struct {
	ownership  Ownership
	release    func()
	teardown   []func()
	parent     *Object
	children   []*Object
	destroying bool
	destroyed  bool
}

// New returns an object. release destroys the native handle and is only
// ever called when ownership is Owned.
func New(ownership Ownership, release func()) *Object {
	return &Object{ownership: ownership, release: release}
}

// Ownership returns the ownership flag set at construction.
func (o *Object) Ownership() Ownership {
	return o.ownership
}

// Owned reports whether the object destroys its native handle.
func (o *Object) Owned() bool {
	return o.ownership == Owned
}

// Destroyed reports whether Destroy has started.
func (o *Object) Destroyed() bool {
	return o.destroying || o.destroyed
}

// Parent returns the parent object, or nil.
func (o *Object) Parent() *Object {
	return o.parent
}

// Children returns a copy of the child list, oldest first.
func (o *Object) Children() []*Object {
	return append([]*Object(nil), o.children...)
}

// SetParent moves o under parent. A nil parent detaches it.
func (o *Object) SetParent(parent *Object) {
	if o.parent != nil {
		o.parent.removeChild(o)
	}
	o.parent = parent
	if parent != nil {
		parent.children = append(parent.children, o)
	}
}

// OnTeardown registers fn to run during Destroy, after the children are gone
// and before the native handle is released. Hooks run in registration order.
func (o *Object) OnTeardown(fn func()) {
	o.teardown = append(o.teardown, fn)
}

// Destroy tears the object down: children first (newest first), then the
// teardown hooks, then the native release if owned. Later calls do nothing.
func (o *Object) Destroy() {
	if o.destroying || o.destroyed {
		return
	}
	o.destroying = true

	for len(o.children) > 0 {
		child := o.children[len(o.children)-1]
		child.Destroy()
		// A child that was already torn down elsewhere may still be listed.
		o.removeChild(child)
	}

	for _, fn := range o.teardown {
		fn()
	}
	o.teardown = nil

	if o.ownership == Owned && o.release != nil {
		o.release()
	}
	o.release = nil

	if o.parent != nil {
		o.parent.removeChild(o)
		o.parent = nil
	}

	o.destroying = false
	o.destroyed = true
}

func (o *Object) removeChild(child *Object) {
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}
