package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDestroyOwnedReleasesOnce(t *testing.T) {
	releases := 0
	o := New(Owned, func() { releases++ })

	o.Destroy()
	o.Destroy()

	assert.Equal(t, 1, releases)
	assert.True(t, o.Destroyed())
	assert.True(t, o.Owned())
}

func TestDestroyBorrowedNeverReleases(t *testing.T) {
	released := false
	o := New(Borrowed, func() { released = true })

	o.Destroy()

	assert.False(t, released)
	assert.True(t, o.Destroyed())
	assert.Equal(t, "borrowed", o.Ownership().String())
}

func TestTeardownRunsBeforeRelease(t *testing.T) {
	var order []string
	o := New(Owned, func() { order = append(order, "release") })
	o.OnTeardown(func() { order = append(order, "invalidate") })
	o.OnTeardown(func() { order = append(order, "second hook") })

	o.Destroy()

	assert.Equal(t, []string{"invalidate", "second hook", "release"}, order)
}

func TestChildrenDestroyedFirst(t *testing.T) {
	var order []string
	parent := New(Owned, func() { order = append(order, "parent") })
	first := New(Borrowed, nil)
	first.OnTeardown(func() { order = append(order, "first") })
	second := New(Owned, func() { order = append(order, "second") })

	first.SetParent(parent)
	second.SetParent(parent)
	assert.Len(t, parent.Children(), 2)
	assert.Same(t, parent, first.Parent())

	parent.Destroy()

	assert.Equal(t, []string{"second", "first", "parent"}, order)
	assert.True(t, first.Destroyed())
	assert.True(t, second.Destroyed())
	assert.Empty(t, parent.Children())
}

func TestChildDestroyedAloneDetaches(t *testing.T) {
	parent := New(Owned, nil)
	child := New(Owned, nil)
	child.SetParent(parent)

	child.Destroy()

	assert.Empty(t, parent.Children())
	assert.Nil(t, child.Parent())

	parent.Destroy()
}

func TestReparent(t *testing.T) {
	a := New(Owned, nil)
	b := New(Owned, nil)
	child := New(Borrowed, nil)

	child.SetParent(a)
	child.SetParent(b)
	assert.Empty(t, a.Children())
	assert.Len(t, b.Children(), 1)

	child.SetParent(nil)
	assert.Empty(t, b.Children())
}

func TestDestroyReentrant(t *testing.T) {
	releases := 0
	var o *Object
	o = New(Owned, func() {
		releases++
		o.Destroy()
	})
	o.OnTeardown(func() {
		assert.True(t, o.Destroyed(), "object reports destroyed while tearing down")
	})

	o.Destroy()

	assert.Equal(t, 1, releases)
}
