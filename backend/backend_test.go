package backend

import (
	"io"
	"testing"

	"github.com/bnema/wlrwrap/internal/object"
	"github.com/bnema/wlrwrap/native/headless"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendLifetime(t *testing.T) {
	lib := headless.New(headless.WithLogger(log.New(io.Discard)))
	h := lib.NewBackend()

	b := New(h)
	require.NotNil(t, b)
	assert.True(t, b.Owned())
	assert.Same(t, h, b.Handle())

	var destroyed int
	h.Events().Destroy.Connect(func(*headless.Backend) { destroyed++ })

	renderer := h.AutoCreateRenderer().(*headless.Renderer)
	child := object.New(object.Borrowed, nil)
	child.SetParent(b.Object)
	child.OnTeardown(func() {
		assert.Zero(t, destroyed, "children go before the native backend")
		assert.False(t, renderer.Destroyed())
	})

	require.True(t, b.Start())
	b.Destroy()
	b.Destroy()

	assert.Equal(t, 1, destroyed)
	assert.True(t, child.Destroyed())
	assert.True(t, renderer.Destroyed())
	assert.False(t, h.Start(), "destroyed backend cannot start")
}

func TestNewNil(t *testing.T) {
	assert.Nil(t, New(nil))
}
