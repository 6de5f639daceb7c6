package shared

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vec3 struct {
	X, Y, Z float64
}

func TestHandle_ReadWrite(t *testing.T) {
	h := New(vec3{})
	defer h.Release()

	require.NoError(t, h.Write(func(v *vec3) { v.X = 1 }))
	v, err := h.Load()
	require.NoError(t, err)
	assert.Equal(t, vec3{X: 1}, v)

	require.NoError(t, h.Store(vec3{1, 2, 3}))
	require.NoError(t, h.Read(func(v vec3) {
		assert.Equal(t, 3.0, v.Z)
	}))
}

func TestHandle_CloneSharesStorage(t *testing.T) {
	director := New(vec3{})
	command := director.Clone()
	window := director.Clone()
	assert.Equal(t, 3, director.Refs())

	require.NoError(t, command.Write(func(v *vec3) { v.Y = 5 }))

	got, err := window.Load()
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.Y, "write through one owner is visible through another")
}

func TestHandle_ReleaseLifecycle(t *testing.T) {
	a := New(vec3{1, 1, 1})
	b := a.Clone()

	a.Release()
	assert.Equal(t, 1, b.Refs())
	assert.ErrorIs(t, a.Store(vec3{}), ErrReleased, "released reference is unusable")

	v, err := b.Load()
	require.NoError(t, err, "storage survives while an owner remains")
	assert.Equal(t, vec3{1, 1, 1}, v)

	b.Release()
	assert.Equal(t, 0, b.Refs())
	_, err = b.Load()
	assert.ErrorIs(t, err, ErrReleased)
}

func TestHandle_ReleaseIsIdempotent(t *testing.T) {
	a := New(0)
	b := a.Clone()

	a.Release()
	a.Release()
	a.Release()

	assert.Equal(t, 1, b.Refs())
	v, err := b.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

func TestHandle_CloneAfterRelease(t *testing.T) {
	a := New("state")
	a.Release()

	c := a.Clone()
	assert.ErrorIs(t, c.Store("again"), ErrReleased)
	assert.Equal(t, 0, c.Refs())
}

func TestHandle_ConcurrentWriters(t *testing.T) {
	h := New(0)
	defer h.Release()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		owner := h.Clone()
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer owner.Release()
			for j := 0; j < 100; j++ {
				_ = owner.Write(func(v *int) { *v++ })
			}
		}()
	}
	wg.Wait()

	v, err := h.Load()
	require.NoError(t, err)
	assert.Equal(t, 800, v)
	assert.Equal(t, 1, h.Refs())
}
