// Package shared provides a reference-counted, lock-guarded state cell.
//
// A Handle lets command handlers, window drawables and a system's update
// callback share one value. Every owner holds its own *Handle obtained from New
// or Clone and calls Release when done; the storage is dropped when the last
// owner releases. Each cell carries its own RWMutex, so unrelated cells never
// contend.
package shared

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrReleased is returned by any operation on a handle whose reference was
// released, or whose storage was dropped.
var ErrReleased = errors.New("shared state released")

type cell[T any] struct {
	mu    sync.RWMutex
	value *T
	refs  int
}

// Handle is one owning reference to a shared cell.
type Handle[T any] struct {
	c        *cell[T]
	released atomic.Bool
}

// New creates a cell holding v and returns its first reference.
func New[T any](v T) *Handle[T] {
	return &Handle[T]{c: &cell[T]{value: &v, refs: 1}}
}

// Clone returns a new owning reference to the same cell.
// Cloning a released handle returns a released handle.
func (h *Handle[T]) Clone() *Handle[T] {
	clone := &Handle[T]{c: h.c}
	if h.released.Load() {
		clone.released.Store(true)
		return clone
	}

	h.c.mu.Lock()
	defer h.c.mu.Unlock()
	if h.c.value == nil {
		clone.released.Store(true)
		return clone
	}
	h.c.refs++
	return clone
}

// Release drops this reference. Releasing the same handle twice has no
// further effect. When the last reference goes, the value is dropped.
func (h *Handle[T]) Release() {
	if !h.released.CompareAndSwap(false, true) {
		return
	}

	h.c.mu.Lock()
	defer h.c.mu.Unlock()
	h.c.refs--
	if h.c.refs <= 0 {
		h.c.refs = 0
		h.c.value = nil
	}
}

// Read runs fn with the current value under the read lock.
func (h *Handle[T]) Read(fn func(v T)) error {
	if h.released.Load() {
		return ErrReleased
	}

	h.c.mu.RLock()
	defer h.c.mu.RUnlock()
	if h.c.value == nil {
		return ErrReleased
	}
	fn(*h.c.value)
	return nil
}

// Write runs fn with a pointer to the value under the write lock.
// fn must not retain the pointer.
func (h *Handle[T]) Write(fn func(v *T)) error {
	if h.released.Load() {
		return ErrReleased
	}

	h.c.mu.Lock()
	defer h.c.mu.Unlock()
	if h.c.value == nil {
		return ErrReleased
	}
	fn(h.c.value)
	return nil
}

// Load returns a copy of the value.
func (h *Handle[T]) Load() (T, error) {
	var out T
	err := h.Read(func(v T) { out = v })
	return out, err
}

// Store replaces the value.
func (h *Handle[T]) Store(v T) error {
	return h.Write(func(p *T) { *p = v })
}

// Refs returns the number of live references to the cell.
func (h *Handle[T]) Refs() int {
	h.c.mu.RLock()
	defer h.c.mu.RUnlock()
	return h.c.refs
}
