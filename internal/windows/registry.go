// Package windows provides the debug window registry.
// Each window pairs a Drawable with an open flag; the UI backend draws open
// windows once per frame and the console toggles them through the execution context.
package windows

import (
	"sort"
	"sync"

	"k9console/internal/logger"
	"k9console/pkg/consoletypes"
)

type window struct {
	drawable consoletypes.Drawable
	open     bool
}

// Registry manages debug window registration and open state.
type Registry struct {
	mu      sync.RWMutex
	windows map[string]*window
}

// NewRegistry creates an empty window registry.
func NewRegistry() *Registry {
	return &Registry{
		windows: make(map[string]*window),
	}
}

// Register inserts or replaces the window under name. The window starts closed,
// including when it replaces an existing one.
func (r *Registry) Register(name string, drawable consoletypes.Drawable) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.windows[name]; exists {
		logger.Debug("Window replaced", "window", name)
	}
	r.windows[name] = &window{drawable: drawable}
}

// SetOpen sets the open flag of a registered window. Unknown names are a
// silent no-op and never create an entry.
func (r *Registry) SetOpen(name string, open bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, exists := r.windows[name]
	if !exists {
		logger.Trace("Ignoring open state for unknown window", "window", name, "open", open)
		return
	}
	w.open = open
}

// Toggle flips the open flag of a registered window and reports the new state.
// Unknown names return false.
func (r *Registry) Toggle(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, exists := r.windows[name]
	if !exists {
		return false
	}
	w.open = !w.open
	return w.open
}

// IsOpen reports whether the window is registered and open.
func (r *Registry) IsOpen(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, exists := r.windows[name]
	return exists && w.open
}

// Has reports whether a window is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.windows[name]
	return exists
}

// Names returns all registered window names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.windows))
	for name := range r.windows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OpenNames returns the names of open windows in sorted order.
func (r *Registry) OpenNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for name, w := range r.windows {
		if w.open {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered windows.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.windows)
}

// Draw draws the named window onto ui if it is open and reports whether it drew.
// The drawable runs without the registry lock held.
func (r *Registry) Draw(name string, ui consoletypes.Surface) bool {
	r.mu.RLock()
	w, exists := r.windows[name]
	var drawable consoletypes.Drawable
	if exists && w.open {
		drawable = w.drawable
	}
	r.mu.RUnlock()

	if drawable == nil {
		return false
	}
	drawable.Draw(ui)
	return true
}
