// Package consoletypes defines debug window types.
// This file contains the Drawable panel contract and the Surface it draws onto.
package consoletypes

// Surface is the drawing target owned by the UI backend. Drawables never keep a
// Surface beyond one Draw call.
type Surface interface {
	// Label draws a line of text.
	Label(text string)
	// Value draws a named value.
	Value(name string, v any)
	// Separator draws a horizontal rule.
	Separator()
}

// Drawable is a debug panel. The UI pass calls Draw once per frame while the
// window is open; the registry itself never calls it.
type Drawable interface {
	Draw(ui Surface)
}

// DrawFunc adapts a plain function to Drawable.
type DrawFunc func(ui Surface)

// Draw calls f(ui).
func (f DrawFunc) Draw(ui Surface) {
	f(ui)
}

// WindowRegistrar is the write side of the debug window registry handed to
// systems at init time. New windows start closed.
type WindowRegistrar interface {
	Register(name string, drawable Drawable)
}
