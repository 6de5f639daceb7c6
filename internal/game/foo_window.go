package game

import (
	"k9console/internal/shared"
	"k9console/pkg/consoletypes"
)

// FooWindow is the sample debug window.
type FooWindow struct {
	xyz *shared.Handle[Vec3]
}

// Draw implements Drawable.Draw
func (w *FooWindow) Draw(ui consoletypes.Surface) {
	ui.Label("hello from foo window")

	v, err := w.xyz.Load()
	if err != nil {
		return
	}
	ui.Separator()
	ui.Value("x", v.X)
	ui.Value("y", v.Y)
	ui.Value("z", v.Z)
}
