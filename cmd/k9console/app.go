package main

import (
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"k9console/internal/config"
	"k9console/internal/console"
	"k9console/internal/game"
	"k9console/internal/host"
	"k9console/internal/ui"
)

// testModeSeed fixes the generated command names in test mode.
const testModeSeed = 9

// newApp wires the console, the host and the game director from cfg. Handler
// output goes to out and rendered debug windows to drawOut.
func newApp(cfg *config.Config, out, drawOut io.Writer) (*host.Host, error) {
	theme := ui.GetTheme(cfg.UI.Theme)
	var rng *rand.Rand
	if cfg.TestMode {
		lipgloss.SetColorProfile(termenv.Ascii)
		theme = ui.GetTheme("plain")
		rng = rand.New(rand.NewPCG(testModeSeed, testModeSeed))
	}

	c := console.New(console.Options{
		Output:      out,
		HistorySize: cfg.Console.HistorySize,
		Markdown:    !cfg.TestMode,
	})
	c.RegisterBuiltins()

	h := host.New(c, host.Options{
		MaxFPS:     cfg.MaxFPS,
		Theme:      theme,
		DrawOutput: drawOut,
	})
	if err := h.AddSystem(game.NewDirector(rng)); err != nil {
		return nil, err
	}
	return h, nil
}
