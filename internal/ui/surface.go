// Package ui provides the text backend debug windows draw onto.
// Each open window becomes a titled, bordered panel styled by a YAML theme.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"k9console/pkg/consoletypes"
)

const minSeparatorWidth = 8

type elementKind int

const (
	elementLabel elementKind = iota
	elementValue
	elementSeparator
)

type element struct {
	kind  elementKind
	text  string
	value string
}

type panel struct {
	title    string
	elements []element
}

// TextSurface collects the draw calls of one pass and renders them as panels.
// Begin starts a new panel; draw calls before the first Begin go to an
// untitled panel.
type TextSurface struct {
	theme  *Theme
	panels []*panel
}

var _ consoletypes.Surface = (*TextSurface)(nil)

// NewTextSurface creates a surface rendering with theme. A nil theme uses plain.
func NewTextSurface(theme *Theme) *TextSurface {
	if theme == nil {
		theme = GetTheme("plain")
	}
	return &TextSurface{theme: theme}
}

// SetTheme replaces the theme used by later Render calls. Nil is ignored.
func (s *TextSurface) SetTheme(theme *Theme) {
	if theme != nil {
		s.theme = theme
	}
}

// Theme returns the current theme.
func (s *TextSurface) Theme() *Theme {
	return s.theme
}

// Begin starts the panel for the named window.
func (s *TextSurface) Begin(title string) {
	s.panels = append(s.panels, &panel{title: title})
}

// Reset discards all panels.
func (s *TextSurface) Reset() {
	s.panels = nil
}

// Empty reports whether nothing was drawn since the last Reset.
func (s *TextSurface) Empty() bool {
	return len(s.panels) == 0
}

func (s *TextSurface) current() *panel {
	if len(s.panels) == 0 {
		s.Begin("")
	}
	return s.panels[len(s.panels)-1]
}

// Label implements Surface.Label
func (s *TextSurface) Label(text string) {
	p := s.current()
	p.elements = append(p.elements, element{kind: elementLabel, text: text})
}

// Value implements Surface.Value
func (s *TextSurface) Value(name string, v any) {
	p := s.current()
	p.elements = append(p.elements, element{kind: elementValue, text: name, value: formatValue(v)})
}

// Separator implements Surface.Separator
func (s *TextSurface) Separator() {
	p := s.current()
	p.elements = append(p.elements, element{kind: elementSeparator})
}

func formatValue(v any) string {
	switch val := v.(type) {
	case float32:
		return fmt.Sprintf("%.3f", val)
	case float64:
		return fmt.Sprintf("%.3f", val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Render returns all panels stacked vertically, styled by the theme.
func (s *TextSurface) Render() string {
	rendered := make([]string, 0, len(s.panels))
	for _, p := range s.panels {
		rendered = append(rendered, s.renderPanel(p))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

// PlainText returns Render with all escape sequences removed.
func (s *TextSurface) PlainText() string {
	return ansi.Strip(s.Render())
}

func (s *TextSurface) renderPanel(p *panel) string {
	lines := make([]string, 0, len(p.elements)+1)
	if p.title != "" {
		lines = append(lines, s.theme.Title.Render(p.title))
	}

	width := minSeparatorWidth
	for _, e := range p.elements {
		var line string
		switch e.kind {
		case elementLabel:
			line = s.theme.Label.Render(e.text)
		case elementValue:
			line = s.theme.Key.Render(e.text+":") + " " + s.theme.Value.Render(e.value)
		default:
			continue
		}
		if w := lipgloss.Width(line); w > width {
			width = w
		}
	}
	if w := lipgloss.Width(p.title); w > width {
		width = w
	}

	for _, e := range p.elements {
		switch e.kind {
		case elementLabel:
			lines = append(lines, s.theme.Label.Render(e.text))
		case elementValue:
			lines = append(lines, s.theme.Key.Render(e.text+":")+" "+s.theme.Value.Render(e.value))
		case elementSeparator:
			lines = append(lines, s.theme.Separator.Render(strings.Repeat("-", width)))
		}
	}

	return s.theme.Panel.Render(strings.Join(lines, "\n"))
}
