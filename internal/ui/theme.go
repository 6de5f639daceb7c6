package ui

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"k9console/internal/logger"
)

//go:embed themes/*.yaml
var themeFS embed.FS

// ThemeFile is the YAML layout of one embedded theme.
type ThemeFile struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Border      string      `yaml:"border,omitempty"`
	Styles      ThemeStyles `yaml:"styles"`
}

// ThemeStyles holds the style of each panel element.
type ThemeStyles struct {
	Title     StyleConfig `yaml:"title"`
	Label     StyleConfig `yaml:"label"`
	Key       StyleConfig `yaml:"key"`
	Value     StyleConfig `yaml:"value"`
	Separator StyleConfig `yaml:"separator"`
	Border    StyleConfig `yaml:"border"`
}

// StyleConfig describes one style. Colors are a plain string or a
// {light, dark} map for adaptive colors.
type StyleConfig struct {
	Foreground interface{} `yaml:"foreground,omitempty"`
	Background interface{} `yaml:"background,omitempty"`
	Bold       *bool       `yaml:"bold,omitempty"`
	Italic     *bool       `yaml:"italic,omitempty"`
	Underline  *bool       `yaml:"underline,omitempty"`
}

// Theme is a parsed theme ready for rendering.
type Theme struct {
	Name      string
	Title     lipgloss.Style
	Label     lipgloss.Style
	Key       lipgloss.Style
	Value     lipgloss.Style
	Separator lipgloss.Style
	Panel     lipgloss.Style
}

var themes = loadThemes()

func loadThemes() map[string]*Theme {
	loaded := make(map[string]*Theme)

	entries, err := themeFS.ReadDir("themes")
	if err != nil {
		logger.Error("Failed to read embedded themes", "error", err)
	}
	for _, entry := range entries {
		data, err := themeFS.ReadFile("themes/" + entry.Name())
		if err != nil {
			logger.Error("Failed to read theme", "file", entry.Name(), "error", err)
			continue
		}
		theme, err := ParseTheme(data)
		if err != nil {
			logger.Error("Failed to load theme", "file", entry.Name(), "error", err)
			continue
		}
		loaded[theme.Name] = theme
	}

	if _, exists := loaded["plain"]; !exists {
		loaded["plain"] = fallbackTheme()
	}
	return loaded
}

// ParseTheme parses YAML theme data into a Theme.
func ParseTheme(data []byte) (*Theme, error) {
	var file ThemeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}
	if file.Name == "" {
		return nil, fmt.Errorf("theme file has no name")
	}

	border, err := parseBorder(file.Border)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", file.Name, err)
	}

	return &Theme{
		Name:      file.Name,
		Title:     createStyle(file.Styles.Title),
		Label:     createStyle(file.Styles.Label),
		Key:       createStyle(file.Styles.Key),
		Value:     createStyle(file.Styles.Value),
		Separator: createStyle(file.Styles.Separator),
		Panel: lipgloss.NewStyle().
			Border(border).
			BorderForeground(colorOrNone(file.Styles.Border.Foreground)).
			Padding(0, 1),
	}, nil
}

// GetTheme returns the named theme, or the plain theme for unknown names.
func GetTheme(name string) *Theme {
	if theme, exists := themes[strings.ToLower(name)]; exists {
		return theme
	}
	logger.Debug("Unknown theme, using plain", "theme", name)
	return themes["plain"]
}

// ThemeNames returns the embedded theme names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func parseBorder(name string) (lipgloss.Border, error) {
	switch name {
	case "", "normal":
		return lipgloss.NormalBorder(), nil
	case "rounded":
		return lipgloss.RoundedBorder(), nil
	case "thick":
		return lipgloss.ThickBorder(), nil
	case "double":
		return lipgloss.DoubleBorder(), nil
	default:
		return lipgloss.Border{}, fmt.Errorf("unknown border %q", name)
	}
}

func createStyle(config StyleConfig) lipgloss.Style {
	style := lipgloss.NewStyle()

	if color := parseColor(config.Foreground); color != nil {
		style = style.Foreground(color)
	}
	if color := parseColor(config.Background); color != nil {
		style = style.Background(color)
	}
	if config.Bold != nil && *config.Bold {
		style = style.Bold(true)
	}
	if config.Italic != nil && *config.Italic {
		style = style.Italic(true)
	}
	if config.Underline != nil && *config.Underline {
		style = style.Underline(true)
	}
	return style
}

func colorOrNone(value interface{}) lipgloss.TerminalColor {
	if color := parseColor(value); color != nil {
		return color
	}
	return lipgloss.NoColor{}
}

func parseColor(value interface{}) lipgloss.TerminalColor {
	switch v := value.(type) {
	case string:
		return lipgloss.Color(v)
	case map[string]interface{}:
		light, hasLight := v["light"].(string)
		dark, hasDark := v["dark"].(string)
		if hasLight && hasDark {
			return lipgloss.AdaptiveColor{Light: light, Dark: dark}
		}
		return nil
	default:
		return nil
	}
}

func fallbackTheme() *Theme {
	return &Theme{
		Name:      "plain",
		Title:     lipgloss.NewStyle(),
		Label:     lipgloss.NewStyle(),
		Key:       lipgloss.NewStyle(),
		Value:     lipgloss.NewStyle(),
		Separator: lipgloss.NewStyle(),
		Panel:     lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
	}
}
