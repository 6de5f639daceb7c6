package console

import (
	"fmt"
	"strings"

	"k9console/internal/logger"
	"k9console/pkg/consoletypes"
)

// helpMarkdown builds the usage card of one command.
func helpMarkdown(name string, entry consoletypes.CommandEntry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", name)
	if entry.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", entry.Description)
	}

	usage := strings.TrimSpace(name + " " + entry.Schema.Usage())
	fmt.Fprintf(&b, "**Usage:** `%s`\n", usage)

	if entry.Schema.Len() == 0 {
		return b.String()
	}

	b.WriteString("\n| Parameter | Kind | Required | Description |\n")
	b.WriteString("|-----------|------|----------|-------------|\n")
	for _, p := range entry.Schema.Params() {
		required := "no"
		if p.Required {
			required = "yes"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", p.Name, p.Kind, required, p.Description)
	}
	return b.String()
}

// renderHelp renders the usage card with glamour when enabled, falling back to
// the raw markdown.
func (c *Console) renderHelp(name string, entry consoletypes.CommandEntry) string {
	markdown := helpMarkdown(name, entry)
	if c.renderer == nil {
		return markdown
	}

	rendered, err := c.renderer.Render(markdown)
	if err != nil {
		logger.Debug("Failed to render help, using plain text", "command", name, "error", err)
		return markdown
	}
	return rendered
}
