// Package console implements the host-side command dispatcher.
// A Console owns the command and debug window registries, executes console lines
// against them with a fresh execution context per invocation, and keeps an
// in-memory history of submitted lines.
package console

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"

	"k9console/internal/commands"
	"k9console/internal/logger"
	"k9console/internal/parser"
	"k9console/internal/windows"
	"k9console/pkg/consoletypes"
)

// DefaultHistorySize bounds the history when Options.HistorySize is zero.
const DefaultHistorySize = 100

// Options configures a Console.
type Options struct {
	Output      io.Writer   // Destination of handler output, stdout when nil
	HistorySize int         // Maximum remembered lines, DefaultHistorySize when zero
	Markdown    bool        // Render help cards with glamour
	Logger      *log.Logger // Logger handed to handlers, the global logger when nil
}

// Console dispatches console lines to registered commands.
type Console struct {
	commands *commands.Registry
	windows  *windows.Registry
	out      io.Writer
	log      *log.Logger
	renderer *glamour.TermRenderer

	mu          sync.Mutex
	history     []string
	historySize int
}

// New creates a console with empty registries.
func New(opts Options) *Console {
	c := &Console{
		commands:    commands.NewRegistry(),
		windows:     windows.NewRegistry(),
		out:         opts.Output,
		log:         opts.Logger,
		historySize: opts.HistorySize,
	}
	if c.out == nil {
		c.out = os.Stdout
	}
	if c.log == nil {
		c.log = logger.Logger
	}
	if c.historySize <= 0 {
		c.historySize = DefaultHistorySize
	}

	if opts.Markdown {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			logger.Warn("Markdown help disabled", "error", err)
		} else {
			c.renderer = renderer
		}
	}

	return c
}

// Commands returns the command registry.
func (c *Console) Commands() *commands.Registry {
	return c.commands
}

// Windows returns the debug window registry.
func (c *Console) Windows() *windows.Registry {
	return c.windows
}

// Output returns the writer handler output goes to.
func (c *Console) Output() io.Writer {
	return c.out
}

// Execute runs one console line. Blank lines and lines starting with '#' are
// ignored. Every other line is added to the history, then its first token is
// looked up as the command name and the rest is parsed against the command's
// schema. An unknown name is reported even when the rest does not tokenize. Lookup and parse errors are returned before the handler runs; the
// handler's error is returned unchanged.
func (c *Console) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	c.remember(line)

	invocation, err := parser.ParseInvocation(line)
	if err != nil {
		if name := strings.Fields(line)[0]; !c.commands.Has(name) {
			err = c.commands.UnknownCommand(name)
		}
		logger.Warn("Command failed", "line", line, "error", err)
		return err
	}

	err = c.commands.InvokeTokens(invocation.Name, invocation.Tokens, c.newContext)
	if err != nil {
		logger.Warn("Command failed", "command", invocation.Name, "error", err)
	}
	return err
}

func (c *Console) newContext(command string) consoletypes.ExecutionContext {
	return &execContext{console: c, command: command}
}

func (c *Console) remember(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.history = append(c.history, line)
	if over := len(c.history) - c.historySize; over > 0 {
		c.history = append([]string(nil), c.history[over:]...)
	}
}

// History returns the remembered lines, oldest first.
func (c *Console) History() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.history))
	copy(out, c.history)
	return out
}
