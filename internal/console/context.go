package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// execContext is the ExecutionContext of one invocation. It reaches the
// window registry only through SetOpenDebugWindow.
type execContext struct {
	console *Console
	command string
}

func (e *execContext) SetOpenDebugWindow(name string, open bool) {
	e.console.windows.SetOpen(name, open)
}

func (e *execContext) Printf(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, _ = fmt.Fprint(e.console.out, text)
}

func (e *execContext) Command() string {
	return e.command
}

func (e *execContext) Logger() *log.Logger {
	return e.console.log
}
