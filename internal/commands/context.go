package commands

import (
	"github.com/charmbracelet/log"

	"k9console/internal/logger"
	"k9console/pkg/consoletypes"
)

// logContext is the execution context used when Invoke gets no factory.
type logContext struct {
	command string
}

func newLogContext(command string) consoletypes.ExecutionContext {
	return &logContext{command: command}
}

func (c *logContext) SetOpenDebugWindow(name string, open bool) {
	logger.Trace("No window registry for command", "command", c.command, "window", name, "open", open)
}

func (c *logContext) Printf(format string, args ...any) {
	logger.Logger.Printf(format, args...)
}

func (c *logContext) Command() string {
	return c.command
}

func (c *logContext) Logger() *log.Logger {
	return logger.Logger
}
