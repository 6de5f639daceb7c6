// Package consoletypes defines command system types for the developer console.
// This file contains the handler signature, the immutable command entry, the
// per-invocation execution context and the registration-time registrar.
package consoletypes

import "github.com/charmbracelet/log"

// Handler runs a command after its arguments parsed successfully.
// A non-nil error is returned to the console caller as-is.
type Handler func(ctx ExecutionContext, args TypedArgs) error

// CommandEntry is one registered command. It is a value: registering the same
// name again replaces the whole entry, nothing is merged.
type CommandEntry struct {
	Description string      `json:"description"` // One-line help text
	Schema      ParamSchema `json:"-"`           // Ordered parameter declaration
	Handler     Handler     `json:"-"`           // Function run on invocation
}

// NewCommand builds a CommandEntry.
func NewCommand(description string, schema ParamSchema, handler Handler) CommandEntry {
	return CommandEntry{
		Description: description,
		Schema:      schema,
		Handler:     handler,
	}
}

// ExecutionContext is the capability object handed to a handler for the duration
// of one invocation. It exposes no access to the registries: handlers cannot add
// or remove commands while dispatch is running.
type ExecutionContext interface {
	// SetOpenDebugWindow sets the open flag of a registered window.
	// Unknown names are ignored.
	SetOpenDebugWindow(name string, open bool)

	// Printf writes a line of output to the console.
	Printf(format string, args ...any)

	// Command returns the name the handler was invoked under.
	Command() string

	// Logger returns the console logger.
	Logger() *log.Logger
}

// CommandRegistrar is the write side of the command registry handed to systems at
// init time. Registering an existing name replaces the previous entry.
type CommandRegistrar interface {
	Register(name string, entry CommandEntry)
	RegisterFunc(name, description string, schema ParamSchema, handler Handler)
}
