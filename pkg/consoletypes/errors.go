// Package consoletypes defines the console error taxonomy.
// Lookup and parse errors are returned before a handler runs; HandlerError wraps
// failures reported by the handler itself.
package consoletypes

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is matching.
var (
	ErrUnknownCommand          = errors.New("unknown command")
	ErrUnknownArgument         = errors.New("unknown argument")
	ErrMissingRequiredArgument = errors.New("missing required argument")
	ErrTypeMismatch            = errors.New("type mismatch")
	ErrUnterminatedQuote       = errors.New("unterminated quote")
	ErrHandler                 = errors.New("command failed")
)

// UnknownCommandError is returned when no command is registered under Name.
// Suggestions lists registered names close to Name, nearest first; they are
// hints only and never used for dispatch.
type UnknownCommandError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command: %s", e.Name)
}

// Is matches ErrUnknownCommand.
func (e *UnknownCommandError) Is(target error) bool {
	return target == ErrUnknownCommand
}

// UnknownArgumentError is returned when a named token references a parameter
// absent from the schema, or a positional token has no parameter left to bind.
// Positional overflow uses the 1-based position as Name, e.g. "#4".
type UnknownArgumentError struct {
	Name string
}

func (e *UnknownArgumentError) Error() string {
	return fmt.Sprintf("unknown argument: %s", e.Name)
}

// Is matches ErrUnknownArgument.
func (e *UnknownArgumentError) Is(target error) bool {
	return target == ErrUnknownArgument
}

// MissingRequiredArgumentError is returned when a required parameter was not bound.
type MissingRequiredArgumentError struct {
	Name string
}

func (e *MissingRequiredArgumentError) Error() string {
	return fmt.Sprintf("missing required argument: %s", e.Name)
}

// Is matches ErrMissingRequiredArgument.
func (e *MissingRequiredArgumentError) Is(target error) bool {
	return target == ErrMissingRequiredArgument
}

// TypeMismatchError is returned when a token value cannot be coerced to the
// parameter's declared kind.
type TypeMismatchError struct {
	Name     string
	Expected Kind
	Raw      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("argument %s: expected %s, got '%s'", e.Name, e.Expected, e.Raw)
}

// Is matches ErrTypeMismatch.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// UnterminatedQuoteError is returned when a quoted run has no closing Quote.
type UnterminatedQuoteError struct {
	Quote byte
}

func (e *UnterminatedQuoteError) Error() string {
	return fmt.Sprintf("unterminated %c quote", e.Quote)
}

// Is matches ErrUnterminatedQuote.
func (e *UnterminatedQuoteError) Is(target error) bool {
	return target == ErrUnterminatedQuote
}

// HandlerError is a domain failure reported by a handler.
type HandlerError struct {
	Message string
	Err     error
}

// NewHandlerError formats a handler failure. A %w verb in format is preserved
// for errors.Is and errors.As on the wrapped cause.
func NewHandlerError(format string, args ...any) *HandlerError {
	wrapped := fmt.Errorf(format, args...)
	return &HandlerError{Message: wrapped.Error(), Err: errors.Unwrap(wrapped)}
}

func (e *HandlerError) Error() string {
	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *HandlerError) Unwrap() error {
	return e.Err
}

// Is matches ErrHandler.
func (e *HandlerError) Is(target error) bool {
	return target == ErrHandler
}

// IsParseError reports whether err is a lookup or argument error, meaning the
// handler was never run.
func IsParseError(err error) bool {
	return errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUnknownArgument) ||
		errors.Is(err, ErrMissingRequiredArgument) ||
		errors.Is(err, ErrTypeMismatch) ||
		errors.Is(err, ErrUnterminatedQuote)
}
