// Package shell provides the interactive console on top of ishell.
// Input lines are handed to the host, which runs them on its frame loop; the
// shell goroutine only waits for the result and prints errors.
package shell

import (
	"context"
	"errors"
	"strings"

	"github.com/abiosoft/ishell/v2"

	"k9console/internal/host"
	"k9console/internal/logger"
	"k9console/internal/parser"
	"k9console/pkg/consoletypes"
)

// Submitter queues a console line and reports its result.
type Submitter interface {
	Submit(line string) <-chan error
}

// Completer is the readline completion contract ishell accepts.
type Completer interface {
	Do(line []rune, pos int) (newLine [][]rune, offset int)
}

// Handler turns shell input into submitted console lines.
type Handler struct {
	submitter Submitter
}

// NewHandler creates a handler submitting to s.
func NewHandler(s Submitter) *Handler {
	return &Handler{submitter: s}
}

// Line rebuilds a console line from ishell's split arguments, quoting
// arguments that contain whitespace so they stay one token.
func Line(rawArgs []string) string {
	if len(rawArgs) == 0 {
		return ""
	}
	inv := parser.Invocation{Name: rawArgs[0], Tokens: rawArgs[1:]}
	return strings.TrimSpace(inv.String())
}

// Handle submits one input line and waits for its result.
func (h *Handler) Handle(ctx context.Context, rawArgs []string) error {
	line := Line(rawArgs)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	select {
	case err := <-h.submitter.Submit(line):
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Hint returns the follow-up message printed after err, if any.
func Hint(err error) string {
	var unknown *consoletypes.UnknownCommandError
	switch {
	case errors.As(err, &unknown) && len(unknown.Suggestions) > 0:
		return "Did you mean: " + strings.Join(unknown.Suggestions, ", ") + "?"
	case errors.Is(err, consoletypes.ErrUnknownCommand):
		return "Type help for available commands"
	case consoletypes.IsParseError(err):
		return "Type help command=<name> for usage"
	default:
		return ""
	}
}

// Shell is the interactive prompt.
type Shell struct {
	sh      *ishell.Shell
	handler *Handler
}

// New creates a shell with the given prompt and completer. ishell's own exit,
// help and clear commands are removed so every line reaches the console.
func New(s Submitter, completer Completer, prompt string) *Shell {
	sh := ishell.New()
	sh.SetPrompt(prompt)
	sh.DeleteCmd("exit")
	sh.DeleteCmd("help")
	sh.DeleteCmd("clear")
	if completer != nil {
		sh.CustomCompleter(completer)
	}

	return &Shell{sh: sh, handler: NewHandler(s)}
}

// Println writes a line to the shell output.
func (s *Shell) Println(args ...interface{}) {
	s.sh.Println(args...)
}

// Run reads lines until ctx is cancelled, input ends, or the host stops.
func (s *Shell) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.sh.NotFound(func(c *ishell.Context) {
		err := s.handler.Handle(ctx, c.RawArgs)
		if err == nil {
			return
		}
		if errors.Is(err, host.ErrStopped) || errors.Is(err, context.Canceled) {
			cancel()
			return
		}
		logger.Debug("Console line failed", "line", Line(c.RawArgs), "error", err)
		c.Printf("Error: %s\n", err.Error())
		if hint := Hint(err); hint != "" {
			c.Println(hint)
		}
	})
	s.sh.EOF(func(*ishell.Context) {
		cancel()
	})
	s.sh.Interrupt(func(c *ishell.Context, count int, _ string) {
		if count >= 2 {
			cancel()
			return
		}
		c.Println("Input interrupted, press Ctrl-C again or type quit to exit.")
	})

	go func() {
		<-ctx.Done()
		s.sh.Close()
	}()

	s.sh.Run()
}
