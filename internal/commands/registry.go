// Package commands provides the console command registry.
// It maps command names to their description, parameter schema and handler, and
// dispatches invocations after parsing their arguments against the schema.
package commands

import (
	"sort"
	"sync"

	"github.com/agnivade/levenshtein"

	"k9console/internal/logger"
	"k9console/internal/parser"
	"k9console/pkg/consoletypes"
)

// ContextFactory builds the execution context for one invocation.
// It is called once per invocation, only after arguments parsed successfully.
// A nil factory gives handlers a context that prints to the global logger and
// has no windows to open.
type ContextFactory func(command string) consoletypes.ExecutionContext

// Registry manages console command registration and dispatch.
// Registering a name that already exists replaces the previous entry.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]consoletypes.CommandEntry
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]consoletypes.CommandEntry),
	}
}

// Register inserts or replaces the entry for name.
// An empty name cannot be invoked and is ignored.
func (r *Registry) Register(name string, entry consoletypes.CommandEntry) {
	if name == "" {
		logger.Warn("Ignoring command with empty name", "description", entry.Description)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[name]; exists {
		logger.Debug("Command replaced", "command", name)
	}
	r.commands[name] = entry
}

// RegisterFunc is Register with the entry fields spelled out.
func (r *Registry) RegisterFunc(name, description string, schema consoletypes.ParamSchema, handler consoletypes.Handler) {
	r.Register(name, consoletypes.NewCommand(description, schema, handler))
}

// Unregister removes a command. It is a host-side operation and is not reachable
// from handlers. Unknown names are ignored.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.commands, name)
}

// Get retrieves a command entry by exact name.
func (r *Registry) Get(name string) (consoletypes.CommandEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, exists := r.commands[name]
	return entry, exists
}

// Has reports whether a command is registered under name.
func (r *Registry) Has(name string) bool {
	_, exists := r.Get(name)
	return exists
}

// Names returns all registered command names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

const maxSuggestions = 3

// Suggest returns up to limit registered names within a small edit distance of
// name, nearest first and ties in name order.
func (r *Registry) Suggest(name string, limit int) []string {
	if name == "" || limit <= 0 {
		return nil
	}

	threshold := len(name) / 3
	if threshold < 2 {
		threshold = 2
	}

	type candidate struct {
		name     string
		distance int
	}
	var candidates []candidate
	for _, registered := range r.Names() {
		if d := levenshtein.ComputeDistance(name, registered); d <= threshold {
			candidates = append(candidates, candidate{registered, d})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.name
	}
	return out
}

// UnknownCommand builds the lookup error for name, with suggestions.
func (r *Registry) UnknownCommand(name string) *consoletypes.UnknownCommandError {
	return &consoletypes.UnknownCommandError{Name: name, Suggestions: r.Suggest(name, maxSuggestions)}
}

// Invoke looks up name, then tokenizes raw argument text and dispatches it to
// the command. An unknown name is reported before raw is tokenized.
func (r *Registry) Invoke(name, raw string, newContext ContextFactory) error {
	if !r.Has(name) {
		return r.UnknownCommand(name)
	}
	tokens, err := parser.Tokenize(raw)
	if err != nil {
		return err
	}
	return r.InvokeTokens(name, tokens, newContext)
}

// InvokeTokens looks up name, parses tokens against its schema and runs the
// handler with a fresh execution context. Lookup and parse errors are returned
// without running the handler; the handler's own error is returned unchanged.
func (r *Registry) InvokeTokens(name string, tokens []string, newContext ContextFactory) error {
	entry, exists := r.Get(name)
	if !exists {
		return r.UnknownCommand(name)
	}

	args, err := parser.ParseArgs(entry.Schema, tokens)
	if err != nil {
		return err
	}

	if entry.Handler == nil {
		return nil
	}

	if newContext == nil {
		newContext = newLogContext
	}
	ctx := newContext(name)

	logger.CommandExecution(name, tokens)
	return entry.Handler(ctx, args)
}
