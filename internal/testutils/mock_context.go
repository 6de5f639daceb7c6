// Package testutils provides mocks and helpers shared by console tests.
package testutils

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"k9console/internal/logger"
)

// WindowToggle records one SetOpenDebugWindow call.
type WindowToggle struct {
	Name string
	Open bool
}

// MockContext implements consoletypes.ExecutionContext for testing.
// It records window toggles and printed output instead of forwarding them.
type MockContext struct {
	mu      sync.Mutex
	command string
	toggles []WindowToggle
	output  []string
	log     *log.Logger
}

// NewMockContext creates a mock context for the given command name.
func NewMockContext(command string) *MockContext {
	return &MockContext{
		command: command,
		log:     logger.Logger,
	}
}

// SetOpenDebugWindow implements ExecutionContext.SetOpenDebugWindow
func (m *MockContext) SetOpenDebugWindow(name string, open bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toggles = append(m.toggles, WindowToggle{Name: name, Open: open})
}

// Printf implements ExecutionContext.Printf
func (m *MockContext) Printf(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.output = append(m.output, fmt.Sprintf(format, args...))
}

// Command implements ExecutionContext.Command
func (m *MockContext) Command() string {
	return m.command
}

// Logger implements ExecutionContext.Logger
func (m *MockContext) Logger() *log.Logger {
	return m.log
}

// Toggles returns a copy of the recorded window toggles.
func (m *MockContext) Toggles() []WindowToggle {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]WindowToggle, len(m.toggles))
	copy(out, m.toggles)
	return out
}

// Output returns a copy of the printed lines.
func (m *MockContext) Output() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.output))
	copy(out, m.output)
	return out
}
