package console

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"k9console/pkg/consoletypes"
)

func completions(c *Completer, line string) ([]string, int) {
	suggestions, offset := c.Do([]rune(line), len([]rune(line)))
	out := make([]string, len(suggestions))
	for i, s := range suggestions {
		out[i] = string(s)
	}
	return out, offset
}

func TestCompleter(t *testing.T) {
	c := New(Options{})
	c.RegisterBuiltins()
	c.Commands().RegisterFunc("four", "", consoletypes.MustParamSchema(
		consoletypes.Required("x", consoletypes.KindFloat),
		consoletypes.Required("y", consoletypes.KindFloat),
		consoletypes.Required("z", consoletypes.KindFloat),
	), nil)
	c.Commands().RegisterFunc("foo_window", "", consoletypes.MustParamSchema(
		consoletypes.Required("open", consoletypes.KindBool),
	), nil)
	c.Windows().Register("foo_window", consoletypes.DrawFunc(func(consoletypes.Surface) {}))
	completer := NewCompleter(c)

	tests := []struct {
		name   string
		line   string
		want   []string
		offset int
	}{
		{"command prefix", "fo", []string{"o_window", "ur"}, 2},
		{"exact command offers nothing", "four", nil, 4},
		{"param names", "four ", []string{"x=", "y=", "z="}, 0},
		{"skip used params", "four y=1 ", []string{"x=", "z="}, 0},
		{"bool values", "foo_window ", []string{"false", "open=", "true"}, 0},
		{"named bool value", "foo_window open=t", []string{"rue"}, 6},
		{"window names", "toggle_window foo", []string{"_window"}, 3},
		{"help command names", "help command=ec", []string{"ho"}, 10},
		{"unknown command", "nope ", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, offset := completions(completer, tt.line)
			if tt.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.want, got)
			}
			assert.Equal(t, tt.offset, offset)
		})
	}
}
