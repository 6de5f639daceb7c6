package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"k9console/pkg/consoletypes"
)

func xyzSchema(required bool) consoletypes.ParamSchema {
	if required {
		return consoletypes.MustParamSchema(
			consoletypes.Required("x", consoletypes.KindFloat),
			consoletypes.Required("y", consoletypes.KindFloat),
			consoletypes.Required("z", consoletypes.KindFloat),
		)
	}
	return consoletypes.MustParamSchema(
		consoletypes.Optional("x", consoletypes.KindFloat),
		consoletypes.Optional("y", consoletypes.KindFloat),
		consoletypes.Optional("z", consoletypes.KindFloat),
	)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "positional tokens", input: "four 1.0 2.0 3.0", expected: []string{"four", "1.0", "2.0", "3.0"}},
		{name: "named tokens", input: "foo x=5.0 z=-1.2", expected: []string{"foo", "x=5.0", "z=-1.2"}},
		{name: "collapses repeated whitespace", input: "  foo \t x=1   y=2 ", expected: []string{"foo", "x=1", "y=2"}},
		{name: "double quoted value", input: `echo text="hello world"`, expected: []string{"echo", "text=hello world"}},
		{name: "single quoted positional", input: `echo 'a "b" c'`, expected: []string{"echo", `a "b" c`}},
		{name: "empty quoted value", input: `echo text=""`, expected: []string{"echo", "text="}},
		{name: "empty input", input: "   ", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tokens)
		})
	}
}

func TestTokenize_UnterminatedQuote(t *testing.T) {
	_, err := Tokenize(`echo "hello`)
	require.Error(t, err)
	assert.ErrorIs(t, err, consoletypes.ErrUnterminatedQuote)
	assert.True(t, consoletypes.IsParseError(err))
	assert.Equal(t, `unterminated " quote`, err.Error())

	_, err = Tokenize(`name='a b`)
	var quoteErr *consoletypes.UnterminatedQuoteError
	require.ErrorAs(t, err, &quoteErr)
	assert.Equal(t, byte('\''), quoteErr.Quote)
}

func TestParseInvocation(t *testing.T) {
	inv, err := ParseInvocation("four 1.0 2.0 3.0")
	require.NoError(t, err)
	assert.Equal(t, "four", inv.Name)
	assert.Equal(t, []string{"1.0", "2.0", "3.0"}, inv.Tokens)
	assert.Equal(t, "four 1.0 2.0 3.0", inv.String())

	_, err = ParseInvocation("")
	assert.Error(t, err)
}

func TestInvocation_StringQuotes(t *testing.T) {
	inv := &Invocation{Name: "echo", Tokens: []string{"text=hello world", `say "hi"`}}
	assert.Equal(t, `echo "text=hello world" 'say "hi"'`, inv.String())

	tokens, err := Tokenize(inv.String())
	require.NoError(t, err)
	assert.Equal(t, []string{"echo", "text=hello world", `say "hi"`}, tokens)
}

func TestParseArgs_PositionalRequired(t *testing.T) {
	inv, err := ParseInvocation("four 1.0 2.0 3.0")
	require.NoError(t, err)

	args, err := ParseArgs(xyzSchema(true), inv.Tokens)
	require.NoError(t, err)
	assert.Equal(t, 1.0, args.Float("x"))
	assert.Equal(t, 2.0, args.Float("y"))
	assert.Equal(t, 3.0, args.Float("z"))
	assert.Equal(t, 3, args.Len())
}

func TestParseArgs_NamedOptional(t *testing.T) {
	inv, err := ParseInvocation("foo x=5")
	require.NoError(t, err)

	args, err := ParseArgs(xyzSchema(false), inv.Tokens)
	require.NoError(t, err)

	x, ok := args.OptFloat("x")
	assert.True(t, ok)
	assert.Equal(t, 5.0, x)
	assert.False(t, args.Has("y"))
	assert.False(t, args.Has("z"))
	assert.True(t, args.Declared("y"), "unbound optional params are recorded as absent")
	assert.True(t, args.Declared("z"))
}

func TestParseArgs_MixedForms(t *testing.T) {
	// Named binding does not advance the positional cursor; positionals skip bound params.
	args, err := ParseArgs(xyzSchema(true), []string{"y=2", "1", "3"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, args.Float("x"))
	assert.Equal(t, 2.0, args.Float("y"))
	assert.Equal(t, 3.0, args.Float("z"))
}

func TestParseArgs_NamedOverridesEarlierBinding(t *testing.T) {
	args, err := ParseArgs(xyzSchema(false), []string{"1", "x=9"})
	require.NoError(t, err)
	assert.Equal(t, 9.0, args.Float("x"))
	assert.False(t, args.Has("y"))
}

func TestParseArgs_InterleavedRequiredOptional(t *testing.T) {
	schema := consoletypes.MustParamSchema(
		consoletypes.Optional("label", consoletypes.KindString),
		consoletypes.Required("count", consoletypes.KindInt),
		consoletypes.Optional("loud", consoletypes.KindBool),
	)

	args, err := ParseArgs(schema, []string{"count=3"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), args.Int("count"))
	assert.False(t, args.Has("label"))
	assert.False(t, args.Has("loud"))

	args, err = ParseArgs(schema, []string{"hi", "4", "true"})
	require.NoError(t, err)
	assert.Equal(t, "hi", args.Str("label"))
	assert.Equal(t, int64(4), args.Int("count"))
	assert.True(t, args.Bool("loud"))
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name     string
		schema   consoletypes.ParamSchema
		tokens   []string
		sentinel error
		expected error
	}{
		{
			name:     "missing required",
			schema:   xyzSchema(true),
			tokens:   nil,
			sentinel: consoletypes.ErrMissingRequiredArgument,
			expected: &consoletypes.MissingRequiredArgumentError{Name: "x"},
		},
		{
			name:     "missing later required",
			schema:   xyzSchema(true),
			tokens:   []string{"1", "2"},
			sentinel: consoletypes.ErrMissingRequiredArgument,
			expected: &consoletypes.MissingRequiredArgumentError{Name: "z"},
		},
		{
			name:     "float type mismatch",
			schema:   xyzSchema(false),
			tokens:   []string{"x=abc"},
			sentinel: consoletypes.ErrTypeMismatch,
			expected: &consoletypes.TypeMismatchError{Name: "x", Expected: consoletypes.KindFloat, Raw: "abc"},
		},
		{
			name:     "unknown named argument",
			schema:   xyzSchema(false),
			tokens:   []string{"w=1"},
			sentinel: consoletypes.ErrUnknownArgument,
			expected: &consoletypes.UnknownArgumentError{Name: "w"},
		},
		{
			name:     "too many positionals",
			schema:   xyzSchema(true),
			tokens:   []string{"1", "2", "3", "4"},
			sentinel: consoletypes.ErrUnknownArgument,
			expected: &consoletypes.UnknownArgumentError{Name: "#4"},
		},
		{
			name:     "first error wins left to right",
			schema:   xyzSchema(false),
			tokens:   []string{"x=bad", "w=1"},
			sentinel: consoletypes.ErrTypeMismatch,
			expected: &consoletypes.TypeMismatchError{Name: "x", Expected: consoletypes.KindFloat, Raw: "bad"},
		},
		{
			name:     "token errors precede missing checks",
			schema:   xyzSchema(true),
			tokens:   []string{"q=1"},
			sentinel: consoletypes.ErrUnknownArgument,
			expected: &consoletypes.UnknownArgumentError{Name: "q"},
		},
		{
			name: "bool accepts only literals",
			schema: consoletypes.MustParamSchema(
				consoletypes.Required("open", consoletypes.KindBool),
			),
			tokens:   []string{"yes"},
			sentinel: consoletypes.ErrTypeMismatch,
			expected: &consoletypes.TypeMismatchError{Name: "open", Expected: consoletypes.KindBool, Raw: "yes"},
		},
		{
			name: "int rejects fractions",
			schema: consoletypes.MustParamSchema(
				consoletypes.Required("n", consoletypes.KindInt),
			),
			tokens:   []string{"n=1.5"},
			sentinel: consoletypes.ErrTypeMismatch,
			expected: &consoletypes.TypeMismatchError{Name: "n", Expected: consoletypes.KindInt, Raw: "1.5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := ParseArgs(tt.schema, tt.tokens)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.expected, err)
			assert.Equal(t, 0, args.Len(), "no partial result on failure")
		})
	}
}

func TestParseArgs_EmptySchema(t *testing.T) {
	var schema consoletypes.ParamSchema

	args, err := ParseArgs(schema, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, args.Len())

	_, err = ParseArgs(schema, []string{"extra"})
	assert.ErrorIs(t, err, consoletypes.ErrUnknownArgument)
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		kind     consoletypes.Kind
		raw      string
		ok       bool
		expected any
	}{
		{consoletypes.KindInt, "42", true, int64(42)},
		{consoletypes.KindInt, "-7", true, int64(-7)},
		{consoletypes.KindInt, "0x10", false, nil},
		{consoletypes.KindFloat, "-1.2", true, -1.2},
		{consoletypes.KindFloat, "5", true, 5.0},
		{consoletypes.KindFloat, "1e3", true, 1000.0},
		{consoletypes.KindFloat, "", false, nil},
		{consoletypes.KindBool, "true", true, true},
		{consoletypes.KindBool, "false", true, false},
		{consoletypes.KindBool, "TRUE", false, nil},
		{consoletypes.KindString, "anything goes", true, "anything goes"},
		{consoletypes.KindString, "", true, ""},
		{consoletypes.Kind(99), "1", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.raw, func(t *testing.T) {
			v, ok := Coerce(tt.kind, tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, v.Any())
			}
		})
	}
}

func TestParseLine(t *testing.T) {
	schema := consoletypes.MustParamSchema(
		consoletypes.Required("text", consoletypes.KindString),
	)

	args, err := ParseLine(schema, `text="hello world"`)
	require.NoError(t, err)
	assert.Equal(t, "hello world", args.Str("text"))

	_, err = ParseLine(schema, `"oops`)
	assert.Error(t, err)
}

func TestParseArgs_LongInput(t *testing.T) {
	schema := consoletypes.MustParamSchema(
		consoletypes.Required("text", consoletypes.KindString),
	)
	long := strings.Repeat("a", 10000)

	args, err := ParseArgs(schema, []string{long})
	require.NoError(t, err)
	assert.Len(t, args.Str("text"), 10000)
}
