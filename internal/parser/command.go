// Package parser tokenizes console input and coerces argument tokens into typed
// values according to a command's parameter schema.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"k9console/pkg/consoletypes"
)

// Invocation is one console line split into a command name and argument tokens.
type Invocation struct {
	Name   string
	Tokens []string
}

// ParseInvocation splits a console line into the command name and its tokens.
func ParseInvocation(line string) (*Invocation, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	return &Invocation{Name: tokens[0], Tokens: tokens[1:]}, nil
}

// String renders the invocation back into console syntax, quoting tokens that
// contain whitespace.
func (inv *Invocation) String() string {
	parts := make([]string, 0, len(inv.Tokens)+1)
	parts = append(parts, inv.Name)
	for _, tok := range inv.Tokens {
		parts = append(parts, quoteToken(tok))
	}
	return strings.Join(parts, " ")
}

// Tokenize splits input on whitespace. A run enclosed in double or single quotes
// is kept as part of one token with the quotes removed, so `name="a b"` yields
// the single token `name=a b`. An unterminated quote is an error.
func Tokenize(input string) ([]string, error) {
	var tokens []string
	var current strings.Builder
	inToken := false
	inQuotes := false
	quoteChar := byte(0)

	for i := 0; i < len(input); i++ {
		c := input[i]

		switch {
		case !inQuotes && (c == '"' || c == '\''):
			inQuotes = true
			quoteChar = c
			inToken = true
		case inQuotes && c == quoteChar:
			inQuotes = false
			quoteChar = 0
		case !inQuotes && isSpace(c):
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteByte(c)
			inToken = true
		}
	}

	if inQuotes {
		return nil, &consoletypes.UnterminatedQuoteError{Quote: quoteChar}
	}
	if inToken {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func quoteToken(tok string) string {
	if tok == "" || strings.ContainsAny(tok, " \t\"'") {
		if strings.Contains(tok, "\"") {
			return "'" + tok + "'"
		}
		return "\"" + tok + "\""
	}
	return tok
}

// coercers is the kind-indexed table of token parsers.
var coercers = map[consoletypes.Kind]func(raw string) (consoletypes.Value, bool){
	consoletypes.KindInt: func(raw string) (consoletypes.Value, bool) {
		v, err := strconv.ParseInt(raw, 10, 64)
		return consoletypes.IntValue(v), err == nil
	},
	consoletypes.KindFloat: func(raw string) (consoletypes.Value, bool) {
		v, err := strconv.ParseFloat(raw, 64)
		return consoletypes.FloatValue(v), err == nil
	},
	consoletypes.KindBool: func(raw string) (consoletypes.Value, bool) {
		switch raw {
		case "true":
			return consoletypes.BoolValue(true), true
		case "false":
			return consoletypes.BoolValue(false), true
		default:
			return consoletypes.Value{}, false
		}
	},
	consoletypes.KindString: func(raw string) (consoletypes.Value, bool) {
		return consoletypes.StringValue(raw), true
	},
}

// Coerce converts a raw token value to kind. It reports false when the value
// does not parse; unknown kinds never parse.
func Coerce(kind consoletypes.Kind, raw string) (consoletypes.Value, bool) {
	coerce, ok := coercers[kind]
	if !ok {
		return consoletypes.Value{}, false
	}
	return coerce(raw)
}

// ParseArgs binds tokens to the schema and returns the typed arguments.
//
// A token containing '=' is named: the left side selects the parameter, the right
// side is its value, and a later named token for the same parameter overrides an
// earlier binding. Any other token binds to the next parameter in schema order
// that is still unbound. Tokens are processed left to right and the first error
// is returned with no partial result. After all tokens, unbound required
// parameters fail and unbound optional ones are recorded as absent.
func ParseArgs(schema consoletypes.ParamSchema, tokens []string) (consoletypes.TypedArgs, error) {
	bound := make([]bool, schema.Len())
	args := consoletypes.NewTypedArgs()
	cursor := 0

	for pos, tok := range tokens {
		var param consoletypes.Param
		var index int
		var raw string

		if key, value, named := strings.Cut(tok, "="); named {
			p, i, ok := schema.Lookup(key)
			if !ok {
				return consoletypes.TypedArgs{}, &consoletypes.UnknownArgumentError{Name: key}
			}
			param, index, raw = p, i, value
		} else {
			for cursor < len(bound) && bound[cursor] {
				cursor++
			}
			if cursor >= len(bound) {
				return consoletypes.TypedArgs{}, &consoletypes.UnknownArgumentError{Name: fmt.Sprintf("#%d", pos+1)}
			}
			param, index, raw = schema.At(cursor), cursor, tok
		}

		value, ok := Coerce(param.Kind, raw)
		if !ok {
			return consoletypes.TypedArgs{}, &consoletypes.TypeMismatchError{
				Name:     param.Name,
				Expected: param.Kind,
				Raw:      raw,
			}
		}
		args.Set(param.Name, value)
		bound[index] = true
	}

	for i, p := range schema.Params() {
		if bound[i] {
			continue
		}
		if p.Required {
			return consoletypes.TypedArgs{}, &consoletypes.MissingRequiredArgumentError{Name: p.Name}
		}
		args.SetAbsent(p.Name)
	}

	return args, nil
}

// ParseLine tokenizes raw argument text and binds it to the schema.
func ParseLine(schema consoletypes.ParamSchema, raw string) (consoletypes.TypedArgs, error) {
	tokens, err := Tokenize(raw)
	if err != nil {
		return consoletypes.TypedArgs{}, err
	}
	return ParseArgs(schema, tokens)
}
