// Package consoletypes defines command parameter schemas.
// This file contains Param and ParamSchema, the declarative description of a
// command's ordered parameter list.
package consoletypes

import (
	"fmt"
	"strings"
)

// Param describes one command parameter.
type Param struct {
	Name        string `json:"name"`                  // Name used by key=value tokens
	Kind        Kind   `json:"kind"`                  // Scalar kind the token is coerced to
	Required    bool   `json:"required"`              // Whether the parameter must be bound
	Description string `json:"description,omitempty"` // Shown in help output
}

// Required declares a required parameter.
func Required(name string, kind Kind) Param {
	return Param{Name: name, Kind: kind, Required: true}
}

// Optional declares an optional parameter.
func Optional(name string, kind Kind) Param {
	return Param{Name: name, Kind: kind}
}

// Describe returns a copy of the parameter with a help description.
func (p Param) Describe(description string) Param {
	p.Description = description
	return p
}

// ParamSchema is the ordered parameter list of a command.
// Order drives positional binding; required and optional parameters may interleave.
// The zero ParamSchema accepts no arguments.
type ParamSchema struct {
	params []Param
	index  map[string]int
}

// NewParamSchema builds a schema from params in positional order.
// It fails on an empty or duplicate parameter name.
func NewParamSchema(params ...Param) (ParamSchema, error) {
	schema := ParamSchema{
		params: make([]Param, 0, len(params)),
		index:  make(map[string]int, len(params)),
	}
	for _, p := range params {
		if strings.TrimSpace(p.Name) == "" {
			return ParamSchema{}, fmt.Errorf("parameter at position %d has an empty name", len(schema.params)+1)
		}
		if strings.ContainsAny(p.Name, "= \t") {
			return ParamSchema{}, fmt.Errorf("parameter name %q cannot contain '=' or whitespace", p.Name)
		}
		if _, exists := schema.index[p.Name]; exists {
			return ParamSchema{}, fmt.Errorf("duplicate parameter name %q", p.Name)
		}
		schema.index[p.Name] = len(schema.params)
		schema.params = append(schema.params, p)
	}
	return schema, nil
}

// MustParamSchema is NewParamSchema that panics on an invalid declaration.
// It is meant for schemas written as literals in registration code.
func MustParamSchema(params ...Param) ParamSchema {
	schema, err := NewParamSchema(params...)
	if err != nil {
		panic(fmt.Sprintf("invalid parameter schema: %v", err))
	}
	return schema
}

// Params returns a copy of the parameters in positional order.
func (s ParamSchema) Params() []Param {
	out := make([]Param, len(s.params))
	copy(out, s.params)
	return out
}

// Len returns the number of parameters.
func (s ParamSchema) Len() int {
	return len(s.params)
}

// At returns the parameter at a zero-based position.
func (s ParamSchema) At(i int) Param {
	return s.params[i]
}

// Lookup finds a parameter and its position by name.
func (s ParamSchema) Lookup(name string) (Param, int, bool) {
	i, ok := s.index[name]
	if !ok {
		return Param{}, -1, false
	}
	return s.params[i], i, true
}

// Usage renders the schema as "<x:float> [y:float]" with required parameters in
// angle brackets and optional ones in square brackets.
func (s ParamSchema) Usage() string {
	parts := make([]string, 0, len(s.params))
	for _, p := range s.params {
		if p.Required {
			parts = append(parts, fmt.Sprintf("<%s:%s>", p.Name, p.Kind))
		} else {
			parts = append(parts, fmt.Sprintf("[%s:%s]", p.Name, p.Kind))
		}
	}
	return strings.Join(parts, " ")
}
