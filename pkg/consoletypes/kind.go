// Package consoletypes defines scalar kinds and typed values for console arguments.
// This file contains the Kind enumeration and the Value tagged union produced by
// argument coercion.
package consoletypes

import (
	"fmt"
	"strconv"
)

// Kind is the scalar type of a command parameter.
type Kind int

const (
	// KindInt is a signed 64-bit integer
	KindInt Kind = iota
	// KindFloat is a 64-bit floating point number
	KindFloat
	// KindBool accepts the literals true and false
	KindBool
	// KindString passes the raw token through unchanged
	KindString
)

// String returns the lowercase kind name used in usage lines and errors.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value holds exactly one scalar of its Kind.
// The zero Value is an int 0.
type Value struct {
	kind Kind
	i    int64
	f    float64
	b    bool
	s    string
}

// IntValue wraps an integer.
func IntValue(v int64) Value { return Value{kind: KindInt, i: v} }

// FloatValue wraps a float.
func FloatValue(v float64) Value { return Value{kind: KindFloat, f: v} }

// BoolValue wraps a boolean.
func BoolValue(v bool) Value { return Value{kind: KindBool, b: v} }

// StringValue wraps a string.
func StringValue(v string) Value { return Value{kind: KindString, s: v} }

// Kind returns the kind of the held scalar.
func (v Value) Kind() Kind { return v.kind }

// Int returns the integer, or 0 if the value is not an int.
func (v Value) Int() int64 {
	if v.kind != KindInt {
		return 0
	}
	return v.i
}

// Float returns the float. Int values are widened; other kinds return 0.
func (v Value) Float() float64 {
	switch v.kind {
	case KindFloat:
		return v.f
	case KindInt:
		return float64(v.i)
	default:
		return 0
	}
}

// Bool returns the boolean, or false if the value is not a bool.
func (v Value) Bool() bool {
	return v.kind == KindBool && v.b
}

// Str returns the string, or "" if the value is not a string.
func (v Value) Str() string {
	if v.kind != KindString {
		return ""
	}
	return v.s
}

// Any returns the held scalar as int64, float64, bool or string.
func (v Value) Any() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	default:
		return v.s
	}
}

// String formats the value the way an operator would type it.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.s
	}
}
