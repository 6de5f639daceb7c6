// Package consoletypes defines the typed argument mapping passed to handlers.
package consoletypes

import "sort"

// TypedArgs maps parameter names to parsed values for one invocation.
// Every schema parameter is present as a key: required ones always carry a value,
// optional ones carry a value or an explicit absence.
type TypedArgs struct {
	values map[string]*Value
}

// NewTypedArgs creates an empty mapping. Parsers record each parameter with Set or SetAbsent.
func NewTypedArgs() TypedArgs {
	return TypedArgs{values: make(map[string]*Value)}
}

// Set binds a parameter to a value.
func (a TypedArgs) Set(name string, v Value) {
	a.values[name] = &v
}

// SetAbsent records an optional parameter as explicitly absent.
func (a TypedArgs) SetAbsent(name string) {
	a.values[name] = nil
}

// Has reports whether the parameter is bound to a concrete value.
func (a TypedArgs) Has(name string) bool {
	v, ok := a.values[name]
	return ok && v != nil
}

// Declared reports whether the parameter is known to this mapping, bound or absent.
func (a TypedArgs) Declared(name string) bool {
	_, ok := a.values[name]
	return ok
}

// Get returns the bound value and true, or the zero Value and false when absent.
func (a TypedArgs) Get(name string) (Value, bool) {
	v, ok := a.values[name]
	if !ok || v == nil {
		return Value{}, false
	}
	return *v, true
}

// Int returns the bound integer or 0.
func (a TypedArgs) Int(name string) int64 {
	v, _ := a.Get(name)
	return v.Int()
}

// Float returns the bound float or 0.
func (a TypedArgs) Float(name string) float64 {
	v, _ := a.Get(name)
	return v.Float()
}

// Bool returns the bound boolean or false.
func (a TypedArgs) Bool(name string) bool {
	v, _ := a.Get(name)
	return v.Bool()
}

// Str returns the bound string or "".
func (a TypedArgs) Str(name string) string {
	v, _ := a.Get(name)
	return v.Str()
}

// OptInt returns the integer and whether it was bound.
func (a TypedArgs) OptInt(name string) (int64, bool) {
	v, ok := a.Get(name)
	return v.Int(), ok
}

// OptFloat returns the float and whether it was bound.
func (a TypedArgs) OptFloat(name string) (float64, bool) {
	v, ok := a.Get(name)
	return v.Float(), ok
}

// OptBool returns the boolean and whether it was bound.
func (a TypedArgs) OptBool(name string) (bool, bool) {
	v, ok := a.Get(name)
	return v.Bool(), ok
}

// OptString returns the string and whether it was bound.
func (a TypedArgs) OptString(name string) (string, bool) {
	v, ok := a.Get(name)
	return v.Str(), ok
}

// Len returns the number of declared parameters, bound or absent.
func (a TypedArgs) Len() int {
	return len(a.values)
}

// Names returns the declared parameter names in sorted order.
func (a TypedArgs) Names() []string {
	names := make([]string, 0, len(a.values))
	for name := range a.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
