// Package command registers handlers against dotted command paths,
// builds the matching cobra tree, and dispatches invocations through
// the three-phase hook chain into the rendering facade.
//
// A dispatch runs on one goroutine from parse to output. App-scoped
// state is shared across dispatches and treated as immutable; each
// dispatch owns a fresh per-invocation extensions container that
// pre-dispatch hooks may populate.
package command

import (
	"fmt"
	"reflect"
	"sort"
)

// Extensions is a type-keyed container: at most one value per Go type.
// It spares handlers and hooks an ever-growing parameter list; state
// travels by type identity instead.
type Extensions struct {
	values map[reflect.Type]any
}

// NewExtensions returns an empty container.
func NewExtensions() *Extensions {
	return &Extensions{values: make(map[reflect.Type]any)}
}

// insert stores value under its dynamic type, replacing any previous
// value of that type.
func (e *Extensions) insert(value any) {
	e.values[reflect.TypeOf(value)] = value
}

// Len returns the number of stored values.
func (e *Extensions) Len() int {
	return len(e.values)
}

// Types lists the stored type names, sorted. Useful in error messages
// and debug logs.
func (e *Extensions) Types() []string {
	names := make([]string, 0, len(e.values))
	for t := range e.values {
		names = append(names, t.String())
	}
	sort.Strings(names)
	return names
}

// Put stores a value in the container, keyed by its type.
func Put[T any](e *Extensions, value T) {
	e.values[reflect.TypeOf((*T)(nil)).Elem()] = value
}

// Get retrieves the value stored for type T.
func Get[T any](e *Extensions) (T, bool) {
	var zero T
	if e == nil {
		return zero, false
	}
	v, ok := e.values[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return zero, false
	}
	return v.(T), true
}

// MustGet retrieves the value stored for type T and panics when it is
// absent. Reach for it only where registration is guaranteed at build
// time.
func MustGet[T any](e *Extensions) T {
	v, ok := Get[T](e)
	if !ok {
		var zero T
		panic(fmt.Sprintf("extensions: no value of type %T registered", zero))
	}
	return v
}
