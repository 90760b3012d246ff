package fiecs

import (
	"fmt"
	"reflect"
)

// Context is a type-keyed store for singleton values that travel with the
// Registry: configuration, clocks, spatial indices, an EventBus. One value
// per type. It is not entity storage; nothing in here participates in
// groups, fingerprints or iteration.
type Context struct {
	values map[reflect.Type]any
}

func newContext() *Context {
	return &Context{values: make(map[reflect.Type]any)}
}

// PutContext stores v as the singleton of type T. Panics if one is already
// present; replace explicitly via DropContext first.
func PutContext[T any](c *Context, v *T) {
	if v == nil {
		panic("fiecs: nil context value")
	}
	t := reflect.TypeOf((*T)(nil)).Elem()
	if _, ok := c.values[t]; ok {
		panic(fmt.Sprintf("fiecs: context already holds a value of type %s", t))
	}
	c.values[t] = v
}

// ContextOf retrieves the singleton of type T, if present.
func ContextOf[T any](c *Context) (*T, bool) {
	v, ok := c.values[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// DropContext removes the singleton of type T. Dropping an absent type is a
// no-op.
func DropContext[T any](c *Context) {
	delete(c.values, reflect.TypeOf((*T)(nil)).Elem())
}

// Clear removes every singleton.
func (c *Context) Clear() {
	clear(c.values)
}

// Len returns the number of stored singletons.
func (c *Context) Len() int {
	return len(c.values)
}
