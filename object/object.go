// Package object provides the set of value types the Hollicode VM pushes
// onto and pops off its operand stack.
//
// External users will often type assert an object.Object to a specific
// type, such as *object.String:
//
//	switch obj := obj.(type) {
//	case *object.String:
//		// do something with obj.Value()
//	case *object.Float:
//		// do something with obj.Value()
//	}
//
// The Type() method of each object may also be used to get a string name
// of the object type, such as "string" or "number".
package object

import (
	"context"
	"sort"
)

// Type of an object as a string.
type Type string

// Type constants
const (
	BOOL     Type = "bool"
	FUNCTION Type = "function"
	MAP      Type = "map"
	NIL      Type = "nil"
	NUMBER   Type = "number"
	STRING   Type = "string"
)

var (
	Nil   = &NilType{}
	True  = &Bool{value: true}
	False = &Bool{value: false}
)

// Object is the interface that all Hollicode value types must implement.
type Object interface {
	// Type of the object.
	Type() Type

	// Inspect returns a string representation of the given object.
	Inspect() string

	// Interface converts the given object to a native Go value.
	Interface() interface{}

	// Equals returns true if the given object is equal to this object.
	Equals(other Object) bool

	// IsTruthy returns true if the object is considered "truthy".
	// In Hollicode only Nil and false are falsy: zero and the empty
	// string are truthy.
	IsTruthy() bool
}

// Callable is an interface for objects that can be invoked as functions.
// Host functions registered with the VM implement this interface.
type Callable interface {
	// Call invokes the callable with the given arguments and returns the result.
	Call(ctx context.Context, args ...Object) (Object, error)
}

// Keys returns the keys of an object map as a sorted slice of strings.
func Keys(m map[string]Object) []string {
	var names []string
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
