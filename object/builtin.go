package object

import (
	"context"
	"fmt"
)

var _ Callable = (*Builtin)(nil) // Ensure that *Builtin implements Callable

// BuiltinFunction holds the type of a host-supplied function. The return
// value is informational only; the VM's CALL instruction discards it.
type BuiltinFunction func(ctx context.Context, args ...Object) (Object, error)

// Builtin wraps a host Go function and implements the Object interface.
// The VM borrows the function; it never owns it.
type Builtin struct {
	// The function that this object wraps.
	fn BuiltinFunction

	// The name of the function.
	name string
}

func (b *Builtin) Type() Type {
	return FUNCTION
}

func (b *Builtin) Name() string {
	return b.name
}

func (b *Builtin) Value() BuiltinFunction {
	return b.fn
}

func (b *Builtin) Call(ctx context.Context, args ...Object) (Object, error) {
	return b.fn(ctx, args...)
}

func (b *Builtin) Inspect() string {
	return fmt.Sprintf("function(%s)", b.name)
}

func (b *Builtin) String() string {
	return b.Inspect()
}

func (b *Builtin) Interface() interface{} {
	return nil
}

func (b *Builtin) Equals(other Object) bool {
	if other, ok := other.(*Builtin); ok {
		return b == other
	}
	return false
}

func (b *Builtin) IsTruthy() bool {
	return true
}

// NewBuiltin creates a Builtin with the given name and host function.
func NewBuiltin(name string, fn BuiltinFunction) *Builtin {
	return &Builtin{name: name, fn: fn}
}
