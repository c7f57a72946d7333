package vm

import (
	"github.com/rs/zerolog"

	"github.com/hollicode-lang/hollicode/object"
)

// Option is a configuration function for a Virtual Machine.
type Option func(*VirtualMachine)

// WithVariables seeds the variable table read by GETV.
func WithVariables(variables map[string]object.Object) Option {
	return func(vm *VirtualMachine) {
		for name, value := range variables {
			vm.variables[name] = value
		}
	}
}

// WithFunctions registers host functions callable from scripts.
func WithFunctions(functions map[string]*object.Builtin) Option {
	return func(vm *VirtualMachine) {
		for name, fn := range functions {
			vm.functions[name] = fn
		}
	}
}

// WithCallbacks sets the host callback hooks.
func WithCallbacks(callbacks Callbacks) Option {
	return func(vm *VirtualMachine) {
		vm.callbacks = callbacks
	}
}

// WithLogger sets the diagnostic sink for non-fatal runtime warnings, such
// as popping an empty stack. The default is a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(vm *VirtualMachine) {
		vm.logger = logger
	}
}

// WithYieldAtFunctionCall makes every CALL instruction suspend the VM after
// the function is invoked.
func WithYieldAtFunctionCall(yield bool) Option {
	return func(vm *VirtualMachine) {
		vm.yieldAtFunctionCall = yield
	}
}

// WithContextCheckInterval sets how often Run checks ctx.Done(), in number
// of instructions. A value of 0 disables the check. The default is
// DefaultContextCheckInterval.
func WithContextCheckInterval(interval int) Option {
	return func(vm *VirtualMachine) {
		vm.contextCheckInterval = interval
	}
}
