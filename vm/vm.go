// Package vm provides a VirtualMachine that executes compiled Hollicode
// bytecode.
package vm

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hollicode-lang/hollicode/bytecode"
	"github.com/hollicode-lang/hollicode/errz"
	"github.com/hollicode-lang/hollicode/object"
	"github.com/hollicode-lang/hollicode/op"
)

// DefaultContextCheckInterval is the number of instructions between
// deterministic checks of ctx.Done(). Set to 0 to disable.
const DefaultContextCheckInterval = 1000

// Callbacks holds the host hooks the VM invokes at defined points. All four
// are synchronous and optional; an absent callback is silently ignored
// (except that CALL with an absent FunctionCall and a Nil method is fatal).
// Errors returned by callbacks propagate out of Run unchanged.
//
// Host code must not re-enter Run from inside a callback: the VM is
// mid-handler while a callback executes. Setting the yield flag from a
// callback is permitted; the VM checks it after each handler.
type Callbacks struct {
	// Echo receives the value popped by an ECHO instruction.
	Echo func(ctx context.Context, vm *VirtualMachine, value object.Object) error

	// Option receives the arguments of an OPT instruction as it is
	// recorded in the option registry.
	Option func(ctx context.Context, vm *VirtualMachine, args []object.Object) error

	// Wait is invoked when a WAIT instruction suspends execution.
	Wait func(ctx context.Context, vm *VirtualMachine) error

	// FunctionCall, when set, receives every CALL instruction instead of
	// the VM invoking the popped method directly.
	FunctionCall func(ctx context.Context, vm *VirtualMachine, fn object.Object, args []object.Object) error
}

// VirtualMachine executes one loaded Hollicode program. A VM instance is
// single-threaded and cooperative: Run executes instructions serially until
// the program yields, and the host advances it again with Push, GoToOption
// and Run. Instances share nothing; a host may run several concurrently as
// long as each is accessed by one goroutine at a time.
type VirtualMachine struct {
	ip                   int
	stack                []object.Object
	traceback            []int
	choices              []Choice
	variables            map[string]object.Object
	functions            map[string]*object.Builtin
	callbacks            Callbacks
	yield                bool
	yieldAtFunctionCall  bool
	program              *bytecode.Program
	logger               zerolog.Logger
	running              bool
	runMutex             sync.Mutex
	contextCheckInterval int
}

// New creates a VirtualMachine for the given program.
func New(program *bytecode.Program, options ...Option) *VirtualMachine {
	vm := &VirtualMachine{
		program:              program,
		variables:            map[string]object.Object{},
		functions:            map[string]*object.Builtin{},
		logger:               zerolog.Nop(),
		contextCheckInterval: DefaultContextCheckInterval,
	}
	for _, opt := range options {
		opt(vm)
	}
	return vm
}

func (vm *VirtualMachine) start() error {
	vm.runMutex.Lock()
	defer vm.runMutex.Unlock()
	if vm.running {
		return fmt.Errorf("vm is already running")
	}
	vm.running = true
	return nil
}

func (vm *VirtualMachine) stop() {
	vm.runMutex.Lock()
	defer vm.runMutex.Unlock()
	vm.running = false
}

// Run executes instructions until the program yields: at a WAIT, at end of
// program, at a RET with an empty traceback, or when a callback sets the
// yield flag. Errors raised by handlers and callbacks propagate unchanged;
// on error the VM state is left as-is so the caller can inspect the IP.
func (vm *VirtualMachine) Run(ctx context.Context) (err error) {
	// Set up some guarantees:
	// 1. It is an error to call Run on a VM that is already running
	// 2. The running flag will always be set to false when Run returns
	// 3. Any panics are translated to errors and the VM is stopped
	if vm.program == nil {
		return errz.ExecErrorf("no program loaded")
	}
	if err := vm.start(); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		vm.stop()
	}()

	vm.yield = false

	instructions := vm.program.Instructions()
	count := len(instructions)

	// Instruction counter for deterministic context checking
	var instructionCount int
	checkInterval := vm.contextCheckInterval
	doneChan := ctx.Done()

	for !vm.yield {
		if vm.ip >= count {
			// End of program is an implicit yield.
			vm.yield = true
			return nil
		}
		if vm.ip < 0 {
			return vm.execErrorf("instruction pointer out of range: %d", vm.ip)
		}

		// Deterministic check of ctx.Done() every N instructions so a host
		// can bound runaway scripts with a deadline.
		if checkInterval > 0 && doneChan != nil {
			instructionCount++
			if instructionCount >= checkInterval {
				instructionCount = 0
				select {
				case <-doneChan:
					return ctx.Err()
				default:
				}
			}
		}

		if err := vm.dispatch(ctx, instructions[vm.ip], count); err != nil {
			return err
		}
	}
	return nil
}

// dispatch decodes and executes a single instruction. Each handler is
// responsible for advancing the instruction pointer; control-flow opcodes
// set it freely.
func (vm *VirtualMachine) dispatch(ctx context.Context, instr bytecode.Instruction, count int) error {
	switch instr.Op {
	case op.Return:
		if n := len(vm.traceback); n > 0 {
			returnTo := vm.traceback[n-1]
			vm.traceback = vm.traceback[:n-1]
			vm.ip = returnTo + 1
		} else {
			vm.yield = true
		}

	case op.PopTop:
		vm.Pop()
		vm.ip++

	case op.Jump:
		vm.ip += instr.Delta

	case op.JumpIfFalse:
		// Leaves the tested value on the stack.
		if !vm.Peek().IsTruthy() {
			vm.ip += instr.Delta
		} else {
			vm.ip++
		}

	case op.TracebackJump:
		vm.traceback = append(vm.traceback, vm.ip)
		vm.ip += instr.Delta

	case op.PushString, op.PushNumber, op.PushBool:
		vm.Push(instr.Value)
		vm.ip++

	case op.PushNil:
		vm.Push(object.Nil)
		vm.ip++

	case op.GetVariable:
		if value, ok := vm.variables[instr.Name]; ok {
			vm.Push(value)
		} else if fn, ok := vm.functions[instr.Name]; ok {
			vm.Push(fn)
		} else {
			vm.Push(object.Nil)
		}
		vm.ip++

	case op.Lookup:
		parent := vm.Pop()
		child := vm.Pop()
		parentMap, ok := parent.(*object.Map)
		if !ok {
			return vm.execErrorf("cannot index %s value", parent.Type())
		}
		key, ok := child.(*object.String)
		if !ok {
			return vm.execErrorf("cannot index with %s key", child.Type())
		}
		if value, ok := parentMap.Get(key.Value()); ok {
			vm.Push(value)
		} else {
			vm.Push(object.Nil)
		}
		vm.ip++

	case op.UnaryNot:
		vm.Push(object.Not(vm.Pop()))
		vm.ip++

	case op.UnaryNegative:
		result, err := object.Negate(vm.Pop())
		if err != nil {
			return vm.execError(err)
		}
		vm.Push(result)
		vm.ip++

	case op.BinaryOp:
		left := vm.Pop()
		right := vm.Pop()
		result, err := object.BinaryOp(instr.BinOp, left, right)
		if err != nil {
			return vm.execError(err)
		}
		vm.Push(result)
		vm.ip++

	case op.Call:
		method := vm.Pop()
		args := vm.popArgs(instr.Count)
		if vm.yieldAtFunctionCall {
			vm.yield = true
		}
		if vm.callbacks.FunctionCall != nil {
			if err := vm.callbacks.FunctionCall(ctx, vm, method, args); err != nil {
				return err
			}
		} else {
			if _, ok := method.(*object.NilType); ok {
				return vm.execErrorf("call of nil method")
			}
			callable, ok := method.(object.Callable)
			if !ok {
				return vm.execErrorf("%s is not callable", method.Type())
			}
			// The call's return value is not part of the instruction set
			// contract; nothing is pushed.
			if _, err := callable.Call(ctx, args...); err != nil {
				return err
			}
		}
		vm.ip++

	case op.Echo:
		value := vm.Pop()
		if vm.callbacks.Echo != nil {
			if err := vm.callbacks.Echo(ctx, vm, value); err != nil {
				return err
			}
		}
		vm.ip++

	case op.Option:
		args := vm.popArgs(instr.Count)
		vm.choices = append(vm.choices, Choice{IP: vm.ip, Args: args})
		if vm.callbacks.Option != nil {
			if err := vm.callbacks.Option(ctx, vm, args); err != nil {
				return err
			}
		}
		vm.ip++

	case op.Wait:
		vm.yield = true
		if vm.callbacks.Wait != nil {
			if err := vm.callbacks.Wait(ctx, vm); err != nil {
				return err
			}
		}
		// Advance past the WAIT so resumption continues after it.
		vm.ip++

	default:
		return vm.execErrorf("unrecognized opcode %d", instr.Op)
	}
	return nil
}

// popArgs pops n arguments off the stack. The first value popped becomes
// args[0]; swapping this order would be a breaking change for compiled
// scripts.
func (vm *VirtualMachine) popArgs(n int) []object.Object {
	args := make([]object.Object, n)
	for i := 0; i < n; i++ {
		args[i] = vm.Pop()
	}
	return args
}

// Push places a value on the operand stack. The host may use this to seed
// arguments before Run.
func (vm *VirtualMachine) Push(value object.Object) {
	vm.stack = append(vm.stack, value)
}

// Pop removes and returns the top of the operand stack. Popping an empty
// stack emits a diagnostic and returns Nil; it is not fatal because host
// code may probe.
func (vm *VirtualMachine) Pop() object.Object {
	n := len(vm.stack)
	if n == 0 {
		vm.logger.Warn().Int("ip", vm.ip).Msg("popped an empty stack")
		return object.Nil
	}
	value := vm.stack[n-1]
	vm.stack = vm.stack[:n-1]
	return value
}

// Peek returns the top of the operand stack without removing it, or Nil if
// the stack is empty.
func (vm *VirtualMachine) Peek() object.Object {
	n := len(vm.stack)
	if n == 0 {
		return object.Nil
	}
	return vm.stack[n-1]
}

// StackSize returns the number of values on the operand stack.
func (vm *VirtualMachine) StackSize() int {
	return len(vm.stack)
}

// IP returns the current instruction pointer (0-based).
func (vm *VirtualMachine) IP() int {
	return vm.ip
}

// Finished reports whether the instruction pointer has passed the end of
// the program.
func (vm *VirtualMachine) Finished() bool {
	return vm.program == nil || vm.ip >= vm.program.Len()
}

// Program returns the loaded program.
func (vm *VirtualMachine) Program() *bytecode.Program {
	return vm.program
}

// SetYield sets the yield flag. Calling this from inside a callback is the
// supported way for a host to suspend execution after the current handler.
func (vm *VirtualMachine) SetYield(yield bool) {
	vm.yield = yield
}

// SetYieldAtFunctionCall controls whether every CALL instruction suspends
// the VM after invoking the function.
func (vm *VirtualMachine) SetYieldAtFunctionCall(yield bool) {
	vm.yieldAtFunctionCall = yield
}

// SetVariable makes a value visible to GETV under the given name. Variables
// may be mutated any time the VM is not running.
func (vm *VirtualMachine) SetVariable(name string, value object.Object) {
	vm.variables[name] = value
}

// GetVariable returns the value bound to name, if any.
func (vm *VirtualMachine) GetVariable(name string) (object.Object, bool) {
	value, ok := vm.variables[name]
	return value, ok
}

// DeleteVariable removes a variable binding.
func (vm *VirtualMachine) DeleteVariable(name string) {
	delete(vm.variables, name)
}

// SetFunction registers a host function. GETV resolves names through the
// variable table first and the function table second, so compiled scripts
// can push host functions for CALL without a FunctionCall callback.
func (vm *VirtualMachine) SetFunction(name string, fn *object.Builtin) {
	vm.functions[name] = fn
}

// SetCallbacks replaces the host callback set.
func (vm *VirtualMachine) SetCallbacks(callbacks Callbacks) {
	vm.callbacks = callbacks
}

func (vm *VirtualMachine) opcodeName() string {
	if vm.program != nil && vm.ip >= 0 && vm.ip < vm.program.Len() {
		return vm.program.Instruction(vm.ip).Op.String()
	}
	return ""
}

func (vm *VirtualMachine) execErrorf(format string, args ...interface{}) error {
	return errz.ExecErrorf(format, args...).
		At(vm.ip, vm.opcodeName()).
		WithTraceback(vm.traceback)
}

func (vm *VirtualMachine) execError(err error) error {
	return errz.ExecErrorf("%s", err).
		At(vm.ip, vm.opcodeName()).
		WithTraceback(vm.traceback).
		WithCause(err)
}
