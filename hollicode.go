// Package hollicode is a bytecode interpreter for the Hollicode narrative
// scripting language. It loads bytecode emitted by the external Hollicode
// compiler and executes it, driving interactive-fiction presentation
// through host callbacks.
//
// Typical usage:
//
//	machine, err := hollicode.LoadFile("story.hlct",
//		hollicode.WithCallbacks(vm.Callbacks{
//			Echo: func(ctx context.Context, m *vm.VirtualMachine, value object.Object) error {
//				fmt.Println(value)
//				return nil
//			},
//		}))
//	if err != nil {
//		return err
//	}
//	err = machine.Run(ctx)
package hollicode

import (
	"github.com/rs/zerolog"

	"github.com/hollicode-lang/hollicode/bytecode"
	"github.com/hollicode-lang/hollicode/object"
	"github.com/hollicode-lang/hollicode/vm"
)

// Option configures loading and execution of a Hollicode program.
type Option func(*options)

type options struct {
	variables           map[string]object.Object
	functions           map[string]*object.Builtin
	callbacks           vm.Callbacks
	logger              zerolog.Logger
	yieldAtFunctionCall bool
	ignoreTextHeader    bool
	format              bytecode.Format
}

func collectOptions(opts ...Option) *options {
	o := &options{
		variables: map[string]object.Object{},
		functions: map[string]*object.Builtin{},
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) loaderOpts() []bytecode.Option {
	return []bytecode.Option{
		bytecode.WithLogger(o.logger),
		bytecode.WithIgnoreTextHeader(o.ignoreTextHeader),
		bytecode.WithFormat(o.format),
	}
}

func (o *options) vmOpts() []vm.Option {
	return []vm.Option{
		vm.WithVariables(o.variables),
		vm.WithFunctions(o.functions),
		vm.WithCallbacks(o.callbacks),
		vm.WithLogger(o.logger),
		vm.WithYieldAtFunctionCall(o.yieldAtFunctionCall),
	}
}

// WithVariables seeds the variable table read by the GETV instruction.
// This option is additive; if the same name is supplied multiple times,
// the last value wins.
func WithVariables(variables map[string]object.Object) Option {
	return func(o *options) {
		for name, value := range variables {
			o.variables[name] = value
		}
	}
}

// WithFunctions registers host functions callable from scripts. Additive,
// like WithVariables.
func WithFunctions(functions map[string]*object.Builtin) Option {
	return func(o *options) {
		for name, fn := range functions {
			o.functions[name] = fn
		}
	}
}

// WithCallbacks sets the four host callback hooks.
func WithCallbacks(callbacks vm.Callbacks) Option {
	return func(o *options) {
		o.callbacks = callbacks
	}
}

// WithLogger sets the diagnostic sink used for non-fatal warnings by both
// the loader and the VM.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithYieldAtFunctionCall makes every CALL instruction suspend the VM.
func WithYieldAtFunctionCall(yield bool) Option {
	return func(o *options) {
		o.yieldAtFunctionCall = yield
	}
}

// WithIgnoreTextHeader skips parsing the header line of text bytecode.
func WithIgnoreTextHeader(ignore bool) Option {
	return func(o *options) {
		o.ignoreTextHeader = ignore
	}
}

// WithFormat forces the bytecode format instead of inferring it from the
// file extension.
func WithFormat(format bytecode.Format) Option {
	return func(o *options) {
		o.format = format
	}
}

// LoadFile loads a bytecode file and returns a VM ready to Run it.
func LoadFile(path string, opts ...Option) (*vm.VirtualMachine, error) {
	o := collectOptions(opts...)
	program, err := bytecode.LoadFile(path, o.loaderOpts()...)
	if err != nil {
		return nil, err
	}
	return vm.New(program, o.vmOpts()...), nil
}

// Load parses bytecode from memory and returns a VM ready to Run it.
func Load(data []byte, format bytecode.Format, opts ...Option) (*vm.VirtualMachine, error) {
	o := collectOptions(opts...)
	program, err := bytecode.Load(data, format, o.loaderOpts()...)
	if err != nil {
		return nil, err
	}
	return vm.New(program, o.vmOpts()...), nil
}

// New returns a VM for an already-loaded program.
func New(program *bytecode.Program, opts ...Option) *vm.VirtualMachine {
	o := collectOptions(opts...)
	return vm.New(program, o.vmOpts()...)
}
