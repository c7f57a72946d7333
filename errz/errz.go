// Package errz defines the error taxonomy shared by the bytecode loader
// and the virtual machine.
package errz

import (
	"bytes"
	"fmt"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// ErrLoad indicates the loader could not produce a program: an
	// unreadable file, malformed structured input, or a missing header
	// or instructions array.
	ErrLoad ErrorKind = iota
	// ErrExec indicates a fatal condition during execution, such as an
	// unrecognized opcode or an out-of-range option index.
	ErrExec
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrLoad:
		return "load error"
	case ErrExec:
		return "execution error"
	default:
		return "error"
	}
}

// LoadError is a fatal error raised while loading bytecode.
type LoadError struct {
	Message string
	Path    string
	Line    int // 1-based line in text bytecode; 0 when not applicable
	Cause   error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("load error: %s (%s:%d)", e.Message, e.Path, e.Line)
	case e.Path != "":
		return fmt.Sprintf("load error: %s (%s)", e.Message, e.Path)
	case e.Line > 0:
		return fmt.Sprintf("load error: %s (line %d)", e.Message, e.Line)
	default:
		return fmt.Sprintf("load error: %s", e.Message)
	}
}

// Unwrap returns the underlying cause of the error.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// LoadErrorf creates a LoadError with a formatted message.
func LoadErrorf(format string, args ...interface{}) *LoadError {
	return &LoadError{Message: fmt.Sprintf(format, args...)}
}

// WithPath attaches the bytecode file path to the error.
func (e *LoadError) WithPath(path string) *LoadError {
	e.Path = path
	return e
}

// WithLine attaches a 1-based source line to the error.
func (e *LoadError) WithLine(line int) *LoadError {
	e.Line = line
	return e
}

// WithCause wraps the error with a cause.
func (e *LoadError) WithCause(cause error) *LoadError {
	e.Cause = cause
	return e
}

// ExecutionError is a fatal error raised while the VM is running. It carries
// the instruction pointer, the opcode being dispatched, and a copy of the
// traceback stack at the point of failure.
type ExecutionError struct {
	Message   string
	IP        int
	Opcode    string
	Traceback []int
	Cause     error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e.Opcode != "" {
		return fmt.Sprintf("execution error: %s (ip=%d op=%s)", e.Message, e.IP, e.Opcode)
	}
	return fmt.Sprintf("execution error: %s (ip=%d)", e.Message, e.IP)
}

// Unwrap returns the underlying cause of the error.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// FriendlyErrorMessage returns a multi-line message including the saved
// traceback, for surfacing to script authors.
func (e *ExecutionError) FriendlyErrorMessage() string {
	var msg bytes.Buffer
	msg.WriteString(e.Error())
	msg.WriteString("\n")
	for i := len(e.Traceback) - 1; i >= 0; i-- {
		fmt.Fprintf(&msg, "  called from instruction %d\n", e.Traceback[i])
	}
	return msg.String()
}

// ExecErrorf creates an ExecutionError with a formatted message.
func ExecErrorf(format string, args ...interface{}) *ExecutionError {
	return &ExecutionError{Message: fmt.Sprintf(format, args...)}
}

// At attaches the instruction pointer and opcode mnemonic to the error.
func (e *ExecutionError) At(ip int, opcode string) *ExecutionError {
	e.IP = ip
	e.Opcode = opcode
	return e
}

// WithTraceback attaches a copy of the traceback stack to the error.
func (e *ExecutionError) WithTraceback(traceback []int) *ExecutionError {
	e.Traceback = append([]int(nil), traceback...)
	return e
}

// WithCause wraps the error with a cause.
func (e *ExecutionError) WithCause(cause error) *ExecutionError {
	e.Cause = cause
	return e
}
