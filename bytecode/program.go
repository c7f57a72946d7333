// Package bytecode defines the in-memory representation of compiled
// Hollicode scripts and the loaders for the two bytecode file formats.
package bytecode

import (
	"github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/hollicode-lang/hollicode/errz"
	"github.com/hollicode-lang/hollicode/object"
	"github.com/hollicode-lang/hollicode/op"
)

// CompatibleVersions is the set of bytecode versions this VM is known to
// execute correctly. Programs with other versions load with a warning.
var CompatibleVersions = []string{"0.1.0"}

// Header carries program metadata. Fields holds any extra header entries
// the compiler emitted beyond the ones with dedicated fields.
type Header struct {
	BytecodeVersion string
	Fields          map[string]interface{}
}

// VersionCompatible reports whether the header's bytecode version is in the
// known-compatible set.
func (h Header) VersionCompatible() bool {
	for _, v := range CompatibleVersions {
		if h.BytecodeVersion == v {
			return true
		}
	}
	return false
}

// Instruction is one decoded (opcode, operand) record. Operands are parsed
// into typed fields at load time so the dispatch loop never re-parses them.
// An opcode with no operand leaves HasOperand false; an absent operand is
// never represented as an empty string.
type Instruction struct {
	Op op.Code

	HasOperand bool

	// Value is the prebuilt object for STR, NUM and BOOL operands.
	Value object.Object

	// Delta is the signed jump distance for JMP, FJMP and TJMP.
	Delta int

	// Count is the argument count for CALL and OPT.
	Count int

	// Name is the variable name for GETV.
	Name string

	// BinOp is the parsed operator for BOP.
	BinOp op.BinaryOpType
}

// Program is an immutable loaded bytecode program: a header plus a dense,
// 0-indexed instruction sequence.
type Program struct {
	id           string
	header       Header
	instructions []Instruction
}

// New creates a Program from a header and instruction sequence. Each program
// is assigned a unique id for logs and disassembly.
func New(header Header, instructions []Instruction) *Program {
	return &Program{
		id:           uuid.Must(uuid.NewV4()).String(),
		header:       header,
		instructions: instructions,
	}
}

// ID returns the unique id assigned to this program at load time.
func (p *Program) ID() string {
	return p.id
}

// Header returns the program header.
func (p *Program) Header() Header {
	return p.header
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	return len(p.instructions)
}

// Instruction returns the instruction at the given 0-based index.
func (p *Program) Instruction(i int) Instruction {
	return p.instructions[i]
}

// Instructions returns the instruction sequence. The caller must not
// modify the returned slice.
func (p *Program) Instructions() []Instruction {
	return p.instructions
}

// Validate statically checks the program and returns every defect found,
// aggregated into a single error: jump targets outside [0, len], negative
// argument counts, and OPT instructions missing their trailing guard JMP
// (which the option resumption arithmetic skips over blindly).
func (p *Program) Validate() error {
	var result *multierror.Error
	count := len(p.instructions)
	for i, instr := range p.instructions {
		switch instr.Op {
		case op.Jump, op.JumpIfFalse, op.TracebackJump:
			target := i + instr.Delta
			if target < 0 || target > count {
				result = multierror.Append(result, errz.ExecErrorf(
					"instruction %d: jump target %d out of range [0, %d]",
					i, target, count))
			}
		case op.Call, op.Option:
			if instr.Count < 0 {
				result = multierror.Append(result, errz.ExecErrorf(
					"instruction %d: negative argument count %d", i, instr.Count))
			}
			if instr.Op == op.Option {
				if i+1 >= count || p.instructions[i+1].Op != op.Jump {
					result = multierror.Append(result, errz.ExecErrorf(
						"instruction %d: OPT is not followed by its guard JMP", i))
				}
			}
		}
	}
	return result.ErrorOrNil()
}
