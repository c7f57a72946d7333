// Package dis disassembles loaded Hollicode programs into readable text.
package dis

import (
	"fmt"
	"io"
	"strings"

	"github.com/hollicode-lang/hollicode/bytecode"
	"github.com/hollicode-lang/hollicode/object"
	"github.com/hollicode-lang/hollicode/op"
)

// Disassemble renders each instruction of the program as one line of text:
// the 0-based offset, the mnemonic, the operand (in text bytecode syntax)
// and, for jumps, the resolved target offset.
func Disassemble(p *bytecode.Program) []string {
	lines := make([]string, 0, p.Len())
	for i, instr := range p.Instructions() {
		operand := formatOperand(instr)
		annotation := ""
		switch instr.Op {
		case op.Jump, op.JumpIfFalse, op.TracebackJump:
			annotation = fmt.Sprintf("-> %d", i+instr.Delta)
		}
		line := fmt.Sprintf("%4d  %-5s %s", i, instr.Op.String(), operand)
		if annotation != "" {
			line = fmt.Sprintf("%-24s %s", line, annotation)
		}
		lines = append(lines, strings.TrimRight(line, " "))
	}
	return lines
}

// Print writes a full disassembly, including a program id and bytecode
// version banner, to the given writer.
func Print(p *bytecode.Program, w io.Writer) error {
	version := p.Header().BytecodeVersion
	if version == "" {
		version = "unknown"
	}
	if _, err := fmt.Fprintf(w, "program %s (bytecode version %s)\n", p.ID(), version); err != nil {
		return err
	}
	for _, line := range Disassemble(p) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// formatOperand renders an instruction operand in text bytecode syntax,
// escaping newlines and tabs the way the text loader expects them.
func formatOperand(instr bytecode.Instruction) string {
	if !instr.HasOperand {
		return ""
	}
	switch instr.Op {
	case op.PushString:
		if s, ok := instr.Value.(*object.String); ok {
			return escape(s.Value())
		}
		return escape(instr.Value.Inspect())
	case op.PushNumber, op.PushBool:
		return instr.Value.Inspect()
	case op.Jump, op.JumpIfFalse, op.TracebackJump:
		return fmt.Sprintf("%d", instr.Delta)
	case op.Call, op.Option:
		return fmt.Sprintf("%d", instr.Count)
	case op.GetVariable:
		return instr.Name
	case op.BinaryOp:
		return instr.BinOp.String()
	default:
		return ""
	}
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "\n", `\n`)
	return strings.ReplaceAll(s, "\t", `\t`)
}
