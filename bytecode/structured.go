package bytecode

import (
	"encoding/json"
	"errors"

	"github.com/hollicode-lang/hollicode/errz"
	"github.com/hollicode-lang/hollicode/object"
	"github.com/hollicode-lang/hollicode/op"
)

// loadStructured parses the JSON-based .hlcj format: an object with a
// "header" field and an "instructions" array whose elements are either a
// bare opcode string or an [opcode, operand] tuple. Numeric and boolean
// operands arrive already typed. Malformed input is fatal; an unrecognized
// opcode only skips its element with a warning.
func loadStructured(data []byte, c *config) (*Program, error) {
	var doc struct {
		Header       map[string]interface{} `json:"header"`
		Instructions []interface{}          `json:"instructions"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errz.LoadErrorf("malformed structured bytecode").WithCause(err)
	}
	if doc.Header == nil {
		return nil, errz.LoadErrorf("structured bytecode is missing its header")
	}
	if doc.Instructions == nil {
		return nil, errz.LoadErrorf("structured bytecode is missing its instructions array")
	}

	header := parseHeader(doc.Header)
	checkVersion(header, c)

	var instructions []Instruction
	for i, element := range doc.Instructions {
		var mnemonic string
		var operand interface{}
		hasOperand := false

		switch element := element.(type) {
		case string:
			mnemonic = element
		case []interface{}:
			if len(element) < 1 || len(element) > 2 {
				return nil, errz.LoadErrorf("instruction %d: tuple must have 1 or 2 elements", i)
			}
			name, ok := element[0].(string)
			if !ok {
				return nil, errz.LoadErrorf("instruction %d: opcode must be a string", i)
			}
			mnemonic = name
			if len(element) == 2 {
				operand = element[1]
				hasOperand = true
			}
		default:
			return nil, errz.LoadErrorf("instruction %d: expected string or tuple", i)
		}

		code, ok := op.LookupName(mnemonic)
		if !ok {
			c.logger.Warn().
				Int("instruction", i).
				Str("opcode", mnemonic).
				Msg("unrecognized opcode; skipping instruction")
			continue
		}

		instr, err := decodeStructuredOperand(code, operand, hasOperand)
		if err != nil {
			return nil, errz.LoadErrorf("instruction %d (%s): %s", i, mnemonic, err).WithCause(err)
		}
		instructions = append(instructions, instr)
	}
	return New(header, instructions), nil
}

// decodeStructuredOperand types an already-decoded JSON operand according
// to the opcode. Unlike the text loader, a type mismatch here is fatal:
// the structured format carries types and a mismatch means malformed input.
func decodeStructuredOperand(code op.Code, operand interface{}, hasOperand bool) (Instruction, error) {
	instr := Instruction{Op: code}
	kind := op.GetInfo(code).Operand
	if kind == op.OperandNone {
		if hasOperand {
			return instr, errors.New("opcode takes no operand")
		}
		return instr, nil
	}
	if !hasOperand {
		return instr, errors.New("opcode requires an operand")
	}
	instr.HasOperand = true
	switch kind {
	case op.OperandString:
		s, ok := operand.(string)
		if !ok {
			return instr, errors.New("operand must be a string")
		}
		instr.Value = object.NewString(s)
	case op.OperandNumber:
		n, ok := operand.(float64)
		if !ok {
			return instr, errors.New("operand must be a number")
		}
		instr.Value = object.NewFloat(n)
	case op.OperandBool:
		b, ok := operand.(bool)
		if !ok {
			return instr, errors.New("operand must be a bool")
		}
		instr.Value = object.NewBool(b)
	case op.OperandJump:
		n, ok := operand.(float64)
		if !ok || n != float64(int(n)) {
			return instr, errors.New("operand must be an integer jump distance")
		}
		instr.Delta = int(n)
	case op.OperandCount:
		n, ok := operand.(float64)
		if !ok || n != float64(int(n)) || n < 0 {
			return instr, errors.New("operand must be a non-negative integer count")
		}
		instr.Count = int(n)
	case op.OperandSymbol:
		s, ok := operand.(string)
		if !ok {
			return instr, errors.New("operand must be a string")
		}
		if code == op.BinaryOp {
			binOp, ok := op.ParseBinaryOp(s)
			if !ok {
				return instr, errors.New("unknown operator symbol")
			}
			instr.BinOp = binOp
		} else {
			instr.Name = s
		}
	}
	return instr, nil
}
