package bytecode

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/hollicode-lang/hollicode/object"
	"github.com/hollicode-lang/hollicode/op"
)

// loadText parses the line-oriented .hlct format. The first line is the
// header encoded as JSON; each subsequent line is "OPCODE" or "OPCODE ARG"
// with a single space delimiter. Unrecognized or malformed lines are
// skipped with a warning so partially-incompatible scripts still run.
func loadText(data []byte, c *config) (*Program, error) {
	text := string(data)
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	lines := strings.Split(text, "\n")

	var header Header
	if len(lines) > 0 {
		if !c.ignoreTextHeader {
			header = parseTextHeader(strings.TrimSuffix(lines[0], "\r"), c)
			checkVersion(header, c)
		}
		lines = lines[1:]
	}

	var instructions []Instruction
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		// Line numbers are 1-based and count the header line.
		lineNum := i + 2

		mnemonic := line
		arg := ""
		hasArg := false
		if idx := strings.IndexByte(line, ' '); idx >= 0 {
			mnemonic = line[:idx]
			arg = unescape(line[idx+1:])
			hasArg = true
		}

		code, ok := op.LookupName(mnemonic)
		if !ok {
			c.logger.Warn().
				Int("line", lineNum).
				Str("opcode", mnemonic).
				Msg("unrecognized opcode; skipping line")
			continue
		}

		instr, err := decodeTextOperand(code, arg, hasArg)
		if err != nil {
			c.logger.Warn().
				Int("line", lineNum).
				Str("opcode", mnemonic).
				Str("argument", arg).
				Err(err).
				Msg("malformed operand; skipping line")
			continue
		}
		instructions = append(instructions, instr)
	}
	return New(header, instructions), nil
}

// parseTextHeader decodes the JSON header line of text bytecode. A header
// that fails to decode is a warning, not a fatal error: only the structured
// format treats a bad header as malformed input.
func parseTextHeader(line string, c *config) Header {
	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(line), &fields); err != nil {
		c.logger.Warn().Err(err).Msg("unable to decode text bytecode header")
		return Header{}
	}
	return parseHeader(fields)
}

func parseHeader(fields map[string]interface{}) Header {
	header := Header{Fields: fields}
	if v, ok := fields["bytecodeVersion"].(string); ok {
		header.BytecodeVersion = v
	}
	return header
}

// decodeTextOperand types a raw textual argument according to the opcode.
func decodeTextOperand(code op.Code, arg string, hasArg bool) (Instruction, error) {
	instr := Instruction{Op: code}
	kind := op.GetInfo(code).Operand
	if kind == op.OperandNone {
		if hasArg {
			return instr, errors.New("opcode takes no operand")
		}
		return instr, nil
	}
	if !hasArg {
		return instr, errors.New("opcode requires an operand")
	}
	instr.HasOperand = true
	switch kind {
	case op.OperandString:
		instr.Value = object.NewString(arg)
	case op.OperandNumber:
		n, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return instr, errors.New("invalid number literal")
		}
		instr.Value = object.NewFloat(n)
	case op.OperandBool:
		switch arg {
		case "true":
			instr.Value = object.True
		case "false":
			instr.Value = object.False
		default:
			return instr, errors.New("invalid bool literal")
		}
	case op.OperandJump:
		d, err := strconv.Atoi(arg)
		if err != nil {
			return instr, errors.New("invalid jump distance")
		}
		instr.Delta = d
	case op.OperandCount:
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return instr, errors.New("invalid argument count")
		}
		instr.Count = n
	case op.OperandSymbol:
		if code == op.BinaryOp {
			binOp, ok := op.ParseBinaryOp(arg)
			if !ok {
				return instr, errors.New("unknown operator symbol")
			}
			instr.BinOp = binOp
		} else {
			instr.Name = arg
		}
	}
	return instr, nil
}

// unescape processes backslash escapes in a text bytecode argument:
// \n becomes newline, \t becomes tab, any other \x becomes x, and a lone
// backslash before end of line is kept. Unicode \uXXXX sequences are
// deliberately not decoded; use the structured format for non-ASCII.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '\\' {
			b.WriteByte(ch)
			continue
		}
		if i == len(s)-1 {
			b.WriteByte('\\')
			break
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
