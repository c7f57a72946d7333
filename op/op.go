// Package op defines opcodes used by the Hollicode compiler and virtual machine.
package op

// Code is an integer opcode that indicates an operation to execute.
type Code uint16

const (
	Invalid Code = 0

	// Control flow
	Return        Code = 1
	Jump          Code = 2
	JumpIfFalse   Code = 3
	TracebackJump Code = 4

	// Stack
	PopTop Code = 10

	// Push constants
	PushString Code = 20
	PushNumber Code = 21
	PushBool   Code = 22
	PushNil    Code = 23

	// Host data
	GetVariable Code = 30
	Lookup      Code = 31

	// Operations
	UnaryNot      Code = 40
	UnaryNegative Code = 41
	BinaryOp      Code = 42

	// Host interaction
	Call   Code = 50
	Echo   Code = 51
	Option Code = 52
	Wait   Code = 53
)

// OperandKind describes how a loader should interpret the textual operand
// of an instruction. Each Hollicode opcode takes at most one operand.
type OperandKind int

const (
	// OperandNone indicates the opcode takes no operand.
	OperandNone OperandKind = iota
	// OperandString is a raw (escape-processed) string pushed onto the stack.
	OperandString
	// OperandNumber is a double-precision float literal.
	OperandNumber
	// OperandBool is the literal "true" or "false".
	OperandBool
	// OperandJump is a signed integer jump distance.
	OperandJump
	// OperandCount is a non-negative integer argument count.
	OperandCount
	// OperandSymbol is a variable name or binary operator symbol.
	OperandSymbol
)

// Info contains information about an opcode.
type Info struct {
	Code    Code
	Name    string
	Operand OperandKind
}

var (
	infos  = make([]Info, 64)
	byName = map[string]Code{}
)

func init() {
	type opInfo struct {
		op      Code
		name    string
		operand OperandKind
	}
	ops := []opInfo{
		{Return, "RET", OperandNone},
		{PopTop, "POP", OperandNone},
		{Jump, "JMP", OperandJump},
		{JumpIfFalse, "FJMP", OperandJump},
		{TracebackJump, "TJMP", OperandJump},
		{PushString, "STR", OperandString},
		{PushNumber, "NUM", OperandNumber},
		{PushBool, "BOOL", OperandBool},
		{PushNil, "NIL", OperandNone},
		{GetVariable, "GETV", OperandSymbol},
		{Lookup, "LOOK", OperandNone},
		{UnaryNot, "NOT", OperandNone},
		{UnaryNegative, "NEG", OperandNone},
		{BinaryOp, "BOP", OperandSymbol},
		{Call, "CALL", OperandCount},
		{Echo, "ECHO", OperandNone},
		{Option, "OPT", OperandCount},
		{Wait, "WAIT", OperandNone},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Code:    o.op,
			Name:    o.name,
			Operand: o.operand,
		}
		byName[o.name] = o.op
	}
}

// GetInfo returns information about the given opcode.
func GetInfo(op Code) Info {
	if int(op) >= len(infos) {
		return Info{}
	}
	return infos[op]
}

// LookupName resolves an opcode mnemonic as it appears in bytecode files.
// The second return value is false if the mnemonic is not recognized.
func LookupName(name string) (Code, bool) {
	c, ok := byName[name]
	return c, ok
}

// String returns the opcode mnemonic, e.g. "FJMP".
func (c Code) String() string {
	return GetInfo(c).Name
}

// BinaryOpType describes a type of binary operation, as in an operation that
// takes two operands. The operator symbol is parsed once at load time so the
// VM dispatches on an integer rather than a string.
type BinaryOpType uint16

const (
	InvalidBinaryOp    BinaryOpType = 0
	GreaterThan        BinaryOpType = 1
	LessThan           BinaryOpType = 2
	GreaterThanOrEqual BinaryOpType = 3
	LessThanOrEqual    BinaryOpType = 4
	Equal              BinaryOpType = 5
	NotEqual           BinaryOpType = 6
	And                BinaryOpType = 7
	Or                 BinaryOpType = 8
	Add                BinaryOpType = 9
	Subtract           BinaryOpType = 10
	Multiply           BinaryOpType = 11
	Divide             BinaryOpType = 12
)

var binaryOpSymbols = map[string]BinaryOpType{
	">":  GreaterThan,
	"<":  LessThan,
	">=": GreaterThanOrEqual,
	"<=": LessThanOrEqual,
	"==": Equal,
	"!=": NotEqual,
	"&&": And,
	"||": Or,
	"+":  Add,
	"-":  Subtract,
	"*":  Multiply,
	"/":  Divide,
}

// ParseBinaryOp resolves an operator symbol from a BOP operand. The second
// return value is false if the symbol is not a known operator.
func ParseBinaryOp(symbol string) (BinaryOpType, bool) {
	t, ok := binaryOpSymbols[symbol]
	return t, ok
}

// String returns the operator symbol, e.g. "+" for addition.
func (bop BinaryOpType) String() string {
	switch bop {
	case GreaterThan:
		return ">"
	case LessThan:
		return "<"
	case GreaterThanOrEqual:
		return ">="
	case LessThanOrEqual:
		return "<="
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	case And:
		return "&&"
	case Or:
		return "||"
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	default:
		return ""
	}
}
