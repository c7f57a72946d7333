package op

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo(JumpIfFalse)
	require.Equal(t, "FJMP", info.Name)
	require.Equal(t, OperandJump, info.Operand)
	require.Equal(t, JumpIfFalse, info.Code)
}

func TestGetInfoAllOpcodes(t *testing.T) {
	tests := []struct {
		code    Code
		name    string
		operand OperandKind
	}{
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
	for _, tt := range tests {
		info := GetInfo(tt.code)
		require.Equal(t, tt.name, info.Name)
		require.Equal(t, tt.operand, info.Operand)
		require.Equal(t, tt.code, info.Code)
	}
}

func TestLookupName(t *testing.T) {
	code, ok := LookupName("FJMP")
	require.True(t, ok)
	require.Equal(t, JumpIfFalse, code)

	_, ok = LookupName("NOPE")
	require.False(t, ok)

	// Mnemonics are case sensitive.
	_, ok = LookupName("fjmp")
	require.False(t, ok)
}

func TestCodeString(t *testing.T) {
	require.Equal(t, "WAIT", Wait.String())
	require.Equal(t, "", Invalid.String())
	require.Equal(t, "", Code(999).String())
}

func TestParseBinaryOp(t *testing.T) {
	symbols := []string{">", "<", ">=", "<=", "==", "!=", "&&", "||", "+", "-", "*", "/"}
	for _, symbol := range symbols {
		parsed, ok := ParseBinaryOp(symbol)
		require.True(t, ok, symbol)
		require.Equal(t, symbol, parsed.String())
	}
	_, ok := ParseBinaryOp("%")
	require.False(t, ok)
	require.Equal(t, "", InvalidBinaryOp.String())
}
