package dis

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hollicode-lang/hollicode/bytecode"
)

func load(t *testing.T, lines ...string) *bytecode.Program {
	t.Helper()
	src := `{"bytecodeVersion": "0.1.0"}` + "\n" + strings.Join(lines, "\n") + "\n"
	program, err := bytecode.Load([]byte(src), bytecode.FormatText)
	require.NoError(t, err)
	return program
}

func TestDisassemble(t *testing.T) {
	program := load(t,
		"STR pick",
		"OPT 1",
		"JMP 3",
		"ECHO",
		"RET",
		"WAIT",
	)
	lines := Disassemble(program)
	require.Equal(t, []string{
		"   0  STR   pick",
		"   1  OPT   1",
		"   2  JMP   3            -> 5",
		"   3  ECHO",
		"   4  RET",
		"   5  WAIT",
	}, lines)
}

func TestDisassembleEscapesOperand(t *testing.T) {
	program := load(t, `STR one\ntwo`)
	lines := Disassemble(program)
	require.Equal(t, []string{`   0  STR   one\ntwo`}, lines)
}

func TestPrintBanner(t *testing.T) {
	program := load(t, "WAIT")
	var buf bytes.Buffer
	require.NoError(t, Print(program, &buf))
	out := buf.String()
	require.Contains(t, out, program.ID())
	require.Contains(t, out, "bytecode version 0.1.0")
	require.Contains(t, out, "WAIT")
}

func TestDisassembleRoundTripsThroughTextLoader(t *testing.T) {
	program := load(t,
		"NUM 2",
		"NUM 3",
		"BOP -",
		"ECHO",
		"GETV player",
		"FJMP -3",
	)
	reloaded, err := bytecode.Load(
		[]byte(`{"bytecodeVersion": "0.1.0"}`+"\n"+reassemble(program)),
		bytecode.FormatText)
	require.NoError(t, err)
	require.Equal(t, program.Instructions(), reloaded.Instructions())
}

// reassemble strips offsets and annotations from a disassembly, recovering
// text bytecode instruction lines.
func reassemble(p *bytecode.Program) string {
	var b strings.Builder
	for _, line := range Disassemble(p) {
		trimmed := strings.TrimSpace(line[5:])
		if idx := strings.Index(trimmed, "->"); idx >= 0 {
			trimmed = strings.TrimSpace(trimmed[:idx])
		}
		fields := strings.SplitN(trimmed, " ", 2)
		b.WriteString(fields[0])
		if len(fields) == 2 {
			b.WriteString(" ")
			b.WriteString(strings.TrimLeft(fields[1], " "))
		}
		b.WriteString("\n")
	}
	return b.String()
}
