package hollicode

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hollicode-lang/hollicode/bytecode"
	"github.com/hollicode-lang/hollicode/object"
	"github.com/hollicode-lang/hollicode/vm"
)

const header = `{"bytecodeVersion": "0.1.0"}`

func writeScript(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	data := header + "\n" + strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoadFileAndRun(t *testing.T) {
	path := writeScript(t, "story.hlct",
		"STR hello",
		"ECHO",
		"WAIT",
		"STR goodbye",
		"ECHO",
	)

	var echoed []string
	machine, err := LoadFile(path, WithCallbacks(vm.Callbacks{
		Echo: func(ctx context.Context, m *vm.VirtualMachine, value object.Object) error {
			echoed = append(echoed, value.Interface().(string))
			return nil
		},
	}))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, machine.Run(ctx))
	require.Equal(t, []string{"hello"}, echoed)
	require.False(t, machine.Finished())

	require.NoError(t, machine.Run(ctx))
	require.Equal(t, []string{"hello", "goodbye"}, echoed)
	require.True(t, machine.Finished())
}

func TestLoadFileUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "story.txt")
	require.NoError(t, os.WriteFile(path, []byte(header+"\nWAIT\n"), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot infer bytecode format")
}

func TestLoadFileForcedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "story.txt")
	require.NoError(t, os.WriteFile(path, []byte(header+"\nWAIT\n"), 0o644))

	machine, err := LoadFile(path, WithFormat(bytecode.FormatText))
	require.NoError(t, err)
	require.Equal(t, 1, machine.Program().Len())
}

func TestLoadStructured(t *testing.T) {
	data := []byte(`{
		"header": {"bytecodeVersion": "0.1.0"},
		"instructions": [["STR", "hi"], "ECHO"]
	}`)

	var echoed []string
	machine, err := Load(data, bytecode.FormatStructured, WithCallbacks(vm.Callbacks{
		Echo: func(ctx context.Context, m *vm.VirtualMachine, value object.Object) error {
			echoed = append(echoed, value.Interface().(string))
			return nil
		},
	}))
	require.NoError(t, err)
	require.NoError(t, machine.Run(context.Background()))
	require.Equal(t, []string{"hi"}, echoed)
	require.True(t, machine.Finished())
}

func TestVariablesAndFunctions(t *testing.T) {
	path := writeScript(t, "story.hlct",
		"NUM 1",
		"STR world",
		"GETV greet",
		"CALL 2",
		"GETV score",
		"ECHO",
	)

	var calls []string
	var echoed []object.Object
	machine, err := LoadFile(path,
		WithVariables(map[string]object.Object{
			"score": object.NewFloat(42),
		}),
		WithFunctions(map[string]*object.Builtin{
			"greet": object.NewBuiltin("greet", func(ctx context.Context, args ...object.Object) (object.Object, error) {
				calls = append(calls, args[0].Interface().(string))
				return object.Nil, nil
			}),
		}),
		WithCallbacks(vm.Callbacks{
			Echo: func(ctx context.Context, m *vm.VirtualMachine, value object.Object) error {
				echoed = append(echoed, value)
				return nil
			},
		}))
	require.NoError(t, err)

	require.NoError(t, machine.Run(context.Background()))
	require.True(t, machine.Finished())
	require.Equal(t, []string{"world"}, calls)
	require.Equal(t, []object.Object{object.NewFloat(42)}, echoed)
}

func TestNewFromProgram(t *testing.T) {
	program, err := bytecode.Load([]byte(header+"\nWAIT\n"), bytecode.FormatText)
	require.NoError(t, err)

	machine := New(program)
	require.NoError(t, machine.Run(context.Background()))
	require.True(t, machine.Finished())
}
