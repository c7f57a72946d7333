package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hollicode-lang/hollicode/bytecode"
	"github.com/hollicode-lang/hollicode/dis"
)

func newDisCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dis <file>",
		Short: "Disassemble a compiled Hollicode script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := bytecode.LoadFile(args[0],
				bytecode.WithLogger(newLogger()),
				bytecode.WithIgnoreTextHeader(flagIgnoreTextHeader))
			if err != nil {
				return err
			}
			return dis.Print(program, os.Stdout)
		},
	}
}
