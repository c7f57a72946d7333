package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hollicode-lang/hollicode/bytecode"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Load and statically validate a compiled Hollicode script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := bytecode.LoadFile(args[0],
				bytecode.WithLogger(newLogger()),
				bytecode.WithIgnoreTextHeader(flagIgnoreTextHeader))
			if err != nil {
				return err
			}
			if err := program.Validate(); err != nil {
				return err
			}
			fmt.Printf("%s %s (%d instructions)\n", green("ok"), args[0], program.Len())
			return nil
		},
	}
}
