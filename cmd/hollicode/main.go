// Command hollicode runs, disassembles and checks compiled Hollicode
// bytecode scripts.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	version = "dev"

	flagVerbose          bool
	flagIgnoreTextHeader bool
)

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func main() {
	root := &cobra.Command{
		Use:           "hollicode",
		Short:         "Hollicode bytecode interpreter",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"enable verbose logging")
	root.PersistentFlags().BoolVar(&flagIgnoreTextHeader, "ignore-text-header", false,
		"skip the header line of text bytecode")

	root.AddCommand(
		newRunCommand(),
		newDisCommand(),
		newCheckCommand(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		os.Exit(1)
	}
}
