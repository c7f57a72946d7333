package main

import (
	"context"
	"fmt"

	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"
	"github.com/spf13/cobra"

	"github.com/hollicode-lang/hollicode"
	"github.com/hollicode-lang/hollicode/object"
	"github.com/hollicode-lang/hollicode/vm"
)

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Play a compiled Hollicode script in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return playScript(cmd.Context(), args[0])
		},
	}
}

// playScript wires the VM callbacks to a minimal terminal front-end:
// echoes print as story text, options accumulate into a numbered menu,
// and WAIT suspends for a keypress.
func playScript(ctx context.Context, path string) error {
	logger := newLogger()

	machine, err := hollicode.LoadFile(path,
		hollicode.WithLogger(logger),
		hollicode.WithIgnoreTextHeader(flagIgnoreTextHeader),
		hollicode.WithCallbacks(vm.Callbacks{
			Echo: func(ctx context.Context, m *vm.VirtualMachine, value object.Object) error {
				fmt.Println(echoText(value))
				return nil
			},
		}),
	)
	if err != nil {
		return err
	}

	for {
		prevIP := machine.IP()
		if err := machine.Run(ctx); err != nil {
			return err
		}

		if choices := machine.Choices(); len(choices) > 0 {
			fmt.Println()
			for i, choice := range choices {
				fmt.Printf("  %s %s\n", cyan(fmt.Sprintf("%d.", i+1)), choiceLabel(choice))
			}
			fmt.Println(faint("  (press a number to choose, esc to quit)"))
			selected, err := readChoice(len(choices))
			if err != nil {
				return err
			}
			if selected == 0 {
				return nil
			}
			fmt.Println()
			if err := machine.GoToOption(selected); err != nil {
				return err
			}
			continue
		}

		if machine.Finished() {
			fmt.Println(faint("\n~ end ~"))
			return nil
		}

		if machine.IP() == prevIP {
			// Yielded without advancing and with nothing to choose: the
			// script has ended on a RET.
			fmt.Println(faint("\n~ end ~"))
			return nil
		}

		// A plain WAIT: pause until the player presses a key.
		cont, err := pressAnyKey()
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
}

func echoText(value object.Object) string {
	if s, ok := value.(*object.String); ok {
		return s.Value()
	}
	return value.Inspect()
}

// choiceLabel renders the first option argument as the menu label.
func choiceLabel(choice vm.Choice) string {
	if len(choice.Args) == 0 {
		return bold("...")
	}
	return bold(echoText(choice.Args[0]))
}

// readChoice blocks until the player presses a digit in [1, count].
// Returns 0 if the player quit with esc or ctrl-c.
func readChoice(count int) (int, error) {
	selected := 0
	err := keyboard.Listen(func(key keys.Key) (bool, error) {
		switch key.Code {
		case keys.CtrlC, keys.Escape:
			return true, nil
		case keys.RuneKey:
			if len(key.Runes) == 1 {
				r := key.Runes[0]
				if r >= '1' && r <= '9' && int(r-'0') <= count {
					selected = int(r - '0')
					return true, nil
				}
			}
		}
		return false, nil
	})
	return selected, err
}

// pressAnyKey blocks until any key is pressed. Returns false if the player
// quit with esc or ctrl-c.
func pressAnyKey() (bool, error) {
	cont := true
	err := keyboard.Listen(func(key keys.Key) (bool, error) {
		if key.Code == keys.CtrlC || key.Code == keys.Escape {
			cont = false
		}
		return true, nil
	})
	return cont, err
}
