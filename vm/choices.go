package vm

import (
	"github.com/hollicode-lang/hollicode/errz"
	"github.com/hollicode-lang/hollicode/object"
)

// Choice is one pending entry in the option registry: the instruction
// pointer of the OPT that recorded it and the arguments it popped.
type Choice struct {
	IP   int
	Args []object.Object
}

// Choices returns the pending option registry in emission order. The 1-based
// position of an entry in this slice is the index to pass to GoToOption.
func (vm *VirtualMachine) Choices() []Choice {
	return append([]Choice(nil), vm.choices...)
}

// GoToOption moves the instruction pointer to the body of the k-th pending
// option (1-based, in emission order) and clears the registry. The current
// instruction pointer is saved on the traceback so a RET at the end of the
// option body resumes where execution was suspended.
//
// The target is two instructions past the recorded OPT, skipping the single
// guard JMP the compiler emits after every OPT.
//
// The host calls Run afterwards to resume execution.
func (vm *VirtualMachine) GoToOption(k int) error {
	if vm.running {
		return errz.ExecErrorf("cannot select an option while the vm is running")
	}
	if k < 1 || k > len(vm.choices) {
		return errz.ExecErrorf("option index %d out of range (have %d)", k, len(vm.choices)).
			At(vm.ip, vm.opcodeName())
	}
	choice := vm.choices[k-1]
	vm.traceback = append(vm.traceback, vm.ip)
	vm.ip = choice.IP + 2
	vm.choices = nil
	return nil
}
