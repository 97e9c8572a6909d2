package vm

import (
	"github.com/rs/zerolog"

	"github.com/Yag000/Interpreter-Monkey/object"
)

// Option is a configuration function for a Virtual Machine.
type Option func(*VirtualMachine)

// WithGlobals makes the VM read and write the given global slots. Pass
// the result of Globals from a previous VM to carry bindings across runs,
// as a REPL does. A slice shorter than GlobalsSize is copied into a full
// size one.
func WithGlobals(globals []object.Object) Option {
	return func(vm *VirtualMachine) {
		if len(globals) >= GlobalsSize {
			vm.globals = globals
			return
		}
		vm.globals = make([]object.Object, GlobalsSize)
		copy(vm.globals, globals)
	}
}

// WithStackSize sets the operand stack capacity. The default is
// DefaultStackSize.
func WithStackSize(size int) Option {
	return func(vm *VirtualMachine) {
		if size > 0 {
			vm.stack = make([]object.Object, size)
		}
	}
}

// WithMaxFrames sets the maximum call depth, including the top level
// frame. The default is DefaultMaxFrames.
func WithMaxFrames(n int) Option {
	return func(vm *VirtualMachine) {
		if n > 0 {
			vm.frames = make([]frame, n)
		}
	}
}

// WithLogger sets the logger used for run level debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(vm *VirtualMachine) {
		vm.log = logger
	}
}

// WithObserver sets an observer for VM execution events.
// The observer receives callbacks for instruction steps, function calls,
// and function returns.
//
// Observer methods are called synchronously during execution, so
// implementations should be fast to avoid impacting performance.
// Returning false from any observer method halts execution immediately.
func WithObserver(observer Observer) Option {
	return func(vm *VirtualMachine) {
		vm.observer = observer
	}
}

// WithContextCheckInterval sets how often, in executed instructions, the
// VM checks whether its context is done. A value of 0 disables the check.
// The default is DefaultContextCheckInterval.
func WithContextCheckInterval(interval int) Option {
	return func(vm *VirtualMachine) {
		vm.contextCheckInterval = interval
	}
}
