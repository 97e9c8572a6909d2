package vm

import (
	"github.com/Yag000/Interpreter-Monkey/object"
	"github.com/Yag000/Interpreter-Monkey/op"
)

// frame is one active invocation: the instruction stream being run, the
// offset of the next instruction and the stack height at entry.
type frame struct {
	fn           *object.Function // nil for the top level program
	instructions op.Instructions
	ip           int
	basePointer  int
}

func (f *frame) name() string {
	if f.fn == nil {
		return "main"
	}
	return f.fn.Name()
}

func (f *frame) done() bool {
	return f.ip >= len(f.instructions)
}
