package object

import (
	"fmt"

	"github.com/Yag000/Interpreter-Monkey/op"
)

// Function is a compiled function: a finished instruction stream that the
// VM runs in its own frame.
type Function struct {
	name         string
	instructions op.Instructions
}

// NewFunction returns a compiled function. The name may be empty.
func NewFunction(name string, instructions op.Instructions) *Function {
	return &Function{name: name, instructions: instructions}
}

func (f *Function) Type() Type {
	return FUNCTION
}

// Name returns the name the function was bound to, if any.
func (f *Function) Name() string {
	return f.name
}

// Instructions returns the function body.
func (f *Function) Instructions() op.Instructions {
	return f.instructions
}

func (f *Function) Inspect() string {
	if f.name == "" {
		return fmt.Sprintf("function(%p)", f)
	}
	return fmt.Sprintf("function %s", f.name)
}

func (f *Function) String() string {
	return f.Inspect()
}

func (f *Function) Interface() interface{} {
	return f
}

func (f *Function) Equals(other Object) bool {
	return f == other
}

func (f *Function) IsTruthy() bool {
	return true
}
