package vm

import (
	"context"

	"github.com/Yag000/Interpreter-Monkey/bytecode"
	"github.com/Yag000/Interpreter-Monkey/object"
)

// Run the given bytecode in a new Virtual Machine and return the result.
// The result is the last value popped from the stack, or null when the
// program produced none.
func Run(ctx context.Context, bc *bytecode.Bytecode, options ...Option) (object.Object, error) {
	machine := New(bc, options...)
	if err := machine.Run(ctx); err != nil {
		return nil, err
	}
	if result := machine.LastPopped(); result != nil {
		return result, nil
	}
	return object.Null, nil
}
