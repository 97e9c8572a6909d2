package bytecode

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/Yag000/Interpreter-Monkey/object"
	"github.com/Yag000/Interpreter-Monkey/op"
)

// Bytecode is a compiled program.
type Bytecode struct {
	Instructions op.Instructions
	Constants    []object.Object
}

// ConstantAt returns the constant at index i, or nil when out of range.
func (b *Bytecode) ConstantAt(i int) object.Object {
	if i < 0 || i >= len(b.Constants) {
		return nil
	}
	return b.Constants[i]
}

// Validate checks that every instruction stream in b decodes cleanly and
// that its operands refer to existing constants and in-range jump
// targets. Function constants are checked as well. All problems found
// are returned together.
func Validate(b *Bytecode) error {
	var result *multierror.Error
	result = multierror.Append(result, validateStream("main", b.Instructions, len(b.Constants))...)
	for i, c := range b.Constants {
		switch c := c.(type) {
		case *object.Int, *object.String:
		case *object.Function:
			name := fmt.Sprintf("constant %d", i)
			if c.Name() != "" {
				name = fmt.Sprintf("function %s (constant %d)", c.Name(), i)
			}
			result = multierror.Append(result, validateStream(name, c.Instructions(), len(b.Constants))...)
		case nil:
			result = multierror.Append(result, fmt.Errorf("constant %d: nil value", i))
		default:
			result = multierror.Append(result, fmt.Errorf("constant %d: unexpected type %s", i, c.Type()))
		}
	}
	return result.ErrorOrNil()
}

func validateStream(name string, ins op.Instructions, numConstants int) []error {
	var errs []error
	fail := func(pos int, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%s: %04d: %s", name, pos, fmt.Sprintf(format, args...)))
	}
	for pos := 0; pos < len(ins); {
		info, operands, err := ins.ReadAt(pos)
		if errors.Is(err, op.ErrTruncated) {
			fail(pos, "truncated %s", info.Name)
			break
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			pos++
			continue
		}
		switch info.Code {
		case op.LoadConst:
			if operands[0] >= numConstants {
				fail(pos, "constant index %d out of range (%d constants)", operands[0], numConstants)
			}
		case op.Jump, op.JumpIfNotTruthy:
			if operands[0] > len(ins) {
				fail(pos, "jump target %d past end of stream (%d bytes)", operands[0], len(ins))
			}
		case op.BuildHash:
			if operands[0]%2 != 0 {
				fail(pos, "odd element count %d for %s", operands[0], info.Name)
			}
		}
		pos += info.Width()
	}
	return errs
}
