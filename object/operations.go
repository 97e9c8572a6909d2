package object

import (
	"github.com/Yag000/Interpreter-Monkey/errz"
	"github.com/Yag000/Interpreter-Monkey/op"
)

// BinaryOp performs an arithmetic or logical operation on two objects.
// Both operands have already been evaluated; nothing short-circuits here.
func BinaryOp(code op.Code, a, b Object) (Object, error) {
	switch code {
	case op.And, op.Or:
		return logicalOp(code, a, b)
	case op.Add:
		if as, ok := a.(*String); ok {
			if bs, ok := b.(*String); ok {
				return NewString(as.value + bs.value), nil
			}
		}
	}
	ai, aok := a.(*Int)
	bi, bok := b.(*Int)
	if !aok || !bok {
		return nil, errz.TypeErrorf("unsupported operand types for %s: %s and %s",
			symbol(code), a.Type(), b.Type())
	}
	switch code {
	case op.Add:
		return NewInt(ai.value + bi.value), nil
	case op.Sub:
		return NewInt(ai.value - bi.value), nil
	case op.Mul:
		return NewInt(ai.value * bi.value), nil
	case op.Div:
		if bi.value == 0 {
			return nil, errz.ValueErrorf("division by zero")
		}
		return NewInt(ai.value / bi.value), nil
	}
	return nil, errz.Errorf(errz.ErrRuntime, "unknown binary operation: %s", code)
}

func logicalOp(code op.Code, a, b Object) (Object, error) {
	ab, aok := a.(*Bool)
	bb, bok := b.(*Bool)
	if !aok || !bok {
		return nil, errz.TypeErrorf("unsupported operand types for %s: %s and %s",
			symbol(code), a.Type(), b.Type())
	}
	if code == op.And {
		return NewBool(ab.value && bb.value), nil
	}
	return NewBool(ab.value || bb.value), nil
}

// Compare two objects using the given comparison opcode. Equality is
// defined for every pair of values; ordering only for two Ints or two
// Strings.
func Compare(code op.Code, a, b Object) (Object, error) {
	switch code {
	case op.Equal:
		return NewBool(a.Equals(b)), nil
	case op.NotEqual:
		return NewBool(!a.Equals(b)), nil
	case op.GreaterThan, op.GreaterOrEqual:
	default:
		return nil, errz.Errorf(errz.ErrRuntime, "unknown comparison operation: %s", code)
	}
	var cmp int
	switch a := a.(type) {
	case *Int:
		bi, ok := b.(*Int)
		if !ok {
			return nil, compareTypeError(code, a, b)
		}
		cmp = compareOrdered(a.value, bi.value)
	case *String:
		bs, ok := b.(*String)
		if !ok {
			return nil, compareTypeError(code, a, b)
		}
		cmp = compareOrdered(a.value, bs.value)
	default:
		return nil, compareTypeError(code, a, b)
	}
	if code == op.GreaterThan {
		return NewBool(cmp > 0), nil
	}
	return NewBool(cmp >= 0), nil
}

func compareOrdered[T int64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareTypeError(code op.Code, a, b Object) error {
	return errz.TypeErrorf("unsupported operand types for %s: %s and %s",
		symbol(code), a.Type(), b.Type())
}

// Not returns the boolean negation of obj. It accepts Bool and Null.
func Not(obj Object) (Object, error) {
	switch obj := obj.(type) {
	case *Bool:
		return NewBool(!obj.value), nil
	case *NullType:
		return True, nil
	}
	return nil, errz.TypeErrorf("unsupported operand type for !: %s", obj.Type())
}

// Negate returns the arithmetic negation of an Int.
func Negate(obj Object) (Object, error) {
	if i, ok := obj.(*Int); ok {
		return NewInt(-i.value), nil
	}
	return nil, errz.TypeErrorf("unsupported operand type for unary -: %s", obj.Type())
}

// GetIndex implements collection[index]. Out of range array indexes and
// missing hash keys yield Null.
func GetIndex(collection, index Object) (Object, error) {
	switch c := collection.(type) {
	case *Array:
		i, ok := index.(*Int)
		if !ok {
			return nil, errz.TypeErrorf("array index must be an int (got %s)", index.Type())
		}
		return c.Get(i.value), nil
	case *HashMap:
		return c.Get(index)
	}
	return nil, errz.TypeErrorf("index operator not supported: %s", collection.Type())
}

func symbol(code op.Code) string {
	switch code {
	case op.Add:
		return "+"
	case op.Sub:
		return "-"
	case op.Mul:
		return "*"
	case op.Div:
		return "/"
	case op.And:
		return "&&"
	case op.Or:
		return "||"
	case op.GreaterThan:
		return ">"
	case op.GreaterOrEqual:
		return ">="
	}
	return code.String()
}
