package object

import "fmt"

// Int wraps a 64-bit signed integer.
type Int struct {
	value int64
}

// NewInt returns a new Int.
func NewInt(value int64) *Int {
	return &Int{value: value}
}

func (i *Int) Type() Type {
	return INT
}

func (i *Int) Value() int64 {
	return i.value
}

func (i *Int) Inspect() string {
	return fmt.Sprintf("%d", i.value)
}

func (i *Int) String() string {
	return i.Inspect()
}

func (i *Int) Interface() interface{} {
	return i.value
}

func (i *Int) Equals(other Object) bool {
	o, ok := other.(*Int)
	return ok && o.value == i.value
}

func (i *Int) IsTruthy() bool {
	return true
}

func (i *Int) HashKey() HashKey {
	return HashKey{Type: INT, Int: i.value}
}
