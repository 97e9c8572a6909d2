package object

import "fmt"

// Bool is a boolean value. Only the True and False singletons exist.
type Bool struct {
	value bool
}

func (b *Bool) Type() Type {
	return BOOL
}

func (b *Bool) Value() bool {
	return b.value
}

func (b *Bool) Inspect() string {
	return fmt.Sprintf("%t", b.value)
}

func (b *Bool) String() string {
	return b.Inspect()
}

func (b *Bool) Interface() interface{} {
	return b.value
}

func (b *Bool) Equals(other Object) bool {
	o, ok := other.(*Bool)
	return ok && o.value == b.value
}

func (b *Bool) IsTruthy() bool {
	return b.value
}

func (b *Bool) HashKey() HashKey {
	var v int64
	if b.value {
		v = 1
	}
	return HashKey{Type: BOOL, Int: v}
}
