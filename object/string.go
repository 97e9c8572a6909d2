package object

import "strconv"

// String wraps an immutable Go string.
type String struct {
	value string
}

// NewString returns a new String.
func NewString(s string) *String {
	return &String{value: s}
}

func (s *String) Type() Type {
	return STRING
}

func (s *String) Value() string {
	return s.value
}

func (s *String) Inspect() string {
	return strconv.Quote(s.value)
}

func (s *String) String() string {
	return s.value
}

func (s *String) Interface() interface{} {
	return s.value
}

func (s *String) Equals(other Object) bool {
	o, ok := other.(*String)
	return ok && o.value == s.value
}

func (s *String) IsTruthy() bool {
	return true
}

func (s *String) HashKey() HashKey {
	return HashKey{Type: STRING, Str: s.value}
}
