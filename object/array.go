package object

import (
	"strings"
)

// Array is an ordered sequence of values.
type Array struct {
	items []Object
}

// NewArray returns a new Array holding items.
func NewArray(items []Object) *Array {
	return &Array{items: items}
}

func (a *Array) Type() Type {
	return ARRAY
}

// Value returns the underlying items.
func (a *Array) Value() []Object {
	return a.items
}

// Len returns the number of items.
func (a *Array) Len() int {
	return len(a.items)
}

// Get returns the item at index, or Null when index is out of range.
func (a *Array) Get(index int64) Object {
	if index < 0 || index >= int64(len(a.items)) {
		return Null
	}
	return a.items[index]
}

func (a *Array) Inspect() string {
	items := make([]string, 0, len(a.items))
	for _, item := range a.items {
		items = append(items, item.Inspect())
	}
	return "[" + strings.Join(items, ", ") + "]"
}

func (a *Array) String() string {
	return a.Inspect()
}

func (a *Array) Interface() interface{} {
	items := make([]interface{}, 0, len(a.items))
	for _, item := range a.items {
		items = append(items, item.Interface())
	}
	return items
}

func (a *Array) Equals(other Object) bool {
	o, ok := other.(*Array)
	if !ok || len(o.items) != len(a.items) {
		return false
	}
	for i, item := range a.items {
		if !item.Equals(o.items[i]) {
			return false
		}
	}
	return true
}

func (a *Array) IsTruthy() bool {
	return true
}
