// Package object provides the runtime values of the virtual machine.
//
// Callers usually type switch on an object.Object to reach a concrete
// value:
//
//	switch obj := obj.(type) {
//	case *object.Int:
//		// do something with obj.Value()
//	case *object.String:
//		// do something with obj.Value()
//	}
package object

// Type of an object as a string.
type Type string

// Type constants
const (
	ARRAY    Type = "array"
	BOOL     Type = "bool"
	FUNCTION Type = "function"
	HASH     Type = "hash"
	INT      Type = "int"
	NULL     Type = "null"
	STRING   Type = "string"
)

var (
	Null  = &NullType{}
	True  = &Bool{value: true}
	False = &Bool{value: false}
)

// Object is the interface that all runtime values implement.
type Object interface {
	// Type of the object.
	Type() Type

	// Inspect returns a string representation of the given object.
	Inspect() string

	// Interface converts the given object to a native Go value.
	Interface() interface{}

	// Returns true if the given object is equal to this object.
	Equals(other Object) bool

	// IsTruthy returns true if the object is considered "truthy". Every
	// value except false and null is truthy.
	IsTruthy() bool
}

// Hashable is implemented by values that may be used as hash map keys.
type Hashable interface {
	HashKey() HashKey
}

// HashKey identifies a hash map key by type and value.
type HashKey struct {
	Type Type
	Int  int64
	Str  string
}

// NewBool returns the singleton Bool for value.
func NewBool(value bool) *Bool {
	if value {
		return True
	}
	return False
}

// FromGoType converts a Go value to an Object. Unsupported values yield
// nil.
func FromGoType(v interface{}) Object {
	switch v := v.(type) {
	case nil:
		return Null
	case bool:
		return NewBool(v)
	case int:
		return NewInt(int64(v))
	case int64:
		return NewInt(v)
	case string:
		return NewString(v)
	case []interface{}:
		items := make([]Object, 0, len(v))
		for _, item := range v {
			obj := FromGoType(item)
			if obj == nil {
				return nil
			}
			items = append(items, obj)
		}
		return NewArray(items)
	}
	return nil
}
