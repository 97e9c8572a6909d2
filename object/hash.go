package object

import (
	"sort"
	"strings"

	"github.com/Yag000/Interpreter-Monkey/errz"
)

// HashPair is a key and its value as stored in a HashMap.
type HashPair struct {
	Key   Object
	Value Object
}

// HashMap maps hashable keys to values. Iteration order is not part of
// its contract; Pairs sorts for stable output.
type HashMap struct {
	items map[HashKey]HashPair
}

// NewHashMap returns an empty HashMap with room for size pairs.
func NewHashMap(size int) *HashMap {
	return &HashMap{items: make(map[HashKey]HashPair, size)}
}

func (h *HashMap) Type() Type {
	return HASH
}

// Len returns the number of pairs.
func (h *HashMap) Len() int {
	return len(h.items)
}

// Set stores value under key, replacing any previous value. Keys that are
// not Hashable are a type error.
func (h *HashMap) Set(key, value Object) error {
	hashable, ok := key.(Hashable)
	if !ok {
		return errz.TypeErrorf("unusable as hash key: %s", key.Type())
	}
	h.items[hashable.HashKey()] = HashPair{Key: key, Value: value}
	return nil
}

// Get returns the value stored under key, or Null when it is missing.
func (h *HashMap) Get(key Object) (Object, error) {
	hashable, ok := key.(Hashable)
	if !ok {
		return nil, errz.TypeErrorf("unusable as hash key: %s", key.Type())
	}
	pair, ok := h.items[hashable.HashKey()]
	if !ok {
		return Null, nil
	}
	return pair.Value, nil
}

// Pairs returns the stored pairs ordered by the inspected form of their keys.
func (h *HashMap) Pairs() []HashPair {
	pairs := make([]HashPair, 0, len(h.items))
	for _, pair := range h.items {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Key.Inspect() < pairs[j].Key.Inspect()
	})
	return pairs
}

func (h *HashMap) Inspect() string {
	pairs := h.Pairs()
	items := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		items = append(items, pair.Key.Inspect()+": "+pair.Value.Inspect())
	}
	return "{" + strings.Join(items, ", ") + "}"
}

func (h *HashMap) String() string {
	return h.Inspect()
}

func (h *HashMap) Interface() interface{} {
	out := make(map[interface{}]interface{}, len(h.items))
	for _, pair := range h.items {
		out[pair.Key.Interface()] = pair.Value.Interface()
	}
	return out
}

func (h *HashMap) Equals(other Object) bool {
	o, ok := other.(*HashMap)
	if !ok || len(o.items) != len(h.items) {
		return false
	}
	for key, pair := range h.items {
		otherPair, ok := o.items[key]
		if !ok || !pair.Value.Equals(otherPair.Value) {
			return false
		}
	}
	return true
}

func (h *HashMap) IsTruthy() bool {
	return true
}
