package compiler

import "sort"

// Symbol is a name bound to a global slot.
type Symbol struct {
	Name  string
	Index int
}

// SymbolTable maps names to global slots. There is a single table per
// compilation unit: function bodies resolve against it too, so there are
// no locals and no closures.
type SymbolTable struct {
	store          map[string]Symbol
	numDefinitions int
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{store: map[string]Symbol{}}
}

// Define binds name to the next free slot. Redefining a name shadows the
// earlier binding; its slot is never reused.
func (t *SymbolTable) Define(name string) Symbol {
	symbol := Symbol{Name: name, Index: t.numDefinitions}
	t.store[name] = symbol
	t.numDefinitions++
	return symbol
}

// Resolve returns the symbol currently bound to name.
func (t *SymbolTable) Resolve(name string) (Symbol, bool) {
	symbol, ok := t.store[name]
	return symbol, ok
}

// Count returns the number of slots allocated so far.
func (t *SymbolTable) Count() int {
	return t.numDefinitions
}

// Names returns the currently bound names in sorted order.
func (t *SymbolTable) Names() []string {
	names := make([]string, 0, len(t.store))
	for name := range t.store {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
