package monkey

import (
	"context"
	"sync"

	"github.com/Yag000/Interpreter-Monkey/ast"
	"github.com/Yag000/Interpreter-Monkey/compiler"
	"github.com/Yag000/Interpreter-Monkey/object"
	"github.com/Yag000/Interpreter-Monkey/vm"
)

// Session evaluates a sequence of programs that share global bindings,
// the way a REPL feeds one input at a time. A program that fails to
// compile or run does not undo bindings made by earlier programs.
//
// A Session is safe for concurrent use; evaluations are serialized.
type Session struct {
	mu        sync.Mutex
	opts      []Option
	symbols   *compiler.SymbolTable
	constants []object.Object
	globals   []object.Object
}

// NewSession returns an empty session. The options apply to every
// evaluation.
func NewSession(opts ...Option) *Session {
	return &Session{
		opts:    opts,
		symbols: compiler.NewSymbolTable(),
		globals: make([]object.Object, vm.GlobalsSize),
	}
}

// Eval compiles program against the bindings made so far and runs it.
// It returns the value of the last expression statement.
func (s *Session) Eval(ctx context.Context, program *ast.Program) (object.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := collectOptions(s.opts...)
	cfg := o.compilerConfig()
	cfg.SymbolTable = s.symbols
	cfg.Constants = s.constants
	c := compiler.New(cfg)
	err := c.Compile(program)
	// Constants and symbols defined before a compile error are kept so
	// later inputs see the same slot numbering.
	s.constants = c.Constants()
	if err != nil {
		return nil, err
	}
	opts := append(o.vmOptions(), vm.WithGlobals(s.globals))
	return vm.Run(ctx, c.Bytecode(), opts...)
}

// Names returns the names bound so far, sorted.
func (s *Session) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.symbols.Names()
}

// Get returns the current value bound to name.
func (s *Session) Get(name string) (object.Object, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	symbol, ok := s.symbols.Resolve(name)
	if !ok || s.globals[symbol.Index] == nil {
		return nil, false
	}
	return s.globals[symbol.Index], true
}
