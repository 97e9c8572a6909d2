// Package compiler turns a parsed program into bytecode for the virtual
// machine.
package compiler

import (
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Yag000/Interpreter-Monkey/ast"
	"github.com/Yag000/Interpreter-Monkey/bytecode"
	"github.com/Yag000/Interpreter-Monkey/errors"
	"github.com/Yag000/Interpreter-Monkey/object"
	"github.com/Yag000/Interpreter-Monkey/op"
	"github.com/Yag000/Interpreter-Monkey/token"
)

const (
	// MaxOperand is the largest value a two byte operand can hold.
	MaxOperand = math.MaxUint16

	// Placeholder is a temporary jump target that is patched once the
	// real target is known.
	Placeholder = MaxOperand
)

// Compiler is used to compile Monkey programs into bytecode. A Compiler
// is not safe for concurrent use.
type Compiler struct {
	// Constant pool shared by every scope. Append only.
	constants []object.Object

	// Single global namespace, also used inside function bodies.
	symbols *SymbolTable

	// Scope stack. scopes[0] is the top level program and the last
	// element receives emitted instructions.
	scopes []*scope

	// Source filename
	filename string

	// Original source split into lines (for better error messages)
	lines []string

	log zerolog.Logger
}

// Config holds the optional settings of a Compiler.
type Config struct {
	// SymbolTable and Constants carry state over from a previous
	// compilation, as a REPL does between inputs. Both may be nil.
	SymbolTable *SymbolTable
	Constants   []object.Object

	// Filename is the source filename, used for error messages.
	Filename string

	// Source is the original source code, used for better error messages.
	Source string

	// Logger receives debug output. Nothing is logged when nil.
	Logger *zerolog.Logger
}

// Compile compiles the given program and returns its bytecode. Pass nil
// for cfg to use default settings.
func Compile(program *ast.Program, cfg *Config) (*bytecode.Bytecode, error) {
	c := New(cfg)
	if err := c.Compile(program); err != nil {
		return nil, err
	}
	return c.Bytecode(), nil
}

// New creates a new Compiler with one top level scope.
func New(cfg *Config) *Compiler {
	c := &Compiler{
		scopes: []*scope{{name: "main"}},
		log:    zerolog.Nop(),
	}
	if cfg != nil {
		c.symbols = cfg.SymbolTable
		c.constants = cfg.Constants
		c.filename = cfg.Filename
		if cfg.Source != "" {
			c.lines = strings.Split(cfg.Source, "\n")
		}
		if cfg.Logger != nil {
			c.log = *cfg.Logger
		}
	}
	if c.symbols == nil {
		c.symbols = NewSymbolTable()
	}
	return c
}

// NewWithState creates a Compiler that continues from the symbol table
// and constant pool of an earlier compilation.
func NewWithState(symbols *SymbolTable, constants []object.Object) *Compiler {
	return New(&Config{SymbolTable: symbols, Constants: constants})
}

// SymbolTable returns the global symbol table.
func (c *Compiler) SymbolTable() *SymbolTable {
	return c.symbols
}

// Constants returns the constant pool.
func (c *Compiler) Constants() []object.Object {
	return c.constants
}

// Bytecode returns a copy of the top level instructions and the constant
// pool.
func (c *Compiler) Bytecode() *bytecode.Bytecode {
	main := c.scopes[0]
	ins := make(op.Instructions, len(main.instructions))
	copy(ins, main.instructions)
	constants := make([]object.Object, len(c.constants))
	copy(constants, c.constants)
	return &bytecode.Bytecode{Instructions: ins, Constants: constants}
}

// Compile appends the program to the top level instruction stream. On
// error the stream is rolled back to its state before the call, so a
// failed input never leaves partial code behind.
func (c *Compiler) Compile(program *ast.Program) (err error) {
	main := c.scopes[0]
	saved := *main
	defer func() {
		if err != nil {
			main.instructions = saved.instructions
			main.last, main.previous = saved.last, saved.previous
			c.scopes = c.scopes[:1]
		}
	}()
	for _, stmt := range program.Stmts {
		if err := c.compile(stmt); err != nil {
			return err
		}
	}
	c.log.Debug().
		Int("instructions", len(main.instructions)).
		Int("constants", len(c.constants)).
		Int("globals", c.symbols.Count()).
		Msg("compiled program")
	return nil
}

func (c *Compiler) compile(node ast.Node) error {
	switch node := node.(type) {
	case *ast.ExprStmt:
		if err := c.compile(node.X); err != nil {
			return err
		}
		c.emit(op.PopTop)
	case *ast.Let:
		return c.compileLet(node)
	case *ast.Return:
		if err := c.compile(node.Value); err != nil {
			return err
		}
		c.emit(op.ReturnValue)
	case *ast.Block:
		for _, stmt := range node.Stmts {
			if err := c.compile(stmt); err != nil {
				return err
			}
		}
	case *ast.Int:
		return c.emitConstant(node, object.NewInt(node.Value))
	case *ast.String:
		return c.emitConstant(node, object.NewString(node.Value))
	case *ast.Bool:
		if node.Value {
			c.emit(op.True)
		} else {
			c.emit(op.False)
		}
	case *ast.Ident:
		return c.compileIdent(node)
	case *ast.Prefix:
		return c.compilePrefix(node)
	case *ast.Infix:
		return c.compileInfix(node)
	case *ast.If:
		return c.compileIf(node)
	case *ast.Array:
		return c.compileArray(node)
	case *ast.HashMap:
		return c.compileHashMap(node)
	case *ast.Index:
		return c.compileIndex(node)
	case *ast.Func:
		return c.compileFunc(node, "")
	case *ast.Call:
		return c.compileCall(node)
	case nil:
		return c.errorf(errors.E2014, nil, "missing syntax node")
	default:
		return c.errorf(errors.E2014, node, "unsupported syntax node: %T", node)
	}
	return nil
}

func (c *Compiler) compileLet(node *ast.Let) error {
	var err error
	if fn, ok := node.Value.(*ast.Func); ok {
		err = c.compileFunc(fn, node.Name.Name)
	} else {
		err = c.compile(node.Value)
	}
	if err != nil {
		return err
	}
	symbol := c.symbols.Define(node.Name.Name)
	if symbol.Index > MaxOperand {
		return c.errorf(errors.E2007, node, "too many globals (max %d)", MaxOperand+1)
	}
	c.emit(op.StoreGlobal, symbol.Index)
	return nil
}

func (c *Compiler) compileIdent(node *ast.Ident) error {
	symbol, ok := c.symbols.Resolve(node.Name)
	if !ok {
		return c.undefinedVariableError(node)
	}
	c.emit(op.LoadGlobal, symbol.Index)
	return nil
}

func (c *Compiler) compilePrefix(node *ast.Prefix) error {
	if err := c.compile(node.X); err != nil {
		return err
	}
	switch node.Op {
	case token.BANG:
		c.emit(op.Not)
	case token.MINUS:
		c.emit(op.Negate)
	default:
		return c.errorf(errors.E2011, node, "unknown operator: %s", node.Op)
	}
	return nil
}

var infixOps = map[string]op.Code{
	token.PLUS:     op.Add,
	token.MINUS:    op.Sub,
	token.ASTERISK: op.Mul,
	token.SLASH:    op.Div,
	token.GT:       op.GreaterThan,
	token.GT_EQ:    op.GreaterOrEqual,
	token.EQ:       op.Equal,
	token.NOT_EQ:   op.NotEqual,
	token.AND:      op.And,
	token.OR:       op.Or,
}

func (c *Compiler) compileInfix(node *ast.Infix) error {
	switch node.Op {
	case token.LT, token.LT_EQ:
		// a < b is compiled as b > a, and a <= b as b >= a.
		if err := c.compile(node.Y); err != nil {
			return err
		}
		if err := c.compile(node.X); err != nil {
			return err
		}
		if node.Op == token.LT {
			c.emit(op.GreaterThan)
		} else {
			c.emit(op.GreaterOrEqual)
		}
		return nil
	}
	code, ok := infixOps[node.Op]
	if !ok {
		return c.errorf(errors.E2011, node, "unknown operator: %s", node.Op)
	}
	if err := c.compile(node.X); err != nil {
		return err
	}
	if err := c.compile(node.Y); err != nil {
		return err
	}
	c.emit(code)
	return nil
}

func (c *Compiler) compileIf(node *ast.If) error {
	if err := c.compile(node.Cond); err != nil {
		return err
	}
	jumpIfNot := c.emit(op.JumpIfNotTruthy, Placeholder)
	if err := c.compileBranch(node.Consequence); err != nil {
		return err
	}
	jump := c.emit(op.Jump, Placeholder)
	if err := c.patch(node, jumpIfNot, len(c.current().instructions)); err != nil {
		return err
	}
	if node.Alternative != nil {
		if err := c.compileBranch(node.Alternative); err != nil {
			return err
		}
	} else {
		c.emit(op.Null)
	}
	return c.patch(node, jump, len(c.current().instructions))
}

// compileBranch compiles one arm of a conditional so that it leaves
// exactly one value on the stack: a trailing POP_TOP is removed, and an
// arm that produces no value pushes null.
func (c *Compiler) compileBranch(block *ast.Block) error {
	if block == nil || len(block.Stmts) == 0 {
		c.emit(op.Null)
		return nil
	}
	if err := c.compile(block); err != nil {
		return err
	}
	s := c.current()
	switch {
	case s.lastIs(op.PopTop):
		s.removeLast()
	case s.lastIs(op.ReturnValue):
	default:
		c.emit(op.Null)
	}
	return nil
}

func (c *Compiler) compileArray(node *ast.Array) error {
	count := len(node.Items)
	if count > MaxOperand {
		return c.errorf(errors.E2012, node, "array literal too large (%d items, max %d)", count, MaxOperand)
	}
	for _, item := range node.Items {
		if err := c.compile(item); err != nil {
			return err
		}
	}
	c.emit(op.BuildArray, count)
	return nil
}

func (c *Compiler) compileHashMap(node *ast.HashMap) error {
	count := len(node.Items) * 2
	if count > MaxOperand {
		return c.errorf(errors.E2012, node, "hash literal too large (%d items, max %d)", len(node.Items), MaxOperand/2)
	}
	for _, item := range node.Items {
		if err := c.compile(item.Key); err != nil {
			return err
		}
		if err := c.compile(item.Value); err != nil {
			return err
		}
	}
	c.emit(op.BuildHash, count)
	return nil
}

func (c *Compiler) compileIndex(node *ast.Index) error {
	if err := c.compile(node.X); err != nil {
		return err
	}
	if err := c.compile(node.Index); err != nil {
		return err
	}
	c.emit(op.Index)
	return nil
}

func (c *Compiler) compileFunc(node *ast.Func, name string) error {
	c.enterScope(name)
	var err error
	if node.Body != nil {
		err = c.compile(node.Body)
	}
	if err == nil && c.current().lastIs(op.PopTop) {
		c.current().replaceLastPopWithReturn()
	}
	s := c.leaveScope()
	if err != nil {
		return err
	}
	fn := object.NewFunction(name, s.instructions)
	c.log.Debug().
		Str("name", name).
		Int("instructions", len(s.instructions)).
		Int("constants", len(c.constants)).
		Msg("compiled function")
	return c.emitConstant(node, fn)
}

// compileCall emits the callee and a CALL. Calls pass no arguments, so
// node.Args is not compiled.
func (c *Compiler) compileCall(node *ast.Call) error {
	if err := c.compile(node.Fun); err != nil {
		return err
	}
	c.emit(op.Call)
	return nil
}

func (c *Compiler) current() *scope {
	return c.scopes[len(c.scopes)-1]
}

func (c *Compiler) enterScope(name string) {
	c.scopes = append(c.scopes, &scope{name: name})
}

func (c *Compiler) leaveScope() *scope {
	s := c.current()
	c.scopes = c.scopes[:len(c.scopes)-1]
	return s
}

func (c *Compiler) emit(code op.Code, operands ...int) int {
	return c.current().add(code, op.Make(code, operands...))
}

func (c *Compiler) emitConstant(node ast.Node, obj object.Object) error {
	index := len(c.constants)
	if index > MaxOperand {
		return c.errorf(errors.E2008, node, "too many constants (max %d)", MaxOperand+1)
	}
	c.constants = append(c.constants, obj)
	c.emit(op.LoadConst, index)
	return nil
}

// patch points the jump at pos to target.
func (c *Compiler) patch(node ast.Node, pos, target int) error {
	if target > MaxOperand {
		return c.errorf(errors.E2012, node, "jump target %d out of range (max %d)", target, MaxOperand)
	}
	if err := c.current().instructions.Patch(pos, target); err != nil {
		return c.errorf(errors.E2013, node, "invalid jump at %d: %s", pos, err)
	}
	return nil
}

func (c *Compiler) errorf(code errors.ErrorCode, node ast.Node, format string, args ...any) *errors.CompileError {
	pos := token.NoPos
	if node != nil {
		pos = node.Pos()
	}
	err := errors.NewCompileError(code, pos, format, args...)
	if err.Filename == "" {
		err.Filename = c.filename
	}
	if err.Line > 0 && err.Line <= len(c.lines) {
		err.SourceLine = c.lines[err.Line-1]
	}
	return err
}

func (c *Compiler) undefinedVariableError(node *ast.Ident) error {
	err := c.errorf(errors.E2001, node, "undefined variable %q", node.Name)
	err.Suggestions = errors.SuggestSimilar(node.Name, c.symbols.Names())
	return err
}
