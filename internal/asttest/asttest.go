// Package asttest builds syntax trees by hand for tests. The parser lives
// outside this module, so tests construct the nodes it would produce.
package asttest

import (
	"strconv"

	"github.com/Yag000/Interpreter-Monkey/ast"
)

// Program wraps statements in a program.
func Program(stmts ...ast.Stmt) *ast.Program {
	return &ast.Program{Stmts: stmts}
}

// Exprs wraps each expression in an expression statement.
func Exprs(exprs ...ast.Expr) *ast.Program {
	stmts := make([]ast.Stmt, 0, len(exprs))
	for _, x := range exprs {
		stmts = append(stmts, Expr(x))
	}
	return Program(stmts...)
}

func Int(v int64) *ast.Int {
	return &ast.Int{Literal: strconv.FormatInt(v, 10), Value: v}
}

func Str(s string) *ast.String {
	return &ast.String{Literal: strconv.Quote(s), Value: s}
}

func Bool(b bool) *ast.Bool {
	return &ast.Bool{Literal: strconv.FormatBool(b), Value: b}
}

func Ident(name string) *ast.Ident {
	return &ast.Ident{Name: name}
}

func Infix(x ast.Expr, op string, y ast.Expr) *ast.Infix {
	return &ast.Infix{X: x, Op: op, Y: y}
}

func Prefix(op string, x ast.Expr) *ast.Prefix {
	return &ast.Prefix{Op: op, X: x}
}

func Expr(x ast.Expr) *ast.ExprStmt {
	return &ast.ExprStmt{X: x}
}

func Let(name string, value ast.Expr) *ast.Let {
	return &ast.Let{Name: Ident(name), Value: value}
}

func Return(value ast.Expr) *ast.Return {
	return &ast.Return{Value: value}
}

func Block(stmts ...ast.Stmt) *ast.Block {
	return &ast.Block{Stmts: stmts}
}

// Fn returns a function literal with the given body.
func Fn(body ...ast.Stmt) *ast.Func {
	return &ast.Func{Body: Block(body...)}
}

func Call(fn ast.Expr, args ...ast.Expr) *ast.Call {
	return &ast.Call{Fun: fn, Args: args}
}

// If returns a conditional. Pass a nil alternative for no else branch.
func If(cond ast.Expr, consequence, alternative *ast.Block) *ast.If {
	return &ast.If{Cond: cond, Consequence: consequence, Alternative: alternative}
}

func Array(items ...ast.Expr) *ast.Array {
	return &ast.Array{Items: items}
}

// Hash builds a hash literal from alternating keys and values.
func Hash(kv ...ast.Expr) *ast.HashMap {
	h := &ast.HashMap{}
	for i := 0; i+1 < len(kv); i += 2 {
		h.Items = append(h.Items, ast.HashItem{Key: kv[i], Value: kv[i+1]})
	}
	return h
}

func Index(x, index ast.Expr) *ast.Index {
	return &ast.Index{X: x, Index: index}
}
