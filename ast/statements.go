package ast

import (
	"strings"

	"github.com/Yag000/Interpreter-Monkey/token"
)

// Let is a statement node that binds a value to a global name.
type Let struct {
	Let   token.Position // position of "let" keyword
	Name  *Ident         // variable name
	Value Expr           // bound value
}

func (s *Let) stmtNode() {}

func (s *Let) Pos() token.Position { return s.Let }
func (s *Let) End() token.Position { return s.Value.End() }

func (s *Let) String() string {
	var out strings.Builder
	out.WriteString("let ")
	out.WriteString(s.Name.Name)
	out.WriteString(" = ")
	out.WriteString(s.Value.String())
	out.WriteString(";")
	return out.String()
}

// Return is a statement node that returns a value from a function.
type Return struct {
	Return token.Position // position of "return" keyword
	Value  Expr           // returned value
}

func (s *Return) stmtNode() {}

func (s *Return) Pos() token.Position { return s.Return }
func (s *Return) End() token.Position { return s.Value.End() }

func (s *Return) String() string {
	return "return " + s.Value.String() + ";"
}

// ExprStmt is a statement consisting of a single expression whose value
// is discarded.
type ExprStmt struct {
	X Expr
}

func (s *ExprStmt) stmtNode() {}

func (s *ExprStmt) Pos() token.Position { return s.X.Pos() }
func (s *ExprStmt) End() token.Position { return s.X.End() }

func (s *ExprStmt) String() string { return s.X.String() }

// Block is a brace-delimited sequence of statements.
type Block struct {
	Lbrace token.Position // position of "{"
	Stmts  []Stmt         // statements in the block
	Rbrace token.Position // position of "}"
}

func (b *Block) stmtNode() {}

func (b *Block) Pos() token.Position { return b.Lbrace }
func (b *Block) End() token.Position { return b.Rbrace.Advance(1) }

func (b *Block) String() string {
	var out strings.Builder
	for _, s := range b.Stmts {
		out.WriteString(s.String())
	}
	return out.String()
}
