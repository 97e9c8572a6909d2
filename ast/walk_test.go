package ast

import (
	"testing"

	"github.com/Yag000/Interpreter-Monkey/token"
	"github.com/stretchr/testify/require"
)

func TestWalk(t *testing.T) {
	// let x = 1 + 2;
	program := &Program{
		Stmts: []Stmt{
			&Let{
				Let: token.Position{Line: 1, Column: 1},
				Name: &Ident{
					NamePos: token.Position{Line: 1, Column: 5},
					Name:    "x",
				},
				Value: &Infix{
					X:     &Int{ValuePos: token.Position{Line: 1, Column: 9}, Literal: "1", Value: 1},
					OpPos: token.Position{Line: 1, Column: 11},
					Op:    "+",
					Y:     &Int{ValuePos: token.Position{Line: 1, Column: 13}, Literal: "2", Value: 2},
				},
			},
		},
	}

	var visited []string
	Inspect(program, func(n Node) bool {
		switch node := n.(type) {
		case *Program:
			visited = append(visited, "Program")
		case *Let:
			visited = append(visited, "Let")
		case *Ident:
			visited = append(visited, "Ident:"+node.Name)
		case *Infix:
			visited = append(visited, "Infix:"+node.Op)
		case *Int:
			visited = append(visited, "Int:"+node.Literal)
		}
		return true
	})
	require.Equal(t, []string{"Program", "Let", "Ident:x", "Infix:+", "Int:1", "Int:2"}, visited)
}

func TestInspectStopsDescending(t *testing.T) {
	fn := &Func{
		Body: &Block{Stmts: []Stmt{
			&ExprStmt{X: &Ident{Name: "inner"}},
		}},
	}
	program := &Program{Stmts: []Stmt{
		&ExprStmt{X: &Call{Fun: fn}},
		&ExprStmt{X: &Ident{Name: "outer"}},
	}}

	var idents []string
	Inspect(program, func(n Node) bool {
		if _, ok := n.(*Func); ok {
			return false
		}
		if id, ok := n.(*Ident); ok {
			idents = append(idents, id.Name)
		}
		return true
	})
	require.Equal(t, []string{"outer"}, idents)
}

func TestWalkCollections(t *testing.T) {
	node := &HashMap{Items: []HashItem{
		{Key: &String{Value: "a"}, Value: &Array{Items: []Expr{&Int{Value: 1}, &Bool{Value: true}}}},
	}}
	count := 0
	Inspect(node, func(Node) bool {
		count++
		return true
	})
	require.Equal(t, 5, count)
}

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		node     Node
		expected string
	}{
		{"infix", &Infix{X: &Int{Value: 1}, Op: "+", Y: &Int{Value: 2}}, "(1 + 2)"},
		{"prefix", &Prefix{Op: "!", X: &Bool{Value: true}}, "(!true)"},
		{"index", &Index{X: &Ident{Name: "a"}, Index: &Int{Literal: "0"}}, "(a[0])"},
		{"array", &Array{Items: []Expr{&Int{Value: 1}, &String{Value: "x"}}}, `[1, "x"]`},
		{"hash", &HashMap{Items: []HashItem{{Key: &String{Value: "k"}, Value: &Int{Value: 2}}}}, `{"k":2}`},
		{"let", &Let{Name: &Ident{Name: "x"}, Value: &Int{Value: 3}}, "let x = 3;"},
		{"return", &Return{Value: &Ident{Name: "y"}}, "return y;"},
		{"call", &Call{Fun: &Ident{Name: "f"}, Args: []Expr{&Int{Value: 1}}}, "f(1)"},
		{
			"if",
			&If{
				Cond:        &Bool{Value: false},
				Consequence: &Block{Stmts: []Stmt{&ExprStmt{X: &Int{Value: 1}}}},
				Alternative: &Block{Stmts: []Stmt{&ExprStmt{X: &Int{Value: 2}}}},
			},
			"if (false) 1 else 2",
		},
		{"func", &Func{Body: &Block{Stmts: []Stmt{&ExprStmt{X: &Int{Value: 5}}}}}, "fn() { 5 }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.node.String())
		})
	}
}

func TestPositions(t *testing.T) {
	x := &Ident{NamePos: token.Position{Char: 4, Column: 4}, Name: "foo"}
	require.Equal(t, 4, x.Pos().Char)
	require.Equal(t, 7, x.End().Char)
	require.Equal(t, 5, x.Pos().ColumnNumber())

	p := &Program{}
	require.False(t, p.Pos().IsValid())
}
