package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Yag000/Interpreter-Monkey/token"
)

// Int is an expression node that holds an integer literal.
type Int struct {
	ValuePos token.Position // position of literal
	Literal  string         // original literal text
	Value    int64          // parsed value
}

func (x *Int) exprNode() {}

func (x *Int) Pos() token.Position { return x.ValuePos }
func (x *Int) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Int) String() string {
	if x.Literal == "" {
		return fmt.Sprintf("%d", x.Value)
	}
	return x.Literal
}

// Bool is an expression node that holds a boolean literal.
type Bool struct {
	ValuePos token.Position // position of literal
	Literal  string         // original literal text
	Value    bool           // parsed value
}

func (x *Bool) exprNode() {}

func (x *Bool) Pos() token.Position { return x.ValuePos }
func (x *Bool) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Bool) String() string {
	if x.Literal == "" {
		return fmt.Sprintf("%t", x.Value)
	}
	return x.Literal
}

// String is an expression node that holds a string literal.
type String struct {
	ValuePos token.Position // position of literal
	Literal  string         // original literal text including quotes
	Value    string         // unquoted value
}

func (x *String) exprNode() {}

func (x *String) Pos() token.Position { return x.ValuePos }
func (x *String) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *String) String() string { return fmt.Sprintf("%q", x.Value) }

// Func is an expression node that holds a function literal. Functions
// take no parameters; any listed in Params are carried for display only.
type Func struct {
	Func   token.Position // position of "fn" keyword
	Params []*Ident       // declared parameter names
	Body   *Block         // function body
}

func (x *Func) exprNode() {}

func (x *Func) Pos() token.Position { return x.Func }

func (x *Func) End() token.Position {
	if x.Body != nil {
		return x.Body.End()
	}
	return x.Func.Advance(2)
}

func (x *Func) String() string {
	var out bytes.Buffer
	params := make([]string, 0, len(x.Params))
	for _, p := range x.Params {
		params = append(params, p.String())
	}
	out.WriteString("fn(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") { ")
	if x.Body != nil {
		out.WriteString(x.Body.String())
	}
	out.WriteString(" }")
	return out.String()
}

// Array is an expression node that builds an array.
type Array struct {
	Lbrack token.Position // position of "["
	Items  []Expr         // array elements
	Rbrack token.Position // position of "]"
}

func (x *Array) exprNode() {}

func (x *Array) Pos() token.Position { return x.Lbrack }
func (x *Array) End() token.Position { return x.Rbrack.Advance(1) }

func (x *Array) String() string {
	var out bytes.Buffer
	elements := make([]string, 0, len(x.Items))
	for _, el := range x.Items {
		elements = append(elements, el.String())
	}
	out.WriteString("[")
	out.WriteString(strings.Join(elements, ", "))
	out.WriteString("]")
	return out.String()
}

// HashItem represents a single key-value pair in a hash literal.
type HashItem struct {
	Key   Expr
	Value Expr
}

// HashMap is an expression node that builds a hash map. Items keep their
// source order, which is also the order they are compiled in.
type HashMap struct {
	Lbrace token.Position // position of "{"
	Items  []HashItem     // ordered key-value pairs
	Rbrace token.Position // position of "}"
}

func (x *HashMap) exprNode() {}

func (x *HashMap) Pos() token.Position { return x.Lbrace }
func (x *HashMap) End() token.Position { return x.Rbrace.Advance(1) }

func (x *HashMap) String() string {
	var out bytes.Buffer
	pairs := make([]string, 0, len(x.Items))
	for _, item := range x.Items {
		pairs = append(pairs, item.Key.String()+":"+item.Value.String())
	}
	out.WriteString("{")
	out.WriteString(strings.Join(pairs, ", "))
	out.WriteString("}")
	return out.String()
}
