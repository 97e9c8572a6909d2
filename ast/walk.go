package ast

// Visitor defines the interface for AST traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the non-nil children of node.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	for _, child := range children(node) {
		Walk(v, child)
	}
}

// Inspect traverses an AST in depth-first order. It calls f(node) for each
// node; if f returns true, Inspect invokes f recursively for each of the
// non-nil children of node.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// children returns the non-nil direct children of node in source order.
func children(node Node) []Node {
	var out []Node
	add := func(n Node) {
		if n != nil {
			out = append(out, n)
		}
	}
	switch n := node.(type) {
	case *Program:
		for _, s := range n.Stmts {
			add(s)
		}
	case *Block:
		for _, s := range n.Stmts {
			add(s)
		}
	case *Let:
		if n.Name != nil {
			add(n.Name)
		}
		add(n.Value)
	case *Return:
		add(n.Value)
	case *ExprStmt:
		add(n.X)
	case *Prefix:
		add(n.X)
	case *Infix:
		add(n.X)
		add(n.Y)
	case *If:
		add(n.Cond)
		if n.Consequence != nil {
			add(n.Consequence)
		}
		if n.Alternative != nil {
			add(n.Alternative)
		}
	case *Call:
		add(n.Fun)
		for _, a := range n.Args {
			add(a)
		}
	case *Index:
		add(n.X)
		add(n.Index)
	case *Func:
		for _, p := range n.Params {
			add(p)
		}
		if n.Body != nil {
			add(n.Body)
		}
	case *Array:
		for _, item := range n.Items {
			add(item)
		}
	case *HashMap:
		for _, item := range n.Items {
			add(item.Key)
			add(item.Value)
		}
	}
	return out
}
