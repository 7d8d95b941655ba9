package ast

import "github.com/thiremani/lox/token"

// Tree is a serializable view of a syntax tree, shaped like a concrete
// syntax tree dump: node kind, optional field label, leaf text and
// start position.
type Tree struct {
	Kind     Kind    `yaml:"kind" json:"kind"`
	Field    string  `yaml:"field,omitempty" json:"field,omitempty"`
	Text     string  `yaml:"text,omitempty" json:"text,omitempty"`
	Operator string  `yaml:"operator,omitempty" json:"operator,omitempty"`
	Pos      string  `yaml:"pos,omitempty" json:"pos,omitempty"`
	Children []*Tree `yaml:"children,omitempty" json:"children,omitempty"`
}

// NewTree converts n and its descendants.
func NewTree(n Node) *Tree {
	return newTree("", n)
}

func newTree(field string, n Node) *Tree {
	t := &Tree{Kind: n.Kind(), Field: field}
	if tok := Start(n); tok.Pos.IsValid() {
		t.Pos = tok.Pos.String()
	}

	switch n := n.(type) {
	case *Identifier, *Number, *String, *BoolLiteral:
		t.Text = n.Tok().Literal
	case *BinaryExpr:
		t.Operator = n.Operator
	case *UnaryExpr:
		t.Operator = n.Operator
	}

	for _, c := range Children(n) {
		t.Children = append(t.Children, newTree(c.Field, c.Node))
	}
	return t
}

// Start returns the first token of n in source order. Tok returns the
// operator for infix forms, Start returns the left operand's first token.
func Start(n Node) token.Token {
	switch n := n.(type) {
	case *SourceFile:
		if len(n.Declarations) > 0 {
			return Start(n.Declarations[0])
		}
		return token.Token{Type: token.EOF}
	case *FunctionArguments:
		return n.Params[0].Token
	case *ExprStmt:
		return Start(n.Expression)
	case *BinaryExpr:
		return Start(n.Left)
	case *AssignExpr:
		return n.AssignTarget.Token
	case *Call:
		return n.Function.Token
	}
	return n.Tok()
}
