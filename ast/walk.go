package ast

import "github.com/thiremani/lox/token"

// Child is a child node, labelled with its field name when the grammar
// names it.
type Child struct {
	Field string
	Node  Node
}

// Field names exposed to tree consumers.
const (
	FieldFunName      = "fun_name"
	FieldFunction     = "function"
	FieldAssignTarget = "assign_target"
)

// Children returns the direct child nodes of n in source order.
func Children(n Node) []Child {
	var out []Child
	add := func(field string, c Node) {
		if !isNil(c) {
			out = append(out, Child{Field: field, Node: c})
		}
	}

	switch n := n.(type) {
	case *SourceFile:
		for _, d := range n.Declarations {
			add("", d)
		}
	case *FuncDef:
		add(FieldFunName, n.FunName)
		if n.Params != nil {
			add("", n.Params)
		}
		add("", n.Body)
	case *FunctionArguments:
		for _, p := range n.Params {
			add("", p)
		}
	case *VarDecl:
		add("", n.Name)
		add("", n.Value)
	case *PrintStmt:
		add("", n.Expression)
	case *WhileStmt:
		add("", n.Condition)
		add("", n.Body)
	case *ForStmt:
		add("", n.Init)
		add("", n.Condition)
		add("", n.Update)
		add("", n.Body)
	case *IfStmt:
		add("", n.Condition)
		add("", n.Consequence)
		add("", n.Alternative)
	case *ReturnStmt:
		add("", n.Value)
	case *ExprStmt:
		add("", n.Expression)
	case *Block:
		for _, d := range n.Declarations {
			add("", d)
		}
	case *BinaryExpr:
		add("", n.Left)
		add("", n.Right)
	case *UnaryExpr:
		add("", n.Right)
	case *AssignExpr:
		add(FieldAssignTarget, n.AssignTarget)
		add("", n.Value)
	case *Call:
		add(FieldFunction, n.Function)
		for _, a := range n.Arguments {
			add("", a)
		}
	}
	return out
}

// isNil catches typed nil pointers stored in interfaces.
func isNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *Identifier:
		return n == nil
	case *Block:
		return n == nil
	case *VarDecl:
		return n == nil
	case *FunctionArguments:
		return n == nil
	}
	return false
}

// Inspect traverses the tree depth-first in source order. If f returns
// false the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if isNil(n) || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c.Node, f)
	}
}

// Tokens returns the leaves of n in source order: every token the node
// was built from, except grouping parentheses which are not retained.
func Tokens(n Node) []token.Token {
	var out []token.Token
	appendTokens(&out, n)
	return out
}

func appendTokens(out *[]token.Token, n Node) {
	emit := func(toks ...token.Token) {
		for _, t := range toks {
			if t.Literal != "" {
				*out = append(*out, t)
			}
		}
	}
	walk := func(c Node) {
		if !isNil(c) {
			appendTokens(out, c)
		}
	}

	switch n := n.(type) {
	case *SourceFile:
		for _, d := range n.Declarations {
			walk(d)
		}
	case *FuncDef:
		emit(n.Token)
		walk(n.FunName)
		emit(n.LParen)
		if n.Params != nil {
			walk(n.Params)
		}
		emit(n.RParen)
		walk(n.Body)
	case *FunctionArguments:
		for i, p := range n.Params {
			if i > 0 {
				emit(n.Commas[i-1])
			}
			walk(p)
		}
	case *VarDecl:
		emit(n.Token)
		walk(n.Name)
		emit(n.Assign)
		walk(n.Value)
		emit(n.Semi)
	case *PrintStmt:
		emit(n.Token)
		walk(n.Expression)
		emit(n.Semi)
	case *WhileStmt:
		emit(n.Token, n.LParen)
		walk(n.Condition)
		emit(n.RParen)
		walk(n.Body)
	case *ForStmt:
		emit(n.Token, n.LParen)
		walk(n.Init)
		emit(n.InitSemi)
		walk(n.Condition)
		emit(n.CondSemi)
		walk(n.Update)
		emit(n.RParen)
		walk(n.Body)
	case *IfStmt:
		emit(n.Token, n.LParen)
		walk(n.Condition)
		emit(n.RParen)
		walk(n.Consequence)
		emit(n.ElseToken)
		walk(n.Alternative)
	case *ReturnStmt:
		emit(n.Token)
		walk(n.Value)
		emit(n.Semi)
	case *ExprStmt:
		walk(n.Expression)
		emit(n.Semi)
	case *Block:
		emit(n.Token)
		for _, d := range n.Declarations {
			walk(d)
		}
		emit(n.RBrace)
	case *BinaryExpr:
		walk(n.Left)
		emit(n.Token)
		walk(n.Right)
	case *UnaryExpr:
		emit(n.Token)
		walk(n.Right)
	case *AssignExpr:
		walk(n.AssignTarget)
		emit(n.Token)
		walk(n.Value)
	case *Call:
		walk(n.Function)
		emit(n.Token)
		for i, a := range n.Arguments {
			if i > 0 {
				emit(n.Commas[i-1])
			}
			walk(a)
		}
		emit(n.RParen)
	case *Identifier, *Number, *String, *BoolLiteral:
		emit(n.Tok())
	}
}
