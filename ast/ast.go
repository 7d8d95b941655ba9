package ast

import (
	"bytes"
	"strings"

	"github.com/thiremani/lox/token"
)

// Kind is the grammar production a node was built from.
type Kind string

const (
	SourceFileKind        Kind = "source_file"
	FuncDefKind           Kind = "func_def"
	FunctionArgumentsKind Kind = "function_arguments"
	VarDeclKind           Kind = "var_decl"
	PrintStmtKind         Kind = "print_stmt"
	WhileStmtKind         Kind = "while_stmt"
	ForStmtKind           Kind = "for_stmt"
	IfStmtKind            Kind = "if_stmt"
	ReturnStmtKind        Kind = "return_stmt"
	ExprStmtKind          Kind = "expr_stmt"
	BlockKind             Kind = "block"
	BinaryExprKind        Kind = "binary_expr"
	UnaryExprKind         Kind = "unary_expr"
	AssignExprKind        Kind = "assign_expr"
	CallKind              Kind = "call"
	IdentifierKind        Kind = "identifier"
	NumberKind            Kind = "number"
	StringKind            Kind = "string"
	BoolLiteralKind       Kind = "bool_literal"
)

// The base Node interface
type Node interface {
	Kind() Kind
	Tok() token.Token
	String() string
}

// Declarations are the units of a source file or block
type Declaration interface {
	Node
	declarationNode()
}

// All statement nodes implement this
type Statement interface {
	Declaration
	statementNode()
}

// All expression nodes implement this
type Expression interface {
	Node
	expressionNode()
}

type SourceFile struct {
	Declarations []Declaration
}

func (sf *SourceFile) Kind() Kind { return SourceFileKind }
func (sf *SourceFile) Tok() token.Token {
	if len(sf.Declarations) > 0 {
		return sf.Declarations[0].Tok()
	}
	return token.Token{Type: token.EOF}
}
func (sf *SourceFile) String() string {
	out := make([]string, 0, len(sf.Declarations))
	for _, d := range sf.Declarations {
		out = append(out, d.String())
	}
	return strings.Join(out, "\n")
}

func joinDecls(decls []Declaration) string {
	var out bytes.Buffer
	for _, d := range decls {
		out.WriteString(" ")
		out.WriteString(d.String())
	}
	return out.String()
}

func printVec(a []Expression) string {
	parts := make([]string, 0, len(a))
	for _, e := range a {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}

// Declarations

type FuncDef struct {
	Token   token.Token // the 'fun' token
	FunName *Identifier
	LParen  token.Token
	Params  *FunctionArguments // nil when the parameter list is empty
	RParen  token.Token
	Body    *Block
}

func (fd *FuncDef) declarationNode()  {}
func (fd *FuncDef) Kind() Kind        { return FuncDefKind }
func (fd *FuncDef) Tok() token.Token  { return fd.Token }
func (fd *FuncDef) String() string {
	var out bytes.Buffer

	out.WriteString("fun ")
	out.WriteString(fd.FunName.String())
	out.WriteString("(")
	if fd.Params != nil {
		out.WriteString(fd.Params.String())
	}
	out.WriteString(") ")
	out.WriteString(fd.Body.String())

	return out.String()
}

// ParamNames returns the parameter names, empty when there are none.
func (fd *FuncDef) ParamNames() []string {
	if fd.Params == nil {
		return nil
	}
	names := make([]string, 0, len(fd.Params.Params))
	for _, p := range fd.Params.Params {
		names = append(names, p.Value)
	}
	return names
}

type FunctionArguments struct {
	Params []*Identifier
	Commas []token.Token // len(Commas) == len(Params)-1
}

func (fa *FunctionArguments) Kind() Kind       { return FunctionArgumentsKind }
func (fa *FunctionArguments) Tok() token.Token { return fa.Params[0].Token }
func (fa *FunctionArguments) String() string {
	names := make([]string, 0, len(fa.Params))
	for _, p := range fa.Params {
		names = append(names, p.Value)
	}
	return strings.Join(names, ", ")
}

type VarDecl struct {
	Token  token.Token // the 'var' token
	Name   *Identifier
	Assign token.Token // zero when there is no initializer
	Value  Expression  // nil when there is no initializer
	Semi   token.Token // zero inside a for-initializer
}

func (vd *VarDecl) declarationNode() {}
func (vd *VarDecl) Kind() Kind       { return VarDeclKind }
func (vd *VarDecl) Tok() token.Token { return vd.Token }
func (vd *VarDecl) String() string {
	var out bytes.Buffer

	out.WriteString("var ")
	out.WriteString(vd.Name.String())
	if vd.Value != nil {
		out.WriteString(" = ")
		out.WriteString(vd.Value.String())
	}
	if vd.Semi.Type == token.SEMICOLON {
		out.WriteString(";")
	}

	return out.String()
}

// Statements

type PrintStmt struct {
	Token      token.Token // the 'print' token
	Expression Expression
	Semi       token.Token
}

func (ps *PrintStmt) declarationNode() {}
func (ps *PrintStmt) statementNode()   {}
func (ps *PrintStmt) Kind() Kind       { return PrintStmtKind }
func (ps *PrintStmt) Tok() token.Token { return ps.Token }
func (ps *PrintStmt) String() string {
	return "print " + ps.Expression.String() + ";"
}

type WhileStmt struct {
	Token     token.Token // the 'while' token
	LParen    token.Token
	Condition Expression
	RParen    token.Token
	Body      Statement
}

func (ws *WhileStmt) declarationNode() {}
func (ws *WhileStmt) statementNode()   {}
func (ws *WhileStmt) Kind() Kind       { return WhileStmtKind }
func (ws *WhileStmt) Tok() token.Token { return ws.Token }
func (ws *WhileStmt) String() string {
	return "while (" + ws.Condition.String() + ") " + ws.Body.String()
}

type ForStmt struct {
	Token     token.Token // the 'for' token
	LParen    token.Token
	Init      Node // *VarDecl, an Expression, or nil
	InitSemi  token.Token
	Condition Expression // nil when omitted
	CondSemi  token.Token
	Update    Expression // nil when omitted
	RParen    token.Token
	Body      Statement
}

func (fs *ForStmt) declarationNode() {}
func (fs *ForStmt) statementNode()   {}
func (fs *ForStmt) Kind() Kind       { return ForStmtKind }
func (fs *ForStmt) Tok() token.Token { return fs.Token }
func (fs *ForStmt) String() string {
	var out bytes.Buffer

	out.WriteString("for (")
	if fs.Init != nil {
		out.WriteString(fs.Init.String())
	}
	out.WriteString(";")
	if fs.Condition != nil {
		out.WriteString(" ")
		out.WriteString(fs.Condition.String())
	}
	out.WriteString(";")
	if fs.Update != nil {
		out.WriteString(" ")
		out.WriteString(fs.Update.String())
	}
	out.WriteString(") ")
	out.WriteString(fs.Body.String())

	return out.String()
}

type IfStmt struct {
	Token       token.Token // the 'if' token
	LParen      token.Token
	Condition   Expression
	RParen      token.Token
	Consequence Statement
	ElseToken   token.Token // zero when there is no else branch
	Alternative Statement   // nil when there is no else branch
}

func (is *IfStmt) declarationNode() {}
func (is *IfStmt) statementNode()   {}
func (is *IfStmt) Kind() Kind       { return IfStmtKind }
func (is *IfStmt) Tok() token.Token { return is.Token }
func (is *IfStmt) String() string {
	var out bytes.Buffer

	out.WriteString("if (")
	out.WriteString(is.Condition.String())
	out.WriteString(") ")
	out.WriteString(is.Consequence.String())
	if is.Alternative != nil {
		out.WriteString(" else ")
		out.WriteString(is.Alternative.String())
	}

	return out.String()
}

type ReturnStmt struct {
	Token token.Token // the 'return' token
	Value Expression  // nil for a bare return
	Semi  token.Token
}

func (rs *ReturnStmt) declarationNode() {}
func (rs *ReturnStmt) statementNode()   {}
func (rs *ReturnStmt) Kind() Kind       { return ReturnStmtKind }
func (rs *ReturnStmt) Tok() token.Token { return rs.Token }
func (rs *ReturnStmt) String() string {
	if rs.Value == nil {
		return "return;"
	}
	return "return " + rs.Value.String() + ";"
}

type ExprStmt struct {
	Expression Expression
	Semi       token.Token
}

func (es *ExprStmt) declarationNode() {}
func (es *ExprStmt) statementNode()   {}
func (es *ExprStmt) Kind() Kind       { return ExprStmtKind }
func (es *ExprStmt) Tok() token.Token { return es.Expression.Tok() }
func (es *ExprStmt) String() string   { return es.Expression.String() + ";" }

type Block struct {
	Token        token.Token // the { token
	Declarations []Declaration
	RBrace       token.Token
}

func (b *Block) declarationNode() {}
func (b *Block) statementNode()   {}
func (b *Block) Kind() Kind       { return BlockKind }
func (b *Block) Tok() token.Token { return b.Token }
func (b *Block) String() string {
	return "{" + joinDecls(b.Declarations) + " }"
}

// Expressions

type BinaryExpr struct {
	Left     Expression
	Token    token.Token // The operator token, e.g. +
	Operator string
	Right    Expression
}

func (be *BinaryExpr) expressionNode()  {}
func (be *BinaryExpr) Kind() Kind       { return BinaryExprKind }
func (be *BinaryExpr) Tok() token.Token { return be.Token }
func (be *BinaryExpr) String() string {
	var out bytes.Buffer

	out.WriteString("(")
	out.WriteString(be.Left.String())
	out.WriteString(" " + be.Operator + " ")
	out.WriteString(be.Right.String())
	out.WriteString(")")

	return out.String()
}

type UnaryExpr struct {
	Token    token.Token // The prefix token, e.g. !
	Operator string
	Right    Expression
}

func (ue *UnaryExpr) expressionNode()  {}
func (ue *UnaryExpr) Kind() Kind       { return UnaryExprKind }
func (ue *UnaryExpr) Tok() token.Token { return ue.Token }
func (ue *UnaryExpr) String() string {
	return "(" + ue.Operator + ue.Right.String() + ")"
}

type AssignExpr struct {
	AssignTarget *Identifier
	Token        token.Token // the '=' token
	Value        Expression
}

func (ae *AssignExpr) expressionNode()  {}
func (ae *AssignExpr) Kind() Kind       { return AssignExprKind }
func (ae *AssignExpr) Tok() token.Token { return ae.Token }
func (ae *AssignExpr) String() string {
	return "(" + ae.AssignTarget.String() + " = " + ae.Value.String() + ")"
}

type Call struct {
	Function  *Identifier
	Token     token.Token // The '(' token
	Arguments []Expression
	Commas    []token.Token
	RParen    token.Token
}

func (c *Call) expressionNode()  {}
func (c *Call) Kind() Kind       { return CallKind }
func (c *Call) Tok() token.Token { return c.Token }
func (c *Call) String() string {
	return c.Function.String() + "(" + printVec(c.Arguments) + ")"
}

type Identifier struct {
	Token token.Token // the token.IDENT token
	Value string
}

func (i *Identifier) expressionNode()  {}
func (i *Identifier) Kind() Kind       { return IdentifierKind }
func (i *Identifier) Tok() token.Token { return i.Token }
func (i *Identifier) String() string   { return i.Value }

type Number struct {
	Token token.Token
	Value float64
}

func (n *Number) expressionNode()  {}
func (n *Number) Kind() Kind       { return NumberKind }
func (n *Number) Tok() token.Token { return n.Token }
func (n *Number) String() string   { return n.Token.Literal }

type String struct {
	Token token.Token // literal including quotes
	Value string      // contents without quotes
}

func (s *String) expressionNode()  {}
func (s *String) Kind() Kind       { return StringKind }
func (s *String) Tok() token.Token { return s.Token }
func (s *String) String() string   { return s.Token.Literal }

type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BoolLiteral) expressionNode()  {}
func (bl *BoolLiteral) Kind() Kind       { return BoolLiteralKind }
func (bl *BoolLiteral) Tok() token.Token { return bl.Token }
func (bl *BoolLiteral) String() string   { return bl.Token.Literal }
