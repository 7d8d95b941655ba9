package token

import (
	"fmt"
	"strconv"
)

type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF

	literal_beg
	// Identifiers + literals
	IDENT  // add, foobar, x, y, ...
	NUMBER // 1343456, 123.45
	STRING // "abc"
	literal_end

	operator_beg
	// Operators
	ASSIGN // =
	NOT    // !

	ADD // +
	SUB // -
	MUL // *
	QUO // /

	comparison_beg
	EQL // ==
	LSS // <
	GTR // >

	NEQ // !=
	LEQ // <=
	GEQ // >=
	comparison_end
	operator_end

	punctuation_beg
	LPAREN    // (
	LBRACE    // {
	COMMA     // ,
	SEMICOLON // ;

	RPAREN // )
	RBRACE // }
	punctuation_end

	keyword_beg
	// Keywords
	FUN
	VAR
	PRINT
	WHILE
	FOR
	IF
	ELSE
	RETURN
	TRUE
	FALSE
	AND
	OR
	keyword_end
)

var tokens = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",

	ASSIGN: "=",
	NOT:    "!",

	ADD: "+",
	SUB: "-",
	MUL: "*",
	QUO: "/",

	EQL: "==",
	LSS: "<",
	GTR: ">",

	NEQ: "!=",
	LEQ: "<=",
	GEQ: ">=",

	LPAREN:    "(",
	LBRACE:    "{",
	COMMA:     ",",
	SEMICOLON: ";",

	RPAREN: ")",
	RBRACE: "}",

	FUN:    "fun",
	VAR:    "var",
	PRINT:  "print",
	WHILE:  "while",
	FOR:    "for",
	IF:     "if",
	ELSE:   "else",
	RETURN: "return",
	TRUE:   "true",
	FALSE:  "false",
	AND:    "and",
	OR:     "or",
}

// Class is the coarse category of a token.
type Class int

const (
	ClassIllegal Class = iota
	ClassIdentifier
	ClassNumber
	ClassString
	ClassKeyword
	ClassOperator
	ClassPunctuation
	ClassEOF
)

var classes = [...]string{
	ClassIllegal:     "illegal",
	ClassIdentifier:  "identifier",
	ClassNumber:      "number",
	ClassString:      "string",
	ClassKeyword:     "keyword",
	ClassOperator:    "operator",
	ClassPunctuation: "punctuation",
	ClassEOF:         "end of input",
}

func (c Class) String() string {
	if 0 <= c && int(c) < len(classes) {
		return classes[c]
	}
	return "class(" + strconv.Itoa(int(c)) + ")"
}

// Position is a location in source text. Line and Column are 1-based,
// Column counts runes. Offset is the 0-based byte offset.
type Position struct {
	File   string
	Line   int
	Column int
	Offset int
}

func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	s := strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
	if p.File != "" {
		s = p.File + ":" + s
	}
	return s
}

type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

func (t Token) Class() Class {
	switch {
	case t.Type == EOF:
		return ClassEOF
	case t.Type == IDENT:
		return ClassIdentifier
	case t.Type == NUMBER:
		return ClassNumber
	case t.Type == STRING:
		return ClassString
	case t.IsKeyword():
		return ClassKeyword
	case operator_beg < t.Type && t.Type < operator_end:
		return ClassOperator
	case punctuation_beg < t.Type && t.Type < punctuation_end:
		return ClassPunctuation
	}
	return ClassIllegal
}

func (t Token) IsComparison() bool {
	return comparison_beg < t.Type && comparison_end > t.Type
}

func (t Token) IsKeyword() bool {
	return keyword_beg < t.Type && keyword_end > t.Type
}

func (t Token) IsLiteral() bool {
	return literal_beg < t.Type && literal_end > t.Type
}

// Describe renders the token the way error messages quote it.
func (t Token) Describe() string {
	switch t.Type {
	case EOF:
		return "end of input"
	case IDENT, NUMBER, STRING:
		return fmt.Sprintf("%s %s", t.Class(), t.Literal)
	}
	return "'" + t.Literal + "'"
}

func (t Token) String() string {
	return t.Type.String()
}

func (tokenType TokenType) String() string {
	s := ""
	if 0 <= tokenType && tokenType < TokenType(len(tokens)) {
		s = tokens[tokenType]
	}

	if s == "" {
		s = "token(" + strconv.Itoa(int(tokenType)) + ")"
	}

	return s
}

var keywords = func() map[string]TokenType {
	m := make(map[string]TokenType, keyword_end-keyword_beg-1)
	for t := keyword_beg + 1; t < keyword_end; t++ {
		m[tokens[t]] = t
	}
	return m
}()

// LookupIdent returns the keyword type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Keywords returns the reserved words in declaration order.
func Keywords() []string {
	out := make([]string, 0, keyword_end-keyword_beg-1)
	for t := keyword_beg + 1; t < keyword_end; t++ {
		out = append(out, tokens[t])
	}
	return out
}
