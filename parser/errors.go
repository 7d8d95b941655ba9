package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thiremani/lox/token"
)

// Expected-set entries that are not a single token.
const (
	ExpectExpression = "expression"
	ExpectIdentifier = "identifier"
	ExpectEndOfStmt  = "end of statement"
	ExpectBinaryOp   = "binary operator"
	ExpectEndOfInput = "end of input"
)

// LexicalError reports a token the lexer could not classify.
type LexicalError struct {
	Pos     token.Position
	Literal string
	Msg     string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("%s:%s", e.Pos, e.Msg)
}

func newLexicalError(tok token.Token) *LexicalError {
	msg := fmt.Sprintf("unrecognized character %q", tok.Literal)
	if strings.HasPrefix(tok.Literal, `"`) {
		msg = "unterminated string " + tok.Literal
	}
	return &LexicalError{Pos: tok.Pos, Literal: tok.Literal, Msg: msg}
}

// SyntaxError reports the token where parsing failed and what would have
// been accepted there.
type SyntaxError struct {
	Pos      token.Position
	Found    token.Token
	Expected []string
	// Msg replaces the generic "expected X, found Y" text when set.
	Msg string
	// Opener is the unmatched '(' or '{' for unbalanced input.
	Opener *token.Token
}

func (e *SyntaxError) Error() string {
	var out strings.Builder
	out.WriteString(e.Pos.String())
	out.WriteString(":")
	if e.Msg != "" {
		out.WriteString(e.Msg)
	} else {
		out.WriteString("expected ")
		out.WriteString(strings.Join(e.Expected, " or "))
		out.WriteString(", found ")
		out.WriteString(e.Found.Describe())
	}
	if e.Opener != nil {
		fmt.Fprintf(&out, " (to close '%s' at %d:%d)", e.Opener.Literal, e.Opener.Pos.Line, e.Opener.Pos.Column)
	}
	return out.String()
}

// quote renders a token type as an expected-set entry.
func quote(t token.TokenType) string {
	switch t {
	case token.IDENT:
		return ExpectIdentifier
	case token.EOF:
		return ExpectEndOfInput
	}
	return "'" + t.String() + "'"
}

// IsIncomplete reports whether err was raised at the end of input, i.e.
// more source could still complete the parse.
func IsIncomplete(err error) bool {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se.Found.Type == token.EOF
	}
	return false
}
