package lexer

import (
	"iter"
	"unicode/utf8"

	"github.com/thiremani/lox/token"
)

type Lexer struct {
	file         string
	input        string
	position     int  // byte offset of the current rune
	readPosition int  // byte offset after the current rune
	curr         rune // current rune under examination

	line   int
	column int
}

func New(file, input string) *Lexer {
	l := &Lexer{file: file, input: input, line: 1}
	l.readRune()
	return l
}

// Tokenize lexes the whole input. The final element is always EOF.
func Tokenize(file, input string) []token.Token {
	l := New(file, input)
	toks := []token.Token{}
	for tok := range l.All() {
		toks = append(toks, tok)
	}
	return toks
}

// All yields tokens up to and including EOF.
func (l *Lexer) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			tok := l.NextToken()
			if !yield(tok) || tok.Type == token.EOF {
				return
			}
		}
	}
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	pos := l.pos()
	var tok token.Token

	switch l.curr {
	case '=':
		tok = l.twoRuneToken('=', token.EQL, token.ASSIGN)
	case '!':
		tok = l.twoRuneToken('=', token.NEQ, token.NOT)
	case '<':
		tok = l.twoRuneToken('=', token.LEQ, token.LSS)
	case '>':
		tok = l.twoRuneToken('=', token.GEQ, token.GTR)
	case '+':
		tok = newToken(token.ADD, l.curr)
	case '-':
		tok = newToken(token.SUB, l.curr)
	case '*':
		tok = newToken(token.MUL, l.curr)
	case '/':
		tok = newToken(token.QUO, l.curr)
	case ',':
		tok = newToken(token.COMMA, l.curr)
	case ';':
		tok = newToken(token.SEMICOLON, l.curr)
	case '(':
		tok = newToken(token.LPAREN, l.curr)
	case ')':
		tok = newToken(token.RPAREN, l.curr)
	case '{':
		tok = newToken(token.LBRACE, l.curr)
	case '}':
		tok = newToken(token.RBRACE, l.curr)
	case '"':
		tok = l.readString()
		tok.Pos = pos
		return tok
	case 0:
		if l.position >= len(l.input) {
			return token.Token{Type: token.EOF, Literal: "", Pos: pos}
		}
		tok = l.illegal()
	default:
		if isLetter(l.curr) {
			lit := l.readIdentifier()
			return token.Token{Type: token.LookupIdent(lit), Literal: lit, Pos: pos}
		} else if isDigit(l.curr) {
			return token.Token{Type: token.NUMBER, Literal: l.readNumber(), Pos: pos}
		}
		tok = l.illegal()
	}

	tok.Pos = pos
	l.readRune()
	return tok
}

func (l *Lexer) pos() token.Position {
	return token.Position{File: l.file, Line: l.line, Column: l.column, Offset: l.position}
}

// twoRuneToken returns long if the next rune is second, else short.
func (l *Lexer) twoRuneToken(second rune, long, short token.TokenType) token.Token {
	if l.peekRune() == second {
		first := l.curr
		l.readRune()
		return token.Token{Type: long, Literal: string(first) + string(l.curr)}
	}
	return newToken(short, l.curr)
}

// skipWhitespace also skips // comments up to (not including) the newline.
func (l *Lexer) skipWhitespace() {
	for {
		switch {
		case l.curr == ' ' || l.curr == '\t' || l.curr == '\n' || l.curr == '\r':
			l.readRune()
		case l.curr == '/' && l.peekRune() == '/':
			for l.curr != '\n' && l.position < len(l.input) {
				l.readRune()
			}
		default:
			return
		}
	}
}

// readRune decodes the next rune. An invalid UTF-8 byte decodes as
// utf8.RuneError of width 1, so offsets stay byte accurate.
func (l *Lexer) readRune() {
	if l.curr == '\n' {
		l.line++
		l.column = 0
	}
	l.position = l.readPosition
	if l.position >= len(l.input) {
		l.position = len(l.input)
		l.readPosition = len(l.input)
		l.curr = 0
	} else {
		r, width := utf8.DecodeRuneInString(l.input[l.position:])
		l.curr = r
		l.readPosition = l.position + width
	}
	l.column++
}

func (l *Lexer) peekRune() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// illegal returns the current rune's source bytes as an ILLEGAL token.
func (l *Lexer) illegal() token.Token {
	return token.Token{Type: token.ILLEGAL, Literal: l.input[l.position:l.readPosition]}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.curr) {
		l.readRune()
	}
	return l.input[position:l.position]
}

// readNumber reads digits with an optional fraction. A dot is only
// consumed when a digit follows it.
func (l *Lexer) readNumber() string {
	position := l.position
	for isDigit(l.curr) {
		l.readRune()
	}
	if l.curr == '.' && isDigit(l.peekRune()) {
		l.readRune()
		for isDigit(l.curr) {
			l.readRune()
		}
	}
	return l.input[position:l.position]
}

// readString returns a STRING token including both quotes, or an ILLEGAL
// token holding the unterminated text when a newline or the end of input
// comes first.
func (l *Lexer) readString() token.Token {
	position := l.position
	l.readRune()
	for l.curr != '"' {
		if l.curr == '\n' || l.position >= len(l.input) {
			return token.Token{Type: token.ILLEGAL, Literal: l.input[position:l.position]}
		}
		l.readRune()
	}
	l.readRune()
	return token.Token{Type: token.STRING, Literal: l.input[position:l.position]}
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func newToken(tokenType token.TokenType, curr rune) token.Token {
	return token.Token{Type: tokenType, Literal: string(curr)}
}
