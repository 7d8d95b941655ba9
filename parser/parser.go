package parser

import (
	"fmt"

	"github.com/thiremani/lox/ast"
	"github.com/thiremani/lox/lexer"
	"github.com/thiremani/lox/token"
)

// Parser holds the state of a single parse. It is not safe for
// concurrent use; create one per input.
type Parser struct {
	l      *lexer.Lexer
	opts   options
	errors []error

	curToken  token.Token
	peekToken token.Token

	consumed int // number of tokens advanced past
	depth    int
}

func New(l *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{
		l:      l,
		opts:   newOptions(opts),
		errors: []error{},
	}

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()
	p.consumed = 0

	return p
}

// Parse parses a complete source file.
func Parse(file, src string, opts ...Option) (*ast.SourceFile, error) {
	p := New(lexer.New(file, src), opts...)
	sf := p.ParseProgram()
	if err := p.Err(); err != nil {
		return nil, err
	}
	return sf, nil
}

// ParseExpression parses src as a single expression with nothing after it.
func ParseExpression(file, src string, opts ...Option) (ast.Expression, error) {
	p := New(lexer.New(file, src), opts...)
	exp := p.ParseExpression()
	if err := p.Err(); err != nil {
		return nil, err
	}
	return exp, nil
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
	p.consumed++
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(quote(t))
	return false
}

// expectClose is expectPeek for a closing delimiter; the error names the
// opening one. alt lists other tokens that were acceptable at this point.
func (p *Parser) expectClose(t token.TokenType, opener token.Token, alt ...string) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	if p.peekTokenIs(token.ILLEGAL) {
		p.addError(newLexicalError(p.peekToken))
		return false
	}
	p.addError(&SyntaxError{
		Pos:      p.peekToken.Pos,
		Found:    p.peekToken,
		Expected: append(alt, quote(t)),
		Opener:   &opener,
	})
	return false
}

// Errors returns the errors collected so far. Parsing stops at the first.
func (p *Parser) Errors() []error {
	return p.errors
}

// Err returns the first error, or nil.
func (p *Parser) Err() error {
	if len(p.errors) == 0 {
		return nil
	}
	return p.errors[0]
}

func (p *Parser) failed() bool {
	return len(p.errors) > 0
}

func (p *Parser) addError(err error) {
	if !p.failed() {
		p.errors = append(p.errors, err)
	}
}

func (p *Parser) peekError(expected ...string) {
	p.unexpected(p.peekToken, expected...)
}

// unexpected records that tok could not be used. ILLEGAL tokens surface
// as the lexical problem they carry.
func (p *Parser) unexpected(tok token.Token, expected ...string) {
	if tok.Type == token.ILLEGAL {
		p.addError(newLexicalError(tok))
		return
	}
	p.addError(&SyntaxError{Pos: tok.Pos, Found: tok, Expected: expected})
}

func (p *Parser) limitError(tok token.Token, format string, args ...any) {
	p.addError(&SyntaxError{Pos: tok.Pos, Found: tok, Msg: fmt.Sprintf(format, args...)})
}

// enter must be paired with a deferred leave.
func (p *Parser) enter() bool {
	p.depth++
	if p.depth > p.opts.maxDepth {
		p.limitError(p.curToken, "nesting depth exceeds %d", p.opts.maxDepth)
		return false
	}
	return true
}

func (p *Parser) leave() {
	p.depth--
}

// ParseProgram parses declarations until end of input. It returns nil if
// an error occurred; see Errors.
func (p *Parser) ParseProgram() *ast.SourceFile {
	sf := &ast.SourceFile{Declarations: []ast.Declaration{}}

	for !p.curTokenIs(token.EOF) {
		decl := p.parseDeclaration()
		if decl == nil || p.failed() {
			return nil
		}
		sf.Declarations = append(sf.Declarations, decl)
		p.nextToken()
	}

	return sf
}

// ParseExpression parses one expression that must end the input.
func (p *Parser) ParseExpression() ast.Expression {
	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}
	if !p.peekTokenIs(token.EOF) {
		p.peekError(ExpectEndOfInput)
		return nil
	}
	return exp
}

func (p *Parser) parseDeclaration() ast.Declaration {
	switch p.curToken.Type {
	case token.FUN:
		if fd := p.parseFuncDef(); fd != nil {
			return fd
		}
		return nil
	case token.VAR:
		vd := p.parseVarDecl()
		if vd == nil || !p.expectPeek(token.SEMICOLON) {
			return nil
		}
		vd.Semi = p.curToken
		return vd
	}

	stmt := p.parseStatement()
	if stmt == nil {
		return nil
	}
	return stmt
}

// parseVarDecl leaves curToken on the last token of the declaration; the
// caller consumes the ';' since a for-initializer shares it.
func (p *Parser) parseVarDecl() *ast.VarDecl {
	vd := &ast.VarDecl{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	vd.Name = p.parseIdentifier()

	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		vd.Assign = p.curToken
		p.nextToken()
		vd.Value = p.parseExpression(LOWEST)
		if vd.Value == nil {
			return nil
		}
	}

	return vd
}

func (p *Parser) parseFuncDef() *ast.FuncDef {
	fd := &ast.FuncDef{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	fd.FunName = p.parseIdentifier()

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	fd.LParen = p.curToken

	if p.peekTokenIs(token.IDENT) {
		fd.Params = p.parseFunctionArguments()
		if fd.Params == nil {
			return nil
		}
	}

	alt := []string{ExpectIdentifier}
	if fd.Params != nil {
		alt = []string{quote(token.COMMA)}
	}
	if !p.expectClose(token.RPAREN, fd.LParen, alt...) {
		return nil
	}
	fd.RParen = p.curToken

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	fd.Body = p.parseBlock()
	if fd.Body == nil {
		return nil
	}

	return fd
}

func (p *Parser) parseFunctionArguments() *ast.FunctionArguments {
	fa := &ast.FunctionArguments{}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	fa.Params = append(fa.Params, p.parseIdentifier())

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		fa.Commas = append(fa.Commas, p.curToken)
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		fa.Params = append(fa.Params, p.parseIdentifier())
		if len(fa.Params) > p.opts.maxArgs {
			p.limitError(p.curToken, "can't have more than %d parameters", p.opts.maxArgs)
			return nil
		}
	}

	return fa
}

// parseBlock parses '{' declarations* '}'. curToken must be the '{'.
func (p *Parser) parseBlock() *ast.Block {
	ok := p.enter()
	defer p.leave()
	if !ok {
		return nil
	}

	block := &ast.Block{Token: p.curToken, Declarations: []ast.Declaration{}}
	p.nextToken()

	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			p.addError(&SyntaxError{
				Pos:      p.curToken.Pos,
				Found:    p.curToken,
				Expected: []string{quote(token.RBRACE)},
				Opener:   &block.Token,
			})
			return nil
		}
		decl := p.parseDeclaration()
		if decl == nil {
			return nil
		}
		block.Declarations = append(block.Declarations, decl)
		p.nextToken()
	}
	block.RBrace = p.curToken

	return block
}
