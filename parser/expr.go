package parser

import (
	"errors"
	"strconv"

	"github.com/thiremani/lox/ast"
	"github.com/thiremani/lox/token"
)

// parseExpression climbs the operator table: it folds every infix
// operator whose level is at least minPrec into the left operand. On
// return curToken is the last token of the expression.
func (p *Parser) parseExpression(minPrec Precedence) ast.Expression {
	ok := p.enter()
	defer p.leave()
	if !ok {
		return nil
	}

	start := p.consumed
	left := p.parseUnary()
	if left == nil {
		return nil
	}

	for {
		entry, ok := Lookup(p.peekToken.Type)
		if !ok || entry.Level < minPrec {
			return left
		}
		if p.peekTokenIs(token.ASSIGN) {
			// only a lone identifier token may be assigned to
			return p.parseAssignment(left, p.consumed == start)
		}

		p.nextToken()
		expression := &ast.BinaryExpr{
			Left:     left,
			Token:    p.curToken,
			Operator: p.curToken.Literal,
		}
		p.nextToken()
		expression.Right = p.parseExpression(rightBindingPower(entry))
		if expression.Right == nil {
			return nil
		}
		left = expression
	}
}

func (p *Parser) parseAssignment(target ast.Expression, bare bool) ast.Expression {
	ident, ok := target.(*ast.Identifier)
	if !ok || !bare {
		p.peekError(ExpectEndOfStmt, ExpectBinaryOp)
		return nil
	}

	p.nextToken()
	expression := &ast.AssignExpr{AssignTarget: ident, Token: p.curToken}
	p.nextToken()
	expression.Value = p.parseExpression(ASSIGNMENT)
	if expression.Value == nil {
		return nil
	}
	return expression
}

// parseUnary binds a prefix operator to an operand parsed at unary level,
// so -a + b is (-a) + b and !a == b is (!a) == b.
func (p *Parser) parseUnary() ast.Expression {
	entry, ok := LookupPrefix(p.curToken.Type)
	if !ok {
		return p.parsePrimary()
	}

	expression := &ast.UnaryExpr{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
	}
	p.nextToken()
	expression.Right = p.parseExpression(entry.Level)
	if expression.Right == nil {
		return nil
	}
	return expression
}

func (p *Parser) parsePrimary() ast.Expression {
	switch p.curToken.Type {
	case token.IDENT:
		if p.peekTokenIs(token.LPAREN) {
			if call := p.parseCall(); call != nil {
				return call
			}
			return nil
		}
		return p.parseIdentifier()
	case token.NUMBER:
		return p.parseNumber()
	case token.STRING:
		lit := p.curToken.Literal
		return &ast.String{Token: p.curToken, Value: lit[1 : len(lit)-1]}
	case token.TRUE, token.FALSE:
		return &ast.BoolLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
	case token.LPAREN:
		return p.parseGroupedExpression()
	}

	p.unexpected(p.curToken, ExpectExpression)
	return nil
}

func (p *Parser) parseIdentifier() *ast.Identifier {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

// parseNumber keeps literals beyond float64 range as ±Inf; the lexeme in
// Token is unchanged.
func (p *Parser) parseNumber() ast.Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		p.limitError(p.curToken, "could not parse %q as number", p.curToken.Literal)
		return nil
	}
	return &ast.Number{Token: p.curToken, Value: value}
}

// parseGroupedExpression drops the parentheses; only the inner
// expression is kept.
func (p *Parser) parseGroupedExpression() ast.Expression {
	open := p.curToken
	p.nextToken()

	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}

	if !p.expectClose(token.RPAREN, open) {
		return nil
	}

	return exp
}

func (p *Parser) parseCall() *ast.Call {
	call := &ast.Call{
		Function:  p.parseIdentifier(),
		Arguments: []ast.Expression{},
	}
	p.nextToken()
	call.Token = p.curToken

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		call.RParen = p.curToken
		return call
	}

	for {
		p.nextToken()
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil
		}
		call.Arguments = append(call.Arguments, arg)
		if len(call.Arguments) > p.opts.maxArgs {
			p.limitError(ast.Start(arg), "can't have more than %d arguments", p.opts.maxArgs)
			return nil
		}

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		call.Commas = append(call.Commas, p.curToken)
	}

	if !p.expectClose(token.RPAREN, call.Token, quote(token.COMMA)) {
		return nil
	}
	call.RParen = p.curToken

	return call
}
