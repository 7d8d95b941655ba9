package parser

import (
	"github.com/thiremani/lox/ast"
	"github.com/thiremani/lox/token"
)

// parseStatement dispatches on curToken. On return curToken is the last
// token of the statement.
func (p *Parser) parseStatement() ast.Statement {
	ok := p.enter()
	defer p.leave()
	if !ok {
		return nil
	}

	switch p.curToken.Type {
	case token.PRINT:
		return p.parsePrintStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.IF:
		return p.parseIfStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.LBRACE:
		if block := p.parseBlock(); block != nil {
			return block
		}
		return nil
	}
	return p.parseExpressionStmt()
}

func (p *Parser) parsePrintStmt() ast.Statement {
	stmt := &ast.PrintStmt{Token: p.curToken}

	p.nextToken()
	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil || !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	stmt.Semi = p.curToken

	return stmt
}

func (p *Parser) parseWhileStmt() ast.Statement {
	stmt := &ast.WhileStmt{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	stmt.LParen = p.curToken

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil || !p.expectClose(token.RPAREN, stmt.LParen) {
		return nil
	}
	stmt.RParen = p.curToken

	p.nextToken()
	stmt.Body = p.parseStatement()
	if stmt.Body == nil {
		return nil
	}

	return stmt
}

// parseForStmt parses 'for' '(' [init] ';' [cond] ';' [update] ')' body.
// Each clause is optional.
func (p *Parser) parseForStmt() ast.Statement {
	stmt := &ast.ForStmt{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	stmt.LParen = p.curToken

	p.nextToken()
	switch p.curToken.Type {
	case token.SEMICOLON:
	case token.VAR:
		init := p.parseVarDecl()
		if init == nil || !p.expectPeek(token.SEMICOLON) {
			return nil
		}
		stmt.Init = init
	default:
		init := p.parseExpression(LOWEST)
		if init == nil || !p.expectPeek(token.SEMICOLON) {
			return nil
		}
		stmt.Init = init
	}
	stmt.InitSemi = p.curToken

	p.nextToken()
	if !p.curTokenIs(token.SEMICOLON) {
		stmt.Condition = p.parseExpression(LOWEST)
		if stmt.Condition == nil || !p.expectPeek(token.SEMICOLON) {
			return nil
		}
	}
	stmt.CondSemi = p.curToken

	p.nextToken()
	if !p.curTokenIs(token.RPAREN) {
		stmt.Update = p.parseExpression(LOWEST)
		if stmt.Update == nil || !p.expectClose(token.RPAREN, stmt.LParen) {
			return nil
		}
	}
	stmt.RParen = p.curToken

	p.nextToken()
	stmt.Body = p.parseStatement()
	if stmt.Body == nil {
		return nil
	}

	return stmt
}

// parseIfStmt binds a following 'else' to this if before returning, so an
// else always belongs to the nearest unmatched if.
func (p *Parser) parseIfStmt() ast.Statement {
	stmt := &ast.IfStmt{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	stmt.LParen = p.curToken

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil || !p.expectClose(token.RPAREN, stmt.LParen) {
		return nil
	}
	stmt.RParen = p.curToken

	p.nextToken()
	stmt.Consequence = p.parseStatement()
	if stmt.Consequence == nil {
		return nil
	}

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		stmt.ElseToken = p.curToken
		p.nextToken()
		stmt.Alternative = p.parseStatement()
		if stmt.Alternative == nil {
			return nil
		}
	}

	return stmt
}

func (p *Parser) parseReturnStmt() ast.Statement {
	stmt := &ast.ReturnStmt{Token: p.curToken}

	if !p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
		if stmt.Value == nil {
			return nil
		}
	}

	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	stmt.Semi = p.curToken

	return stmt
}

func (p *Parser) parseExpressionStmt() ast.Statement {
	exp := p.parseExpression(LOWEST)
	if exp == nil || !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return &ast.ExprStmt{Expression: exp, Semi: p.curToken}
}
