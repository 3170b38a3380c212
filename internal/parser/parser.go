package parser

import (
	"fmt"

	"whilec/internal/ast"
	"whilec/internal/errors"
	"whilec/token"
)

// Parser is a recursive-descent recognizer over one token slice. It keeps a
// cursor into the slice and never moves it backwards.
type Parser struct {
	tokens  []token.Token
	current int
	end     token.Position
}

func NewParser(tokens []token.Token) *Parser {
	return &Parser{
		tokens: tokens,
		end:    endPosition(tokens),
	}
}

// Parse recognizes a whole program. On failure the error is a *ParseError
// carrying the chain of rules that were active.
func Parse(tokens []token.Token) (*ast.Program, error) {
	return NewParser(tokens).ParseProgram()
}

// ParseProgram parses a block and requires that no tokens remain.
func (p *Parser) ParseProgram() (program *ast.Program, err error) {
	defer wrapRule(RuleProgram, &err)

	block := &ast.Block{Pos: p.position()}
	if err := p.parseBlock(block); err != nil {
		return nil, err
	}

	if !p.isAtEnd() {
		tok := p.peek()
		return nil, &ParseError{
			Code:    errors.ErrorTrailingTokens,
			Found:   &tok,
			After:   p.previous(),
			Pos:     tok.Pos,
			Message: fmt.Sprintf("unexpected %s after end of program", tok.Describe()),
		}
	}

	return &ast.Program{Body: block}, nil
}

// parseBlock appends one operator to block and then decides from the next
// token whether the block continues:
//
//	";" then "}" or end   -> block ends, "}" is left for the caller
//	";" then anything     -> another block follows
//	"}"                   -> block ends
//	identifier            -> another block follows without a separator
//	end of input          -> block ends
func (p *Parser) parseBlock(block *ast.Block) (err error) {
	defer wrapRule(RuleBlock, &err)

	op, err := p.parseOperator()
	if err != nil {
		return err
	}
	block.Operators = append(block.Operators, op)

	if p.isAtEnd() {
		return nil
	}

	switch p.peek().Tag {
	case token.SEMICOLON:
		p.advance()
		if p.isAtEnd() || p.check(token.RBRACE) {
			return nil
		}
		return p.parseBlock(block)
	case token.RBRACE:
		return nil
	case token.IDENT:
		// Two operators may be juxtaposed when the second starts with a
		// variable: "x := 1 y := 2" is a valid block.
		return p.parseBlock(block)
	default:
		return p.unexpected(token.SEMICOLON, token.RBRACE, token.IDENT)
	}
}

func (p *Parser) parseOperator() (op ast.Operator, err error) {
	defer wrapRule(RuleOperator, &err)

	if p.isAtEnd() {
		return nil, p.unexpected(token.IDENT, token.WHILE, token.HASH, token.BANG, token.AMPERSAND)
	}

	start := p.peek()
	switch start.Tag {
	case token.IDENT:
		return p.parseAssign()
	case token.WHILE:
		return p.parseWhile()
	case token.HASH, token.BANG, token.AMPERSAND:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Pos: start.Pos, Expr: expr}, nil
	default:
		return nil, p.unexpected(token.IDENT, token.WHILE, token.HASH, token.BANG, token.AMPERSAND)
	}
}

// parseAssign parses: IDENTIFIER ":=" Expression
func (p *Parser) parseAssign() (*ast.AssignStmt, error) {
	name := p.advance()

	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &ast.AssignStmt{
		Pos:    name.Pos,
		Target: &ast.Ident{Pos: name.Pos, Name: name.Lexeme},
		Value:  value,
	}, nil
}

// parseWhile parses: WHILE IDENTIFIER "{" Block "}"
func (p *Parser) parseWhile() (*ast.WhileStmt, error) {
	keyword := p.advance()

	cond, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}

	body := &ast.Block{Pos: p.position()}
	if err := p.parseBlock(body); err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}

	return &ast.WhileStmt{
		Pos:  keyword.Pos,
		Cond: &ast.Ident{Pos: cond.Pos, Name: cond.Lexeme},
		Body: body,
	}, nil
}

// parseExpression parses: Factor (("#" | "!") Factor)*
func (p *Parser) parseExpression() (expr ast.Expr, err error) {
	defer wrapRule(RuleExpression, &err)

	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for p.checkAny(token.HASH, token.BANG) {
		op := p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Pos: left.NodePos(), Left: left, Op: op.Tag, Right: right}
	}

	return left, nil
}

// parseFactor parses: Primary ("&" Primary)*
func (p *Parser) parseFactor() (expr ast.Expr, err error) {
	defer wrapRule(RuleFactor, &err)

	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.check(token.AMPERSAND) {
		op := p.advance()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Pos: left.NodePos(), Left: left, Op: op.Tag, Right: right}
	}

	return left, nil
}

// parsePrimary parses: IDENTIFIER | DIGIT | "!" Expression
func (p *Parser) parsePrimary() (expr ast.Expr, err error) {
	defer wrapRule(RulePrimary, &err)

	if p.isAtEnd() {
		return nil, p.unexpected(token.IDENT, token.DIGIT, token.BANG)
	}

	tok := p.peek()
	switch tok.Tag {
	case token.IDENT:
		p.advance()
		return &ast.Ident{Pos: tok.Pos, Name: tok.Lexeme}, nil
	case token.DIGIT:
		p.advance()
		return &ast.NumberLit{Pos: tok.Pos, Value: tok.Lexeme}, nil
	case token.BANG:
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Pos: tok.Pos, Op: tok.Tag, Value: value}, nil
	default:
		return nil, p.unexpected(token.IDENT, token.DIGIT, token.BANG)
	}
}
