package parser

import "whilec/token"

func (p *Parser) advance() token.Token {
	tok := p.tokens[p.current]
	p.current++
	return tok
}

func (p *Parser) check(tag token.Tag) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Tag == tag
}

func (p *Parser) checkAny(tags ...token.Tag) bool {
	for _, tag := range tags {
		if p.check(tag) {
			return true
		}
	}
	return false
}

func (p *Parser) expect(tag token.Tag) (token.Token, error) {
	if p.check(tag) {
		return p.advance(), nil
	}
	return token.Token{}, p.unexpected(tag)
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.tokens)
}

// position is where the next token starts, or just past the last one.
func (p *Parser) position() token.Position {
	if p.isAtEnd() {
		return p.end
	}
	return p.peek().Pos
}

// unexpected reports the current token (or end of input) against the
// terminals the caller would have accepted.
func (p *Parser) unexpected(expected ...token.Tag) *ParseError {
	after := p.previous()
	if p.isAtEnd() {
		return unexpectedError(nil, after, p.end, expected...)
	}
	tok := p.peek()
	return unexpectedError(&tok, after, tok.Pos, expected...)
}

func (p *Parser) previous() *token.Token {
	if p.current == 0 {
		return nil
	}
	tok := p.tokens[p.current-1]
	return &tok
}

func endPosition(tokens []token.Token) token.Position {
	if len(tokens) == 0 {
		return token.Position{Line: 1, Column: 1}
	}
	last := tokens[len(tokens)-1]
	return token.Position{
		Offset: last.Pos.Offset + len(last.Lexeme),
		Line:   last.Pos.Line,
		Column: last.Pos.Column + len(last.Lexeme),
	}
}
