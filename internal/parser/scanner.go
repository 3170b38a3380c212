package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"whilec/grammar"
	"whilec/token"
)

// Scan splits source into tokens using the rule table in grammar.Rules.
// Whitespace is dropped. Scanning stops at the first position no rule
// matches and returns an *IllegalCharacterError for it.
func Scan(name, source string) ([]token.Token, error) {
	lex, err := grammar.WhileLexer.Lex(name, strings.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("failed to start lexer: %w", err)
	}

	var tokens []token.Token
	cursor := 0
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, illegalCharacterAt(source, cursor)
		}
		if tok.EOF() {
			break
		}

		rule, ok := grammar.RuleFor(tok.Type)
		if !ok {
			return nil, illegalCharacterAt(source, tok.Pos.Offset)
		}
		cursor = tok.Pos.Offset + len(tok.Value)

		if rule.Tag == token.WHITESPACE {
			continue
		}

		tokens = append(tokens, token.Token{
			Lexeme: tok.Value,
			Tag:    rule.Tag,
			Label:  rule.Label,
			Pos: token.Position{
				Offset: tok.Pos.Offset,
				Line:   tok.Pos.Line,
				Column: tok.Pos.Column,
			},
		})
	}

	return tokens, nil
}

func illegalCharacterAt(source string, offset int) *IllegalCharacterError {
	ch, _ := utf8.DecodeRuneInString(source[offset:])
	return &IllegalCharacterError{
		Char: ch,
		Pos:  PositionAt(source, offset),
	}
}

// PositionAt converts a byte offset into a line/column position.
func PositionAt(source string, offset int) token.Position {
	if offset > len(source) {
		offset = len(source)
	}
	line, column := 1, 1
	for _, c := range source[:offset] {
		if c == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return token.Position{Offset: offset, Line: line, Column: column}
}
