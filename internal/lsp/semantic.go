package lsp

import (
	"whilec/token"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into the SemanticTokenTypes array
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into SemanticTokenTypes
	TokenModifiers int // bitmask
}

var tagTypes = map[token.Tag]string{
	token.WHILE:     "keyword",
	token.IDENT:     "variable",
	token.DIGIT:     "number",
	token.HASH:      "operator",
	token.AMPERSAND: "operator",
	token.BANG:      "operator",
	token.ASSIGN:    "operator",
}

// collectSemanticTokens classifies lexer tokens. Braces and separators carry
// no semantic type and are skipped. A variable directly followed by ":=" is
// marked as a declaration.
func collectSemanticTokens(tokens []token.Token) []SemanticToken {
	var result []SemanticToken

	for i, tok := range tokens {
		tokenType, ok := tagTypes[tok.Tag]
		if !ok {
			continue
		}

		declaration := 0
		if tok.Tag == token.IDENT && i+1 < len(tokens) && tokens[i+1].Tag == token.ASSIGN {
			declaration = 1
		}

		result = append(result, makeToken(tok.Pos, tok.Lexeme, tokenType, declaration)...)
	}

	return result
}

func makeToken(pos token.Position, value, tokenType string, declModifier int) []SemanticToken {
	if value == "" {
		return nil
	}

	return []SemanticToken{{
		Line:           uint32(pos.Line - 1),   // LSP uses 0-based line numbers
		StartChar:      uint32(pos.Column - 1), // LSP uses 0-based column numbers
		Length:         uint32(len(value)),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: declModifier << indexOf("declaration", SemanticTokenModifiers),
	}}
}

// encodeSemanticTokens applies the delta-line, delta-start compression of
// the LSP wire format
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32

	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevStart
		} else {
			deltaStart = tok.StartChar
		}

		data = append(data, deltaLine, deltaStart, tok.Length, uint32(tok.TokenType), uint32(tok.TokenModifiers))

		prevLine = tok.Line
		prevStart = tok.StartChar
	}

	return data
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
