// Package token SPDX-License-Identifier: Apache-2.0
package token

import "fmt"

// Tag is the grammar terminal a token was classified as.
type Tag string

const (
	WHITESPACE Tag = "ws"

	// Operators
	HASH      Tag = "#"
	AMPERSAND Tag = "&"
	BANG      Tag = "!"
	ASSIGN    Tag = ":="

	// Delimiters
	SEMICOLON Tag = ";"
	LBRACE    Tag = "{"
	RBRACE    Tag = "}"

	// Keywords
	WHILE Tag = "W"

	// Identifiers + literals
	DIGIT Tag = "d" // 0, 42, 1234567890
	IDENT Tag = "v" // x, foo_bar, _tmp
)

var descriptions = map[Tag]string{
	WHITESPACE: "whitespace",
	WHILE:      "'while'",
	DIGIT:      "digit literal",
	IDENT:      "identifier",
}

func (t Tag) String() string {
	return string(t)
}

// Describe returns the tag the way diagnostics name it.
func (t Tag) Describe() string {
	if d, ok := descriptions[t]; ok {
		return d
	}
	return "'" + string(t) + "'"
}

// Position is a location in the source text. Line and Column are 1-based.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is one lexeme together with its tag and the label of the rule that
// produced it.
type Token struct {
	Lexeme string
	Tag    Tag
	Label  string
	Pos    Position
}

// Describe names the token in diagnostics: literal-like tokens carry their
// text, punctuation is quoted.
func (t Token) Describe() string {
	switch t.Tag {
	case IDENT, DIGIT:
		return fmt.Sprintf("%s %q", t.Tag.Describe(), t.Lexeme)
	default:
		return t.Tag.Describe()
	}
}

func (t Token) String() string {
	return fmt.Sprintf("(%s, %s, %s)", t.Lexeme, t.Tag, t.Label)
}

// Tags returns the tag of every token, in order.
func Tags(tokens []Token) []Tag {
	tags := make([]Tag, len(tokens))
	for i, tok := range tokens {
		tags[i] = tok.Tag
	}
	return tags
}

// Labels returns the rule label of every token, in order.
func Labels(tokens []Token) []string {
	labels := make([]string, len(tokens))
	for i, tok := range tokens {
		labels[i] = tok.Label
	}
	return labels
}
