package grammar

import (
	"strings"
	"testing"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whilec/token"
)

func lexTypes(t *testing.T, def *lexer.StatefulDefinition, source string) []string {
	t.Helper()
	lex, err := def.Lex("test.w", strings.NewReader(source))
	require.NoError(t, err)

	names := make(map[lexer.TokenType]string)
	for name, tt := range def.Symbols() {
		names[tt] = name
	}

	var types []string
	for {
		tok, err := lex.Next()
		require.NoError(t, err)
		if tok.EOF() {
			return types
		}
		if names[tok.Type] != "Whitespace" {
			types = append(types, names[tok.Type])
		}
	}
}

func TestRuleTable(t *testing.T) {
	labels := make(map[string]bool)
	for _, r := range Rules {
		assert.False(t, labels[r.Label], "label %s used twice", r.Label)
		labels[r.Label] = true

		tt, ok := WhileLexer.Symbols()[r.Name]
		require.True(t, ok, "rule %s missing from lexer", r.Name)
		got, ok := RuleFor(tt)
		require.True(t, ok)
		assert.Equal(t, r, got)
	}
	assert.Len(t, labels, 11)
	assert.Equal(t, token.WHITESPACE, Rules[0].Tag)
}

func TestDeclarationOrderDecides(t *testing.T) {
	assert.Equal(t, []string{"While", "Ident", "Ident"}, lexTypes(t, WhileLexer, "while whilex x"))

	// The same rules with Ident ahead of While never produce a keyword
	reordered := make([]lexer.Rule, 0, len(Rules))
	for _, r := range Rules {
		if r.Name != "While" {
			reordered = append(reordered, lexer.Rule{Name: r.Name, Pattern: r.Pattern})
		}
	}
	reordered = append(reordered, lexer.Rule{Name: "While", Pattern: `(?:while|W)\b`})
	def := lexer.MustStateful(lexer.Rules{"Root": reordered})

	assert.Equal(t, []string{"Ident", "Ident", "Ident"}, lexTypes(t, def, "while whilex x"))
}

func TestUnknownTokenType(t *testing.T) {
	_, ok := RuleFor(lexer.TokenType(12345))
	assert.False(t, ok)
}
