package grammar

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"

	"whilec/token"
)

// Rule is one row of the token table.
type Rule struct {
	Name    string // symbol name inside the participle definition
	Pattern string
	Tag     token.Tag
	Label   string
}

// Rules is the lexical grammar. Order matters: the first rule matching at the
// cursor wins, regardless of match length, so keywords must precede Ident.
var Rules = []Rule{
	{"Whitespace", `[ \t\r\n]+`, token.WHITESPACE, "L4"},
	{"Hash", `#`, token.HASH, "L3"},
	{"Ampersand", `&`, token.AMPERSAND, "L6"},
	{"Semicolon", `;`, token.SEMICOLON, "L8"},
	{"Bang", `!`, token.BANG, "L5"},

	// Keywords and identifiers (order matters)
	{"While", `(?:while|W)\b`, token.WHILE, "L2"},

	// A digit run glued to a letter is not a literal.
	{"Digit", `[0-9]+\b`, token.DIGIT, "L1"},

	// Punctuation
	{"LeftBrace", `\{`, token.LBRACE, "L9"},
	{"Assign", `:=`, token.ASSIGN, "L10"},
	{"RightBrace", `\}`, token.RBRACE, "L11"},

	{"Ident", `[_A-Za-z][A-Za-z_]*`, token.IDENT, "L7"},
}

var WhileLexer = lexer.MustStateful(lexer.Rules{
	"Root": rootRules(),
})

var rulesByType = indexRules()

func rootRules() []lexer.Rule {
	rules := make([]lexer.Rule, 0, len(Rules))
	for _, r := range Rules {
		rules = append(rules, lexer.Rule{Name: r.Name, Pattern: r.Pattern})
	}
	return rules
}

func indexRules() map[lexer.TokenType]Rule {
	symbols := WhileLexer.Symbols()
	index := make(map[lexer.TokenType]Rule, len(Rules))
	for _, r := range Rules {
		tt, ok := symbols[r.Name]
		if !ok {
			panic(fmt.Errorf("lexer symbol %q missing from definition", r.Name))
		}
		index[tt] = r
	}
	return index
}

// RuleFor returns the table row that produced a participle token type.
func RuleFor(tt lexer.TokenType) (Rule, bool) {
	r, ok := rulesByType[tt]
	return r, ok
}
