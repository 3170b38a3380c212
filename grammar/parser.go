package grammar

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
)

var parser = participle.MustBuild[Program](
	participle.Lexer(WhileLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// ParseString parses source with the reference grammar
func ParseString(name, source string) (*Program, error) {
	return parser.ParseString(name, source)
}

func ParseFile(path string) (*Program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseString(path, string(source))
}

// EBNF returns the reference grammar in participle's EBNF notation
func EBNF() string {
	return parser.String()
}
