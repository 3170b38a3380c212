package parser

import (
	"whilec/internal/ast"
	"whilec/token"
)

// ParseSource scans and parses source in one step. The returned tokens are
// valid whenever scanning succeeded, even if parsing failed.
func ParseSource(name string, source string) (*ast.Program, []token.Token, error) {
	tokens, err := Scan(name, source)
	if err != nil {
		return nil, nil, err
	}

	program, err := Parse(tokens)
	return program, tokens, err
}
