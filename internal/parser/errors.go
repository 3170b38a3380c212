package parser

import (
	"fmt"
	"strings"

	"whilec/internal/errors"
	"whilec/token"
)

// IllegalCharacterError is returned by Scan when no rule of the token table
// matches at the cursor.
type IllegalCharacterError struct {
	Char rune
	Pos  token.Position
}

func (e *IllegalCharacterError) Error() string {
	return fmt.Sprintf("illegal character %q at %s", e.Char, e.Pos)
}

// ParseError describes the first grammar expectation that was not met.
// Rules lists the enclosing grammar rules, outermost first; each rule on the
// failing call path adds itself while the error propagates.
type ParseError struct {
	Rules    []string
	Code     string
	Expected []token.Tag
	Found    *token.Token // nil at end of input
	After    *token.Token // last consumed token, nil at the start
	Pos      token.Position
	Message  string // overrides the expected/found detail when set
}

func (e *ParseError) Error() string {
	var b strings.Builder
	for _, rule := range e.Rules {
		b.WriteString("error in ")
		b.WriteString(rule)
		b.WriteString(": ")
	}
	b.WriteString(e.Detail())
	return b.String()
}

// Detail is the innermost message without the rule chain.
func (e *ParseError) Detail() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("expected %s but found %s", describeTags(e.Expected), e.found())
}

// Rule returns the innermost rule the error was raised in.
func (e *ParseError) Rule() string {
	if len(e.Rules) == 0 {
		return ""
	}
	return e.Rules[len(e.Rules)-1]
}

// Length is the width of the offending token, at least one column.
func (e *ParseError) Length() int {
	if e.Found == nil || len(e.Found.Lexeme) == 0 {
		return 1
	}
	return len(e.Found.Lexeme)
}

func (e *ParseError) found() string {
	if e.Found == nil {
		return "end of input"
	}
	return e.Found.Describe()
}

// wrapRule adds rule as the next enclosing context of a failing rule.
// Intended for use in a defer with the rule's named error result.
func wrapRule(rule string, err *error) {
	if *err == nil {
		return
	}
	if pe, ok := (*err).(*ParseError); ok {
		pe.Rules = append([]string{rule}, pe.Rules...)
		return
	}
	*err = fmt.Errorf("error in %s: %w", rule, *err)
}

func describeTags(tags []token.Tag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Describe()
	}
	switch len(names) {
	case 0:
		return "nothing"
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
	}
}

func unexpectedError(found, after *token.Token, pos token.Position, expected ...token.Tag) *ParseError {
	code := errors.ErrorUnexpectedToken
	if found == nil {
		code = errors.ErrorUnexpectedEnd
	}
	return &ParseError{
		Code:     code,
		Expected: expected,
		Found:    found,
		After:    after,
		Pos:      pos,
	}
}
