package errors

import (
	"fmt"
	"strings"
	"unicode"

	"whilec/token"
)

// keywords are the words a misspelled identifier is compared against
var keywords = []string{"while"}

// SyntaxErrorBuilder provides a fluent interface for creating front-end errors with suggestions
type SyntaxErrorBuilder struct {
	err CompilerError
}

// NewSyntaxError creates a new error builder
func NewSyntaxError(code, message string, pos token.Position) *SyntaxErrorBuilder {
	return &SyntaxErrorBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span
func (b *SyntaxErrorBuilder) WithLength(length int) *SyntaxErrorBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *SyntaxErrorBuilder) WithSuggestion(message string) *SyntaxErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *SyntaxErrorBuilder) WithReplacement(message, replacement string, pos token.Position, length int) *SyntaxErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
		Position:    pos,
		Length:      length,
	})
	return b
}

// WithNote adds a note to the error
func (b *SyntaxErrorBuilder) WithNote(note string) *SyntaxErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *SyntaxErrorBuilder) WithHelp(help string) *SyntaxErrorBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error
func (b *SyntaxErrorBuilder) Build() CompilerError {
	return b.err
}

// InvalidCharacterSet creates the validation error. It carries no position:
// the whole text is rejected.
func InvalidCharacterSet(message string) CompilerError {
	return NewSyntaxError(ErrorInvalidCharacterSet, message, token.Position{}).
		WithNote("allowed characters: letters, digits, '_', '#', '&', ';', '!', '{', '}', ':', '=' and whitespace").
		Build()
}

// IllegalCharacter creates a lexer error for a character no token rule matches
func IllegalCharacter(ch rune, pos token.Position) CompilerError {
	builder := NewSyntaxError(ErrorIllegalCharacter, fmt.Sprintf("illegal character %q", ch), pos)

	switch {
	case unicode.IsDigit(ch):
		builder = builder.WithSuggestion("separate the number from the following name").
			WithNote("digit literals end at a word boundary and identifiers cannot contain digits")
	case ch == ':':
		builder = builder.WithReplacement("assignment is written ':='", ":=", pos, 1)
	case ch == '=':
		builder = builder.WithReplacement("assignment is written ':='", ":=", pos, 1)
	}

	return builder.Build()
}

// UnexpectedToken creates a parser error. expected are the terminals the
// failing rule accepted, found is nil at end of input and after is the token
// consumed just before the failure, if any.
func UnexpectedToken(code, message string, pos token.Position, length int, expected []token.Tag, found, after *token.Token) CompilerError {
	builder := NewSyntaxError(code, message, pos).WithLength(length)

	// "whlie x {" fails as an assignment to whlie
	if after != nil && after.Tag == token.IDENT && found != nil && found.Tag == token.IDENT && containsTag(expected, token.ASSIGN) {
		if similar := findSimilarNames(after.Lexeme, keywords); len(similar) > 0 {
			builder = builder.WithReplacement(fmt.Sprintf("did you mean '%s'?", similar[0]), similar[0], after.Pos, len(after.Lexeme))
		}
	}

	switch code {
	case ErrorUnexpectedEnd:
		if containsTag(expected, token.RBRACE) {
			builder = builder.WithSuggestion("close the loop body with '}'")
		}
		builder = builder.WithHelp("the program ends in the middle of a construct")
	case ErrorTrailingTokens:
		builder = builder.WithHelp("a '}' closes a loop body; it cannot appear at the top level")
	default:
		if containsTag(expected, token.SEMICOLON) {
			builder = builder.WithSuggestion("separate operators with ';'")
		}
		if containsTag(expected, token.ASSIGN) {
			builder = builder.WithReplacement("an assignment needs ':='", ":=", pos, 0)
		}
	}

	return builder.Build()
}

func containsTag(tags []token.Tag, tag token.Tag) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// findSimilarNames returns candidates within a small edit distance of name
func findSimilarNames(name string, candidates []string) []string {
	var similar []string
	for _, candidate := range candidates {
		if candidate == name {
			continue
		}
		maxDistance := len(candidate) / 2
		if maxDistance < 1 {
			maxDistance = 1
		}
		if levenshteinDistance(strings.ToLower(name), candidate) <= maxDistance {
			similar = append(similar, candidate)
		}
	}
	return similar
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
