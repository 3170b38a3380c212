package compiler

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "whilec/internal/errors"
	"whilec/internal/parser"
	"whilec/token"
)

func TestCompileAccepts(t *testing.T) {
	sources := []string{
		"v := d;",
		"W v { v := d; }",
		"v := d; W v { v := d; }; v := d;",
		"v := d",
		"v := d v := d;",
		"while x {\r\n\tx := x # 1;\r\n}",
	}

	for _, source := range sources {
		report := Compile("test.w", source)
		assert.True(t, report.OK(), "source %q: %v", source, report.Failure)
		assert.NotNil(t, report.Program, "source %q", source)
		assert.NotEmpty(t, report.Tokens, "source %q", source)
	}
}

func TestSummary(t *testing.T) {
	report := Compile("test.w", "v := d;")
	require.True(t, report.OK())

	assert.Equal(t, []string{
		"compiled successfully",
		"lexemes used: L7, L10, L7, L8",
		"lexer result: v, :=, v, ;",
	}, report.Summary())

	report = Compile("test.w", "v := 1;")
	require.True(t, report.OK())
	assert.Equal(t, "lexemes used: L7, L10, L1, L8", report.Summary()[1])
	assert.Equal(t, "lexer result: v, :=, d, ;", report.Summary()[2])
}

func TestValidationRejectsBeforeLexing(t *testing.T) {
	for _, source := range []string{"x := (1)", "x := 1 + 2", "x = 1.", "привет", "x := 1 // note"} {
		report := Compile("test.w", source)
		require.False(t, report.OK(), "source %q", source)
		assert.Equal(t, StageValidation, report.Failure.Stage)
		assert.Nil(t, report.Tokens, "lexer must not run for %q", source)

		var verr *ValidationError
		assert.True(t, errors.As(report.Failure, &verr), "source %q", source)
	}
}

func TestValidationNamesFirstCharacter(t *testing.T) {
	err := Validate("ok := a (b)")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, '(', verr.Char)
	assert.Contains(t, verr.Error(), "'('")
}

func TestValidateAcceptsAlphabet(t *testing.T) {
	assert.NoError(t, Validate(""))
	assert.NoError(t, Validate("abcXYZ_0123456789 #&;!{}:=\r\n\t"))
}

func TestIllegalCharacterStage(t *testing.T) {
	report := Compile("test.w", "1v := d;")
	require.False(t, report.OK())
	assert.Equal(t, StageLexing, report.Failure.Stage)

	var illegal *parser.IllegalCharacterError
	require.True(t, errors.As(report.Failure, &illegal))
	assert.Equal(t, '1', illegal.Char)
	assert.Equal(t, 0, illegal.Pos.Offset)

	// ':' alone passes validation but no rule matches it
	report = Compile("test.w", "x : y")
	require.False(t, report.OK())
	assert.Equal(t, StageLexing, report.Failure.Stage)
	assert.Equal(t, cerrors.ErrorIllegalCharacter, report.Code())
}

func TestParseFailure(t *testing.T) {
	report := Compile("test.w", "v := ;")
	require.False(t, report.OK())
	assert.Equal(t, StageParsing, report.Failure.Stage)
	assert.Nil(t, report.Program)
	assert.Len(t, report.Tokens, 3, "tokens are kept when parsing fails")

	var pe *parser.ParseError
	require.True(t, errors.As(report.Failure, &pe))
	assert.Equal(t, parser.RulePrimary, pe.Rule())
	assert.True(t, strings.HasPrefix(report.Failure.Message, "error in program: error in block:"))
	assert.Contains(t, report.Failure.Error(), "parsing failed")
}

func TestDiagnostic(t *testing.T) {
	tests := []struct {
		source   string
		code     string
		line     int
		column   int
		contains string
	}{
		{"x := $", cerrors.ErrorInvalidCharacterSet, 0, 0, "'$'"},
		{"x := 1y", cerrors.ErrorIllegalCharacter, 1, 6, "'1'"},
		{"x := ;", cerrors.ErrorUnexpectedToken, 1, 6, "error in primary"},
		{"while x {\n  x := 1", cerrors.ErrorUnexpectedEnd, 2, 9, "expected '}'"},
		{"x := 1; }", cerrors.ErrorTrailingTokens, 1, 9, "after end of program"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			d, ok := Compile("test.w", tt.source).Diagnostic()
			require.True(t, ok)
			assert.Equal(t, tt.code, d.Code)
			assert.Equal(t, tt.line, d.Position.Line)
			assert.Equal(t, tt.column, d.Position.Column)
			assert.Contains(t, d.Message, tt.contains)
		})
	}
}

func TestDiagnosticOnSuccess(t *testing.T) {
	report := Compile("test.w", "x := 1")
	_, ok := report.Diagnostic()
	assert.False(t, ok)
	assert.Equal(t, "", report.Code())
}

func TestMisspelledKeywordSuggestion(t *testing.T) {
	d, ok := Compile("test.w", "whlie x { x := 1 }").Diagnostic()
	require.True(t, ok)
	require.NotEmpty(t, d.Suggestions)
	assert.Equal(t, "while", d.Suggestions[0].Replacement)
	assert.Equal(t, token.Position{Offset: 0, Line: 1, Column: 1}, d.Suggestions[0].Position)
}

func TestCompileIsRepeatable(t *testing.T) {
	first := Compile("a.w", "W v { v := d; }")
	second := Compile("b.w", "W v { v := d; }")
	assert.Equal(t, first.Tokens, second.Tokens)
	assert.Equal(t, first.Program.String(), second.Program.String())
}
