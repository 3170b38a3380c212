package parser

import (
	"errors"
	"strings"
	"testing"

	"whilec/token"
)

func scan(t *testing.T, input string) []token.Token {
	t.Helper()
	tokens, err := Scan("test.w", input)
	if err != nil {
		t.Fatalf("unexpected scan error for %q: %v", input, err)
	}
	return tokens
}

func assertTags(t *testing.T, tokens []token.Token, expected []token.Tag) {
	t.Helper()
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(tokens), tokens)
	}
	for i, exp := range expected {
		if tokens[i].Tag != exp {
			t.Errorf("token %d: expected tag %s, got %s", i, exp, tokens[i].Tag)
		}
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	input := "while W whilex Width _tmp foo_bar while_ x"
	expected := []token.Tag{
		token.WHILE, token.WHILE, token.IDENT, token.IDENT,
		token.IDENT, token.IDENT, token.IDENT, token.IDENT,
	}
	assertTags(t, scan(t, input), expected)
}

func TestOperatorsAndBrackets(t *testing.T) {
	input := `# & ; ! { := } `
	expected := []token.Tag{
		token.HASH, token.AMPERSAND, token.SEMICOLON, token.BANG,
		token.LBRACE, token.ASSIGN, token.RBRACE,
	}
	expectedLabels := []string{"L3", "L6", "L8", "L5", "L9", "L10", "L11"}

	tokens := scan(t, input)
	assertTags(t, tokens, expected)
	for i, label := range expectedLabels {
		if tokens[i].Label != label {
			t.Errorf("token %d: expected label %s, got %s", i, label, tokens[i].Label)
		}
	}
}

func TestDigits(t *testing.T) {
	tokens := scan(t, "0 42 1234567890")
	assertTags(t, tokens, []token.Tag{token.DIGIT, token.DIGIT, token.DIGIT})
	if tokens[2].Lexeme != "1234567890" || tokens[2].Label != "L1" {
		t.Errorf("unexpected digit token %v", tokens[2])
	}
}

func TestAssignmentLabels(t *testing.T) {
	tokens := scan(t, "v := 1;")
	assertTags(t, tokens, []token.Tag{token.IDENT, token.ASSIGN, token.DIGIT, token.SEMICOLON})

	got := strings.Join(token.Labels(tokens), ", ")
	if got != "L7, L10, L1, L8" {
		t.Errorf("expected labels L7, L10, L1, L8, got %s", got)
	}
}

func TestNoSeparatorBetweenTokens(t *testing.T) {
	tokens := scan(t, "x:=a#b&!c;W{}")
	assertTags(t, tokens, []token.Tag{
		token.IDENT, token.ASSIGN, token.IDENT, token.HASH, token.IDENT, token.AMPERSAND,
		token.BANG, token.IDENT, token.SEMICOLON, token.WHILE, token.LBRACE, token.RBRACE,
	})
}

func TestEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t\r\n"} {
		tokens, err := Scan("test.w", input)
		if err != nil {
			t.Errorf("expected no error for %q, got %v", input, err)
		}
		if len(tokens) != 0 {
			t.Errorf("expected no tokens for %q, got %v", input, tokens)
		}
	}
}

func TestIllegalCharacter(t *testing.T) {
	tests := []struct {
		input  string
		char   rune
		offset int
		line   int
		column int
	}{
		{"1v := d;", '1', 0, 1, 1},
		{"x := 2y", '2', 5, 1, 6},
		{"x := a$", '$', 6, 1, 7},
		{"x := 1;\ny := (2)", '(', 13, 2, 6},
		{":x", ':', 0, 1, 1},
	}

	for _, tt := range tests {
		_, err := Scan("test.w", tt.input)
		var illegal *IllegalCharacterError
		if !errors.As(err, &illegal) {
			t.Errorf("%q: expected IllegalCharacterError, got %v", tt.input, err)
			continue
		}
		if illegal.Char != tt.char {
			t.Errorf("%q: expected char %q, got %q", tt.input, tt.char, illegal.Char)
		}
		if illegal.Pos.Offset != tt.offset || illegal.Pos.Line != tt.line || illegal.Pos.Column != tt.column {
			t.Errorf("%q: unexpected position %+v", tt.input, illegal.Pos)
		}
		if !strings.Contains(err.Error(), string(tt.char)) {
			t.Errorf("%q: message %q does not name the character", tt.input, err.Error())
		}
	}
}

func TestTokenPositions(t *testing.T) {
	input := "x := 1;\nwhile x {\n  x := !x\n}"
	tokens := scan(t, input)

	expected := []struct {
		tag    token.Tag
		lexeme string
		line   int
		column int
	}{
		{token.IDENT, "x", 1, 1},
		{token.ASSIGN, ":=", 1, 3},
		{token.DIGIT, "1", 1, 6},
		{token.SEMICOLON, ";", 1, 7},
		{token.WHILE, "while", 2, 1},
		{token.IDENT, "x", 2, 7},
		{token.LBRACE, "{", 2, 9},
		{token.IDENT, "x", 3, 3},
		{token.ASSIGN, ":=", 3, 5},
		{token.BANG, "!", 3, 8},
		{token.IDENT, "x", 3, 9},
		{token.RBRACE, "}", 4, 1},
	}

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, exp := range expected {
		tok := tokens[i]
		if tok.Tag != exp.tag || tok.Lexeme != exp.lexeme {
			t.Errorf("token %d: expected %s %q, got %s %q", i, exp.tag, exp.lexeme, tok.Tag, tok.Lexeme)
		}
		if tok.Pos.Line != exp.line || tok.Pos.Column != exp.column {
			t.Errorf("token %d: expected %d:%d, got %s", i, exp.line, exp.column, tok.Pos)
		}
	}

	// Check that offsets strictly increase
	for i := 1; i < len(tokens); i++ {
		if tokens[i].Pos.Offset <= tokens[i-1].Pos.Offset {
			t.Errorf("token %d: expected offset to increase, got %d after %d",
				i, tokens[i].Pos.Offset, tokens[i-1].Pos.Offset)
		}
	}
}

func TestRescanningLexemesKeepsTags(t *testing.T) {
	inputs := []string{
		"v := 1;",
		"while x { x := !x # 2 & y; };",
		"W v { v := d } v := d",
		"a:=b&c#d!e",
	}

	for _, input := range inputs {
		first := scan(t, input)
		lexemes := make([]string, len(first))
		for i, tok := range first {
			lexemes[i] = tok.Lexeme
		}
		second := scan(t, strings.Join(lexemes, " "))
		assertTags(t, second, token.Tags(first))
	}
}

func TestPositionAt(t *testing.T) {
	source := "ab\ncd"
	pos := PositionAt(source, 4)
	if pos.Line != 2 || pos.Column != 2 || pos.Offset != 4 {
		t.Errorf("unexpected position %+v", pos)
	}

	end := PositionAt(source, 100)
	if end.Offset != len(source) {
		t.Errorf("expected offset clamped to %d, got %d", len(source), end.Offset)
	}
}
