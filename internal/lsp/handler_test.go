package lsp_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"whilec/internal/errors"
	"whilec/internal/lsp"
)

type published struct {
	uri         string
	diagnostics []protocol.Diagnostic
}

func newContext(sink *[]published) *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if method != protocol.ServerTextDocumentPublishDiagnostics {
				return
			}
			p := params.(*protocol.PublishDiagnosticsParams)
			*sink = append(*sink, published{uri: p.URI, diagnostics: p.Diagnostics})
		},
	}
}

func openDocument(t *testing.T, handler *lsp.WhileHandler, ctx *glsp.Context, uri, text string) {
	t.Helper()
	err := handler.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "while", Version: 1, Text: text},
	})
	require.NoError(t, err)
}

func TestDidOpenPublishesDiagnostics(t *testing.T) {
	var sink []published
	handler := lsp.NewWhileHandler()
	ctx := newContext(&sink)

	openDocument(t, handler, ctx, "file:///tmp/bad.w", "x := 1;\nwhile x {\n  x := \n}")

	require.Len(t, sink, 1)
	assert.Equal(t, "file:///tmp/bad.w", sink[0].uri)
	require.Len(t, sink[0].diagnostics, 1)

	d := sink[0].diagnostics[0]
	assert.Equal(t, uint32(3), d.Range.Start.Line)
	assert.Equal(t, uint32(0), d.Range.Start.Character)
	assert.Equal(t, uint32(1), d.Range.End.Character)
	assert.Equal(t, "whilec-parser", *d.Source)
	assert.Equal(t, errors.ErrorUnexpectedToken, d.Code.Value)
	assert.Contains(t, d.Message, "error in primary")
}

func TestDidChangeClearsDiagnostics(t *testing.T) {
	var sink []published
	handler := lsp.NewWhileHandler()
	ctx := newContext(&sink)
	uri := "file:///tmp/fix.w"

	openDocument(t, handler, ctx, uri, "x := ")

	err := handler.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "x := 1"}},
	})
	require.NoError(t, err)

	require.Len(t, sink, 2)
	assert.Len(t, sink[0].diagnostics, 1)
	assert.NotNil(t, sink[1].diagnostics)
	assert.Empty(t, sink[1].diagnostics)
}

func TestValidationDiagnosticHasNoPosition(t *testing.T) {
	var sink []published
	handler := lsp.NewWhileHandler()

	openDocument(t, handler, newContext(&sink), "file:///tmp/v.w", "x := 1\ny := (2)")

	require.Len(t, sink[0].diagnostics, 1)
	d := sink[0].diagnostics[0]
	assert.Equal(t, uint32(0), d.Range.Start.Line)
	assert.Equal(t, uint32(0), d.Range.Start.Character)
	assert.Equal(t, "whilec-validation", *d.Source)
}

func TestCompletion(t *testing.T) {
	handler := lsp.NewWhileHandler()
	var sink []published
	ctx := newContext(&sink)
	uri := "file:///tmp/c.w"
	openDocument(t, handler, ctx, uri, "b := 1; a := b; while a { a := 0 }")

	result, err := handler.TextDocumentCompletion(ctx, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		},
	})
	require.NoError(t, err)

	list, ok := result.(*protocol.CompletionList)
	require.True(t, ok)
	var labels []string
	for _, item := range list.Items {
		labels = append(labels, item.Label)
	}
	assert.Equal(t, []string{"while", "a", "b"}, labels)
}

func TestDidCloseForgetsDocument(t *testing.T) {
	var sink []published
	handler := lsp.NewWhileHandler()
	ctx := newContext(&sink)
	uri := "file:///nonexistent/dir/closed.w"

	openDocument(t, handler, ctx, uri, "x := 1")
	require.NoError(t, handler.TextDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))

	// Closed and not on disk
	_, err := handler.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	assert.Error(t, err)
}

func TestTextDocumentSemanticTokensFull(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loop.w")
	source := "x := 1;\nwhile x {\n  x := !x # 2\n}"
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))

	handler := lsp.NewWhileHandler()
	uri := "file://" + filepath.ToSlash(path)

	var sink []published
	tokens, err := handler.TextDocumentSemanticTokensFull(newContext(&sink), &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err, "TextDocumentSemanticTokensFull returned error")
	require.NotNil(t, tokens)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err, "Failed to decode semantic tokens")
	require.Len(t, decoded, 11)

	assertToken(t, &decoded[0], 1, 1, 1, "variable", []string{"declaration"})
	assertToken(t, &decoded[1], 1, 3, 2, "operator", nil)
	assertToken(t, &decoded[2], 1, 6, 1, "number", nil)
	assertToken(t, &decoded[3], 2, 1, 5, "keyword", nil)
	assertToken(t, &decoded[4], 2, 7, 1, "variable", nil)
	assertToken(t, &decoded[5], 3, 3, 1, "variable", []string{"declaration"})
	assertToken(t, &decoded[6], 3, 5, 2, "operator", nil)
	assertToken(t, &decoded[7], 3, 8, 1, "operator", nil)
	assertToken(t, &decoded[8], 3, 9, 1, "variable", nil)
	assertToken(t, &decoded[9], 3, 11, 1, "operator", nil)
	assertToken(t, &decoded[10], 3, 13, 1, "number", nil)

	// Reading from disk also publishes diagnostics
	require.Len(t, sink, 1)
	assert.Empty(t, sink[0].diagnostics)
}

type DecodedToken struct {
	Index     int
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]
		length := raw[i+2]
		tokenTypeIdx := raw[i+3]
		tokenModMask := raw[i+4]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if tokenModMask&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Index:     i / 5,
			Line:      line + 1, // LSP uses 0-based indexing
			Char:      char + 1, // LSP uses 0-based indexing
			Length:    length,
			Type:      lsp.SemanticTokenTypes[tokenTypeIdx],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, token *DecodedToken, expectedLine, expectedChar, expectedLength uint32, expectedType string, expectedModifiers []string) {
	require.Equal(t, expectedLine, token.Line, "line mismatch (expected line %d)", expectedLine)
	require.Equal(t, expectedChar, token.Char, "char mismatch (expected char %d)", expectedChar)
	require.Equal(t, expectedLength, token.Length, "length mismatch")
	require.Equal(t, expectedType, token.Type, "type mismatch")
	require.ElementsMatch(t, expectedModifiers, token.Modifiers, "modifiers mismatch")
}
