package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"whilec/internal/compiler"
	"whilec/token"
)

var log = commonlog.GetLogger("whilec.lsp")

// Define the set of supported semantic token types (as listed in the server capabilities)
var SemanticTokenTypes = []string{
	"keyword",
	"variable",
	"number",
	"operator",
}

// Define the set of supported semantic token modifiers
var SemanticTokenModifiers = []string{
	"declaration",
}

// WhileHandler implements the LSP server handlers for the while language
type WhileHandler struct {
	mu      sync.RWMutex
	content map[string]string
	reports map[string]*compiler.Report
}

// NewWhileHandler creates and returns a new WhileHandler instance
func NewWhileHandler() *WhileHandler {
	return &WhileHandler{
		content: make(map[string]string),
		reports: make(map[string]*compiler.Report),
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *WhileHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true), // notify on open/close events
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true), // support full-document semantic token requests
			},
		},
	}, nil
}

// Initialized is called after the client receives the server's capabilities and completes initialization
func (h *WhileHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("LSP Initialized")
	return nil
}

// Shutdown handles the LSP shutdown request
func (h *WhileHandler) Shutdown(ctx *glsp.Context) error {
	log.Info("LSP Shutdown")
	return nil
}

// SetTrace accepts trace level changes; tracing goes through commonlog
func (h *WhileHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	log.Debugf("trace set to %s", params.Value)
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor
func (h *WhileHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Infof("Opened file: %s", params.TextDocument.URI)

	report, err := h.update(params.TextDocument.URI, params.TextDocument.Text)
	if err != nil {
		return err
	}

	sendDiagnosticNotification(ctx, params.TextDocument.URI, ConvertReport(report))
	return nil
}

// TextDocumentDidClose handles file close notifications from the editor
func (h *WhileHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Infof("Closed file: %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, path)
	delete(h.reports, path)

	return nil
}

// TextDocumentDidChange handles file change notifications from the editor
func (h *WhileHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Debugf("Changed file: %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.RLock()
	text := h.content[path]
	h.mu.RUnlock()

	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text = c.Text
				continue
			}
			start, end := c.Range.IndexesIn(text)
			text = text[:start] + c.Text + text[end:]
		default:
			return fmt.Errorf("unsupported content change %T", change)
		}
	}

	report, err := h.update(params.TextDocument.URI, text)
	if err != nil {
		return err
	}

	sendDiagnosticNotification(ctx, params.TextDocument.URI, ConvertReport(report))
	return nil
}

// TextDocumentCompletion offers the keyword and every variable of the document
func (h *WhileHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	items := []protocol.CompletionItem{{
		Label:  "while",
		Kind:   ptrCompletionKind(protocol.CompletionItemKindKeyword),
		Detail: ptrString("while v { ... }"),
	}}

	report, err := h.getOrUpdateReport(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	for _, name := range variables(report.Tokens) {
		items = append(items, protocol.CompletionItem{
			Label: name,
			Kind:  ptrCompletionKind(protocol.CompletionItemKindVariable),
		})
	}

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *WhileHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	log.Debugf("TextDocumentSemanticTokensFull called for: %s", params.TextDocument.URI)

	report, err := h.getOrUpdateReport(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	return &protocol.SemanticTokens{
		Data: encodeSemanticTokens(collectSemanticTokens(report.Tokens)),
	}, nil
}

// getOrUpdateReport returns the report of an open document, compiling the
// file from disk when the editor never opened it
func (h *WhileHandler) getOrUpdateReport(ctx *glsp.Context, rawURI protocol.DocumentUri) (*compiler.Report, error) {
	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}

	h.mu.RLock()
	report, ok := h.reports[path]
	h.mu.RUnlock()
	if ok {
		return report, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	report, err = h.update(rawURI, string(content))
	if err != nil {
		return nil, err
	}

	sendDiagnosticNotification(ctx, rawURI, ConvertReport(report))
	return report, nil
}

func (h *WhileHandler) update(rawURI protocol.DocumentUri, text string) (*compiler.Report, error) {
	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}

	report := compiler.Compile(filepath.Base(path), text)

	h.mu.Lock()
	h.content[path] = text
	h.reports[path] = report
	h.mu.Unlock()

	return report, nil
}

func variables(tokens []token.Token) []string {
	seen := make(map[string]bool)
	var names []string
	for _, tok := range tokens {
		if tok.Tag == token.IDENT && !seen[tok.Lexeme] {
			seen[tok.Lexeme] = true
			names = append(names, tok.Lexeme)
		}
	}
	sort.Strings(names)
	return names
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) -> C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	// Normalize to platform-specific separators
	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}

	log.Debugf("Sending %d diagnostics for %s", len(diagnostics), uri)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}

func ptrCompletionKind(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}
