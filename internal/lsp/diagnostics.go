package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"whilec/internal/compiler"
)

var stageSources = map[compiler.Stage]string{
	compiler.StageValidation: "whilec-validation",
	compiler.StageLexing:     "whilec-lexer",
	compiler.StageParsing:    "whilec-parser",
}

// ConvertReport turns a compile report into LSP diagnostics. A successful
// report yields an empty, non-nil slice so that stale diagnostics are cleared.
func ConvertReport(report *compiler.Report) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	diag, failed := report.Diagnostic()
	if !failed {
		return diagnostics
	}

	// Validation rejects the whole text and has no position: mark the start
	line, column, length := 0, 0, 1
	if diag.Position.Line > 0 {
		line = diag.Position.Line - 1     // Convert to 0-based indexing
		column = diag.Position.Column - 1 // Convert to 0-based indexing
		length = max(1, diag.Length)
	}

	message := diag.Message
	if len(diag.Suggestions) > 0 {
		message += "\nhelp: " + diag.Suggestions[0].Message
	} else if diag.HelpText != "" {
		message += "\nhelp: " + diag.HelpText
	}

	diagnostics = append(diagnostics, protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: uint32(line), Character: uint32(column)},
			End:   protocol.Position{Line: uint32(line), Character: uint32(column + length)},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Code:     &protocol.IntegerOrString{Value: diag.Code},
		Source:   ptrString(stageSources[report.Failure.Stage]),
		Message:  message,
	})

	return diagnostics
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
