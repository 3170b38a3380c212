package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"whilec/internal/compiler"
	"whilec/internal/errors"
)

// Format selects the document Render writes
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Options controls rendering
type Options struct {
	Format Format
	Color  bool
}

// Position is a 1-based source location
type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// TokenDoc is one token in a machine-readable report
type TokenDoc struct {
	Lexeme string `json:"lexeme" yaml:"lexeme"`
	Tag    string `json:"tag" yaml:"tag"`
	Label  string `json:"label" yaml:"label"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
}

// Document is the machine-readable form of a compiler.Report
type Document struct {
	Name     string     `json:"name" yaml:"name"`
	OK       bool       `json:"ok" yaml:"ok"`
	Stage    string     `json:"stage,omitempty" yaml:"stage,omitempty"`
	Code     string     `json:"code,omitempty" yaml:"code,omitempty"`
	Message  string     `json:"message,omitempty" yaml:"message,omitempty"`
	Position *Position  `json:"position,omitempty" yaml:"position,omitempty"`
	Summary  []string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Tokens   []TokenDoc `json:"tokens" yaml:"tokens"`
}

// NewDocument converts a report
func NewDocument(r *compiler.Report) Document {
	doc := Document{
		Name:   r.Name,
		OK:     r.OK(),
		Tokens: make([]TokenDoc, 0, len(r.Tokens)),
	}

	for _, tok := range r.Tokens {
		doc.Tokens = append(doc.Tokens, TokenDoc{
			Lexeme: tok.Lexeme,
			Tag:    tok.Tag.String(),
			Label:  tok.Label,
			Line:   tok.Pos.Line,
			Column: tok.Pos.Column,
		})
	}

	if diag, failed := r.Diagnostic(); failed {
		doc.Stage = string(r.Failure.Stage)
		doc.Code = diag.Code
		doc.Message = r.Failure.Message
		if diag.Position.Line > 0 {
			doc.Position = &Position{Line: diag.Position.Line, Column: diag.Position.Column}
		}
	} else {
		doc.Summary = r.Summary()
	}

	return doc
}

// Render writes r to w in the requested format
func Render(w io.Writer, r *compiler.Report, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewDocument(r))
	case FormatYAML:
		data, err := yaml.Marshal(NewDocument(r))
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatText, "":
		return renderText(w, r, opts.Color)
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

func renderText(w io.Writer, r *compiler.Report, useColor bool) error {
	if !useColor {
		restore := color.NoColor
		color.NoColor = true
		defer func() { color.NoColor = restore }()
	}

	diag, failed := r.Diagnostic()
	if failed {
		_, err := io.WriteString(w, errors.NewErrorReporter(r.Name, r.Source).FormatError(diag))
		return err
	}

	summary := r.Summary()
	green := color.New(color.FgGreen, color.Bold).SprintFunc()

	var b strings.Builder
	b.WriteString(green(summary[0]))
	b.WriteString("\n")
	for _, line := range summary[1:] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
