package compiler

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tliron/commonlog"

	"whilec/internal/ast"
	"whilec/internal/parser"
	"whilec/token"
)

var log = commonlog.GetLogger("whilec.compiler")

// Stage names the step of Compile that produced a failure.
type Stage string

const (
	StageValidation Stage = "validation"
	StageLexing     Stage = "lexing"
	StageParsing    Stage = "parsing"
)

// alphabet is every character the language can contain. Line breaks and
// tabs are folded to spaces before the match.
var (
	alphabet   = regexp.MustCompile(`^[A-Za-z0-9_#&;!\r\n\t {}:=]*$`)
	whitespace = strings.NewReplacer("\r", " ", "\n", " ", "\t", " ")
)

// ValidationError rejects the whole text before lexing. It has no position.
type ValidationError struct {
	Char rune
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("source contains %q which is not part of the language", e.Char)
}

// Failure is the first error Compile ran into.
type Failure struct {
	Stage   Stage
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s failed: %s", f.Stage, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Report is the outcome of one Compile call.
type Report struct {
	Name     string
	Source   string
	Tokens   []token.Token // set whenever lexing succeeded
	Program  *ast.Program  // set on success only
	Failure  *Failure
	Duration time.Duration
}

// OK reports whether the source belongs to the language.
func (r *Report) OK() bool {
	return r.Failure == nil
}

// Summary returns the lines shown for a successful compile.
func (r *Report) Summary() []string {
	tags := token.Tags(r.Tokens)
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.String()
	}

	return []string{
		"compiled successfully",
		"lexemes used: " + strings.Join(token.Labels(r.Tokens), ", "),
		"lexer result: " + strings.Join(names, ", "),
	}
}

// Validate checks that source only uses characters of the language.
func Validate(source string) error {
	folded := whitespace.Replace(source)
	if alphabet.MatchString(folded) {
		return nil
	}

	for _, ch := range folded {
		if !alphabet.MatchString(string(ch)) {
			return &ValidationError{Char: ch}
		}
	}
	// Only reachable for invalid UTF-8.
	return &ValidationError{Char: utf8.RuneError}
}

// Compile validates, scans and parses source. It never panics and keeps no
// state between calls.
func Compile(name, source string) *Report {
	start := time.Now()
	report := &Report{Name: name, Source: source}
	defer func() {
		report.Duration = time.Since(start)
	}()

	log.Debugf("compiling %s (%d bytes)", name, len(source))

	if err := Validate(source); err != nil {
		report.fail(StageValidation, err)
		return report
	}

	tokens, err := parser.Scan(name, source)
	if err != nil {
		report.fail(StageLexing, err)
		return report
	}
	report.Tokens = tokens
	log.Debugf("%s: %d tokens, labels %s", name, len(tokens), strings.Join(token.Labels(tokens), ","))

	program, err := parser.Parse(tokens)
	if err != nil {
		report.fail(StageParsing, err)
		return report
	}
	report.Program = program

	log.Debugf("%s: accepted %d top-level operators", name, len(program.Body.Operators))
	return report
}

func (r *Report) fail(stage Stage, err error) {
	r.Failure = &Failure{Stage: stage, Message: err.Error(), Err: err}
	log.Infof("%s: %s", r.Name, r.Failure)
}
