// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"whilec/internal/compiler"
	"whilec/internal/parser"
	"whilec/internal/report"
)

const (
	PROMPT       = ">> "
	CONTINUATION = ".. "
)

// Options configures a session
type Options struct {
	Format report.Format
	Color  bool
	// OnCompile is called with every finished compile, may be nil
	OnCompile func(*compiler.Report)
}

// Start reads program text line by line. A blank line or :compile compiles
// the buffered program; end of input compiles whatever is pending.
func Start(in io.Reader, out io.Writer, opts Options) error {
	scanner := bufio.NewScanner(in)
	var buffer []string
	runs := 0

	compile := func() error {
		if len(buffer) == 0 {
			return nil
		}
		runs++
		r := compiler.Compile(fmt.Sprintf("repl-%d", runs), strings.Join(buffer, "\n"))
		buffer = buffer[:0]
		if opts.OnCompile != nil {
			opts.OnCompile(r)
		}
		return report.Render(out, r, report.Options{Format: opts.Format, Color: opts.Color})
	}

	for {
		if len(buffer) == 0 {
			fmt.Fprint(out, PROMPT)
		} else {
			fmt.Fprint(out, CONTINUATION)
		}
		if !scanner.Scan() {
			break
		}

		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case ":quit", ":q":
			return nil
		case ":reset":
			buffer = buffer[:0]
			fmt.Fprintln(out, "buffer cleared")
			continue
		case ":tokens":
			tokens, err := parser.Scan("repl", strings.Join(buffer, "\n"))
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			if err := report.Tokens(out, tokens); err != nil {
				return err
			}
			continue
		case ":help":
			fmt.Fprintln(out, "blank line or :compile to compile, :tokens, :reset, :quit")
			continue
		case ":compile", "":
			if err := compile(); err != nil {
				return err
			}
			continue
		}

		buffer = append(buffer, line)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	fmt.Fprintln(out)
	return compile()
}
