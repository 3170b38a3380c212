// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"whilec/internal/compiler"
	"whilec/internal/history"
	"whilec/internal/report"
)

var (
	outputFormat string
	noColor      bool
	showTime     bool
)

var compileCmd = &cobra.Command{
	Use:   "compile <file>...",
	Short: "Check programs and print the token summary",
	Long: `Validates, tokenizes and parses each file ("-" reads stdin).

On success the summary lists the rule labels and grammar tags of every
token; on failure the first error is shown with its source location.
The exit status is 1 if any file fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format: text, json or yaml (default from config)")
	compileCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	compileCmd.Flags().BoolVar(&showTime, "time", false, "print processing time")
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	opts := report.Options{
		Format: report.Format(cfg.Output.Format),
		Color:  cfg.Output.Color && !noColor,
	}
	if outputFormat != "" {
		opts.Format = report.Format(outputFormat)
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	failed := false
	for _, path := range args {
		source, err := readSource(cmd, path)
		if err != nil {
			return err
		}

		r := compiler.Compile(path, source)
		if err := report.Render(cmd.OutOrStdout(), r, opts); err != nil {
			return err
		}
		if !r.OK() {
			failed = true
		}

		if store != nil {
			if _, err := store.Record(context.Background(), history.FromReport(r)); err != nil {
				printError(err)
			}
		}

		if showTime {
			line := fmt.Sprintf("processed %s in %s", path, formatDuration(r.Duration))
			if r.OK() {
				color.New(color.FgGreen).Fprintln(cmd.ErrOrStderr(), line)
			} else {
				color.New(color.FgRed).Fprintln(cmd.ErrOrStderr(), line)
			}
		}
	}

	if failed {
		return errCompileFailed
	}
	return nil
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
