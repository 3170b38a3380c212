// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"whilec/internal/compiler"
	"whilec/internal/history"
	"whilec/internal/report"
	"whilec/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Type programs and compile them interactively",
	Long: `Starts a line-based session. Lines are collected into a program that
is compiled on an empty line or :compile.

Commands:
  :tokens   - print the tokens of the current buffer
  :reset    - discard the buffer
  :quit     - leave`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	fmt.Fprintln(cmd.OutOrStdout(), "whilec REPL, :help for commands")

	return repl.Start(cmd.InOrStdin(), cmd.OutOrStdout(), repl.Options{
		Format: report.Format(cfg.Output.Format),
		Color:  cfg.Output.Color,
		OnCompile: func(r *compiler.Report) {
			if store == nil {
				return
			}
			if _, err := store.Record(context.Background(), history.FromReport(r)); err != nil {
				printError(err)
			}
		},
	})
}
