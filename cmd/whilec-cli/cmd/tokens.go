// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"whilec/internal/parser"
	"whilec/internal/report"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the token stream of a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readSource(cmd, args[0])
		if err != nil {
			return err
		}

		tokens, err := parser.Scan(args[0], source)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		return report.Tokens(cmd.OutOrStdout(), tokens)
	},
}

var astCmd = &cobra.Command{
	Use:   "ast <file>",
	Short: "Print the syntax tree built while recognizing a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readSource(cmd, args[0])
		if err != nil {
			return err
		}

		program, _, err := parser.ParseSource(args[0], source)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), program.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(astCmd)
}
