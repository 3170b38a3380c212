// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"whilec/internal/tui"
)

var saveOnExit bool

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Open the terminal editor",
	Long: `Opens a full-screen editor for a program.

Keys:
  F5, Ctrl+S  - compile the buffer and show the result
  Esc, Enter  - close the result box
  Ctrl+C      - quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().BoolVarP(&saveOnExit, "write", "w", false, "write the buffer back to the file on exit")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	opts := tui.Options{TabWidth: cfg.Editor.TabWidth}

	if len(args) == 1 {
		opts.Name = args[0]
		data, err := os.ReadFile(args[0])
		switch {
		case err == nil:
			opts.Source = string(data)
		case errors.Is(err, fs.ErrNotExist):
			// new file
		default:
			return fmt.Errorf("failed to read file: %w", err)
		}
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		opts.Recorder = store
	}

	buffer, err := tui.Run(opts)
	if err != nil {
		return fmt.Errorf("editor: %w", err)
	}

	if saveOnExit && opts.Name != "" {
		if err := os.WriteFile(opts.Name, []byte(buffer), 0644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
	}
	return nil
}
