// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"whilec/internal/config"
	"whilec/internal/history"
)

var (
	cfgFile string
	verbose bool

	cfg *config.Config
)

// errCompileFailed is returned after the failure has already been rendered
var errCompileFailed = errors.New("compilation failed")

var rootCmd = &cobra.Command{
	Use:   "whilec",
	Short: "whilec - recognizer for the while language",
	Long: `whilec checks whether a program belongs to the while language and
shows the token classification used while recognizing it.

  x := 1;
  while x {
    x := !x # 2 & y
  }`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errCompileFailed) {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $WHILEC_CONFIG, ./whilec.toml, ~/.config/whilec/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func setup(cmd *cobra.Command, args []string) error {
	loaded, path, err := config.Discover(cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded

	verbosity := cfg.Log.Verbosity
	if verbose && verbosity < 2 {
		verbosity = 2
	}
	commonlog.Configure(verbosity, cfg.LogPath())

	if path != "" {
		commonlog.GetLogger("whilec.cli").Debugf("using config %s", path)
	}
	return nil
}

// openHistory returns nil when history is disabled
func openHistory() (*history.Store, error) {
	if cfg == nil || !cfg.History.Enabled {
		return nil, nil
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return store, nil
}

// readSource reads a program from path, "-" meaning stdin
func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}
