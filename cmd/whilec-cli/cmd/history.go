// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	pruneAge     time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded compiles",
	Long: `Lists the most recent compiles stored in the history database.

History is recorded when [history] enabled = true in the config.`,
	RunE: runHistoryList,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old history entries",
	RunE:  runHistoryPrune,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "number of entries (default from config)")
	historyPruneCmd.Flags().DurationVar(&pruneAge, "older-than", 0, "age of entries to delete (default: history.retention)")
	historyCmd.AddCommand(historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("history is disabled, set [history] enabled = true")
	}
	defer store.Close()

	limit := historyLimit
	if limit == 0 {
		limit = cfg.History.Limit
	}

	entries, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	for _, e := range entries {
		status := green("ok    ")
		detail := fmt.Sprintf("%d tokens", e.TokenCount)
		if !e.OK {
			status = red(fmt.Sprintf("%-6s", e.Code))
			detail = e.Stage + ": " + firstLine(e.Message)
		}
		fmt.Fprintf(out, "%s  %s  %s  %s  %s\n",
			shortID(e.ID), e.Timestamp.Local().Format(time.DateTime), status, e.Name, detail)
	}
	return nil
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("history is disabled, set [history] enabled = true")
	}
	defer store.Close()

	age := pruneAge
	if age == 0 {
		age = cfg.History.Retention.Duration
	}

	removed, err := store.Prune(context.Background(), age)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %d entries older than %s\n", removed, age)
	return nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
