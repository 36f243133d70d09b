/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"tunelens/internal/config"
	"tunelens/internal/history"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent analytics runs",
	Long: `List recently recorded analytics runs from the local history log,
newest first. Runs are recorded by 'analyze' and by the HTTP API.`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.HistoryDB == "" {
		return fmt.Errorf("history recording is disabled (history_db is empty)")
	}

	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	total, err := store.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count runs: %w", err)
	}

	for _, run := range runs {
		line := fmt.Sprintf("%s  %-24s followers=%s popularity=%d",
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
			run.Artist,
			humanize.Comma(int64(run.Followers)),
			run.Popularity,
		)
		if run.RandomArtist != "" {
			line += fmt.Sprintf(" spotlight=%s", run.RandomArtist)
		}
		fmt.Println(line)
	}

	fmt.Printf("\n%d of %d recorded runs\n", len(runs), total)
	return nil
}
