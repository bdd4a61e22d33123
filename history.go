package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gonewx/duckshot/pkg/storage"
)

var (
	flagLimit int
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent rounds and the best win",
	Long: `Display the most recent rounds recorded in the history database,
followed by the best win (fewest shots, then fastest).

Examples:
  duckshot history
  duckshot history --limit 20
  duckshot history --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of recent rounds to show")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded rounds")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if flagDBPath == "" {
		return fmt.Errorf("history is disabled (--db is empty)")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRounds(); err != nil {
			return err
		}
		fmt.Println("History cleared.")
		return nil
	}

	rounds, err := store.RecentRounds(flagLimit)
	if err != nil {
		return err
	}

	fmt.Println("Recent Rounds")
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Play 'duckshot play' to record the first one!")
		return nil
	}

	fmt.Printf("  %-16s  %-12s  %-6s  %-9s  %s\n", "Date", "Level", "Shots", "Result", "Time")
	fmt.Printf("  %-16s  %-12s  %-6s  %-9s  %s\n", "----", "-----", "-----", "------", "----")
	for _, r := range rounds {
		fmt.Printf("  %-16s  %-12s  %-6d  %-9s  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Level, r.Shots, resultLabel(r.Won), formatDuration(r.Duration))
	}

	fmt.Println()
	if stats, err := store.GetStats(); err == nil {
		fmt.Printf("Rounds: %d  Wins: %d  Shots: %d\n", stats.Rounds, stats.Wins, stats.Shots)
	}

	best, err := store.BestRound()
	if err != nil {
		return err
	}
	if best == nil {
		fmt.Println("Best: no wins yet")
		return nil
	}
	fmt.Printf("Best: %d shot(s) in %s (%s)\n", best.Shots, formatDuration(best.Duration), best.CreatedAt.Local().Format("2006-01-02"))
	return nil
}

func resultLabel(won bool) string {
	if won {
		return "won"
	}
	return "abandoned"
}

func formatDuration(d time.Duration) string {
	return d.Round(100 * time.Millisecond).String()
}
