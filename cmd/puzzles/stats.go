package main

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-puzzles/internal/registry"
	"github.com/vovakirdan/tui-puzzles/internal/storage"
)

var (
	flagStatsLimit int
	flagStatsClear bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [puzzle]",
	Short: "Show results",
	Long: `Display the result summary for every puzzle, or the summary and
recent results of one puzzle.

Examples:
  puzzles stats
  puzzles stats defrag
  puzzles stats compression --limit 20
  puzzles stats defrag --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsLimit, "limit", 10, "Number of recent results to show")
	statsCmd.Flags().BoolVar(&flagStatsClear, "clear", false, "Delete the recorded results of the given puzzle")
}

func runStats(cmd *cobra.Command, args []string) {
	if len(args) == 1 && !registry.Exists(args[0]) {
		fmt.Fprintf(os.Stderr, "Error: unknown puzzle %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'puzzles list' to see available puzzles.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagStatsClear {
		if len(args) == 0 {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a puzzle id")
			return
		}
		if err := store.ClearResults(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing results: %v\n", err)
			return
		}
		fmt.Println("Results cleared.")
		return
	}

	if len(args) == 0 {
		printAllStats(store)
		return
	}
	printPuzzleStats(store, args[0])
}

func printAllStats(store *storage.Store) {
	all, err := store.AllStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		return
	}
	if len(all) == 0 {
		fmt.Println("No results recorded yet.")
		return
	}

	fmt.Printf("  %-12s  %6s  %6s  %9s  %s\n", "Puzzle", "Played", "Solved", "Forfeited", "Best")
	fmt.Printf("  %-12s  %6s  %6s  %9s  %s\n", "------", "------", "------", "---------", "----")
	for _, id := range slices.Sorted(maps.Keys(all)) {
		s := all[id]
		fmt.Printf("  %-12s  %6d  %6d  %9d  %s\n", id, s.Played, s.Won, s.Forfeited, bestTime(*s))
	}
}

func printPuzzleStats(store *storage.Store, puzzleID string) {
	title := puzzleID
	if info, ok := registry.Info(puzzleID); ok {
		title = info.Title
	}

	stats, err := store.Stats(puzzleID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		return
	}

	fmt.Printf("Results - %s\n", title)
	fmt.Println()

	if stats.Played == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'puzzles play %s' to record the first one!\n", puzzleID)
		return
	}

	fmt.Printf("Played: %d  Solved: %d  Forfeited: %d  Best: %s\n",
		stats.Played, stats.Won, stats.Forfeited, bestTime(*stats))
	fmt.Println()

	results, err := store.RecentResults(puzzleID, flagStatsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		return
	}

	fmt.Printf("  %-16s  %-9s  %8s  %s\n", "Date", "Outcome", "Time", "Message")
	fmt.Printf("  %-16s  %-9s  %8s  %s\n", "----", "-------", "----", "-------")
	for _, r := range results {
		fmt.Printf("  %-16s  %-9s  %7.1fs  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), outcome(r), r.Duration, r.Message)
	}
}

func bestTime(s storage.PuzzleStats) string {
	if s.Won == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1fs", s.BestTime)
}

func outcome(r storage.ResultEntry) string {
	switch {
	case r.Success:
		return "solved"
	case r.Forfeited:
		return "forfeited"
	default:
		return "failed"
	}
}
