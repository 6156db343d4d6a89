// puzzles runs short terminal puzzles: disk defragmentation, driver graph
// untangling and data compression block stacking.
//
// Usage:
//
//	puzzles list              - List available puzzles
//	puzzles play <puzzle>     - Play a puzzle
//	puzzles menu              - Start menu to pick puzzles interactively
//	puzzles serve             - Start SSH server for remote play
//	puzzles stats [puzzle]    - Show results for one or all puzzles
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible layouts
//	--db <path>     - Set database path (default: ~/.puzzles/results.db)
//	--debug         - Log every finished session
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import puzzles to register them
	_ "github.com/vovakirdan/tui-puzzles/internal/games/compression"
	_ "github.com/vovakirdan/tui-puzzles/internal/games/defrag"
	_ "github.com/vovakirdan/tui-puzzles/internal/games/drivers"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "puzzles",
	Short: "TUI Puzzles - Short maintenance tasks in your terminal",
	Long: `TUI Puzzles hosts small timed tasks played with the mouse and keyboard.

Available commands:
  list     - Show all available puzzles
  play     - Play a specific puzzle directly
  menu     - Interactive puzzle picker menu
  serve    - Start SSH server for remote play
  stats    - View results

Examples:
  puzzles list
  puzzles play defrag
  puzzles menu
  puzzles serve --ssh :2222 --feed :8080
  puzzles stats compression`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.puzzles/results.db", "Path to results database")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log finished sessions to stderr")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
}

// newLogger builds the stderr logger shared by the commands.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
