package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-puzzles/internal/config"
	"github.com/vovakirdan/tui-puzzles/internal/core"
	"github.com/vovakirdan/tui-puzzles/internal/platform/tui"
	"github.com/vovakirdan/tui-puzzles/internal/registry"
	"github.com/vovakirdan/tui-puzzles/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <puzzle>",
	Short: "Play a puzzle",
	Long: `Start playing the specified puzzle.

Controls:
  Mouse      - Drag pieces and nodes, press buttons
  A/D        - Move block left/right (compression)
  E/Z        - Rotate block clockwise/counter-clockwise
  S          - Drop block one row
  R          - Reset (defrag)
  F          - Forfeit, then Enter/Y to confirm or Esc/N to cancel
  P          - Pause
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Roomier layouts, slower blocks, fewer rows to clear
  normal - Default values
  hard   - Denser layouts, faster blocks, more rows to clear
  fixed  - Use the config file values untouched

Examples:
  puzzles play defrag
  puzzles play compression --difficulty hard
  puzzles play drivers --seed 42
  puzzles play compression --config ./my-compression.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom puzzle config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// terminalSize returns the size of stdout, or 80x24 when it is not a
// terminal.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// openStore opens the results database. Play continues without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(cmd *cobra.Command, args []string) {
	puzzleID := args[0]

	if !registry.Exists(puzzleID) {
		fmt.Fprintf(os.Stderr, "Error: unknown puzzle %q\n", puzzleID)
		fmt.Fprintln(os.Stderr, "Run 'puzzles list' to see available puzzles.")
		os.Exit(1)
	}
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:    width,
		ScreenH:    height,
		TickRate:   flagFPS,
		Seed:       flagSeed,
		ConfigPath: flagConfig,
		Difficulty: flagDifficulty,
	}

	store := openStore()
	rec := tui.NewRecorder(store, nil, newLogger("puzzles"))

	runErr := tui.Run(puzzleID, rec, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running puzzle: %v\n", runErr)
		os.Exit(1)
	}
}
