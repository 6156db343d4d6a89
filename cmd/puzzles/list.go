package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-puzzles/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available puzzles",
	Long:  `Shows a list of all registered puzzles.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	puzzles := registry.List()

	if len(puzzles) == 0 {
		fmt.Println("No puzzles available.")
		return
	}

	fmt.Println("Available puzzles:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, p := range puzzles {
		maxIDLen = max(maxIDLen, len(p.ID))
		maxTitleLen = max(maxTitleLen, len(p.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Description")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----------")

	for _, p := range puzzles {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, p.ID, maxTitleLen, p.Title, p.Description)
	}

	fmt.Println()
	fmt.Println("Run 'puzzles play <id>' to play a puzzle.")
}
