package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-coilfall/internal/games/coilfall/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List campaign levels",
	Long: `Shows the campaign in play order with par move counts.

Examples:
  coilfall levels
  coilfall levels --levels ./mylevels`,
	Run: runLevels,
}

func runLevels(cmd *cobra.Command, args []string) {
	lvls, err := levels.NewLoader(flagLevels).LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	if len(lvls) == 0 {
		fmt.Println("No levels found.")
		return
	}

	fmt.Println("Campaign levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxNameLen := 4
	for _, l := range lvls {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
		if len(l.Name) > maxNameLen {
			maxNameLen = len(l.Name)
		}
	}

	// Print header
	fmt.Printf("  %-3s  %-*s  %-*s  %s\n", "#", maxIDLen, "ID", maxNameLen, "Name", "Par")
	fmt.Printf("  %-3s  %-*s  %-*s  %s\n", "-", maxIDLen, "--", maxNameLen, "----", "---")

	// Print levels
	for i, l := range lvls {
		par := "-"
		if l.Par > 0 {
			par = strconv.Itoa(l.Par)
		}
		fmt.Printf("  %-3d  %-*s  %-*s  %s\n", i+1, maxIDLen, l.ID, maxNameLen, l.Name, par)
	}

	fmt.Println()
	fmt.Println("Run 'coilfall play <n>' to start from a level.")
}
