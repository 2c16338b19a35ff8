package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	coilfallgame "github.com/vovakirdan/tui-coilfall/internal/games/coilfall"
	"github.com/vovakirdan/tui-coilfall/internal/storage"
)

var flagRecent int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show solve records and high scores",
	Long: `Display the best solve per level, overall stats and the top
session scores.

Examples:
  coilfall scores
  coilfall scores --recent 10`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 0, "Show the N most recent solves instead")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRecent > 0 {
		printRecentSolves(store, flagRecent)
		return
	}

	printBestSolves(store)
	printSolveStats(store)
	printHighScores(store)
}

func printBestSolves(store *storage.Store) {
	best, err := store.BestSolves()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving solves: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Best solve per level")
	fmt.Println()

	if len(best) == 0 {
		fmt.Println("No levels solved yet.")
		fmt.Println()
		fmt.Println("Play 'coilfall play' to record the first solve!")
		return
	}

	pars := coilfallgame.LevelPars()

	fmt.Printf("  %-20s  %-6s  %-4s  %-6s  %-6s  %s\n", "Level", "Moves", "Par", "Undos", "Time", "Date")
	fmt.Printf("  %-20s  %-6s  %-4s  %-6s  %-6s  %s\n", "-----", "-----", "---", "-----", "----", "----")

	for _, s := range best {
		par := "-"
		if p := pars[s.LevelID]; p > 0 {
			par = strconv.Itoa(p)
		}
		fmt.Printf("  %-20s  %-6d  %-4s  %-6d  %-6s  %s\n",
			s.LevelID, s.Moves, par, s.Undos, formatDuration(s.Duration), s.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println()
}

func printRecentSolves(store *storage.Store, limit int) {
	solves, err := store.RecentSolves(limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving solves: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent solves")
	fmt.Println()

	if len(solves) == 0 {
		fmt.Println("No levels solved yet.")
		return
	}

	fmt.Printf("  %-20s  %-6s  %-6s  %-6s  %s\n", "Level", "Moves", "Undos", "Time", "Date")
	fmt.Printf("  %-20s  %-6s  %-6s  %-6s  %s\n", "-----", "-----", "-----", "----", "----")

	for _, s := range solves {
		fmt.Printf("  %-20s  %-6d  %-6d  %-6s  %s\n",
			s.LevelID, s.Moves, s.Undos, formatDuration(s.Duration), s.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func printSolveStats(store *storage.Store) {
	stats, err := store.GetSolveStats()
	if err != nil || stats.TotalSolves == 0 {
		return
	}

	fmt.Printf("Solved %d levels in %d runs: %d moves, %d undos, %s played.\n",
		stats.LevelsSolved, stats.TotalSolves, stats.TotalMoves, stats.TotalUndos, formatDuration(stats.TotalDuration))
	fmt.Println()
}

func printHighScores(store *storage.Store) {
	scores, err := store.TopScores("coilfall", 10)
	if err != nil || len(scores) == 0 {
		return
	}

	fmt.Println("High scores")
	fmt.Println()
	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}
}

// formatDuration renders a solve time as m:ss.
func formatDuration(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
