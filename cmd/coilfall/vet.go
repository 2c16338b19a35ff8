package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-coilfall/internal/games/coilfall/levels"
)

var vetCmd = &cobra.Command{
	Use:   "vet <file>...",
	Short: "Validate level files",
	Long: `Check level YAML files against the level schema.

Shape problems like missing fields, bad cell glyphs or malformed snake
layouts are reported per file. Whether a board is actually solvable is
checked by 'coilfall trial'.

Examples:
  coilfall vet my-level.yaml
  coilfall vet levels/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	Run:  runVet,
}

func runVet(cmd *cobra.Command, args []string) {
	failed := 0
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed++
			continue
		}
		if err := levels.VetDocument(data); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Printf("%s: ok\n", path)
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d files failed\n", failed, len(args))
		os.Exit(1)
	}
}
