package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:     "levels",
	Aliases: []string{"list"},
	Short:   "List the level library",
	Long: `Shows the built-in levels and every level file found in the library
directory. Files that cannot be parsed are skipped (see --verbose).`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	all, err := app.loader.LoadAll()
	if err != nil {
		exitf("%v", err)
	}

	if len(all) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Printf("Levels (%s):\n", app.levelsDir)
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, l := range all {
		if len(l.Name) > maxNameLen {
			maxNameLen = len(l.Name)
		}
	}

	fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxNameLen, "Name", "Size", "Coins", "Source")
	fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxNameLen, "----", "----", "-----", "------")

	for _, l := range all {
		source := l.FilePath
		if l.Builtin() {
			source = "built-in"
		}
		size := fmt.Sprintf("%dx%d", l.Map.Width(), l.Map.Height())
		fmt.Printf("  %-*s  %-7s  %-5d  %s\n", maxNameLen, l.Name, size, l.Map.TotalCoins(), source)
	}

	fmt.Println()
	fmt.Println("Run 'maze play solo <name>' to play a level.")
}
