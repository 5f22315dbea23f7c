package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"arrowfield/internal/maps"
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List all available maps",
	Long:  `Shows the built-in maps with their dimensions and tower counts.`,
	Run:   runMaps,
}

func runMaps(cmd *cobra.Command, args []string) {
	defs := maps.List()

	if len(defs) == 0 {
		fmt.Println("No maps available.")
		return
	}

	fmt.Println("Available maps:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, d := range defs {
		if len(d.Name) > maxNameLen {
			maxNameLen = len(d.Name)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-7s  %s\n", maxNameLen, "Name", "Size", "Towers")
	fmt.Printf("  %-*s  %-7s  %s\n", maxNameLen, "----", "----", "------")

	for _, d := range defs {
		w := 0
		if len(d.Layout) > 0 {
			w = len(d.Layout[0])
		}
		fmt.Printf("  %-*s  %-7s  %d\n",
			maxNameLen, d.Name, fmt.Sprintf("%dx%d", w, len(d.Layout)), len(d.Towers))
	}

	fmt.Println()
	fmt.Println("Run 'arrowfield play <name>' to play a map.")
}
