package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"arrowfield/internal/maps"
	"arrowfield/internal/platform/tui"
	"arrowfield/internal/storage"
)

var flagResultsBrowse bool

var resultsCmd = &cobra.Command{
	Use:   "results [map]",
	Short: "Show round history and statistics",
	Long: `Without arguments, print aggregated statistics for every map.
With a map name, print the most recent rounds on that map.

Examples:
  arrowfield results
  arrowfield results garden
  arrowfield results --browse`,
	Args: cobra.MaximumNArgs(1),
	Run:  runResults,
}

func init() {
	resultsCmd.Flags().BoolVar(&flagResultsBrowse, "browse", false, "Open the interactive history browser")
}

func runResults(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening rounds database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagResultsBrowse {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if _, err := tui.RunResults(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if len(args) == 1 {
		printMapHistory(store, args[0])
		return
	}
	printAllStats(store)
}

func printMapHistory(store *storage.Store, mapName string) {
	if !maps.Exists(mapName) {
		fmt.Fprintf(os.Stderr, "Warning: %q is not a built-in map\n", mapName)
	}

	rounds, err := store.MapRounds(mapName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving rounds: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Round History - %s\n", mapName)
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arrowfield play %s' to record the first round!\n", mapName)
		return
	}

	if len(rounds) > 20 {
		rounds = rounds[:20]
	}

	fmt.Printf("  %-8s  %-8s  %-6s  %-9s  %s\n", "Result", "Policy", "Ticks", "Reward", "Date")
	fmt.Printf("  %-8s  %-8s  %-6s  %-9s  %s\n", "------", "------", "-----", "------", "----")

	for _, r := range rounds {
		result := "lost"
		if r.Survived {
			result = "cleared"
		}
		fmt.Printf("  %-8s  %-8s  %-6d  %-9.1f  %s\n",
			result, r.Policy, r.Ticks, r.Reward, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	best, err := store.BestReward(mapName)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best reward: %.1f\n", best)
	}
}

func printAllStats(store *storage.Store) {
	stats, err := store.GetAllMapStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving statistics: %v\n", err)
		os.Exit(1)
	}

	if len(stats) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Play 'arrowfield play' or run 'arrowfield sim' to record rounds.")
		return
	}

	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Round statistics:")
	fmt.Println()
	fmt.Printf("  %-10s  %-7s  %-5s  %-9s  %-11s  %s\n",
		"Map", "Rounds", "Wins", "AvgTicks", "AvgReward", "BestReward")
	fmt.Printf("  %-10s  %-7s  %-5s  %-9s  %-11s  %s\n",
		"---", "------", "----", "--------", "---------", "----------")

	for _, name := range names {
		s := stats[name]
		fmt.Printf("  %-10s  %-7d  %-5d  %-9.1f  %-11.1f  %.1f\n",
			s.MapID, s.Rounds, s.Wins, s.AvgTicks, s.AvgReward, s.BestReward)
	}
}
