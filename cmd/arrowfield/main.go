// arrowfield is a terminal tower-assault game: one agent against a field of
// arrow towers, played interactively or driven headless by a scripted policy.
//
// Usage:
//
//	arrowfield maps              - List available maps
//	arrowfield play [map]        - Play a round interactively
//	arrowfield sim               - Run headless episodes with a scripted policy
//	arrowfield results [map]     - Show round history and statistics
//	arrowfield serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 10)
//	--seed <value>  - Set RNG seed for reproducible rounds
//	--db <path>     - Set database path (default: ~/.arrowfield/rounds.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arrowfield",
	Short: "Arrowfield - tower assault rounds in your terminal",
	Long: `Arrowfield pits a single agent against a grid of arrow towers. Walk
the agent next to a tower and tear it down before the projectiles land.

Available commands:
  maps     - Show all available maps
  play     - Play a round interactively
  sim      - Run headless episodes with a scripted policy
  results  - View round history and statistics
  serve    - Start SSH server for remote play

Examples:
  arrowfield maps
  arrowfield play garden
  arrowfield sim --map cross --episodes 20
  arrowfield results garden
  arrowfield serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 10, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arrowfield/rounds.db", "Path to rounds database")

	// Add subcommands
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(serveCmd)
}
