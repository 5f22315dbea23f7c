package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"arrowfield/internal/maps"
	"arrowfield/internal/platform/tui"
	"arrowfield/internal/storage"
)

var (
	flagMapsDir string
	flagAugment bool
)

var playCmd = &cobra.Command{
	Use:   "play [map]",
	Short: "Play a round interactively",
	Long: `Start an interactive round on the given map (default: "default").

Controls:
  Arrows/hjkl - Move the target cursor
  Enter       - Walk to the cursor cell
  A           - Attack an adjacent tower
  S           - Stand for one tick
  N           - New round (after the round ends)
  ?           - Toggle help
  Q/Ctrl+C    - Quit

Custom maps are YAML files; put them in ~/.arrowfield/maps or point
--maps-dir at a directory containing <name>.yaml.

Examples:
  arrowfield play
  arrowfield play garden
  arrowfield play cross --augment
  arrowfield play mymap --maps-dir ./maps`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMapsDir, "maps-dir", "", "Directory with custom map YAML files")
	playCmd.Flags().BoolVar(&flagAugment, "augment", false, "Apply a random rotation/flip to each round")
}

func runPlay(cmd *cobra.Command, args []string) {
	mapName := "default"
	if len(args) > 0 {
		mapName = args[0]
	}

	def, err := maps.Load(mapName, flagMapsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'arrowfield maps' to see available maps.")
		os.Exit(1)
	}

	// Open round storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open rounds database: %v\n", err)
		// Continue without storage - the round still works
		store = nil
	}

	runErr := tui.Run(tui.RunConfig{
		Map:      def,
		Store:    store,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Augment:  flagAugment,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running round: %v\n", runErr)
		os.Exit(1)
	}
}
