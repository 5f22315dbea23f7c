package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"arrowfield/internal/agent"
	"arrowfield/internal/env"
	"arrowfield/internal/maps"
	"arrowfield/internal/storage"
)

var (
	flagSimMap      string
	flagSimMapsDir  string
	flagSimEpisodes int
	flagSimMaxSteps int
	flagSimAugment  bool
	flagSimNoSave   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless episodes with a scripted policy",
	Long: `Run rounds without a UI, driven by the greedy baseline policy, and
record the outcomes in the rounds database.

With --map the pool is a single map; otherwise every built-in map is in
the pool and each episode picks one at random.

Examples:
  arrowfield sim
  arrowfield sim --map cross --episodes 50
  arrowfield sim --episodes 100 --augment --seed 42
  arrowfield sim --no-save`,
	Run: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimMap, "map", "", "Run every episode on this map (default: all maps)")
	simCmd.Flags().StringVar(&flagSimMapsDir, "maps-dir", "", "Directory with custom map YAML files")
	simCmd.Flags().IntVar(&flagSimEpisodes, "episodes", 10, "Number of episodes to run")
	simCmd.Flags().IntVar(&flagSimMaxSteps, "max-steps", env.DefaultMaxEpisodeSteps, "Step budget per episode")
	simCmd.Flags().BoolVar(&flagSimAugment, "augment", false, "Apply a random rotation/flip to each round")
	simCmd.Flags().BoolVar(&flagSimNoSave, "no-save", false, "Do not record outcomes in the database")
}

func runSim(cmd *cobra.Command, args []string) {
	var pool []maps.MapDef
	if flagSimMap != "" {
		def, err := maps.Load(flagSimMap, flagSimMapsDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		pool = []maps.MapDef{def}
	} else {
		pool = maps.List()
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	e, err := env.New(pool, env.Config{
		MaxEpisodeSteps: flagSimMaxSteps,
		Augment:         flagSimAugment,
	}, rand.New(rand.NewSource(seed)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var store *storage.Store
	if !flagSimNoSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open rounds database: %v\n", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	policy := agent.Greedy{}
	wins := 0
	totalReward := 0.0
	totalTicks := 0

	fmt.Printf("Running %d episodes (seed %d)\n\n", flagSimEpisodes, seed)
	fmt.Printf("  %-4s  %-10s  %-8s  %-6s  %s\n", "Ep", "Map", "Result", "Ticks", "Reward")
	fmt.Printf("  %-4s  %-10s  %-8s  %-6s  %s\n", "--", "---", "------", "-----", "------")

	for ep := 1; ep <= flagSimEpisodes; ep++ {
		if _, err := e.Reset(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		episodeReward := 0.0
		survived := false
		for {
			out, err := e.Step(policy.Act(e.State()))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			episodeReward += out.Reward
			if out.Terminated {
				survived = e.State().Health > 0
				break
			}
			if out.Truncated {
				break
			}
		}

		result := "lost"
		if survived {
			result = "cleared"
			wins++
		}
		totalReward += episodeReward
		totalTicks += e.Ticks()

		fmt.Printf("  %-4d  %-10s  %-8s  %-6d  %.1f\n",
			ep, e.MapName(), result, e.Ticks(), episodeReward)

		if store != nil {
			//nolint:errcheck // Best-effort save, the run continues regardless
			store.SaveRound(storage.RoundRecord{
				MapID:    e.MapName(),
				Policy:   "greedy",
				Survived: survived,
				Ticks:    e.Ticks(),
				Reward:   episodeReward,
			})
		}
	}

	n := float64(flagSimEpisodes)
	fmt.Println()
	fmt.Printf("Cleared %d/%d rounds, avg ticks %.1f, avg reward %.1f\n",
		wins, flagSimEpisodes, float64(totalTicks)/n, totalReward/n)
}
