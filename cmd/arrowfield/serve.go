package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"arrowfield/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagSSHDBPath   string
	flagServeMap    string
	flagServeAug    bool
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arrowfield SSH server",
	Long: `Start an SSH server that lets users connect and play rounds.

Each SSH connection gets its own round; results are stored per-server
(all users share the same history).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arrowfield/host_key

Examples:
  arrowfield serve                           # Listen on :23234 with auto-generated key
  arrowfield serve --ssh :2222               # Listen on port 2222
  arrowfield serve --map garden              # Pin every session to one map
  arrowfield serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagSSHDBPath, "db", "~/.arrowfield/rounds.db", "Path to rounds database")
	serveCmd.Flags().StringVar(&flagServeMap, "map", "", "Pin every session to this map (default: random per session)")
	serveCmd.Flags().BoolVar(&flagServeAug, "augment", false, "Apply a random rotation/flip to each round")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagSSHDBPath,
		MapName:     flagServeMap,
		TickRate:    flagFPS,
		Augment:     flagServeAug,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting arrowfield SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
