package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-puzzles/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagFeedAddr    string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the puzzles SSH server",
	Long: `Start an SSH server that allows users to connect and play puzzles.

Each SSH connection gets its own session with a puzzle picker menu.
Results are stored per-server, so all users share the same results board.

With --feed, every finished session is also broadcast as JSON to
WebSocket clients connected to ws://<addr>/feed.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.puzzles/host_key

Examples:
  puzzles serve                           # Listen on :23234 with auto-generated key
  puzzles serve --ssh :2222               # Listen on port 2222
  puzzles serve --host-key ./my_host_key  # Use specific host key
  puzzles serve --feed :8080              # Broadcast outcomes on :8080/feed

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagFeedAddr, "feed", "", "WebSocket outcome feed address (disabled if empty)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.FeedAddress = flagFeedAddr
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS

	server, err := tui.NewSSHServer(cfg, newLogger("puzzles-ssh"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting puzzles SSH server on %s\n", server.Addr())
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
