package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-robbo/internal/games/robbo/levels"
	"github.com/vovakirdan/tui-robbo/internal/platform/tui"
	"github.com/vovakirdan/tui-robbo/internal/spectate"
)

var (
	flagSSHAddr       string
	flagHostKey       string
	flagIdleTimeout   int
	flagServeSet      string
	flagServeSpectate string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Robbo SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game with a level picker. Scores and level
results are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.robbo/host_key

Examples:
  robbo serve                           # Listen on :23234 with auto-generated key
  robbo serve --ssh :2222               # Listen on port 2222
  robbo serve --levelset ./custom.txt   # Offer a custom level set
  robbo serve --spectate :8090          # Mirror every session to the spectator feed

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeSet, "levelset", "", "Level set file; built-in set if empty")
	serveCmd.Flags().StringVar(&flagServeSpectate, "spectate", "", "Serve a websocket spectator feed on this address")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, _ := mustLoadConfig()
	if _, err := levels.Load(flagServeSet); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	serverCfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		LevelSet:    flagServeSet,
		Game:        cfg,
	}
	// Sessions have no local speakers.
	serverCfg.Game.Audio.Enabled = false

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flagServeSpectate != "" {
		logger := newLogger(os.Stderr, "robbo-spectate")
		hub := spectate.NewHub(logger)
		go func() {
			if err := hub.Run(ctx, flagServeSpectate); err != nil {
				logger.Error("spectator feed stopped", "error", err)
			}
		}()
		serverCfg.Frames = hub
	}

	server, err := tui.NewSSHServer(serverCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Robbo SSH server on %s\n", serverCfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
