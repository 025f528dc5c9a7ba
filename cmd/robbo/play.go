package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-robbo/internal/audio"
	"github.com/vovakirdan/tui-robbo/internal/core"
	"github.com/vovakirdan/tui-robbo/internal/games/robbo"
	"github.com/vovakirdan/tui-robbo/internal/games/robbo/levels"
	"github.com/vovakirdan/tui-robbo/internal/platform/tui"
	"github.com/vovakirdan/tui-robbo/internal/registry"
	"github.com/vovakirdan/tui-robbo/internal/spectate"
	"github.com/vovakirdan/tui-robbo/internal/storage"
)

var (
	flagLevel     int
	flagLevelSet  string
	flagBenchmark bool
	flagNoRender  bool
	flagNoAudio   bool
	flagZoom      int
	flagSpectate  string
	flagPick      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a level set",
	Long: `Start playing Robbo.

Controls:
  W/A/S/D, arrows  - Move
  Space/F + dir    - Shoot in the direction held (Space alone shoots ahead)
  X                - Drop a bomb
  R                - Restart the level (new game once all levels are done)
  P                - Pause
  Esc/B            - Back (when paused or finished)
  Ctrl+S           - Save a screenshot to ~/.robbo/screenshots
  Q/Ctrl+C         - Quit

Examples:
  robbo play
  robbo play --level 12
  robbo play --levelset ./levels/custom.yaml --pick
  robbo play --no-audio --zoom 3
  robbo play --spectate :8090
  robbo play --benchmark --no-render`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Number of the first level (0 = first level of the set)")
	playCmd.Flags().StringVar(&flagLevelSet, "levelset", "", "Level set file (text or YAML); built-in set if empty")
	playCmd.Flags().BoolVar(&flagBenchmark, "benchmark", false, "Run the simulation unthrottled instead of playing")
	playCmd.Flags().BoolVar(&flagNoRender, "no-render", false, "Skip render preparation (benchmark measures the simulation only)")
	playCmd.Flags().BoolVar(&flagNoAudio, "no-audio", false, "Disable sound")
	playCmd.Flags().IntVar(&flagZoom, "zoom", 0, "Terminal columns per tile (0 = config value)")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a websocket spectator feed on this address")
	playCmd.Flags().BoolVar(&flagPick, "pick", false, "Choose the first level from a list")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, source := mustLoadConfig()
	if flagZoom > 0 {
		cfg.Display.Zoom = flagZoom
	}
	if flagNoAudio {
		cfg.Audio.Enabled = false
	}
	if flagSpectate != "" {
		cfg.Spectate.Enabled = true
		cfg.Spectate.Addr = flagSpectate
	}

	set, err := levels.Load(flagLevelSet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagLevel > 0 {
		if _, err := set.IndexOf(flagLevel); err != nil {
			fmt.Fprintf(os.Stderr, "Error: level %d is not in %q\n", flagLevel, set.Name)
			fmt.Fprintln(os.Stderr, "Run 'robbo levels' to see the levels of the set.")
			os.Exit(1)
		}
	}

	if flagBenchmark {
		runBenchmark(set, cfg, cfg.Benchmark.Frames, !flagNoRender, false)
		return
	}

	// The terminal belongs to bubbletea while playing.
	logOut := io.Discard
	if f, err := openLogFile(); err == nil {
		defer f.Close()
		logOut = f
	} else {
		fmt.Fprintf(os.Stderr, "Warning: no log file: %v\n", err)
	}
	logger := newLogger(logOut, "robbo")
	logger.Info("config loaded", "source", source, "difficulty", cfg.Difficulty.InitialLevel)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Simulation.FPS,
	}

	level := flagLevel
	if flagPick {
		selection, selErr := tui.RunLevelSelector(set, rc)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}
		if selection == nil {
			return
		}
		level = selection.Level
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}

	opts := robbo.Options{
		LevelSet: flagLevelSet,
		Level:    level,
		Config:   cfg,
		NoRender: flagNoRender,
		Logger:   logger,
	}

	if cfg.Audio.Enabled {
		player := audio.NewPlayer(cfg.Audio, logger)
		if err := player.Start(); err != nil {
			logger.Warn("sound disabled", "error", err)
		}
		defer player.Close()
		opts.Cues = player
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Spectate.Enabled {
		hub := spectate.NewHub(logger)
		go func() {
			if err := hub.Run(ctx, cfg.Spectate.Addr); err != nil {
				logger.Error("spectator feed stopped", "error", err)
			}
		}()
		opts.Frames = hub
	}

	var scores tui.ScoreStore
	if store != nil {
		opts.Recorder = store
		scores = store
	}

	robbo.SetOptions(opts)
	game, err := registry.Create(robbo.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	runErr := tui.Run(game, scores, rc, logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// levelSetLabel names a set for output.
func levelSetLabel(set *levels.Set) string {
	if set.Name != "" {
		return set.Name
	}
	return set.Path
}
