package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-robbo/internal/bench"
	"github.com/vovakirdan/tui-robbo/internal/config"
	"github.com/vovakirdan/tui-robbo/internal/games/robbo/levels"
	"github.com/vovakirdan/tui-robbo/internal/storage"
)

var (
	flagBenchFrames    int
	flagBenchRender    bool
	flagBenchAutopilot bool
	flagBenchSet       string
	flagBenchNoRecord  bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark the simulation",
	Long: `Run the simulation as fast as possible, without a terminal or frame pacing.

Levels are restarted (moving on to the next one) every benchmark.restart_frames
frames so every level of the set gets exercised. The frames per second and the
final world hash are printed and stored in the scores database; two runs over
the same set and config always end with the same hash.

Examples:
  robbo bench
  robbo bench --frames 20000 --render
  robbo bench --autopilot --levelset ./levels/custom.txt`,
	Args: cobra.NoArgs,
	Run:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagBenchFrames, "frames", 0, "Frames to simulate (0 = config value)")
	benchCmd.Flags().BoolVar(&flagBenchRender, "render", false, "Prepare and draw a view every frame")
	benchCmd.Flags().BoolVar(&flagBenchAutopilot, "autopilot", false, "Walk and shoot instead of standing still")
	benchCmd.Flags().StringVar(&flagBenchSet, "levelset", "", "Level set file; built-in set if empty")
	benchCmd.Flags().BoolVar(&flagBenchNoRecord, "no-record", false, "Do not store the result")
}

func runBench(_ *cobra.Command, _ []string) {
	cfg, _ := mustLoadConfig()

	set, err := levels.Load(flagBenchSet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	runBenchmark(set, cfg, flagBenchFrames, flagBenchRender || cfg.Benchmark.Render, flagBenchAutopilot)
}

// runBenchmark runs, prints and records one benchmark. Ctrl+C stops it early.
func runBenchmark(set *levels.Set, cfg config.RobboConfig, frames int, render, autopilot bool) {
	logger := newLogger(os.Stderr, "robbo")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := bench.Run(ctx, set, bench.Options{
		Frames:    frames,
		Render:    render,
		Autopilot: autopilot,
		Config:    cfg,
		Logger:    logger,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Printf("Interrupted after %s\n", res)
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	mode := "simulation only"
	if res.Render {
		mode = "with rendering"
	}
	fmt.Printf("Benchmark - %s (%s)\n", levelSetLabel(set), mode)
	fmt.Printf("  %s\n", res)

	if flagBenchNoRecord {
		return
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		return
	}
	defer store.Close()

	id, err := bench.Record(store, res)
	if err != nil {
		logger.Warn("result not stored", "error", err)
		return
	}
	fmt.Printf("  stored as run %s\n", id)
}
