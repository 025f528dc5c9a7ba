// Package bench runs the simulation headless and unthrottled to measure how
// many frames per second it sustains.
package bench

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-robbo/internal/config"
	platformcore "github.com/vovakirdan/tui-robbo/internal/core"
	"github.com/vovakirdan/tui-robbo/internal/games/robbo"
	"github.com/vovakirdan/tui-robbo/internal/games/robbo/core"
	"github.com/vovakirdan/tui-robbo/internal/games/robbo/levels"
	"github.com/vovakirdan/tui-robbo/internal/storage"
)

// cancelCheck is how many frames run between context checks.
const cancelCheck = 256

// Options configures one run.
type Options struct {
	Frames    int
	Render    bool // prepare views and draw them into an off-screen buffer
	Autopilot bool // drive Robbo with a fixed input script instead of standing still
	Config    config.RobboConfig
	Logger    *log.Logger
}

// Result summarizes a run.
type Result struct {
	RunID    string
	LevelSet string
	Frames   int
	Duration time.Duration
	Reloads  int
	Deaths   int
	Render   bool
	Hash     uint64 // simulation hash after the last frame
}

// FPS returns simulated frames per wall-clock second.
func (r Result) FPS() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Duration.Seconds()
}

// Run returns a storage record of the result.
func (r Result) Run() storage.BenchmarkRun {
	return storage.BenchmarkRun{
		RunID:    r.RunID,
		LevelSet: r.LevelSet,
		Frames:   r.Frames,
		Duration: r.Duration,
		Render:   r.Render,
		Reloads:  r.Reloads,
		Hash:     r.Hash,
	}
}

func (r Result) String() string {
	return fmt.Sprintf("%d frames in %v (%.0f fps), %d reloads, hash %016x",
		r.Frames, r.Duration.Round(time.Millisecond), r.FPS(), r.Reloads, r.Hash)
}

// Recorder persists finished runs.
type Recorder interface {
	SaveBenchmark(r storage.BenchmarkRun) (string, error)
}

// autopilot walks Robbo around in a fixed pattern and fires now and then.
func autopilot(frame int) core.Intent {
	d := core.Dirs[(frame/8)%len(core.Dirs)]
	if frame%16 == 15 {
		return core.Shoot(d)
	}
	return core.Walk(d)
}

// Run simulates opts.Frames frames of set as fast as possible.
// A consistency error ends the run early; the partial result is returned with it.
func Run(ctx context.Context, set *levels.Set, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	logger = logger.WithPrefix("bench")

	frames := opts.Frames
	if frames <= 0 {
		frames = opts.Config.Benchmark.Frames
	}
	res := Result{
		RunID:    uuid.NewString(),
		LevelSet: set.Name,
		Render:   opts.Render,
	}
	if res.LevelSet == "" {
		res.LevelSet = set.Path
	}

	state, err := core.NewState(set, robbo.BenchmarkConfig(opts.Config, opts.Render), 0)
	if err != nil {
		return res, fmt.Errorf("bench: cannot start: %w", err)
	}

	var screen *platformcore.Screen
	if opts.Render {
		screen = platformcore.NewScreen(core.MaxWidth*opts.Config.Display.Zoom, core.MaxHeight)
	}

	logger.Info("benchmark started", "run", res.RunID, "set", res.LevelSet, "frames", frames,
		"render", opts.Render, "restart", opts.Config.Benchmark.RestartFrames)

	start := time.Now()
	for i := 0; i < frames; i++ {
		if i%cancelCheck == 0 {
			if err := ctx.Err(); err != nil {
				res.Duration = time.Since(start)
				return res, err
			}
		}

		var in core.Intent
		if opts.Autopilot {
			in = autopilot(i)
		}
		fr, err := state.Step(in)
		if err != nil {
			res.Duration = time.Since(start)
			res.Hash = state.Hash()
			logger.Error("benchmark halted", "frame", i, "err", err)
			return res, fmt.Errorf("bench: frame %d: %w", i, err)
		}
		res.Frames++
		if fr.Reloaded {
			res.Reloads++
		}
		if screen != nil {
			if v, ok := state.PreparedView(); ok {
				robbo.DrawView(screen, v, opts.Config.Display.Zoom)
			}
		}
	}
	res.Duration = time.Since(start)
	res.Deaths = state.Deaths()
	res.Hash = state.Hash()

	logger.Info("benchmark finished", "run", res.RunID, "frames", res.Frames,
		"duration", res.Duration, "fps", int(res.FPS()), "reloads", res.Reloads)
	return res, nil
}

// Record saves a result and returns its run ID.
func Record(rec Recorder, r Result) (string, error) {
	id, err := rec.SaveBenchmark(r.Run())
	if err != nil {
		return "", fmt.Errorf("bench: cannot record run: %w", err)
	}
	return id, nil
}
