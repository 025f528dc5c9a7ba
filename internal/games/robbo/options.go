package robbo

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-robbo/internal/config"
	"github.com/vovakirdan/tui-robbo/internal/games/robbo/core"
	"github.com/vovakirdan/tui-robbo/internal/storage"
)

// CueSink receives the sound cues of every frame. Play must not block the game loop.
type CueSink interface {
	Play(cues []core.Cue)
}

// FramePublisher receives completed frames, e.g. to feed remote spectators.
type FramePublisher interface {
	Publish(v core.View)
}

// ResultRecorder persists how each attempt at a level ended.
type ResultRecorder interface {
	SaveLevelResult(r storage.LevelResult) (int64, error)
}

// Options configures the games created by the registry factory.
type Options struct {
	LevelSet string // path of the level set, empty for the built-in set
	Level    int    // number of the first level to play, 0 for the first in the set
	Config   config.RobboConfig
	NoRender bool // skip render preparation in the simulation; Render falls back to live views

	Cues     CueSink
	Frames   FramePublisher
	Recorder ResultRecorder
	Logger   *log.Logger
}

// Package-level options, set by the CLI before the platform creates a game.
var (
	optionsMu sync.RWMutex
	selected  = Options{Config: config.DefaultRobboConfig()}
)

// SetOptions replaces the options used by New.
func SetOptions(o Options) {
	optionsMu.Lock()
	defer optionsMu.Unlock()
	selected = o
}

// CurrentOptions returns the options New will use.
func CurrentOptions() Options {
	optionsMu.RLock()
	defer optionsMu.RUnlock()
	return selected
}

// SetStartLevel sets the number of the first level. 0 means start from the beginning.
func SetStartLevel(number int) {
	optionsMu.Lock()
	defer optionsMu.Unlock()
	selected.Level = number
}

// CoreConfig translates the file configuration into simulation parameters,
// with the difficulty scaling applied.
func CoreConfig(cfg config.RobboConfig) core.Config {
	cfg.ApplyDifficulty()
	return core.Config{
		KeyframeInterval: cfg.Simulation.KeyframeInterval,
		MoveInterval:     cfg.Simulation.MoveInterval,
		BearSight:        cfg.Enemies.BearSight,
		ForceFieldRange:  cfg.Fields.ForceFieldRange,
		EyesFireInterval: cfg.Enemies.EyesFireInterval,
		CapsuleDelay:     cfg.Items.CapsuleDelay,
		AmmoPerPack:      cfg.Items.AmmoPerPack,
		LaserSpeed:       cfg.Simulation.LaserSpeed,
		WrapLevels:       cfg.Simulation.WrapLevels,
		Render:           true,
		Points: core.Points{
			Screw: cfg.Scoring.Screw,
			Key:   cfg.Scoring.Key,
			Ammo:  cfg.Scoring.Ammo,
			Bomb:  cfg.Scoring.Bomb,
			Kill:  cfg.Scoring.Kill,
			Level: cfg.Scoring.Level,
		},
	}
}

// BenchmarkConfig is CoreConfig tuned for an unthrottled headless run.
func BenchmarkConfig(cfg config.RobboConfig, render bool) core.Config {
	c := CoreConfig(cfg)
	c.Render = render
	c.Benchmark = true
	c.BenchmarkRestart = cfg.Benchmark.RestartFrames
	c.WrapLevels = true
	return c
}
