// Package config provides YAML-based configuration loading and difficulty
// presets for the Robbo game.
package config

import (
	"errors"
	"fmt"
)

// RobboConfig contains all tunable parameters of the game and its front ends.
type RobboConfig struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Enemies    EnemiesConfig    `yaml:"enemies"`
	Fields     FieldsConfig     `yaml:"fields"`
	Items      ItemsConfig      `yaml:"items"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Benchmark  BenchmarkConfig  `yaml:"benchmark"`
	Display    DisplayConfig    `yaml:"display"`
	Audio      AudioConfig      `yaml:"audio"`
	Spectate   SpectateConfig   `yaml:"spectate"`
}

// SimulationConfig defines frame pacing and level flow.
type SimulationConfig struct {
	FPS              int  `yaml:"fps"`
	KeyframeInterval int  `yaml:"keyframe_interval"` // frames between timer ticks
	MoveInterval     int  `yaml:"move_interval"`     // movers act every Nth frame
	LaserSpeed       int  `yaml:"laser_speed"`       // cells per move frame
	WrapLevels       bool `yaml:"wrap_levels"`       // restart from level 1 after the last
}

// EnemiesConfig defines enemy behavior.
type EnemiesConfig struct {
	BearSight        int `yaml:"bear_sight"`         // Manhattan distance a bear notices Robbo from
	EyesFireInterval int `yaml:"eyes_fire_interval"` // keyframes between turret shots
}

// FieldsConfig defines magnetic field parameters.
type FieldsConfig struct {
	ForceFieldRange int `yaml:"force_field_range"`
}

// ItemsConfig defines pickups and the capsule.
type ItemsConfig struct {
	AmmoPerPack  int `yaml:"ammo_per_pack"`
	CapsuleDelay int `yaml:"capsule_delay"` // keyframes from last screw to activation
}

// ScoringConfig defines points awarded.
type ScoringConfig struct {
	Screw int `yaml:"screw"`
	Key   int `yaml:"key"`
	Ammo  int `yaml:"ammo"`
	Bomb  int `yaml:"bomb"`
	Kill  int `yaml:"kill"`
	Level int `yaml:"level"`
}

// DifficultyConfig places the game between its easiest and hardest tuning.
type DifficultyConfig struct {
	Enabled      bool          `yaml:"enabled"`
	InitialLevel float64       `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Scaling      ScalingConfig `yaml:"scaling"`
}

// ScalingConfig holds the easy and hard ends of every scaled parameter.
type ScalingConfig struct {
	BearSight        Range `yaml:"bear_sight"`
	EyesFireInterval Range `yaml:"eyes_fire_interval"`
	CapsuleDelay     Range `yaml:"capsule_delay"`
}

// Range is an interpolation interval. Easy may be larger than Hard.
type Range struct {
	Easy int `yaml:"easy"`
	Hard int `yaml:"hard"`
}

// At interpolates the range at level in [0, 1], rounding to the nearest integer.
func (r Range) At(level float64) int {
	level = clampF(level, 0, 1)
	v := float64(r.Easy) + level*float64(r.Hard-r.Easy)
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

// BenchmarkConfig defines the headless benchmark.
type BenchmarkConfig struct {
	Frames        int  `yaml:"frames"`         // frames per run of the bench command
	RestartFrames int  `yaml:"restart_frames"` // auto-advance to the next level after N frames
	Render        bool `yaml:"render"`         // build a render view every frame
}

// DisplayConfig defines how the grid is drawn.
type DisplayConfig struct {
	Zoom    int  `yaml:"zoom"` // terminal columns per tile
	ShowHUD bool `yaml:"show_hud"`
}

// AudioConfig defines sound output.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"` // 0.0 - 1.0
}

// SpectateConfig defines the websocket spectator feed.
type SpectateConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Every   int    `yaml:"every"` // publish every Nth frame
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset sets the difficulty level from a preset and rescales the tuned
// parameters. The fixed preset keeps the configured values untouched.
func ApplyPreset(cfg *RobboConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	cfg.ApplyDifficulty()
}

// ApplyDifficulty overwrites the scaled parameters with their value at the
// configured difficulty level. It does nothing when difficulty scaling is off.
func (c *RobboConfig) ApplyDifficulty() {
	if !c.Difficulty.Enabled {
		return
	}
	lvl := c.Difficulty.InitialLevel
	s := c.Difficulty.Scaling
	c.Enemies.BearSight = s.BearSight.At(lvl)
	c.Enemies.EyesFireInterval = s.EyesFireInterval.At(lvl)
	c.Items.CapsuleDelay = s.CapsuleDelay.At(lvl)
}

// Validate rejects configurations the game cannot run with.
func (c RobboConfig) Validate() error {
	var errs []error
	positive := func(name string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, v))
		}
	}
	positive("simulation.fps", c.Simulation.FPS)
	positive("simulation.keyframe_interval", c.Simulation.KeyframeInterval)
	positive("simulation.move_interval", c.Simulation.MoveInterval)
	positive("simulation.laser_speed", c.Simulation.LaserSpeed)
	positive("enemies.eyes_fire_interval", c.Enemies.EyesFireInterval)
	positive("display.zoom", c.Display.Zoom)
	if c.Enemies.BearSight < 0 {
		errs = append(errs, fmt.Errorf("enemies.bear_sight must not be negative, got %d", c.Enemies.BearSight))
	}
	if c.Items.CapsuleDelay < 0 {
		errs = append(errs, fmt.Errorf("items.capsule_delay must not be negative, got %d", c.Items.CapsuleDelay))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume must be within [0, 1], got %g", c.Audio.Volume))
	}
	if c.Difficulty.InitialLevel < 0 || c.Difficulty.InitialLevel > 1 {
		errs = append(errs, fmt.Errorf("difficulty.initial_level must be within [0, 1], got %g", c.Difficulty.InitialLevel))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
