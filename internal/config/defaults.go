package config

import (
	_ "embed"
)

//go:embed defaults/robbo.yaml
var defaultRobboYAML []byte

// DefaultRobboConfig returns the built-in configuration used when no YAML is available.
func DefaultRobboConfig() RobboConfig {
	return RobboConfig{
		Simulation: SimulationConfig{
			FPS:              30,
			KeyframeInterval: 4,
			MoveInterval:     1,
			LaserSpeed:       2,
			WrapLevels:       true,
		},
		Enemies: EnemiesConfig{
			BearSight:        6,
			EyesFireInterval: 4,
		},
		Fields: FieldsConfig{
			ForceFieldRange: 3,
		},
		Items: ItemsConfig{
			AmmoPerPack:  9,
			CapsuleDelay: 2,
		},
		Scoring: ScoringConfig{
			Screw: 100,
			Key:   50,
			Ammo:  25,
			Bomb:  25,
			Kill:  75,
			Level: 1000,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.3,
			Scaling: ScalingConfig{
				BearSight:        Range{Easy: 4, Hard: 10},
				EyesFireInterval: Range{Easy: 6, Hard: 2},
				CapsuleDelay:     Range{Easy: 1, Hard: 4},
			},
		},
		Benchmark: BenchmarkConfig{
			Frames:        3000,
			RestartFrames: 600,
			Render:        false,
		},
		Display: DisplayConfig{
			Zoom:    2,
			ShowHUD: true,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Volume:     0.5,
		},
		Spectate: SpectateConfig{
			Enabled: false,
			Addr:    ":8090",
			Every:   1,
		},
	}
}
