package core

// Points awards score for what Robbo does.
type Points struct {
	Screw int
	Key   int
	Ammo  int
	Bomb  int
	Kill  int
	Level int
}

// Config parameterizes the simulation. Intervals are measured in frames unless noted.
type Config struct {
	KeyframeInterval int // frames between keyframes (timers, animation cadence)
	MoveInterval     int // frames between movement passes
	BearSight        int // Manhattan range at which bears start chasing
	ForceFieldRange  int // cells covered by a force field beam
	EyesFireInterval int // keyframes between turret shots
	CapsuleDelay     int // keyframes between the last screw and capsule activation
	AmmoPerPack      int
	LaserSpeed       int // cells per movement pass
	WrapLevels       bool
	Render           bool // prepare a render view in the reload stage
	Benchmark        bool
	BenchmarkRestart int // benchmark: advance to the next level after this many frames, 0 disables
	Points           Points
}

// DefaultConfig returns the configuration used by tests and headless tools:
// every frame is a movement frame, keyframes every 4 frames.
func DefaultConfig() Config {
	return Config{
		KeyframeInterval: DefaultKeyframeInterval,
		MoveInterval:     1,
		BearSight:        6,
		ForceFieldRange:  3,
		EyesFireInterval: 4,
		CapsuleDelay:     2,
		AmmoPerPack:      9,
		LaserSpeed:       2,
		WrapLevels:       true,
		Render:           true,
		Points: Points{
			Screw: 100,
			Key:   50,
			Ammo:  25,
			Bomb:  25,
			Kill:  75,
			Level: 1000,
		},
	}
}

// normalized replaces intervals that would stall or divide by zero with defaults.
func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.KeyframeInterval <= 0 {
		c.KeyframeInterval = def.KeyframeInterval
	}
	if c.MoveInterval <= 0 {
		c.MoveInterval = def.MoveInterval
	}
	if c.LaserSpeed <= 0 {
		c.LaserSpeed = 1
	}
	if c.EyesFireInterval <= 0 {
		c.EyesFireInterval = 1
	}
	return c
}
