package core

// RuntimeConfig is what the platform hands a game when it (re)starts it.
type RuntimeConfig struct {
	ScreenW  int // terminal width in characters
	ScreenH  int // terminal height in characters
	TickRate int // frames per second the platform drives Step at
}

// DefaultConfig returns a RuntimeConfig matching a classic 80x24 terminal at 30 fps.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is the status a game reports to the platform after every frame.
type GameState struct {
	Score    int
	Level    int // number of the level being played
	GameOver bool
	Paused   bool
	Fault    string // non-empty when the simulation halted on an internal error
}

// StepResult is returned by Game.Step after each frame.
type StepResult struct {
	State GameState
}
