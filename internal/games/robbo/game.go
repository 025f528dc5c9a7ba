// Package robbo adapts the Robbo simulation to the platform: it maps input to intents,
// fans sound cues and frames out to their collaborators and draws the grid.
package robbo

import (
	"errors"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	platformcore "github.com/vovakirdan/tui-robbo/internal/core"
	"github.com/vovakirdan/tui-robbo/internal/games/robbo/core"
	"github.com/vovakirdan/tui-robbo/internal/games/robbo/levels"
	"github.com/vovakirdan/tui-robbo/internal/registry"
	"github.com/vovakirdan/tui-robbo/internal/storage"
)

// GameID is the registry identifier of the game.
const GameID = "robbo"

func init() {
	registry.Register(registry.Info{
		ID:          GameID,
		Title:       "Robbo",
		Description: "Collect the screws, reach the capsule, avoid everything else",
	}, func() registry.Game {
		return New()
	})
}

// Game implements registry.Game for Robbo.
type Game struct {
	opts   Options
	logger *log.Logger

	set       *levels.Set
	setName   string
	state     *core.State
	loadErr   error
	sessionID string

	screenW int
	screenH int

	input   latch
	restart bool // restart requested, applied on the next frame
	paused  bool
	fault   string

	// attempt bookkeeping for the level being played
	levelFrames int
	outcome     storage.Outcome
	last        core.FrameResult
}

// New creates a game with the current package options.
func New() *Game {
	return NewWithOptions(CurrentOptions())
}

// NewWithOptions creates a game with explicit options.
func NewWithOptions(o Options) *Game {
	logger := o.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Game{opts: o, logger: logger.WithPrefix("robbo")}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Robbo"
}

// Reset loads the level set and starts a new session at the configured level.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.fault = ""
	g.restart = false
	g.input.clear()
	g.last = core.FrameResult{}
	g.state = nil
	g.loadErr = nil

	set, err := levels.Load(g.opts.LevelSet)
	if err != nil {
		g.loadErr = err
		g.logger.Error("cannot load level set", "path", g.opts.LevelSet, "err", err)
		return
	}
	g.set = set
	g.setName = setLabel(set)

	start := 0
	if g.opts.Level > 0 {
		idx, err := set.IndexOf(g.opts.Level)
		if err != nil {
			g.logger.Warn("start level not in set, starting from the first", "number", g.opts.Level)
		} else {
			start = idx
		}
	}

	cc := CoreConfig(g.opts.Config)
	cc.Render = !g.opts.NoRender
	state, err := core.NewState(set, cc, start)
	if err != nil {
		g.loadErr = err
		g.logger.Error("cannot start level", "index", start, "err", err)
		return
	}
	g.state = state
	g.sessionID = storage.NewSessionID()
	g.beginAttempt()
	info := state.Info()
	g.logger.Info("session started", "session", g.sessionID, "set", g.setName,
		"level", info.Number, "name", info.Name)
}

// setLabel names a level set in storage and on the HUD.
func setLabel(set *levels.Set) string {
	if set.Name != "" {
		return set.Name
	}
	return filepath.Base(set.Path)
}

// Step advances the simulation by one frame.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.state == nil || g.fault != "" {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionRestart) {
		if g.state.Finished() {
			g.Reset(platformcore.RuntimeConfig{ScreenW: g.screenW, ScreenH: g.screenH})
			return platformcore.StepResult{State: g.State()}
		}
		g.restart = true
	}
	g.input.press(in)

	intent := g.input.intent()
	intent.Reload = g.restart
	before := g.state.Info()

	res, err := g.state.Step(intent)
	if err != nil {
		g.halt(err)
		return platformcore.StepResult{State: g.State()}
	}
	g.last = res
	g.restart = false
	if res.MoveFrame {
		g.input.clear()
	}

	g.trackAttempt(before, res)

	if g.opts.Cues != nil && len(res.Cues) > 0 {
		g.opts.Cues.Play(res.Cues)
	}
	if g.opts.Frames != nil {
		every := g.opts.Config.Spectate.Every
		if every <= 1 || res.Tick%uint64(every) == 0 {
			g.opts.Frames.Publish(g.Snapshot())
		}
	}

	return platformcore.StepResult{State: g.State()}
}

// halt stops the simulation after an internal error. The state is already rolled back.
func (g *Game) halt(err error) {
	g.fault = err.Error()
	var ce *core.ConsistencyError
	if errors.As(err, &ce) {
		g.logger.Error("simulation halted", "tick", ce.Tick, "stage", ce.Stage.String(),
			"code", ce.Code, "msg", ce.Message)
		return
	}
	g.logger.Error("simulation halted", "tick", g.state.Tick(), "err", err)
}

func (g *Game) beginAttempt() {
	g.levelFrames = 0
	g.outcome = storage.OutcomeAbandoned
}

// trackAttempt records the outcome of a level when the frame left it and
// notes how the new frame's events decided the current attempt.
func (g *Game) trackAttempt(before core.LevelInfo, res core.FrameResult) {
	if res.Reloaded {
		g.recordAttempt(before)
		g.beginAttempt()
		info := g.state.Info()
		g.logger.Info("level loaded", "index", info.Index, "number", info.Number, "name", info.Name,
			"score", g.state.Score())
	}
	g.levelFrames++

	for _, e := range res.Events {
		switch e.Kind {
		case core.EventLevelComplete:
			g.outcome = storage.OutcomeCompleted
			g.logger.Info("level complete", "number", g.state.Info().Number, "frames", g.levelFrames)
		case core.EventPlayerDied:
			if g.outcome != storage.OutcomeCompleted {
				g.outcome = storage.OutcomeFailed
			}
			g.logger.Debug("robbo died", "pos", e.Pos.String(), "deaths", g.state.Deaths())
		}
	}

	if res.Finished {
		g.recordAttempt(g.state.Info())
		g.logger.Info("level set finished", "score", g.state.Score(), "cleared", g.state.Cleared())
	}
}

func (g *Game) recordAttempt(info core.LevelInfo) {
	if g.opts.Recorder == nil {
		return
	}
	_, err := g.opts.Recorder.SaveLevelResult(storage.LevelResult{
		SessionID:   g.sessionID,
		LevelSet:    g.setName,
		LevelNumber: info.Number,
		Outcome:     g.outcome,
		Frames:      g.levelFrames,
		Score:       g.state.Score(),
	})
	if err != nil {
		g.logger.Warn("cannot record level result", "err", err)
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.state == nil {
		msg := "No levels loaded"
		if g.loadErr != nil {
			msg = g.loadErr.Error()
		}
		renderOverlay(dst, "Level set unavailable", msg)
		return
	}

	view := g.Snapshot()
	top := 0
	if g.opts.Config.Display.ShowHUD {
		g.renderHUD(dst, view)
		top = hudHeight
	}

	if !renderGrid(dst, view, top, g.opts.Config.Display.Zoom) {
		renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	switch {
	case g.fault != "":
		renderOverlay(dst, "Simulation halted", g.fault)
	case view.Finished:
		renderOverlay(dst, "All levels cleared!", "Press R to play again")
	case g.paused:
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{Paused: g.paused, Fault: g.fault}
	if g.state == nil {
		st.GameOver = true
		return st
	}
	st.Score = g.state.Score()
	st.Level = g.state.Info().Number
	st.GameOver = g.state.Finished() || g.fault != ""
	return st
}

// Snapshot returns the view of the last completed frame.
func (g *Game) Snapshot() core.View {
	if g.state == nil {
		return core.View{}
	}
	if v, ok := g.state.PreparedView(); ok {
		return v
	}
	return g.state.View()
}

// Hash returns the simulation hash, 0 before a level is loaded.
func (g *Game) Hash() uint64 {
	if g.state == nil {
		return 0
	}
	return g.state.Hash()
}

// SessionID identifies the current play session in storage.
func (g *Game) SessionID() string {
	return g.sessionID
}

// LevelSet returns the loaded set, nil when loading failed.
func (g *Game) LevelSet() *levels.Set {
	return g.set
}

// LevelSetName is the label scores are stored under.
func (g *Game) LevelSetName() string {
	return g.setName
}

// Stats summarizes the session for the score table.
func (g *Game) Stats() storage.ScoreEntry {
	if g.state == nil {
		return storage.ScoreEntry{}
	}
	return storage.ScoreEntry{
		SessionID:     g.sessionID,
		LevelSet:      g.setName,
		Score:         g.state.Score(),
		LevelReached:  g.state.Info().Number,
		LevelsCleared: g.state.Cleared(),
		Deaths:        g.state.Deaths(),
	}
}

// Fault returns the error that halted the simulation, empty while it runs.
func (g *Game) Fault() string {
	return g.fault
}

// LastFrame returns the result of the most recent frame.
func (g *Game) LastFrame() core.FrameResult {
	return g.last
}
