package robbo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-robbo/internal/config"
	platformcore "github.com/vovakirdan/tui-robbo/internal/core"
	"github.com/vovakirdan/tui-robbo/internal/games/robbo/core"
	"github.com/vovakirdan/tui-robbo/internal/registry"
	"github.com/vovakirdan/tui-robbo/internal/storage"
)

const corridorSet = `[set]
name=Corridor test
[level]
number=7
name=Corridor
size=8x3
[data]
OOOOOOOO
OR..T.!O
OOOOOOOO
[end]
`

type memRecorder struct {
	results []storage.LevelResult
}

func (m *memRecorder) SaveLevelResult(r storage.LevelResult) (int64, error) {
	m.results = append(m.results, r)
	return int64(len(m.results)), nil
}

type cueLog struct {
	cues []core.Cue
}

func (c *cueLog) Play(cues []core.Cue) {
	c.cues = append(c.cues, cues...)
}

type frameCounter struct {
	frames []core.View
}

func (f *frameCounter) Publish(v core.View) {
	f.frames = append(f.frames, v)
}

func writeSet(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "set.txt")
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func newGame(t *testing.T, o Options) *Game {
	t.Helper()
	if o.LevelSet == "" {
		o.LevelSet = writeSet(t, corridorSet)
	}
	if o.Config.Simulation.FPS == 0 {
		o.Config = config.DefaultRobboConfig()
	}
	g := NewWithOptions(o)
	g.Reset(platformcore.DefaultConfig())
	if g.state == nil {
		t.Fatalf("Reset() did not start a level: %v", g.loadErr)
	}
	return g
}

func press(actions ...platformcore.Action) platformcore.InputFrame {
	in := platformcore.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func robboAt(t *testing.T, g *Game) core.Coord {
	t.Helper()
	for _, sp := range g.Snapshot().Sprites {
		if sp.Kind == core.KindRobbo {
			return sp.Pos
		}
	}
	t.Fatal("no robbo in view")
	return core.Coord{}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatalf("game %q is not registered", GameID)
	}
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if _, ok := g.(*Game); !ok {
		t.Errorf("Create() returned %T", g)
	}
}

func TestCorridorCompletesAndRecords(t *testing.T) {
	rec := &memRecorder{}
	cues := &cueLog{}
	g := newGame(t, Options{Recorder: rec, Cues: cues})

	if got := g.State().Level; got != 7 {
		t.Fatalf("Level = %d, expected 7", got)
	}

	for i := 0; i < 80 && len(rec.results) == 0; i++ {
		g.Step(press(platformcore.ActionRight))
	}
	if len(rec.results) == 0 {
		t.Fatal("level was never completed")
	}

	r := rec.results[0]
	if r.Outcome != storage.OutcomeCompleted {
		t.Errorf("Outcome = %s, expected completed", r.Outcome)
	}
	if r.LevelNumber != 7 || r.LevelSet != "Corridor test" {
		t.Errorf("unexpected result: %+v", r)
	}
	if r.SessionID == "" || r.SessionID != g.SessionID() {
		t.Errorf("SessionID = %q, expected %q", r.SessionID, g.SessionID())
	}
	if r.Frames <= 0 {
		t.Errorf("Frames = %d, expected positive", r.Frames)
	}
	if g.State().Score <= 0 {
		t.Errorf("Score = %d, expected points for the screw and the level", g.State().Score)
	}

	seen := map[core.Cue]bool{}
	for _, c := range cues.cues {
		seen[c] = true
	}
	for _, want := range []core.Cue{core.CueWalk, core.CueScrew} {
		if !seen[want] {
			t.Errorf("cue %s was not played", want)
		}
	}

	stats := g.Stats()
	if stats.LevelsCleared != 1 || stats.LevelSet != "Corridor test" {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestRestartRecordsAbandonedAttempt(t *testing.T) {
	rec := &memRecorder{}
	g := newGame(t, Options{Recorder: rec})

	for i := 0; i < 3; i++ {
		g.Step(press())
	}
	g.Step(press(platformcore.ActionRestart))

	if !g.LastFrame().Reloaded {
		t.Fatal("restart did not reload the level")
	}
	if len(rec.results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(rec.results))
	}
	if r := rec.results[0]; r.Outcome != storage.OutcomeAbandoned || r.Frames != 3 {
		t.Errorf("unexpected result: %+v", r)
	}
	if got := robboAt(t, g); got != (core.Coord{X: 1, Y: 1}) {
		t.Errorf("robbo at %v after restart, expected (1,1)", got)
	}
}

func TestPressSurvivesUntilMoveFrame(t *testing.T) {
	cfg := config.DefaultRobboConfig()
	cfg.Simulation.MoveInterval = 2
	g := newGame(t, Options{Config: cfg})

	g.Step(press())                          // tick 0, movement frame
	g.Step(press(platformcore.ActionRight)) // tick 1, movers idle
	if got := robboAt(t, g); got != (core.Coord{X: 1, Y: 1}) {
		t.Fatalf("robbo moved on an idle frame: %v", got)
	}
	g.Step(press()) // tick 2, the latched press is consumed
	if got := robboAt(t, g); got != (core.Coord{X: 2, Y: 1}) {
		t.Errorf("robbo at %v, expected (2,1)", got)
	}
	g.Step(press())
	g.Step(press())
	if got := robboAt(t, g); got != (core.Coord{X: 2, Y: 1}) {
		t.Errorf("latched press was replayed: robbo at %v", got)
	}
}

func TestLatch(t *testing.T) {
	var l latch
	if in := l.intent(); in != (core.Intent{}) {
		t.Errorf("empty latch gave %+v", in)
	}

	l.press(press(platformcore.ActionRight))
	if in := l.intent(); in != core.Walk(core.DirRight) {
		t.Errorf("intent = %+v, expected walk right", in)
	}

	l.press(press(platformcore.ActionFire))
	if in := l.intent(); in != core.Shoot(core.DirRight) {
		t.Errorf("fire after a held direction = %+v, expected shoot right", in)
	}

	l.press(press())
	if in := l.intent(); in != core.Shoot(core.DirRight) {
		t.Errorf("an empty frame changed the latch: %+v", in)
	}

	l.clear()
	l.press(press(platformcore.ActionFire, platformcore.ActionBomb))
	if in := l.intent(); !in.Fire || in.Bomb || in.Move {
		t.Errorf("fire with bomb = %+v, expected fire in the facing direction", in)
	}

	l.clear()
	l.press(press(platformcore.ActionUp, platformcore.ActionLeft))
	if in := l.intent(); in != core.Walk(core.DirUp) {
		t.Errorf("diagonal press = %+v, expected walk up", in)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newGame(t, Options{})

	g.Step(press(platformcore.ActionPause))
	if !g.State().Paused {
		t.Fatal("game is not paused")
	}
	h := g.Hash()
	for i := 0; i < 5; i++ {
		g.Step(press(platformcore.ActionRight))
	}
	if g.Hash() != h {
		t.Error("simulation advanced while paused")
	}

	g.Step(press(platformcore.ActionPause))
	if g.State().Paused {
		t.Error("game did not resume")
	}
}

func TestFaultHaltsSimulation(t *testing.T) {
	g := newGame(t, Options{})
	g.Step(press())
	tick := g.state.Tick()

	g.halt(&core.ConsistencyError{Tick: tick, Stage: core.StageMove, Code: "DOUBLE_OCCUPANCY", Message: "two entities at (2,1)"})
	g.Step(press(platformcore.ActionRight))

	if g.state.Tick() != tick {
		t.Error("simulation advanced after a fault")
	}
	st := g.State()
	if !st.GameOver || !strings.Contains(st.Fault, "DOUBLE_OCCUPANCY") {
		t.Errorf("unexpected state after fault: %+v", st)
	}

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Simulation halted") {
		t.Error("fault overlay missing")
	}
}

func TestPublishesEveryNthFrame(t *testing.T) {
	cfg := config.DefaultRobboConfig()
	cfg.Spectate.Every = 5
	frames := &frameCounter{}
	g := newGame(t, Options{Config: cfg, Frames: frames})

	for i := 0; i < 20; i++ {
		g.Step(press())
	}
	if len(frames.frames) != 4 {
		t.Errorf("published %d frames, expected 4", len(frames.frames))
	}
	for i := 1; i < len(frames.frames); i++ {
		if d := frames.frames[i].Tick - frames.frames[i-1].Tick; d != 5 {
			t.Errorf("frames %d and %d are %d ticks apart, expected 5", i-1, i, d)
		}
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, Options{})
	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "ROBBO") || !strings.Contains(screen.Row(0), "Corridor") {
		t.Errorf("HUD title missing: %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(1), "Screws 1") {
		t.Errorf("HUD status missing screws: %q", screen.Row(1))
	}

	// zoom 2: the 8-column corridor is 16 columns wide, centered
	row := screen.Row(hudHeight + 1)
	x0 := (80 - 16) / 2
	if got := []rune(row)[x0+2]; got != 'R' {
		t.Errorf("expected robbo at column %d, row is %q", x0+2, row)
	}
	if got := []rune(screen.Row(hudHeight))[x0]; got != '█' {
		t.Errorf("expected a wall at the grid corner, got %q", got)
	}
	if !strings.Contains(row, "T") || !strings.Contains(row, "!") {
		t.Errorf("screw or capsule missing: %q", row)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newGame(t, Options{})
	screen := platformcore.NewScreen(20, 5)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected the too-small overlay:\n%s", screen.String())
	}
}

func TestFitZoom(t *testing.T) {
	tests := []struct {
		want, gridW, cols, expected int
	}{
		{2, 31, 80, 2},
		{3, 31, 80, 2},
		{2, 31, 40, 1},
		{0, 8, 80, 1},
		{4, 8, 80, 4},
	}
	for _, tt := range tests {
		if got := fitZoom(tt.want, tt.gridW, tt.cols); got != tt.expected {
			t.Errorf("fitZoom(%d, %d, %d) = %d, expected %d", tt.want, tt.gridW, tt.cols, got, tt.expected)
		}
	}
}

func TestMissingLevelSet(t *testing.T) {
	g := NewWithOptions(Options{LevelSet: filepath.Join(t.TempDir(), "missing.txt"), Config: config.DefaultRobboConfig()})
	g.Reset(platformcore.DefaultConfig())

	if !g.State().GameOver {
		t.Error("a game without levels should report game over")
	}
	g.Step(press(platformcore.ActionRight))

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Level set unavailable") {
		t.Error("load error overlay missing")
	}
}

func TestUnknownStartLevelFallsBack(t *testing.T) {
	g := newGame(t, Options{Level: 99})
	if got := g.State().Level; got != 7 {
		t.Errorf("Level = %d, expected the first level (7)", got)
	}
}

func TestCoreConfig(t *testing.T) {
	cfg := config.DefaultRobboConfig()
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = 1

	cc := CoreConfig(cfg)
	if cc.BearSight != 10 || cc.EyesFireInterval != 2 || cc.CapsuleDelay != 4 {
		t.Errorf("difficulty not applied: sight %d, eyes %d, capsule %d", cc.BearSight, cc.EyesFireInterval, cc.CapsuleDelay)
	}
	if cc.Points.Screw != cfg.Scoring.Screw || cc.Points.Level != cfg.Scoring.Level {
		t.Errorf("points not copied: %+v", cc.Points)
	}
	if cfg.Enemies.BearSight != 6 {
		t.Error("CoreConfig modified its argument")
	}

	bc := BenchmarkConfig(config.DefaultRobboConfig(), false)
	if !bc.Benchmark || bc.Render || bc.BenchmarkRestart != 600 || !bc.WrapLevels {
		t.Errorf("unexpected benchmark config: %+v", bc)
	}
}
