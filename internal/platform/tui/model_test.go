package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-robbo/internal/core"
	"github.com/vovakirdan/tui-robbo/internal/storage"
)

// countingGame ends after a fixed number of steps with a fixed score.
type countingGame struct {
	steps  int
	resets int
	endAt  int
	score  int
	lastIn core.InputFrame
	paused bool
}

func (g *countingGame) ID() string    { return "counting" }
func (g *countingGame) Title() string { return "Counting" }

func (g *countingGame) Reset(core.RuntimeConfig) {
	g.steps = 0
	g.resets++
	g.paused = false
}

func (g *countingGame) Step(in core.InputFrame) core.StepResult {
	g.lastIn = in.Clone()
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if !g.paused {
		g.steps++
	}
	return core.StepResult{State: g.State()}
}

func (g *countingGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "counting")
}

func (g *countingGame) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.steps >= g.endAt, Paused: g.paused}
}

type memScores struct {
	saved []storage.ScoreEntry
}

func (m *memScores) SaveScore(e storage.ScoreEntry) (int64, error) {
	m.saved = append(m.saved, e)
	return int64(len(m.saved)), nil
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(TickMsg{})
	return next.(Model)
}

func pressKey(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelSavesScoreOnceAtGameOver(t *testing.T) {
	game := &countingGame{endAt: 3, score: 40}
	scores := &memScores{}
	m := NewModel(game, scores, core.DefaultConfig(), nil)
	m.Init()

	for range 6 {
		m = tick(t, m)
	}
	if !m.State().GameOver {
		t.Fatal("game should be over")
	}
	if len(scores.saved) != 1 {
		t.Fatalf("saved %d scores, want 1", len(scores.saved))
	}
	if scores.saved[0].LevelSet != "counting" || scores.saved[0].Score != 40 {
		t.Errorf("saved %+v", scores.saved[0])
	}

	// Quitting afterwards must not store the same session again.
	m = pressKey(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	if len(scores.saved) != 1 {
		t.Errorf("saved %d scores after quit, want 1", len(scores.saved))
	}
}

func TestModelSkipsZeroScore(t *testing.T) {
	scores := &memScores{}
	m := NewModel(&countingGame{endAt: 1}, scores, core.DefaultConfig(), nil)
	m.Init()
	m = tick(t, m)
	m = pressKey(t, m, runeKey('q'))
	if len(scores.saved) != 0 {
		t.Errorf("zero score was saved: %+v", scores.saved)
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	game := &countingGame{endAt: 1, score: 5}
	scores := &memScores{}
	m := NewModel(game, scores, core.DefaultConfig(), nil)
	m.Init()
	m = tick(t, m)

	m = pressKey(t, m, runeKey('r'))
	m = tick(t, m)
	if game.resets != 2 {
		t.Errorf("resets = %d, want 2", game.resets)
	}
	if m.State().GameOver {
		t.Error("restart should clear game over")
	}

	m = tick(t, m)
	if len(scores.saved) != 2 {
		t.Errorf("saved %d scores, want one per finished session", len(scores.saved))
	}
}

func TestModelForwardsInputOnce(t *testing.T) {
	game := &countingGame{endAt: 100}
	m := NewModel(game, nil, core.DefaultConfig(), nil)
	m.Init()

	m = pressKey(t, m, runeKey('d'))
	m = tick(t, m)
	if !game.lastIn.Has(core.ActionRight) {
		t.Error("first tick should see the key press")
	}
	m = tick(t, m)
	if !game.lastIn.Empty() {
		t.Error("input should be cleared after a tick")
	}
}

func TestModelBackOnlyWhenAllowed(t *testing.T) {
	game := &countingGame{endAt: 100}
	m := NewModel(game, nil, core.DefaultConfig(), nil)
	m.Init()

	m = pressKey(t, m, runeKey('p'))
	m = tick(t, m)
	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Error("back should be ignored without WithBack")
	}

	m = NewModel(game, nil, core.DefaultConfig(), nil).WithBack()
	m.Init()
	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Error("back should be ignored while playing")
	}
	m = tick(t, m)
	m = pressKey(t, m, runeKey('p'))
	m = tick(t, m)
	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back should leave a paused game")
	}
	if m.View() != "" {
		t.Error("view should be empty after leaving")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	game := &countingGame{endAt: 100}
	m := NewModel(game, nil, core.DefaultConfig(), nil)
	m.Init()
	m = tick(t, m)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	if game.resets != 1 || game.steps != 1 {
		t.Errorf("resize restarted the game: resets=%d steps=%d", game.resets, game.steps)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen is %dx%d", m.screen.Width(), m.screen.Height())
	}
}
