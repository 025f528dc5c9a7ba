package core

import (
	"testing"
)

func mustLevel(t *testing.T, rows ...string) LevelDef {
	t.Helper()
	def, err := LevelFromRows(1, rows)
	if err != nil {
		t.Fatalf("LevelFromRows() failed: %v", err)
	}
	def.Name = "test"
	return def
}

func newTestState(t *testing.T, cfg Config, rows ...string) *State {
	t.Helper()
	s, err := NewState(Levels{mustLevel(t, rows...)}, cfg, 0)
	if err != nil {
		t.Fatalf("NewState() failed: %v", err)
	}
	return s
}

func step(t *testing.T, s *State, in Intent) FrameResult {
	t.Helper()
	res, err := s.Step(in)
	if err != nil {
		t.Fatalf("Step() failed at tick %d: %v", s.Tick(), err)
	}
	return res
}

func idle(t *testing.T, s *State, frames int) []FrameResult {
	t.Helper()
	out := make([]FrameResult, 0, frames)
	for i := 0; i < frames; i++ {
		out = append(out, step(t, s, Intent{}))
	}
	return out
}

func playerPos(t *testing.T, s *State) Coord {
	t.Helper()
	p, ok := s.World().Player()
	if !ok {
		t.Fatal("player is missing")
	}
	return p.Pos
}

func hasEvent(events []GameEvent, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func countEvents(results []FrameResult, kind EventKind) int {
	n := 0
	for _, r := range results {
		for _, e := range r.Events {
			if e.Kind == kind {
				n++
			}
		}
	}
	return n
}

// room is a 10x8 walled room with Robbo at (5,5).
var room = []string{
	"OOOOOOOOOO",
	"O........O",
	"O........O",
	"O........O",
	"O........O",
	"O....R...O",
	"O........O",
	"OOOOOOOOOO",
}

func withCell(rows []string, x, y int, glyph rune) []string {
	out := append([]string(nil), rows...)
	r := []rune(out[y])
	r[x] = glyph
	out[y] = string(r)
	return out
}
