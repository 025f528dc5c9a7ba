package robbo

import (
	platformcore "github.com/vovakirdan/tui-robbo/internal/core"
	"github.com/vovakirdan/tui-robbo/internal/games/robbo/core"
)

// latch keeps the last command pressed until a movement frame consumes it.
// Terminals deliver key presses, not held keys, and movers only act every
// MoveInterval frames, so a press between two movement frames would otherwise be lost.
type latch struct {
	pending core.Intent
	set     bool
}

// press merges one frame of input into the latch. A new direction or command
// replaces the previous one; fire and bomb keep the held direction.
func (l *latch) press(in platformcore.InputFrame) {
	dir, moved := directionOf(in)
	fire := in.Has(platformcore.ActionFire)
	bomb := in.Has(platformcore.ActionBomb)
	if !moved && !fire && !bomb {
		return
	}

	next := core.Intent{Fire: fire, Bomb: bomb && !fire}
	switch {
	case moved:
		next.Dir, next.Move = dir, true
	case l.set && l.pending.Move:
		next.Dir, next.Move = l.pending.Dir, true
	}
	l.pending = next
	l.set = true
}

// intent returns what the player asks for this frame.
func (l *latch) intent() core.Intent {
	if !l.set {
		return core.Intent{}
	}
	return l.pending
}

func (l *latch) clear() {
	l.pending = core.Intent{}
	l.set = false
}

// directionOf picks one direction from the frame. Vertical wins when both axes are pressed.
func directionOf(in platformcore.InputFrame) (core.Dir, bool) {
	switch {
	case in.Has(platformcore.ActionUp):
		return core.DirUp, true
	case in.Has(platformcore.ActionDown):
		return core.DirDown, true
	case in.Has(platformcore.ActionLeft):
		return core.DirLeft, true
	case in.Has(platformcore.ActionRight):
		return core.DirRight, true
	}
	return core.DirUp, false
}
