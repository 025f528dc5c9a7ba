// Package core implements the Robbo simulation: a tile grid, the entities living on it
// and the staged pipeline that advances them one frame at a time.
// This package is UI-agnostic and deterministic.
package core

// Reference dimensions and cadence of the classic game.
const (
	MaxWidth                = 31
	MaxHeight               = 16
	DefaultFPS              = 30
	DefaultKeyframeInterval = 4
)

// Dir represents a facing or movement direction.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// Dirs lists the four directions clockwise starting from Up.
var Dirs = [4]Dir{DirUp, DirRight, DirDown, DirLeft}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reverse direction.
func (d Dir) Opposite() Dir {
	return (d + 2) % 4
}

// Left returns the direction after a quarter turn counterclockwise.
func (d Dir) Left() Dir {
	return (d + 3) % 4
}

// Right returns the direction after a quarter turn clockwise.
func (d Dir) Right() Dir {
	return (d + 1) % 4
}

// Power is the strength of a damage entry.
type Power uint8

const (
	PowerNone Power = iota
	PowerNormal
	PowerHeavy
)

// String returns the string representation of a power level.
func (p Power) String() string {
	switch p {
	case PowerNone:
		return "none"
	case PowerNormal:
		return "normal"
	case PowerHeavy:
		return "heavy"
	default:
		return "unknown"
	}
}

// Weapon selects what a turret fires.
type Weapon uint8

const (
	WeaponBullet Weapon = iota
	WeaponLaser
	WeaponBlaster
)

// Projectile returns the entity kind spawned when the weapon fires.
func (w Weapon) Projectile() Kind {
	switch w {
	case WeaponLaser:
		return KindLaserHead
	case WeaponBlaster:
		return KindBlasterHead
	default:
		return KindBullet
	}
}

// Intent is the player's input for one frame, already abstracted from keys.
type Intent struct {
	Dir    Dir
	Move   bool // Dir is meaningful
	Fire   bool
	Bomb   bool
	Reload bool
}

// Walk returns an intent to move one cell in d.
func Walk(d Dir) Intent {
	return Intent{Dir: d, Move: true}
}

// Shoot returns an intent to fire in d.
func Shoot(d Dir) Intent {
	return Intent{Dir: d, Move: true, Fire: true}
}
