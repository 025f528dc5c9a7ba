package core

import (
	"fmt"
	"sort"
)

// Placement seeds one entity when a level is instantiated.
type Placement struct {
	Kind  Kind
	Pos   Coord
	Dir   Dir
	Param int // teleport group or eyes weapon
}

// LevelDef is the immutable description of a level: static tiles plus initial entities.
type LevelDef struct {
	Number     int
	Name       string
	Width      int
	Height     int
	Tiles      []Tile // row-major
	Placements []Placement
	Screws     int // screws required; 0 means every screw on the map
}

// NewLevelDef returns a level of the given size covered with floor.
func NewLevelDef(number, w, h int) LevelDef {
	return LevelDef{
		Number: number,
		Width:  w,
		Height: h,
		Tiles:  make([]Tile, w*h),
	}
}

// TileAt returns the tile at c, or a wall outside the level.
func (d LevelDef) TileAt(c Coord) Tile {
	if c.X < 0 || c.X >= d.Width || c.Y < 0 || c.Y >= d.Height {
		return Wall()
	}
	return d.Tiles[c.Y*d.Width+c.X]
}

// SetTile replaces the tile at c.
func (d *LevelDef) SetTile(c Coord, t Tile) {
	if c.X >= 0 && c.X < d.Width && c.Y >= 0 && c.Y < d.Height {
		d.Tiles[c.Y*d.Width+c.X] = t
	}
}

// ScrewsRequired returns how many screws activate the capsule.
func (d LevelDef) ScrewsRequired() int {
	if d.Screws > 0 {
		return d.Screws
	}
	n := 0
	for _, p := range d.Placements {
		if p.Kind == KindScrew {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the definition.
func (d LevelDef) Clone() LevelDef {
	out := d
	out.Tiles = append([]Tile(nil), d.Tiles...)
	out.Placements = append([]Placement(nil), d.Placements...)
	return out
}

// SortPlacements orders placements row-major, which fixes entity ID allocation.
func (d *LevelDef) SortPlacements() {
	sort.SliceStable(d.Placements, func(i, j int) bool {
		return d.Placements[i].Pos.Less(d.Placements[j].Pos)
	})
}

// Validate checks the structural rules every playable level obeys.
func (d LevelDef) Validate() error {
	if d.Width <= 0 || d.Height <= 0 || d.Width > MaxWidth || d.Height > MaxHeight {
		return ValidationError{
			Code:    "BAD_SIZE",
			Message: fmt.Sprintf("level %d is %dx%d, limit is %dx%d", d.Number, d.Width, d.Height, MaxWidth, MaxHeight),
		}
	}
	if len(d.Tiles) != d.Width*d.Height {
		return ValidationError{
			Code:    "BAD_TILES",
			Message: fmt.Sprintf("level %d has %d tiles, want %d", d.Number, len(d.Tiles), d.Width*d.Height),
		}
	}

	robbos := 0
	seen := make(map[Coord]Kind, len(d.Placements))
	for _, p := range d.Placements {
		if p.Kind == KindNone || p.Kind > KindTeleport {
			return ValidationError{Code: "BAD_KIND", Message: fmt.Sprintf("level %d: unknown kind at %s", d.Number, p.Pos)}
		}
		if p.Pos.X < 0 || p.Pos.X >= d.Width || p.Pos.Y < 0 || p.Pos.Y >= d.Height {
			return ValidationError{Code: "OUT_OF_BOUNDS", Message: fmt.Sprintf("level %d: %s at %s", d.Number, p.Kind, p.Pos)}
		}
		if p.Kind == KindEyes && p.Param > int(WeaponBlaster) {
			return ValidationError{
				Code:    "BAD_PARAM",
				Message: fmt.Sprintf("level %d: turret at %s has unknown weapon %d", d.Number, p.Pos, p.Param),
			}
		}
		if other, dup := seen[p.Pos]; dup {
			return ValidationError{
				Code:    "OVERLAP",
				Message: fmt.Sprintf("level %d: %s and %s share %s", d.Number, other, p.Kind, p.Pos),
			}
		}
		seen[p.Pos] = p.Kind

		tile := d.TileAt(p.Pos)
		if !tile.Walkable() && !(p.Kind == KindBird && tile.Flyable()) {
			return ValidationError{
				Code:    "BLOCKED_PLACEMENT",
				Message: fmt.Sprintf("level %d: %s placed on %s at %s", d.Number, p.Kind, tile.Kind, p.Pos),
			}
		}
		if p.Kind == KindRobbo {
			robbos++
		}
	}
	if robbos != 1 {
		return ValidationError{
			Code:    "ROBBO_COUNT",
			Message: fmt.Sprintf("level %d has %d Robbo markers, want exactly 1", d.Number, robbos),
		}
	}
	return nil
}

// Instantiate validates the definition and builds a fresh world from it.
// Entity IDs follow placement order, so the same definition always yields the same world.
func (d LevelDef) Instantiate() (*World, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	w := NewWorld(d.Width, d.Height)
	copy(w.grid.tiles, d.Tiles)
	for _, p := range d.Placements {
		e, err := w.Spawn(p.Kind, p.Pos, p.Dir)
		if err != nil {
			return nil, err
		}
		switch p.Kind {
		case KindTeleport:
			e.Group = p.Param
		case KindEyes:
			e.Weapon = Weapon(p.Param)
		}
	}
	return w, nil
}

// LevelSource provides level definitions by index. The levels package implements it.
type LevelSource interface {
	Len() int
	Level(index int) (LevelDef, error)
}

// Levels is an in-memory LevelSource.
type Levels []LevelDef

// Len returns the number of levels.
func (l Levels) Len() int { return len(l) }

// Level returns the level at index.
func (l Levels) Level(index int) (LevelDef, error) {
	if index < 0 || index >= len(l) {
		return LevelDef{}, fmt.Errorf("level index %d out of range [0,%d)", index, len(l))
	}
	return l[index].Clone(), nil
}
