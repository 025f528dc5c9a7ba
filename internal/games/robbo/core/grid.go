package core

// Grid holds the static tile layer and the occupancy layer of one level.
// Both layers are row-major slices of Width*Height cells.
type Grid struct {
	Width  int
	Height int
	tiles  []Tile
	occ    []EntityID
}

// NewGrid creates a grid covered with floor and no occupants.
func NewGrid(w, h int) *Grid {
	return &Grid{
		Width:  w,
		Height: h,
		tiles:  make([]Tile, w*h),
		occ:    make([]EntityID, w*h),
	}
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.Width + c.X
}

// InBounds reports whether c lies within the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Tile returns the static tile at c. Cells outside the grid read as walls.
func (g *Grid) Tile(c Coord) Tile {
	if !g.InBounds(c) {
		return Wall()
	}
	return g.tiles[g.index(c)]
}

// SetTile replaces the static tile at c.
func (g *Grid) SetTile(c Coord, t Tile) {
	if g.InBounds(c) {
		g.tiles[g.index(c)] = t
	}
}

// Occupant returns the entity ID occupying c, or 0.
func (g *Grid) Occupant(c Coord) EntityID {
	if !g.InBounds(c) {
		return 0
	}
	return g.occ[g.index(c)]
}

func (g *Grid) setOccupant(c Coord, id EntityID) {
	g.occ[g.index(c)] = id
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	out := &Grid{
		Width:  g.Width,
		Height: g.Height,
		tiles:  make([]Tile, len(g.tiles)),
		occ:    make([]EntityID, len(g.occ)),
	}
	copy(out.tiles, g.tiles)
	copy(out.occ, g.occ)
	return out
}

// Equal reports whether both layers match cell for cell.
func (g *Grid) Equal(other *Grid) bool {
	if g.Width != other.Width || g.Height != other.Height {
		return false
	}
	for i := range g.tiles {
		if g.tiles[i] != other.tiles[i] || g.occ[i] != other.occ[i] {
			return false
		}
	}
	return true
}
