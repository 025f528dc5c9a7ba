package core

// Sprite is the render collaborator's view of one entity.
type Sprite struct {
	ID     EntityID
	Kind   Kind
	Pos    Coord
	Dir    Dir
	Phase  int // animation frame, advances every keyframe
	Active bool
}

// View is a read-only snapshot of a completed frame.
type View struct {
	Width     int
	Height    int
	Tick      uint64
	Tiles     []Tile
	Sprites   []Sprite
	Inventory Inventory
	Info      LevelInfo
	Score     int
	Deaths    int
	Finished  bool
}

// TileAt returns the tile at c.
func (v View) TileAt(c Coord) Tile {
	if c.X < 0 || c.X >= v.Width || c.Y < 0 || c.Y >= v.Height {
		return Wall()
	}
	return v.Tiles[c.Y*v.Width+c.X]
}

// View builds a snapshot of the current state.
func (s *State) View() View {
	g := s.world.grid
	v := View{
		Width:     g.Width,
		Height:    g.Height,
		Tick:      s.tick,
		Tiles:     append([]Tile(nil), g.tiles...),
		Inventory: s.inv,
		Info:      s.info,
		Score:     s.score,
		Deaths:    s.deaths,
		Finished:  s.finished,
	}
	phase := int(s.tick/uint64(s.cfg.KeyframeInterval)) % 2
	for _, e := range s.world.Entities() {
		v.Sprites = append(v.Sprites, Sprite{
			ID:     e.ID,
			Kind:   e.Kind,
			Pos:    e.Pos,
			Dir:    e.Dir,
			Phase:  phase,
			Active: e.Active,
		})
	}
	return v
}

// PreparedView returns the view built by the reload stage of the last frame.
// It is absent when rendering is disabled.
func (s *State) PreparedView() (View, bool) {
	if s.prepared == nil {
		return View{}, false
	}
	return *s.prepared, true
}
