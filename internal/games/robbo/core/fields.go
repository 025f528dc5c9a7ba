package core

// resolveFields computes the forced directions of this frame. The first override wins:
// field tiles, then magnets, then force fields.
func (s *State) resolveFields() {
	for id := range s.forced {
		delete(s.forced, id)
	}

	for _, e := range s.world.Entities() {
		if !e.Kind.IsWalker() {
			continue
		}
		if t := s.world.grid.Tile(e.Pos); t.Kind == TileField {
			s.force(e.ID, t.Dir)
		}
	}

	for _, id := range s.world.IDs(KindMagnet) {
		m, _ := s.world.Get(id)
		s.magnetPull(m)
	}

	for _, id := range s.world.IDs(KindForceField) {
		f, _ := s.world.Get(id)
		s.forceBeam(f)
	}
}

func (s *State) force(id EntityID, d Dir) {
	if _, taken := s.forced[id]; !taken {
		s.forced[id] = d
	}
}

// magnetPull scans the magnet's facing line up to the first obstacle. Robbo found there
// is dragged toward the magnet; touching its face kills him.
func (s *State) magnetPull(m *Entity) {
	g := s.world.grid
	c := m.Pos
	for dist := 1; ; dist++ {
		c = c.Step(m.Dir)
		if !g.InBounds(c) || !g.Tile(c).PassesShots() {
			return
		}
		e, ok := s.world.At(c)
		if !ok {
			continue
		}
		if e.Kind == KindRobbo {
			if dist == 1 {
				s.damage.Add(c, PowerNormal)
			} else {
				s.force(e.ID, m.Dir.Opposite())
			}
		}
		return
	}
}

// forceBeam pushes the first walker inside the beam in the field's facing direction.
func (s *State) forceBeam(f *Entity) {
	g := s.world.grid
	c := f.Pos
	for i := 0; i < s.cfg.ForceFieldRange; i++ {
		c = c.Step(f.Dir)
		if !g.InBounds(c) || !g.Tile(c).PassesShots() {
			return
		}
		e, ok := s.world.At(c)
		if !ok {
			continue
		}
		if e.Kind.IsWalker() {
			s.force(e.ID, f.Dir)
		}
		return
	}
}

// Forced returns the direction a field imposes on an entity this frame.
func (s *State) Forced(id EntityID) (Dir, bool) {
	d, ok := s.forced[id]
	return d, ok
}
