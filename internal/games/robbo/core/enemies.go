package core

// moveBear chases Robbo when he is within sight, otherwise patrols keeping a wall on
// its left. Blocked moves are skipped for the frame.
func (s *State) moveBear(e *Entity) error {
	if d, ok := s.forced[e.ID]; ok {
		return s.walkIfFree(e, d)
	}

	if p, ok := s.world.Player(); ok && e.Pos.Manhattan(p.Pos) <= s.cfg.BearSight {
		for _, d := range pursuitDirs(e.Pos, p.Pos) {
			to := e.Pos.Step(d)
			if to == p.Pos {
				e.Dir = d
				s.attack(to)
				return nil
			}
			if s.world.WalkableFree(to) {
				e.Dir = d
				return s.world.Move(e.ID, to)
			}
		}
		return nil
	}

	for _, d := range [...]Dir{e.Dir.Left(), e.Dir, e.Dir.Right(), e.Dir.Opposite()} {
		to := e.Pos.Step(d)
		if s.isPlayerAt(to) {
			e.Dir = d
			s.attack(to)
			return nil
		}
		if s.world.WalkableFree(to) {
			e.Dir = d
			return s.world.Move(e.ID, to)
		}
	}
	return nil
}

// pursuitDirs returns the directions that close the distance from -> to,
// major axis first; ties prefer the horizontal axis.
func pursuitDirs(from, to Coord) []Dir {
	dx, dy := to.X-from.X, to.Y-from.Y
	var h, v []Dir
	if dx > 0 {
		h = []Dir{DirRight}
	} else if dx < 0 {
		h = []Dir{DirLeft}
	}
	if dy > 0 {
		v = []Dir{DirDown}
	} else if dy < 0 {
		v = []Dir{DirUp}
	}
	if abs(dy) > abs(dx) {
		return append(v, h...)
	}
	return append(h, v...)
}

// moveBird flies straight over floor and rubble and turns back when blocked.
func (s *State) moveBird(e *Entity) error {
	to := e.Pos.Step(e.Dir)
	if s.isPlayerAt(to) {
		s.attack(to)
		return nil
	}
	if s.world.FlyableFree(to) {
		return s.world.Move(e.ID, to)
	}
	e.Dir = e.Dir.Opposite()
	return nil
}

// moveBox only moves when a field pushes it.
func (s *State) moveBox(e *Entity) error {
	if d, ok := s.forced[e.ID]; ok {
		return s.walkIfFree(e, d)
	}
	return nil
}

func (s *State) walkIfFree(e *Entity, d Dir) error {
	to := e.Pos.Step(d)
	if !s.world.WalkableFree(to) {
		return nil
	}
	return s.world.Move(e.ID, to)
}

// fireEyes discharges a charged turret along its facing.
func (s *State) fireEyes(e *Entity) error {
	if e.Charge < s.cfg.EyesFireInterval {
		return nil
	}
	to := e.Pos.Step(e.Dir)
	g := s.world.grid
	if !g.InBounds(to) || g.Tile(to).Kind == TileWall {
		return nil
	}
	e.Charge = 0

	power := PowerNormal
	if e.Weapon == WeaponBlaster {
		power = PowerHeavy
	}
	if _, taken := s.world.At(to); taken || !g.Tile(to).PassesShots() {
		s.addShot(Shot{Target: to, Power: power})
		s.cue(CueShot)
		return nil
	}
	if _, err := s.world.Spawn(e.Weapon.Projectile(), to, e.Dir); err != nil {
		return err
	}
	s.cue(CueSpawn)
	return nil
}
