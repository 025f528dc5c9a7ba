package core

// moveRobbo resolves the player's turn. A field override beats the intent;
// otherwise fire, then bomb placement, then walking.
func (s *State) moveRobbo(e *Entity) error {
	if d, ok := s.forced[e.ID]; ok {
		return s.stepRobbo(e, d)
	}

	in := s.input
	facing := e.Dir
	if in.Move {
		facing = in.Dir
	}

	switch {
	case in.Fire:
		e.Dir = facing
		return s.robboFire(e)
	case in.Bomb:
		e.Dir = facing
		return s.placeBomb(e)
	case in.Move:
		e.Dir = in.Dir
		return s.stepRobbo(e, in.Dir)
	}
	return nil
}

// stepRobbo tries to walk one cell, interacting with whatever occupies it.
func (s *State) stepRobbo(e *Entity, d Dir) error {
	to := e.Pos.Step(d)
	g := s.world.grid
	if !g.InBounds(to) {
		return nil
	}

	occ, taken := s.world.At(to)
	if !taken {
		if !g.Tile(to).Walkable() {
			return nil
		}
		if err := s.world.Move(e.ID, to); err != nil {
			return err
		}
		s.cue(CueWalk)
		return nil
	}

	switch {
	case occ.Kind == KindBox:
		beyond := to.Step(d)
		if !s.world.WalkableFree(beyond) {
			return nil
		}
		if err := s.world.Move(occ.ID, beyond); err != nil {
			return err
		}
		if err := s.world.Move(e.ID, to); err != nil {
			return err
		}
		s.cue(CueWalk)

	case occ.Kind.IsItem():
		s.world.Remove(occ.ID)
		if err := s.world.Move(e.ID, to); err != nil {
			return err
		}
		s.events.Push(GameEvent{Kind: EventPickupItem, Pos: to, Entity: occ.ID, Item: occ.Kind})

	case occ.Kind == KindDoor:
		if s.inv.Keys > 0 {
			s.events.Push(GameEvent{Kind: EventOpenDoor, Pos: to, Entity: occ.ID})
		}

	case occ.Kind == KindTeleport:
		s.events.Push(GameEvent{Kind: EventTeleport, Pos: to, Entity: occ.ID})

	case occ.Kind == KindCapsule:
		if occ.Active {
			s.events.Push(GameEvent{Kind: EventLevelComplete, Pos: to, Entity: occ.ID})
		}

	case occ.Kind.IsHostile():
		s.attack(e.Pos)
	}
	return nil
}

// robboFire spends one round: a bullet spawns in the facing cell, or an occupied or
// crumbling facing cell takes the hit point-blank. Walls swallow nothing and cost nothing.
func (s *State) robboFire(e *Entity) error {
	if s.inv.Ammo <= 0 {
		return nil
	}
	to := e.Pos.Step(e.Dir)
	g := s.world.grid
	if !g.InBounds(to) || g.Tile(to).Kind == TileWall {
		return nil
	}

	if _, taken := s.world.At(to); taken || !g.Tile(to).PassesShots() {
		s.addShot(Shot{Target: to, Power: PowerNormal})
	} else if _, err := s.world.Spawn(KindBullet, to, e.Dir); err != nil {
		return err
	}
	s.events.Push(GameEvent{Kind: EventShotFired, Pos: to, Entity: e.ID})
	return nil
}

// placeBomb drops a carried bomb on the free facing cell.
func (s *State) placeBomb(e *Entity) error {
	if s.inv.Bombs <= 0 {
		return nil
	}
	to := e.Pos.Step(e.Dir)
	if !s.world.WalkableFree(to) {
		return nil
	}
	if _, err := s.world.Spawn(KindBomb, to, e.Dir); err != nil {
		return err
	}
	s.events.Push(GameEvent{Kind: EventBombPlaced, Pos: to, Entity: e.ID})
	return nil
}
