package core

// drainEvents consumes the queue in FIFO order, including events pushed by handlers.
func (s *State) drainEvents() error {
	for {
		e, ok := s.events.Pop()
		if !ok {
			return nil
		}
		s.frameEvents = append(s.frameEvents, e)
		applied, err := s.handle(e)
		if err != nil {
			return err
		}
		if c, ok := CueForEvent(e); ok && applied {
			s.cue(c)
		}
	}
}

// handle applies one event and reports whether it changed anything.
func (s *State) handle(e GameEvent) (bool, error) {
	switch e.Kind {
	case EventPickupItem:
		s.pickup(e)
	case EventOpenDoor:
		return s.openDoor(e), nil
	case EventTeleport:
		return s.teleport(e)
	case EventActivateCapsule:
		return s.activateCapsule(), nil
	case EventPlayerDied:
		s.info.Failed = true
		s.deaths++
	case EventLevelComplete:
		if !s.info.Completed {
			s.info.Completed = true
			s.score += s.cfg.Points.Level
		}
	case EventItemLost:
		if e.Item == KindScrew && s.info.ScrewsRequired > 0 {
			s.info.ScrewsRequired--
			s.armCapsule()
		}
	case EventShotFired:
		if s.inv.Ammo <= 0 {
			return false, nil
		}
		s.inv.Ammo--
	case EventBombPlaced:
		if s.inv.Bombs > 0 {
			s.inv.Bombs--
		}
	}
	return true, nil
}

func (s *State) pickup(e GameEvent) {
	switch e.Item {
	case KindKey:
		s.inv.Keys++
		s.score += s.cfg.Points.Key
	case KindScrew:
		s.inv.Screws++
		s.score += s.cfg.Points.Screw
		s.armCapsule()
	case KindAmmo:
		s.inv.Ammo += s.cfg.AmmoPerPack
		s.score += s.cfg.Points.Ammo
	case KindBomb:
		s.inv.Bombs++
		s.score += s.cfg.Points.Bomb
	}
}

func (s *State) openDoor(e GameEvent) bool {
	if s.inv.Keys <= 0 {
		return false
	}
	door, ok := s.world.Get(e.Entity)
	if !ok || door.Kind != KindDoor {
		return false
	}
	s.world.Remove(door.ID)
	s.inv.Keys--
	return true
}

// teleport moves Robbo next to the following pad of the same group, trying pads in
// ascending ID order (wrapping) and neighbours starting from his facing, clockwise.
func (s *State) teleport(e GameEvent) (bool, error) {
	src, ok := s.world.Get(e.Entity)
	if !ok || src.Kind != KindTeleport {
		return false, nil
	}
	player, ok := s.world.Player()
	if !ok {
		return false, nil
	}

	var pads []*Entity
	start := -1
	for _, id := range s.world.IDs(KindTeleport) {
		pad, _ := s.world.Get(id)
		if pad.Group != src.Group {
			continue
		}
		if pad.ID == src.ID {
			start = len(pads)
		}
		pads = append(pads, pad)
	}
	for i := 1; i < len(pads); i++ {
		dest := pads[(start+i)%len(pads)]
		d := player.Dir
		for turn := 0; turn < 4; turn++ {
			cell := dest.Pos.Step(d)
			if s.world.WalkableFree(cell) {
				if err := s.world.Move(player.ID, cell); err != nil {
					return false, err
				}
				return true, nil
			}
			d = d.Right()
		}
	}
	return false, nil
}

// armCapsule starts the capsule countdown once enough screws are in.
func (s *State) armCapsule() {
	if s.info.CapsuleActive || s.capsuleTimer > 0 {
		return
	}
	if s.inv.Screws < s.info.ScrewsRequired {
		return
	}
	if s.cfg.CapsuleDelay <= 0 {
		s.events.Push(GameEvent{Kind: EventActivateCapsule})
		return
	}
	s.capsuleTimer = s.cfg.CapsuleDelay
}

func (s *State) activateCapsule() bool {
	if s.info.CapsuleActive {
		return false
	}
	s.info.CapsuleActive = true
	s.capsuleTimer = 0

	player, alive := s.world.Player()
	for _, id := range s.world.IDs(KindCapsule) {
		capsule, _ := s.world.Get(id)
		capsule.Active = true
		if alive && capsule.Pos.Manhattan(player.Pos) == 1 {
			s.events.Push(GameEvent{Kind: EventLevelComplete, Pos: capsule.Pos, Entity: capsule.ID})
		}
	}
	return true
}
