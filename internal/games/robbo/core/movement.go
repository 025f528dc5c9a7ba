package core

// resolveMovement runs every mover once, kind by kind in the fixed move order and by
// ascending ID within a kind. Entities spawned during a kind's turn wait for the next frame.
func (s *State) resolveMovement() error {
	if !s.moveFrame {
		return nil
	}
	for _, kind := range moveOrder {
		for _, id := range s.world.IDs(kind) {
			e, ok := s.world.Get(id)
			if !ok {
				continue
			}
			if err := s.moveOne(e); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *State) moveOne(e *Entity) error {
	switch e.Kind {
	case KindRobbo:
		return s.moveRobbo(e)
	case KindBear:
		return s.moveBear(e)
	case KindBird:
		return s.moveBird(e)
	case KindBox:
		return s.moveBox(e)
	case KindBullet, KindBlasterHead:
		return s.moveProjectile(e, 1)
	case KindLaserHead:
		return s.moveProjectile(e, s.cfg.LaserSpeed)
	case KindEyes:
		return s.fireEyes(e)
	}
	return nil
}

// attack records damage on the victim's cell; the damage stage does the killing.
func (s *State) attack(c Coord) {
	s.damage.Add(c, PowerNormal)
}

func (s *State) isPlayerAt(c Coord) bool {
	e, ok := s.world.At(c)
	return ok && e.Kind == KindRobbo
}
