package core

// Shot is a projectile that reached something it cannot enter.
type Shot struct {
	Target     Coord
	Power      Power
	Projectile EntityID // 0 for point-blank shots
}

func (s *State) addShot(sh Shot) {
	s.shots = append(s.shots, sh)
}

func projectilePower(k Kind) Power {
	if k == KindBlasterHead {
		return PowerHeavy
	}
	return PowerNormal
}

// moveProjectile advances a projectile up to speed cells. The first blocked step turns it
// into a shot candidate; it never passes through anything.
func (s *State) moveProjectile(e *Entity, speed int) error {
	for i := 0; i < speed; i++ {
		to := e.Pos.Step(e.Dir)
		if s.world.grid.InBounds(to) && s.world.grid.Tile(to).PassesShots() && s.world.grid.Occupant(to) == 0 {
			if err := s.world.Move(e.ID, to); err != nil {
				return err
			}
			continue
		}
		s.addShot(Shot{Target: to, Power: projectilePower(e.Kind), Projectile: e.ID})
		return nil
	}
	return nil
}

// resolveShots turns shot candidates into damage and removes the spent projectiles.
func (s *State) resolveShots() {
	for _, sh := range s.shots {
		if s.world.grid.InBounds(sh.Target) {
			s.damage.Add(sh.Target, sh.Power)
		}
		if sh.Projectile != 0 {
			s.world.Remove(sh.Projectile)
		}
	}
	s.shots = s.shots[:0]
}

// PendingShots returns the shot candidates recorded this frame and not yet resolved.
func (s *State) PendingShots() []Shot {
	return append([]Shot(nil), s.shots...)
}
