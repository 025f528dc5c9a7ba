package core

// IsKeyframe reports whether the current tick falls on the keyframe cadence.
func (s *State) IsKeyframe() bool {
	return s.tick%uint64(s.cfg.KeyframeInterval) == 0
}

// advanceTick bumps the frame counter and fires keyframe timers: turrets charge and the
// capsule countdown may enqueue its single ActivateCapsule.
func (s *State) advanceTick() {
	s.tick++
	if !s.IsKeyframe() {
		return
	}
	for _, id := range s.world.IDs(KindEyes) {
		e, _ := s.world.Get(id)
		e.Charge++
	}
	if s.capsuleTimer > 0 {
		s.capsuleTimer--
		if s.capsuleTimer == 0 {
			s.events.Push(GameEvent{Kind: EventActivateCapsule})
		}
	}
}
