package core

import "fmt"

// load replaces the world, inventory, damage map, queue and tick with a fresh copy of
// the level at index.
func (s *State) load(index int) error {
	def, err := s.source.Level(index)
	if err != nil {
		return fmt.Errorf("robbo: load level %d: %w", index, err)
	}
	world, err := def.Instantiate()
	if err != nil {
		return fmt.Errorf("robbo: instantiate level %d: %w", index, err)
	}

	s.world = world
	s.levelScore = s.score
	s.inv = Inventory{}
	s.damage = NewDamageMap()
	s.events.Reset()
	s.tick = 0
	s.capsuleTimer = 0
	s.reloadRequested = false
	s.shots = s.shots[:0]
	for id := range s.forced {
		delete(s.forced, id)
	}
	s.info = LevelInfo{
		Index:          index,
		Number:         def.Number,
		Name:           def.Name,
		ScrewsRequired: def.ScrewsRequired(),
	}
	if s.info.ScrewsRequired == 0 {
		s.info.CapsuleActive = true
		for _, id := range world.IDs(KindCapsule) {
			c, _ := world.Get(id)
			c.Active = true
		}
	}
	s.prepared = nil
	return nil
}

// checkReload is the lifecycle decision of the reload stage.
func (s *State) checkReload() (bool, error) {
	switch {
	case s.info.Completed:
		s.cleared++
		next := s.info.Index + 1
		if next >= s.source.Len() {
			if !s.cfg.WrapLevels {
				s.finished = true
				return false, nil
			}
			next = 0
		}
		return true, s.load(next)

	case s.info.Failed || s.reloadRequested:
		return true, s.retry()

	case s.cfg.Benchmark && s.cfg.BenchmarkRestart > 0 && s.tick+1 >= uint64(s.cfg.BenchmarkRestart):
		return true, s.load((s.info.Index + 1) % s.source.Len())
	}
	return false, nil
}

// retry restarts the current level. Points scored on the failed attempt are dropped.
func (s *State) retry() error {
	s.score = s.levelScore
	return s.load(s.info.Index)
}

// Reload restarts the current level outside the frame loop.
func (s *State) Reload() error {
	return s.retry()
}

// Jump loads the level at index, keeping score and counters.
func (s *State) Jump(index int) error {
	return s.load(index)
}
