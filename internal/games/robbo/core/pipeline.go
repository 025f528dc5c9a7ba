package core

import "errors"

// Stage is one step of the per-frame pipeline.
type Stage uint8

const (
	StageInput Stage = iota
	StageFields
	StageMove
	StageShots
	StageDamage
	StageEvents
	StageReload
	StageTick
)

var stageOrder = [...]Stage{
	StageInput,
	StageFields,
	StageMove,
	StageShots,
	StageDamage,
	StageEvents,
	StageReload,
	StageTick,
}

// Stages returns the fixed order in which every frame runs its stages.
func Stages() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder[:])
	return out
}

// String returns the string representation of a stage.
func (st Stage) String() string {
	switch st {
	case StageInput:
		return "input"
	case StageFields:
		return "fields"
	case StageMove:
		return "move"
	case StageShots:
		return "shots"
	case StageDamage:
		return "damage"
	case StageEvents:
		return "events"
	case StageReload:
		return "reload"
	case StageTick:
		return "tick"
	default:
		return "unknown"
	}
}

// FrameResult summarizes one call to Step.
type FrameResult struct {
	Tick       uint64 // frame counter after the frame
	MoveFrame  bool
	Stages     []Stage
	Events     []GameEvent // every event handled this frame, in order
	Cues       []Cue
	Reloaded   bool
	LevelIndex int
	Finished   bool
}

// Step runs one frame: every stage once, in order, none re-entered.
// On a ConsistencyError the state is rolled back to how it was before the frame.
func (s *State) Step(in Intent) (FrameResult, error) {
	if s.finished {
		return FrameResult{Tick: s.tick, LevelIndex: s.info.Index, Finished: true}, nil
	}

	if err := s.checkClean(); err != nil {
		return FrameResult{Tick: s.tick, LevelIndex: s.info.Index}, err
	}

	// the queue is empty; this only forgets last frame's duplicate keys
	s.events.Reset()
	s.frameEvents = nil
	s.cues = nil
	cp := s.save()

	res := FrameResult{Stages: make([]Stage, 0, len(stageOrder))}
	for _, st := range stageOrder {
		if st == StageTick && res.Reloaded {
			// a freshly loaded level starts at tick 0
			continue
		}
		if err := s.runStage(st, in, &res); err != nil {
			var ce *ConsistencyError
			if errors.As(err, &ce) {
				ce.Tick = cp.tick
				ce.Stage = st
			}
			s.restore(cp)
			return res, err
		}
		res.Stages = append(res.Stages, st)
		if s.observer != nil {
			s.observer(st, s)
		}
	}

	res.Tick = s.tick
	res.Events = s.frameEvents
	res.Cues = s.cues
	res.LevelIndex = s.info.Index
	res.Finished = s.finished
	return res, nil
}

// checkClean verifies the previous frame left no damage or events behind.
func (s *State) checkClean() error {
	var ce *ConsistencyError
	switch {
	case s.damage.Len() > 0:
		ce = inconsistent("STALE_DAMAGE", "%d damage entries left from the previous frame", s.damage.Len())
	case s.events.Len() > 0:
		ce = inconsistent("STALE_EVENTS", "%d events left from the previous frame", s.events.Len())
	default:
		return nil
	}
	ce.Tick = s.tick
	ce.Stage = StageInput
	return ce
}

func (s *State) runStage(st Stage, in Intent, res *FrameResult) error {
	switch st {
	case StageInput:
		s.captureInput(in)
		res.MoveFrame = s.moveFrame
	case StageFields:
		s.resolveFields()
	case StageMove:
		if err := s.resolveMovement(); err != nil {
			return err
		}
		if s.afterMove != nil {
			s.afterMove(s)
		}
		return s.world.Verify()
	case StageShots:
		s.resolveShots()
	case StageDamage:
		return s.processDamage()
	case StageEvents:
		return s.drainEvents()
	case StageReload:
		reloaded, err := s.checkReload()
		if err != nil {
			return err
		}
		res.Reloaded = reloaded
		if s.cfg.Render {
			v := s.View()
			s.prepared = &v
		}
	case StageTick:
		s.advanceTick()
		return s.drainEvents()
	}
	return nil
}

// captureInput stores the frame's intent and decides whether movers act this frame.
func (s *State) captureInput(in Intent) {
	s.input = in
	s.moveFrame = s.tick%uint64(s.cfg.MoveInterval) == 0
	if in.Reload {
		s.reloadRequested = true
	}
}
