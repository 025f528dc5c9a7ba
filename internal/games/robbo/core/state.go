package core

import "fmt"

// State is the pipeline context: everything one running game owns.
// Nothing outside Step mutates it, so no locking is needed.
type State struct {
	cfg    Config
	source LevelSource

	world  *World
	inv    Inventory
	info   LevelInfo
	damage *DamageMap
	events *EventQueue
	tick   uint64

	capsuleTimer    int
	input           Intent
	moveFrame       bool
	reloadRequested bool
	forced          map[EntityID]Dir
	shots           []Shot

	score      int
	levelScore int // score when the current level was loaded
	deaths     int
	cleared    int
	finished   bool

	frameEvents []GameEvent
	cues        []Cue
	prepared    *View

	observer  Observer
	afterMove func(*State) // test hook, runs before occupancy verification
}

// Observer is notified after every completed stage.
type Observer func(stage Stage, s *State)

// NewState loads level start from source and returns a ready pipeline.
func NewState(source LevelSource, cfg Config, start int) (*State, error) {
	if source == nil || source.Len() == 0 {
		return nil, fmt.Errorf("robbo: empty level source")
	}
	s := &State{
		cfg:    cfg.normalized(),
		source: source,
		damage: NewDamageMap(),
		events: NewEventQueue(),
		forced: make(map[EntityID]Dir),
	}
	if err := s.load(start); err != nil {
		return nil, err
	}
	return s, nil
}

// SetObserver registers a stage observer; nil removes it.
func (s *State) SetObserver(o Observer) {
	s.observer = o
}

// Config returns the effective configuration.
func (s *State) Config() Config { return s.cfg }

// World returns the live world. Callers outside the pipeline must treat it as read-only.
func (s *State) World() *World { return s.world }

// Inventory returns what Robbo carries.
func (s *State) Inventory() Inventory { return s.inv }

// Info returns the current level info.
func (s *State) Info() LevelInfo { return s.info }

// Tick returns the frame counter of the current level.
func (s *State) Tick() uint64 { return s.tick }

// Score returns the score accumulated over the whole game.
func (s *State) Score() int { return s.score }

// Deaths returns how many times Robbo died.
func (s *State) Deaths() int { return s.deaths }

// Cleared returns how many levels were completed.
func (s *State) Cleared() int { return s.cleared }

// Finished reports whether the last level was completed with wrapping disabled.
func (s *State) Finished() bool { return s.finished }

// LevelCount returns the size of the level source.
func (s *State) LevelCount() int { return s.source.Len() }

// PendingDamage returns the number of damage entries not yet processed.
func (s *State) PendingDamage() int { return s.damage.Len() }

// PendingEvents returns the number of queued, unhandled events.
func (s *State) PendingEvents() int { return s.events.Len() }

// CapsuleCountdown returns the keyframes left before the capsule activates, 0 when idle.
func (s *State) CapsuleCountdown() int { return s.capsuleTimer }

type checkpoint struct {
	world        *World
	inv          Inventory
	info         LevelInfo
	tick         uint64
	capsuleTimer int
	score        int
	levelScore   int
	deaths       int
	cleared      int
	finished     bool
	prepared     *View
}

func (s *State) save() checkpoint {
	return checkpoint{
		world:        s.world.Clone(),
		inv:          s.inv,
		info:         s.info,
		tick:         s.tick,
		capsuleTimer: s.capsuleTimer,
		score:        s.score,
		levelScore:   s.levelScore,
		deaths:       s.deaths,
		cleared:      s.cleared,
		finished:     s.finished,
		prepared:     s.prepared,
	}
}

func (s *State) restore(cp checkpoint) {
	s.world = cp.world
	s.inv = cp.inv
	s.info = cp.info
	s.tick = cp.tick
	s.capsuleTimer = cp.capsuleTimer
	s.score = cp.score
	s.levelScore = cp.levelScore
	s.deaths = cp.deaths
	s.cleared = cp.cleared
	s.finished = cp.finished
	s.prepared = cp.prepared
	s.damage.Clear()
	s.events.Reset()
	s.shots = s.shots[:0]
	s.reloadRequested = false
}
