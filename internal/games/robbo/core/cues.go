package core

// Cue names a sound the audio collaborator should play after a frame.
type Cue uint8

const (
	CueWalk Cue = iota
	CueShot
	CueSpawn
	CueAmmo
	CueKey
	CueScrew
	CueBomb
	CueDoor
	CueTeleport
	CueBurn
	CueExplosion
)

var cueNames = [...]string{
	CueWalk:      "walk",
	CueShot:      "shot",
	CueSpawn:     "spawn",
	CueAmmo:      "ammo",
	CueKey:       "key",
	CueScrew:     "screw",
	CueBomb:      "bomb",
	CueDoor:      "door",
	CueTeleport:  "teleport",
	CueBurn:      "burn",
	CueExplosion: "explosion",
}

// Name returns the cue's sound name.
func (c Cue) Name() string {
	if int(c) < len(cueNames) {
		return cueNames[c]
	}
	return "unknown"
}

func (c Cue) String() string { return c.Name() }

// AllCues lists every cue in declaration order.
func AllCues() []Cue {
	out := make([]Cue, len(cueNames))
	for i := range out {
		out[i] = Cue(i)
	}
	return out
}

// CueForEvent maps an event to the sound announcing it. Pickups depend on the item.
func CueForEvent(e GameEvent) (Cue, bool) {
	switch e.Kind {
	case EventPickupItem:
		switch e.Item {
		case KindKey:
			return CueKey, true
		case KindScrew:
			return CueScrew, true
		case KindAmmo:
			return CueAmmo, true
		case KindBomb:
			return CueBomb, true
		}
	case EventOpenDoor:
		return CueDoor, true
	case EventTeleport:
		return CueTeleport, true
	case EventActivateCapsule:
		return CueSpawn, true
	case EventShotFired:
		return CueShot, true
	}
	return 0, false
}

func (s *State) cue(c Cue) {
	s.cues = append(s.cues, c)
}
