package core

import "sort"

// DamageMap accumulates damage per cell during a frame. Entries keep the strongest power.
type DamageMap struct {
	cells map[Coord]Power
}

// NewDamageMap creates an empty damage map.
func NewDamageMap() *DamageMap {
	return &DamageMap{cells: make(map[Coord]Power)}
}

// Add records damage at c, keeping the stronger of the old and new power.
func (m *DamageMap) Add(c Coord, p Power) {
	if p > m.cells[c] {
		m.cells[c] = p
	}
}

// At returns the damage recorded at c.
func (m *DamageMap) At(c Coord) Power {
	return m.cells[c]
}

// Len returns the number of damaged cells.
func (m *DamageMap) Len() int {
	return len(m.cells)
}

// Coords returns the damaged cells in row-major order.
func (m *DamageMap) Coords() []Coord {
	out := make([]Coord, 0, len(m.cells))
	for c := range m.cells {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Clear removes every entry.
func (m *DamageMap) Clear() {
	for c := range m.cells {
		delete(m.cells, c)
	}
}

// processDamage applies the map to the world: rubble burns, destroyed entities leave,
// bombs chain into their 3x3 neighbourhood. The map is empty afterwards.
func (s *State) processDamage() error {
	defer s.damage.Clear()

	work := s.damage.Coords()
	applied := make(map[Coord]Power, len(work))
	for i := 0; i < len(work); i++ {
		c := work[i]
		p := s.damage.At(c)
		if p <= applied[c] {
			continue
		}
		applied[c] = p

		g := s.world.grid
		if !g.InBounds(c) {
			continue
		}
		if g.Tile(c).Kind == TileRubble {
			g.SetTile(c, Floor())
			s.cue(CueBurn)
		}

		id := g.Occupant(c)
		if id == 0 {
			continue
		}
		e, ok := s.world.Get(id)
		if !ok {
			return inconsistent("DAMAGE_MISSING_ENTITY", "cell %s names entity %d which does not exist", c, id)
		}
		if !e.Kind.DestroyedBy(p) {
			continue
		}
		s.world.Remove(id)

		switch {
		case e.Kind == KindRobbo:
			s.cue(CueExplosion)
			s.events.Push(GameEvent{Kind: EventPlayerDied, Pos: c, Entity: id})
		case e.Kind == KindBomb:
			s.cue(CueBomb)
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					n := c.Add(dx, dy)
					if n == c || !g.InBounds(n) {
						continue
					}
					s.damage.Add(n, PowerHeavy)
					work = append(work, n)
				}
			}
		case e.Kind.IsItem():
			s.cue(CueBurn)
			s.events.Push(GameEvent{Kind: EventItemLost, Pos: c, Entity: id, Item: e.Kind})
		case e.Kind == KindBear || e.Kind == KindBird || e.Kind == KindEyes:
			s.cue(CueExplosion)
			s.score += s.cfg.Points.Kill
		case e.Kind.IsProjectile():
			// absorbed silently
		default:
			s.cue(CueExplosion)
		}
	}
	return nil
}
