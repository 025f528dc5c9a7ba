package core

import "sort"

// World is the live state of the level being played: the grid plus the entity registry.
type World struct {
	grid     *Grid
	entities map[EntityID]*Entity
	nextID   EntityID
}

// NewWorld creates an empty world of the given size.
func NewWorld(w, h int) *World {
	return &World{
		grid:     NewGrid(w, h),
		entities: make(map[EntityID]*Entity),
		nextID:   1,
	}
}

// Grid exposes the tile and occupancy layers.
func (w *World) Grid() *Grid {
	return w.grid
}

// Spawn places a new entity. The target cell must be in bounds and unoccupied.
func (w *World) Spawn(kind Kind, pos Coord, dir Dir) (*Entity, error) {
	if !w.grid.InBounds(pos) {
		return nil, inconsistent("SPAWN_OUT_OF_BOUNDS", "%s at %s", kind, pos)
	}
	if id := w.grid.Occupant(pos); id != 0 {
		return nil, inconsistent("SPAWN_OCCUPIED", "%s at %s collides with entity %d", kind, pos, id)
	}
	e := &Entity{ID: w.nextID, Kind: kind, Pos: pos, Dir: dir}
	w.nextID++
	w.entities[e.ID] = e
	w.grid.setOccupant(pos, e.ID)
	return e, nil
}

// Get returns the entity with the given ID.
func (w *World) Get(id EntityID) (*Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// At returns the entity occupying c.
func (w *World) At(c Coord) (*Entity, bool) {
	id := w.grid.Occupant(c)
	if id == 0 {
		return nil, false
	}
	e, ok := w.entities[id]
	return e, ok
}

// Remove deletes an entity and frees its cell. Unknown IDs are ignored.
func (w *World) Remove(id EntityID) {
	e, ok := w.entities[id]
	if !ok {
		return
	}
	if w.grid.Occupant(e.Pos) == id {
		w.grid.setOccupant(e.Pos, 0)
	}
	delete(w.entities, id)
}

// Move relocates an entity to an unoccupied in-bounds cell.
func (w *World) Move(id EntityID, to Coord) error {
	e, ok := w.entities[id]
	if !ok {
		return inconsistent("MOVE_MISSING_ENTITY", "entity %d does not exist", id)
	}
	if !w.grid.InBounds(to) {
		return inconsistent("MOVE_OUT_OF_BOUNDS", "%s %d to %s", e.Kind, id, to)
	}
	if other := w.grid.Occupant(to); other != 0 && other != id {
		return inconsistent("MOVE_OCCUPIED", "%s %d to %s held by %d", e.Kind, id, to, other)
	}
	if w.grid.Occupant(e.Pos) == id {
		w.grid.setOccupant(e.Pos, 0)
	}
	e.Pos = to
	w.grid.setOccupant(to, id)
	return nil
}

// IDs returns the IDs of all entities of the given kind in ascending order.
func (w *World) IDs(kind Kind) []EntityID {
	var ids []EntityID
	for id, e := range w.entities {
		if e.Kind == kind {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Entities returns all entities ordered by ID.
func (w *World) Entities() []*Entity {
	out := make([]*Entity, 0, len(w.entities))
	for _, e := range w.entities {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count returns the number of live entities.
func (w *World) Count() int {
	return len(w.entities)
}

// CountKind returns the number of live entities of one kind.
func (w *World) CountKind(kind Kind) int {
	n := 0
	for _, e := range w.entities {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Player returns Robbo if he is alive.
func (w *World) Player() (*Entity, bool) {
	for _, id := range w.IDs(KindRobbo) {
		return w.entities[id], true
	}
	return nil, false
}

// WalkableFree reports whether a walker may enter c.
func (w *World) WalkableFree(c Coord) bool {
	return w.grid.InBounds(c) && w.grid.Tile(c).Walkable() && w.grid.Occupant(c) == 0
}

// FlyableFree reports whether a bird may enter c.
func (w *World) FlyableFree(c Coord) bool {
	return w.grid.InBounds(c) && w.grid.Tile(c).Flyable() && w.grid.Occupant(c) == 0
}

// Clone returns a deep copy of the world.
func (w *World) Clone() *World {
	out := &World{
		grid:     w.grid.Clone(),
		entities: make(map[EntityID]*Entity, len(w.entities)),
		nextID:   w.nextID,
	}
	for id, e := range w.entities {
		cp := *e
		out.entities[id] = &cp
	}
	return out
}

// Equal reports whether two worlds hold the same grid and entities.
func (w *World) Equal(other *World) bool {
	if !w.grid.Equal(other.grid) || len(w.entities) != len(other.entities) {
		return false
	}
	for id, e := range w.entities {
		o, ok := other.entities[id]
		if !ok || *o != *e {
			return false
		}
	}
	return true
}

// Verify checks that the registry and the occupancy layer agree:
// every entity sits in bounds on a cell that names it, and every occupied cell
// names a live entity standing there.
func (w *World) Verify() error {
	for _, e := range w.Entities() {
		if !w.grid.InBounds(e.Pos) {
			return inconsistent("OUT_OF_BOUNDS", "%s %d at %s", e.Kind, e.ID, e.Pos)
		}
		if got := w.grid.Occupant(e.Pos); got != e.ID {
			return inconsistent("DOUBLE_OCCUPANCY", "%s %d at %s but cell holds %d", e.Kind, e.ID, e.Pos, got)
		}
	}
	for i, id := range w.grid.occ {
		if id == 0 {
			continue
		}
		e, ok := w.entities[id]
		c := C(i%w.grid.Width, i/w.grid.Width)
		if !ok || e.Pos != c {
			return inconsistent("ORPHAN_CELL", "cell %s holds stale entity %d", c, id)
		}
	}
	return nil
}
