package core

import (
	"fmt"
	"hash/fnv"
)

// Hash returns an FNV-64a digest of the simulation state for determinism checks.
func (s *State) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "L:%d;T:%d;I:%d,%d,%d,%d;", s.info.Index, s.tick, s.inv.Keys, s.inv.Screws, s.inv.Ammo, s.inv.Bombs)
	fmt.Fprintf(h, "C:%d,%v;S:%d;", s.capsuleTimer, s.info.CapsuleActive, s.score)
	fmt.Fprintf(h, "W:%d;", s.world.Hash())
	return h.Sum64()
}

// Hash returns an FNV-64a digest of tiles and entities.
func (w *World) Hash() uint64 {
	h := fnv.New64a()
	for _, t := range w.grid.tiles {
		fmt.Fprintf(h, "%d%d", t.Kind, t.Dir)
	}
	h.Write([]byte{';'})
	for _, e := range w.Entities() {
		fmt.Fprintf(h, "%d:%d:%d,%d:%d:%d:%d:%d:%v|", e.ID, e.Kind, e.Pos.X, e.Pos.Y, e.Dir, e.Group, e.Weapon, e.Charge, e.Active)
	}
	return h.Sum64()
}
