package core

// Inventory holds what Robbo carries. Reset on every level load; only event handlers change it.
type Inventory struct {
	Keys   int
	Screws int
	Ammo   int
	Bombs  int
}

// LevelInfo describes the level currently loaded and how it is going.
type LevelInfo struct {
	Index          int
	Number         int
	Name           string
	ScrewsRequired int
	CapsuleActive  bool
	Completed      bool
	Failed         bool
}

// ScrewsLeft returns how many screws still stand between Robbo and the capsule.
func (i LevelInfo) ScrewsLeft(inv Inventory) int {
	if left := i.ScrewsRequired - inv.Screws; left > 0 {
		return left
	}
	return 0
}
