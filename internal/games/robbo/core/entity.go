package core

// EntityID identifies an entity within one loaded level. Zero is never allocated.
type EntityID uint32

// Entity is a single occupant of the dynamic layer.
type Entity struct {
	ID     EntityID
	Kind   Kind
	Pos    Coord
	Dir    Dir
	Group  int    // teleport pairing group
	Weapon Weapon // eyes only
	Charge int    // eyes: keyframes since the last shot
	Active bool   // capsule only
}
