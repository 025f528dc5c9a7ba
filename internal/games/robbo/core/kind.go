package core

// Kind tags every entity. The set is closed: resolvers switch on it.
type Kind uint8

const (
	KindNone Kind = iota
	KindRobbo
	KindBear
	KindBird
	KindBox
	KindBullet
	KindLaserHead
	KindBlasterHead
	KindEyes
	KindMagnet
	KindForceField
	KindCapsule
	KindDoor
	KindKey
	KindScrew
	KindAmmo
	KindBomb
	KindTeleport
)

var kindNames = [...]string{
	KindNone:        "none",
	KindRobbo:       "robbo",
	KindBear:        "bear",
	KindBird:        "bird",
	KindBox:         "box",
	KindBullet:      "bullet",
	KindLaserHead:   "laser",
	KindBlasterHead: "blaster",
	KindEyes:        "eyes",
	KindMagnet:      "magnet",
	KindForceField:  "forcefield",
	KindCapsule:     "capsule",
	KindDoor:        "door",
	KindKey:         "key",
	KindScrew:       "screw",
	KindAmmo:        "ammo",
	KindBomb:        "bomb",
	KindTeleport:    "teleport",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// KindByName looks a kind up by its String form.
func KindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name && Kind(k) != KindNone {
			return Kind(k), true
		}
	}
	return KindNone, false
}

// IsItem reports whether Robbo collects the kind by walking into it.
func (k Kind) IsItem() bool {
	switch k {
	case KindKey, KindScrew, KindAmmo, KindBomb:
		return true
	}
	return false
}

// IsProjectile reports whether the kind travels in a straight line and converts
// into a shot when blocked.
func (k Kind) IsProjectile() bool {
	switch k {
	case KindBullet, KindLaserHead, KindBlasterHead:
		return true
	}
	return false
}

// IsHostile reports whether touching the kind hurts Robbo.
func (k Kind) IsHostile() bool {
	switch k {
	case KindBear, KindBird, KindEyes:
		return true
	}
	return k.IsProjectile()
}

// IsWalker reports whether field effects push the kind.
func (k Kind) IsWalker() bool {
	switch k {
	case KindRobbo, KindBear, KindBox:
		return true
	}
	return false
}

// DestroyedBy reports whether damage of power p removes an entity of this kind.
func (k Kind) DestroyedBy(p Power) bool {
	if p == PowerNone {
		return false
	}
	switch k {
	case KindRobbo, KindBear, KindBird, KindEyes, KindBomb,
		KindBullet, KindLaserHead, KindBlasterHead:
		return true
	case KindBox, KindKey, KindScrew, KindAmmo, KindDoor, KindMagnet, KindForceField:
		return p >= PowerHeavy
	default:
		// capsules and teleports absorb everything
		return false
	}
}

// moveOrder is the fixed order in which kinds resolve during the move stage.
// Robbo goes last so the player's move is the final authority on contested cells.
var moveOrder = [...]Kind{
	KindLaserHead,
	KindBear,
	KindBird,
	KindBox,
	KindBullet,
	KindBlasterHead,
	KindEyes,
	KindRobbo,
}

// MoveOrder returns the kind order of the move stage.
func MoveOrder() []Kind {
	out := make([]Kind, len(moveOrder))
	copy(out, moveOrder[:])
	return out
}
