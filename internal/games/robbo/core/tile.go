package core

// TileKind is the static layer beneath entities.
type TileKind uint8

const (
	TileFloor  TileKind = iota
	TileWall            // indestructible
	TileRubble          // destructible wall, burns to floor
	TileField           // magnetic field cell, carries a direction
)

// String returns the string representation of a tile kind.
func (k TileKind) String() string {
	switch k {
	case TileFloor:
		return "floor"
	case TileWall:
		return "wall"
	case TileRubble:
		return "rubble"
	case TileField:
		return "field"
	default:
		return "unknown"
	}
}

// Tile is one cell of the static layer.
type Tile struct {
	Kind TileKind
	Dir  Dir // only meaningful for TileField
}

// Floor returns an empty floor tile.
func Floor() Tile { return Tile{Kind: TileFloor} }

// Wall returns a wall tile.
func Wall() Tile { return Tile{Kind: TileWall} }

// Rubble returns a destructible wall tile.
func Rubble() Tile { return Tile{Kind: TileRubble} }

// Field returns a magnetic field tile pushing toward d.
func Field(d Dir) Tile { return Tile{Kind: TileField, Dir: d} }

// Walkable reports whether walkers (Robbo, bears, boxes) may stand on the tile.
func (t Tile) Walkable() bool {
	return t.Kind == TileFloor || t.Kind == TileField
}

// Flyable reports whether birds may fly over the tile.
func (t Tile) Flyable() bool {
	return t.Walkable() || t.Kind == TileRubble
}

// PassesShots reports whether projectiles travel through the tile.
func (t Tile) PassesShots() bool {
	return t.Walkable()
}
