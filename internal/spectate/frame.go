// Package spectate broadcasts completed frames to websocket clients so a game
// can be watched from a browser or another terminal.
package spectate

import (
	"github.com/vovakirdan/tui-robbo/internal/games/robbo/core"
)

// Message is the envelope of everything the hub sends.
type Message struct {
	Type   string `json:"type"` // "hello" or "frame"
	Client string `json:"client,omitempty"`
	Frame  *Frame `json:"frame,omitempty"`
}

// Frame is the wire form of a view: the grid as level-text rows plus the
// sprite list and the status line.
type Frame struct {
	Tick     uint64   `json:"tick"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Rows     []string `json:"rows"`
	Sprites  []Sprite `json:"sprites"`
	Level    int      `json:"level"`
	Name     string   `json:"name"`
	Score    int      `json:"score"`
	Deaths   int      `json:"deaths"`
	Screws   int      `json:"screws_left"`
	Keys     int      `json:"keys"`
	Ammo     int      `json:"ammo"`
	Bombs    int      `json:"bombs"`
	Capsule  bool     `json:"capsule_open"`
	Finished bool     `json:"finished"`
}

// Sprite is one entity of a frame.
type Sprite struct {
	ID     uint32 `json:"id"`
	Kind   string `json:"kind"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Dir    string `json:"dir"`
	Active bool   `json:"active,omitempty"`
}

// FromView converts a view into its wire form.
func FromView(v core.View) Frame {
	f := Frame{
		Tick:     v.Tick,
		Width:    v.Width,
		Height:   v.Height,
		Rows:     make([]string, v.Height),
		Sprites:  make([]Sprite, 0, len(v.Sprites)),
		Level:    v.Info.Number,
		Name:     v.Info.Name,
		Score:    v.Score,
		Deaths:   v.Deaths,
		Screws:   v.Info.ScrewsLeft(v.Inventory),
		Keys:     v.Inventory.Keys,
		Ammo:     v.Inventory.Ammo,
		Bombs:    v.Inventory.Bombs,
		Capsule:  v.Info.CapsuleActive,
		Finished: v.Finished,
	}

	grid := make([][]rune, v.Height)
	for y := range grid {
		grid[y] = make([]rune, v.Width)
		for x := range grid[y] {
			grid[y][x] = core.TileGlyph(v.TileAt(core.Coord{X: x, Y: y}))
		}
	}
	for _, sp := range v.Sprites {
		if sp.Pos.Y >= 0 && sp.Pos.Y < v.Height && sp.Pos.X >= 0 && sp.Pos.X < v.Width {
			grid[sp.Pos.Y][sp.Pos.X] = core.KindGlyph(sp.Kind)
		}
		f.Sprites = append(f.Sprites, Sprite{
			ID:     uint32(sp.ID),
			Kind:   sp.Kind.String(),
			X:      sp.Pos.X,
			Y:      sp.Pos.Y,
			Dir:    sp.Dir.String(),
			Active: sp.Active,
		})
	}
	for y, row := range grid {
		f.Rows[y] = string(row)
	}
	return f
}
