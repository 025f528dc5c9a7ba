package core

import (
	"fmt"
	"strings"
)

// Glyphs used by the level text format and the ASCII dump.
const (
	GlyphFloor   = '.'
	GlyphWall    = 'O'
	GlyphRubble  = 'o'
	GlyphUnknown = '?'
)

var kindGlyphs = map[Kind]rune{
	KindRobbo:       'R',
	KindBear:        '@',
	KindBird:        '^',
	KindBox:         '#',
	KindBullet:      '*',
	KindLaserHead:   '-',
	KindBlasterHead: '=',
	KindEyes:        'E',
	KindMagnet:      'M',
	KindForceField:  'F',
	KindCapsule:     '!',
	KindDoor:        'D',
	KindKey:         '%',
	KindScrew:       'T',
	KindAmmo:        '\'',
	KindBomb:        'b',
	KindTeleport:    '&',
}

var fieldGlyphs = map[Dir]rune{
	DirUp:    'A',
	DirRight: '>',
	DirDown:  'V',
	DirLeft:  '<',
}

// defaultDirs is the facing an entity gets when the level text does not say otherwise.
var defaultDirs = map[Kind]Dir{
	KindRobbo:       DirDown,
	KindBear:        DirUp,
	KindBird:        DirRight,
	KindBullet:      DirRight,
	KindLaserHead:   DirRight,
	KindBlasterHead: DirRight,
	KindEyes:        DirDown,
	KindMagnet:      DirRight,
	KindForceField:  DirDown,
}

// DefaultDir returns the facing given to kind when the level data is silent.
func DefaultDir(kind Kind) Dir {
	if d, ok := defaultDirs[kind]; ok {
		return d
	}
	return DirUp
}

// KindGlyph returns the level-text character of an entity kind.
func KindGlyph(kind Kind) rune {
	if r, ok := kindGlyphs[kind]; ok {
		return r
	}
	return GlyphUnknown
}

// TileGlyph returns the level-text character of a tile.
func TileGlyph(t Tile) rune {
	switch t.Kind {
	case TileWall:
		return GlyphWall
	case TileRubble:
		return GlyphRubble
	case TileField:
		return fieldGlyphs[t.Dir]
	default:
		return GlyphFloor
	}
}

// ParseGlyph decodes one level-text character into a tile and, optionally, an entity kind
// standing on floor.
func ParseGlyph(r rune) (Tile, Kind, bool) {
	switch r {
	case GlyphFloor, ' ':
		return Floor(), KindNone, true
	case GlyphWall:
		return Wall(), KindNone, true
	case GlyphRubble:
		return Rubble(), KindNone, true
	}
	for d, g := range fieldGlyphs {
		if g == r {
			return Field(d), KindNone, true
		}
	}
	for k, g := range kindGlyphs {
		if g == r {
			return Floor(), k, true
		}
	}
	return Tile{}, KindNone, false
}

// LevelFromRows builds a level from glyph rows. Short rows are padded with floor;
// the width is that of the longest row. Entities get their default facing.
func LevelFromRows(number int, rows []string) (LevelDef, error) {
	w := 0
	for _, row := range rows {
		if n := len([]rune(row)); n > w {
			w = n
		}
	}
	d := NewLevelDef(number, w, len(rows))
	for y, row := range rows {
		for x, r := range []rune(row) {
			tile, kind, ok := ParseGlyph(r)
			if !ok {
				return LevelDef{}, ValidationError{
					Code:    "BAD_GLYPH",
					Message: fmt.Sprintf("row %d col %d: unknown glyph %q", y+1, x+1, r),
				}
			}
			c := C(x, y)
			d.SetTile(c, tile)
			if kind != KindNone {
				d.Placements = append(d.Placements, Placement{Kind: kind, Pos: c, Dir: DefaultDir(kind)})
			}
		}
	}
	return d, nil
}

// Rows renders the definition back to glyph rows, entities drawn over their tiles.
func (d LevelDef) Rows() []string {
	cells := make([][]rune, d.Height)
	for y := range cells {
		cells[y] = make([]rune, d.Width)
		for x := range cells[y] {
			cells[y][x] = TileGlyph(d.TileAt(C(x, y)))
		}
	}
	for _, p := range d.Placements {
		if p.Pos.Y >= 0 && p.Pos.Y < d.Height && p.Pos.X >= 0 && p.Pos.X < d.Width {
			cells[p.Pos.Y][p.Pos.X] = KindGlyph(p.Kind)
		}
	}
	rows := make([]string, d.Height)
	for y := range cells {
		rows[y] = string(cells[y])
	}
	return rows
}

// DumpASCII renders the live world in level-text glyphs, one row per line.
func (w *World) DumpASCII() string {
	var sb strings.Builder
	for y := 0; y < w.grid.Height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < w.grid.Width; x++ {
			c := C(x, y)
			if e, ok := w.At(c); ok {
				sb.WriteRune(KindGlyph(e.Kind))
				continue
			}
			sb.WriteRune(TileGlyph(w.grid.Tile(c)))
		}
	}
	return sb.String()
}
