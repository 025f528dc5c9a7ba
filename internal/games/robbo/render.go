package robbo

import (
	"fmt"

	platformcore "github.com/vovakirdan/tui-robbo/internal/core"
	"github.com/vovakirdan/tui-robbo/internal/games/robbo/core"
)

const hudHeight = 3

// look is how an entity kind is drawn; alt is used on odd animation phases.
type look struct {
	glyph rune
	alt   rune
	color platformcore.Color
}

var kindLooks = map[core.Kind]look{
	core.KindRobbo:       {'R', 'R', platformcore.ColorBrightWhite},
	core.KindBear:        {'@', '@', platformcore.ColorBrown},
	core.KindBird:        {'v', '^', platformcore.ColorBrightYellow},
	core.KindBox:         {'#', '#', platformcore.ColorOrange},
	core.KindBullet:      {'*', '*', platformcore.ColorBrightWhite},
	core.KindLaserHead:   {'-', '=', platformcore.ColorBrightRed},
	core.KindBlasterHead: {'=', '#', platformcore.ColorBrightMagenta},
	core.KindEyes:        {'E', 'e', platformcore.ColorBrightRed},
	core.KindMagnet:      {'M', 'M', platformcore.ColorRed},
	core.KindForceField:  {'F', 'f', platformcore.ColorBrightCyan},
	core.KindCapsule:     {'!', '!', platformcore.ColorGray},
	core.KindDoor:        {'D', 'D', platformcore.ColorYellow},
	core.KindKey:         {'%', '%', platformcore.ColorBrightYellow},
	core.KindScrew:       {'T', 'T', platformcore.ColorCyan},
	core.KindAmmo:        {'\'', '\'', platformcore.ColorGreen},
	core.KindBomb:        {'b', 'b', platformcore.ColorRed},
	core.KindTeleport:    {'&', '8', platformcore.ColorBrightMagenta},
}

var fieldArrows = map[core.Dir]rune{
	core.DirUp:    '↑',
	core.DirRight: '→',
	core.DirDown:  '↓',
	core.DirLeft:  '←',
}

// spriteCell returns the glyph and color of one sprite.
func spriteCell(sp core.Sprite) platformcore.Cell {
	lk, ok := kindLooks[sp.Kind]
	if !ok {
		return platformcore.Cell{Rune: core.KindGlyph(sp.Kind), Color: platformcore.ColorWhite}
	}
	r := lk.glyph
	if sp.Phase%2 == 1 {
		r = lk.alt
	}
	c := lk.color
	switch sp.Kind {
	case core.KindCapsule:
		if sp.Active {
			c = platformcore.ColorBrightGreen
		} else {
			r = lk.glyph
		}
	case core.KindLaserHead, core.KindBullet:
		if sp.Dir == core.DirUp || sp.Dir == core.DirDown {
			r = '|'
		}
	}
	return platformcore.Cell{Rune: r, Color: c}
}

// tileCell returns the glyph and color of the static layer.
func tileCell(t core.Tile) platformcore.Cell {
	switch t.Kind {
	case core.TileWall:
		return platformcore.Cell{Rune: '█', Color: platformcore.ColorGray}
	case core.TileRubble:
		return platformcore.Cell{Rune: '▒', Color: platformcore.ColorBrown}
	case core.TileField:
		return platformcore.Cell{Rune: fieldArrows[t.Dir], Color: platformcore.ColorBlue}
	default:
		return platformcore.Blank
	}
}

// fitZoom returns the widest zoom not above want that fits the grid in cols columns.
func fitZoom(want, gridW, cols int) int {
	z := platformcore.Max(1, want)
	for z > 1 && gridW*z > cols {
		z--
	}
	return z
}

// renderGrid draws the tiles and sprites horizontally centered, starting at row top.
// It reports false when the grid does not fit.
func renderGrid(dst *platformcore.Screen, v core.View, top, zoom int) bool {
	z := fitZoom(zoom, v.Width, dst.Width())
	w := v.Width * z
	if w > dst.Width() || top+v.Height > dst.Height() {
		return false
	}
	area := platformcore.NewRect((dst.Width()-w)/2, top, w, v.Height)

	draw := func(c core.Coord, cell platformcore.Cell, fill bool) {
		x := area.X + c.X*z
		y := area.Y + c.Y
		dst.SetCell(x, y, cell)
		pad := platformcore.Blank
		if fill {
			pad = cell
		}
		for i := 1; i < z; i++ {
			dst.SetCell(x+i, y, pad)
		}
	}

	for y := 0; y < v.Height; y++ {
		for x := 0; x < v.Width; x++ {
			c := core.Coord{X: x, Y: y}
			t := v.TileAt(c)
			draw(c, tileCell(t), t.Kind == core.TileWall || t.Kind == core.TileRubble)
		}
	}
	for _, sp := range v.Sprites {
		draw(sp.Pos, spriteCell(sp), false)
	}
	return true
}

// renderHUD draws the status lines above the grid.
func (g *Game) renderHUD(dst *platformcore.Screen, v core.View) {
	title := fmt.Sprintf(" ROBBO | %s | Level %d/%d %s", g.setName, v.Info.Number,
		g.state.LevelCount(), v.Info.Name)
	dst.DrawTextColor(0, 0, title, platformcore.ColorCyan)

	capsule := "closed"
	if v.Info.CapsuleActive {
		capsule = "OPEN"
	}
	status := fmt.Sprintf(" Score %d | Screws %d | Keys %d | Ammo %d | Bombs %d | Capsule %s | Lives lost %d",
		v.Score, v.Info.ScrewsLeft(v.Inventory), v.Inventory.Keys, v.Inventory.Ammo,
		v.Inventory.Bombs, capsule, v.Deaths)
	dst.DrawTextColor(0, 1, status, platformcore.ColorWhite)

	for x := 0; x < dst.Width(); x++ {
		dst.SetCell(x, 2, platformcore.Cell{Rune: '─', Color: platformcore.ColorGray})
	}
}

// renderOverlay draws a centered message box.
func renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	w := platformcore.Max(len([]rune(line1)), len([]rune(line2))) + 4
	if w > dst.Width() {
		w = dst.Width()
	}
	box := platformcore.NewRect(0, 0, w, 4).CenterIn(platformcore.NewRect(0, 0, dst.Width(), dst.Height()))
	dst.FillRect(box, platformcore.Blank)
	dst.DrawBox(box, platformcore.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+1, line1, platformcore.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+2, line2, platformcore.ColorGray)
}

// DrawView renders a view's grid at the top of dst without HUD, e.g. into an
// off-screen buffer. It reports false when the grid does not fit.
func DrawView(dst *platformcore.Screen, v core.View, zoom int) bool {
	dst.Clear()
	return renderGrid(dst, v, 0, zoom)
}
