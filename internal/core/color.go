package core

// Color is the foreground color of a screen cell. The platform maps it to a
// terminal style; the SSH and local front ends share the same palette.
type Color uint8

// Palette used by the game renderer and HUD.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorBrown
)

// Cell is one character of the screen buffer.
type Cell struct {
	Rune  rune
	Color Color
}

// Blank is the cell a cleared screen is filled with.
var Blank = Cell{Rune: ' ', Color: ColorDefault}
