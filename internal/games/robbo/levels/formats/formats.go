// Package formats reads and writes Robbo level sets.
// Two encodings are supported: the bracketed text format of the classic level packs
// and a YAML rendition of the same data.
package formats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-robbo/internal/games/robbo/core"
)

// Set is a parsed level set.
type Set struct {
	Name   string
	Author string
	Levels []core.LevelDef
}

// ParseError reports a malformed level set. Line is 1-based; 0 means the error is not
// tied to a line.
type ParseError struct {
	Line    int
	Code    string
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: [%s] %s", e.Line, e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func parseErr(line int, code, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Additional overrides the facing and parameter of the entity at (X, Y).
type Additional struct {
	X, Y  int
	Dir   core.Dir
	Param int
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".txt", ".yaml", ".yml"}
}

var dirLetters = map[byte]core.Dir{
	'U': core.DirUp,
	'R': core.DirRight,
	'D': core.DirDown,
	'L': core.DirLeft,
}

// DirLetter returns the single-letter code of d used by the additional section.
func DirLetter(d core.Dir) byte {
	for l, dir := range dirLetters {
		if dir == d {
			return l
		}
	}
	return 'U'
}

// ParseDirLetter decodes U, R, D or L.
func ParseDirLetter(s string) (core.Dir, bool) {
	if len(s) != 1 {
		return 0, false
	}
	d, ok := dirLetters[strings.ToUpper(s)[0]]
	return d, ok
}

// ParseAdditional decodes one "x.y.dir[.param]" entry.
func ParseAdditional(s string) (Additional, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 && len(parts) != 4 {
		return Additional{}, fmt.Errorf("want x.y.dir[.param], got %q", s)
	}
	x, err := strconv.Atoi(parts[0])
	if err != nil {
		return Additional{}, fmt.Errorf("bad x in %q", s)
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return Additional{}, fmt.Errorf("bad y in %q", s)
	}
	d, ok := ParseDirLetter(parts[2])
	if !ok {
		return Additional{}, fmt.Errorf("bad direction in %q", s)
	}
	a := Additional{X: x, Y: y, Dir: d}
	if len(parts) == 4 {
		if a.Param, err = strconv.Atoi(parts[3]); err != nil || a.Param < 0 {
			return Additional{}, fmt.Errorf("bad parameter in %q", s)
		}
	}
	return a, nil
}

// String encodes the entry the way ParseAdditional reads it.
func (a Additional) String() string {
	s := fmt.Sprintf("%d.%d.%c", a.X, a.Y, DirLetter(a.Dir))
	if a.Param != 0 {
		s += "." + strconv.Itoa(a.Param)
	}
	return s
}

// levelSpec is the format-neutral description both parsers feed into buildLevel.
type levelSpec struct {
	number     int
	name       string
	width      int // 0 = derive from rows
	height     int
	screws     int
	rows       []string
	additional []Additional
	line       int // first line of the level, for errors
	rowLine    func(i int) int
}

// buildLevel turns glyph rows plus overrides into a validated definition.
func buildLevel(spec levelSpec) (core.LevelDef, error) {
	rowLine := spec.rowLine
	if rowLine == nil {
		rowLine = func(int) int { return spec.line }
	}

	w, h := spec.width, spec.height
	if w == 0 {
		for _, row := range spec.rows {
			w = max(w, len([]rune(row)))
		}
	}
	if h == 0 {
		h = len(spec.rows)
	}
	if w <= 0 || h <= 0 || w > core.MaxWidth || h > core.MaxHeight {
		return core.LevelDef{}, parseErr(spec.line, "BAD_SIZE", "level %d is %dx%d, limit is %dx%d",
			spec.number, w, h, core.MaxWidth, core.MaxHeight)
	}
	if len(spec.rows) > h {
		return core.LevelDef{}, parseErr(rowLine(h), "TOO_MANY_ROWS", "level %d has more than %d rows", spec.number, h)
	}

	def := core.NewLevelDef(spec.number, w, h)
	def.Name = spec.name
	def.Screws = spec.screws
	for y, row := range spec.rows {
		runes := []rune(row)
		if len(runes) > w {
			return core.LevelDef{}, parseErr(rowLine(y), "ROW_TOO_LONG", "row %d is %d wide, level is %d", y+1, len(runes), w)
		}
		for x, r := range runes {
			tile, kind, ok := core.ParseGlyph(r)
			if !ok {
				return core.LevelDef{}, parseErr(rowLine(y), "BAD_GLYPH", "unknown glyph %q at column %d", r, x+1)
			}
			c := core.C(x, y)
			def.SetTile(c, tile)
			if kind != core.KindNone {
				def.Placements = append(def.Placements, core.Placement{Kind: kind, Pos: c, Dir: core.DefaultDir(kind)})
			}
		}
	}

	for _, a := range spec.additional {
		idx := -1
		for i, p := range def.Placements {
			if p.Pos == core.C(a.X, a.Y) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return core.LevelDef{}, parseErr(spec.line, "NO_ENTITY", "level %d: additional entry %s names an empty cell", spec.number, a)
		}
		def.Placements[idx].Dir = a.Dir
		def.Placements[idx].Param = a.Param
	}

	if err := def.Validate(); err != nil {
		var ve core.ValidationError
		if errors.As(err, &ve) {
			return core.LevelDef{}, parseErr(spec.line, ve.Code, "%s", ve.Message)
		}
		return core.LevelDef{}, err
	}
	return def, nil
}

// additionalFor lists the overrides needed to reproduce def's facings and parameters.
func additionalFor(def core.LevelDef) []Additional {
	var out []Additional
	for _, p := range def.Placements {
		if p.Dir == core.DefaultDir(p.Kind) && p.Param == 0 {
			continue
		}
		out = append(out, Additional{X: p.Pos.X, Y: p.Pos.Y, Dir: p.Dir, Param: p.Param})
	}
	return out
}
