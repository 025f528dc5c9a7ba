package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type section int

const (
	sectionNone section = iota
	sectionSet
	sectionLevel
	sectionData
	sectionAdditional
)

// textParser is the state machine of the bracketed text format.
type textParser struct {
	set     Set
	sec     section
	inLevel bool
	cur     levelSpec
	rowAt   []int
}

// ParseText parses a level set in the bracketed text format.
func ParseText(data []byte) (Set, error) {
	p := &textParser{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		if err := p.line(lineNo, sc.Text()); err != nil {
			return Set{}, err
		}
	}
	if err := sc.Err(); err != nil {
		return Set{}, fmt.Errorf("reading level set: %w", err)
	}
	if p.inLevel {
		return Set{}, parseErr(p.cur.line, "UNTERMINATED", "level %d has no [end]", p.cur.number)
	}
	if len(p.set.Levels) == 0 {
		return Set{}, parseErr(0, "NO_LEVELS", "level set contains no levels")
	}
	return p.set, nil
}

// ParseSet reads a whole text level set from r.
func ParseSet(r io.Reader) (Set, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Set{}, fmt.Errorf("reading level set: %w", err)
	}
	return ParseText(data)
}

func (p *textParser) line(n int, raw string) error {
	raw = strings.TrimRight(raw, "\r")

	if p.sec == sectionData && !strings.HasPrefix(raw, "[") {
		// rows keep leading blanks; a blank is floor
		if i := strings.IndexByte(raw, ';'); i >= 0 {
			raw = raw[:i]
		}
		raw = strings.TrimRight(raw, " \t")
		p.cur.rows = append(p.cur.rows, raw)
		p.rowAt = append(p.rowAt, n)
		return nil
	}

	if i := strings.IndexByte(raw, ';'); i >= 0 {
		raw = raw[:i]
	}
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "[") {
		if !strings.HasSuffix(s, "]") {
			return parseErr(n, "BAD_SECTION", "unterminated section header %q", s)
		}
		return p.header(n, strings.ToLower(s[1:len(s)-1]))
	}

	switch p.sec {
	case sectionSet:
		k, v, err := keyValue(n, s)
		if err != nil {
			return err
		}
		switch k {
		case "name":
			p.set.Name = v
		case "author":
			p.set.Author = v
		default:
			return parseErr(n, "BAD_KEY", "unknown set key %q", k)
		}
	case sectionLevel:
		return p.levelKey(n, s)
	case sectionAdditional:
		a, err := ParseAdditional(s)
		if err != nil {
			return parseErr(n, "BAD_ADDITIONAL", "%v", err)
		}
		p.cur.additional = append(p.cur.additional, a)
	default:
		return parseErr(n, "BAD_SECTION", "content outside of a section: %q", s)
	}
	return nil
}

func (p *textParser) header(n int, name string) error {
	switch name {
	case "set":
		if p.inLevel {
			return parseErr(n, "BAD_SECTION", "[set] inside level %d", p.cur.number)
		}
		p.sec = sectionSet
	case "level":
		if p.inLevel {
			return parseErr(n, "UNTERMINATED", "level %d has no [end]", p.cur.number)
		}
		p.inLevel = true
		p.cur = levelSpec{number: len(p.set.Levels) + 1, line: n}
		p.rowAt = nil
		p.sec = sectionLevel
	case "data", "additional":
		if !p.inLevel {
			return parseErr(n, "BAD_SECTION", "[%s] outside a level", name)
		}
		p.sec = sectionData
		if name == "additional" {
			p.sec = sectionAdditional
		}
	case "end":
		if !p.inLevel {
			return parseErr(n, "BAD_SECTION", "[end] without [level]")
		}
		return p.finishLevel()
	default:
		return parseErr(n, "BAD_SECTION", "unknown section [%s]", name)
	}
	return nil
}

func (p *textParser) levelKey(n int, s string) error {
	k, v, err := keyValue(n, s)
	if err != nil {
		return err
	}
	switch k {
	case "number":
		num, err := strconv.Atoi(v)
		if err != nil || num <= 0 {
			return parseErr(n, "BAD_VALUE", "level number %q", v)
		}
		p.cur.number = num
	case "name":
		p.cur.name = v
	case "size":
		w, h, ok := parseSize(v)
		if !ok {
			return parseErr(n, "BAD_VALUE", "size %q, want WxH", v)
		}
		p.cur.width, p.cur.height = w, h
	case "screws":
		num, err := strconv.Atoi(v)
		if err != nil || num < 0 {
			return parseErr(n, "BAD_VALUE", "screws %q", v)
		}
		p.cur.screws = num
	default:
		return parseErr(n, "BAD_KEY", "unknown level key %q", k)
	}
	return nil
}

func (p *textParser) finishLevel() error {
	rowAt := p.rowAt
	spec := p.cur
	for len(spec.rows) > 0 && spec.rows[len(spec.rows)-1] == "" {
		spec.rows = spec.rows[:len(spec.rows)-1]
	}
	spec.rowLine = func(i int) int {
		if i < len(rowAt) {
			return rowAt[i]
		}
		return spec.line
	}
	def, err := buildLevel(spec)
	if err != nil {
		return err
	}
	p.set.Levels = append(p.set.Levels, def)
	p.inLevel = false
	p.sec = sectionNone
	return nil
}

func keyValue(n int, s string) (string, string, error) {
	k, v, ok := strings.Cut(s, "=")
	if !ok {
		return "", "", parseErr(n, "BAD_KEY", "expected key=value, got %q", s)
	}
	return strings.ToLower(strings.TrimSpace(k)), strings.TrimSpace(v), nil
}

func parseSize(v string) (int, int, bool) {
	ws, hs, ok := strings.Cut(strings.ToLower(v), "x")
	if !ok {
		return 0, 0, false
	}
	w, err1 := strconv.Atoi(strings.TrimSpace(ws))
	h, err2 := strconv.Atoi(strings.TrimSpace(hs))
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return w, h, true
}

// WriteSet writes set in the canonical text form. ParseText reads it back to the same levels.
// Names the reader cannot recover (comments, line breaks, edge blanks) are rejected
// with a BAD_NAME ParseError before anything is written.
func WriteSet(w io.Writer, set Set) error {
	if err := checkTextValue("set name", set.Name); err != nil {
		return err
	}
	if err := checkTextValue("set author", set.Author); err != nil {
		return err
	}
	for _, def := range set.Levels {
		if err := checkTextValue(fmt.Sprintf("level %d name", def.Number), def.Name); err != nil {
			return err
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "[set]")
	if set.Name != "" {
		fmt.Fprintf(bw, "name=%s\n", set.Name)
	}
	if set.Author != "" {
		fmt.Fprintf(bw, "author=%s\n", set.Author)
	}
	for _, def := range set.Levels {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "[level]")
		fmt.Fprintf(bw, "number=%d\n", def.Number)
		if def.Name != "" {
			fmt.Fprintf(bw, "name=%s\n", def.Name)
		}
		fmt.Fprintf(bw, "size=%dx%d\n", def.Width, def.Height)
		if def.Screws > 0 {
			fmt.Fprintf(bw, "screws=%d\n", def.Screws)
		}
		fmt.Fprintln(bw, "[data]")
		for _, row := range def.Rows() {
			fmt.Fprintln(bw, row)
		}
		if adds := additionalFor(def); len(adds) > 0 {
			fmt.Fprintln(bw, "[additional]")
			for _, a := range adds {
				fmt.Fprintln(bw, a)
			}
		}
		fmt.Fprintln(bw, "[end]")
	}
	return bw.Flush()
}

func checkTextValue(field, v string) error {
	if strings.ContainsAny(v, ";\r\n") || strings.TrimSpace(v) != v {
		return parseErr(0, "BAD_NAME", "%s %q cannot be written as text", field, v)
	}
	return nil
}
