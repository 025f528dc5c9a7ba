// Package levels loads Robbo level sets from disk or from the set compiled into the binary.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-robbo/internal/games/robbo/core"
	"github.com/vovakirdan/tui-robbo/internal/games/robbo/levels/formats"
)

//go:embed data/*.txt
var embedded embed.FS

// DefaultSetPath is the name under which the built-in set is reported.
const DefaultSetPath = "embedded:original.txt"

// ErrNotFound is returned when a level index or number does not exist in a set.
var ErrNotFound = errors.New("level not found")

// AssetError reports a level set that is missing or malformed.
type AssetError struct {
	Path string
	Err  error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("level set %s: %v", e.Path, e.Err)
}

func (e *AssetError) Unwrap() error { return e.Err }

// Set is a loaded level set. It implements core.LevelSource.
type Set struct {
	Name     string
	Author   string
	Path     string
	Levels   []core.LevelDef
	Metadata map[string]string
}

// Len returns the number of levels.
func (s *Set) Len() int {
	return len(s.Levels)
}

// Level returns a copy of the level at index.
func (s *Set) Level(index int) (core.LevelDef, error) {
	if index < 0 || index >= len(s.Levels) {
		return core.LevelDef{}, fmt.Errorf("%w: index %d of %d", ErrNotFound, index, len(s.Levels))
	}
	return s.Levels[index].Clone(), nil
}

// IndexOf returns the index of the level carrying the given number.
func (s *Set) IndexOf(number int) (int, error) {
	for i, def := range s.Levels {
		if def.Number == number {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: number %d", ErrNotFound, number)
}

// Titles returns "number. name" for every level, in order.
func (s *Set) Titles() []string {
	out := make([]string, len(s.Levels))
	for i, def := range s.Levels {
		name := def.Name
		if name == "" {
			name = "untitled"
		}
		out[i] = fmt.Sprintf("%d. %s", def.Number, name)
	}
	return out
}

// Formats returns the set in the shape the writers expect.
func (s *Set) Formats() formats.Set {
	return formats.Set{Name: s.Name, Author: s.Author, Levels: s.Levels}
}

// Loader handles loading level sets.
type Loader struct {
	Root string // directory scanned by LoadAll
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// Default returns the level set compiled into the binary.
func Default() (*Set, error) {
	data, err := embedded.ReadFile("data/original.txt")
	if err != nil {
		return nil, &AssetError{Path: DefaultSetPath, Err: err}
	}
	return parse(DefaultSetPath, data, ".txt")
}

// Load opens path, or the built-in set when path is empty.
func Load(path string) (*Set, error) {
	if path == "" {
		return Default()
	}
	return NewLoader(filepath.Dir(path)).LoadFile(path)
}

// LoadFile loads a single level set file.
func (l *Loader) LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &AssetError{Path: path, Err: err}
	}
	return parse(path, data, strings.ToLower(filepath.Ext(path)))
}

// LoadAll recursively scans Root and loads every level set file.
// Sets are sorted by path for deterministic ordering.
func (l *Loader) LoadAll() ([]*Set, error) {
	var sets []*Set

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}
		set, err := l.LoadFile(path)
		if err != nil {
			return err
		}
		sets = append(sets, set)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(sets, func(i, j int) bool {
		return sets[i].Path < sets[j].Path
	})
	return sets, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parse routes to the correct parser.
func parse(path string, data []byte, ext string) (*Set, error) {
	var (
		fs  formats.Set
		err error
	)
	switch ext {
	case ".yaml", ".yml":
		fs, err = formats.ParseYAML(data)
	case ".txt", "":
		fs, err = formats.ParseText(data)
	default:
		err = fmt.Errorf("unsupported extension: %s", ext)
	}
	if err != nil {
		return nil, &AssetError{Path: path, Err: err}
	}
	return &Set{
		Name:   fs.Name,
		Author: fs.Author,
		Path:   path,
		Levels: fs.Levels,
		Metadata: map[string]string{
			"format": strings.TrimPrefix(ext, "."),
		},
	}, nil
}
