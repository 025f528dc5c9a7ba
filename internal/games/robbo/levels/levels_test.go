package levels

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-robbo/internal/games/robbo/core"
	"github.com/vovakirdan/tui-robbo/internal/games/robbo/levels/formats"
)

func TestDefaultSet(t *testing.T) {
	set, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}
	if set.Len() < 3 {
		t.Fatalf("default set has %d levels", set.Len())
	}
	for i, def := range set.Levels {
		if def.Width != core.MaxWidth || def.Height != core.MaxHeight {
			t.Errorf("level %d is %dx%d", i, def.Width, def.Height)
		}
		if _, err := def.Instantiate(); err != nil {
			t.Errorf("level %d does not instantiate: %v", i, err)
		}
	}
	if errs := Check(set); len(errs) != 0 {
		t.Errorf("Check() = %v", errs)
	}
}

func TestDefaultSetPlays(t *testing.T) {
	set, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}
	cfg := core.DefaultConfig()
	cfg.Benchmark = true
	cfg.BenchmarkRestart = 50
	s, err := core.NewState(set, cfg, 0)
	if err != nil {
		t.Fatalf("NewState() failed: %v", err)
	}
	for i := 0; i < 500; i++ {
		if _, err := s.Step(core.Intent{}); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}
}

func TestSetLevel(t *testing.T) {
	set, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}

	def, err := set.Level(0)
	if err != nil {
		t.Fatalf("Level(0) failed: %v", err)
	}
	def.Tiles[0] = core.Floor()
	if set.Levels[0].Tiles[0] != core.Wall() {
		t.Error("Level() returned shared tiles")
	}

	if _, err := set.Level(set.Len()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Level(out of range) = %v, expected ErrNotFound", err)
	}
	if _, err := set.IndexOf(999); !errors.Is(err, ErrNotFound) {
		t.Errorf("IndexOf(999) = %v, expected ErrNotFound", err)
	}
	if idx, err := set.IndexOf(2); err != nil || idx != 1 {
		t.Errorf("IndexOf(2) = %d, %v", idx, err)
	}
}

func TestLoadTextAndYAMLAgree(t *testing.T) {
	l := NewLoader("testdata")
	txt, err := l.LoadFile(filepath.Join("testdata", "small.txt"))
	if err != nil {
		t.Fatalf("LoadFile(txt) failed: %v", err)
	}
	yml, err := l.LoadFile(filepath.Join("testdata", "small.yaml"))
	if err != nil {
		t.Fatalf("LoadFile(yaml) failed: %v", err)
	}
	if !reflect.DeepEqual(txt.Levels, yml.Levels) {
		t.Error("text and yaml encodings of the same set differ")
	}
	if got := txt.Titles(); !reflect.DeepEqual(got, []string{"7. Corridor", "2. Pads"}) {
		t.Errorf("Titles() = %v", got)
	}
}

func TestMissingAndBrokenSets(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.txt"))
	var ae *AssetError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AssetError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error does not wrap os.ErrNotExist: %v", err)
	}

	_, err = Load(filepath.Join("testdata", "broken", "two_robbos.txt"))
	var pe *formats.ParseError
	if !errors.As(err, &ae) || !errors.As(err, &pe) {
		t.Fatalf("expected AssetError wrapping ParseError, got %v", err)
	}
	if pe.Code != "ROBBO_COUNT" {
		t.Errorf("code = %s", pe.Code)
	}
}

func TestLoadAll(t *testing.T) {
	sets, err := NewLoader(filepath.Join("testdata")).LoadAll()
	if err == nil {
		t.Fatalf("LoadAll() should fail on the broken set, got %d sets", len(sets))
	}

	dir := t.TempDir()
	for _, name := range []string{"small.txt", "small.yaml"} {
		data, err := os.ReadFile(filepath.Join("testdata", name))
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	os.WriteFile(filepath.Join(dir, "notes.md"), []byte("ignored"), 0o644)

	sets, err = NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}
	if len(sets) != 2 {
		t.Fatalf("got %d sets, expected 2", len(sets))
	}
	if filepath.Base(sets[0].Path) != "small.txt" || sets[1].Metadata["format"] != "yaml" {
		t.Errorf("unexpected order or metadata: %s %v", sets[0].Path, sets[1].Metadata)
	}
}

func TestExportRoundTrip(t *testing.T) {
	set, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}
	dir := t.TempDir()
	for _, name := range []string{"out.txt", "out.yaml"} {
		path := filepath.Join(dir, name)
		if err := Export(set, path); err != nil {
			t.Fatalf("Export(%s) failed: %v", name, err)
		}
		back, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s) failed: %v", name, err)
		}
		if !reflect.DeepEqual(back.Levels, set.Levels) || back.Name != set.Name {
			t.Errorf("%s: exported set differs", name)
		}
	}
}

func TestExportRefusesLossyText(t *testing.T) {
	set, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}
	set.Name = "Kids; hard"
	path := filepath.Join(t.TempDir(), "out.txt")

	err = Export(set, path)
	var pe *formats.ParseError
	if !errors.As(err, &pe) || pe.Code != "BAD_NAME" {
		t.Fatalf("expected BAD_NAME, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("a partial export was left on disk")
	}
	if err := Export(set, filepath.Join(t.TempDir(), "out.yaml")); err != nil {
		t.Errorf("yaml export should keep the name: %v", err)
	}
}
