package core

import (
	"errors"
	"strings"
	"testing"
)

func TestLevelRowsRoundTrip(t *testing.T) {
	rows := []string{
		"OOOOOOO",
		"O@^#*EO",
		"O-=MF!O",
		"ODT%'bO",
		"O&R<>AO",
		"OoV...O",
		"OOOOOOO",
	}
	def := mustLevel(t, rows...)
	if got := def.Rows(); strings.Join(got, "\n") != strings.Join(rows, "\n") {
		t.Errorf("Rows() =\n%s\nexpected\n%s", strings.Join(got, "\n"), strings.Join(rows, "\n"))
	}

	w, err := def.Instantiate()
	if err != nil {
		t.Fatalf("Instantiate() failed: %v", err)
	}
	if got := w.DumpASCII(); got != strings.Join(rows, "\n") {
		t.Errorf("DumpASCII() =\n%s", got)
	}
}

func TestLevelValidation(t *testing.T) {
	tests := []struct {
		name string
		def  func() LevelDef
		code string
	}{
		{"no robbo", func() LevelDef { return mustLevel(t, "O..O") }, "ROBBO_COUNT"},
		{"two robbos", func() LevelDef { return mustLevel(t, "ORRO") }, "ROBBO_COUNT"},
		{"too wide", func() LevelDef { return NewLevelDef(1, MaxWidth+1, 1) }, "BAD_SIZE"},
		{"on a wall", func() LevelDef {
			d := mustLevel(t, "OR.O")
			d.Placements = append(d.Placements, Placement{Kind: KindBox, Pos: C(0, 0)})
			return d
		}, "BLOCKED_PLACEMENT"},
		{"overlap", func() LevelDef {
			d := mustLevel(t, "OR.O")
			d.Placements = append(d.Placements, Placement{Kind: KindBox, Pos: C(1, 0)})
			return d
		}, "OVERLAP"},
		{"outside", func() LevelDef {
			d := mustLevel(t, "OR.O")
			d.Placements = append(d.Placements, Placement{Kind: KindBox, Pos: C(9, 0)})
			return d
		}, "OUT_OF_BOUNDS"},
		{"unknown weapon", func() LevelDef {
			d := mustLevel(t, "OR.O")
			d.Placements = append(d.Placements, Placement{Kind: KindEyes, Pos: C(2, 0), Param: int(WeaponBlaster) + 1})
			return d
		}, "BAD_PARAM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def().Validate()
			var ve ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Code != tt.code {
				t.Errorf("code = %s, expected %s", ve.Code, tt.code)
			}
		})
	}
}

func TestBirdMayStartOnRubble(t *testing.T) {
	d := mustLevel(t, "OR.oO")
	d.Placements = append(d.Placements, Placement{Kind: KindBird, Pos: C(3, 0), Dir: DirRight})
	if err := d.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestUnknownGlyph(t *testing.T) {
	_, err := LevelFromRows(1, []string{"OR?O"})
	var ve ValidationError
	if !errors.As(err, &ve) || ve.Code != "BAD_GLYPH" {
		t.Errorf("expected BAD_GLYPH, got %v", err)
	}
}

func TestShortRowsArePadded(t *testing.T) {
	def := mustLevel(t, "OOOO", "OR", "OOOO")
	if def.Width != 4 || def.TileAt(C(3, 1)).Kind != TileFloor {
		t.Errorf("short row not padded with floor: width %d", def.Width)
	}
}

func TestInstantiateIsRepeatable(t *testing.T) {
	def := mustLevel(t, busy...)
	a, err := def.Instantiate()
	if err != nil {
		t.Fatalf("Instantiate() failed: %v", err)
	}
	b, _ := def.Instantiate()
	if !a.Equal(b) || a.Hash() != b.Hash() {
		t.Error("the same definition produced different worlds")
	}
}

func TestKindNames(t *testing.T) {
	for _, k := range MoveOrder() {
		got, ok := KindByName(k.String())
		if !ok || got != k {
			t.Errorf("KindByName(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := KindByName("dragon"); ok {
		t.Error("unknown name accepted")
	}
}

func TestCueForEvent(t *testing.T) {
	tests := []struct {
		event GameEvent
		want  Cue
	}{
		{GameEvent{Kind: EventPickupItem, Item: KindScrew}, CueScrew},
		{GameEvent{Kind: EventPickupItem, Item: KindAmmo}, CueAmmo},
		{GameEvent{Kind: EventOpenDoor}, CueDoor},
		{GameEvent{Kind: EventActivateCapsule}, CueSpawn},
		{GameEvent{Kind: EventShotFired}, CueShot},
	}
	for _, tt := range tests {
		got, ok := CueForEvent(tt.event)
		if !ok || got != tt.want {
			t.Errorf("CueForEvent(%s) = %s, expected %s", tt.event.Kind, got, tt.want)
		}
	}
	if _, ok := CueForEvent(GameEvent{Kind: EventPlayerDied}); ok {
		t.Error("PlayerDied should have no cue")
	}
}
