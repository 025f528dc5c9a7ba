package registry

import (
	"testing"

	"github.com/vovakirdan/tui-robbo/internal/core"
)

type stubGame struct {
	steps int
}

func (g *stubGame) ID() string                   { return "stub" }
func (g *stubGame) Title() string                { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig)     { g.steps = 0 }
func (g *stubGame) Render(*core.Screen)          {}
func (g *stubGame) State() core.GameState        { return core.GameState{Score: g.steps} }
func (g *stubGame) Step(core.InputFrame) core.StepResult {
	g.steps++
	return core.StepResult{State: g.State()}
}

func TestRegisterAndCreate(t *testing.T) {
	Register(Info{ID: "stub-a", Description: "test"}, func() Game { return &stubGame{} })
	defer unregister("stub-a")

	info, ok := Lookup("stub-a")
	if !ok || info.Title != "stub-a" {
		t.Errorf("Lookup() = %+v, %v; empty titles default to the id", info, ok)
	}

	a, err := Create("stub-a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	b, _ := Create("stub-a")
	a.Step(core.NewInputFrame())
	if b.State().Score != 0 {
		t.Error("Create() returned a shared instance")
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create() accepted an unknown id")
	}
	if Exists("missing") || !Exists("stub-a") {
		t.Error("Exists() is wrong")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(Info{ID: "stub-b"}, func() Game { return &stubGame{} })
	defer unregister("stub-b")

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() should panic")
		}
	}()
	Register(Info{ID: "stub-b"}, func() Game { return &stubGame{} })
}

func TestListIsSorted(t *testing.T) {
	Register(Info{ID: "stub-z"}, func() Game { return &stubGame{} })
	Register(Info{ID: "stub-c"}, func() Game { return &stubGame{} })
	defer unregister("stub-z")
	defer unregister("stub-c")

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Fatalf("List() not sorted: %v", list)
		}
	}
}
