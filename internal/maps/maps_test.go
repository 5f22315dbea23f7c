package maps

import (
	"math/rand"
	"testing"

	"arrowfield/internal/sim"
)

func TestEmbeddedMapsAreValid(t *testing.T) {
	defs := List()
	if len(defs) != 3 {
		t.Fatalf("expected 3 built-in maps, got %d", len(defs))
	}
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			t.Errorf("map %s: %v", def.Name, err)
		}
		if _, err := def.BuildRound(); err != nil {
			t.Errorf("map %s: BuildRound: %v", def.Name, err)
		}
	}
}

func TestLoadResolvesEmbeddedDefault(t *testing.T) {
	def, err := Load("default", "")
	if err != nil {
		t.Fatalf("Load(default): %v", err)
	}
	if def.Name != "default" || len(def.Towers) != 1 {
		t.Fatalf("unexpected definition: %+v", def)
	}

	if _, err := Load("no-such-map", ""); err == nil {
		t.Error("expected an error for an unknown map name")
	}
}

func TestBuildRoundDefaultMap(t *testing.T) {
	def, err := Load("default", "")
	if err != nil {
		t.Fatal(err)
	}
	state, err := def.BuildRound()
	if err != nil {
		t.Fatal(err)
	}

	if state.Grid.Width != 16 || state.Grid.Height != 16 {
		t.Errorf("grid %dx%d, want 16x16", state.Grid.Width, state.Grid.Height)
	}
	if state.Agent != (sim.Point{X: 0, Y: 0}) {
		t.Errorf("agent starts at %v, want the START cell (0,0)", state.Agent)
	}
	if len(state.Towers) != 1 {
		t.Fatalf("towers = %d, want 1", len(state.Towers))
	}
	tw := state.Towers[0]
	if tw.Pos != (sim.Point{X: 3, Y: 3}) || tw.Dir != (sim.Vec{X: 1, Y: 0}) {
		t.Errorf("tower %v dir %v", tw.Pos, tw.Dir)
	}
	if tw.Health != sim.DefaultTowerHealth || tw.Rate != sim.DefaultTowerRate {
		t.Errorf("tower defaults not applied: health %d rate %d", tw.Health, tw.Rate)
	}
	if state.Grid.Cells[3][3] != sim.CellTower {
		t.Error("tower cell not marked in the grid")
	}
	if state.Grid.Cells[0][0] != sim.CellStart {
		t.Error("start cell not marked in the grid")
	}
}

func TestValidateRejectsBrokenMaps(t *testing.T) {
	cases := []struct {
		name string
		def  MapDef
	}{
		{"ragged rows", MapDef{Name: "m", Layout: []string{"...", ".."}}},
		{"unknown rune", MapDef{Name: "m", Layout: []string{".x."}}},
		{"tower out of bounds", MapDef{
			Name: "m", Layout: []string{"..."},
			Towers: []TowerDef{{X: 5, Y: 0, DX: 1}},
		}},
		{"tower on wall", MapDef{
			Name: "m", Layout: []string{".#."},
			Towers: []TowerDef{{X: 1, Y: 0, DX: 1}},
		}},
		{"tower without direction", MapDef{
			Name: "m", Layout: []string{"..."},
			Towers: []TowerDef{{X: 0, Y: 0}},
		}},
		{"nameless", MapDef{Layout: []string{"..."}}},
	}
	for _, tc := range cases {
		if err := tc.def.Validate(); err == nil {
			t.Errorf("%s: expected a validation error", tc.name)
		}
	}
}

func TestNewRoundAugmentationIsDeterministic(t *testing.T) {
	def, err := Load("cross", "")
	if err != nil {
		t.Fatal(err)
	}

	a, err := def.NewRound(rand.New(rand.NewSource(7)), true)
	if err != nil {
		t.Fatal(err)
	}
	b, err := def.NewRound(rand.New(rand.NewSource(7)), true)
	if err != nil {
		t.Fatal(err)
	}

	if a.Agent != b.Agent || a.Grid.Width != b.Grid.Width {
		t.Error("same seed produced different rounds")
	}
	for i := range a.Towers {
		if a.Towers[i].Pos != b.Towers[i].Pos || a.Towers[i].Dir != b.Towers[i].Dir {
			t.Errorf("tower %d diverged between same-seed rounds", i)
		}
	}
}

func TestNewRoundPicksStartCell(t *testing.T) {
	def, err := Load("cross", "")
	if err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		state, err := def.NewRound(rng, false)
		if err != nil {
			t.Fatal(err)
		}
		if state.Grid.Cells[state.Agent.Y][state.Agent.X] != sim.CellStart {
			t.Fatalf("agent placed on a non-start cell %v", state.Agent)
		}
	}
}
