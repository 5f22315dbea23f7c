package sim

import (
	"math/rand"
	"reflect"
	"testing"
)

func markedState() *RoundState {
	s := testState(4, 3)
	s.Grid.Cells[0][1] = CellWall
	s.Grid.Cells[2][3] = CellStart
	s.Agent = Point{0, 0}
	tower := NewTower(Point{2, 1}, Vec{1, 0})
	s.Towers = []Tower{tower}
	s.Projectiles = []Projectile{{Pos: Vec{1, 2}, Dir: Vec{0, -1}}}
	return s
}

func TestIdentityTransform(t *testing.T) {
	s := markedState()
	ns := Transform(s, 0, false, false)

	if !reflect.DeepEqual(ns.Grid, s.Grid) {
		t.Error("grid changed under identity transform")
	}
	if ns.Agent != s.Agent || ns.Towers[0].Pos != s.Towers[0].Pos {
		t.Error("positions changed under identity transform")
	}
	if ns.Towers[0].Dir != s.Towers[0].Dir || ns.Projectiles[0].Dir != s.Projectiles[0].Dir {
		t.Error("directions changed under identity transform")
	}
}

func TestQuarterTurnClockwise(t *testing.T) {
	s := markedState() // 4x3
	ns := Transform(s, 1, false, false)

	if ns.Grid.Width != 3 || ns.Grid.Height != 4 {
		t.Fatalf("dimensions = %dx%d, want 3x4", ns.Grid.Width, ns.Grid.Height)
	}
	// (x,y) -> (h-1-y, x) with src h=3.
	if ns.Grid.Cells[1][2] != CellWall {
		t.Error("wall at (1,0) should map to (2,1)")
	}
	if ns.Grid.Cells[3][0] != CellStart {
		t.Error("start at (3,2) should map to (0,3)")
	}
	if ns.Agent != (Point{2, 0}) {
		t.Errorf("agent = %v, want (2,0)", ns.Agent)
	}
	if ns.Towers[0].Pos != (Point{1, 2}) {
		t.Errorf("tower = %v, want (1,2)", ns.Towers[0].Pos)
	}
	if ns.Towers[0].Dir != (Vec{0, 1}) {
		t.Errorf("tower dir = %v, want (0,1)", ns.Towers[0].Dir)
	}
	if ns.Projectiles[0].Dir != (Vec{1, 0}) {
		t.Errorf("projectile dir = %v, want (1,0)", ns.Projectiles[0].Dir)
	}
}

func TestHalfTurnWithProjectiles(t *testing.T) {
	s := markedState() // 4x3
	ns := Transform(s, 2, false, false)

	// (x,y) -> (w-1-x, h-1-y)
	if ns.Projectiles[0].Pos != (Vec{2, 0}) {
		t.Errorf("projectile pos = %v, want (2,0)", ns.Projectiles[0].Pos)
	}
	if ns.Projectiles[0].Dir != (Vec{0, 1}) {
		t.Errorf("projectile dir = %v, want (0,1)", ns.Projectiles[0].Dir)
	}
}

func TestTransformRoundTrip(t *testing.T) {
	s := markedState()

	// Inverting the rotation with the flips repeated reconstructs the
	// original whenever the flips commute with the rotation: no flips,
	// both flips, or a half turn with any flips.
	cases := []struct {
		k            int
		flipH, flipV bool
	}{
		{0, false, false}, {1, false, false}, {2, false, false}, {3, false, false},
		{0, true, true}, {1, true, true}, {2, true, true}, {3, true, true},
		{2, true, false}, {2, false, true},
	}

	for _, tc := range cases {
		there := Transform(s, tc.k, tc.flipH, tc.flipV)
		back := Transform(there, -tc.k, tc.flipH, tc.flipV)

		if back.Grid.Width != s.Grid.Width || back.Grid.Height != s.Grid.Height {
			t.Errorf("k=%d fh=%v fv=%v: dimensions %dx%d", tc.k, tc.flipH, tc.flipV,
				back.Grid.Width, back.Grid.Height)
			continue
		}
		if !reflect.DeepEqual(back.Grid.Cells, s.Grid.Cells) {
			t.Errorf("k=%d fh=%v fv=%v: grid contents differ", tc.k, tc.flipH, tc.flipV)
		}
		if back.Agent != s.Agent {
			t.Errorf("k=%d fh=%v fv=%v: agent %v, want %v", tc.k, tc.flipH, tc.flipV, back.Agent, s.Agent)
		}
		if back.Towers[0].Pos != s.Towers[0].Pos || back.Towers[0].Dir != s.Towers[0].Dir {
			t.Errorf("k=%d fh=%v fv=%v: tower %v/%v", tc.k, tc.flipH, tc.flipV,
				back.Towers[0].Pos, back.Towers[0].Dir)
		}
	}
}

func TestTransformDoesNotShareState(t *testing.T) {
	s := markedState()
	ns := Transform(s, 2, false, false)

	ns.Grid.Cells[0][0] = CellWall
	ns.Towers[0].Health = 0
	if s.Grid.Cells[2][3] != CellStart || s.Towers[0].Health != DefaultTowerHealth {
		t.Error("transform result shares storage with its input")
	}
}

func TestRandomTransformDeterministicForSeed(t *testing.T) {
	s := markedState()

	a := RandomTransform(s, rand.New(rand.NewSource(99)))
	b := RandomTransform(s, rand.New(rand.NewSource(99)))

	if !reflect.DeepEqual(a.Grid.Cells, b.Grid.Cells) || a.Agent != b.Agent {
		t.Error("same seed produced different transforms")
	}
}
