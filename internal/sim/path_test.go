package sim

import (
	"reflect"
	"testing"
)

func testState(w, h int) *RoundState {
	return &RoundState{Grid: NewGrid(w, h), Health: 100}
}

func TestShortestPathOnOpenGrid(t *testing.T) {
	s := testState(16, 16)

	cases := []struct {
		start, goal Point
	}{
		{Point{0, 0}, Point{5, 0}},
		{Point{0, 0}, Point{0, 7}},
		{Point{2, 3}, Point{9, 11}},
		{Point{15, 15}, Point{0, 0}},
	}

	for _, tc := range cases {
		path := FindPath(s, tc.start, tc.goal)
		want := Manhattan(tc.start, tc.goal) + 1
		if len(path) != want {
			t.Errorf("FindPath(%v, %v): got %d cells, want %d", tc.start, tc.goal, len(path), want)
			continue
		}
		if path[0] != tc.start || path[len(path)-1] != tc.goal {
			t.Errorf("FindPath(%v, %v): endpoints %v..%v", tc.start, tc.goal, path[0], path[len(path)-1])
		}
		for i := 1; i < len(path); i++ {
			if !Adjacent(path[i-1], path[i]) {
				t.Errorf("FindPath(%v, %v): non-adjacent step %v -> %v", tc.start, tc.goal, path[i-1], path[i])
			}
		}
	}
}

func TestSameStartAndGoal(t *testing.T) {
	s := testState(8, 8)
	p := Point{3, 4}

	path := FindPath(s, p, p)
	if len(path) != 1 || path[0] != p {
		t.Fatalf("FindPath(p, p) = %v, want [%v]", path, p)
	}
}

func TestDetourAroundWall(t *testing.T) {
	s := testState(5, 5)
	// Vertical wall at x=2 with a single gap at the bottom.
	for y := 0; y < 4; y++ {
		s.Grid.Cells[y][2] = CellWall
	}

	start := Point{0, 0}
	goal := Point{4, 0}
	path := FindPath(s, start, goal)
	if len(path) == 0 {
		t.Fatal("expected a path through the gap")
	}
	if len(path) <= Manhattan(start, goal)+1 {
		t.Errorf("path of %d cells is too short to be a detour", len(path))
	}
	for _, p := range path {
		if s.Grid.Cells[p.Y][p.X] == CellWall {
			t.Errorf("path passes through wall at %v", p)
		}
	}
	if path[len(path)-1] != goal {
		t.Errorf("path ends at %v, want %v", path[len(path)-1], goal)
	}
}

func TestNoPathWhenGoalEnclosed(t *testing.T) {
	s := testState(8, 8)
	goal := Point{5, 5}
	for _, w := range []Point{{4, 5}, {6, 5}, {5, 4}, {5, 6}} {
		s.Grid.Cells[w.Y][w.X] = CellWall
	}

	if path := FindPath(s, Point{0, 0}, goal); len(path) != 0 {
		t.Fatalf("expected no path, got %v", path)
	}
}

func TestInvalidEndpoints(t *testing.T) {
	s := testState(8, 8)
	s.Grid.Cells[3][3] = CellWall

	if path := FindPath(s, Point{0, 0}, Point{3, 3}); len(path) != 0 {
		t.Errorf("goal on wall: got %v, want empty", path)
	}
	if path := FindPath(s, Point{0, 0}, Point{8, 0}); len(path) != 0 {
		t.Errorf("goal out of bounds: got %v, want empty", path)
	}
	if path := FindPath(s, Point{-1, 0}, Point{2, 2}); len(path) != 0 {
		t.Errorf("start out of bounds: got %v, want empty", path)
	}
}

func TestDestroyedTowerDoesNotBlock(t *testing.T) {
	s := testState(7, 1)
	tower := NewTower(Point{3, 0}, Vec{1, 0})
	s.Towers = []Tower{tower}

	// A living tower on the only row makes the far side unreachable.
	if path := FindPath(s, Point{0, 0}, Point{6, 0}); len(path) != 0 {
		t.Fatalf("living tower should block: got %v", path)
	}

	s.Towers[0].Health = 0
	path := FindPath(s, Point{0, 0}, Point{6, 0})
	if len(path) != 7 {
		t.Fatalf("destroyed tower should not block: got %d cells, want 7", len(path))
	}
}

func TestPathDeterminism(t *testing.T) {
	s := testState(12, 12)
	s.Grid.Cells[5][5] = CellWall
	s.Grid.Cells[6][5] = CellWall

	a := FindPath(s, Point{0, 0}, Point{11, 11})
	b := FindPath(s, Point{0, 0}, Point{11, 11})
	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical queries disagree:\n%v\n%v", a, b)
	}
}

func TestNearestAdjacent(t *testing.T) {
	s := testState(5, 5)
	tower := NewTower(Point{2, 2}, Vec{0, 1})
	s.Towers = []Tower{tower}

	adj, ok := NearestAdjacent(s, tower.Pos)
	if !ok {
		t.Fatal("expected an adjacent cell")
	}
	if adj != (Point{2, 3}) {
		t.Errorf("got %v, want first neighbor in scan order (2,3)", adj)
	}

	// Box the tower in completely.
	for _, w := range []Point{{2, 3}, {3, 2}, {2, 1}, {1, 2}} {
		s.Grid.Cells[w.Y][w.X] = CellWall
	}
	if _, ok := NearestAdjacent(s, tower.Pos); ok {
		t.Error("expected no adjacent cell for a boxed-in tower")
	}
}
