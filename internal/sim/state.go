// Package sim implements the deterministic round simulation: the unified
// round state, the per-tick Step transition, the directive state machine and
// the A* pathfinding it depends on. The package contains no rendering, no
// persistence and no timing; an external driver owns a *RoundState and calls
// Step once per tick.
package sim

import (
	"math"

	"github.com/google/uuid"
)

// CellKind is the static kind of a grid cell. The integer values are part of
// the external boundary: renderers and observation encoders consume them.
type CellKind int

const (
	CellEmpty CellKind = 0
	CellWall  CellKind = 1
	CellTower CellKind = 2
	CellStart CellKind = 3
)

func (c CellKind) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellWall:
		return "wall"
	case CellTower:
		return "tower"
	case CellStart:
		return "start"
	default:
		return "unknown"
	}
}

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// Vec is a continuous position or per-tick displacement.
type Vec struct {
	X, Y float64
}

// Cell returns the grid cell the vector rounds to.
func (v Vec) Cell() Point {
	return Point{X: int(math.Round(v.X)), Y: int(math.Round(v.Y))}
}

// Manhattan returns the Manhattan distance between two points.
func Manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Adjacent reports whether two points are exactly one cell apart.
func Adjacent(a, b Point) bool {
	return Manhattan(a, b) == 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Grid is the static per-round layout. Cells are indexed [y][x] and immutable
// within a round; only Transform produces a remapped copy.
type Grid struct {
	Width  int
	Height int
	Cells  [][]CellKind
}

// NewGrid allocates an empty grid of the given dimensions.
func NewGrid(width, height int) Grid {
	cells := make([][]CellKind, height)
	for y := range cells {
		cells[y] = make([]CellKind, width)
	}
	return Grid{Width: width, Height: height, Cells: cells}
}

// InBounds reports whether (x, y) lies inside the grid.
func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the cell kind at (x, y). Out-of-bounds reads return CellWall so
// that boundary handling collapses into the wall case.
func (g Grid) At(x, y int) CellKind {
	if !g.InBounds(x, y) {
		return CellWall
	}
	return g.Cells[y][x]
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	cells := make([][]CellKind, g.Height)
	for y := range cells {
		cells[y] = make([]CellKind, g.Width)
		copy(cells[y], g.Cells[y])
	}
	return Grid{Width: g.Width, Height: g.Height, Cells: cells}
}

// Tower is a stationary emplacement that fires projectiles along a fixed
// direction. Destroyed towers stay in the tower list with Health == 0 and
// stop blocking movement.
type Tower struct {
	ID     string
	Pos    Point
	Dir    Vec
	Health int
	Rate   int // ticks between shots
	Tick   int // fire counter, 0 <= Tick < Rate
}

// Default tower parameters used by round initializers.
const (
	DefaultTowerHealth = 100
	DefaultTowerRate   = 8
)

// NewTower creates a tower with a fresh id and default health and fire rate.
func NewTower(pos Point, dir Vec) Tower {
	return Tower{
		ID:     uuid.NewString(),
		Pos:    pos,
		Dir:    dir,
		Health: DefaultTowerHealth,
		Rate:   DefaultTowerRate,
	}
}

// Destroyed reports whether the tower is out of the fight.
func (t Tower) Destroyed() bool {
	return t.Health <= 0
}

// Projectile is an ephemeral shot travelling in a straight line. Position and
// direction are continuous; collision tests round to the nearest cell.
type Projectile struct {
	Pos Vec
	Dir Vec
}

// RoundState is the aggregate root for one round. It is created by a round
// initializer, advanced exclusively by Step, and discarded at round end.
type RoundState struct {
	Grid        Grid
	Towers      []Tower
	Projectiles []Projectile

	Agent  Point
	Health int

	Active      *Directive
	Interrupted *Directive

	TickIndex int
}

// Clone returns a deep copy with no shared mutable state.
func (s *RoundState) Clone() *RoundState {
	ns := *s
	ns.Grid = s.Grid.Clone()
	ns.Towers = make([]Tower, len(s.Towers))
	copy(ns.Towers, s.Towers)
	ns.Projectiles = make([]Projectile, len(s.Projectiles))
	copy(ns.Projectiles, s.Projectiles)
	if s.Active != nil {
		a := *s.Active
		ns.Active = &a
	}
	if s.Interrupted != nil {
		d := *s.Interrupted
		ns.Interrupted = &d
	}
	return &ns
}

// IsPositionValid reports whether (x, y) can be entered: in bounds, not a
// wall, and not occupied by a living tower.
func (s *RoundState) IsPositionValid(x, y int) bool {
	if !s.Grid.InBounds(x, y) {
		return false
	}
	if s.Grid.Cells[y][x] == CellWall {
		return false
	}
	for i := range s.Towers {
		if s.Towers[i].Health > 0 && s.Towers[i].Pos == (Point{X: x, Y: y}) {
			return false
		}
	}
	return true
}

// IsRoundOver reports whether the round has terminated: the agent is dead or
// every tower is destroyed. An empty tower list counts as all destroyed.
func (s *RoundState) IsRoundOver() bool {
	if s.Health <= 0 {
		return true
	}
	for i := range s.Towers {
		if s.Towers[i].Health > 0 {
			return false
		}
	}
	return true
}

// TowerByID returns a pointer into the tower list, or nil if no tower has the
// given id.
func (s *RoundState) TowerByID(id string) *Tower {
	for i := range s.Towers {
		if s.Towers[i].ID == id {
			return &s.Towers[i]
		}
	}
	return nil
}

// StartCells returns every START cell in the grid.
func (s *RoundState) StartCells() []Point {
	var starts []Point
	for y := 0; y < s.Grid.Height; y++ {
		for x := 0; x < s.Grid.Width; x++ {
			if s.Grid.Cells[y][x] == CellStart {
				starts = append(starts, Point{X: x, Y: y})
			}
		}
	}
	return starts
}
