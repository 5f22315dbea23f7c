// Package maps provides YAML map definitions and round initialization for
// the simulation. A MapDef is the only configuration artifact a round needs:
// the static layout, the tower placements, and the agent start cells.
package maps

import (
	"fmt"
	"math/rand"

	"arrowfield/internal/sim"
)

// Layout runes.
const (
	runeEmpty = '.'
	runeWall  = '#'
	runeStart = 'S'
)

// TowerDef places one tower on the map.
type TowerDef struct {
	X      int     `yaml:"x"`
	Y      int     `yaml:"y"`
	DX     float64 `yaml:"dx"`
	DY     float64 `yaml:"dy"`
	Health int     `yaml:"health"` // 0 means DefaultTowerHealth
	Rate   int     `yaml:"rate"`   // 0 means DefaultTowerRate
}

// MapDef is a parsed map file.
type MapDef struct {
	Name   string     `yaml:"name"`
	Layout []string   `yaml:"layout"`
	Towers []TowerDef `yaml:"towers"`
}

// Validate checks the layout rectangle, its runes and the tower placements.
func (m MapDef) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("map has no name")
	}
	if len(m.Layout) == 0 {
		return fmt.Errorf("map %s: empty layout", m.Name)
	}
	width := len([]rune(m.Layout[0]))
	for i, row := range m.Layout {
		runes := []rune(row)
		if len(runes) != width {
			return fmt.Errorf("map %s: row %d has %d cells, want %d", m.Name, i, len(runes), width)
		}
		for j, r := range runes {
			if r != runeEmpty && r != runeWall && r != runeStart {
				return fmt.Errorf("map %s: unknown rune %q at (%d,%d)", m.Name, r, j, i)
			}
		}
	}
	for i, td := range m.Towers {
		if td.X < 0 || td.X >= width || td.Y < 0 || td.Y >= len(m.Layout) {
			return fmt.Errorf("map %s: tower %d at (%d,%d) is out of bounds", m.Name, i, td.X, td.Y)
		}
		if []rune(m.Layout[td.Y])[td.X] == runeWall {
			return fmt.Errorf("map %s: tower %d at (%d,%d) sits on a wall", m.Name, i, td.X, td.Y)
		}
		if td.DX == 0 && td.DY == 0 {
			return fmt.Errorf("map %s: tower %d has no firing direction", m.Name, i)
		}
	}
	return nil
}

// BuildRound constructs a fresh RoundState from the definition. The agent
// starts on the first START cell in scan order, or (0,0) when the map has
// none. Tower cells are marked in the grid so renderers and encoders see the
// TOWER cell kind.
func (m MapDef) BuildRound() (*sim.RoundState, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	height := len(m.Layout)
	width := len([]rune(m.Layout[0]))
	grid := sim.NewGrid(width, height)

	agent := sim.Point{}
	agentPlaced := false
	for y, row := range m.Layout {
		for x, r := range []rune(row) {
			switch r {
			case runeWall:
				grid.Cells[y][x] = sim.CellWall
			case runeStart:
				grid.Cells[y][x] = sim.CellStart
				if !agentPlaced {
					agent = sim.Point{X: x, Y: y}
					agentPlaced = true
				}
			}
		}
	}

	towers := make([]sim.Tower, 0, len(m.Towers))
	for _, td := range m.Towers {
		tower := sim.NewTower(sim.Point{X: td.X, Y: td.Y}, sim.Vec{X: td.DX, Y: td.DY})
		if td.Health > 0 {
			tower.Health = td.Health
		}
		if td.Rate > 0 {
			tower.Rate = td.Rate
		}
		towers = append(towers, tower)
		grid.Cells[td.Y][td.X] = sim.CellTower
	}

	return &sim.RoundState{
		Grid:   grid,
		Towers: towers,
		Agent:  agent,
		Health: 100,
	}, nil
}

// NewRound builds a round and, when rng is non-nil, applies the training
// augmentations: a random rotation/flip of the whole state and a random pick
// among the map's start cells.
func (m MapDef) NewRound(rng *rand.Rand, augment bool) (*sim.RoundState, error) {
	state, err := m.BuildRound()
	if err != nil {
		return nil, err
	}
	if rng == nil {
		return state, nil
	}
	if augment {
		state = sim.RandomTransform(state, rng)
	}
	candidates := append([]sim.Point{state.Agent}, state.StartCells()...)
	state.Agent = candidates[rng.Intn(len(candidates))]
	return state, nil
}
