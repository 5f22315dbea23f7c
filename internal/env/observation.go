package env

import (
	"sort"

	"arrowfield/internal/sim"
)

// Observation plane indices. Planes is laid out [y][x][plane] flattened, so
// consumers index it as (y*Width+x)*PlaneCount+plane.
const (
	PlaneAgent = iota
	PlaneBlocked
	PlaneTower
	PlaneDestroyedTower
	PlaneProjectile
	PlaneStart
	PlaneCount
)

// VectorSize is the length of the scalar feature vector.
const VectorSize = 13

// NearestTowerSlots is how many towers the nearest-towers block describes;
// each slot carries (dx, dy, health, destroyed).
const NearestTowerSlots = 5

// Observation is the flat encoding of a RoundState handed to policies. All
// features are normalized to roughly [-1, 1].
type Observation struct {
	Width  int
	Height int

	// Planes is the per-cell encoding, Width*Height*PlaneCount floats.
	Planes []float32

	// Vector is the scalar state: agent position, health, directive flags.
	Vector []float32

	// NearestTowers describes the NearestTowerSlots closest towers as
	// (dx, dy, health, destroyed) quadruples, padded with zeros.
	NearestTowers []float32
}

// Encode builds an Observation from a round state.
func Encode(s *sim.RoundState) Observation {
	w, h := s.Grid.Width, s.Grid.Height
	obs := Observation{
		Width:         w,
		Height:        h,
		Planes:        make([]float32, w*h*PlaneCount),
		Vector:        make([]float32, VectorSize),
		NearestTowers: make([]float32, NearestTowerSlots*4),
	}

	set := func(x, y, plane int, v float32) {
		if x >= 0 && x < w && y >= 0 && y < h {
			obs.Planes[(y*w+x)*PlaneCount+plane] = v
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			switch s.Grid.Cells[y][x] {
			case sim.CellWall:
				set(x, y, PlaneBlocked, 1)
			case sim.CellStart:
				set(x, y, PlaneStart, 1)
			}
		}
	}

	for i := range s.Towers {
		t := &s.Towers[i]
		if t.Health > 0 {
			set(t.Pos.X, t.Pos.Y, PlaneTower, 1)
			set(t.Pos.X, t.Pos.Y, PlaneBlocked, 1)
		} else {
			set(t.Pos.X, t.Pos.Y, PlaneDestroyedTower, 1)
		}
	}

	for _, p := range s.Projectiles {
		cell := p.Pos.Cell()
		set(cell.X, cell.Y, PlaneProjectile, 1)
	}

	set(s.Agent.X, s.Agent.Y, PlaneAgent, 1)

	obs.Vector = encodeVector(s)
	obs.NearestTowers = encodeNearestTowers(s)
	return obs
}

func encodeVector(s *sim.RoundState) []float32 {
	w, h := float32(s.Grid.Width), float32(s.Grid.Height)
	v := make([]float32, VectorSize)
	v[0] = float32(s.Agent.X) / w
	v[1] = float32(s.Agent.Y) / h
	v[2] = float32(s.Health) / 100

	if s.Active != nil {
		v[3] = 1
		switch s.Active.Kind {
		case sim.DirectiveMove:
			v[4] = 1
			v[7] = float32(s.Active.Target.X) / w
			v[8] = float32(s.Active.Target.Y) / h
		case sim.DirectiveAttack:
			v[5] = 1
		case sim.DirectiveStand:
			v[6] = 1
		}
	}
	if s.Interrupted != nil {
		v[9] = 1
	}

	living := 0
	for i := range s.Towers {
		if s.Towers[i].Health > 0 {
			living++
		}
	}
	if len(s.Towers) > 0 {
		v[10] = float32(living) / float32(len(s.Towers))
	}

	projectiles := len(s.Projectiles)
	if projectiles > 10 {
		projectiles = 10
	}
	v[11] = float32(projectiles) / 10

	tick := float32(s.TickIndex) / 1000
	if tick > 1 {
		tick = 1
	}
	v[12] = tick
	return v
}

func encodeNearestTowers(s *sim.RoundState) []float32 {
	type entry struct {
		idx  int
		dist int
	}
	entries := make([]entry, 0, len(s.Towers))
	for i := range s.Towers {
		entries = append(entries, entry{idx: i, dist: sim.Manhattan(s.Agent, s.Towers[i].Pos)})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].dist < entries[j].dist })

	w, h := float32(s.Grid.Width), float32(s.Grid.Height)
	out := make([]float32, NearestTowerSlots*4)
	for slot := 0; slot < NearestTowerSlots && slot < len(entries); slot++ {
		t := &s.Towers[entries[slot].idx]
		base := slot * 4
		out[base+0] = float32(t.Pos.X-s.Agent.X) / w
		out[base+1] = float32(t.Pos.Y-s.Agent.Y) / h
		out[base+2] = float32(t.Health) / 100
		if t.Destroyed() {
			out[base+3] = 1
		}
	}
	return out
}
