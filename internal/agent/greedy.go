// Package agent contains scripted policies that pick one directive per tick
// from a round state. They exist for headless evaluation and as baselines;
// nothing in the simulation depends on them.
package agent

import "arrowfield/internal/sim"

// Policy maps a round state to the directive to issue this tick.
type Policy interface {
	Act(s *sim.RoundState) sim.Directive
}

// Greedy walks to the nearest living tower and attacks it. While a directive
// is in flight it resumes rather than re-planning, so multi-tick moves run to
// completion.
type Greedy struct{}

// Act implements Policy.
func (Greedy) Act(s *sim.RoundState) sim.Directive {
	if s.Active != nil {
		return sim.Resume()
	}

	target := nearestLivingTower(s)
	if target == nil {
		return sim.Stand()
	}
	if sim.Adjacent(s.Agent, target.Pos) {
		return sim.Attack(target.ID)
	}
	if adj, ok := sim.NearestAdjacent(s, target.Pos); ok {
		return sim.Move(adj)
	}
	return sim.Stand()
}

func nearestLivingTower(s *sim.RoundState) *sim.Tower {
	var best *sim.Tower
	bestDist := 0
	for i := range s.Towers {
		t := &s.Towers[i]
		if t.Destroyed() {
			continue
		}
		d := sim.Manhattan(s.Agent, t.Pos)
		if best == nil || d < bestDist {
			best = t
			bestDist = d
		}
	}
	return best
}
