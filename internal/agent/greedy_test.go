package agent

import (
	"testing"

	"arrowfield/internal/maps"
	"arrowfield/internal/sim"
)

func openState(t *testing.T, w, h int, agent sim.Point, towers ...sim.Tower) *sim.RoundState {
	t.Helper()
	return &sim.RoundState{
		Grid:   sim.NewGrid(w, h),
		Towers: towers,
		Agent:  agent,
		Health: 100,
	}
}

func TestGreedyResumesActiveDirective(t *testing.T) {
	s := openState(t, 8, 8, sim.Point{X: 0, Y: 0}, sim.NewTower(sim.Point{X: 5, Y: 5}, sim.Vec{X: 1}))
	active := sim.Move(sim.Point{X: 4, Y: 5})
	s.Active = &active

	got := Greedy{}.Act(s)
	if got.Kind != sim.DirectiveResume {
		t.Errorf("got %v, want resume while a directive is in flight", got.Kind)
	}
}

func TestGreedyAttacksAdjacentTower(t *testing.T) {
	tower := sim.NewTower(sim.Point{X: 3, Y: 3}, sim.Vec{X: 1})
	s := openState(t, 8, 8, sim.Point{X: 3, Y: 2}, tower)

	got := Greedy{}.Act(s)
	if got.Kind != sim.DirectiveAttack || got.TargetID != tower.ID {
		t.Errorf("got %v target %q, want attack on the adjacent tower", got.Kind, got.TargetID)
	}
}

func TestGreedyMovesTowardNearestTower(t *testing.T) {
	near := sim.NewTower(sim.Point{X: 3, Y: 3}, sim.Vec{X: 1})
	far := sim.NewTower(sim.Point{X: 7, Y: 7}, sim.Vec{X: 1})
	s := openState(t, 8, 8, sim.Point{X: 0, Y: 0}, far, near)

	got := Greedy{}.Act(s)
	if got.Kind != sim.DirectiveMove {
		t.Fatalf("got %v, want move", got.Kind)
	}
	if !sim.Adjacent(got.Target, near.Pos) {
		t.Errorf("move target %v is not adjacent to the nearest tower at %v", got.Target, near.Pos)
	}
}

func TestGreedySkipsDestroyedTowers(t *testing.T) {
	dead := sim.NewTower(sim.Point{X: 1, Y: 0}, sim.Vec{X: 1})
	dead.Health = 0
	live := sim.NewTower(sim.Point{X: 6, Y: 6}, sim.Vec{X: 1})
	s := openState(t, 8, 8, sim.Point{X: 0, Y: 0}, dead, live)

	got := Greedy{}.Act(s)
	if got.Kind != sim.DirectiveMove || !sim.Adjacent(got.Target, live.Pos) {
		t.Errorf("got %v target %v, want move toward the living tower", got.Kind, got.Target)
	}
}

func TestGreedyStandsWithNoLivingTowers(t *testing.T) {
	dead := sim.NewTower(sim.Point{X: 2, Y: 2}, sim.Vec{X: 1})
	dead.Health = 0
	s := openState(t, 8, 8, sim.Point{X: 0, Y: 0}, dead)

	if got := (Greedy{}).Act(s); got.Kind != sim.DirectiveStand {
		t.Errorf("got %v, want stand", got.Kind)
	}
}

func TestGreedyClearsDefaultMap(t *testing.T) {
	def, err := maps.Load("default", "")
	if err != nil {
		t.Fatal(err)
	}
	state, err := def.BuildRound()
	if err != nil {
		t.Fatal(err)
	}

	policy := Greedy{}
	for tick := 0; tick < 300 && !state.IsRoundOver(); tick++ {
		state, _, _ = sim.Step(state, policy.Act(state))
	}

	if !state.IsRoundOver() {
		t.Fatal("greedy policy never finished the round")
	}
	if state.Health <= 0 {
		t.Fatalf("agent died with health %d", state.Health)
	}
	for _, tw := range state.Towers {
		if !tw.Destroyed() {
			t.Errorf("tower at %v survived", tw.Pos)
		}
	}
}
