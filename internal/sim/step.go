package sim

// Combat constants.
const (
	AgentAttackDamage = 20
	ProjectileDamage  = 10
)

// Reward shaping constants for reinforcement-learning drivers.
const (
	rewardStepPenalty    = -0.2
	rewardTowerDamaged   = 5.0
	rewardTowerDestroyed = 30.0
	rewardAgentDamaged   = -5.0
	rewardApproach       = 1.0
	rewardSurvived       = 200.0
	rewardDied           = -100.0
)

// Step advances the round by one tick. It never mutates the input state and
// never fails: invalid directive parameters abort the directive, are logged,
// and still yield a well-formed state. The returned events are ordered as
// they occurred and the reward is the shaped scalar for this tick.
//
// An invalid or already-satisfied Move target and a Resume with no active
// directive end the tick immediately: towers do not fire and projectiles do
// not advance on such ticks.
func Step(state *RoundState, action Directive) (*RoundState, []Event, float64) {
	ns := state.Clone()
	var events []Event
	reward := rewardStepPenalty

	ns.TickIndex++

	// Distance snapshot for the approach-shaping fold below. This is the
	// first living tower in list order, and the fold carries the running
	// distance tower by tower; both are load-bearing for reward parity.
	oldDistance := 0
	for i := range ns.Towers {
		if ns.Towers[i].Health > 0 {
			oldDistance = Manhattan(ns.Agent, ns.Towers[i].Pos)
			break
		}
	}

	oldPos := ns.Agent

	// Any action other than Resume replaces the active directive, pushing
	// the previous one into the interrupted slot. No deduplication: a Move
	// identical to the running one still replaces it.
	if action.Kind != DirectiveResume {
		ns.Interrupted = ns.Active
		a := action
		ns.Active = &a
	}

	if ns.Active == nil {
		logger.Error("resume with no active directive", "tick", ns.TickIndex)
		return ns, events, reward
	}

	switch ns.Active.Kind {
	case DirectiveMove:
		target := ns.Active.Target
		if !ns.IsPositionValid(target.X, target.Y) {
			logger.Error("move target is not walkable", "target", target)
			ns.Active, ns.Interrupted = nil, nil
			return ns, events, reward
		}
		if ns.Agent == target {
			ns.Active, ns.Interrupted = nil, nil
			return ns, events, reward
		}
		// The path is recomputed every tick so the plan reacts to towers
		// destroyed since the directive was issued.
		path := FindPath(ns, ns.Agent, target)
		if len(path) > 1 {
			ns.Agent = path[1]
			events = append(events, AgentMoved{Pos: ns.Agent})
		} else {
			ns.Active, ns.Interrupted = nil, nil
			logger.Error("move target unreachable", "from", oldPos, "to", target)
		}

	case DirectiveAttack:
		targetID := ns.Active.TargetID
		tower := adjacentLivingTower(ns, ns.Agent)
		if tower != nil {
			tower.Health -= AgentAttackDamage
			events = append(events, TowerDamaged{
				TowerID:         tower.ID,
				Damage:          AgentAttackDamage,
				HealthRemaining: tower.Health,
			})
			if tower.Health <= 0 {
				tower.Health = 0
				events = append(events, TowerDestroyed{TowerID: tower.ID})
				ns.Active, ns.Interrupted = nil, nil
			}
		} else {
			ns.Active, ns.Interrupted = nil, nil
			logger.Error("no adjacent tower to attack", "target_id", targetID)
		}

	case DirectiveStand:
		// Standing for one tick reinstates the interrupted directive, so
		// the prior plan resumes on the following tick.
		ns.Active = ns.Interrupted
		ns.Interrupted = nil

	default:
		logger.Error("unknown directive kind", "kind", int(ns.Active.Kind))
	}

	// Arrival check. Emits a second AgentMoved as the arrival marker before
	// clearing both directive slots.
	if ns.Active != nil && ns.Active.Kind == DirectiveMove && ns.Agent == ns.Active.Target {
		events = append(events, AgentMoved{Pos: ns.Agent})
		ns.Active, ns.Interrupted = nil, nil
	}

	events = advanceTowers(ns, events)
	events = advanceProjectiles(ns, events, oldPos, oldPos != ns.Agent)

	for _, ev := range events {
		switch ev.(type) {
		case TowerDamaged:
			reward += rewardTowerDamaged
		case TowerDestroyed:
			reward += rewardTowerDestroyed
		case AgentDamaged:
			reward += rewardAgentDamaged
		}
	}

	// Approach shaping: +1 for every living tower closer than the running
	// distance carried from the previous tower considered.
	for i := range ns.Towers {
		if ns.Towers[i].Health > 0 {
			d := Manhattan(ns.Agent, ns.Towers[i].Pos)
			if d < oldDistance {
				reward += rewardApproach
			}
			oldDistance = d
		}
	}

	if ns.IsRoundOver() {
		survived := ns.Health > 0
		events = append(events, RoundOver{AgentSurvived: survived})
		if survived {
			reward += rewardSurvived
		} else {
			reward += rewardDied
		}
	}

	return ns, events, reward
}

// adjacentLivingTower returns a pointer into the tower list for the first
// living tower Manhattan-adjacent to pos. Attack resolution is proximity
// based: the directive's TargetID does not pick the victim.
func adjacentLivingTower(s *RoundState, pos Point) *Tower {
	for i := range s.Towers {
		if s.Towers[i].Health > 0 && Adjacent(pos, s.Towers[i].Pos) {
			return &s.Towers[i]
		}
	}
	return nil
}

// advanceTowers ticks every living tower's fire counter and spawns a
// projectile when the counter reaches the tower's rate.
func advanceTowers(s *RoundState, events []Event) []Event {
	for i := range s.Towers {
		t := &s.Towers[i]
		if t.Health <= 0 {
			continue
		}
		t.Tick++
		if t.Tick >= t.Rate {
			pos := Vec{X: float64(t.Pos.X), Y: float64(t.Pos.Y)}
			s.Projectiles = append(s.Projectiles, Projectile{Pos: pos, Dir: t.Dir})
			events = append(events, ProjectileCreated{Pos: pos, Dir: t.Dir})
			t.Tick = 0
		}
	}
	return events
}

// advanceProjectiles moves every projectile by its direction vector and
// resolves collisions in priority order: direct hit on the agent,
// crossing-paths hit (agent and projectile swapped cells this tick), wall or
// boundary, then living tower. Survivors keep flying; projectiles spawned
// this tick move immediately.
func advanceProjectiles(s *RoundState, events []Event, oldPos Point, agentMoved bool) []Event {
	survivors := make([]Projectile, 0, len(s.Projectiles))

	for _, p := range s.Projectiles {
		prevCell := p.Pos.Cell()
		next := Vec{X: p.Pos.X + p.Dir.X, Y: p.Pos.Y + p.Dir.Y}
		cell := next.Cell()

		switch {
		case cell == s.Agent:
			events = hitAgent(s, events, next)

		case agentMoved && cell == oldPos && s.Agent == prevCell:
			events = hitAgent(s, events, next)

		case s.Grid.At(cell.X, cell.Y) == CellWall:
			// Covers out-of-bounds too; At reports the boundary as wall.
			events = append(events, ProjectileRemoved{Pos: next})

		case livingTowerAt(s, cell) != nil:
			events = append(events, ProjectileRemoved{Pos: next})

		default:
			survivors = append(survivors, Projectile{Pos: next, Dir: p.Dir})
		}
	}

	s.Projectiles = survivors
	return events
}

func hitAgent(s *RoundState, events []Event, pos Vec) []Event {
	s.Health -= ProjectileDamage
	if s.Health < 0 {
		s.Health = 0
	}
	events = append(events, AgentDamaged{
		Damage:          ProjectileDamage,
		HealthRemaining: s.Health,
	})
	return append(events, ProjectileRemoved{Pos: pos})
}

func livingTowerAt(s *RoundState, cell Point) *Tower {
	for i := range s.Towers {
		if s.Towers[i].Health > 0 && s.Towers[i].Pos == cell {
			return &s.Towers[i]
		}
	}
	return nil
}
