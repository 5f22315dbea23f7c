package sim

// Event is something observable that happened during one Step call. Step
// returns events in the order they occurred; drivers use them for rendering,
// logging and reward bookkeeping.
type Event interface {
	event()
}

// AgentMoved reports the agent entering a new cell. Arriving at a Move
// target emits a second AgentMoved for the same cell as an arrival marker.
type AgentMoved struct {
	Pos Point
}

func (AgentMoved) event() {}

// AgentDamaged reports a projectile hit on the agent.
type AgentDamaged struct {
	Damage          int
	HealthRemaining int
}

func (AgentDamaged) event() {}

// TowerDamaged reports an agent attack landing on a tower.
type TowerDamaged struct {
	TowerID         string
	Damage          int
	HealthRemaining int
}

func (TowerDamaged) event() {}

// TowerDestroyed reports a tower's health reaching zero.
type TowerDestroyed struct {
	TowerID string
}

func (TowerDestroyed) event() {}

// ProjectileCreated reports a tower firing.
type ProjectileCreated struct {
	Pos Vec
	Dir Vec
}

func (ProjectileCreated) event() {}

// ProjectileRemoved reports a projectile despawning, whether by hitting the
// agent, a wall, a tower or the grid boundary.
type ProjectileRemoved struct {
	Pos Vec
}

func (ProjectileRemoved) event() {}

// RoundOver reports round termination. Emitted exactly once, on the tick the
// terminal condition is first observed.
type RoundOver struct {
	AgentSurvived bool
}

func (RoundOver) event() {}
