// Package env wraps the simulation in a gym-style episode interface for
// policy drivers: Reset picks a map from the pool and builds an augmented
// round, Step feeds one action per tick and reports termination. The package
// adds no game rules of its own; all semantics live in internal/sim.
package env

import (
	"fmt"
	"math/rand"

	"arrowfield/internal/maps"
	"arrowfield/internal/sim"
)

// DefaultMaxEpisodeSteps truncates runaway episodes.
const DefaultMaxEpisodeSteps = 1000

// Config tunes episode construction.
type Config struct {
	// MaxEpisodeSteps truncates the episode; 0 means DefaultMaxEpisodeSteps.
	MaxEpisodeSteps int

	// Augment applies a random rotation/flip to each fresh round.
	Augment bool
}

// StepOutcome is everything one environment tick produces.
type StepOutcome struct {
	Obs        Observation
	Reward     float64
	Terminated bool // the round ended
	Truncated  bool // the step budget ran out
	Events     []sim.Event
}

// Env runs episodes over a pool of maps.
type Env struct {
	defs  []maps.MapDef
	cfg   Config
	rng   *rand.Rand
	state *sim.RoundState
	def   maps.MapDef
	ticks int
}

// New creates an environment over the given map pool.
func New(defs []maps.MapDef, cfg Config, rng *rand.Rand) (*Env, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("env: empty map pool")
	}
	if cfg.MaxEpisodeSteps <= 0 {
		cfg.MaxEpisodeSteps = DefaultMaxEpisodeSteps
	}
	if rng == nil {
		return nil, fmt.Errorf("env: nil rng")
	}
	return &Env{defs: defs, cfg: cfg, rng: rng}, nil
}

// Reset starts a fresh episode on a randomly chosen map and returns the
// initial observation.
func (e *Env) Reset() (Observation, error) {
	e.def = e.defs[e.rng.Intn(len(e.defs))]
	state, err := e.def.NewRound(e.rng, e.cfg.Augment)
	if err != nil {
		return Observation{}, fmt.Errorf("env: reset on map %s: %w", e.def.Name, err)
	}
	e.state = state
	e.ticks = 0
	return Encode(e.state), nil
}

// Step advances the episode by one tick. Calling Step before Reset, or after
// a terminated episode, is a driver bug and returns an error.
func (e *Env) Step(action sim.Directive) (StepOutcome, error) {
	if e.state == nil {
		return StepOutcome{}, fmt.Errorf("env: Step before Reset")
	}

	state, events, reward := sim.Step(e.state, action)
	e.state = state
	e.ticks++

	out := StepOutcome{
		Obs:    Encode(e.state),
		Reward: reward,
		Events: events,
	}
	for _, ev := range events {
		if _, ok := ev.(sim.RoundOver); ok {
			out.Terminated = true
		}
	}
	if !out.Terminated && e.ticks >= e.cfg.MaxEpisodeSteps {
		out.Truncated = true
	}
	return out, nil
}

// State exposes the live round for renderers and scripted policies.
func (e *Env) State() *sim.RoundState {
	return e.state
}

// MapName reports which map the current episode runs on.
func (e *Env) MapName() string {
	return e.def.Name
}

// Ticks reports how many steps the current episode has taken.
func (e *Env) Ticks() int {
	return e.ticks
}
