package tui

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"arrowfield/internal/maps"
	"arrowfield/internal/sim"
	"arrowfield/internal/storage"
)

// RunConfig holds everything the round view needs to run.
type RunConfig struct {
	Map      maps.MapDef
	Store    *storage.Store // nil disables result persistence
	TickRate int            // ticks per second
	Seed     int64          // 0 means time-based
	Augment  bool           // random rotation/flip per round
}

// Model is the Bubble Tea model for playing a round interactively. Keys queue
// at most one directive; each tick issues the queued directive, or resumes
// the in-flight one, or stands.
type Model struct {
	cfg   RunConfig
	rng   *rand.Rand
	state *sim.RoundState

	cursor  sim.Point
	pending *sim.Directive

	totalReward float64
	lastReward  float64
	roundOver   bool
	survived    bool
	saved       bool
	quitting    bool

	keys PlayKeyMap
	help help.Model
}

// NewModel creates a round view for the given map.
func NewModel(cfg RunConfig) (Model, error) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 10
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	state, err := cfg.Map.NewRound(rng, cfg.Augment)
	if err != nil {
		return Model{}, fmt.Errorf("tui: cannot start round: %w", err)
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		cfg:    cfg,
		rng:    rng,
		state:  state,
		cursor: state.Agent,
		keys:   DefaultPlayKeyMap(),
		help:   h,
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.cfg.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.NewGame):
		if m.roundOver {
			return m.newRound()
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.cursor = m.clamp(sim.Point{X: m.cursor.X, Y: m.cursor.Y - 1})
	case key.Matches(msg, m.keys.Down):
		m.cursor = m.clamp(sim.Point{X: m.cursor.X, Y: m.cursor.Y + 1})
	case key.Matches(msg, m.keys.Left):
		m.cursor = m.clamp(sim.Point{X: m.cursor.X - 1, Y: m.cursor.Y})
	case key.Matches(msg, m.keys.Right):
		m.cursor = m.clamp(sim.Point{X: m.cursor.X + 1, Y: m.cursor.Y})

	case key.Matches(msg, m.keys.Move):
		d := sim.Move(m.cursor)
		m.pending = &d
	case key.Matches(msg, m.keys.Attack):
		// Attack resolution is proximity based; only queue when a target
		// actually stands next to the agent.
		for i := range m.state.Towers {
			t := &m.state.Towers[i]
			if !t.Destroyed() && sim.Adjacent(m.state.Agent, t.Pos) {
				d := sim.Attack(t.ID)
				m.pending = &d
				break
			}
		}
	case key.Matches(msg, m.keys.Stand):
		d := sim.Stand()
		m.pending = &d
	}

	return m, nil
}

// handleTick advances the simulation by one tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.roundOver {
		m.saveResult()
		return m, tickCmd(m.cfg.TickRate)
	}

	action := sim.Stand()
	switch {
	case m.pending != nil:
		action = *m.pending
		m.pending = nil
	case m.state.Active != nil:
		action = sim.Resume()
	}

	state, events, reward := sim.Step(m.state, action)
	m.state = state
	m.totalReward += reward
	m.lastReward = reward

	for _, ev := range events {
		if over, ok := ev.(sim.RoundOver); ok {
			m.roundOver = true
			m.survived = over.AgentSurvived
		}
	}

	return m, tickCmd(m.cfg.TickRate)
}

// saveResult persists the finished round once.
func (m *Model) saveResult() {
	if m.saved || m.cfg.Store == nil {
		m.saved = true
		return
	}
	//nolint:errcheck // Best-effort save, the view continues regardless
	m.cfg.Store.SaveRound(storage.RoundRecord{
		MapID:    m.cfg.Map.Name,
		Policy:   "player",
		Survived: m.survived,
		Ticks:    m.state.TickIndex,
		Reward:   m.totalReward,
	})
	m.saved = true
}

// newRound starts a fresh round on the same map.
func (m Model) newRound() (tea.Model, tea.Cmd) {
	state, err := m.cfg.Map.NewRound(m.rng, m.cfg.Augment)
	if err != nil {
		m.quitting = true
		return m, tea.Quit
	}
	m.state = state
	m.cursor = state.Agent
	m.pending = nil
	m.totalReward = 0
	m.lastReward = 0
	m.roundOver = false
	m.survived = false
	m.saved = false
	return m, nil
}

func (m Model) clamp(p sim.Point) sim.Point {
	if p.X < 0 {
		p.X = 0
	}
	if p.X >= m.state.Grid.Width {
		p.X = m.state.Grid.Width - 1
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.Y >= m.state.Grid.Height {
		p.Y = m.state.Grid.Height - 1
	}
	return p
}

var (
	hudStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	winStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	lossStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the round, the HUD line and the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.cfg.Map.Name))
	b.WriteString("\n\n")
	b.WriteString(RenderRound(m.state, m.cursor))
	b.WriteString("\n\n")

	towersLeft := 0
	for i := range m.state.Towers {
		if !m.state.Towers[i].Destroyed() {
			towersLeft++
		}
	}
	directive := "-"
	if m.state.Active != nil {
		directive = m.state.Active.Kind.String()
	}
	b.WriteString(hudStyle.Render(fmt.Sprintf(
		"hp %d  towers %d  tick %d  reward %.1f (%+.1f)  directive %s",
		m.state.Health, towersLeft, m.state.TickIndex, m.totalReward, m.lastReward, directive,
	)))
	b.WriteString("\n")

	if m.roundOver {
		if m.survived {
			b.WriteString(winStyle.Render("ROUND CLEARED"))
		} else {
			b.WriteString(lossStyle.Render("AGENT DOWN"))
		}
		b.WriteString(bannerStyle.Render("  press n for a new round, q to quit"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Run starts the Bubble Tea program with the given configuration.
func Run(cfg RunConfig) error {
	model, err := NewModel(cfg)
	if err != nil {
		return err
	}

	// The alt screen owns the terminal; directive failures must not write
	// over it.
	sim.SetLogger(log.New(io.Discard))

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
