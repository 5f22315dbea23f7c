package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"arrowfield/internal/maps"
	"arrowfield/internal/storage"
)

// Results layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show map list sidebar
	sidebarWidth       = 20  // Width of map list sidebar
	maxRounds          = 100 // Max rounds to load per map
)

// ResultsKeyMap defines the key bindings for the results browser.
type ResultsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	NextMap key.Binding
	PrevMap key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ResultsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMap, k.PrevMap, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ResultsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMap, k.PrevMap},
		{k.Back, k.Quit},
	}
}

// DefaultResultsKeyMap returns default key bindings.
func DefaultResultsKeyMap() ResultsKeyMap {
	return ResultsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev map"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next map"),
		),
		NextMap: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next map"),
		),
		PrevMap: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev map"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ResultsModel is the Bubble Tea model for the round history screen.
type ResultsModel struct {
	mapNames    []string
	mapCursor   int
	store       *storage.Store
	rounds      []storage.RoundRecord
	table       table.Model
	help        help.Model
	keys        ResultsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewResultsModel creates a new results model over the built-in maps.
func NewResultsModel(store *storage.Store, width, height int) ResultsModel {
	keys := DefaultResultsKeyMap()
	h := help.New()
	h.ShowAll = false

	m := ResultsModel{
		mapNames:    maps.Names(),
		store:       store,
		keys:        keys,
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()

	if len(m.mapNames) > 0 {
		m.loadRounds(m.mapNames[0])
	}

	return m
}

// createTable creates a new table with appropriate columns.
func (m *ResultsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Result", Width: 8},
		{Title: "Policy", Width: 8},
		{Title: "Ticks", Width: 7},
		{Title: "Reward", Width: 9},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(m.height-8), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRounds loads round history for the given map.
func (m *ResultsModel) loadRounds(mapID string) {
	if m.store == nil {
		m.rounds = nil
		m.updateTableRows()
		return
	}

	rounds, err := m.store.MapRounds(mapID)
	if err != nil {
		m.rounds = nil
	} else {
		if len(rounds) > maxRounds {
			rounds = rounds[:maxRounds]
		}
		m.rounds = rounds
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the current rounds.
func (m *ResultsModel) updateTableRows() {
	rows := make([]table.Row, len(m.rounds))
	for i, r := range m.rounds {
		result := "lost"
		if r.Survived {
			result = "cleared"
		}
		rows[i] = table.Row{
			result,
			r.Policy,
			fmt.Sprintf("%d", r.Ticks),
			fmt.Sprintf("%.1f", r.Reward),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the results model.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results browser.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextMap), key.Matches(msg, m.keys.Right):
			if len(m.mapNames) > 0 {
				m.mapCursor = (m.mapCursor + 1) % len(m.mapNames)
				m.loadRounds(m.mapNames[m.mapCursor])
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevMap), key.Matches(msg, m.keys.Left):
			if len(m.mapNames) > 0 {
				m.mapCursor--
				if m.mapCursor < 0 {
					m.mapCursor = len(m.mapNames) - 1
				}
				m.loadRounds(m.mapNames[m.mapCursor])
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results browser.
func (m ResultsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	headStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "ROUND HISTORY"
	if len(m.mapNames) > 0 {
		title = fmt.Sprintf("ROUND HISTORY - %s", m.mapNames[m.mapCursor])
	}

	b.WriteString(headStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(centerText(m.renderTableContent(), m.width))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the browser with a map list sidebar.
func (m ResultsModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Maps\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, name := range m.mapNames {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.mapCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	sidebarRendered := sidebarStyle.Render(sidebar.String())

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	tableRendered := tableStyle.Render(m.renderTableContent())

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarRendered, "  ", tableRendered)
}

// renderTableContent renders the table or an empty message.
func (m ResultsModel) renderTableContent() string {
	if len(m.rounds) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No rounds recorded yet.\nPlay a round to start the history!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back.
func (m ResultsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ResultsModel) IsQuitting() bool {
	return m.quitting
}

// RunResults runs the round history screen.
// Returns true if user wants to go back rather than quit.
func RunResults(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewResultsModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ResultsModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}

// centerText centers a possibly multi-line string within the given width.
func centerText(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
