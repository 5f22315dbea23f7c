package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"arrowfield/internal/sim"
)

// Cell glyphs for the grid view.
const (
	glyphEmpty      = '.'
	glyphWall       = '#'
	glyphStart      = 'S'
	glyphTower      = 'T'
	glyphRubble     = 'x'
	glyphAgent      = '@'
	glyphProjectile = '*'
)

var (
	styleEmpty      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleWall       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleStart      = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	styleTower      = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleRubble     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleAgent      = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleProjectile = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleCursor     = lipgloss.NewStyle().Background(lipgloss.Color("57"))
)

// RenderRound draws the round grid as styled text. The cursor cell, if in
// bounds, is highlighted with a background color.
func RenderRound(s *sim.RoundState, cursor sim.Point) string {
	w, h := s.Grid.Width, s.Grid.Height

	glyphs := make([][]rune, h)
	styles := make([][]lipgloss.Style, h)
	for y := 0; y < h; y++ {
		glyphs[y] = make([]rune, w)
		styles[y] = make([]lipgloss.Style, w)
		for x := 0; x < w; x++ {
			switch s.Grid.Cells[y][x] {
			case sim.CellWall:
				glyphs[y][x], styles[y][x] = glyphWall, styleWall
			case sim.CellStart:
				glyphs[y][x], styles[y][x] = glyphStart, styleStart
			default:
				glyphs[y][x], styles[y][x] = glyphEmpty, styleEmpty
			}
		}
	}

	put := func(p sim.Point, r rune, st lipgloss.Style) {
		if p.X >= 0 && p.X < w && p.Y >= 0 && p.Y < h {
			glyphs[p.Y][p.X], styles[p.Y][p.X] = r, st
		}
	}

	for i := range s.Towers {
		t := &s.Towers[i]
		if t.Destroyed() {
			put(t.Pos, glyphRubble, styleRubble)
		} else {
			put(t.Pos, glyphTower, styleTower)
		}
	}
	for _, p := range s.Projectiles {
		put(p.Pos.Cell(), glyphProjectile, styleProjectile)
	}
	put(s.Agent, glyphAgent, styleAgent)

	var sb strings.Builder
	sb.Grow(w*h*2 + h)
	for y := 0; y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < w; x++ {
			st := styles[y][x]
			if cursor.X == x && cursor.Y == y {
				st = st.Inherit(styleCursor)
			}
			sb.WriteString(st.Render(string(glyphs[y][x])))
		}
	}
	return sb.String()
}
