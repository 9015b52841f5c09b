// Package tui renders a live battle as a Bubble Tea program: a roster panel
// with stat bars and current actions, plus a scrolling event log.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/gambitcore/engine"
	"github.com/nathoo/gambitcore/sim"
	"github.com/nathoo/gambitcore/types"
)

// tickMsg drives the simulation clock.
type tickMsg time.Time

// Model is the Bubble Tea model for the battle viewer.
type Model struct {
	sim      *sim.Sim
	interval time.Duration

	viewport viewport.Model
	log      []string
	factions map[string]lipgloss.Style

	width    int
	height   int
	ready    bool
	paused   bool
	quitting bool
}

// New creates a viewer for the given simulation, ticking at the given
// wall-clock interval.
func New(s *sim.Sim, interval time.Duration) Model {
	return Model{
		sim:      s,
		interval: interval,
		factions: map[string]lipgloss.Style{},
	}
}

// Init schedules the first simulation tick.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles keys, resizes, and simulation ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "n":
			if m.paused {
				m.step()
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		logHeight := m.height - m.rosterHeight() - 3
		if logHeight < 3 {
			logHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, logHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = logHeight
		}
		m.refreshLog()

	case tickMsg:
		if !m.paused && !m.sim.Over() {
			m.step()
		}
		return m, m.tickCmd()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// step advances the simulation one tick and appends its events to the log.
func (m *Model) step() {
	for _, e := range m.sim.Tick() {
		m.log = append(m.log, m.formatEvent(e))
	}
	m.refreshLog()
}

func (m *Model) refreshLog() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.log, "\n"))
	m.viewport.GotoBottom()
}

// View renders title, roster panel, event log, and status bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "starting..."
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render("gambitcore") + "\n")
	b.WriteString(m.renderRoster())
	b.WriteString(m.viewport.View() + "\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) rosterHeight() int {
	return len(m.sim.Engine().Drivers()) + 1
}

func (m Model) renderRoster() string {
	var b strings.Builder
	for _, d := range m.sim.Engine().Drivers() {
		c := d.Combatant()
		name := m.factionStyle(c.Faction).Render(fmt.Sprintf("%-12s", c.Name))
		if !c.Alive() {
			name = styleDead.Render(fmt.Sprintf("%-12s", c.Name))
		}
		bar := renderBar(c.StatFraction("health"), 20)
		b.WriteString(fmt.Sprintf("%s %s %s\n", name, bar, m.describeDriver(d)))
	}
	return b.String()
}

func (m Model) describeDriver(d *engine.Driver) string {
	x := d.Current()
	if x == nil {
		return styleIdle.Render("idle")
	}
	return styleAction.Render(fmt.Sprintf("%s → %s (%s)",
		x.Template().Name(), x.Target().Name, x.State()))
}

func (m Model) renderStatusBar() string {
	status := fmt.Sprintf(" tick %d  t=%.1fs", m.sim.Engine().Ticks(), m.sim.Engine().Elapsed())
	switch {
	case m.sim.Over():
		status += "  battle over"
	case m.paused:
		status += "  paused"
	}
	controls := "space pause · n step · q quit "
	gap := m.width - lipgloss.Width(status) - lipgloss.Width(controls)
	if gap < 1 {
		gap = 1
	}
	return styleStatusBar.Render(status + strings.Repeat(" ", gap) + controls)
}

// factionStyle assigns palette colors to factions in order of appearance.
func (m Model) factionStyle(faction string) lipgloss.Style {
	if s, ok := m.factions[faction]; ok {
		return s
	}
	s := factionPalette[len(m.factions)%len(factionPalette)]
	m.factions[faction] = s
	return s
}

// renderBar draws a fractional stat bar of the given width.
func renderBar(frac float64, width int) string {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac*float64(width) + 0.5)
	style := styleBarFull
	if frac < 0.25 {
		style = styleBarLow
	}
	return style.Render(strings.Repeat("█", filled)) +
		styleBarEmpty.Render(strings.Repeat("░", width-filled))
}

// formatEvent renders one engine event as a log line.
func (m Model) formatEvent(e types.Event) string {
	actor, _ := e.Data["actor"].(string)
	action, _ := e.Data["action"].(string)
	target, _ := e.Data["target"].(string)

	switch e.Type {
	case engine.EventActionStarted:
		rule, _ := e.Data["rule"].(string)
		return fmt.Sprintf("%s starts %s on %s [rule %s]", actor, action, target, rule)
	case engine.EventActionPerforming:
		return fmt.Sprintf("%s performs %s on %s", actor, action, target)
	case engine.EventActionCompleted:
		return fmt.Sprintf("%s completes %s", actor, action)
	case engine.EventActionCancelled:
		return styleEventCancel.Render(fmt.Sprintf("%s cancels %s (target %s gone)", actor, action, target))
	case sim.EventCombatantDefeated:
		who, _ := e.Data["combatant"].(string)
		return styleEventDefeat.Render(fmt.Sprintf("%s is defeated", who))
	default:
		return fmt.Sprintf("%s: %v", e.Type, e.Data)
	}
}
