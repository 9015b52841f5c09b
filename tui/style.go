package tui

import "github.com/charmbracelet/lipgloss"

// Styles used throughout the battle viewer.
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252"))

	styleDead = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	styleAction = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleIdle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleBarFull = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34"))

	styleBarLow = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleBarEmpty = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	styleEventCancel = lipgloss.NewStyle().
				Foreground(lipgloss.Color("203"))

	styleEventDefeat = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Bold(true)
)

// factionPalette cycles colors across factions in order of appearance.
var factionPalette = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("135")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("118")),
}
