package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-mathquest/internal/player"
)

// Theme contains the visual styles of one store theme.
type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Selected lipgloss.Style
	Correct  lipgloss.Style
	Wrong    lipgloss.Style
	Banner   lipgloss.Style
	Panel    lipgloss.Style
	Help     lipgloss.Style

	// Map node styles
	NodeDone    lipgloss.Style
	NodeCurrent lipgloss.Style
	NodeLocked  lipgloss.Style
}

type palette struct {
	primary, accent, panel, muted lipgloss.Color
}

var palettes = map[string]palette{
	player.DefaultTheme: {primary: "229", accent: "57", panel: "240", muted: "241"},
	"ocean":             {primary: "51", accent: "25", panel: "31", muted: "67"},
	"jungle":            {primary: "156", accent: "28", panel: "64", muted: "101"},
	"space":             {primary: "213", accent: "55", panel: "99", muted: "103"},
}

// ThemeFor returns the styles of a theme id, falling back to the default theme.
func ThemeFor(id string) Theme {
	p, ok := palettes[id]
	if !ok {
		p = palettes[player.DefaultTheme]
	}
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.primary),
		Subtitle: lipgloss.NewStyle().Foreground(p.primary),
		Text:     lipgloss.NewStyle(),
		Muted:    lipgloss.NewStyle().Foreground(p.muted),
		Accent:   lipgloss.NewStyle().Bold(true).Foreground(p.primary),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(p.accent).Padding(0, 1),
		Correct:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")),
		Wrong:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		Banner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214")).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.panel).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Foreground(p.muted),

		NodeDone:    lipgloss.NewStyle().Foreground(p.primary),
		NodeCurrent: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(p.accent),
		NodeLocked:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
