package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-mathquest/internal/leaderboard"
)

// Leaderboard layout constants
const (
	boardChrome    = 12 // Header, banner, help and margins around the table
	boardMinHeight = 5
)

func boardHeight(screenH int) int {
	return max(boardMinHeight, screenH-boardChrome)
}

// newBoardTable creates the weekly standings table.
func newBoardTable(screenH int) table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Name", Width: 20},
		{Title: "Score", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(boardHeight(screenH)),
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

// boardRows converts standings to table rows and returns the player's row index.
func boardRows(entries []leaderboard.Entry) ([]table.Row, int) {
	rows := make([]table.Row, len(entries))
	mine := 0
	for i, e := range entries {
		name := e.Name
		if e.IsPlayer {
			name = "★ " + name
			mine = i
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", e.Rank),
			name,
			fmt.Sprintf("%d", e.Score),
		}
	}
	return rows, mine
}

// loadBoard fills the table with this week's standings, focused on the player.
func (m *Model) loadBoard() {
	rows, mine := boardRows(m.orch.Standings())
	m.board.SetRows(rows)
	m.board.SetCursor(mine)
}
