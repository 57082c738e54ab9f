// Package tui provides the Bubble Tea front end of mathquest.
// It maps keys to session operations, runs session jobs as commands and
// renders each screen with the active theme.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-mathquest/internal/session"
)

// clockStep is how often the quiz and lightning clocks advance.
const clockStep = time.Second

// TickMsg advances the round clock.
type TickMsg time.Time

// transitionMsg ends the running transition phase.
type transitionMsg struct{}

// jobDoneMsg carries a finished session job back to the update loop.
type jobDoneMsg struct {
	name string
	c    session.Completion
}

// tickCmd schedules the next clock tick.
func tickCmd() tea.Cmd {
	return tea.Tick(clockStep, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// phaseCmd fires when the current transition phase is over.
func phaseCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return transitionMsg{}
	})
}

// jobCmd runs a session job off the update loop. A nil job yields no command.
func jobCmd(ctx context.Context, job *session.Job) tea.Cmd {
	if job == nil {
		return nil
	}
	return func() tea.Msg {
		return jobDoneMsg{name: job.Name, c: job.Run(ctx)}
	}
}
