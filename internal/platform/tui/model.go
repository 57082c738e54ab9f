package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-mathquest/internal/core"
	"github.com/vovakirdan/tui-mathquest/internal/player"
	"github.com/vovakirdan/tui-mathquest/internal/quiz"
	"github.com/vovakirdan/tui-mathquest/internal/session"
)

// Options configures a Model.
type Options struct {
	Width  int
	Height int
	// Bell receives the terminal bell on achievement cues. nil disables it.
	Bell io.Writer
}

// Model is the Bubble Tea model of one player session.
type Model struct {
	orch     *session.Orchestrator
	ctx      context.Context
	keys     *KeyMapper
	helpKeys HelpKeys
	help     help.Model
	input    textinput.Model
	spinner  spinner.Model
	board    table.Model
	bell     io.Writer

	width  int
	height int

	// Screen-local state, reset whenever the shown screen changes.
	shown    session.Screen
	cursor   int
	mapNode  int
	tab      int
	grade    int
	feedback *quiz.Feedback
	ideaMode bool
	armed    bool

	message   string
	cue       core.Cue
	animating bool
	quitting  bool
}

// NewModel creates the model for orch and starts its session.
func NewModel(ctx context.Context, orch *session.Orchestrator, opts Options) Model {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 24
	}
	bell := opts.Bell
	if bell == nil {
		bell = io.Discard
	}

	ti := textinput.New()
	ti.CharLimit = 120
	ti.Width = 40

	h := help.New()
	h.Width = opts.Width

	m := Model{
		orch:     orch,
		ctx:      ctx,
		keys:     NewKeyMapper(),
		helpKeys: DefaultHelpKeys(),
		help:     h,
		input:    ti,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		board:    newBoardTable(opts.Height),
		bell:     bell,
		width:    opts.Width,
		height:   opts.Height,
	}
	orch.Start()
	m.enter(orch.Screen())
	return m
}

// Init starts the round clock, the cursor blink and the busy spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), textinput.Blink, m.spinner.Tick)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.board.SetHeight(boardHeight(msg.Height))

	case TickMsg:
		job, err := m.orch.Tick(clockStep)
		m.fail(err)
		cmds = append(cmds, tickCmd(), jobCmd(m.ctx, job))

	case transitionMsg:
		if phase, d := m.orch.Advance(); phase != session.PhaseIdle {
			cmds = append(cmds, phaseCmd(d))
		} else {
			m.animating = false
		}

	case jobDoneMsg:
		if err := m.orch.Complete(msg.c); err != nil {
			m.fail(err)
		} else if msg.name == "creative" {
			if _, ok := m.orch.Creative(); ok {
				m.ideaMode = false
				m.resetAnswer()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.quitting {
		return m, tea.Quit
	}
	cmds = append(cmds, m.sync())
	return m, tea.Batch(cmds...)
}

// sync follows screen changes, rings the bell and schedules transition phases.
func (m *Model) sync() tea.Cmd {
	if s := m.orch.Screen(); s != m.shown {
		m.enter(s)
	}
	if c := m.orch.TakeCue(); c != core.CueNone {
		m.cue = c
		if c == core.CueAchievement {
			fmt.Fprint(m.bell, "\a") //nolint:errcheck // Best-effort bell
		}
	}
	if m.animating || m.orch.Transition().Phase == session.PhaseIdle {
		return nil
	}
	m.animating = true
	return phaseCmd(m.orch.PhaseDuration())
}

// enter resets screen-local state for s.
func (m *Model) enter(s session.Screen) {
	m.shown = s
	m.cursor, m.tab = 0, 0
	m.armed = false
	m.feedback = nil
	m.cue = core.CueNone
	m.resetInput("")

	st := m.orch.State()
	m.grade = max(player.MinGrade, st.Identity.Grade)
	m.mapNode = max(1, st.Progression.Level)

	switch s.(type) {
	case session.Setup:
		m.resetInput("Your name")
	case session.CreativeMode:
		m.ideaMode = true
		m.resetInput("A dragon who bakes cupcakes...")
	case session.Playing, session.LightningRound, session.RiddleChallenge:
		m.resetInput("Type your answer")
	case session.Leaderboard:
		m.loadBoard()
	}
	m.helpKeys.playing = isPlaying(s)
}

func (m *Model) resetInput(placeholder string) {
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.Focus()
}

// resetAnswer clears the answer widgets before the next question.
func (m *Model) resetAnswer() {
	m.cursor = 0
	m.feedback = nil
	m.input.Reset()
}

func (m *Model) fail(err error) {
	if err != nil {
		m.message = session.Message(err)
	}
}

// run hands a job to the update loop after reporting err, if any.
func (m *Model) run(job *session.Job, err error) tea.Cmd {
	m.fail(err)
	return jobCmd(m.ctx, job)
}

func isPlaying(s session.Screen) bool {
	switch s.(type) {
	case session.Playing, session.LightningRound, session.RiddleChallenge:
		return true
	}
	return false
}

// Run starts a local Bubble Tea program for orch.
func Run(ctx context.Context, orch *session.Orchestrator, opts Options) error {
	model := NewModel(ctx, orch, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
