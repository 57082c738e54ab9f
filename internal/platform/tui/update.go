package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-mathquest/internal/catalog"
	"github.com/vovakirdan/tui-mathquest/internal/core"
	"github.com/vovakirdan/tui-mathquest/internal/player"
	"github.com/vovakirdan/tui-mathquest/internal/progression"
	"github.com/vovakirdan/tui-mathquest/internal/quiz"
	"github.com/vovakirdan/tui-mathquest/internal/session"
)

// storeTabs are the store sections in tab order.
var storeTabs = []catalog.Kind{catalog.KindTheme, catalog.KindPawn, catalog.KindAvatar, catalog.KindPowerUp}

// handleKey processes keyboard input for the screen on display.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	action := m.keys.MapKey(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return nil
	case core.ActionDismiss:
		m.orch.DismissBanner()
		return nil
	}
	if m.orch.Transition().Phase != session.PhaseIdle {
		return nil
	}
	if m.orch.Busy() {
		m.fail(session.ErrBusy)
		return nil
	}
	m.message = ""

	switch m.orch.Screen().(type) {
	case session.Landing:
		if action == core.ActionConfirm {
			m.orch.Begin()
		}
	case session.Setup:
		return m.setupKey(msg, action)
	case session.MainHub:
		return m.hubKey(msg, action)
	case session.TopicSelect:
		return m.topicKey(action)
	case session.Playing:
		return m.playingKey(msg, action)
	case session.Store:
		m.storeKey(action)
	case session.CreativeMode:
		return m.creativeKey(msg, action)
	case session.Profile:
		m.profileKey(action)
	case session.ParentDashboard:
		return m.parentKey(msg, action)
	case session.Leaderboard:
		if action == core.ActionBack {
			m.orch.Navigate(session.MainHub{})
			return nil
		}
		var cmd tea.Cmd
		m.board, cmd = m.board.Update(msg)
		return cmd
	case session.LightningRound:
		return m.lightningKey(msg, action)
	case session.RiddleChallenge:
		return m.riddleKey(msg, action)
	case session.Review:
		return m.reviewKey(msg, action)
	}
	return nil
}

func (m *Model) setupKey(msg tea.KeyMsg, action core.Action) tea.Cmd {
	switch action {
	case core.ActionLeft:
		m.grade = max(player.MinGrade, m.grade-1)
	case core.ActionRight:
		m.grade = min(player.MaxGrade, m.grade+1)
	case core.ActionConfirm:
		m.fail(m.orch.CreatePlayer(m.input.Value(), m.grade))
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) hubKey(msg tea.KeyMsg, action core.Action) tea.Cmd {
	n := len(session.HubDestinations)
	switch action {
	case core.ActionUp:
		m.cursor = (m.cursor + n - 1) % n
	case core.ActionDown:
		m.cursor = (m.cursor + 1) % n
	case core.ActionLeft:
		m.mapNode = max(1, m.mapNode-1)
	case core.ActionRight:
		m.mapNode = min(m.orch.Rules().Map.TotalLevels, m.mapNode+1)
	case core.ActionConfirm:
		m.orch.Navigate(session.HubDestinations[m.cursor])
	}

	switch msg.String() {
	case "o":
		m.openChest()
	case "q":
		m.quitting = true
	}
	return nil
}

func (m *Model) openChest() {
	claim, err := m.orch.ClaimChest(m.mapNode)
	if err != nil {
		m.fail(err)
		return
	}
	switch claim.Status {
	case progression.ChestOpened:
		m.message = fmt.Sprintf("The chest held %d points!", claim.Amount)
	case progression.ChestAlreadyClaimed:
		m.message = "You already opened this chest."
	default:
		m.message = fmt.Sprintf("No chest to open at level %d yet.", m.mapNode)
	}
}

func (m *Model) topicKey(action core.Action) tea.Cmd {
	topics := catalog.TopicsForGrade(m.orch.State().Identity.Grade)
	n := len(topics)
	switch action {
	case core.ActionUp:
		m.cursor = (m.cursor + n - 1) % n
	case core.ActionDown:
		m.cursor = (m.cursor + 1) % n
	case core.ActionConfirm:
		return m.run(m.orch.StartQuiz(topics[m.cursor].ID))
	case core.ActionBack:
		m.orch.Navigate(session.MainHub{})
	}
	return nil
}

func (m *Model) playingKey(msg tea.KeyMsg, action core.Action) tea.Cmd {
	switch action {
	case core.ActionBack:
		m.orch.Navigate(session.MainHub{})
		return nil
	case core.ActionHint:
		return m.run(m.orch.UsePowerUp(player.PowerUpHint))
	case core.ActionTimeBoost:
		return m.run(m.orch.UsePowerUp(player.PowerUpTimeBoost))
	case core.ActionSkip:
		job, err := m.orch.UsePowerUp(player.PowerUpSkip)
		if err == nil {
			m.resetAnswer()
		}
		return m.run(job, err)
	}

	r := m.orch.Round()
	if r == nil {
		return nil
	}
	if r.Answered() {
		if action != core.ActionConfirm {
			return nil
		}
		job, err := m.orch.NextQuestion()
		if err == nil {
			m.resetAnswer()
		}
		return m.run(job, err)
	}
	q, ok := r.Current()
	if !ok {
		return nil
	}
	return m.answerKey(msg, action, q, m.orch.Answer)
}

// answerKey edits or picks an answer to q and hands it to submit on confirm.
// Choice questions also accept the option number.
func (m *Model) answerKey(msg tea.KeyMsg, action core.Action, q player.Question, submit func(string) (quiz.Feedback, error)) tea.Cmd {
	if len(q.Options) == 0 {
		if action == core.ActionConfirm {
			m.submit(submit, m.input.Value())
			return nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}

	n := len(q.Options)
	if i, ok := choiceIndex(msg); ok && i < n {
		m.cursor = i
		m.submit(submit, q.Options[i])
		return nil
	}
	switch action {
	case core.ActionUp, core.ActionLeft:
		m.cursor = (m.cursor + n - 1) % n
	case core.ActionDown, core.ActionRight:
		m.cursor = (m.cursor + 1) % n
	case core.ActionConfirm:
		m.submit(submit, q.Options[min(m.cursor, n-1)])
	}
	return nil
}

func (m *Model) submit(fn func(string) (quiz.Feedback, error), text string) {
	fb, err := fn(text)
	if err != nil {
		m.fail(err)
		return
	}
	m.feedback = &fb
}

func (m *Model) storeKey(action core.Action) {
	items := catalog.Items(storeTabs[m.tab])
	n := len(items)
	switch action {
	case core.ActionLeft:
		m.tab = (m.tab + len(storeTabs) - 1) % len(storeTabs)
		m.cursor = 0
	case core.ActionRight:
		m.tab = (m.tab + 1) % len(storeTabs)
		m.cursor = 0
	case core.ActionUp:
		m.cursor = (m.cursor + n - 1) % n
	case core.ActionDown:
		m.cursor = (m.cursor + 1) % n
	case core.ActionConfirm:
		m.buyOrEquip(items[m.cursor])
	case core.ActionBack:
		m.orch.Navigate(session.MainHub{})
	}
}

// buyOrEquip equips owned cosmetics and buys everything else.
func (m *Model) buyOrEquip(item catalog.Item) {
	if cat, ok := item.Kind.Category(); ok && m.orch.State().Unlocks.Owned(cat).Has(item.ID) {
		if err := m.orch.Equip(cat, item.ID); err != nil {
			m.fail(err)
			return
		}
		m.message = fmt.Sprintf("%s %s equipped.", item.Icon, item.Name)
		return
	}
	if err := m.orch.Buy(item.Kind, item.ID); err != nil {
		m.fail(err)
		return
	}
	m.message = fmt.Sprintf("%s %s is yours!", item.Icon, item.Name)
}

func (m *Model) creativeKey(msg tea.KeyMsg, action core.Action) tea.Cmd {
	if action == core.ActionBack {
		m.orch.Navigate(session.MainHub{})
		return nil
	}

	if m.ideaMode {
		if action == core.ActionConfirm {
			return m.run(m.orch.SubmitIdea(m.input.Value()))
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}

	cq, ok := m.orch.Creative()
	if !ok {
		m.ideaMode = true
		return nil
	}
	if cq.Feedback != nil {
		if action == core.ActionConfirm {
			m.ideaMode = true
			m.resetAnswer()
		}
		return nil
	}
	return m.answerKey(msg, action, cq.Question, m.orch.AnswerCreative)
}

func (m *Model) profileKey(action core.Action) {
	switch action {
	case core.ActionLeft:
		m.grade = max(player.MinGrade, m.grade-1)
	case core.ActionRight:
		m.grade = min(player.MaxGrade, m.grade+1)
	case core.ActionConfirm:
		if m.grade == m.orch.State().Identity.Grade {
			return
		}
		if err := m.orch.ChangeGrade(m.grade); err != nil {
			m.fail(err)
			return
		}
		m.mapNode = 1
		m.message = fmt.Sprintf("Welcome to grade %d! Your map starts again at level 1.", m.grade)
	case core.ActionBack:
		m.orch.Navigate(session.MainHub{})
	}
}

func (m *Model) parentKey(msg tea.KeyMsg, action core.Action) tea.Cmd {
	missed := newestFirst(m.orch.State().History.Missed)
	if msg.String() != "R" {
		m.armed = false
	}

	switch action {
	case core.ActionUp:
		m.cursor = max(0, m.cursor-1)
	case core.ActionDown:
		m.cursor = min(max(0, len(missed)-1), m.cursor+1)
	case core.ActionBack:
		m.orch.Navigate(session.MainHub{})
		return nil
	}

	switch msg.String() {
	case "a":
		return m.run(m.orch.RequestAnalysis())
	case "t":
		if m.cursor < len(missed) {
			return m.run(m.orch.Explain(missed[m.cursor]))
		}
		m.message = "No missed questions to explain."
	case "R":
		if !m.armed {
			m.armed = true
			m.message = "Press R again to erase ALL progress. Any other key cancels."
			return nil
		}
		m.armed = false
		m.fail(m.orch.Reset(true))
	}
	return nil
}

func (m *Model) lightningKey(msg tea.KeyMsg, action core.Action) tea.Cmd {
	if action == core.ActionBack {
		m.orch.LeaveEvent()
		return nil
	}
	r := m.orch.LightningRound()
	if r == nil {
		return nil
	}
	q, ok := r.Current()
	if !ok {
		return nil
	}
	pos, _ := r.Position()
	cmd := m.answerKey(msg, action, q, m.orch.AnswerLightning)
	if next, _ := r.Position(); next != pos || r.Done() {
		// Lightning moves on at once; keep the feedback, clear the widgets.
		m.cursor = 0
		m.input.Reset()
	}
	return cmd
}

func (m *Model) riddleKey(msg tea.KeyMsg, action core.Action) tea.Cmd {
	if action == core.ActionBack {
		m.orch.LeaveEvent()
		return nil
	}
	q, ok := m.orch.Riddle()
	if !ok {
		return nil
	}
	return m.answerKey(msg, action, q, m.orch.AnswerRiddle)
}

func (m *Model) reviewKey(msg tea.KeyMsg, action core.Action) tea.Cmd {
	missed := m.orch.Review().Missed
	switch action {
	case core.ActionUp:
		m.cursor = max(0, m.cursor-1)
	case core.ActionDown:
		m.cursor = min(max(0, len(missed)-1), m.cursor+1)
	case core.ActionConfirm, core.ActionBack:
		m.orch.Navigate(session.MainHub{})
		return nil
	}
	if msg.String() == "t" && m.cursor < len(missed) {
		return m.run(m.orch.Explain(missed[m.cursor]))
	}
	return nil
}

// newestFirst returns the missed history with the latest miss first.
func newestFirst(missed []player.AnsweredQuestion) []player.AnsweredQuestion {
	out := make([]player.AnsweredQuestion, len(missed))
	for i, a := range missed {
		out[len(missed)-1-i] = a
	}
	return out
}
