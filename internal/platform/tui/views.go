package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-mathquest/internal/catalog"
	"github.com/vovakirdan/tui-mathquest/internal/core"
	"github.com/vovakirdan/tui-mathquest/internal/player"
	"github.com/vovakirdan/tui-mathquest/internal/progression"
	"github.com/vovakirdan/tui-mathquest/internal/quiz"
	"github.com/vovakirdan/tui-mathquest/internal/session"
)

// hubLabels name the hub menu entries by screen.
var hubLabels = map[string]string{
	"topics":      "🎯 Start a challenge",
	"store":       "🛍  Store",
	"creative":    "🎨 Creative mode",
	"profile":     "🌟 Profile",
	"parent":      "👪 Parents",
	"leaderboard": "🏆 Leaderboard",
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.orch.State()
	th := ThemeFor(st.Unlocks.Active.Theme)
	body := session.Dispatch[string](m.orch.Screen(), screenView{m: &m, th: th, st: st})
	if m.orch.Transition().Phase != session.PhaseIdle {
		body = lipgloss.NewStyle().Faint(true).Render(body)
	}

	var b strings.Builder
	if st.Identity.Name != "" {
		b.WriteString(m.header(th, st))
		b.WriteString("\n")
	}
	if banner := m.orch.Banner(); banner != "" {
		b.WriteString(th.Banner.Render(banner))
		b.WriteString("\n")
	}
	if m.orch.SaveFailed() {
		b.WriteString(th.Wrong.Render("Progress could not be saved. It is kept until you quit."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n\n")

	if m.orch.Busy() {
		b.WriteString(m.spinner.View() + th.Muted.Render(" Thinking..."))
		b.WriteString("\n")
	}
	if m.message != "" {
		b.WriteString(th.Accent.Render(m.message))
		b.WriteString("\n")
	}

	keys := m.helpKeys
	keys.canClose = m.orch.Banner() != ""
	b.WriteString(th.Help.Render(m.help.View(keys)))
	return b.String()
}

func (m Model) header(th Theme, st player.State) string {
	avatar := itemIcon(catalog.KindAvatar, st.Unlocks.Active.Avatar)
	left := th.Title.Render(fmt.Sprintf("%s %s", avatar, st.Identity.Name))
	right := th.Muted.Render(fmt.Sprintf("Grade %d · Level %d · %d points · this week %d",
		st.Identity.Grade, st.Progression.Level, st.Progression.Score, st.Progression.WeeklyScore))
	return left + "  " + right
}

// screenView renders one screen body.
type screenView struct {
	m  *Model
	th Theme
	st player.State
}

func (v screenView) Landing(session.Landing) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		v.th.Title.Render("✨ MATH QUEST ✨"),
		"",
		v.th.Text.Render("Solve challenges, climb the adventure map and collect badges."),
		"",
		v.th.Accent.Render("Press enter to begin"),
	)
}

func (v screenView) Setup(session.Setup) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		v.th.Title.Render("Who is playing?"),
		"",
		v.m.input.View(),
		"",
		v.th.Text.Render("Grade: ")+v.th.Selected.Render(fmt.Sprintf("◀ %d ▶", v.m.grade)),
		"",
		v.th.Muted.Render("Type your name, pick a grade with ←/→ and press enter."),
	)
}

func (v screenView) MainHub(session.MainHub) string {
	var b strings.Builder
	b.WriteString(v.th.Subtitle.Render("Adventure map"))
	b.WriteString("\n")
	b.WriteString(v.adventureMap())
	b.WriteString("\n")
	b.WriteString(v.th.Muted.Render("←/→ pick a level · o opens a chest"))
	b.WriteString("\n\n")

	menu := make([]string, len(session.HubDestinations))
	for i, s := range session.HubDestinations {
		menu[i] = v.option(i == v.m.cursor, hubLabels[s.Name()])
	}
	left := v.th.Panel.Render(strings.Join(menu, "\n"))
	right := v.th.Panel.Render(v.missions() + "\n\n" + v.inventory())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	return b.String()
}

// adventureMap draws the level nodes in rows of ten.
func (v screenView) adventureMap() string {
	rules := v.m.orch.Rules()
	level := v.st.Progression.Level
	pawn := itemIcon(catalog.KindPawn, v.st.Unlocks.Active.Pawn)

	var rows []string
	var row []string
	for lvl := 1; lvl <= rules.Map.TotalLevels; lvl++ {
		mark := " "
		switch {
		case slices.Contains(rules.Map.ChestLevels, lvl) && !v.st.Map.ClaimedChests.Has(lvl):
			mark = "$"
		case slices.Contains(rules.Map.GateLevels, lvl):
			mark = "|"
		case v.st.Map.CompletedEvents.Has(lvl):
			mark = "✓"
		case slices.Contains(rules.Events.LightningLevels, lvl):
			mark = "⚡"
		case slices.Contains(rules.Events.RiddleLevels, lvl):
			mark = "?"
		}

		label := fmt.Sprintf("%2d%s", lvl, mark)
		style := v.th.NodeLocked
		switch {
		case lvl == level:
			label = pawn + label
			style = v.th.NodeCurrent
		case lvl < level:
			style = v.th.NodeDone
		}
		if lvl == v.m.mapNode {
			style = style.Underline(true)
		}
		row = append(row, style.Render(label))
		if len(row) == 10 || lvl == rules.Map.TotalLevels {
			rows = append(rows, strings.Join(row, " "))
			row = nil
		}
	}
	return strings.Join(rows, "\n")
}

func (v screenView) missions() string {
	lines := []string{v.th.Subtitle.Render("Daily missions")}
	if len(v.st.Missions.List) == 0 {
		lines = append(lines, v.th.Muted.Render("All done for today!"))
	}
	for _, ms := range v.st.Missions.List {
		box := "[ ]"
		if ms.Completed {
			box = v.th.Correct.Render("[x]")
		}
		lines = append(lines, fmt.Sprintf("%s %s (%d/%d) +%d", box, ms.Description, ms.Progress, ms.Goal, ms.Reward))
	}
	return strings.Join(lines, "\n")
}

func (v screenView) inventory() string {
	parts := make([]string, 0, len(player.PowerUps))
	for _, p := range player.PowerUps {
		parts = append(parts, fmt.Sprintf("%s %d", itemIcon(catalog.KindPowerUp, string(p)), v.st.Inventory[p]))
	}
	return v.th.Muted.Render("Power-ups: ") + strings.Join(parts, "  ")
}

func (v screenView) TopicSelect(session.TopicSelect) string {
	topics := catalog.TopicsForGrade(v.st.Identity.Grade)
	lines := []string{v.th.Title.Render("Pick a topic"), ""}
	for i, t := range topics {
		cached := progression.CachedCount(v.st, t.ID)
		label := fmt.Sprintf("%s %s", t.Icon, t.Name)
		if cached > 0 {
			label += v.th.Muted.Render(fmt.Sprintf("  (%d ready)", cached))
		}
		lines = append(lines, v.option(i == v.m.cursor, label))
	}
	return strings.Join(lines, "\n")
}

func (v screenView) Playing(session.Playing) string {
	r := v.m.orch.Round()
	if r == nil {
		return v.th.Muted.Render("Getting your questions ready...")
	}
	pos, total := r.Position()
	status := v.th.Muted.Render(fmt.Sprintf("%s · Question %d/%d · Score %d · Combo x%d · ⏱ %s",
		catalog.TopicName(r.Topic()), pos, total, r.Score(), r.Combo(), clock(r.Remaining())))

	q, ok := r.Current()
	if !ok {
		return status
	}
	lines := []string{status, "", v.question(q, r.Answered())}
	if hint := v.m.orch.Hint(); hint != "" {
		lines = append(lines, "", v.th.Accent.Render("💡 "+hint))
	}
	if v.m.feedback != nil {
		lines = append(lines, "", v.feedback(*v.m.feedback), v.th.Muted.Render("Press enter for the next question."))
	}
	lines = append(lines, "", v.inventory())
	return strings.Join(lines, "\n")
}

// question renders the prompt with its options or the answer input.
func (v screenView) question(q player.Question, answered bool) string {
	lines := []string{v.th.Title.Render(q.Question), ""}
	if len(q.Options) == 0 {
		if !answered {
			lines = append(lines, v.m.input.View())
		}
		return strings.Join(lines, "\n")
	}
	for i, opt := range q.Options {
		lines = append(lines, v.option(!answered && i == v.m.cursor, fmt.Sprintf("%d. %s", i+1, opt)))
	}
	return strings.Join(lines, "\n")
}

func (v screenView) feedback(fb quiz.Feedback) string {
	if fb.Correct {
		text := "✔ Correct!"
		if fb.Points > 0 {
			text += fmt.Sprintf(" +%d", fb.Points)
		}
		if fb.Combo > 1 {
			text += fmt.Sprintf("  combo x%d", fb.Combo)
		}
		return v.th.Correct.Render(text)
	}
	lines := []string{v.th.Wrong.Render("✘ Not quite. The answer is " + fb.Answer + ".")}
	if fb.Explanation != "" {
		lines = append(lines, v.th.Text.Render(fb.Explanation))
	}
	return strings.Join(lines, "\n")
}

func (v screenView) Store(session.Store) string {
	tabs := make([]string, len(storeTabs))
	for i, k := range storeTabs {
		name := strings.ToUpper(k.String())
		if i == v.m.tab {
			tabs[i] = v.th.Selected.Render(name)
		} else {
			tabs[i] = v.th.Muted.Render(name)
		}
	}

	kind := storeTabs[v.m.tab]
	cat, cosmetic := kind.Category()
	lines := []string{v.th.Title.Render("Store"), strings.Join(tabs, "  "), ""}
	for i, it := range catalog.Items(kind) {
		tag := fmt.Sprintf("%d pts", it.Cost)
		switch {
		case cosmetic && v.st.Unlocks.Active.ActiveID(cat) == it.ID:
			tag = v.th.Correct.Render("equipped")
		case cosmetic && v.st.Unlocks.Owned(cat).Has(it.ID):
			tag = v.th.Accent.Render("owned, enter to equip")
		case !cosmetic:
			tag = fmt.Sprintf("%d pts for %d · you have %d", it.Cost, it.Quantity, v.st.Inventory[player.PowerUp(it.ID)])
		}
		lines = append(lines, v.option(i == v.m.cursor, fmt.Sprintf("%s %-18s %s", it.Icon, it.Name, tag)))
		if i == v.m.cursor && it.Description != "" {
			lines = append(lines, v.th.Muted.Render("    "+it.Description))
		}
	}
	lines = append(lines, "", v.th.Muted.Render(fmt.Sprintf("You have %d points. ←/→ switch section.", v.st.Progression.Score)))
	return strings.Join(lines, "\n")
}

func (v screenView) CreativeMode(session.CreativeMode) string {
	lines := []string{v.th.Title.Render("🎨 Creative mode"), ""}
	cq, ok := v.m.orch.Creative()
	if v.m.ideaMode || !ok {
		if !v.m.orch.AIAvailable() {
			lines = append(lines, v.th.Wrong.Render("Creative mode needs the AI helpers, which are not available right now."))
			return strings.Join(lines, "\n")
		}
		lines = append(lines,
			v.th.Text.Render("Tell me what your math problem should be about:"),
			"",
			v.m.input.View(),
		)
		return strings.Join(lines, "\n")
	}

	lines = append(lines, v.th.Muted.Render("Your idea: "+cq.Idea), "", v.question(cq.Question, cq.Feedback != nil))
	if cq.Feedback != nil {
		lines = append(lines, "", v.feedback(*cq.Feedback), v.th.Muted.Render("Press enter for a new idea."))
	}
	return strings.Join(lines, "\n")
}

func (v screenView) Profile(session.Profile) string {
	sel := v.st.Unlocks.Active
	lines := []string{
		v.th.Title.Render(fmt.Sprintf("%s %s", itemIcon(catalog.KindAvatar, sel.Avatar), v.st.Identity.Name)),
		v.th.Text.Render("Grade: ") + v.th.Selected.Render(fmt.Sprintf("◀ %d ▶", v.m.grade)) +
			v.th.Muted.Render("  enter to change (the map starts again at level 1)"),
		v.th.Muted.Render(fmt.Sprintf("Quizzes finished: %d · Perfect streak: %d",
			v.st.Stats.QuizzesCompleted, v.st.Progression.PerfectScoreStreak)),
		"",
		v.th.Subtitle.Render(fmt.Sprintf("Badges %d/%d", v.st.Achievements.Len(), len(catalog.Badges))),
	}
	for _, bd := range catalog.Badges {
		if v.st.Achievements.Has(bd.ID) {
			lines = append(lines, fmt.Sprintf("%s %s %s", bd.Icon, v.th.Accent.Render(bd.Name), v.th.Muted.Render(bd.Description)))
		} else {
			lines = append(lines, v.th.NodeLocked.Render(fmt.Sprintf("🔒 %s (%s): %s", bd.Name, bd.Rarity, bd.Hint)))
		}
	}
	return strings.Join(lines, "\n")
}

func (v screenView) ParentDashboard(session.ParentDashboard) string {
	lines := []string{v.th.Title.Render("👪 Parent dashboard"), ""}

	stats, recent, err := v.m.orch.QuizHistory()
	if err != nil {
		lines = append(lines, v.th.Wrong.Render("Quiz history is not available."))
	} else {
		lines = append(lines, v.th.Text.Render(fmt.Sprintf("Quizzes: %d · Best score: %d · Accuracy: %.0f%%",
			stats.Quizzes, stats.BestScore, stats.Accuracy()*100)))
		for _, q := range recent {
			lines = append(lines, v.th.Muted.Render(fmt.Sprintf("  %s  %-26s %d/%d  %d pts",
				q.CreatedAt.Format("Jan 02 15:04"), catalog.TopicName(q.Topic), q.Correct, q.Total, q.Score)))
		}
	}

	missed := newestFirst(v.st.History.Missed)
	lines = append(lines, "", v.th.Subtitle.Render(fmt.Sprintf("Recent mistakes (%d)", len(missed))))
	if len(missed) == 0 {
		lines = append(lines, v.th.Muted.Render("No mistakes recorded."))
	}
	for i, a := range missed {
		lines = append(lines, v.option(i == v.m.cursor,
			fmt.Sprintf("%s  answered %q, correct %q", a.Question.Question, a.UserAnswer, a.Question.Answer)))
	}

	if text := v.m.orch.Explanation(); text != "" {
		lines = append(lines, "", v.th.Subtitle.Render("Tutor"), v.th.Text.Render(text))
	}
	if text := v.m.orch.Analysis(); text != "" {
		lines = append(lines, "", v.th.Subtitle.Render("Analysis"), v.th.Text.Render(text))
	}
	lines = append(lines, "", v.th.Muted.Render("a analysis · t explain mistake · R reset all progress"))
	return strings.Join(lines, "\n")
}

func (v screenView) Leaderboard(session.Leaderboard) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		v.th.Title.Render("🏆 Weekly leaderboard"),
		v.th.Muted.Render("Scores reset every week."),
		"",
		v.m.board.View(),
	)
}

func (v screenView) LightningRound(s session.LightningRound) string {
	lines := []string{v.th.Title.Render(fmt.Sprintf("⚡ Lightning round: level %d", s.Level))}
	r := v.m.orch.LightningRound()
	if r == nil {
		return strings.Join(lines, "\n")
	}
	pos, total := r.Position()
	lines = append(lines, v.th.Muted.Render(fmt.Sprintf("Question %d/%d · Correct %d · ⏱ %s",
		pos, total, r.Correct(), clock(r.Remaining()))), "")
	if q, ok := r.Current(); ok {
		lines = append(lines, v.question(q, false))
	}
	if v.m.feedback != nil {
		lines = append(lines, "", v.feedback(*v.m.feedback))
	}
	lines = append(lines, "", v.th.Muted.Render("esc ends the round and keeps the bonus earned so far"))
	return strings.Join(lines, "\n")
}

func (v screenView) RiddleChallenge(s session.RiddleChallenge) string {
	lines := []string{v.th.Title.Render(fmt.Sprintf("🧩 Riddle: level %d", s.Level)), ""}
	if q, ok := v.m.orch.Riddle(); ok {
		lines = append(lines, v.question(q, false))
	}
	lines = append(lines, "", v.th.Muted.Render(fmt.Sprintf("Solve it for %d bonus points. esc gives up.",
		v.m.orch.Rules().Events.RiddleBonus)))
	return strings.Join(lines, "\n")
}

func (v screenView) Review(session.Review) string {
	rv := v.m.orch.Review()
	res := rv.Result
	lines := []string{
		v.th.Title.Render("Challenge complete!"),
		v.th.Text.Render(fmt.Sprintf("%s · %d/%d correct · %d points",
			catalog.TopicName(res.Topic), res.CorrectAnswers, res.TotalQuestions, rv.Score())),
	}
	if rv.TimedOut {
		lines = append(lines, v.th.Wrong.Render("⏱ Time ran out."))
	}
	if res.Perfect() {
		lines = append(lines, v.th.Correct.Render("🎯 Perfect score!"))
	}
	if rv.Outcome.LeveledUp {
		lines = append(lines, v.th.Accent.Render(fmt.Sprintf("⬆ Level up! You reached level %d.", rv.Outcome.NewLevel)))
	}
	if rv.Outcome.MissionReward > 0 {
		lines = append(lines, v.th.Accent.Render(fmt.Sprintf("📋 Missions completed: +%d points", rv.Outcome.MissionReward)))
	}

	switch rv.Event {
	case progression.EventLightning:
		lines = append(lines, v.th.Accent.Render(fmt.Sprintf("⚡ Lightning round: %d correct, +%d points", rv.EventCorrect, rv.EventBonus)))
	case progression.EventRiddle:
		if rv.EventCorrect > 0 {
			lines = append(lines, v.th.Correct.Render(fmt.Sprintf("🧩 Riddle solved! +%d points", rv.EventBonus)))
		} else {
			lines = append(lines, v.th.Muted.Render("🧩 The riddle stays a mystery this time."))
		}
	}

	earned := slices.Concat(rv.Outcome.Badges, rv.EventBadges)
	for _, bd := range earned {
		lines = append(lines, v.th.Accent.Render(fmt.Sprintf("%s New badge: %s", bd.Icon, bd.Name)))
	}
	if v.m.cue == core.CueAchievement && len(earned) == 0 {
		lines = append(lines, v.th.Accent.Render("🏅 Achievement unlocked!"))
	}

	if len(rv.Missed) > 0 {
		lines = append(lines, "", v.th.Subtitle.Render("Let's look at the mistakes"))
		for i, a := range rv.Missed {
			lines = append(lines, v.option(i == v.m.cursor,
				fmt.Sprintf("%s  you said %q, answer %q", a.Question.Question, a.UserAnswer, a.Question.Answer)))
			if i == v.m.cursor && a.Explanation != "" {
				lines = append(lines, v.th.Muted.Render("    "+a.Explanation))
			}
		}
		if text := v.m.orch.Explanation(); text != "" {
			lines = append(lines, "", v.th.Subtitle.Render("Tutor"), v.th.Text.Render(text))
		} else if v.m.orch.AIAvailable() {
			lines = append(lines, v.th.Muted.Render("t asks the tutor about the selected mistake"))
		}
	}
	lines = append(lines, "", v.th.Muted.Render("Press enter to return to the map."))
	return strings.Join(lines, "\n")
}

func (v screenView) option(selected bool, label string) string {
	if selected {
		return v.th.Selected.Render("▸ " + label)
	}
	return "  " + label
}

func itemIcon(k catalog.Kind, id string) string {
	if it, ok := catalog.Find(k, id); ok {
		return it.Icon
	}
	return ""
}

func clock(d time.Duration) string {
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
