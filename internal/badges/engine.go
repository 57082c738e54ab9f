// Package badges awards achievements in response to player events.
package badges

import (
	"github.com/vovakirdan/tui-mathquest/internal/catalog"
	"github.com/vovakirdan/tui-mathquest/internal/player"
)

// Event is something that happened to the player. The set of events is closed.
type Event interface {
	badgeEvent()
}

// QuizCompleted fires once per finished quiz, after score and level are applied.
type QuizCompleted struct {
	Result player.QuizResult
}

// ItemPurchased fires after a store purchase lands in the state.
type ItemPurchased struct {
	Kind catalog.Kind
}

// CreativeModeUsed fires after the creative counter was incremented.
type CreativeModeUsed struct{}

// ScoreChanged fires when score moved outside a quiz, e.g. mission or event rewards.
type ScoreChanged struct{}

func (QuizCompleted) badgeEvent()    {}
func (ItemPurchased) badgeEvent()    {}
func (CreativeModeUsed) badgeEvent() {}
func (ScoreChanged) badgeEvent()     {}

// Thresholds for counter badges.
const (
	StreakShort         = 3
	StreakLong          = 5
	LevelExplorer       = 5
	LevelExpert         = 10
	ScoreMilestone      = 1000
	CreativeMilestone   = 10
	AddSubPerfectTarget = 5
)

// Engine evaluates badge predicates.
type Engine struct{}

// New creates a badge engine.
func New() Engine {
	return Engine{}
}

// Evaluate applies ev to a copy of s and returns the new state together with
// badges granted by this call, in catalog order of evaluation.
func (Engine) Evaluate(s player.State, ev Event) (player.State, []catalog.Badge) {
	next := s.Clone()
	if next.Stats.PerfectByTopic == nil {
		next.Stats.PerfectByTopic = make(map[player.Topic]int)
	}
	a := awarder{state: &next}

	switch e := ev.(type) {
	case QuizCompleted:
		next.Stats.QuizzesCompleted++
		a.award(catalog.BadgeFirstQuiz)
		if e.Result.Perfect() {
			next.Progression.PerfectScoreStreak++
			a.award(catalog.BadgePerfectScore)
			if e.Result.Topic != "" {
				next.Stats.PerfectByTopic[e.Result.Topic]++
			}
		} else {
			next.Progression.PerfectScoreStreak = 0
		}
		a.checkStreak()
		a.checkThresholds()
		if next.Stats.PerfectByTopic[player.TopicAdditionSubtraction] >= AddSubPerfectTarget {
			a.award(catalog.BadgeQuizMasterAddSub)
		}

	case ItemPurchased:
		if e.Kind == catalog.KindTheme {
			a.award(catalog.BadgeFirstPurchase)
			// Checked against the live catalog so new themes re-open the badge.
			if next.Unlocks.Themes.ContainsAll(catalog.IDs(catalog.KindTheme)) {
				a.award(catalog.BadgeThemeCollector)
			}
		}

	case CreativeModeUsed:
		if next.Stats.CreativeQuestionsGenerated >= 1 {
			a.award(catalog.BadgeCreativeSpark)
		}
		if next.Stats.CreativeQuestionsGenerated >= CreativeMilestone {
			a.award(catalog.BadgeAICollaborator)
		}

	case ScoreChanged:
		a.checkThresholds()
	}

	if next.Achievements.ContainsAll(catalog.BadgeIDsExcept(catalog.BadgeMathMaster)) {
		a.award(catalog.BadgeMathMaster)
	}

	return next, a.awarded
}

type awarder struct {
	state   *player.State
	awarded []catalog.Badge
}

func (a *awarder) award(id string) {
	b, ok := catalog.FindBadge(id)
	if !ok {
		return
	}
	if a.state.Achievements.Add(id) {
		a.awarded = append(a.awarded, b)
	}
}

func (a *awarder) checkStreak() {
	streak := a.state.Progression.PerfectScoreStreak
	if streak >= StreakShort {
		a.award(catalog.BadgeStreak3)
	}
	if streak >= StreakLong {
		a.award(catalog.BadgeStreak5)
	}
}

func (a *awarder) checkThresholds() {
	p := a.state.Progression
	if p.Level >= LevelExplorer {
		a.award(catalog.BadgeLevel5)
	}
	if p.Level >= LevelExpert {
		a.award(catalog.BadgeLevel10)
	}
	if p.Score >= ScoreMilestone {
		a.award(catalog.BadgeScore1000)
	}
}
