// Package missions generates daily missions and advances them on quiz completion.
package missions

import (
	"fmt"

	"github.com/vovakirdan/tui-mathquest/internal/core"
	"github.com/vovakirdan/tui-mathquest/internal/player"
)

// Template produces a mission scaled to the player's level.
type Template struct {
	Type        player.MissionType
	Describe    func(goal int) string
	Goal        func(level int) int
	Reward      func(level int) int
	Progression func(r player.QuizResult) int
}

// Templates is the mission catalog.
var Templates = []Template{
	{
		Type:     player.MissionCorrectAnswers,
		Describe: func(goal int) string { return fmt.Sprintf("Answer %d questions correctly.", goal) },
		Goal:     func(level int) int { return 5 + (level/2)*5 },
		Reward:   func(level int) int { return 20 + (level/2)*10 },
		Progression: func(r player.QuizResult) int {
			return r.CorrectAnswers
		},
	},
	{
		Type:     player.MissionCompleteQuiz,
		Describe: func(goal int) string { return fmt.Sprintf("Complete %d challenges.", goal) },
		Goal: func(level int) int {
			if level < 5 {
				return 2
			}
			return 3
		},
		Reward: func(level int) int { return 30 + (level/5)*15 },
		Progression: func(player.QuizResult) int {
			return 1
		},
	},
	{
		Type:     player.MissionPerfectQuiz,
		Describe: func(goal int) string { return fmt.Sprintf("Get a perfect score in %d challenge.", goal) },
		Goal:     func(int) int { return 1 },
		Reward:   func(level int) int { return 50 + level*5 },
		Progression: func(r player.QuizResult) int {
			if r.Perfect() {
				return 1
			}
			return 0
		},
	},
}

func templateFor(t player.MissionType) (Template, bool) {
	for _, tpl := range Templates {
		if tpl.Type == t {
			return tpl, true
		}
	}
	return Template{}, false
}

// Engine generates and advances missions.
type Engine struct {
	count int
	rng   core.Rand
}

// New creates a mission engine producing up to count missions per day.
func New(count int, rng core.Rand) *Engine {
	if count > len(Templates) {
		count = len(Templates)
	}
	if count < 0 {
		count = 0
	}
	return &Engine{count: count, rng: rng}
}

// Generate samples templates without replacement for the given level.
func (e *Engine) Generate(level int) []player.Mission {
	order := make([]int, len(Templates))
	for i := range order {
		order[i] = i
	}
	e.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	out := make([]player.Mission, 0, e.count)
	for i, idx := range order[:e.count] {
		tpl := Templates[idx]
		goal := tpl.Goal(level)
		out = append(out, player.Mission{
			ID:          fmt.Sprintf("%s_%d", tpl.Type, i),
			Type:        tpl.Type,
			Description: tpl.Describe(goal),
			Goal:        goal,
			Reward:      tpl.Reward(level),
		})
	}
	return out
}

// Refresh replaces the mission list wholesale when it was generated for a different day.
// It reports whether a new list was generated.
func (e *Engine) Refresh(s player.State, today string) (player.State, bool) {
	if s.Missions.Date == today {
		return s, false
	}
	next := s.Clone()
	next.Missions = player.Missions{
		Date: today,
		List: e.Generate(s.Progression.Level),
	}
	return next, true
}

// Outcome reports missions that completed in one Apply call.
type Outcome struct {
	Completed []player.Mission
	Reward    int
}

// Apply advances today's unfinished missions by a quiz result. Rewards are
// granted exactly once, on the call that first reaches the goal, and added to
// both score and weekly score. Missions from another day are left untouched.
func (e *Engine) Apply(s player.State, r player.QuizResult, today string) (player.State, Outcome) {
	if s.Missions.Date != today || len(s.Missions.List) == 0 {
		return s, Outcome{}
	}

	next := s.Clone()
	var out Outcome
	for i := range next.Missions.List {
		m := &next.Missions.List[i]
		if m.Completed {
			continue
		}
		tpl, ok := templateFor(m.Type)
		if !ok {
			continue
		}
		m.Progress = min(m.Progress+tpl.Progression(r), m.Goal)
		if m.Progress >= m.Goal {
			m.Completed = true
			out.Completed = append(out.Completed, *m)
			out.Reward += m.Reward
		}
	}

	next.Progression.Score += out.Reward
	next.Progression.WeeklyScore += out.Reward
	return next, out
}
